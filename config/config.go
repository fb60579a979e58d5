// Package config loads flight tunables from a JSON file and keeps them
// current while the file is edited.
package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/marben/mandelflight/flight"
)

// Load reads a params file. Fields missing from the file keep their defaults.
func Load(path string) (flight.Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return flight.Params{}, fmt.Errorf("read params: %w", err)
	}
	return Parse(data)
}

// Parse decodes params from JSON on top of flight.DefaultParams.
func Parse(data []byte) (flight.Params, error) {
	p := flight.DefaultParams()

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return flight.Params{}, fmt.Errorf("decode params: %w", err)
	}
	if err := p.Validate(); err != nil {
		return flight.Params{}, err
	}
	return p, nil
}

// LoadOrDefault returns the defaults for an empty path, Load otherwise.
func LoadOrDefault(path string) (flight.Params, error) {
	if path == "" {
		return flight.DefaultParams(), nil
	}
	return Load(path)
}

// Watch sends freshly loaded params on out every time the file is written,
// until ctx is done. Files that fail to load are logged and skipped.
// The containing directory is watched, so editors that replace the file on save still trigger a reload.
func Watch(ctx context.Context, path string, out chan<- flight.Params) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify.NewWatcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		w.Close()
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return fmt.Errorf("watch %q: %w", filepath.Dir(abs), err)
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				p, err := Load(abs)
				if err != nil {
					log.Printf("params reload: %v", err)
					continue
				}
				select {
				case out <- p:
				case <-ctx.Done():
					return
				}

			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("params watch: %v", err)
			}
		}
	}()

	return nil
}
