// main.go is a CLI recorder for remote flights.
// It connects to the fly-through server, steers a scripted flight and saves every received frame as a PNG file.

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"
)

// main is the entry point for the CLI recorder.
// It runs the recorder logic and logs any fatal errors.
func main() {
	log.Printf("Starting CLI recorder...")
	if err := run(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "server websocket endpoint")
	frames := flag.Int("frames", 120, "number of frames to record")
	width := flag.Int("width", 640, "frame width")
	height := flag.Int("height", 360, "frame height")
	out := flag.String("out", ".", "output directory")
	timeout := flag.Duration("timeout", 2*time.Minute, "give up after this long")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		return err
	}

	r := &recorder{
		script: flightScript(*width, *height),
		frames: *frames,
		save:   pngSaver(*out),
	}
	log.Printf("Connecting to fly-through server at %s...", *addr)
	if err := r.record(ctx, *addr); err != nil {
		return err
	}
	log.Printf("%d frames saved to %q", *frames, *out)
	return nil
}
