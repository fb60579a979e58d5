package main

import (
	"image"

	"github.com/gdamore/tcell/v2"
)

const halfBlock = '▀'

var statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)

// frameSize returns the pixel frame for a terminal: two pixels per cell, last row kept for status.
func frameSize(cols, rows int) (w, h int) {
	return max(cols, 0), max(rows-1, 0) * 2
}

// cellToPixel maps a cell to the pixel between its two halves.
func cellToPixel(x, y int) (px, py float64) {
	return float64(x), float64(y*2) + 1
}

// cellScreen is the part of tcell.Screen the surface draws with.
type cellScreen interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
}

// cellSurface implements mandel.Surface and mandel.StatusDisplay on a terminal.
type cellSurface struct {
	screen cellScreen
	w, h   int

	status, speed string
}

func newCellSurface(s cellScreen) *cellSurface {
	return &cellSurface{screen: s}
}

func (s *cellSurface) Resize(w, h int) { s.w, s.h = w, h }

// WritePixels draws pixel rows 2y and 2y+1 as foreground and background of cell row y.
func (s *cellSurface) WritePixels(img *image.RGBA) {
	for y := 0; y+1 < s.h; y += 2 {
		for x := 0; x < s.w; x++ {
			top := img.RGBAAt(x, y)
			bottom := img.RGBAAt(x, y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			s.screen.SetContent(x, y/2, halfBlock, nil, style)
		}
	}
}

func (s *cellSurface) Present() error {
	s.drawStatus()
	s.screen.Show()
	return nil
}

func (s *cellSurface) SetStatus(v string) { s.status = v }
func (s *cellSurface) SetSpeed(v string)  { s.speed = v }

// drawStatus fills the row below the frame.
func (s *cellSurface) drawStatus() {
	row := s.h / 2
	text := []rune(" " + s.status + "  " + s.speed + "  mouse: steer  click: center  space/right: pause  +/-: speed  q: quit")
	for x := 0; x < s.w; x++ {
		r := ' '
		if x < len(text) {
			r = text[x]
		}
		s.screen.SetContent(x, row, r, nil, statusStyle)
	}
}
