package main

import (
	"github.com/gdamore/tcell/v2"

	mandel "github.com/marben/mandelflight"
)

// speedStep is the speed change per +/- key press.
const speedStep = 0.1

// translator turns terminal events into flight input in pixel space.
type translator struct {
	buttons tcell.ButtonMask
}

// translate returns the input for ev, and whether the user asked to quit.
func (t *translator) translate(ev tcell.Event) (msgs []mandel.InputMessage, quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return nil, true
		}
		if ev.Key() == tcell.KeyRune {
			return runeInput(ev.Rune())
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		px, py := cellToPixel(x, y)
		msgs = append(msgs, mandel.InputMessage{Type: mandel.InputPointer, X: px, Y: py})

		// act on press only; held buttons repeat with every motion event
		pressed := ev.Buttons() &^ t.buttons
		t.buttons = ev.Buttons()
		if pressed&tcell.Button1 != 0 {
			msgs = append(msgs, mandel.InputMessage{Type: mandel.InputClick, X: px, Y: py})
		}
		if pressed&tcell.Button2 != 0 {
			msgs = append(msgs, mandel.InputMessage{Type: mandel.InputPause})
		}
		return msgs, false

	case *tcell.EventResize:
		cols, rows := ev.Size()
		w, h := frameSize(cols, rows)
		return []mandel.InputMessage{{Type: mandel.InputResize, X: float64(w), Y: float64(h)}}, false
	}
	return nil, false
}

func runeInput(r rune) ([]mandel.InputMessage, bool) {
	switch r {
	case 'q', 'Q':
		return nil, true
	case ' ':
		return []mandel.InputMessage{{Type: mandel.InputPause}}, false
	case '+', '=':
		return []mandel.InputMessage{{Type: mandel.InputSpeed, Delta: speedStep}}, false
	case '-', '_':
		return []mandel.InputMessage{{Type: mandel.InputSpeed, Delta: -speedStep}}, false
	}
	return nil, false
}
