package mandel

// Remote flight protocol spoken over the server's /ws endpoint.
//
// Client -> server: text messages holding one InputMessage each.
// Server -> client, per tick: a binary message with the PNG encoded frame,
// then a text message holding a StatusMessage.

// Input message types.
const (
	InputPointer = "pointer"
	InputClick   = "click"
	InputPause   = "pause"
	InputSpeed   = "speed"
	InputResize  = "resize"
)

// InputMessage carries one input event from a remote client.
// X and Y are surface pixels (pointer, click) or dimensions (resize).
type InputMessage struct {
	Type  string  `json:"type"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	Delta float64 `json:"delta,omitempty"`
}

// StatusMessage describes the frame that was just sent.
type StatusMessage struct {
	Frame     int     `json:"frame"`
	Mode      string  `json:"mode"`
	Speed     string  `json:"speed"`
	ZoomDepth float64 `json:"zoom"`
	CenterX   float64 `json:"centerX"`
	CenterY   float64 `json:"centerY"`
	MaxIter   int     `json:"maxIter"`
}
