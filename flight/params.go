package flight

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is wrapped by Params.Validate errors.
var ErrInvalidParams = errors.New("invalid flight params")

// Params are the tunables of the fly-through.
type Params struct {
	// ZoomSpeed is the per-frame relative growth of zoom depth at 1x speed.
	ZoomSpeed float64 `json:"zoomSpeed"`
	// MovementSpeed is the per-frame centre shift, in plane units, at full deflection.
	MovementSpeed float64 `json:"movementSpeed"`
	// DeadZone and MaxDeflection are pointer distances from the surface centre, in pixels.
	DeadZone      float64 `json:"deadZone"`
	MaxDeflection float64 `json:"maxDeflection"`
	// Smoothing is the per-frame fraction of the gap closed between current and target velocity.
	Smoothing float64 `json:"smoothing"`
	// CenterAnimationSpeed is the per-frame fraction of the gap closed while recentering.
	CenterAnimationSpeed float64 `json:"centerAnimationSpeed"`
	// CenterEpsilon is the distance at which recentering snaps to its target.
	CenterEpsilon float64 `json:"centerEpsilon"`
	// MinSpeed and MaxSpeed clamp the user speed multiplier.
	MinSpeed float64 `json:"minSpeed"`
	MaxSpeed float64 `json:"maxSpeed"`
}

func DefaultParams() Params {
	return Params{
		ZoomSpeed:            0.003,
		MovementSpeed:        0.0004,
		DeadZone:             30,
		MaxDeflection:        150,
		Smoothing:            0.2,
		CenterAnimationSpeed: 0.1,
		CenterEpsilon:        1e-4,
		MinSpeed:             0.1,
		MaxSpeed:             5,
	}
}

// Validate reports the first out-of-range field.
func (p Params) Validate() error {
	switch {
	case p.ZoomSpeed < 0:
		return fmt.Errorf("%w: zoomSpeed %v < 0", ErrInvalidParams, p.ZoomSpeed)
	case p.MovementSpeed < 0:
		return fmt.Errorf("%w: movementSpeed %v < 0", ErrInvalidParams, p.MovementSpeed)
	case p.DeadZone < 0:
		return fmt.Errorf("%w: deadZone %v < 0", ErrInvalidParams, p.DeadZone)
	case p.MaxDeflection <= p.DeadZone:
		return fmt.Errorf("%w: maxDeflection %v must exceed deadZone %v", ErrInvalidParams, p.MaxDeflection, p.DeadZone)
	case p.Smoothing <= 0 || p.Smoothing > 1:
		return fmt.Errorf("%w: smoothing %v outside (0, 1]", ErrInvalidParams, p.Smoothing)
	case p.CenterAnimationSpeed <= 0 || p.CenterAnimationSpeed > 1:
		return fmt.Errorf("%w: centerAnimationSpeed %v outside (0, 1]", ErrInvalidParams, p.CenterAnimationSpeed)
	case p.CenterEpsilon <= 0:
		return fmt.Errorf("%w: centerEpsilon %v <= 0", ErrInvalidParams, p.CenterEpsilon)
	case p.MinSpeed <= 0 || p.MaxSpeed < p.MinSpeed:
		return fmt.Errorf("%w: speed range [%v, %v]", ErrInvalidParams, p.MinSpeed, p.MaxSpeed)
	}
	return nil
}
