package physics

import (
	"fmt"

	"github.com/san-kum/basinsim/internal/dynamo"
)

// Params describes the pendulum, its two poles and the thresholds used to
// decide convergence. A Params value is shared read-only by all workers of
// a render.
type Params struct {
	PoleDistance     float64
	Attraction       float64
	Friction         float64
	Pendulum         float64
	Height           float64
	TimeStep         float64
	MaxSteps         int
	RequiredVelocity float64
	RequiredDistance float64
}

func DefaultParams() Params {
	return Params{
		PoleDistance:     0.2,
		Attraction:       0.1,
		Friction:         0.1,
		Pendulum:         1,
		Height:           0.05,
		TimeStep:         0.05,
		MaxSteps:         5000,
		RequiredVelocity: 0.1,
		RequiredDistance: 0.01,
	}
}

// Pole1 sits at (-PoleDistance, 0).
func (p Params) Pole1() dynamo.Vec2 { return dynamo.UnitX.Scale(-p.PoleDistance) }

// Pole2 sits at (PoleDistance, 0).
func (p Params) Pole2() dynamo.Vec2 { return dynamo.UnitX.Scale(p.PoleDistance) }

func (p Params) Validate() error {
	switch {
	case p.TimeStep <= 0:
		return fmt.Errorf("time step must be positive, got %g: %w", p.TimeStep, dynamo.ErrParameterBounds)
	case p.MaxSteps <= 0:
		return fmt.Errorf("max steps must be positive, got %d: %w", p.MaxSteps, dynamo.ErrParameterBounds)
	case p.Height < 0:
		return fmt.Errorf("height must not be negative, got %g: %w", p.Height, dynamo.ErrParameterBounds)
	case p.Friction < 0:
		return fmt.Errorf("friction must not be negative, got %g: %w", p.Friction, dynamo.ErrParameterBounds)
	case p.RequiredVelocity <= 0 || p.RequiredDistance <= 0:
		return fmt.Errorf("convergence thresholds must be positive: %w", dynamo.ErrParameterBounds)
	}
	return nil
}

func (p Params) GetParams() map[string]float64 {
	return map[string]float64{
		"distance":         p.PoleDistance,
		"attraction":       p.Attraction,
		"friction":         p.Friction,
		"pendulum":         p.Pendulum,
		"height":           p.Height,
		"timeStep":         p.TimeStep,
		"maxSteps":         float64(p.MaxSteps),
		"requiredVelocity": p.RequiredVelocity,
		"requiredDistance": p.RequiredDistance,
	}
}

func (p *Params) SetParam(n string, v float64) error {
	switch n {
	case "distance":
		p.PoleDistance = v
	case "attraction":
		p.Attraction = v
	case "friction":
		p.Friction = v
	case "pendulum":
		p.Pendulum = v
	case "height":
		p.Height = v
	case "timeStep":
		p.TimeStep = v
	case "maxSteps":
		p.MaxSteps = int(v)
	case "requiredVelocity":
		p.RequiredVelocity = v
	case "requiredDistance":
		p.RequiredDistance = v
	default:
		return fmt.Errorf("unknown parameter %q", n)
	}
	return nil
}
