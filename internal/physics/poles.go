package physics

import "github.com/san-kum/basinsim/internal/dynamo"

// Classification is the outcome of releasing the bob at one point.
type Classification uint8

const (
	Undetermined Classification = iota
	ConvergedPole1
	ConvergedPole2
)

func (c Classification) String() string {
	switch c {
	case ConvergedPole1:
		return "pole1"
	case ConvergedPole2:
		return "pole2"
	default:
		return "undetermined"
	}
}

// Vote is the contribution of one sample to a pixel: X counts pole 1,
// Y counts pole 2, undetermined samples count for neither.
func (c Classification) Vote() dynamo.Vec2 {
	switch c {
	case ConvergedPole1:
		return dynamo.UnitX
	case ConvergedPole2:
		return dynamo.UnitY
	default:
		return dynamo.Zero
	}
}

// TracePoint is the bob's state at the start of an integration step.
type TracePoint struct {
	Step         int
	Pos, Vel     dynamo.Vec2
	Dist1, Dist2 float64
}

type TraceResult struct {
	Points  []TracePoint
	Outcome Classification
	Steps   int
}

// Classify releases the bob at rest at p0 and reports which pole it settles
// on. The convergence test runs before each step, so a start point already
// inside a pole's capture radius returns without integrating.
func Classify(p0 dynamo.Vec2, params Params) Classification {
	c, _ := integrate(p0, params, nil)
	return c
}

// Trace runs the same integration as Classify and records every n-th step
// plus the final state.
func Trace(p0 dynamo.Vec2, params Params, every int) TraceResult {
	if every < 1 {
		every = 1
	}
	var res TraceResult
	var last *TracePoint
	res.Outcome, res.Steps = integrate(p0, params, func(tp TracePoint) {
		if tp.Step%every == 0 {
			res.Points = append(res.Points, tp)
		}
		last = &tp
	})
	if last != nil && res.Points[len(res.Points)-1].Step != last.Step {
		res.Points = append(res.Points, *last)
	}
	return res
}

func integrate(p dynamo.Vec2, params Params, observe func(TracePoint)) (Classification, int) {
	pole1, pole2 := params.Pole1(), params.Pole2()
	dt := params.TimeStep
	v := dynamo.Zero

	for step := 0; step < params.MaxSteps; step++ {
		d1 := pole1.Sub(p)
		d2 := pole2.Sub(p)
		vl, d1l, d2l := v.Length(), d1.Length(), d2.Length()

		if observe != nil {
			observe(TracePoint{Step: step, Pos: p, Vel: v, Dist1: d1l, Dist2: d2l})
		}

		if vl < params.RequiredVelocity {
			if d1l < params.RequiredDistance {
				return ConvergedPole1, step
			}
			if d2l < params.RequiredDistance {
				return ConvergedPole2, step
			}
		}

		// height keeps the pull finite directly above a pole
		a1 := d1.Div(d1l * (d1l*d1l + params.Height))
		a2 := d2.Div(d2l * (d2l*d2l + params.Height))
		ap := p.Scale(-params.Pendulum)
		af := v.Scale(vl * params.Friction)
		a := a1.Add(a2).Scale(params.Attraction).Add(ap).Sub(af)

		p, v = p.Add(v.Scale(dt)).Add(a.Scale(dt*dt)), v.Add(a.Scale(dt))
	}

	return Undetermined, params.MaxSteps
}
