package relativity

import "math"

// Frame is an inertial reference: an origin event and a velocity relative to
// the rest frame. Coordinates measured in the frame put (0, 0) at Origin and
// tilt the axes by VToXAngle(V)/VToTAngle(V).
type Frame struct {
	Origin Coord
	V      float64
}

// AtType selects how the event anchoring a derived frame is chosen along an
// observer's worldline.
type AtType int

const (
	AtT   AtType = iota // by rest-frame time
	AtTau               // by proper time
	AtD                 // by distance traveled
	AtV                 // by velocity
)

func (a AtType) String() string {
	switch a {
	case AtT:
		return "t"
	case AtTau:
		return "tau"
	case AtD:
		return "d"
	case AtV:
		return "v"
	default:
		return "unknown"
	}
}

// FrameOfObserver derives the instantaneous moving frame of an observer at
// the worldline event selected by (at, val).
//
// The frame's velocity is the observer's velocity at that event. Its origin
// is placed where the frame's own proper time reads zero: walk backward from
// the event along the frame's time axis by tau * sqrt(1+v^2)/sqrt(1-v^2),
// which in rest coordinates is a displacement of (gamma*v*tau, gamma*tau).
func FrameOfObserver(o *Observer, at AtType, val float64) (Frame, error) {
	var m Moment
	var err error
	switch at {
	case AtT:
		m, err = o.StateAtT(val)
	case AtTau:
		m, err = o.StateAtTau(val)
	case AtD:
		m, err = o.StateAtD(val)
	case AtV:
		m, err = o.StateAtV(val)
	}
	if err != nil {
		return Frame{}, err
	}

	scaling := math.Sqrt(1+m.V*m.V) / math.Sqrt(1-m.V*m.V)
	back := uniformDirection(m.V).Scale(m.Tau * scaling)
	return Frame{
		Origin: m.Coord().Sub(back),
		V:      m.V,
	}, nil
}

// Axis names the two axes of a frame.
type Axis int

const (
	AxisX Axis = iota
	AxisT
)

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "t"
}

// AxisLine returns the line parallel to the given axis of frame f, offset
// along the frame's other axis by the given amount (measured in the frame).
func AxisLine(axis Axis, f Frame, offset float64) Line {
	switch axis {
	case AxisX:
		return Line{
			Angle: VToXAngle(f.V),
			Point: FromFrame(Coord{X: 0, T: offset}, f),
		}
	default:
		return Line{
			Angle: VToTAngle(f.V),
			Point: FromFrame(Coord{X: offset, T: 0}, f),
		}
	}
}
