package globe

// Origin tags where a camera transform came from
type Origin int

const (
	// Programmatic transforms are replayed by the application itself, e.g.
	// the zoom reset of a new round. Only their scale is adopted.
	Programmatic Origin = iota
	UserWheel
	UserPinch
	UserDrag
)

// String returns a string representation of the origin
func (o Origin) String() string {
	switch o {
	case Programmatic:
		return "programmatic"
	case UserWheel:
		return "wheel"
	case UserPinch:
		return "pinch"
	case UserDrag:
		return "drag"
	default:
		return "unknown"
	}
}

// User reports whether the transform came from an input device
func (o Origin) User() bool {
	return o != Programmatic
}

// Gesture is one camera transform event
type Gesture struct {
	Origin   Origin
	DX, DY   float64 // pointer movement in logical pixels since the last event
	Factor   float64 // relative zoom, 0 when unused
	Scale    float64 // absolute zoom, 0 when unused
	Pointers int     // active pointers
}

// GestureController maps gestures onto the projection state
type GestureController struct {
	state       *ProjectionState
	sensitivity float64
}

// NewGestureController creates a controller that mutates state
func NewGestureController(state *ProjectionState, sensitivity float64) *GestureController {
	return &GestureController{state: state, sensitivity: sensitivity}
}

// Apply updates the projection state and reports whether it changed.
// Multi-pointer gestures always zoom, even when they carry a translation.
func (c *GestureController) Apply(g Gesture) bool {
	before := *c.state

	switch {
	case g.Origin == Programmatic:
		if g.Scale > 0 {
			c.state.SetScale(g.Scale)
		}
	case g.Origin == UserPinch || g.Pointers >= 2:
		c.zoom(g)
	case g.Origin == UserWheel:
		c.zoom(g)
	case g.Origin == UserDrag:
		k := c.sensitivity / c.state.Scale()
		r := c.state.Rotation()
		c.state.SetRotation(Rotation{
			Lambda: r.Lambda + g.DX*k,
			Phi:    r.Phi - g.DY*k,
		})
	}

	return before.rotation != c.state.rotation || before.scale != c.state.scale
}

func (c *GestureController) zoom(g Gesture) {
	switch {
	case g.Scale > 0:
		c.state.SetScale(g.Scale)
	case g.Factor > 0:
		c.state.SetScale(c.state.Scale() * g.Factor)
	}
}
