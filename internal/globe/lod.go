package globe

import "asciiglobe/internal/geo"

// Level is a geometry resolution
type Level int

const (
	LevelLow Level = iota
	LevelHigh
)

// String returns a string representation of the level
func (l Level) String() string {
	if l == LevelHigh {
		return "high"
	}
	return "low"
}

// LODSelector picks a resolution from the scale alone. It keeps no state,
// so zooming back and forth across the threshold switches every frame.
type LODSelector struct {
	Threshold float64
}

// Level returns the resolution for a scale
func (s LODSelector) Level(scale float64) Level {
	if scale > s.Threshold {
		return LevelHigh
	}
	return LevelLow
}

// Features returns the feature list of d at the resolution for scale
func (s LODSelector) Features(d geo.Detail, scale float64) []*geo.Feature {
	if s.Level(scale) == LevelHigh && len(d.High) > 0 {
		return d.High
	}
	return d.Low
}

// Match returns the geometry to draw for f at scale. Features are matched
// by name; f itself is returned when no high detail feature has its name.
// The display color of f carries over.
func (s LODSelector) Match(d geo.Detail, f *geo.Feature, scale float64) *geo.Feature {
	if f == nil || s.Level(scale) == LevelLow {
		return f
	}
	high, ok := d.HighByName(f.Name())
	if !ok {
		return f
	}
	if c := f.Color(); c != "" {
		return high.WithColor(c)
	}
	return high
}
