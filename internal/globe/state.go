package globe

import (
	"math"

	"asciiglobe/internal/geo"
)

// Viewport is the drawing area in logical pixels
type Viewport struct {
	Width  float64
	Height float64
}

// Valid reports whether the viewport is large enough to project into
func (v Viewport) Valid() bool {
	return v.Width >= 1 && v.Height >= 1
}

// Rotation is the projection rotation in degrees. The point (-Lambda, -Phi)
// faces the viewer.
type Rotation struct {
	Lambda float64
	Phi    float64
}

// RotationFor returns the rotation that centers a geographic point
func RotationFor(ll geo.LatLon) Rotation {
	return normalizeRotation(Rotation{Lambda: -ll.Lon, Phi: -ll.Lat})
}

func normalizeRotation(r Rotation) Rotation {
	if r.Lambda < -180 || r.Lambda >= 180 {
		r.Lambda = geo.NormalizeLon(r.Lambda)
	}
	r.Phi = math.Max(-90, math.Min(90, r.Phi))
	return r
}

// ProjectionState is the single source of truth for the camera: rotation,
// scale and the viewport they are projected into
type ProjectionState struct {
	rotation Rotation
	scale    float64
	viewport Viewport

	minScale float64
	maxScale float64
	padding  float64
}

// NewProjectionState creates a camera looking at (0, 0)
func NewProjectionState(opts Options) *ProjectionState {
	s := &ProjectionState{
		minScale: opts.MinScale,
		maxScale: opts.MaxScale,
		padding:  opts.FitPadding,
	}
	s.scale = s.clamp(opts.InitialScale)
	return s
}

// Rotation returns the current rotation
func (s *ProjectionState) Rotation() Rotation {
	return s.rotation
}

// Scale returns the current scale
func (s *ProjectionState) Scale() float64 {
	return s.scale
}

// Viewport returns the current viewport
func (s *ProjectionState) Viewport() Viewport {
	return s.viewport
}

// SetViewport records a new viewport size
func (s *ProjectionState) SetViewport(v Viewport) {
	s.viewport = v
}

// SetRotation sets the rotation, wrapping lambda and clamping phi to the poles
func (s *ProjectionState) SetRotation(r Rotation) {
	s.rotation = normalizeRotation(r)
}

// SetScale sets the scale clamped to the allowed range
func (s *ProjectionState) SetScale(scale float64) {
	s.scale = s.clamp(scale)
}

func (s *ProjectionState) clamp(scale float64) float64 {
	if math.IsNaN(scale) || scale <= 0 {
		return s.minScale
	}
	return math.Max(s.minScale, math.Min(s.maxScale, scale))
}

// Projection builds a fresh projection from the current state, centered in
// the viewport
func (s *ProjectionState) Projection() *geo.Orthographic {
	return geo.NewOrthographic(s.rotation.Lambda, s.rotation.Phi, s.scale, s.viewport.Width/2, s.viewport.Height/2)
}

// FitScale returns the scale that fits the feature, centered on its
// centroid, into the padded viewport. The result is clamped.
func (s *ProjectionState) FitScale(f *geo.Feature) (float64, bool) {
	if f == nil || !s.viewport.Valid() {
		return 0, false
	}
	r := RotationFor(f.Centroid())
	unit := geo.NewOrthographic(r.Lambda, r.Phi, 1, 0, 0)
	bound, ok := unit.ProjectedBound(f)
	if !ok {
		return s.maxScale, true
	}

	w := s.viewport.Width - 2*s.padding
	h := s.viewport.Height - 2*s.padding
	if w <= 0 || h <= 0 {
		w, h = s.viewport.Width, s.viewport.Height
	}

	dx := bound.Max[0] - bound.Min[0]
	dy := bound.Max[1] - bound.Min[1]
	scale := math.Inf(1)
	if dx > 0 {
		scale = w / dx
	}
	if dy > 0 {
		scale = math.Min(scale, h/dy)
	}
	if math.IsInf(scale, 1) {
		return s.maxScale, true
	}
	return s.clamp(scale), true
}

// ResetToTarget centers the feature and fits it into the viewport. It does
// nothing and returns false while the viewport is degenerate.
func (s *ProjectionState) ResetToTarget(f *geo.Feature) bool {
	scale, ok := s.FitScale(f)
	if !ok {
		return false
	}
	s.rotation = RotationFor(f.Centroid())
	s.scale = scale
	return true
}
