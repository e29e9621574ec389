package geo

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/paulmach/orb"
)

const (
	// ClipAngle is the fixed visibility radius of the orthographic view
	ClipAngle = 90.0

	// maxSegment is the longest great-circle edge drawn as one straight segment
	maxSegment = 2.0 * math.Pi / 180.0

	// horizonStep is the angular step used to walk the horizon when closing clipped rings
	horizonStep = 4.0 * math.Pi / 180.0
)

// Point represents a screen coordinate in logical pixels
type Point struct {
	X float64
	Y float64
}

// Orthographic projects the sphere as seen from infinitely far away.
// Rotation follows the usual [lambda, phi] convention: the point
// (-lambda, -phi) faces the viewer. Visibility is clipped at 90 degrees.
type Orthographic struct {
	lambda float64
	phi    float64
	scale  float64
	tx     float64
	ty     float64

	cosL, sinL float64
	cosP, sinP float64
}

// NewOrthographic creates a projection for a rotation in degrees, a scale
// (sphere radius in pixels) and a translate (screen position of the sphere center)
func NewOrthographic(lambda, phi, scale, tx, ty float64) *Orthographic {
	l := lambda * math.Pi / 180
	p := phi * math.Pi / 180
	return &Orthographic{
		lambda: lambda,
		phi:    phi,
		scale:  scale,
		tx:     tx,
		ty:     ty,
		cosL:   math.Cos(l),
		sinL:   math.Sin(l),
		cosP:   math.Cos(p),
		sinP:   math.Sin(p),
	}
}

// Rotation returns the rotation angles in degrees
func (p *Orthographic) Rotation() (lambda, phi float64) {
	return p.lambda, p.phi
}

// Scale returns the projection scale
func (p *Orthographic) Scale() float64 {
	return p.scale
}

// Center returns the geographic point currently facing the viewer
func (p *Orthographic) Center() LatLon {
	return LatLon{Lat: -p.phi, Lon: NormalizeLon(-p.lambda)}
}

// rotate returns the unit vector of a lon/lat point after rotation.
// X points at the viewer, Y east on screen, Z north on screen.
func (p *Orthographic) rotate(lon, lat float64) r3.Vector {
	lonR := lon * math.Pi / 180
	latR := lat * math.Pi / 180
	cosLat := math.Cos(latR)
	x := cosLat * math.Cos(lonR)
	y := cosLat * math.Sin(lonR)
	z := math.Sin(latR)

	// longitude shift by lambda
	x, y = x*p.cosL-y*p.sinL, x*p.sinL+y*p.cosL

	// tilt by phi
	x, z = x*p.cosP-z*p.sinP, z*p.cosP+x*p.sinP

	return r3.Vector{X: x, Y: y, Z: z}
}

func (p *Orthographic) screen(v r3.Vector) Point {
	return Point{X: p.tx + p.scale*v.Y, Y: p.ty - p.scale*v.Z}
}

func visible(v r3.Vector) bool {
	return v.X > 1e-9
}

// Project maps a geographic point to the screen. ok is false for points on
// the far hemisphere.
func (p *Orthographic) Project(ll LatLon) (Point, bool) {
	v := p.rotate(ll.Lon, ll.Lat)
	if !visible(v) {
		return Point{}, false
	}
	return p.screen(v), true
}

// horizonCrossing returns the point where the great circle a-b meets the horizon
func horizonCrossing(a, b r3.Vector) r3.Vector {
	c := a.Mul(math.Abs(b.X)).Add(b.Mul(math.Abs(a.X)))
	c.X = 0
	if c.Norm() == 0 {
		return a
	}
	return c.Normalize()
}

// densify subdivides the great-circle arc a-b so no piece exceeds maxSegment.
// The returned points exclude a and include b.
func densify(a, b r3.Vector) []r3.Vector {
	angle := a.Angle(b).Radians()
	n := int(math.Ceil(angle / maxSegment))
	if n <= 1 {
		return []r3.Vector{b}
	}
	out := make([]r3.Vector, 0, n)
	sinA := math.Sin(angle)
	for i := 1; i < n; i++ {
		t := float64(i) / float64(n)
		wa := math.Sin((1-t)*angle) / sinA
		wb := math.Sin(t*angle) / sinA
		out = append(out, a.Mul(wa).Add(b.Mul(wb)))
	}
	return append(out, b)
}

func (p *Orthographic) rotatedPath(pts []orb.Point) []r3.Vector {
	if len(pts) == 0 {
		return nil
	}
	out := make([]r3.Vector, 0, len(pts))
	prev := p.rotate(pts[0].Lon(), pts[0].Lat())
	out = append(out, prev)
	for _, pt := range pts[1:] {
		cur := p.rotate(pt.Lon(), pt.Lat())
		out = append(out, densify(prev, cur)...)
		prev = cur
	}
	return out
}

// ProjectLine projects a polyline, splitting it where it passes behind the
// horizon. Each returned run is a visible piece ending exactly on the horizon
// where it was cut.
func (p *Orthographic) ProjectLine(pts []orb.Point) [][]Point {
	path := p.rotatedPath(pts)
	var runs [][]Point
	var run []Point
	for i, v := range path {
		if visible(v) {
			if run == nil && i > 0 {
				run = append(run, p.screen(horizonCrossing(path[i-1], v)))
			}
			run = append(run, p.screen(v))
			continue
		}
		if run != nil {
			run = append(run, p.screen(horizonCrossing(path[i-1], v)))
			if len(run) > 1 {
				runs = append(runs, run)
			}
			run = nil
		}
	}
	if len(run) > 1 {
		runs = append(runs, run)
	}
	return runs
}

// ProjectRing projects a closed ring for filling. Hidden stretches are
// replaced by an arc along the horizon between the exit and entry points.
// A ring with no visible vertex projects to nil.
func (p *Orthographic) ProjectRing(ring orb.Ring) []Point {
	path := p.rotatedPath(ring)
	if len(path) < 3 {
		return nil
	}

	start := -1
	for i, v := range path {
		if visible(v) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	n := len(path)
	out := make([]Point, 0, n)
	var exit r3.Vector
	hidden := false
	for k := 0; k <= n; k++ {
		i := (start + k) % n
		v := path[i]
		prev := path[(i-1+n)%n]
		if visible(v) {
			if hidden {
				entry := horizonCrossing(prev, v)
				out = append(out, p.horizonArc(exit, entry)...)
				hidden = false
			}
			if k < n {
				out = append(out, p.screen(v))
			}
			continue
		}
		if !hidden {
			exit = horizonCrossing(prev, v)
			hidden = true
		}
	}
	return out
}

// horizonArc walks the horizon from one crossing to another along the shorter way
func (p *Orthographic) horizonArc(from, to r3.Vector) []Point {
	a := math.Atan2(from.Z, from.Y)
	b := math.Atan2(to.Z, to.Y)
	delta := math.Remainder(b-a, 2*math.Pi)
	steps := int(math.Ceil(math.Abs(delta) / horizonStep))
	out := make([]Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := a
		if steps > 0 {
			t = a + delta*float64(i)/float64(steps)
		}
		out = append(out, p.horizonPoint(t))
	}
	return out
}

func (p *Orthographic) horizonPoint(theta float64) Point {
	return Point{X: p.tx + p.scale*math.Cos(theta), Y: p.ty - p.scale*math.Sin(theta)}
}

// ProjectFeature projects every ring of a feature for filling
func (p *Orthographic) ProjectFeature(f *Feature) [][]Point {
	var rings [][]Point
	for _, poly := range f.Polygons() {
		for _, ring := range poly {
			if r := p.ProjectRing(ring); len(r) > 2 {
				rings = append(rings, r)
			}
		}
	}
	return rings
}

// ProjectOutline projects every ring of a feature as visible line runs
func (p *Orthographic) ProjectOutline(f *Feature) [][]Point {
	var runs [][]Point
	for _, poly := range f.Polygons() {
		for _, ring := range poly {
			runs = append(runs, p.ProjectLine(ring)...)
		}
	}
	return runs
}

// Sphere returns the outline of the visible disk
func (p *Orthographic) Sphere(segments int) []Point {
	out := make([]Point, 0, segments+1)
	for i := 0; i <= segments; i++ {
		out = append(out, p.horizonPoint(2*math.Pi*float64(i)/float64(segments)))
	}
	return out
}

// ProjectedBound returns the screen extent of the visible part of a feature
func (p *Orthographic) ProjectedBound(f *Feature) (orb.Bound, bool) {
	found := false
	var bound orb.Bound
	for _, poly := range f.Polygons() {
		for _, ring := range poly {
			for _, pt := range ring {
				sp, ok := p.Project(LatLon{Lat: pt.Lat(), Lon: pt.Lon()})
				if !ok {
					continue
				}
				op := orb.Point{sp.X, sp.Y}
				if !found {
					bound = orb.Bound{Min: op, Max: op}
					found = true
					continue
				}
				bound = bound.Extend(op)
			}
		}
	}
	return bound, found
}
