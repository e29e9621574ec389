package render

import (
	"image/color"
	"math"
	"unicode"

	"asciiglobe/internal/debug"
	"asciiglobe/internal/geo"

	"github.com/paulmach/orb"
)

// BaseMap selects how much of the map is drawn under the highlights
type BaseMap int

const (
	BaseMapNone    BaseMap = iota // no hints at all
	BaseMapOutline                // land outlines only
	BaseMapFilled                 // land fill plus country borders
)

// Frame is everything one render pass draws. Feature lists are already
// detail-selected and culled by the caller.
type Frame struct {
	Projection *geo.Orthographic
	BaseMap    BaseMap
	Land       []*geo.Feature
	Borders    []*geo.Feature
	Target     *geo.Feature
	Trail      []*geo.Feature
	Labels     []*geo.Feature
}

// GlobeRenderer draws frames in a fixed z-order
type GlobeRenderer struct {
	graticule [][]orb.Point
	equator   []orb.Point
}

// NewGlobeRenderer creates a renderer with a 10 degree graticule
func NewGlobeRenderer() *GlobeRenderer {
	return &GlobeRenderer{
		graticule: graticuleLines(10, 2),
		equator:   parallel(0, 1),
	}
}

// Draw renders a frame: sphere, graticule, equator, outline, base map,
// target highlight, guess trail and labels. Later layers occlude earlier ones.
func (r *GlobeRenderer) Draw(s Surface, f Frame) {
	proj := f.Projection
	s.Clear()

	sphere := proj.Sphere(128)
	s.FillRings([][]geo.Point{sphere}, ColorOcean)

	for _, line := range r.graticule {
		for _, run := range proj.ProjectLine(line) {
			s.StrokeLine(run, WidthGraticule, ColorGraticule)
		}
	}

	for _, run := range proj.ProjectLine(r.equator) {
		s.StrokeLine(run, WidthEquator, ColorGraticule)
	}

	s.StrokeLine(sphere, WidthSphere, ColorSphereStroke)

	switch f.BaseMap {
	case BaseMapFilled:
		for _, land := range f.Land {
			s.FillRings(proj.ProjectFeature(land), ColorLand)
		}
		for _, country := range f.Borders {
			strokeOutline(s, proj, country, WidthBorder, ColorBorder)
		}
	case BaseMapOutline:
		for _, land := range f.Land {
			strokeOutline(s, proj, land, WidthOutline, ColorLandOutline)
		}
	}

	if f.Target != nil {
		s.FillRings(proj.ProjectFeature(f.Target), ColorTargetFill)
		strokeOutline(s, proj, f.Target, WidthTarget, ColorTargetStroke)
	}

	for _, guess := range f.Trail {
		strokeOutline(s, proj, guess, WidthTrail, ParseHex(guess.Color()))
	}

	center := proj.Center()
	for _, labeled := range f.Labels {
		if geo.AngularDistanceFromViewCenter(labeled, center) >= math.Pi/2 {
			continue
		}
		pt, ok := proj.Project(labeled.Centroid())
		if !ok {
			continue
		}
		s.Text(pt.X, pt.Y, LabelText(labeled), ColorLabel, ColorHalo)
	}

	if debug.Enabled() {
		lambda, phi := proj.Rotation()
		debug.Log("frame_drawn",
			"lambda", lambda,
			"phi", phi,
			"scale", proj.Scale(),
			"land", len(f.Land),
			"borders", len(f.Borders),
			"trail", len(f.Trail),
			"labels", len(f.Labels))
	}
}

func strokeOutline(s Surface, proj *geo.Orthographic, f *geo.Feature, width float64, c color.Color) {
	for _, run := range proj.ProjectOutline(f) {
		s.StrokeLine(run, width, c)
	}
}

// FlagGlyph returns the regional indicator pair for an ISO alpha-2 code,
// or "" when the code is not two letters (e.g. "-99")
func FlagGlyph(alpha2 string) string {
	if len(alpha2) != 2 {
		return ""
	}
	out := make([]rune, 0, 2)
	for _, r := range alpha2 {
		r = unicode.ToUpper(r)
		if r < 'A' || r > 'Z' {
			return ""
		}
		out = append(out, 0x1F1E6+(r-'A'))
	}
	return string(out)
}

// LabelText joins a feature's flag glyph and name
func LabelText(f *geo.Feature) string {
	if f.Properties == nil {
		return ""
	}
	if flag := FlagGlyph(f.Properties.ISOA2); flag != "" {
		return flag + " " + f.Properties.Name
	}
	return f.Properties.Name
}

// graticuleLines returns meridians and parallels every step degrees,
// sampled every sample degrees, without the equator
func graticuleLines(step, sample float64) [][]orb.Point {
	var lines [][]orb.Point
	for lon := -180.0; lon < 180; lon += step {
		var line []orb.Point
		for lat := -80.0; lat <= 80; lat += sample {
			line = append(line, orb.Point{lon, lat})
		}
		lines = append(lines, line)
	}
	for lat := -80.0; lat <= 80; lat += step {
		if lat == 0 {
			continue
		}
		lines = append(lines, parallel(lat, sample))
	}
	return lines
}

// parallel returns a closed line of constant latitude
func parallel(lat, sample float64) []orb.Point {
	var line []orb.Point
	for lon := -180.0; lon <= 180; lon += sample {
		line = append(line, orb.Point{lon, lat})
	}
	return line
}
