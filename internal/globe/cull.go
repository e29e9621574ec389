package globe

import (
	"math"

	"asciiglobe/internal/geo"
)

// cullSlack widens the visible angle so features do not pop in at the horizon
const cullSlack = 0.5

// EffectiveVisibleAngle returns the angular radius in radians around the
// view center within which features are drawn
func EffectiveVisibleAngle(v Viewport, scale float64) float64 {
	radius := math.Hypot(v.Width, v.Height) / 2
	visible := math.Asin(math.Min(1, radius/scale))
	return math.Max(visible+cullSlack, math.Pi/4)
}

// Cull keeps the features whose centroid lies within maxAngle of center.
// Features without properties are land masses and always pass.
func Cull(features []*geo.Feature, center geo.LatLon, maxAngle float64) []*geo.Feature {
	out := make([]*geo.Feature, 0, len(features))
	for _, f := range features {
		if f.Properties == nil || geo.AngularDistanceFromViewCenter(f, center) <= maxAngle {
			out = append(out, f)
		}
	}
	return out
}
