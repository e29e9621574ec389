package render

import (
	"image/color"
	"sort"

	"asciiglobe/internal/geo"
)

// Surface is a drawing target addressed in logical (device independent)
// pixels. Implementations scale to their backing store.
type Surface interface {
	// Size returns the logical viewport size
	Size() (width, height float64)
	// Clear resets every pixel
	Clear()
	// FillRings fills the even-odd interior of a set of closed rings
	FillRings(rings [][]geo.Point, c color.Color)
	// StrokeLine draws an open polyline
	StrokeLine(pts []geo.Point, width float64, c color.Color)
	// Text draws a label centered on (x, y), halo first then fill
	Text(x, y float64, text string, fill, halo color.Color)
}

// scanline returns the sorted x positions where the horizontal line at y
// crosses the rings' edges
func scanline(rings [][]geo.Point, y float64) []float64 {
	var xs []float64
	for _, ring := range rings {
		n := len(ring)
		for i := 0; i < n; i++ {
			a := ring[i]
			b := ring[(i+1)%n]
			if (a.Y <= y && b.Y > y) || (b.Y <= y && a.Y > y) {
				t := (y - a.Y) / (b.Y - a.Y)
				xs = append(xs, a.X+t*(b.X-a.X))
			}
		}
	}
	sort.Float64s(xs)
	return xs
}
