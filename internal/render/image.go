package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strings"

	"asciiglobe/internal/geo"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// ImageCanvas is an RGBA raster whose backing store is the logical viewport
// multiplied by the device pixel ratio. All drawing calls take logical pixels.
type ImageCanvas struct {
	img    *image.RGBA
	width  float64
	height float64
	ratio  float64
	raster *vector.Rasterizer
	face   font.Face
}

// NewImageCanvas creates a canvas for a width x height logical viewport
func NewImageCanvas(width, height int, pixelRatio float64) *ImageCanvas {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	bw := int(math.Round(float64(width) * pixelRatio))
	bh := int(math.Round(float64(height) * pixelRatio))
	return &ImageCanvas{
		img:    image.NewRGBA(image.Rect(0, 0, bw, bh)),
		width:  float64(width),
		height: float64(height),
		ratio:  pixelRatio,
		raster: vector.NewRasterizer(bw, bh),
		face:   basicfont.Face7x13,
	}
}

// Size returns the logical size
func (c *ImageCanvas) Size() (float64, float64) {
	return c.width, c.height
}

// Image returns the backing store
func (c *ImageCanvas) Image() *image.RGBA {
	return c.img
}

// Clear resets every pixel to transparent black
func (c *ImageCanvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

func (c *ImageCanvas) resetRaster() {
	b := c.img.Bounds()
	c.raster.Reset(b.Dx(), b.Dy())
	c.raster.DrawOp = draw.Over
}

func (c *ImageCanvas) flush(col color.Color) {
	c.raster.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

// FillRings fills a set of closed rings in one pass so holes cut out
func (c *ImageCanvas) FillRings(rings [][]geo.Point, col color.Color) {
	c.resetRaster()
	for _, ring := range rings {
		if len(ring) < 3 {
			continue
		}
		c.raster.MoveTo(c.device(ring[0]))
		for _, p := range ring[1:] {
			c.raster.LineTo(c.device(p))
		}
		c.raster.ClosePath()
	}
	c.flush(col)
}

// StrokeLine draws each segment as a quad of the requested width
func (c *ImageCanvas) StrokeLine(pts []geo.Point, width float64, col color.Color) {
	if len(pts) < 2 {
		return
	}
	half := math.Max(width*c.ratio, 1) / 2
	c.resetRaster()
	for i := 0; i+1 < len(pts); i++ {
		ax, ay := pts[i].X*c.ratio, pts[i].Y*c.ratio
		bx, by := pts[i+1].X*c.ratio, pts[i+1].Y*c.ratio
		dx, dy := bx-ax, by-ay
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}
		nx, ny := -dy/length*half, dx/length*half
		c.raster.MoveTo(float32(ax+nx), float32(ay+ny))
		c.raster.LineTo(float32(bx+nx), float32(by+ny))
		c.raster.LineTo(float32(bx-nx), float32(by-ny))
		c.raster.LineTo(float32(ax-nx), float32(ay-ny))
		c.raster.ClosePath()
	}
	c.flush(col)
}

// Text draws a label with a one pixel halo around every glyph
func (c *ImageCanvas) Text(x, y float64, text string, fill, halo color.Color) {
	text = asciiLabel(text)
	advance := font.MeasureString(c.face, text)
	metrics := c.face.Metrics()
	px := int(math.Round(x*c.ratio)) - advance.Ceil()/2
	py := int(math.Round(y*c.ratio)) + (metrics.Ascent.Ceil()-metrics.Descent.Ceil())/2

	d := &font.Drawer{Dst: c.img, Face: c.face, Src: image.NewUniform(halo)}
	for ox := -1; ox <= 1; ox++ {
		for oy := -1; oy <= 1; oy++ {
			if ox == 0 && oy == 0 {
				continue
			}
			d.Dot = fixed.P(px+ox, py+oy)
			d.DrawString(text)
		}
	}
	d.Src = image.NewUniform(fill)
	d.Dot = fixed.P(px, py)
	d.DrawString(text)
}

func (c *ImageCanvas) device(p geo.Point) (float32, float32) {
	return float32(p.X * c.ratio), float32(p.Y * c.ratio)
}

// asciiLabel rewrites flag glyphs as bracketed country codes since the
// bitmap font only covers ASCII
func asciiLabel(text string) string {
	var b strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if isRegionalIndicator(r) && i+1 < len(runes) && isRegionalIndicator(runes[i+1]) {
			fmt.Fprintf(&b, "[%c%c]", 'A'+(r-0x1F1E6), 'A'+(runes[i+1]-0x1F1E6))
			i++
			continue
		}
		if r < 0x80 {
			b.WriteRune(r)
		} else {
			b.WriteRune('?')
		}
	}
	return b.String()
}

// WritePNG encodes the backing store
func (c *ImageCanvas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}
