package render

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Globe palette
var (
	ColorOcean        = color.NRGBA{R: 0x1b, G: 0x3a, B: 0x5c, A: 0xff}
	ColorGraticule    = color.NRGBA{R: 0x4a, G: 0x6f, B: 0x94, A: 0xff}
	ColorSphereStroke = color.NRGBA{R: 0x9f, G: 0xc4, B: 0xe8, A: 0xff}
	ColorLand         = color.NRGBA{R: 0x3d, G: 0x6b, B: 0x3a, A: 0xff}
	ColorBorder       = color.NRGBA{R: 0xd8, G: 0xd8, B: 0xc8, A: 0xff}
	ColorLandOutline  = color.NRGBA{R: 0xb8, G: 0xd8, B: 0xa8, A: 0xff}
	ColorTargetFill   = color.NRGBA{R: 0xff, G: 0xc1, B: 0x07, A: 0x73}
	ColorTargetStroke = color.NRGBA{R: 0xff, G: 0xa0, B: 0x00, A: 0xff}
	ColorLabel        = color.NRGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}
	ColorHalo         = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Stroke widths in logical pixels
const (
	WidthGraticule = 0.5
	WidthEquator   = 1.5
	WidthSphere    = 1.0
	WidthBorder    = 0.5
	WidthOutline   = 1.0
	WidthTarget    = 2.0
	WidthTrail     = 2.0
)

// Panel styles
var (
	StyleLabel        = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	StyleListItem     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	StyleListSelected = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	StylePrompt       = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	StyleError        = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// ParseHex converts a #rrggbb string into an opaque color, falling back to
// the target stroke color on malformed input
func ParseHex(hex string) color.NRGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return ColorTargetStroke
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// TcellColor converts a color into a terminal true color
func TcellColor(c color.Color) tcell.Color {
	cc, _ := colorful.MakeColor(c)
	r, g, b := cc.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// blend composites src over dst using src's alpha
func blend(dst colorful.Color, src color.Color) colorful.Color {
	nrgba := color.NRGBAModel.Convert(src).(color.NRGBA)
	top := colorful.Color{R: float64(nrgba.R) / 255, G: float64(nrgba.G) / 255, B: float64(nrgba.B) / 255}
	return dst.BlendRgb(top, float64(nrgba.A)/255).Clamped()
}
