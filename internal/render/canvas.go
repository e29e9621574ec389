package render

import (
	"image/color"
	"math"

	"asciiglobe/internal/geo"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

// Each terminal cell is a 2x4 braille dot matrix
const (
	dotsPerCellX = 2
	dotsPerCellY = 4
	brailleBase  = 0x2800
)

// brailleBits maps a dot position inside a cell to its braille bit
var brailleBits = [dotsPerCellX][dotsPerCellY]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// Cell represents a single character cell of the braille raster
type Cell struct {
	Dots  uint8          // braille dot mask
	Fg    colorful.Color // color of the last stroke through this cell
	Bg    colorful.Color // composited fill color
	HasBg bool

	Char  rune   // label glyph, overrides dots
	Comb  []rune // combining runes of the label glyph
	Style tcell.Style
	Cont  bool // covered by the wide glyph to its left
}

// Canvas is a terminal raster: fills color cell backgrounds, strokes set
// braille dots and labels replace whole cells. Logical pixels are square;
// the pixel ratio maps them to dots.
type Canvas struct {
	width  int
	height int
	ratioX float64
	ratioY float64
	cells  [][]Cell
}

// NewCanvas creates a blank canvas of width x height cells.
// aspectRatio is the character cell height divided by its width.
func NewCanvas(width, height int, aspectRatio float64) *Canvas {
	if aspectRatio <= 0 {
		aspectRatio = 2.0
	}
	cells := make([][]Cell, height)
	for i := range cells {
		cells[i] = make([]Cell, width)
	}

	return &Canvas{
		width:  width,
		height: height,
		ratioX: 1,
		// a dot is aspectRatio/2 logical pixels tall
		ratioY: 2 / aspectRatio,
		cells:  cells,
	}
}

// Size returns the logical size
func (c *Canvas) Size() (float64, float64) {
	return float64(c.width*dotsPerCellX) / c.ratioX, float64(c.height*dotsPerCellY) / c.ratioY
}

// at returns the cell at the given position, or an empty cell outside the canvas
func (c *Canvas) at(x, y int) Cell {
	if x >= 0 && x < c.width && y >= 0 && y < c.height {
		return c.cells[y][x]
	}
	return Cell{}
}

// Clear resets the entire canvas
func (c *Canvas) Clear() {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = Cell{}
		}
	}
}

// FillRings composites a fill color onto every cell whose center lies inside the rings
func (c *Canvas) FillRings(rings [][]geo.Point, col color.Color) {
	for row := 0; row < c.height; row++ {
		y := (float64(row*dotsPerCellY) + dotsPerCellY/2) / c.ratioY
		xs := scanline(rings, y)
		for i := 0; i+1 < len(xs); i += 2 {
			x0, x1 := xs[i], xs[i+1]
			start := int(math.Ceil((x0*c.ratioX - 1) / dotsPerCellX))
			if start < 0 {
				start = 0
			}
			for cx := start; cx < c.width; cx++ {
				center := (float64(cx*dotsPerCellX) + 1) / c.ratioX
				if center >= x1 {
					break
				}
				if center < x0 {
					continue
				}
				cell := &c.cells[row][cx]
				base := cell.Bg
				if !cell.HasBg {
					base = colorful.Color{}
				}
				cell.Bg = blend(base, col)
				cell.HasBg = true
			}
		}
	}
}

// StrokeLine draws a polyline with braille dots
func (c *Canvas) StrokeLine(pts []geo.Point, width float64, col color.Color) {
	if len(pts) < 2 {
		return
	}
	fg := blend(colorful.Color{}, col)
	thick := width*c.ratioX >= 1.5
	maxX := float64(c.width*dotsPerCellX - 1)
	maxY := float64(c.height*dotsPerCellY - 1)

	for i := 0; i+1 < len(pts); i++ {
		x0, y0 := pts[i].X*c.ratioX, pts[i].Y*c.ratioY
		x1, y1 := pts[i+1].X*c.ratioX, pts[i+1].Y*c.ratioY
		x0, y0, x1, y1, ok := clipSegment(x0, y0, x1, y1, maxX, maxY)
		if !ok {
			continue
		}
		c.drawLine(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)), fg, thick)
	}
}

// drawLine implements Bresenham's line algorithm in dot space
func (c *Canvas) drawLine(x0, y0, x1, y1 int, fg colorful.Color, thick bool) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)

	sx := -1
	if x0 < x1 {
		sx = 1
	}

	sy := -1
	if y0 < y1 {
		sy = 1
	}

	err := dx - dy

	for {
		c.setDot(x0, y0, fg)
		if thick {
			if dx > dy {
				c.setDot(x0, y0+1, fg)
			} else {
				c.setDot(x0+1, y0, fg)
			}
		}

		if x0 == x1 && y0 == y1 {
			break
		}

		e2 := 2 * err

		if e2 > -dy {
			err -= dy
			x0 += sx
		}

		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) setDot(dx, dy int, fg colorful.Color) {
	if dx < 0 || dy < 0 {
		return
	}
	cx, cy := dx/dotsPerCellX, dy/dotsPerCellY
	if cx >= c.width || cy >= c.height {
		return
	}
	cell := &c.cells[cy][cx]
	cell.Dots |= brailleBits[dx%dotsPerCellX][dy%dotsPerCellY]
	cell.Fg = fg
}

// Text writes a label centered on (x, y). The halo paints the label's cells
// and one cell either side before the glyphs are placed.
func (c *Canvas) Text(x, y float64, text string, fill, halo color.Color) {
	glyphs := splitGlyphs(text)
	width := 0
	for _, g := range glyphs {
		width += g.width
	}

	row := int(y * c.ratioY / dotsPerCellY)
	if row < 0 || row >= c.height {
		return
	}
	start := int(x*c.ratioX/dotsPerCellX) - width/2

	haloColor := blend(colorful.Color{}, halo)
	for cx := start - 1; cx <= start+width; cx++ {
		if cx < 0 || cx >= c.width {
			continue
		}
		cell := &c.cells[row][cx]
		cell.Bg = haloColor
		cell.HasBg = true
		cell.Dots = 0
		cell.Char = 0
		cell.Cont = false
	}

	style := tcell.StyleDefault.Foreground(TcellColor(fill)).Background(TcellColor(halo))
	cx := start
	for _, g := range glyphs {
		if cx >= 0 && cx+g.width <= c.width {
			cell := &c.cells[row][cx]
			cell.Char = g.main
			cell.Comb = g.comb
			cell.Style = style
			for k := 1; k < g.width; k++ {
				c.cells[row][cx+k].Cont = true
			}
		}
		cx += g.width
	}
}

type glyph struct {
	main  rune
	comb  []rune
	width int
}

func isRegionalIndicator(r rune) bool {
	return r >= 0x1F1E6 && r <= 0x1F1FF
}

// splitGlyphs groups flag pairs into one double-width glyph
func splitGlyphs(text string) []glyph {
	runes := []rune(text)
	glyphs := make([]glyph, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if isRegionalIndicator(r) && i+1 < len(runes) && isRegionalIndicator(runes[i+1]) {
			glyphs = append(glyphs, glyph{main: r, comb: []rune{runes[i+1]}, width: 2})
			i++
			continue
		}
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		glyphs = append(glyphs, glyph{main: r, width: w})
	}
	return glyphs
}

// Blit renders the canvas to a tcell screen
func (c *Canvas) Blit(screen tcell.Screen, offsetX, offsetY int) {
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			cell := c.at(x, y)
			if cell.Cont {
				continue
			}
			if cell.Char != 0 {
				screen.SetContent(offsetX+x, offsetY+y, cell.Char, cell.Comb, cell.Style)
				continue
			}

			style := tcell.StyleDefault
			if cell.HasBg {
				style = style.Background(TcellColor(cell.Bg))
			}
			if cell.Dots != 0 {
				style = style.Foreground(TcellColor(cell.Fg))
				screen.SetContent(offsetX+x, offsetY+y, rune(brailleBase+int(cell.Dots)), nil, style)
				continue
			}
			screen.SetContent(offsetX+x, offsetY+y, ' ', nil, style)
		}
	}
}

// clipSegment clips a segment to [0,maxX]x[0,maxY] (Liang-Barsky)
func clipSegment(x0, y0, x1, y1, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0},
		{dx, maxX - x0},
		{-dy, y0},
		{dy, maxY - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// abs returns the absolute value of an integer
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
