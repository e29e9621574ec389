package ui

import (
	"asciiglobe/internal/render"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// box is a bordered screen rectangle shared by the overlay panels
type box struct {
	x, y          int
	width, height int
}

// clear makes the panel interior opaque
func (b box) clear(screen tcell.Screen) {
	defaultStyle := tcell.StyleDefault
	for row := b.y + 1; row < b.y+b.height-1; row++ {
		for col := b.x + 1; col < b.x+b.width-1; col++ {
			screen.SetContent(col, row, ' ', nil, defaultStyle)
		}
	}
}

// drawBorder draws the panel border with a centered title
func (b box) drawBorder(screen tcell.Screen, title string) {
	style := render.StyleLabel

	screen.SetContent(b.x, b.y, '┌', nil, style)
	screen.SetContent(b.x+b.width-1, b.y, '┐', nil, style)
	screen.SetContent(b.x, b.y+b.height-1, '└', nil, style)
	screen.SetContent(b.x+b.width-1, b.y+b.height-1, '┘', nil, style)

	for i := 1; i < b.width-1; i++ {
		screen.SetContent(b.x+i, b.y, '─', nil, style)
		screen.SetContent(b.x+i, b.y+b.height-1, '─', nil, style)
	}

	for i := 1; i < b.height-1; i++ {
		screen.SetContent(b.x, b.y+i, '│', nil, style)
		screen.SetContent(b.x+b.width-1, b.y+i, '│', nil, style)
	}

	if title != "" {
		titleX := b.x + (b.width-runewidth.StringWidth(title))/2
		drawText(screen, titleX, b.y, b.width-2, title, style)
	}
}

// drawText writes text starting at x, truncated to max cells, and returns
// the number of cells used
func drawText(screen tcell.Screen, x, y, max int, text string, style tcell.Style) int {
	used := 0
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if used+w > max {
			break
		}
		screen.SetContent(x+used, y, ch, nil, style)
		used += w
	}
	return used
}
