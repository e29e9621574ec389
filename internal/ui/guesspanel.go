package ui

import (
	"fmt"

	"asciiglobe/internal/game"
	"asciiglobe/internal/render"

	"github.com/gdamore/tcell/v2"
)

// GuessPanel displays a scrollable list of the round's guesses
type GuessPanel struct {
	box
	guesses       []game.Guess
	left          int
	selectedIndex int
	scrollOffset  int
	maxVisible    int
}

// NewGuessPanel creates a new guess list panel
func NewGuessPanel(x, y, width, height int) *GuessPanel {
	p := &GuessPanel{}
	p.UpdateDimensions(x, y, width, height)
	return p
}

// Update refreshes the guess list; left is the number of guesses left or -1
func (p *GuessPanel) Update(guesses []game.Guess, left int) {
	grew := len(guesses) > len(p.guesses)
	p.guesses = guesses
	p.left = left

	if grew {
		p.selectedIndex = len(p.guesses) - 1
	}
	if p.selectedIndex >= len(p.guesses) {
		p.selectedIndex = len(p.guesses) - 1
	}
	if p.selectedIndex < 0 {
		p.selectedIndex = 0
	}

	p.adjustScroll()
}

// SelectNext moves selection down
func (p *GuessPanel) SelectNext() {
	if p.selectedIndex < len(p.guesses)-1 {
		p.selectedIndex++
		p.adjustScroll()
	}
}

// SelectPrev moves selection up
func (p *GuessPanel) SelectPrev() {
	if p.selectedIndex > 0 {
		p.selectedIndex--
		p.adjustScroll()
	}
}

// adjustScroll adjusts scroll offset to keep selected item visible
func (p *GuessPanel) adjustScroll() {
	if p.selectedIndex >= p.scrollOffset+p.maxVisible {
		p.scrollOffset = p.selectedIndex - p.maxVisible + 1
	}

	if p.selectedIndex < p.scrollOffset {
		p.scrollOffset = p.selectedIndex
	}

	if p.scrollOffset < 0 {
		p.scrollOffset = 0
	}
}

// GetSelected returns the currently selected guess
func (p *GuessPanel) GetSelected() (game.Guess, bool) {
	if p.selectedIndex >= 0 && p.selectedIndex < len(p.guesses) {
		return p.guesses[p.selectedIndex], true
	}
	return game.Guess{}, false
}

// Draw renders the guess list to the screen
func (p *GuessPanel) Draw(screen tcell.Screen) {
	p.clear(screen)

	title := "Guesses"
	if p.left >= 0 {
		title = fmt.Sprintf("Guesses (%d left)", p.left)
	}
	p.drawBorder(screen, title)

	if len(p.guesses) == 0 {
		drawText(screen, p.x+2, p.y+1, p.width-4, "Type a country", render.StyleListItem.Dim(true))
		return
	}

	visibleCount := min(p.maxVisible, len(p.guesses)-p.scrollOffset)
	for i := 0; i < visibleCount; i++ {
		index := p.scrollOffset + i
		guess := p.guesses[index]

		style := render.StyleListItem
		if index == p.selectedIndex {
			style = render.StyleListSelected
		}

		x := p.x + 1
		y := p.y + i + 1

		// color swatch of the trail
		swatch := render.StyleListItem
		if c := guess.Color(); c != "" {
			swatch = swatch.Foreground(render.TcellColor(render.ParseHex(c)))
		}
		screen.SetContent(x, y, '█', nil, swatch)

		used := 1 + drawText(screen, x+1, y, p.width-3, guess.ListDisplay(), style)
		for j := used; j < p.width-2; j++ {
			screen.SetContent(x+j, y, ' ', nil, style)
		}
	}

	if len(p.guesses) > p.maxVisible {
		screen.SetContent(p.x+p.width-2, p.y, '↕', nil, render.StyleLabel)
	}
}

// UpdateDimensions updates the view dimensions
func (p *GuessPanel) UpdateDimensions(x, y, width, height int) {
	p.box = box{x: x, y: y, width: width, height: height}
	p.maxVisible = height - 2
	if p.maxVisible < 1 {
		p.maxVisible = 1
	}
	p.adjustScroll()
}
