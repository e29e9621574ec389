package ui

import (
	"fmt"

	"asciiglobe/internal/game"
	"asciiglobe/internal/globe"
	"asciiglobe/internal/render"

	"github.com/gdamore/tcell/v2"
)

// ResultView displays the outcome of a finished round
type ResultView struct {
	box
	game *game.Game
}

// NewResultView creates a new result view
func NewResultView(g *game.Game, x, y, width, height int) *ResultView {
	return &ResultView{
		box:  box{x: x, y: y, width: width, height: height},
		game: g,
	}
}

// Draw renders the result view to the screen
func (r *ResultView) Draw(screen tcell.Screen) {
	target := r.game.Target()
	if target == nil {
		return
	}

	r.clear(screen)

	title := "Round Over"
	switch r.game.Status() {
	case globe.StatusWon:
		title = "Correct!"
	case globe.StatusLost:
		title = "Out of guesses"
	case globe.StatusGivenUp:
		title = "Given up"
	}
	r.drawBorder(screen, title)

	guesses := r.game.Guesses()
	wrong := 0
	closest := -1.0
	for _, g := range guesses {
		if g.Correct {
			continue
		}
		wrong++
		if closest < 0 || g.DistanceKm < closest {
			closest = g.DistanceKm
		}
	}

	name := render.LabelText(target)
	lines := []string{
		fmt.Sprintf("Country:   %s", name),
		fmt.Sprintf("ISO:       %s / %s", target.Properties.ISOA2, target.Properties.ISOA3),
		fmt.Sprintf("Centroid:  %s", game.PositionString(target.Centroid())),
		fmt.Sprintf("Wrong:     %d", wrong),
	}
	if closest >= 0 {
		lines = append(lines, fmt.Sprintf("Closest:   %.0f km", closest))
	}

	for i, line := range lines {
		y := r.y + 1 + i
		if y >= r.y+r.height-1 {
			break
		}
		drawText(screen, r.x+2, y, r.width-4, line, render.StyleLabel)
	}

	instructions := "Ctrl-N new round"
	instX := r.x + (r.width-len(instructions))/2
	drawText(screen, instX, r.y+r.height-1, r.width-2, instructions, render.StyleLabel.Dim(true))
}

// UpdateDimensions updates the view dimensions
func (r *ResultView) UpdateDimensions(x, y, width, height int) {
	r.box = box{x: x, y: y, width: width, height: height}
}
