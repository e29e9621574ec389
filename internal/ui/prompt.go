package ui

import (
	"sort"
	"strings"

	"asciiglobe/internal/render"

	"github.com/gdamore/tcell/v2"
)

// Prompt is the one-line guess input at the bottom of the screen
type Prompt struct {
	input   []rune
	message string
	isError bool
	names   []string // sorted completion candidates
}

// NewPrompt creates a prompt completing from names
func NewPrompt(names []string) *Prompt {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	return &Prompt{names: sorted}
}

// Text returns the current input
func (p *Prompt) Text() string {
	return string(p.input)
}

// Reset clears the input
func (p *Prompt) Reset() {
	p.input = p.input[:0]
}

// SetMessage shows a status message next to the input
func (p *Prompt) SetMessage(msg string, isError bool) {
	p.message = msg
	p.isError = isError
}

// HandleKey edits the input and reports whether the key was consumed
func (p *Prompt) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyRune:
		p.input = append(p.input, ev.Rune())
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(p.input) > 0 {
			p.input = p.input[:len(p.input)-1]
		}
		return true
	case tcell.KeyCtrlU:
		p.Reset()
		return true
	case tcell.KeyTab:
		p.complete()
		return true
	}
	return false
}

// complete extends the input to the longest common prefix of the names it
// starts, ignoring case
func (p *Prompt) complete() {
	prefix := strings.ToLower(p.Text())
	if prefix == "" {
		return
	}
	var matches []string
	for _, name := range p.names {
		if strings.HasPrefix(strings.ToLower(name), prefix) {
			matches = append(matches, name)
		}
	}
	if len(matches) == 0 {
		return
	}

	common := []rune(matches[0])
	for _, m := range matches[1:] {
		mr := []rune(m)
		n := 0
		for n < len(common) && n < len(mr) && strings.EqualFold(string(common[n]), string(mr[n])) {
			n++
		}
		common = common[:n]
	}
	if len(common) >= len(p.input) {
		p.input = append(p.input[:0], common...)
	}
}

// Draw renders the prompt on row y
func (p *Prompt) Draw(screen tcell.Screen, y, width int) {
	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
	}

	label := "Guess> "
	x := drawText(screen, 0, y, width, label, render.StylePrompt)
	x += drawText(screen, x, y, width-x, p.Text(), render.StyleLabel)
	screen.ShowCursor(x, y)

	if p.message == "" {
		return
	}
	style := render.StyleLabel.Dim(true)
	if p.isError {
		style = render.StyleError
	}
	msgX := x + 3
	if msgX < width {
		drawText(screen, msgX, y, width-msgX, p.message, style)
	}
}
