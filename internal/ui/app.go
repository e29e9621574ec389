package ui

import (
	"errors"
	"fmt"
	"time"

	"asciiglobe/internal/debug"
	"asciiglobe/internal/game"
	"asciiglobe/internal/globe"

	"github.com/gdamore/tcell/v2"
)

// frameInterval is the delay between animation frames
const frameInterval = 16 * time.Millisecond

const (
	panelWidth   = 32
	panelHeight  = 12
	resultWidth  = 44
	resultHeight = 9
)

// frameEvent carries an animation frame callback through the event loop
type frameEvent struct {
	fn func(time.Time)
}

// screenFrames delivers animation frames as interrupt events so that
// callbacks run on the event loop goroutine
type screenFrames struct {
	screen tcell.Screen
}

// RequestFrame posts fn back into the event loop after one frame interval.
// A full event queue delays the frame instead of dropping it.
func (f screenFrames) RequestFrame(fn func(time.Time)) {
	var post func()
	post = func() {
		err := f.screen.PostEvent(tcell.NewEventInterrupt(frameEvent{fn: fn}))
		if errors.Is(err, tcell.ErrEventQFull) {
			debug.Log("frame_delayed", "reason", err.Error())
			time.AfterFunc(frameInterval, post)
		}
	}
	time.AfterFunc(frameInterval, post)
}

// bell plays the camera transition cue on the terminal
type bell struct {
	screen tcell.Screen
	mute   bool
}

func (b bell) PlayTransition() {
	if !b.mute {
		_ = b.screen.Beep()
	}
}

// Options configures the application
type Options struct {
	AspectRatio float64
	Mute        bool
}

// App is the main application controller
type App struct {
	screen     tcell.Screen
	game       *game.Game
	globe      *globe.Globe
	globeView  *GlobeView
	guessPanel *GuessPanel
	resultView *ResultView
	prompt     *Prompt
	quit       bool
}

// NewApp creates the application on an initialized screen and starts the
// first round
func NewApp(screen tcell.Screen, g *game.Game, newGlobe func(globe.FrameRequester, globe.SoundCue) *globe.Globe, opts Options) *App {
	screen.SetStyle(tcell.StyleDefault)
	screen.EnableMouse()
	screen.Clear()

	gl := newGlobe(screenFrames{screen: screen}, bell{screen: screen, mute: opts.Mute})

	width, height := screen.Size()
	app := &App{
		screen:     screen,
		game:       g,
		globe:      gl,
		globeView:  NewGlobeView(gl, width, height-1, opts.AspectRatio),
		guessPanel: NewGuessPanel(width-panelWidth, 0, panelWidth, panelHeight),
		resultView: NewResultView(g, 0, height-1-resultHeight, resultWidth, resultHeight),
		prompt:     NewPrompt(g.Names()),
	}

	if g.Target() == nil {
		g.NewRound()
	}
	app.sync()
	return app
}

// Run processes events until the user quits. Nothing is redrawn while no
// event arrives.
func (a *App) Run() error {
	defer a.cleanup()

	a.render()
	for !a.quit {
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		a.handleEvent(ev)
		if !a.quit {
			a.render()
		}
	}
	return nil
}

// sync pushes the game state into the globe and the panels
func (a *App) sync() {
	a.globe.SetVisualState(a.game.VisualState())
	a.guessPanel.Update(a.game.Guesses(), a.game.GuessesLeft())
}

// render renders the current view to the screen
func (a *App) render() {
	_, height := a.screen.Size()

	a.globeView.Draw(a.screen)
	a.guessPanel.Draw(a.screen)
	if a.game.Status().Ended() {
		a.resultView.Draw(a.screen)
	}
	a.prompt.Draw(a.screen, height-1, a.globeView.width)

	a.screen.Show()
}

// handleEvent dispatches one event
func (a *App) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventInterrupt:
		if frame, ok := ev.Data().(frameEvent); ok {
			frame.fn(ev.When())
		}

	case *tcell.EventKey:
		a.handleKey(ev)

	case *tcell.EventMouse:
		a.globeView.HandleMouse(ev)

	case *tcell.EventResize:
		a.handleResize()
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.quit = true

	case tcell.KeyEnter:
		a.submit()

	case tcell.KeyCtrlG:
		if err := a.game.GiveUp(); err != nil {
			a.prompt.SetMessage(err.Error(), true)
			return
		}
		a.prompt.SetMessage("It was "+a.game.Target().Name(), false)
		a.sync()

	case tcell.KeyCtrlN:
		a.game.NewRound()
		a.prompt.Reset()
		a.prompt.SetMessage(fmt.Sprintf("Round %d", a.game.Round()), false)
		a.sync()

	case tcell.KeyCtrlT:
		a.globe.CenterOnTarget()

	case tcell.KeyCtrlR:
		a.globe.ZoomReset()

	case tcell.KeyUp:
		a.guessPanel.SelectPrev()
		a.rotateToSelected()

	case tcell.KeyDown:
		a.guessPanel.SelectNext()
		a.rotateToSelected()

	case tcell.KeyLeft:
		a.globeView.Nudge(-4, 0)

	case tcell.KeyRight:
		a.globeView.Nudge(4, 0)

	case tcell.KeyPgUp:
		a.globeView.Zoom(a.globe.WheelStep())

	case tcell.KeyPgDn:
		a.globeView.Zoom(1 / a.globe.WheelStep())

	default:
		a.prompt.HandleKey(ev)
	}
}

func (a *App) rotateToSelected() {
	if guess, ok := a.guessPanel.GetSelected(); ok {
		a.globe.RotateToCountry(guess.Name())
	}
}

// submit sends the prompt text as a guess
func (a *App) submit() {
	text := a.prompt.Text()
	if text == "" {
		return
	}

	guess, err := a.game.Guess(text)
	switch {
	case errors.Is(err, game.ErrUnknownCountry):
		a.prompt.SetMessage(fmt.Sprintf("Unknown country %q", text), true)
		return
	case err != nil:
		a.prompt.SetMessage(err.Error(), true)
		a.prompt.Reset()
		return
	}

	a.prompt.Reset()
	if guess.Correct {
		a.prompt.SetMessage("Correct!", false)
	} else {
		a.prompt.SetMessage(fmt.Sprintf("%s: %.0f km %c", guess.Name(), guess.DistanceKm, guess.Direction()), false)
	}
	debug.Log("guess_submitted", "input", text, "correct", guess.Correct)
	a.sync()
}

// handleResize handles terminal resize events
func (a *App) handleResize() {
	a.screen.Sync()
	width, height := a.screen.Size()

	a.globeView.UpdateDimensions(width, height-1)
	a.guessPanel.UpdateDimensions(width-panelWidth, 0, panelWidth, panelHeight)
	a.resultView.UpdateDimensions(0, height-1-resultHeight, resultWidth, resultHeight)
}

// cleanup performs cleanup before exit
func (a *App) cleanup() {
	if a.screen != nil {
		a.screen.Fini()
	}
}
