package globe

import (
	"fmt"
	"strings"

	"asciiglobe/internal/debug"
	"asciiglobe/internal/geo"
	"asciiglobe/internal/render"
)

// Status is the game state as seen by the globe
type Status int

const (
	StatusReady Status = iota
	StatusPlaying
	StatusWon
	StatusLost
	StatusGivenUp
)

// String returns a string representation of the status
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	case StatusGivenUp:
		return "given_up"
	default:
		return "unknown"
	}
}

// Ended reports whether the round is over
func (s Status) Ended() bool {
	return s == StatusWon || s == StatusLost || s == StatusGivenUp
}

// Revealed reports whether the answer is shown with labels
func (s Status) Revealed() bool {
	return s == StatusWon || s == StatusGivenUp
}

// Difficulty controls how much of the base map is drawn
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
	DifficultyExtreme
)

// String returns a string representation of the difficulty
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	case DifficultyExtreme:
		return "extreme"
	default:
		return "unknown"
	}
}

// ParseDifficulty parses a difficulty name
func ParseDifficulty(name string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	case "extreme":
		return DifficultyExtreme, nil
	}
	return 0, fmt.Errorf("unknown difficulty %q (want easy, medium, hard or extreme)", name)
}

// BaseMap returns the base map drawn at this difficulty
func (d Difficulty) BaseMap() render.BaseMap {
	switch d {
	case DifficultyEasy:
		return render.BaseMapFilled
	case DifficultyMedium:
		return render.BaseMapOutline
	default:
		return render.BaseMapNone
	}
}

// VisualState is what the game shows on the globe. It is owned by the
// caller and replaced wholesale; the globe only reads it.
type VisualState struct {
	Round      int // changes whenever a round starts, even on the same target
	Target     *geo.Feature
	Revealed   []*geo.Feature // wrong guesses in guess order, each tagged with its color
	Status     Status
	Difficulty Difficulty
}

// SoundCue plays the camera transition sound
type SoundCue interface {
	PlayTransition()
}

type silence struct{}

func (silence) PlayTransition() {}

// Globe ties the camera, its animations and the renderer to the game state.
// All methods must be called from the goroutine that runs frame callbacks.
type Globe struct {
	features geo.FeatureSet
	state    *ProjectionState
	gestures *GestureController
	anim     *Scheduler
	lod      LODSelector
	renderer *render.GlobeRenderer
	sound    SoundCue
	wheel    float64

	visual       VisualState
	pendingReset bool
	dirty        bool
}

// New creates a globe over features. frames delivers animation ticks and
// sound may be nil.
func New(features geo.FeatureSet, frames FrameRequester, sound SoundCue, opts Options) *Globe {
	if sound == nil {
		sound = silence{}
	}
	state := NewProjectionState(opts)
	g := &Globe{
		features: features,
		state:    state,
		gestures: NewGestureController(state, opts.Sensitivity),
		anim:     NewScheduler(state, frames, opts.FlyDuration, opts.SkipThreshold),
		lod:      LODSelector{Threshold: opts.LODThreshold},
		renderer: render.NewGlobeRenderer(),
		sound:    sound,
		wheel:    opts.WheelStep,
		dirty:    true,
	}
	g.anim.OnTick(func() { g.dirty = true })
	return g
}

// Rotation returns the current camera rotation
func (g *Globe) Rotation() Rotation {
	return g.state.Rotation()
}

// Scale returns the current camera scale
func (g *Globe) Scale() float64 {
	return g.state.Scale()
}

// Viewport returns the current viewport
func (g *Globe) Viewport() Viewport {
	return g.state.Viewport()
}

// Animating reports whether a fly-to is in flight
func (g *Globe) Animating() bool {
	return g.anim.Active()
}

// Dirty reports whether anything changed since the last Render
func (g *Globe) Dirty() bool {
	return g.dirty
}

// WheelStep returns the zoom factor of one wheel notch
func (g *Globe) WheelStep() float64 {
	return g.wheel
}

// Resize records a new viewport. A round-start reset deferred by a
// degenerate viewport runs as soon as the size is usable.
func (g *Globe) Resize(v Viewport) {
	if v == g.state.Viewport() {
		return
	}
	g.state.SetViewport(v)
	g.dirty = true
	if g.pendingReset && v.Valid() {
		g.resetToTarget()
	}
}

// SetVisualState replaces the game state and reacts to what changed:
// a new round resets the camera, a new wrong guess flies to it, and the end
// of a round flies to the answer.
func (g *Globe) SetVisualState(vs VisualState) {
	prev := g.visual
	g.visual = vs
	g.dirty = true

	if vs.Target == nil {
		g.pendingReset = false
		return
	}

	newRound := prev.Target == nil ||
		prev.Round != vs.Round ||
		prev.Target.Name() != vs.Target.Name() ||
		(prev.Status.Ended() && !vs.Status.Ended())
	if newRound {
		g.anim.Cancel()
		g.resetToTarget()
		return
	}

	switch {
	case vs.Status == StatusPlaying && len(vs.Revealed) > len(prev.Revealed):
		g.flyTo(vs.Revealed[len(vs.Revealed)-1], true)
	case (vs.Status == StatusWon || vs.Status == StatusGivenUp) && prev.Status != vs.Status:
		g.flyTo(vs.Target, true)
	}
}

func (g *Globe) resetToTarget() {
	if !g.state.ResetToTarget(g.visual.Target) {
		g.pendingReset = true
		debug.Log("reset_deferred", "target", g.visual.Target.Name())
		return
	}
	g.pendingReset = false
	g.dirty = true
	r := g.state.Rotation()
	debug.Log("camera_reset",
		"target", g.visual.Target.Name(),
		"lambda", r.Lambda, "phi", r.Phi,
		"scale", g.state.Scale())
}

// flyTo starts a fly-to to the feature's centroid and plays the cue if the
// camera actually moves and cue is set
func (g *Globe) flyTo(f *geo.Feature, cue bool) bool {
	if f == nil {
		return false
	}
	started := g.anim.FlyTo(RotationFor(f.Centroid()))
	if !started {
		debug.Log("fly_skipped", "feature", f.Name())
	}
	if started && cue {
		g.sound.PlayTransition()
	}
	return started
}

// RotateToCountry flies to the country with the exact display name. The
// transition cue plays even when the name is unknown or no movement is
// needed; unknown names are otherwise ignored.
func (g *Globe) RotateToCountry(name string) {
	g.sound.PlayTransition()
	f, ok := g.features.Countries.LowByName(name)
	if !ok {
		debug.Log("rotate_unknown_country", "name", name)
		return
	}
	g.flyTo(f, false)
}

// CenterOnTarget flies to the current target
func (g *Globe) CenterOnTarget() {
	g.flyTo(g.visual.Target, true)
}

// HandleGesture applies a camera gesture. User gestures take the camera
// from any running fly-to.
func (g *Globe) HandleGesture(ev Gesture) {
	if ev.Origin.User() {
		g.anim.Cancel()
	}
	if g.gestures.Apply(ev) {
		g.dirty = true
	}
}

// ZoomReset replays the round-start scale without touching the rotation
func (g *Globe) ZoomReset() {
	scale, ok := g.state.FitScale(g.visual.Target)
	if !ok {
		return
	}
	g.HandleGesture(Gesture{Origin: Programmatic, Scale: scale})
}

// Frame assembles the render pass for the current camera: detail level,
// culled base map, highlights and labels
func (g *Globe) Frame() render.Frame {
	proj := g.state.Projection()
	scale := g.state.Scale()
	vs := g.visual

	f := render.Frame{
		Projection: proj,
		BaseMap:    vs.Difficulty.BaseMap(),
	}

	if f.BaseMap != render.BaseMapNone {
		center := proj.Center()
		angle := EffectiveVisibleAngle(g.state.Viewport(), scale)
		f.Land = Cull(g.lod.Features(g.features.Land, scale), center, angle)
		if f.BaseMap == render.BaseMapFilled {
			f.Borders = Cull(g.lod.Features(g.features.Countries, scale), center, angle)
		}
	}

	f.Target = g.lod.Match(g.features.Countries, vs.Target, scale)
	f.Trail = make([]*geo.Feature, 0, len(vs.Revealed))
	for _, guess := range vs.Revealed {
		f.Trail = append(f.Trail, g.lod.Match(g.features.Countries, guess, scale))
	}

	if vs.Status.Revealed() {
		if vs.Target != nil {
			f.Labels = append(f.Labels, vs.Target)
		}
		f.Labels = append(f.Labels, vs.Revealed...)
	}

	return f
}

// Render draws the current frame onto s and clears the dirty flag.
// Nothing is drawn while the viewport is degenerate.
func (g *Globe) Render(s render.Surface) {
	if !g.state.Viewport().Valid() {
		return
	}
	g.renderer.Draw(s, g.Frame())
	g.dirty = false
}
