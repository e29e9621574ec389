package globe

import (
	"math"
	"testing"
	"time"

	"asciiglobe/internal/geo"
	"asciiglobe/internal/render"
)

type fixture struct {
	globe  *Globe
	frames *fakeFrames
	sound  *countingSound

	france, germany, brazil *geo.Feature
	franceHigh              *geo.Feature
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		frames:     &fakeFrames{},
		sound:      &countingSound{},
		france:     box("France", "FR", -4.8, 42.3, 8.2, 51.1),
		germany:    box("Germany", "DE", 5.9, 47.3, 15.0, 55.1),
		brazil:     box("Brazil", "BR", -73.9, -33.7, -34.8, 5.3),
		franceHigh: box("France", "FR", -4.9, 42.2, 8.3, 51.2),
	}
	features := geo.FeatureSet{
		Countries: geo.NewDetail(
			[]*geo.Feature{f.france, f.germany, f.brazil},
			[]*geo.Feature{f.franceHigh},
		),
		Land: geo.NewDetail(
			[]*geo.Feature{box("", "", -10, 35, 30, 60), box("", "", -80, -40, -35, 10)},
			nil,
		),
	}
	f.globe = New(features, f.frames, f.sound, DefaultOptions())
	f.globe.anim.clock = func() time.Time { return t0 }
	return f
}

func (f *fixture) startRound() {
	f.globe.SetVisualState(VisualState{Target: f.france, Status: StatusPlaying, Difficulty: DifficultyEasy})
}

func TestGlobe_FranceGermanyScenario(t *testing.T) {
	f := newFixture(t)
	g := f.globe
	g.Resize(Viewport{Width: 800, Height: 600})
	f.startRound()

	c := f.france.Centroid()
	if g.Rotation() != (Rotation{Lambda: -c.Lon, Phi: -c.Lat}) {
		t.Fatalf("expected rotation (%v, %v), got %+v", -c.Lon, -c.Lat, g.Rotation())
	}

	bound, _ := geo.NewOrthographic(-c.Lon, -c.Lat, 1, 0, 0).ProjectedBound(f.france)
	fit := math.Min(700/(bound.Max[0]-bound.Min[0]), 500/(bound.Max[1]-bound.Min[1]))
	if math.Abs(g.Scale()-math.Min(fit, 20000)) > 1e-9 {
		t.Fatalf("expected fit scale %v, got %v", fit, g.Scale())
	}
	if g.Animating() || len(f.frames.queue) != 0 || f.sound.n != 0 {
		t.Fatalf("round start must not animate or play a cue")
	}

	pt, _ := g.state.Projection().Project(c)
	if math.Abs(pt.X-400) > 1e-6 || math.Abs(pt.Y-300) > 1e-6 {
		t.Fatalf("France centroid at %+v, want viewport center", pt)
	}

	guess := f.germany.WithColor(GuessColor(0))
	g.SetVisualState(VisualState{
		Target:     f.france,
		Revealed:   []*geo.Feature{guess},
		Status:     StatusPlaying,
		Difficulty: DifficultyEasy,
	})
	if !g.Animating() || f.sound.n != 1 {
		t.Fatalf("wrong guess should start a fly-to with one cue")
	}

	end := f.frames.drain(t0, 16*time.Millisecond, 1000)
	if end.Sub(t0) < 700*time.Millisecond || end.Sub(t0) > 716*time.Millisecond {
		t.Fatalf("fly-to took %v", end.Sub(t0))
	}
	dc := f.germany.Centroid()
	if g.Rotation() != (Rotation{Lambda: -dc.Lon, Phi: -dc.Lat}) {
		t.Fatalf("expected to end on Germany, got %+v", g.Rotation())
	}

	frame := g.Frame()
	if len(frame.Trail) != 1 || frame.Trail[0].Color() != "#e6194b" {
		t.Fatalf("Germany should be trailed in the first palette color")
	}
}

func TestGlobe_DegenerateViewportDefersReset(t *testing.T) {
	f := newFixture(t)
	g := f.globe
	f.startRound()
	if g.Rotation() != (Rotation{}) {
		t.Fatalf("reset ran without a viewport")
	}

	g.Resize(Viewport{Width: 800, Height: 0})
	if g.Rotation() != (Rotation{}) {
		t.Fatalf("reset ran on a degenerate viewport")
	}

	g.Resize(Viewport{Width: 800, Height: 600})
	if g.Rotation() != RotationFor(f.france.Centroid()) {
		t.Fatalf("deferred reset did not run, got %+v", g.Rotation())
	}
}

func TestGlobe_NewRoundCancelsFlight(t *testing.T) {
	f := newFixture(t)
	g := f.globe
	g.Resize(Viewport{Width: 800, Height: 600})
	f.startRound()
	g.RotateToCountry("Brazil")
	if !g.Animating() {
		t.Fatalf("expected a fly-to")
	}

	g.SetVisualState(VisualState{Target: f.germany, Status: StatusPlaying})
	f.frames.drain(t0, 16*time.Millisecond, 1000)
	if g.Rotation() != RotationFor(f.germany.Centroid()) {
		t.Fatalf("stale fly-to overwrote the round start, got %+v", g.Rotation())
	}
}

func TestGlobe_RoundEndFliesToTarget(t *testing.T) {
	f := newFixture(t)
	g := f.globe
	g.Resize(Viewport{Width: 800, Height: 600})
	f.startRound()
	g.HandleGesture(Gesture{Origin: UserDrag, DX: 300, Pointers: 1})

	g.SetVisualState(VisualState{Target: f.france, Status: StatusGivenUp})
	if !g.Animating() || f.sound.n != 1 {
		t.Fatalf("giving up should fly back to the target with a cue")
	}
	f.frames.drain(t0, 16*time.Millisecond, 1000)
	if g.Rotation() != RotationFor(f.france.Centroid()) {
		t.Fatalf("expected to end on France, got %+v", g.Rotation())
	}
}

func TestGlobe_RotateToCountry(t *testing.T) {
	f := newFixture(t)
	g := f.globe
	g.Resize(Viewport{Width: 800, Height: 600})
	f.startRound()

	g.RotateToCountry("france")
	if f.sound.n != 1 || g.Animating() {
		t.Fatalf("unknown name: cue expected, no fly-to")
	}

	g.RotateToCountry("France")
	if f.sound.n != 2 || g.Animating() {
		t.Fatalf("already centered: cue expected, no fly-to")
	}

	g.RotateToCountry("Brazil")
	if f.sound.n != 3 || !g.Animating() {
		t.Fatalf("expected exactly one cue and a fly-to")
	}
}

func TestGlobe_CenterOnTarget(t *testing.T) {
	f := newFixture(t)
	g := f.globe
	g.Resize(Viewport{Width: 800, Height: 600})
	f.startRound()

	g.CenterOnTarget()
	if f.sound.n != 0 || len(f.frames.queue) != 0 {
		t.Fatalf("centered camera: no cue and no frame expected")
	}

	g.HandleGesture(Gesture{Origin: UserDrag, DX: 200, DY: -50, Pointers: 1})
	g.CenterOnTarget()
	if f.sound.n != 1 || !g.Animating() {
		t.Fatalf("expected a fly-to with a cue")
	}
	f.frames.drain(t0, 16*time.Millisecond, 1000)

	pt, _ := g.state.Projection().Project(f.france.Centroid())
	if math.Abs(pt.X-400) > 1e-6 || math.Abs(pt.Y-300) > 1e-6 {
		t.Fatalf("target at %+v after centering", pt)
	}
}

func TestGlobe_UserGestureTakesCamera(t *testing.T) {
	f := newFixture(t)
	g := f.globe
	g.Resize(Viewport{Width: 800, Height: 600})
	f.startRound()

	g.RotateToCountry("Brazil")
	f.frames.step(t0.Add(200 * time.Millisecond))

	g.HandleGesture(Gesture{Origin: UserDrag, DX: 10, Pointers: 1})
	dragged := g.Rotation()
	f.frames.drain(t0.Add(216*time.Millisecond), 16*time.Millisecond, 100)

	if g.Animating() || g.Rotation() != dragged {
		t.Fatalf("animation overwrote the drag: %+v -> %+v", dragged, g.Rotation())
	}
}

func TestGlobe_ProgrammaticZoomKeepsFlight(t *testing.T) {
	f := newFixture(t)
	g := f.globe
	g.Resize(Viewport{Width: 800, Height: 600})
	f.startRound()
	start := g.Scale()

	g.RotateToCountry("Brazil")
	g.HandleGesture(Gesture{Origin: UserWheel, Factor: 2})
	g.RotateToCountry("Brazil")
	g.ZoomReset()
	if !g.Animating() {
		t.Fatalf("programmatic zoom must not cancel the fly-to")
	}
	if g.Scale() != start {
		t.Fatalf("zoom reset should restore %v, got %v", start, g.Scale())
	}
}

func TestGlobe_FrameByDifficulty(t *testing.T) {
	f := newFixture(t)
	g := f.globe
	g.Resize(Viewport{Width: 800, Height: 600})

	g.SetVisualState(VisualState{Target: f.france, Status: StatusPlaying, Difficulty: DifficultyEasy})
	frame := g.Frame()
	if frame.BaseMap != render.BaseMapFilled || len(frame.Land) == 0 || len(frame.Borders) == 0 {
		t.Fatalf("easy should carry land and borders")
	}
	if frame.Target != f.franceHigh {
		t.Fatalf("zoomed in target should use high detail geometry")
	}
	for _, b := range frame.Borders {
		if b.Name() == "Brazil" {
			t.Fatalf("Brazil is far outside the view and should be culled")
		}
	}

	g.SetVisualState(VisualState{Target: f.france, Status: StatusPlaying, Difficulty: DifficultyMedium})
	frame = g.Frame()
	if frame.BaseMap != render.BaseMapOutline || len(frame.Borders) != 0 || len(frame.Land) == 0 {
		t.Fatalf("medium should carry land outlines only")
	}

	g.SetVisualState(VisualState{Target: f.france, Status: StatusPlaying, Difficulty: DifficultyExtreme})
	frame = g.Frame()
	if frame.Land != nil || frame.Borders != nil || frame.Target == nil {
		t.Fatalf("extreme should draw no base map but keep the target")
	}
}

func TestGlobe_LabelsOnlyWhenRevealed(t *testing.T) {
	f := newFixture(t)
	g := f.globe
	g.Resize(Viewport{Width: 800, Height: 600})
	revealed := []*geo.Feature{f.germany.WithColor(GuessColor(0))}

	g.SetVisualState(VisualState{Target: f.france, Revealed: revealed, Status: StatusPlaying})
	if len(g.Frame().Labels) != 0 {
		t.Fatalf("no labels while playing")
	}
	g.SetVisualState(VisualState{Target: f.france, Revealed: revealed, Status: StatusLost})
	if len(g.Frame().Labels) != 0 {
		t.Fatalf("no labels on a lost round")
	}
	g.SetVisualState(VisualState{Target: f.france, Revealed: revealed, Status: StatusWon})
	if len(g.Frame().Labels) != 2 {
		t.Fatalf("expected target and guess labels")
	}
}

func TestGlobe_RenderClearsDirty(t *testing.T) {
	f := newFixture(t)
	g := f.globe
	canvas := render.NewImageCanvas(80, 60, 1)

	g.Render(canvas)
	if !g.Dirty() {
		t.Fatalf("nothing may be drawn without a viewport")
	}

	g.Resize(Viewport{Width: 80, Height: 60})
	g.Render(canvas)
	if g.Dirty() {
		t.Fatalf("render should clear the dirty flag")
	}

	g.HandleGesture(Gesture{Origin: UserWheel, Factor: 1.1})
	if !g.Dirty() {
		t.Fatalf("zoom should mark the globe dirty")
	}
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty(" Hard ")
	if err != nil || d != DifficultyHard {
		t.Fatalf("unexpected %v %v", d, err)
	}
	if _, err := ParseDifficulty("nightmare"); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestGlobe_RestartOnSameTargetResets(t *testing.T) {
	f := newFixture(t)
	g := f.globe
	g.Resize(Viewport{Width: 800, Height: 600})
	g.SetVisualState(VisualState{Round: 1, Target: f.france, Status: StatusPlaying})

	g.HandleGesture(Gesture{Origin: UserDrag, DX: 200, DY: 50, Pointers: 1})
	g.HandleGesture(Gesture{Origin: UserWheel, Factor: 3})
	if g.Rotation() == RotationFor(f.france.Centroid()) {
		t.Fatalf("drag should have moved the camera")
	}

	g.SetVisualState(VisualState{Round: 2, Target: f.france, Status: StatusPlaying})
	if g.Rotation() != RotationFor(f.france.Centroid()) {
		t.Fatalf("restart on the same target should recenter, got %+v", g.Rotation())
	}
	fit, _ := g.state.FitScale(f.france)
	if g.Scale() != fit {
		t.Fatalf("restart should refit the scale, got %v want %v", g.Scale(), fit)
	}
}
