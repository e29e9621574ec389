package globe

import (
	"math"
	"time"

	"asciiglobe/internal/debug"
)

// FrameRequester schedules fn to run once on the owner's goroutine at the
// next animation frame
type FrameRequester interface {
	RequestFrame(fn func(now time.Time))
}

// EaseInOutCubic maps normalized time onto the cubic ease-in-out curve
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

type animationTask struct {
	start      Rotation
	target     Rotation
	startTime  time.Time
	duration   time.Duration
	generation uint64
}

// Scheduler interpolates the rotation toward a target one frame at a time.
// At most one task is current; starting or cancelling bumps the generation
// and stale frames drop themselves.
type Scheduler struct {
	state    *ProjectionState
	frames   FrameRequester
	duration time.Duration
	skip     float64
	clock    func() time.Time
	onTick   func()

	generation uint64
	task       *animationTask
}

// NewScheduler creates a scheduler driving state through frames
func NewScheduler(state *ProjectionState, frames FrameRequester, duration time.Duration, skipDegrees float64) *Scheduler {
	return &Scheduler{
		state:    state,
		frames:   frames,
		duration: duration,
		skip:     skipDegrees,
		clock:    time.Now,
	}
}

// OnTick registers a callback run after every frame that moved the camera
func (s *Scheduler) OnTick(fn func()) {
	s.onTick = fn
}

// Active reports whether a fly-to is in flight
func (s *Scheduler) Active() bool {
	return s.task != nil
}

// Cancel drops the current task, if any
func (s *Scheduler) Cancel() {
	if s.task != nil {
		debug.Log("fly_cancelled", "generation", s.task.generation)
	}
	s.generation++
	s.task = nil
}

// FlyTo starts a fly-to from the current rotation. It returns false without
// scheduling anything when the camera is already within the skip threshold.
func (s *Scheduler) FlyTo(target Rotation) bool {
	target = normalizeRotation(target)
	start := s.state.Rotation()
	if math.Abs(lonDelta(start.Lambda, target.Lambda)) < s.skip && math.Abs(target.Phi-start.Phi) < s.skip {
		return false
	}

	s.generation++
	s.task = &animationTask{
		start:      start,
		target:     target,
		startTime:  s.clock(),
		duration:   s.duration,
		generation: s.generation,
	}
	debug.Log("fly_started",
		"generation", s.generation,
		"from_lambda", start.Lambda, "from_phi", start.Phi,
		"to_lambda", target.Lambda, "to_phi", target.Phi)

	s.frames.RequestFrame(s.frame(s.generation))
	return true
}

func (s *Scheduler) frame(generation uint64) func(time.Time) {
	return func(now time.Time) {
		task := s.task
		if task == nil || task.generation != generation || s.generation != generation {
			return
		}

		t := 1.0
		if task.duration > 0 {
			t = math.Min(1, float64(now.Sub(task.startTime))/float64(task.duration))
		}
		if t < 0 {
			t = 0
		}

		if t >= 1 {
			s.state.SetRotation(task.target)
			s.task = nil
		} else {
			e := EaseInOutCubic(t)
			s.state.SetRotation(Rotation{
				Lambda: task.start.Lambda + lonDelta(task.start.Lambda, task.target.Lambda)*e,
				Phi:    task.start.Phi + (task.target.Phi-task.start.Phi)*e,
			})
		}

		if s.onTick != nil {
			s.onTick()
		}
		if s.task != nil {
			s.frames.RequestFrame(s.frame(generation))
		}
	}
}

// lonDelta returns the signed shortest turn from a to b in degrees
func lonDelta(a, b float64) float64 {
	d := math.Mod(b-a, 360)
	switch {
	case d > 180:
		d -= 360
	case d < -180:
		d += 360
	}
	return d
}
