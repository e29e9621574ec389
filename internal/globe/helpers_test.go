package globe

import (
	"time"

	"asciiglobe/internal/geo"

	"github.com/paulmach/orb"
)

func box(name, a2 string, minLon, minLat, maxLon, maxLat float64) *geo.Feature {
	ring := orb.Ring{
		{minLon, minLat}, {minLon, maxLat}, {maxLon, maxLat}, {maxLon, minLat}, {minLon, minLat},
	}
	var props *geo.Properties
	if name != "" {
		props = &geo.Properties{Name: name, ISOA2: a2}
	}
	return geo.NewFeature(orb.Polygon{ring}, props)
}

// fakeFrames queues frame callbacks until the test runs them
type fakeFrames struct {
	queue []func(time.Time)
}

func (f *fakeFrames) RequestFrame(fn func(time.Time)) {
	f.queue = append(f.queue, fn)
}

func (f *fakeFrames) step(now time.Time) int {
	q := f.queue
	f.queue = nil
	for _, fn := range q {
		fn(now)
	}
	return len(q)
}

// drain runs frames every interval from start until none are pending and
// returns the time of the last frame
func (f *fakeFrames) drain(start time.Time, interval time.Duration, max int) time.Time {
	now := start
	for i := 0; i < max && len(f.queue) > 0; i++ {
		f.step(now)
		if len(f.queue) == 0 {
			return now
		}
		now = now.Add(interval)
	}
	return now
}

type countingSound struct {
	n int
}

func (c *countingSound) PlayTransition() {
	c.n++
}
