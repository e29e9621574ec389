package geo

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestProject_Deterministic(t *testing.T) {
	ll := LatLon{Lat: 48.8, Lon: 2.3}
	a, okA := NewOrthographic(-2, -46, 1234, 400, 300).Project(ll)
	b, okB := NewOrthographic(-2, -46, 1234, 400, 300).Project(ll)
	if !okA || !okB || a != b {
		t.Fatalf("projection not deterministic: %+v/%v vs %+v/%v", a, okA, b, okB)
	}
}

func TestProject_RotationCentersPoint(t *testing.T) {
	target := LatLon{Lat: 51.1, Lon: 10.4}
	p := NewOrthographic(-target.Lon, -target.Lat, 5000, 400, 300)
	pt, ok := p.Project(target)
	if !ok {
		t.Fatalf("centered point must be visible")
	}
	if math.Abs(pt.X-400) > 1e-6 || math.Abs(pt.Y-300) > 1e-6 {
		t.Fatalf("centered point projected to %+v", pt)
	}
	c := p.Center()
	if math.Abs(c.Lat-target.Lat) > 1e-9 || math.Abs(c.Lon-target.Lon) > 1e-9 {
		t.Fatalf("Center() = %+v", c)
	}
}

func TestProject_Orientation(t *testing.T) {
	p := NewOrthographic(0, 0, 100, 0, 0)
	east, _ := p.Project(LatLon{Lat: 0, Lon: 90})
	north, _ := p.Project(LatLon{Lat: 90, Lon: 0})
	if math.Abs(east.X-100) > 1e-9 || math.Abs(east.Y) > 1e-9 {
		t.Fatalf("east limb = %+v", east)
	}
	if math.Abs(north.X) > 1e-9 || math.Abs(north.Y+100) > 1e-9 {
		t.Fatalf("north pole = %+v", north)
	}
}

func TestProject_BackHemisphereHidden(t *testing.T) {
	p := NewOrthographic(0, 0, 100, 0, 0)
	if _, ok := p.Project(LatLon{Lat: 0, Lon: 180}); ok {
		t.Fatalf("antipode must not project")
	}
	if _, ok := p.Project(LatLon{Lat: 10, Lon: 120}); ok {
		t.Fatalf("far side point must not project")
	}
}

func TestProjectLine_CutAtHorizon(t *testing.T) {
	p := NewOrthographic(0, 0, 100, 0, 0)
	runs := p.ProjectLine([]orb.Point{{60, 0}, {120, 0}})
	if len(runs) != 1 {
		t.Fatalf("expected one visible run, got %d", len(runs))
	}
	last := runs[0][len(runs[0])-1]
	if math.Abs(math.Hypot(last.X, last.Y)-100) > 1e-6 {
		t.Fatalf("run should end on the horizon, ended at %+v", last)
	}
}

func TestProjectRing_ClosesAlongHorizon(t *testing.T) {
	p := NewOrthographic(0, 0, 100, 0, 0)
	ring := orb.Ring{{60, -10}, {120, -10}, {120, 10}, {60, 10}, {60, -10}}
	pts := p.ProjectRing(ring)
	if len(pts) < 4 {
		t.Fatalf("clipped ring too short: %d points", len(pts))
	}
	for _, pt := range pts {
		if math.Hypot(pt.X, pt.Y) > 100+1e-6 {
			t.Fatalf("clipped ring leaves the disk at %+v", pt)
		}
	}
}

func TestProjectRing_FullyHidden(t *testing.T) {
	p := NewOrthographic(0, 0, 100, 0, 0)
	ring := orb.Ring{{170, -5}, {175, -5}, {175, 5}, {170, 5}, {170, -5}}
	if pts := p.ProjectRing(ring); pts != nil {
		t.Fatalf("hidden ring should project to nil, got %d points", len(pts))
	}
}

func TestProjectedBound(t *testing.T) {
	f := NewFeature(square(0, 0, 5), nil)
	p := NewOrthographic(0, 0, 1, 0, 0)
	b, ok := p.ProjectedBound(f)
	if !ok {
		t.Fatalf("expected a bound")
	}
	want := math.Cos(5*math.Pi/180) * math.Sin(5*math.Pi/180)
	if math.Abs(b.Max[0]-want) > 1e-9 || math.Abs(b.Min[0]+want) > 1e-9 {
		t.Fatalf("unexpected bound %+v", b)
	}
}
