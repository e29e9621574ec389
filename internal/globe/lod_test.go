package globe

import (
	"testing"

	"asciiglobe/internal/geo"
)

func detail() (geo.Detail, *geo.Feature, *geo.Feature) {
	low := box("Norway", "-99", 5, 58, 30, 71)
	high := box("Norway", "NO", 4.9, 57.9, 31, 71.1)
	return geo.NewDetail([]*geo.Feature{low}, []*geo.Feature{high}), low, high
}

func TestLOD_ThresholdCrossing(t *testing.T) {
	d, low, high := detail()
	lod := LODSelector{Threshold: 800}

	if got := lod.Features(d, 800.001); got[0] != high {
		t.Fatalf("just above the threshold should select high detail")
	}
	if got := lod.Features(d, 799.999); got[0] != low {
		t.Fatalf("just below the threshold should select low detail")
	}
	if lod.Level(800) != LevelLow {
		t.Fatalf("the threshold itself is low detail")
	}

	// and back up again
	if lod.Level(799) != LevelLow || lod.Level(801) != LevelHigh {
		t.Fatalf("level must follow the scale in both directions")
	}
}

func TestLOD_MatchByName(t *testing.T) {
	d, low, high := detail()
	lod := LODSelector{Threshold: 800}

	if got := lod.Match(d, low, 5000); got != high {
		t.Fatalf("expected the high detail feature, matched by name")
	}
	if got := lod.Match(d, low, 500); got != low {
		t.Fatalf("expected the low detail feature when zoomed out")
	}

	orphan := box("Atlantis", "AT", -30, 30, -25, 35)
	if got := lod.Match(d, orphan, 5000); got != orphan {
		t.Fatalf("missing high detail geometry should fall back to the low feature")
	}
}

func TestLOD_MatchKeepsColor(t *testing.T) {
	d, low, high := detail()
	lod := LODSelector{Threshold: 800}

	got := lod.Match(d, low.WithColor("#3cb44b"), 5000)
	if got.Color() != "#3cb44b" {
		t.Fatalf("trail color lost, got %q", got.Color())
	}
	if high.Color() != "" {
		t.Fatalf("high detail feature must not be mutated")
	}
}

func TestLOD_EmptyHighSetFallsBack(t *testing.T) {
	low := box("Peru", "PE", -81, -18, -69, 0)
	d := geo.NewDetail([]*geo.Feature{low}, nil)
	if got := (LODSelector{Threshold: 800}).Features(d, 5000); len(got) != 1 || got[0] != low {
		t.Fatalf("expected low detail when no high detail is loaded")
	}
}
