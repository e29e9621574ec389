package geo

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func square(lon, lat, half float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{lon - half, lat - half},
		{lon + half, lat - half},
		{lon + half, lat + half},
		{lon - half, lat + half},
		{lon - half, lat - half},
	}}
}

func reversed(p orb.Polygon) orb.Polygon {
	out := make(orb.Polygon, len(p))
	for i, ring := range p {
		r := make(orb.Ring, len(ring))
		for j := range ring {
			r[j] = ring[len(ring)-1-j]
		}
		out[i] = r
	}
	return out
}

func TestCentroid_SymmetricSquare(t *testing.T) {
	c := Centroid(square(10, 0, 2))
	if math.Abs(c.Lon-10) > 1e-6 || math.Abs(c.Lat) > 1e-6 {
		t.Fatalf("centroid of square at (10,0) = %+v", c)
	}
}

func TestCentroid_IndependentOfWinding(t *testing.T) {
	p := square(2.5, 46.5, 2.5)
	a := Centroid(p)
	b := Centroid(reversed(p))
	if math.Abs(a.Lat-b.Lat) > 1e-9 || math.Abs(a.Lon-b.Lon) > 1e-9 {
		t.Fatalf("winding changed centroid: %+v vs %+v", a, b)
	}
	if math.Abs(a.Lon-2.5) > 1e-6 {
		t.Fatalf("expected lon 2.5, got %f", a.Lon)
	}
	// area grows toward the equator
	if a.Lat > 46.5 || a.Lat < 46.0 {
		t.Fatalf("unexpected centroid latitude %f", a.Lat)
	}
}

func TestCentroid_HoleShiftsCentroid(t *testing.T) {
	shell := square(0, 0, 10)[0]
	hole := reversed(square(5, 0, 3))[0]
	c := Centroid(orb.Polygon{shell, hole})
	if c.Lon >= 0 {
		t.Fatalf("hole on the east side should push centroid west, got %+v", c)
	}
}

func TestCentroid_MultiPolygon(t *testing.T) {
	mp := orb.MultiPolygon{square(-20, 0, 2), square(20, 0, 2)}
	c := Centroid(mp)
	if math.Abs(c.Lon) > 1e-6 || math.Abs(c.Lat) > 1e-6 {
		t.Fatalf("two equal squares should balance at origin, got %+v", c)
	}
}

func TestDistanceKm_ParisBerlin(t *testing.T) {
	paris := LatLon{Lat: 48.8566, Lon: 2.3522}
	berlin := LatLon{Lat: 52.52, Lon: 13.405}
	d := DistanceKm(paris, berlin)
	if d < 870 || d > 885 {
		t.Fatalf("Paris-Berlin distance = %.1f km", d)
	}
}

func TestGeodesicDistance_Antipodes(t *testing.T) {
	d := GeodesicDistance(LatLon{Lat: 0, Lon: 0}, LatLon{Lat: 0, Lon: 180})
	if math.Abs(d-math.Pi) > 1e-9 {
		t.Fatalf("antipodal distance = %f", d)
	}
}

func TestAngularDistanceFromViewCenter(t *testing.T) {
	f := NewFeature(square(90, 0, 1), nil)
	d := AngularDistanceFromViewCenter(f, LatLon{})
	if math.Abs(d-math.Pi/2) > 1e-6 {
		t.Fatalf("expected quarter turn, got %f", d)
	}
}

func TestNormalizeLon(t *testing.T) {
	cases := map[float64]float64{0: 0, 190: -170, -190: 170, 360: 0, 180: -180}
	for in, want := range cases {
		if got := NormalizeLon(in); math.Abs(got-want) > 1e-9 {
			t.Fatalf("NormalizeLon(%f) = %f, want %f", in, got, want)
		}
	}
}

func TestInitialBearing(t *testing.T) {
	cases := []struct {
		to   LatLon
		want float64
	}{
		{LatLon{Lat: 10, Lon: 0}, 0},
		{LatLon{Lat: 0, Lon: 10}, 90},
		{LatLon{Lat: -10, Lon: 0}, 180},
		{LatLon{Lat: 0, Lon: -10}, 270},
	}
	for _, c := range cases {
		if got := InitialBearing(LatLon{}, c.to); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("bearing to %+v = %v, want %v", c.to, got, c.want)
		}
	}
}
