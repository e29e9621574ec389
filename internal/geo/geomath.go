package geo

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// EarthRadiusKm is the mean Earth radius used for distance feedback
const EarthRadiusKm = 6371.0

func toS2(lon, lat float64) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon))
}

func fromVector(v r3.Vector) LatLon {
	ll := s2.LatLngFromPoint(s2.Point{Vector: v})
	return LatLon{Lat: ll.Lat.Degrees(), Lon: ll.Lng.Degrees()}
}

// GeodesicDistance returns the great-circle distance between two points in radians
func GeodesicDistance(a, b LatLon) float64 {
	return s2.LatLngFromDegrees(a.Lat, a.Lon).Distance(s2.LatLngFromDegrees(b.Lat, b.Lon)).Radians()
}

// DistanceKm returns the great-circle distance in kilometers
func DistanceKm(a, b LatLon) float64 {
	return GeodesicDistance(a, b) * EarthRadiusKm
}

// AngularDistanceFromViewCenter returns the angle in radians between the
// feature's centroid and the point facing the viewer
func AngularDistanceFromViewCenter(f *Feature, viewCenter LatLon) float64 {
	return GeodesicDistance(f.Centroid(), viewCenter)
}

// Centroid returns the spherical centroid of a polygon or multipolygon.
// Each ring is fanned into spherical triangles whose signed true centroids are
// summed, so holes subtract from their shell. The result does not depend on
// ring winding: a sum pointing away from the vertices is flipped.
func Centroid(geom orb.Geometry) LatLon {
	var rings []orb.Ring
	switch g := geom.(type) {
	case orb.Polygon:
		rings = g
	case orb.MultiPolygon:
		for _, p := range g {
			rings = append(rings, p...)
		}
	case orb.Ring:
		rings = []orb.Ring{g}
	case orb.Point:
		return LatLon{Lat: g.Lat(), Lon: g.Lon()}
	default:
		return LatLon{}
	}

	var sum, mean r3.Vector
	for _, ring := range rings {
		if len(ring) == 0 {
			continue
		}
		origin := toS2(ring[0].Lon(), ring[0].Lat())
		prev := origin
		for i := 1; i < len(ring); i++ {
			cur := toS2(ring[i].Lon(), ring[i].Lat())
			mean = mean.Add(cur.Vector)
			if !prev.ApproxEqual(origin) && !cur.ApproxEqual(origin) && !cur.ApproxEqual(prev) {
				sum = sum.Add(s2.TrueCentroid(origin, prev, cur).Vector)
			}
			prev = cur
		}
		mean = mean.Add(origin.Vector)
	}

	if mean.Norm() == 0 {
		return LatLon{}
	}
	if sum.Norm() < 1e-15 {
		return fromVector(mean.Normalize())
	}
	if sum.Dot(mean) < 0 {
		sum = sum.Mul(-1)
	}
	return fromVector(sum.Normalize())
}

// NormalizeLon wraps a longitude in degrees into [-180, 180)
func NormalizeLon(lon float64) float64 {
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

// InitialBearing returns the compass bearing in degrees [0, 360) of the
// great circle leaving a toward b
func InitialBearing(a, b LatLon) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180
	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	deg := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}
