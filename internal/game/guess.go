package game

import (
	"fmt"

	"asciiglobe/internal/geo"
)

// Guess is one submitted answer
type Guess struct {
	Feature    *geo.Feature // the guessed country, tagged with its trail color when wrong
	Correct    bool
	DistanceKm float64 // centroid to centroid distance to the target
	Bearing    float64 // compass bearing from the guess toward the target
}

// Name returns the guessed country name
func (g Guess) Name() string {
	return g.Feature.Name()
}

// Color returns the trail color, empty for the correct guess
func (g Guess) Color() string {
	return g.Feature.Color()
}

// Direction returns an arrow pointing from the guess toward the target
// N: ^, NE: ┐, E: >, SE: ┘, S: v, SW: └, W: <, NW: ┌
func (g Guess) Direction() rune {
	if g.Correct {
		return '*'
	}

	direction := int(g.Bearing+0.5) % 360
	switch {
	case direction >= 338 || direction < 23:
		return '^'
	case direction < 68:
		return '┐'
	case direction < 113:
		return '>'
	case direction < 158:
		return '┘'
	case direction < 203:
		return 'v'
	case direction < 248:
		return '└'
	case direction < 293:
		return '<'
	default:
		return '┌'
	}
}

// ListDisplay returns the formatted line for the guess list
// Format: "> Germany        862km" or "* France           0km"
func (g Guess) ListDisplay() string {
	return fmt.Sprintf("%c %-14.14s %6.0fkm", g.Direction(), g.Name(), g.DistanceKm)
}

// PositionString formats a coordinate with hemisphere letters
func PositionString(ll geo.LatLon) string {
	lat, lon := ll.Lat, ll.Lon

	latDir := "N"
	if lat < 0 {
		latDir = "S"
		lat = -lat
	}

	lonDir := "E"
	if lon < 0 {
		lonDir = "W"
		lon = -lon
	}

	return fmt.Sprintf("%.2f*%s, %.2f*%s", lat, latDir, lon, lonDir)
}
