package geo

import (
	"github.com/paulmach/orb"
)

// FeatureKind distinguishes the two geography types of a FeatureSet
type FeatureKind int

const (
	KindCountry FeatureKind = iota
	KindLand
)

// String returns a string representation of the feature kind
func (k FeatureKind) String() string {
	switch k {
	case KindCountry:
		return "Country"
	case KindLand:
		return "Land"
	default:
		return "Unknown"
	}
}

// LatLon represents a geographic coordinate in degrees
type LatLon struct {
	Lat float64
	Lon float64
}

// UnassignedCode is the Natural Earth placeholder for a missing ISO code
const UnassignedCode = "-99"

// isoCode returns the first assigned code among values. Natural Earth leaves
// ISO_A2 at "-99" for some countries (France, Norway) and keeps the real code
// in ISO_A2_EH.
func isoCode(values ...string) string {
	code := ""
	for _, v := range values {
		switch v {
		case "":
		case UnassignedCode:
			code = UnassignedCode
		default:
			return v
		}
	}
	return code
}

// Properties is the property bag of a country feature
type Properties struct {
	Name  string // Display name, also the key used for guessing
	ISOA2 string // ISO 3166-1 alpha-2, "-99" when unassigned
	ISOA3 string // ISO 3166-1 alpha-3
	Color string // Optional display color as #rrggbb
}

// Feature is an immutable polygon or multipolygon with optional properties.
// Land masses carry nil Properties.
type Feature struct {
	Geometry   orb.Geometry
	Properties *Properties
	centroid   LatLon
}

// NewFeature creates a feature and computes its spherical centroid once
func NewFeature(geom orb.Geometry, props *Properties) *Feature {
	return &Feature{
		Geometry:   geom,
		Properties: props,
		centroid:   Centroid(geom),
	}
}

// Name returns the display name, or "" for land masses
func (f *Feature) Name() string {
	if f == nil || f.Properties == nil {
		return ""
	}
	return f.Properties.Name
}

// Color returns the assigned display color, or "" if none
func (f *Feature) Color() string {
	if f == nil || f.Properties == nil {
		return ""
	}
	return f.Properties.Color
}

// Centroid returns the precomputed spherical centroid
func (f *Feature) Centroid() LatLon {
	return f.centroid
}

// WithColor returns a copy of the feature tagged with a display color.
// Geometry is shared, the receiver is left untouched.
func (f *Feature) WithColor(color string) *Feature {
	props := Properties{Color: color}
	if f.Properties != nil {
		props = *f.Properties
		props.Color = color
	}
	return &Feature{
		Geometry:   f.Geometry,
		Properties: &props,
		centroid:   f.centroid,
	}
}

// Polygons flattens the geometry into its polygons
func (f *Feature) Polygons() []orb.Polygon {
	switch g := f.Geometry.(type) {
	case orb.Polygon:
		return []orb.Polygon{g}
	case orb.MultiPolygon:
		return g
	default:
		return nil
	}
}

// Detail holds the two resolutions of one geography type
type Detail struct {
	Low  []*Feature
	High []*Feature

	lowByName  map[string]*Feature
	highByName map[string]*Feature
}

// NewDetail builds a Detail and its name indexes.
// High and low features are matched by name only: several territories share
// the generic "-99" code so ISO codes are not unique across the two sets.
func NewDetail(low, high []*Feature) Detail {
	return Detail{
		Low:        low,
		High:       high,
		lowByName:  indexByName(low),
		highByName: indexByName(high),
	}
}

func indexByName(features []*Feature) map[string]*Feature {
	index := make(map[string]*Feature, len(features))
	for _, f := range features {
		name := f.Name()
		if name == "" {
			continue
		}
		if _, exists := index[name]; !exists {
			index[name] = f
		}
	}
	return index
}

// LowByName looks up a low-detail feature by exact display name
func (d Detail) LowByName(name string) (*Feature, bool) {
	f, ok := d.lowByName[name]
	return f, ok
}

// HighByName looks up a high-detail feature by exact display name
func (d Detail) HighByName(name string) (*Feature, bool) {
	f, ok := d.highByName[name]
	return f, ok
}

// FeatureSet is the read-only geometry the globe renders
type FeatureSet struct {
	Countries Detail
	Land      Detail
}
