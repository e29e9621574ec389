package geo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LoadGeoJSON reads a feature collection file. Country features take their
// name and codes from the usual Natural Earth property keys.
func LoadGeoJSON(path string, kind FeatureKind) ([]*Feature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseGeoJSON(data, kind)
}

// ParseGeoJSON decodes a feature collection into features
func ParseGeoJSON(data []byte, kind FeatureKind) ([]*Feature, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parsing geojson: %w", err)
	}

	features := make([]*Feature, 0, len(fc.Features))
	for _, f := range fc.Features {
		switch f.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
		default:
			continue
		}

		var props *Properties
		if kind == KindCountry {
			props = &Properties{
				Name:  firstString(f.Properties, "name", "NAME", "ADMIN"),
				ISOA2: firstCode(f.Properties, "iso_a2", "ISO_A2", "iso_a2_eh", "ISO_A2_EH"),
				ISOA3: firstCode(f.Properties, "iso_a3", "ISO_A3", "iso_a3_eh", "ISO_A3_EH", "ADM0_A3"),
				Color: firstString(f.Properties, "color"),
			}
			if props.Name == "" {
				continue
			}
		}
		features = append(features, NewFeature(f.Geometry, props))
	}
	return features, nil
}

func firstString(p geojson.Properties, keys ...string) string {
	for _, key := range keys {
		if v := p.MustString(key, ""); v != "" {
			return v
		}
	}
	return ""
}

func firstCode(p geojson.Properties, keys ...string) string {
	values := make([]string, 0, len(keys))
	for _, key := range keys {
		values = append(values, p.MustString(key, ""))
	}
	return isoCode(values...)
}

// LoadFeatureSet loads a data directory holding either Natural Earth
// shapefiles or GeoJSON files with the same base names
func LoadFeatureSet(dataDir string) (FeatureSet, error) {
	if _, err := os.Stat(filepath.Join(dataDir, LowCountriesBase+".shp")); err == nil {
		return NewShapefileLoader(dataDir).LoadAll()
	}

	load := func(base string, kind FeatureKind, required bool) ([]*Feature, error) {
		features, err := LoadGeoJSON(filepath.Join(dataDir, base+".geojson"), kind)
		if err != nil && required {
			return nil, fmt.Errorf("failed to load %s: %w", base, err)
		}
		return features, nil
	}

	lowCountries, err := load(LowCountriesBase, KindCountry, true)
	if err != nil {
		return FeatureSet{}, err
	}
	highCountries, err := load(HighCountriesBase, KindCountry, false)
	if err != nil {
		return FeatureSet{}, err
	}
	lowLand, _ := load(LowLandBase, KindLand, false)
	highLand, _ := load(HighLandBase, KindLand, false)

	return FeatureSet{
		Countries: NewDetail(lowCountries, highCountries),
		Land:      NewDetail(lowLand, highLand),
	}, nil
}
