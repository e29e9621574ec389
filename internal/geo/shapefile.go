package geo

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
)

// Natural Earth base names for the two detail levels
const (
	LowCountriesBase  = "ne_110m_admin_0_countries"
	HighCountriesBase = "ne_50m_admin_0_countries"
	LowLandBase       = "ne_110m_land"
	HighLandBase      = "ne_50m_land"
)

// ShapefileLoader loads and parses ESRI shapefiles
type ShapefileLoader struct {
	dataDir string
}

// NewShapefileLoader creates a new shapefile loader
func NewShapefileLoader(dataDir string) *ShapefileLoader {
	return &ShapefileLoader{
		dataDir: dataDir,
	}
}

// LoadAll loads both detail levels of countries and land.
// Low detail countries are required; any other missing file leaves that
// level empty and the low detail set is drawn at every zoom.
func (s *ShapefileLoader) LoadAll() (FeatureSet, error) {
	lowCountries, err := s.LoadShapefile(s.path(LowCountriesBase), KindCountry)
	if err != nil {
		return FeatureSet{}, fmt.Errorf("failed to load low detail countries: %w", err)
	}

	highCountries, err := s.LoadShapefile(s.path(HighCountriesBase), KindCountry)
	if err != nil {
		fmt.Printf("Warning: failed to load detailed countries: %v\n", err)
	}

	lowLand, err := s.LoadShapefile(s.path(LowLandBase), KindLand)
	if err != nil {
		fmt.Printf("Warning: failed to load land: %v\n", err)
	}

	highLand, err := s.LoadShapefile(s.path(HighLandBase), KindLand)
	if err != nil {
		fmt.Printf("Warning: failed to load detailed land: %v\n", err)
	}

	fmt.Printf("Loaded features: %d/%d countries, %d/%d land polygons\n",
		len(lowCountries), len(highCountries), len(lowLand), len(highLand))

	return FeatureSet{
		Countries: NewDetail(lowCountries, highCountries),
		Land:      NewDetail(lowLand, highLand),
	}, nil
}

func (s *ShapefileLoader) path(base string) string {
	return filepath.Join(s.dataDir, base+".shp")
}

// LoadShapefile loads a polygon shapefile. Country features read their
// name and ISO codes from the attribute table; land features get no properties.
func (s *ShapefileLoader) LoadShapefile(path string, kind FeatureKind) ([]*Feature, error) {
	shape, err := shp.Open(path)
	if err != nil {
		return nil, err
	}
	defer shape.Close()

	fieldIdx := make(map[string]int)
	for i, field := range shape.Fields() {
		// Field names are fixed-size byte arrays padded with nulls
		fieldName := strings.TrimRight(string(field.Name[:]), "\x00 ")
		fieldIdx[strings.ToUpper(fieldName)] = i
	}

	field := func(row int, name string) string {
		if i, ok := fieldIdx[name]; ok {
			return strings.TrimSpace(shape.ReadAttribute(row, i))
		}
		return ""
	}
	attr := func(row int, names ...string) string {
		for _, name := range names {
			if v := field(row, name); v != "" {
				return v
			}
		}
		return ""
	}

	features := make([]*Feature, 0)
	for shape.Next() {
		n, p := shape.Shape()

		geom, ok := p.(*shp.Polygon)
		if !ok {
			continue
		}

		mp := polygonParts(geom.Parts, geom.Points)
		if len(mp) == 0 {
			continue
		}

		var props *Properties
		if kind == KindCountry {
			props = &Properties{
				Name:  attr(n, "NAME", "NAME_EN", "ADMIN"),
				ISOA2: isoCode(field(n, "ISO_A2"), field(n, "ISO_A2_EH")),
				ISOA3: isoCode(field(n, "ISO_A3"), field(n, "ISO_A3_EH"), field(n, "ADM0_A3")),
			}
			if props.Name == "" {
				continue
			}
		}

		var g orb.Geometry = mp
		if len(mp) == 1 {
			g = mp[0]
		}
		features = append(features, NewFeature(g, props))
	}

	return features, nil
}

// polygonParts groups shapefile parts into polygons. Shapefile shells wind
// clockwise and holes counter-clockwise; a hole attaches to the last shell.
func polygonParts(parts []int32, points []shp.Point) orb.MultiPolygon {
	var mp orb.MultiPolygon
	for i, start := range parts {
		end := int32(len(points))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		if end-start < 3 {
			continue
		}

		ring := make(orb.Ring, 0, end-start)
		for _, pt := range points[start:end] {
			ring = append(ring, orb.Point{pt.X, pt.Y})
		}

		if ring.Orientation() == orb.CCW && len(mp) > 0 {
			last := len(mp) - 1
			mp[last] = append(mp[last], ring)
			continue
		}
		mp = append(mp, orb.Polygon{ring})
	}
	return mp
}
