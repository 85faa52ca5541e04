package geodata

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

var (
	ErrStatus          = errors.New("geodata: unexpected http status")
	ErrNoGeometry      = errors.New("geodata: no polygon geometry")
	ErrNotCollection   = errors.New("geodata: not a feature collection")
	ErrFeatureNotFound = errors.New("geodata: feature not found")
)

const (
	KindFeatureCollection = "FeatureCollection"
	KindFeature           = "Feature"
)

// Document is a parsed GeoJSON document. A bare geometry is wrapped in a
// single feature without properties.
type Document struct {
	Kind     string
	Features []*geojson.Feature
}

// Decode parses a GeoJSON FeatureCollection, Feature or geometry.
func Decode(data []byte) (*Document, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("geodata: decode: %w", err)
	}

	switch head.Type {
	case KindFeatureCollection:
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("geodata: decode collection: %w", err)
		}
		return &Document{Kind: head.Type, Features: fc.Features}, nil
	case KindFeature:
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("geodata: decode feature: %w", err)
		}
		return &Document{Kind: head.Type, Features: []*geojson.Feature{f}}, nil
	case "":
		return nil, fmt.Errorf("geodata: decode: missing type")
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("geodata: decode geometry: %w", err)
		}
		return &Document{Kind: head.Type, Features: []*geojson.Feature{geojson.NewFeature(g.Geometry())}}, nil
	}
}

// Rings flattens polygons, multi-polygons and collections of them into a
// list of rings in document order. Other geometry types contribute nothing.
func Rings(g orb.Geometry) []orb.Ring {
	return appendRings(nil, g)
}

func appendRings(dst []orb.Ring, g orb.Geometry) []orb.Ring {
	switch g := g.(type) {
	case orb.Ring:
		dst = append(dst, g)
	case orb.Polygon:
		dst = append(dst, g...)
	case orb.MultiPolygon:
		for _, p := range g {
			dst = append(dst, p...)
		}
	case orb.Collection:
		for _, c := range g {
			dst = appendRings(dst, c)
		}
	}
	return dst
}
