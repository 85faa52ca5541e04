package geodata

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Selector picks the geometries of interest out of a parsed document.
type Selector func(doc *Document) ([]orb.Geometry, error)

// Source describes one layer fetch.
type Source struct {
	Layer  Layer
	URL    string
	Select Selector
}

// LandSource takes every feature of a FeatureCollection.
func LandSource(url string) Source {
	return Source{Layer: LayerLand, URL: url, Select: selectCollection}
}

// CountrySource takes a single Feature, or every feature of a collection.
func CountrySource(layer Layer, url string) Source {
	return Source{Layer: layer, URL: url, Select: selectAll}
}

// CountryByCodeSource takes the first feature whose ISO_A2 property equals
// code. Features without geometry are passed over, so a null-geometry entry
// does not hide a later one with the same code.
func CountryByCodeSource(layer Layer, url, code string) Source {
	return Source{Layer: layer, URL: url, Select: func(doc *Document) ([]orb.Geometry, error) {
		for _, f := range doc.Features {
			if f == nil || f.Geometry == nil {
				continue
			}
			if f.Properties.MustString("ISO_A2", "") == code {
				return []orb.Geometry{f.Geometry}, nil
			}
		}
		return nil, fmt.Errorf("%w: ISO_A2=%q", ErrFeatureNotFound, code)
	}}
}

func selectCollection(doc *Document) ([]orb.Geometry, error) {
	if doc.Kind != KindFeatureCollection {
		return nil, fmt.Errorf("%w: got %s", ErrNotCollection, doc.Kind)
	}
	if len(doc.Features) == 0 {
		return nil, ErrNoGeometry
	}
	return selectAll(doc)
}

func selectAll(doc *Document) ([]orb.Geometry, error) {
	out := make([]orb.Geometry, 0, len(doc.Features))
	for _, f := range doc.Features {
		if f != nil && f.Geometry != nil {
			out = append(out, f.Geometry)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoGeometry
	}
	return out, nil
}
