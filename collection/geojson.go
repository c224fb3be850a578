package collection

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/peterstace/simplefeatures/geom"
)

// The persisted form is a GeoJSON FeatureCollection extended with the index
// name, the EPSG code and the explicit column dtypes, so that collections
// survive a save/load round trip exactly (index name, columns, dtypes, CRS).

type fileCollection struct {
	Type     string        `json:"type"`
	Index    string        `json:"index_name"`
	EPSG     int           `json:"epsg"`
	Columns  []Column      `json:"columns"`
	Features []fileFeature `json:"features"`
}

type fileFeature struct {
	Type       string          `json:"type"`
	ID         string          `json:"id"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties map[string]any  `json:"properties"`
}

// MarshalJSON implements json.Marshaler.
func (c *Collection) MarshalJSON() ([]byte, error) {
	fc := fileCollection{
		Type:     "FeatureCollection",
		Index:    c.indexName,
		EPSG:     c.epsg,
		Columns:  c.columns,
		Features: make([]fileFeature, 0, len(c.order)),
	}
	for _, name := range c.order {
		r := c.rows[name]
		g, err := r.geometry.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("collection: marshal geometry of row %q: %w", name, err)
		}
		props := make(map[string]any, len(c.columns))
		for _, col := range c.columns {
			if v, ok := r.values[col.Name]; ok {
				props[col.Name] = v
			} else {
				props[col.Name] = nil
			}
		}
		fc.Features = append(fc.Features, fileFeature{
			Type:       "Feature",
			ID:         name,
			Geometry:   g,
			Properties: props,
		})
	}
	return json.Marshal(fc)
}

// UnmarshalJSON implements json.Unmarshaler. Property values are decoded via
// json.Number and re-coerced against the declared column dtypes, so integer
// columns stay integers across round trips.
func (c *Collection) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var fc fileCollection
	if err := dec.Decode(&fc); err != nil {
		return err
	}
	if fc.Type != "FeatureCollection" {
		return fmt.Errorf("collection: unexpected document type %q", fc.Type)
	}

	fresh, err := New(fc.Index, fc.EPSG, fc.Columns...)
	if err != nil {
		return err
	}
	for _, f := range fc.Features {
		var g geom.Geometry
		if len(f.Geometry) > 0 && !bytes.Equal(f.Geometry, []byte("null")) {
			if err := json.Unmarshal(f.Geometry, &g); err != nil {
				return fmt.Errorf("collection: unmarshal geometry of row %q: %w", f.ID, err)
			}
		}
		values := make(map[string]any, len(f.Properties))
		for k, v := range f.Properties {
			if v == nil {
				continue
			}
			values[k] = v
		}
		if err := fresh.Append(f.ID, g, values); err != nil {
			return err
		}
	}
	*c = *fresh
	return nil
}
