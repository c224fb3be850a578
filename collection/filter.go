package collection

import (
	"strconv"

	"github.com/RoaringBitmap/roaring/v2"
)

// FilterIndex is an inverted index over column values: one posting list of
// row positions per (column, value) pair. It is a point-in-time snapshot of
// the collection it was built from; rebuild after mutating the collection.
type FilterIndex struct {
	names    []string
	postings map[string]map[string]*roaring.Bitmap
}

// BuildFilterIndex indexes the given columns of c for equality lookups.
// Only string, int and bool columns can be indexed; rows with a null value in
// a column are absent from that column's postings.
func BuildFilterIndex(c *Collection, columns ...string) (*FilterIndex, error) {
	ix := &FilterIndex{
		names:    c.Names(),
		postings: make(map[string]map[string]*roaring.Bitmap, len(columns)),
	}
	for _, column := range columns {
		idx, ok := c.colIndex[column]
		if !ok {
			return nil, &ErrMissingColumns{Columns: []string{column}}
		}
		col := c.columns[idx]
		if col.Dtype == DtypeFloat {
			return nil, &ErrDtype{Column: column, Dtype: col.Dtype, Value: "float columns cannot be filter-indexed"}
		}
		ix.postings[column] = map[string]*roaring.Bitmap{}
	}
	for pos, name := range ix.names {
		r := c.rows[name]
		for column := range ix.postings {
			v, ok := r.values[column]
			if !ok {
				continue
			}
			token := tokenize(v)
			bm, ok := ix.postings[column][token]
			if !ok {
				bm = roaring.New()
				ix.postings[column][token] = bm
			}
			bm.Add(uint32(pos))
		}
	}
	return ix, nil
}

// Eq returns the names of all rows whose value in column equals value, in
// row order. An unindexed column yields no rows.
func (ix *FilterIndex) Eq(column string, value any) []string {
	byToken, ok := ix.postings[column]
	if !ok {
		return nil
	}
	bm, ok := byToken[tokenize(value)]
	if !ok {
		return nil
	}
	names := make([]string, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		names = append(names, ix.names[it.Next()])
	}
	return names
}

func tokenize(v any) string {
	switch t := v.(type) {
	case string:
		return "s:" + t
	case int:
		return "i:" + strconv.FormatInt(int64(t), 10)
	case int64:
		return "i:" + strconv.FormatInt(t, 10)
	case bool:
		return "b:" + strconv.FormatBool(t)
	default:
		return ""
	}
}
