package codec

import "encoding/json"

// JSON is the standard-library JSON codec.
//
// Notes:
//   - Stable and portable; map keys marshal in sorted order, so output is
//     deterministic for a given value.
//   - Time, complex numbers, funcs, channels, etc. are not supported.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }
