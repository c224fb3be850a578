package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// floatNumber formats f so that the literal stays recognizable as a float
// (integral values keep a trailing ".0").
func floatNumber(f float64, bits int) json.Number {
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return json.Number(s)
}

// Kind discriminates the persisted shape of a Value.
//
// Every composite value carries its kind explicitly; nothing is inferred from
// key names or other structural sniffing.
type Kind string

const (
	KindScalar   Kind = "scalar"
	KindSequence Kind = "sequence"
	KindRecord   Kind = "record"
	KindTyped    Kind = "typed-value"
)

// Value is the tagged-union form of a persisted attribute value.
type Value struct {
	Kind     Kind             `json:"kind"`
	Scalar   any              `json:"scalar,omitempty"`
	Sequence []Value          `json:"sequence,omitempty"`
	Record   map[string]Value `json:"record,omitempty"`
	TypeName string           `json:"type,omitempty"`
	Payload  json.RawMessage  `json:"payload,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler, decoding scalar numbers via
// json.Number so integers survive round trips.
func (v *Value) UnmarshalJSON(data []byte) error {
	type alias Value
	var a alias
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&a); err != nil {
		return err
	}
	*v = Value(a)
	return nil
}

// Typed marks application values that persist as a typed-value: the value's
// JSON payload is stored together with its stable type name, and decoding
// requires a Registry entry for that name.
type Typed interface {
	TypeName() string
}

// Registry maps stable type names to factories reconstructing typed values
// from their JSON payload.
//
// The registry is supplied explicitly by the caller of Decode; there is no
// process-wide symbol table.
type Registry map[string]func(payload json.RawMessage) (any, error)

// Encode converts a Go value into its tagged Value form.
//
// Supported: nil, string, bool, integer and float types, json.Number, []any,
// map[string]any, and any value implementing Typed (encoded via
// encoding/json).
func Encode(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Value{Kind: KindScalar}, nil
	case string:
		return Value{Kind: KindScalar, Scalar: t}, nil
	case bool:
		return Value{Kind: KindScalar, Scalar: t}, nil
	case json.Number:
		return Value{Kind: KindScalar, Scalar: t}, nil
	case int:
		return Value{Kind: KindScalar, Scalar: json.Number(strconv.FormatInt(int64(t), 10))}, nil
	case int32:
		return Value{Kind: KindScalar, Scalar: json.Number(strconv.FormatInt(int64(t), 10))}, nil
	case int64:
		return Value{Kind: KindScalar, Scalar: json.Number(strconv.FormatInt(t, 10))}, nil
	case float32:
		return Value{Kind: KindScalar, Scalar: floatNumber(float64(t), 32)}, nil
	case float64:
		return Value{Kind: KindScalar, Scalar: floatNumber(t, 64)}, nil
	case []any:
		seq := make([]Value, 0, len(t))
		for _, elem := range t {
			ev, err := Encode(elem)
			if err != nil {
				return Value{}, err
			}
			seq = append(seq, ev)
		}
		return Value{Kind: KindSequence, Sequence: seq}, nil
	case map[string]any:
		rec := make(map[string]Value, len(t))
		for k, elem := range t {
			ev, err := Encode(elem)
			if err != nil {
				return Value{}, err
			}
			rec[k] = ev
		}
		return Value{Kind: KindRecord, Record: rec}, nil
	}
	if typed, ok := v.(Typed); ok {
		payload, err := json.Marshal(v)
		if err != nil {
			return Value{}, fmt.Errorf("codec: marshal typed value %q: %w", typed.TypeName(), err)
		}
		return Value{Kind: KindTyped, TypeName: typed.TypeName(), Payload: payload}, nil
	}
	return Value{}, fmt.Errorf("codec: unsupported value type %T", v)
}

// Decode converts a tagged Value back into a Go value. Typed values are
// resolved through the caller-supplied registry; reg may be nil if no typed
// values occur.
func Decode(v Value, reg Registry) (any, error) {
	switch v.Kind {
	case KindScalar:
		if n, ok := v.Scalar.(json.Number); ok {
			// A literal without a fraction or exponent is an int.
			if !strings.ContainsAny(n.String(), ".eE") {
				return n.Int64()
			}
			return n.Float64()
		}
		return v.Scalar, nil
	case KindSequence:
		out := make([]any, 0, len(v.Sequence))
		for _, elem := range v.Sequence {
			dv, err := Decode(elem, reg)
			if err != nil {
				return nil, err
			}
			out = append(out, dv)
		}
		return out, nil
	case KindRecord:
		out := make(map[string]any, len(v.Record))
		for k, elem := range v.Record {
			dv, err := Decode(elem, reg)
			if err != nil {
				return nil, err
			}
			out[k] = dv
		}
		return out, nil
	case KindTyped:
		factory, ok := reg[v.TypeName]
		if !ok {
			return nil, fmt.Errorf("codec: no factory registered for type %q", v.TypeName)
		}
		return factory(v.Payload)
	default:
		return nil, fmt.Errorf("codec: unknown value kind %q", v.Kind)
	}
}

// EncodeMap encodes a string-keyed map of values into tagged form.
func EncodeMap(m map[string]any) (map[string]Value, error) {
	out := make(map[string]Value, len(m))
	for k, v := range m {
		ev, err := Encode(v)
		if err != nil {
			return nil, fmt.Errorf("codec: key %q: %w", k, err)
		}
		out[k] = ev
	}
	return out, nil
}

// DecodeMap decodes a string-keyed map of tagged values.
func DecodeMap(m map[string]Value, reg Registry) (map[string]any, error) {
	out := make(map[string]any, len(m))
	for k, v := range m {
		dv, err := Decode(v, reg)
		if err != nil {
			return nil, fmt.Errorf("codec: key %q: %w", k, err)
		}
		out[k] = dv
	}
	return out, nil
}
