/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidDocument is returned when plain JSON cannot be mapped to a Document.
var ErrInvalidDocument = errors.New("invalid document")

// FromJSON maps one plain JSON object to a Document: strings become String,
// numbers become Number with their exact text, objects become Map, arrays of
// strings become StringSet and null becomes Null. Booleans and arrays holding
// anything but strings are rejected.
func FromJSON(raw []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrInvalidDocument)
	}

	m, err := fromJSONObject(obj)
	if err != nil {
		return nil, err
	}
	return Document(m), nil
}

func fromJSONObject(obj map[string]any) (Map, error) {
	out := make(Map, len(obj))
	for k, raw := range obj {
		v, err := fromJSONValue(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: attribute %q %v", ErrInvalidDocument, k, err)
		}
		out[k] = v
	}
	return out, nil
}

func fromJSONValue(raw any) (Value, error) {
	switch tv := raw.(type) {
	case nil:
		return Null{}, nil
	case string:
		return String(tv), nil
	case json.Number:
		return Number(tv.String()), nil
	case map[string]any:
		return fromJSONObject(tv)
	case []any:
		set := make(StringSet, 0, len(tv))
		for _, elem := range tv {
			s, ok := elem.(string)
			if !ok {
				return nil, fmt.Errorf("is an array holding %T, only strings are supported", elem)
			}
			set = append(set, s)
		}
		return set, nil
	default:
		return nil, fmt.Errorf("has unsupported JSON type %T", raw)
	}
}

// ToJSON renders a Document as plain JSON, the inverse of FromJSON.
func ToJSON(d Document) ([]byte, error) {
	plain, err := toPlain(Map(d))
	if err != nil {
		return nil, err
	}
	return json.Marshal(plain)
}

func toPlain(v Value) (any, error) {
	switch tv := v.(type) {
	case String:
		return string(tv), nil
	case Number:
		if !tv.Valid() {
			return nil, fmt.Errorf("number %q %w", string(tv), ErrNotNumeric)
		}
		return json.Number(tv), nil
	case StringSet:
		return []string(tv.Normalize()), nil
	case Map:
		out := make(map[string]any, len(tv))
		for k, inner := range tv {
			p, err := toPlain(inner)
			if err != nil {
				return nil, fmt.Errorf("attribute %q: %w", k, err)
			}
			out[k] = p
		}
		return out, nil
	case Null:
		return nil, nil
	case Unsupported:
		return nil, fmt.Errorf("cannot render unsupported attribute type %s", tv.Type)
	default:
		return nil, fmt.Errorf("unknown attribute value %T", v)
	}
}

// typedValue is the DynamoDB JSON shape of one attribute, e.g. {"N":"3"}.
type typedValue struct {
	S    *string                `json:"S,omitempty"`
	N    *string                `json:"N,omitempty"`
	SS   []string               `json:"SS,omitempty"`
	M    *map[string]typedValue `json:"M,omitempty"`
	NULL *bool                  `json:"NULL,omitempty"`
}

// MarshalTyped renders a Document in the store's typed JSON form
// ({"Id":{"N":"3"}}). Unlike plain JSON it keeps the kind of every attribute.
func MarshalTyped(d Document) ([]byte, error) {
	out := make(map[string]typedValue, len(d))
	for k, v := range d {
		tv, err := toTyped(v)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", k, err)
		}
		out[k] = tv
	}
	return json.Marshal(out)
}

// UnmarshalTyped parses the output of MarshalTyped.
func UnmarshalTyped(b []byte) (Document, error) {
	var in map[string]typedValue
	if err := json.Unmarshal(b, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	out := make(Document, len(in))
	for k, tv := range in {
		v, err := fromTyped(tv)
		if err != nil {
			return nil, fmt.Errorf("%w: attribute %q %v", ErrInvalidDocument, k, err)
		}
		out[k] = v
	}
	return out, nil
}

func toTyped(v Value) (typedValue, error) {
	switch tv := v.(type) {
	case String:
		s := string(tv)
		return typedValue{S: &s}, nil
	case Number:
		if !tv.Valid() {
			return typedValue{}, fmt.Errorf("number %q %w", string(tv), ErrNotNumeric)
		}
		n := string(tv)
		return typedValue{N: &n}, nil
	case StringSet:
		if len(tv) == 0 {
			return typedValue{}, fmt.Errorf("string sets cannot be empty")
		}
		return typedValue{SS: tv.Normalize()}, nil
	case Map:
		m := make(map[string]typedValue, len(tv))
		for k, inner := range tv {
			typed, err := toTyped(inner)
			if err != nil {
				return typedValue{}, fmt.Errorf("attribute %q: %w", k, err)
			}
			m[k] = typed
		}
		return typedValue{M: &m}, nil
	case Null:
		t := true
		return typedValue{NULL: &t}, nil
	default:
		return typedValue{}, fmt.Errorf("cannot encode attribute value %T", v)
	}
}

func fromTyped(tv typedValue) (Value, error) {
	switch {
	case tv.S != nil:
		return String(*tv.S), nil
	case tv.N != nil:
		n := Number(*tv.N)
		if !n.Valid() {
			return nil, fmt.Errorf("number %q %w", *tv.N, ErrNotNumeric)
		}
		return n, nil
	case tv.SS != nil:
		return StringSet(tv.SS).Normalize(), nil
	case tv.M != nil:
		m := make(Map, len(*tv.M))
		for k, inner := range *tv.M {
			v, err := fromTyped(inner)
			if err != nil {
				return nil, err
			}
			m[k] = v
		}
		return m, nil
	case tv.NULL != nil:
		return Null{}, nil
	default:
		return nil, fmt.Errorf("has no recognised type")
	}
}
