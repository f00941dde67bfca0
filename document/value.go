/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package document

import (
	"sort"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindStringSet
	KindMap
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "NULL"
	case KindString:
		return "S"
	case KindNumber:
		return "N"
	case KindStringSet:
		return "SS"
	case KindMap:
		return "M"
	default:
		return "UNSUPPORTED"
	}
}

// Value is a single attribute value. The set of implementations is closed:
// String, Number, StringSet, Map, Null and Unsupported.
type Value interface {
	Kind() Kind
	isValue()
}

// String is a string attribute.
type String string

// Number is a numeric attribute kept as its decimal text, so no precision is lost.
type Number string

// StringSet is a set of strings. Order carries no meaning.
type StringSet []string

// Map is a nested attribute map.
type Map map[string]Value

// Null is an explicit null attribute, distinct from an absent one.
type Null struct{}

// Unsupported stands for a wire value outside the union (BOOL, L, B, NS, BS).
// It is only produced when reading from a store and cannot be written back.
type Unsupported struct {
	Type string
}

func (String) Kind() Kind      { return KindString }
func (Number) Kind() Kind      { return KindNumber }
func (StringSet) Kind() Kind   { return KindStringSet }
func (Map) Kind() Kind         { return KindMap }
func (Null) Kind() Kind        { return KindNull }
func (Unsupported) Kind() Kind { return KindUnsupported }

func (String) isValue()      {}
func (Number) isValue()      {}
func (StringSet) isValue()   {}
func (Map) isValue()         {}
func (Null) isValue()        {}
func (Unsupported) isValue() {}

// Document is one stored record: a map of attribute names to values.
type Document map[string]Value

// Lookup returns the attribute stored under name and whether it is present.
func (d Document) Lookup(name string) (Value, bool) {
	v, ok := d[name]
	return v, ok
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

// Lookup returns the attribute stored under name and whether it is present.
func (m Map) Lookup(name string) (Value, bool) {
	v, ok := m[name]
	return v, ok
}

// Normalize returns the set sorted and without duplicates.
func (s StringSet) Normalize() StringSet {
	if len(s) == 0 {
		return StringSet{}
	}
	seen := make(map[string]struct{}, len(s))
	out := make(StringSet, 0, len(s))
	for _, v := range s {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func cloneValue(v Value) Value {
	switch tv := v.(type) {
	case StringSet:
		return append(StringSet{}, tv...)
	case Map:
		out := make(Map, len(tv))
		for k, inner := range tv {
			out[k] = cloneValue(inner)
		}
		return out
	default:
		return v
	}
}

// Equal reports whether two values hold the same data. String sets compare as sets
// and numbers compare by numeric value.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case String:
		return av == b.(String)
	case Number:
		return numbersEqual(av, b.(Number))
	case StringSet:
		x, y := av.Normalize(), b.(StringSet).Normalize()
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if x[i] != y[i] {
				return false
			}
		}
		return true
	case Map:
		return mapsEqual(av, b.(Map))
	case Null:
		return true
	case Unsupported:
		return av.Type == b.(Unsupported).Type
	}
	return false
}

// EqualDocuments reports whether two documents hold the same attributes.
func EqualDocuments(a, b Document) bool {
	return mapsEqual(Map(a), Map(b))
}

func mapsEqual(a, b Map) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !Equal(av, bv) {
			return false
		}
	}
	return true
}
