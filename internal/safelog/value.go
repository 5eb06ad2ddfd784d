package safelog

import (
	"fmt"
)

// Kind discriminates the variants of a loggable Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMapping
)

// Value is a tagged-variant representation of anything a call site may hand
// to the log pipeline: mapping, sequence, string, number, boolean or null.
// Scrubbing recurses over this closed set of shapes instead of relying on
// open-ended runtime type inspection.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	seq  []Value
	m    map[string]Value
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric Value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Sequence returns a sequence Value holding the given elements in order.
func Sequence(elems ...Value) Value { return Value{kind: KindSequence, seq: elems} }

// Mapping returns a mapping Value over the given entries.
func Mapping(entries map[string]Value) Value { return Value{kind: KindMapping, m: entries} }

// Kind returns the variant tag of the value.
func (v Value) Kind() Kind { return v.kind }

// FromAny converts an arbitrary Go value into a Value. Maps and slices are
// converted recursively; anything outside the closed set is stringified so
// that it still passes through value scrubbing.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Number(float64(t))
	case int32:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case uint:
		return Number(float64(t))
	case uint64:
		return Number(float64(t))
	case float32:
		return Number(float64(t))
	case float64:
		return Number(t)
	case []byte:
		return String(string(t))
	case []any:
		elems := make([]Value, len(t))
		for i, e := range t {
			elems[i] = FromAny(e)
		}
		return Sequence(elems...)
	case []string:
		elems := make([]Value, len(t))
		for i, e := range t {
			elems[i] = String(e)
		}
		return Sequence(elems...)
	case map[string]any:
		entries := make(map[string]Value, len(t))
		for k, e := range t {
			entries[k] = FromAny(e)
		}
		return Mapping(entries)
	case map[string]string:
		entries := make(map[string]Value, len(t))
		for k, e := range t {
			entries[k] = String(e)
		}
		return Mapping(entries)
	default:
		return String(fmt.Sprint(t))
	}
}

// Interface converts the Value back into plain Go data, suitable for
// handing to an encoder.
func (v Value) Interface() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, e := range v.seq {
			out[i] = e.Interface()
		}
		return out
	case KindMapping:
		out := make(map[string]any, len(v.m))
		for k, e := range v.m {
			out[k] = e.Interface()
		}
		return out
	default:
		return nil
	}
}

// Equal reports structural equality of two values.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.num == o.num
	case KindString:
		return v.str == o.str
	case KindSequence:
		if len(v.seq) != len(o.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(o.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(v.m) != len(o.m) {
			return false
		}
		for k, e := range v.m {
			oe, ok := o.m[k]
			if !ok || !e.Equal(oe) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
