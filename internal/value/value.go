// Package value implements the tagged Value union the interpreter
// manipulates: Boolean, Integer, String, Collection, Object, and Null.
// It intentionally avoids interface{} so that downstream evaluator code
// gets compile-time shape guarantees instead of runtime type assertions.
package value

import "fmt"

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBoolean
	KindInteger
	KindString
	KindCollection
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBoolean:
		return "Boolean"
	case KindInteger:
		return "Integer"
	case KindString:
		return "String"
	case KindCollection:
		return "Collection"
	case KindObject:
		return "Object"
	default:
		return "Unknown"
	}
}

// Value is a runtime value of the logic language.
type Value struct {
	kind Kind

	b   bool
	i   int64
	s   string
	col []Value

	objEntries map[string]Value
	objKeys    []string // preserves insertion order
}

// Null is the distinguished Null value.
var Null = Value{kind: KindNull}

// NewBoolean constructs a Boolean value.
func NewBoolean(b bool) Value { return Value{kind: KindBoolean, b: b} }

// NewInteger constructs an Integer value.
func NewInteger(i int64) Value { return Value{kind: KindInteger, i: i} }

// NewString constructs a String value.
func NewString(s string) Value { return Value{kind: KindString, s: s} }

// NewCollection constructs a Collection value from the given elements, in order.
// Duplicates are permitted; the slice is copied so the caller may reuse it.
func NewCollection(elems ...Value) Value {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Value{kind: KindCollection, col: cp}
}

// NewObject constructs an empty Object value. Use WithField to populate it;
// Object values are immutable: WithField always returns a new Value and
// never mutates its receiver.
func NewObject() Value {
	return Value{kind: KindObject, objEntries: make(map[string]Value)}
}

// WithField returns an Object value equal to the receiver with name bound
// to v, preserving insertion order (re-binding an existing key keeps its
// original position). The receiver must be an Object.
func (v Value) WithField(name string, val Value) Value {
	if v.kind != KindObject {
		panic("value: WithField on non-Object")
	}
	entries := make(map[string]Value, len(v.objEntries)+1)
	for k, e := range v.objEntries {
		entries[k] = e
	}
	keys := make([]string, len(v.objKeys))
	copy(keys, v.objKeys)
	if _, exists := entries[name]; !exists {
		keys = append(keys, name)
	}
	entries[name] = val
	return Value{kind: KindObject, objEntries: entries, objKeys: keys}
}

// Kind reports the variant of v.
func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool       { return v.kind == KindNull }
func (v Value) IsBool() bool       { return v.kind == KindBoolean }
func (v Value) IsInt() bool        { return v.kind == KindInteger }
func (v Value) IsString() bool     { return v.kind == KindString }
func (v Value) IsCollection() bool { return v.kind == KindCollection }
func (v Value) IsObject() bool     { return v.kind == KindObject }

// TypeError reports a failed variant access, surfaced by the evaluator as
// a TypeMismatch.
type TypeError struct {
	Want Kind
	Got  Kind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("value: expected %s, got %s", e.Want, e.Got)
}

// Bool returns the Boolean payload or a TypeError if v is not a Boolean.
func (v Value) Bool() (bool, error) {
	if v.kind != KindBoolean {
		return false, &TypeError{Want: KindBoolean, Got: v.kind}
	}
	return v.b, nil
}

// Int returns the Integer payload or a TypeError if v is not an Integer.
func (v Value) Int() (int64, error) {
	if v.kind != KindInteger {
		return 0, &TypeError{Want: KindInteger, Got: v.kind}
	}
	return v.i, nil
}

// Str returns the String payload or a TypeError if v is not a String.
func (v Value) Str() (string, error) {
	if v.kind != KindString {
		return "", &TypeError{Want: KindString, Got: v.kind}
	}
	return v.s, nil
}

// Elements returns the Collection payload or a TypeError if v is not a
// Collection. The returned slice must not be mutated by the caller.
func (v Value) Elements() ([]Value, error) {
	if v.kind != KindCollection {
		return nil, &TypeError{Want: KindCollection, Got: v.kind}
	}
	return v.col, nil
}

// Field looks up name in an Object value. Ok is false if v is not an
// Object or the field is absent.
func (v Value) Field(name string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	val, ok := v.objEntries[name]
	return val, ok
}

// Keys returns an Object's field names in insertion order. Nil for
// non-Object values.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, len(v.objKeys))
	copy(keys, v.objKeys)
	return keys
}

// Size returns the size of a Collection, String, or Object value. Returns
// a TypeError for any other variant.
func (v Value) Size() (int, error) {
	switch v.kind {
	case KindCollection:
		return len(v.col), nil
	case KindString:
		return len([]rune(v.s)), nil
	case KindObject:
		return len(v.objKeys), nil
	default:
		return 0, &TypeError{Want: KindCollection, Got: v.kind}
	}
}

// Contains reports whether c (a Collection) structurally contains elem.
func (v Value) Contains(elem Value) (bool, error) {
	elems, err := v.Elements()
	if err != nil {
		return false, err
	}
	for _, e := range elems {
		if Equal(e, elem) {
			return true, nil
		}
	}
	return false, nil
}

// Equal reports structural, cross-variant-safe equality: values of
// different kinds are never equal.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBoolean:
		return a.b == b.b
	case KindInteger:
		return a.i == b.i
	case KindString:
		return a.s == b.s
	case KindCollection:
		if len(a.col) != len(b.col) {
			return false
		}
		for i := range a.col {
			if !Equal(a.col[i], b.col[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.objKeys) != len(b.objKeys) {
			return false
		}
		for _, k := range a.objKeys {
			av, ok := a.objEntries[k]
			if !ok {
				return false
			}
			bv, ok := b.objEntries[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Compare orders two values of the same kind: -1, 0, or 1. Only Boolean,
// Integer, and String support ordering; any other kind, or comparing
// across kinds, returns a TypeError. false < true for Boolean.
func Compare(a, b Value) (int, error) {
	if a.kind != b.kind {
		return 0, &TypeError{Want: a.kind, Got: b.kind}
	}
	switch a.kind {
	case KindBoolean:
		if a.b == b.b {
			return 0, nil
		}
		if !a.b && b.b {
			return -1, nil
		}
		return 1, nil
	case KindInteger:
		switch {
		case a.i < b.i:
			return -1, nil
		case a.i > b.i:
			return 1, nil
		default:
			return 0, nil
		}
	case KindString:
		switch {
		case a.s < b.s:
			return -1, nil
		case a.s > b.s:
			return 1, nil
		default:
			return 0, nil
		}
	default:
		return 0, &TypeError{Want: KindInteger, Got: a.kind}
	}
}

// String renders v for diagnostics and trace output. It is not a parse
// round-trip format.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBoolean:
		if v.b {
			return "true"
		}
		return "false"
	case KindInteger:
		return fmt.Sprintf("%d", v.i)
	case KindString:
		return fmt.Sprintf("%q", v.s)
	case KindCollection:
		s := "["
		for i, e := range v.col {
			if i > 0 {
				s += ", "
			}
			s += e.String()
		}
		return s + "]"
	case KindObject:
		s := "{"
		for i, k := range v.objKeys {
			if i > 0 {
				s += ", "
			}
			s += fmt.Sprintf("%s: %s", k, v.objEntries[k].String())
		}
		return s + "}"
	default:
		return "<unknown>"
	}
}
