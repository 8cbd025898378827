// Package optional provides a present/absent wrapper for partial-update
// fields.
//
// A Value distinguishes "field omitted" from "field explicitly set to its
// zero value". In JSON, an omitted field leaves the Value unset; any supplied
// value, including null, marks it set (null decodes to the zero value, which
// is how callers clear an optional reference or blank a string).
package optional

import "encoding/json"

// Value holds a T that may or may not have been supplied.
// The zero Value is unset.
type Value[T any] struct {
	value T
	set   bool
}

// Of returns a set Value holding v.
func Of[T any](v T) Value[T] {
	return Value[T]{value: v, set: true}
}

// None returns an unset Value.
func None[T any]() Value[T] {
	return Value[T]{}
}

// IsSet reports whether the value was supplied.
func (v Value[T]) IsSet() bool { return v.set }

// Get returns the held value and whether it was supplied.
func (v Value[T]) Get() (T, bool) { return v.value, v.set }

// Val returns the held value, the zero value when unset. Callers check
// IsSet first.
func (v Value[T]) Val() T { return v.value }

// OrElse returns the held value when set, otherwise fallback.
func (v Value[T]) OrElse(fallback T) T {
	if v.set {
		return v.value
	}
	return fallback
}

// UnmarshalJSON marks the value as set. encoding/json never calls this for
// omitted fields, so presence tracking comes for free. JSON null sets the
// zero value.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	v.set = true
	if string(data) == "null" {
		var zero T
		v.value = zero
		return nil
	}
	return json.Unmarshal(data, &v.value)
}

// MarshalJSON encodes the held value; an unset Value encodes as null.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.set {
		return []byte("null"), nil
	}
	return json.Marshal(v.value)
}
