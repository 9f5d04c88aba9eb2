// Package optional provides a value wrapper that keeps "not provided" apart
// from a zero or empty value.
package optional

import (
	"bytes"
	"encoding/json"
)

type Value[T any] struct {
	value T
	ok    bool
}

func Some[T any](v T) Value[T] {
	return Value[T]{value: v, ok: true}
}

func None[T any]() Value[T] {
	return Value[T]{}
}

// Get returns the wrapped value and whether it is present.
func (v Value[T]) Get() (T, bool) {
	return v.value, v.ok
}

func (v Value[T]) IsPresent() bool {
	return v.ok
}

// OrElse returns the wrapped value, or fallback when absent.
func (v Value[T]) OrElse(fallback T) T {
	if !v.ok {
		return fallback
	}
	return v.value
}

// Map applies fn to a present value. Absent stays absent.
func Map[T, U any](v Value[T], fn func(T) U) Value[U] {
	if !v.ok {
		return None[U]()
	}
	return Some(fn(v.value))
}

// MarshalJSON encodes an absent value as null.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	return json.Marshal(v.value)
}

// UnmarshalJSON treats null as absent and anything else as present.
// A missing key never reaches this method and leaves the value absent.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = None[T]()
		return nil
	}
	var inner T
	if err := json.Unmarshal(data, &inner); err != nil {
		return err
	}
	*v = Some(inner)
	return nil
}
