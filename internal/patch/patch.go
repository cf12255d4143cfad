// Package patch models partially-updated request fields. A Field records
// whether the key was present in the payload and whether it carried null, so
// "absent", "null" and "set" are three distinct states.
package patch

import (
	"bytes"
	"encoding/json"
)

// Field is an optional value in a partial update.
type Field[T any] struct {
	value   T
	present bool
	null    bool
}

// Set returns a Field holding v.
func Set[T any](v T) Field[T] {
	return Field[T]{value: v, present: true}
}

// Null returns a Field that was present with an explicit null.
func Null[T any]() Field[T] {
	return Field[T]{present: true, null: true}
}

// Present reports whether the key appeared in the payload at all.
func (f Field[T]) Present() bool { return f.present }

// IsNull reports whether the key appeared with an explicit null.
func (f Field[T]) IsNull() bool { return f.present && f.null }

// IsSet reports whether the field carries a usable value.
func (f Field[T]) IsSet() bool { return f.present && !f.null }

// Get returns the value and whether it is set.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.IsSet()
}

// Or returns the value when set, fallback otherwise.
func (f Field[T]) Or(fallback T) T {
	if f.IsSet() {
		return f.value
	}
	return fallback
}

// UnmarshalJSON is only called by encoding/json when the key is present.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.null = true
		var zero T
		f.value = zero
		return nil
	}
	f.null = false
	return json.Unmarshal(data, &f.value)
}

// MarshalJSON renders null unless the field is set.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.IsSet() {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}
