package proto

import (
	"bytes"
	"encoding/json"
)

// Optional is a field of a partial update. It distinguishes a field that was
// not sent at all from one that was sent, possibly as null.
type Optional[T any] struct {
	set   bool
	null  bool
	value T
}

// Some returns a provided Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{set: true, value: v}
}

// Null returns a provided Optional without a value.
func Null[T any]() Optional[T] {
	return Optional[T]{set: true, null: true}
}

// IsSet reports whether the field was provided.
func (o Optional[T]) IsSet() bool { return o.set }

// IsNull reports whether the field was provided as null.
func (o Optional[T]) IsNull() bool { return o.set && o.null }

// Get returns the value and whether a non-null value was provided.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set && !o.null
}

// UnmarshalJSON implements json.Unmarshaler. It is only called for keys
// present in the payload, which is what marks the field as provided.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.null = true
		var zero T
		o.value = zero
		return nil
	}
	o.null = false
	return json.Unmarshal(data, &o.value)
}

// MarshalJSON implements json.Marshaler.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set || o.null {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
