package catalog

import "encoding/json"

// Field is one member of a partial update: Set reports whether the caller
// supplied a value at all, so a zero Value is still a real update.
type Field[T any] struct {
	Value T
	Set   bool
}

// Some returns a Field carrying v.
func Some[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

func (f Field[T]) applyTo(dst *T) {
	if f.Set {
		*dst = f.Value
	}
}

// UnmarshalJSON marks the field as set whenever its key is present in the
// document, including an explicit null.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		var zero T
		f.Value = zero
		return nil
	}
	return json.Unmarshal(data, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
