package model

import gojson "github.com/goccy/go-json"

// Nullable is a patch value which distinguishes an omitted field from an explicit null
type Nullable[T any] struct {
	Value T
	Null  bool
	Set   bool
}

// Value builds Nullable holding v
func Value[T any](v T) Nullable[T] {
	return Nullable[T]{Value: v, Set: true}
}

// Null builds Nullable which clears the field
func Null[T any]() Nullable[T] {
	return Nullable[T]{Null: true, Set: true}
}

// UnmarshalJSON is called only for keys present in payload, so Set marks presence
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		var zero T
		n.Value = zero
		n.Null = true
		return nil
	}

	n.Null = false
	return gojson.Unmarshal(data, &n.Value)
}

// MarshalJSON encodes unset and null values as JSON null
func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Set || n.Null {
		return []byte("null"), nil
	}
	return gojson.Marshal(n.Value)
}

// Ptr returns pointer to the value or nil if value is null or not set
func (n Nullable[T]) Ptr() *T {
	if !n.Set || n.Null {
		return nil
	}
	v := n.Value
	return &v
}

// ValidationValue exposes inner value to validator, nil means nothing to validate
func (n Nullable[T]) ValidationValue() any {
	if !n.Set || n.Null {
		return nil
	}
	return n.Value
}

// apply writes patch value to the target pointer field
func apply[T any](dst **T, n Nullable[T]) {
	if n.Set {
		*dst = n.Ptr()
	}
}
