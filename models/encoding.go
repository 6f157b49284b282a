package models

import (
	"bytes"
	"encoding/json"
)

// Encoded holds a JSON value that clients may send either directly or as a string containing
// its JSON encoding (older admin clients stringify list and map fields before posting).
// Decoding never fails the whole payload: a value that cannot be decoded is reported by
// validation against the field it belongs to.
type Encoded[T any] struct {
	Value T
	set   bool
	bad   bool
}

// Encode wraps an already decoded value.
func Encode[T any](v T) Encoded[T] {
	return Encoded[T]{Value: v, set: true}
}

func (e *Encoded[T]) UnmarshalJSON(data []byte) error {
	*e = Encoded[T]{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	e.set = true

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			e.bad = true
			return nil
		}
		if s == "" {
			e.set = false
			return nil
		}
		data = []byte(s)
	}

	if err := json.Unmarshal(data, &e.Value); err != nil {
		var zero T
		e.Value = zero
		e.bad = true
	}
	return nil
}

func (e Encoded[T]) MarshalJSON() ([]byte, error) {
	if !e.set {
		return []byte("null"), nil
	}
	return json.Marshal(e.Value)
}

// Set reports whether the field was present and not null.
func (e Encoded[T]) Set() bool { return e.set }

// Invalid reports whether the field was present but could not be decoded.
func (e Encoded[T]) Invalid() bool { return e.bad }

// encodedField lets validation inspect Encoded fields without knowing T.
type encodedField interface {
	Set() bool
	Invalid() bool
}
