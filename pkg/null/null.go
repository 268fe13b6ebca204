/* Copyright 2025 Dnote Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package null provides a field type for partial updates that tells apart
// a field that was not supplied from a field explicitly set to null.
package null

import (
	"bytes"
	"encoding/json"
)

// Field is a tri-state value. The zero value is an omitted field.
type Field[T any] struct {
	set   bool
	valid bool
	value T
}

// Value returns a field set to the given value
func Value[T any](v T) Field[T] {
	return Field[T]{set: true, valid: true, value: v}
}

// Null returns a field explicitly set to null
func Null[T any]() Field[T] {
	return Field[T]{set: true}
}

// FromPtr returns a field that is set to the pointed value, or to null
// if the pointer is nil
func FromPtr[T any](p *T) Field[T] {
	if p == nil {
		return Null[T]()
	}

	return Value(*p)
}

// IsSet reports whether the field was supplied at all
func (f Field[T]) IsSet() bool {
	return f.set
}

// IsNull reports whether the field was supplied as null
func (f Field[T]) IsNull() bool {
	return f.set && !f.valid
}

// Get returns the value and whether it is non-null
func (f Field[T]) Get() (T, bool) {
	return f.value, f.valid
}

// Ptr returns a pointer to the value, or nil if the field is null or omitted
func (f Field[T]) Ptr() *T {
	if !f.valid {
		return nil
	}

	v := f.value
	return &v
}

// Interface returns the value to be written to a column. Null yields nil.
func (f Field[T]) Interface() interface{} {
	if !f.valid {
		return nil
	}

	return f.value
}

// UnmarshalJSON marks the field as set. A literal null sets it to null.
// Fields absent from the JSON object are never visited and stay omitted.
func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.set = true

	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		f.valid = false
		var zero T
		f.value = zero
		return nil
	}

	if err := json.Unmarshal(b, &f.value); err != nil {
		return err
	}
	f.valid = true

	return nil
}

// MarshalJSON encodes a null or omitted field as null
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.valid {
		return []byte("null"), nil
	}

	return json.Marshal(f.value)
}
