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

package app

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is an error for a mutation targeting a row that does not exist
	ErrNotFound = errors.New("not found")
	// ErrLoginInvalid is an error for mismatching login credentials
	ErrLoginInvalid = errors.New("Wrong email and password combination")
	// ErrShareExpired is an error for a share link past its expiry
	ErrShareExpired = errors.New("share link expired")
	// ErrShareForbidden is an error for a share link that does not allow viewing
	ErrShareForbidden = errors.New("share link does not allow viewing")
)

// ValidationError is an error for caller supplied data that violates a
// constraint. It is always raised before anything is written and its
// message can be shown to the user as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field, format string, a ...interface{}) error {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, a...),
	}
}

// IsValidationError reports whether any error in the chain is a ValidationError
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// StorageError is an error for a failed operation of the store itself
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err.Error())
}

// Unwrap returns the underlying error
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Cause returns the underlying error
func (e *StorageError) Cause() error {
	return e.Err
}

func newStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// IsStorageError reports whether any error in the chain is a StorageError
func IsStorageError(err error) bool {
	var s *StorageError
	return errors.As(err, &s)
}
