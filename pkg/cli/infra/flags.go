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

package infra

import (
	"github.com/dnote/tripnote/pkg/cli/utils"
	"github.com/dnote/tripnote/pkg/null"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// clearFlagName returns the name of the flag that sets the field to null
func clearFlagName(name string) string {
	return "clear-" + name
}

// AddClearFlag registers a --clear-<name> flag for a nullable field
func AddClearFlag(cmd *cobra.Command, name string) {
	cmd.Flags().Bool(clearFlagName(name), false, "remove the "+name)
}

func isCleared(cmd *cobra.Command, name string) (bool, error) {
	f := cmd.Flags()
	if f.Lookup(clearFlagName(name)) == nil {
		return false, nil
	}

	cleared, err := f.GetBool(clearFlagName(name))
	if err != nil {
		return false, errors.Wrapf(err, "reading --%s", clearFlagName(name))
	}
	if cleared && f.Changed(name) {
		return false, errors.Errorf("--%s and --%s cannot be used together", name, clearFlagName(name))
	}

	return cleared, nil
}

// StringPtr returns the value of the string flag if it was given
func StringPtr(cmd *cobra.Command, name string) (*string, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}

	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil, errors.Wrapf(err, "reading --%s", name)
	}

	return &v, nil
}

// IntPtr returns the value of the int flag if it was given
func IntPtr(cmd *cobra.Command, name string) (*int, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}

	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return nil, errors.Wrapf(err, "reading --%s", name)
	}

	return &v, nil
}

// FloatPtr returns the value of the float flag if it was given
func FloatPtr(cmd *cobra.Command, name string) (*float64, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}

	v, err := cmd.Flags().GetFloat64(name)
	if err != nil {
		return nil, errors.Wrapf(err, "reading --%s", name)
	}

	return &v, nil
}

// DatePtr returns the value of the YYYY-MM-DD flag in epoch milliseconds
// if it was given
func DatePtr(cmd *cobra.Command, name string) (*int64, error) {
	s, err := StringPtr(cmd, name)
	if err != nil || s == nil {
		return nil, err
	}

	ms, err := utils.ParseDate(*s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid --%s", name)
	}

	return &ms, nil
}

// nullable turns an optional flag value into a field of a partial update.
// An absent flag leaves the field omitted and --clear-<name> sets it to null.
func nullable[T any](cmd *cobra.Command, name string, get func(*cobra.Command, string) (*T, error)) (null.Field[T], error) {
	cleared, err := isCleared(cmd, name)
	if err != nil {
		return null.Field[T]{}, err
	}
	if cleared {
		return null.Null[T](), nil
	}

	v, err := get(cmd, name)
	if err != nil {
		return null.Field[T]{}, err
	}
	if v == nil {
		return null.Field[T]{}, nil
	}

	return null.Value(*v), nil
}

// NullableString returns the string flag as a field of a partial update
func NullableString(cmd *cobra.Command, name string) (null.Field[string], error) {
	return nullable(cmd, name, StringPtr)
}

// NullableInt returns the int flag as a field of a partial update
func NullableInt(cmd *cobra.Command, name string) (null.Field[int], error) {
	return nullable(cmd, name, IntPtr)
}

// NullableFloat returns the float flag as a field of a partial update
func NullableFloat(cmd *cobra.Command, name string) (null.Field[float64], error) {
	return nullable(cmd, name, FloatPtr)
}

// NullableDate returns the date flag as a field of a partial update
func NullableDate(cmd *cobra.Command, name string) (null.Field[int64], error) {
	return nullable(cmd, name, DatePtr)
}
