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
	"testing"

	"github.com/dnote/tripnote/pkg/assert"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newFlagCmd(t *testing.T, args ...string) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	f := cmd.Flags()
	f.String("description", "", "")
	f.String("start", "", "")
	f.Float64("lat", 0, "")
	f.Int("step", 0, "")
	f.String("title", "", "")
	AddClearFlag(cmd, "description")
	AddClearFlag(cmd, "start")
	AddClearFlag(cmd, "lat")
	AddClearFlag(cmd, "step")

	if err := f.Parse(args); err != nil {
		t.Fatal(errors.Wrap(err, "parsing flags"))
	}

	return cmd
}

func TestNullableString(t *testing.T) {
	testCases := []struct {
		name          string
		args          []string
		expectedSet   bool
		expectedNull  bool
		expectedValue string
	}{
		{"omitted", []string{}, false, false, ""},
		{"value", []string{"--description", "sunny"}, true, false, "sunny"},
		{"empty value", []string{"--description", ""}, true, false, ""},
		{"cleared", []string{"--clear-description"}, true, true, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := newFlagCmd(t, tc.args...)

			f, err := NullableString(cmd, "description")
			if err != nil {
				t.Fatal(errors.Wrap(err, "executing"))
			}

			v, _ := f.Get()
			assert.Equal(t, f.IsSet(), tc.expectedSet, "set mismatch")
			assert.Equal(t, f.IsNull(), tc.expectedNull, "null mismatch")
			assert.Equal(t, v, tc.expectedValue, "value mismatch")
		})
	}
}

func TestNullable_conflict(t *testing.T) {
	cmd := newFlagCmd(t, "--description", "sunny", "--clear-description")

	if _, err := NullableString(cmd, "description"); err == nil {
		t.Error("expected an error for a value with its clear flag")
	}
}

func TestNullableDate(t *testing.T) {
	cmd := newFlagCmd(t, "--start", "2024-03-01")

	f, err := NullableDate(cmd, "start")
	if err != nil {
		t.Fatal(errors.Wrap(err, "executing"))
	}
	v, ok := f.Get()
	assert.Equal(t, ok, true, "should have a value")
	assert.Equal(t, v, int64(1709251200000), "value mismatch")

	cmd = newFlagCmd(t, "--start", "March 1st")
	if _, err := NullableDate(cmd, "start"); err == nil {
		t.Error("expected an error for an invalid date")
	}

	cmd = newFlagCmd(t, "--clear-start")
	f, err = NullableDate(cmd, "start")
	if err != nil {
		t.Fatal(errors.Wrap(err, "executing"))
	}
	assert.Equal(t, f.IsNull(), true, "should be null")
}

func TestNullableFloatAndInt(t *testing.T) {
	cmd := newFlagCmd(t, "--lat", "0", "--clear-step")

	lat, err := NullableFloat(cmd, "lat")
	if err != nil {
		t.Fatal(errors.Wrap(err, "reading lat"))
	}
	v, ok := lat.Get()
	assert.Equal(t, ok, true, "zero latitude should be a value")
	assert.Equal(t, v, 0.0, "latitude mismatch")

	step, err := NullableInt(cmd, "step")
	if err != nil {
		t.Fatal(errors.Wrap(err, "reading step"))
	}
	assert.Equal(t, step.IsNull(), true, "step should be null")
}

func TestStringPtr(t *testing.T) {
	cmd := newFlagCmd(t)
	p, err := StringPtr(cmd, "title")
	if err != nil {
		t.Fatal(errors.Wrap(err, "executing"))
	}
	assert.Equal(t, p == nil, true, "omitted flag should be nil")

	cmd = newFlagCmd(t, "--title", "Lisbon")
	p, err = StringPtr(cmd, "title")
	if err != nil {
		t.Fatal(errors.Wrap(err, "executing"))
	}
	assert.Equal(t, *p, "Lisbon", "value mismatch")
}

func TestNullable_withoutClearFlag(t *testing.T) {
	cmd := newFlagCmd(t, "--title", "Lisbon")

	f, err := NullableString(cmd, "title")
	if err != nil {
		t.Fatal(errors.Wrap(err, "executing"))
	}
	v, _ := f.Get()
	assert.Equal(t, v, "Lisbon", "value mismatch")
}
