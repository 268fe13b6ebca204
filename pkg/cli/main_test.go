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

package main

import (
	"testing"

	"github.com/dnote/tripnote/pkg/assert"
)

func TestParseDBPath(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "no flag",
			args:     []string{"trip", "ls"},
			expected: "",
		},
		{
			name:     "before the subcommand",
			args:     []string{"--dbPath", "/tmp/a.db", "trip", "ls"},
			expected: "/tmp/a.db",
		},
		{
			name:     "after the subcommand",
			args:     []string{"trip", "ls", "--dbPath", "/tmp/b.db"},
			expected: "/tmp/b.db",
		},
		{
			name:     "with an equal sign",
			args:     []string{"offline", "sync", "--dbPath=/tmp/c.db"},
			expected: "/tmp/c.db",
		},
		{
			name:     "missing value",
			args:     []string{"trip", "ls", "--dbPath"},
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, parseDBPath(tc.args), tc.expected, "db path mismatch")
		})
	}
}
