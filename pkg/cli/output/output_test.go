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

package output

import (
	"testing"

	"github.com/dnote/tripnote/pkg/assert"
)

func TestFormatDateRange(t *testing.T) {
	start := int64(1709251200000) // 2024-03-01
	end := int64(1709856000000)   // 2024-03-08

	testCases := []struct {
		name     string
		start    *int64
		end      *int64
		expected string
	}{
		{"both", &start, &end, "2024-03-01 to 2024-03-08"},
		{"start only", &start, nil, "from 2024-03-01"},
		{"end only", nil, &end, "until 2024-03-08"},
		{"none", nil, nil, "no dates"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, FormatDateRange(tc.start, tc.end), tc.expected, "result mismatch")
		})
	}
}

func TestFormatCoordinates(t *testing.T) {
	lat, lng := 38.7223, -9.1393

	assert.Equal(t, FormatCoordinates(&lat, &lng), "38.72230, -9.13930", "result mismatch")
	assert.Equal(t, FormatCoordinates(&lat, nil), "-", "result mismatch for a missing longitude")
	assert.Equal(t, FormatCoordinates(nil, nil), "-", "result mismatch for missing coordinates")
}

func TestCheckbox(t *testing.T) {
	assert.Equal(t, Checkbox(true), "[x]", "done mismatch")
	assert.Equal(t, Checkbox(false), "[ ]", "pending mismatch")
}
