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

package presenters

import (
	"time"
)

// FormatTS converts the given epoch milliseconds to a UTC time
// so as to make the times in the responses consistent
func FormatTS(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// FormatTSPtr is FormatTS for an optional timestamp
func FormatTSPtr(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}

	t := FormatTS(*ms)
	return &t
}
