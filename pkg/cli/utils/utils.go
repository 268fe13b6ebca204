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

package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DateLayout is the layout of the dates accepted and printed by the commands
const DateLayout = "2006-01-02"

// regexNumber is a regex that matches a string that looks like an integer
var regexNumber = regexp.MustCompile(`^\d+$`)

// IsNumber checks if the given string is in the form of a number
func IsNumber(s string) bool {
	if s == "" {
		return false
	}

	return regexNumber.MatchString(s)
}

// ParseID parses a positive row id
func ParseID(s string) (int, error) {
	if !IsNumber(s) {
		return 0, errors.Errorf("invalid id '%s'", s)
	}

	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing id '%s'", s)
	}
	if id == 0 {
		return 0, errors.Errorf("invalid id '%s'", s)
	}

	return id, nil
}

// ParseIDs parses a list of ids given as separate arguments or as
// comma separated values
func ParseIDs(args []string) ([]int, error) {
	ret := []int{}

	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}

			id, err := ParseID(part)
			if err != nil {
				return nil, err
			}
			ret = append(ret, id)
		}
	}

	return ret, nil
}

// ParseDate parses a YYYY-MM-DD date in UTC into epoch milliseconds
func ParseDate(s string) (int64, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return 0, errors.Errorf("invalid date '%s'. expected the format YYYY-MM-DD", s)
	}

	return t.UnixMilli(), nil
}

// FormatDate formats epoch milliseconds as a YYYY-MM-DD date in UTC
func FormatDate(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(DateLayout)
}
