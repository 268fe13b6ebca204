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

// Package token mints share tokens and formats the deep links that carry them
package token

import (
	"crypto/rand"
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// Length is the number of characters in a share token
const Length = 32

// DefaultScheme is the deep link scheme of share links
const DefaultScheme = "tripnote"

// alphabet is the set of characters a token is drawn from. Every character
// is safe in a URL path segment.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// maxByte is the largest multiple of len(alphabet) that fits in a byte.
// Bytes at or above it are discarded so that every character is equally likely.
const maxByte = 256 - (256 % len(alphabet))

// ErrInvalidShareURL is an error for a deep link that does not carry a share token
var ErrInvalidShareURL = errors.New("invalid share link")

// Generate returns a new random share token
func Generate() (string, error) {
	ret := make([]byte, 0, Length)
	buf := make([]byte, Length*2)

	for len(ret) < Length {
		if _, err := rand.Read(buf); err != nil {
			return "", errors.Wrap(err, "reading random bytes")
		}

		for _, b := range buf {
			if int(b) >= maxByte {
				continue
			}

			ret = append(ret, alphabet[int(b)%len(alphabet)])
			if len(ret) == Length {
				break
			}
		}
	}

	return string(ret), nil
}

// IsValid reports whether the given string has the shape of a share token
func IsValid(tok string) bool {
	if len(tok) != Length {
		return false
	}

	for i := 0; i < len(tok); i++ {
		if strings.IndexByte(alphabet, tok[i]) < 0 {
			return false
		}
	}

	return true
}

// ShareURL returns the deep link for the given token
func ShareURL(scheme, tok string) string {
	return fmt.Sprintf("%s://share/%s", scheme, tok)
}

// ParseShareURL extracts the token from a deep link. A bare token is
// accepted as is.
func ParseShareURL(s string) (string, error) {
	s = strings.TrimSpace(s)
	if IsValid(s) {
		return s, nil
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", errors.Wrap(ErrInvalidShareURL, err.Error())
	}
	if u.Host != "share" {
		return "", ErrInvalidShareURL
	}

	tok := strings.Trim(u.Path, "/")
	if !IsValid(tok) {
		return "", ErrInvalidShareURL
	}

	return tok, nil
}
