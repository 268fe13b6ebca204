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

package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/dnote/tripnote/pkg/log"
)

// ErrorResponse is the body of a failed API response
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondJSON writes the given value as a JSON response with the status code
func RespondJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.ErrorWrap(err, "encoding response")
	}
}

func respondError(w http.ResponseWriter, msg string, statusCode int) {
	RespondJSON(w, statusCode, ErrorResponse{Error: msg})
}

// DoError logs the error and responds with the given status code. Server
// errors are reported to the client without the underlying cause.
func DoError(w http.ResponseWriter, msg string, err error, statusCode int) {
	if err != nil {
		e := log.WithFields(log.Fields{
			"status": statusCode,
		})
		if statusCode >= http.StatusInternalServerError {
			e.ErrorWrap(err, msg)
		} else {
			e.Debug(msg + ": " + err.Error())
		}
	}

	if statusCode >= http.StatusInternalServerError {
		msg = http.StatusText(statusCode)
	}

	respondError(w, msg, statusCode)
}

// NotFound responds with 404 to any request
func NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, "not found", http.StatusNotFound)
}
