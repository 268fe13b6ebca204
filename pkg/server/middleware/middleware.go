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
	"net/http"
	"time"

	"github.com/dnote/tripnote/pkg/app"
	"github.com/dnote/tripnote/pkg/log"
)

// Middleware wraps a route handler
type Middleware func(h http.HandlerFunc, app *app.App, rateLimit bool) http.Handler

// APIMw is the middleware for the API routes
func APIMw(h http.HandlerFunc, app *app.App, rateLimit bool) http.Handler {
	return ApplyLimit(noCache(h), rateLimit)
}

// WebMw is the middleware for the plain web routes
func WebMw(h http.HandlerFunc, app *app.App, rateLimit bool) http.Handler {
	return ApplyLimit(h, rateLimit)
}

// Global is the middleware applied to every request
func Global(h http.Handler) http.Handler {
	return Logging(h)
}

func noCache(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	}
}

// statusRecorder records the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Logging logs every request with its outcome
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.WithFields(log.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.status,
			"duration_ms": time.Since(start).Milliseconds(),
			"remote_addr": lookupIP(r),
		}).Info("incoming request")
	})
}
