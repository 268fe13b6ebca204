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

// Package context defines tripnote context
package context

import (
	"github.com/dnote/tripnote/pkg/app"
	"github.com/dnote/tripnote/pkg/clock"
	"github.com/dnote/tripnote/pkg/geocode"
	"gorm.io/gorm"
)

// Paths contain directory definitions
type Paths struct {
	Home   string
	Config string
	Data   string
	Cache  string
}

// TripnoteCtx is a context holding the information of the current runtime
type TripnoteCtx struct {
	Paths          Paths
	Version        string
	DBPath         string
	DB             *gorm.DB
	App            app.App
	Editor         string
	DeepLinkScheme string
	Clock          clock.Clock
	Geocoder       *geocode.Client
}
