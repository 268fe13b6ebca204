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

// Package app implements the operations on users, trips and everything a
// trip owns, on top of the embedded store
package app

import (
	"github.com/dnote/tripnote/pkg/clock"
	"github.com/dnote/tripnote/pkg/mailer"
	"github.com/dnote/tripnote/pkg/token"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	// ErrEmptyDB is an error for missing database connection in the app configuration
	ErrEmptyDB = errors.New("No database connection was provided")
	// ErrEmptyClock is an error for missing clock in the app configuration
	ErrEmptyClock = errors.New("No clock was provided")
)

// App is an application context
type App struct {
	DB             *gorm.DB
	Clock          clock.Clock
	EmailTemplates mailer.Templates
	EmailBackend   mailer.Backend
	EmailFrom      string
	DeepLinkScheme string
}

// New returns a new app that prints emails instead of sending them.
// Set EmailBackend to deliver them.
func New(db *gorm.DB, c clock.Clock) App {
	return App{
		DB:             db,
		Clock:          c,
		EmailTemplates: mailer.NewTemplates(),
		EmailBackend:   mailer.NewStdoutBackend(),
		EmailFrom:      defaultSender,
		DeepLinkScheme: token.DefaultScheme,
	}
}

// Validate validates the app configuration
func (a *App) Validate() error {
	if a.DB == nil {
		return ErrEmptyDB
	}
	if a.Clock == nil {
		return ErrEmptyClock
	}

	return nil
}

// now returns the current time in epoch milliseconds
func (a *App) now() int64 {
	return clock.Millis(a.Clock)
}
