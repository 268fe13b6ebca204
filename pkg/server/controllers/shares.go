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

package controllers

import (
	"net/http"

	"github.com/dnote/tripnote/pkg/app"
	"github.com/dnote/tripnote/pkg/server/middleware"
	"github.com/dnote/tripnote/pkg/server/presenters"
	"github.com/dnote/tripnote/pkg/token"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

// NewShares creates a new Shares controller
func NewShares(app *app.App) *Shares {
	return &Shares{
		app: app,
	}
}

// Shares is a controller for the trips opened through share links
type Shares struct {
	app *app.App
}

// ShowQuery is the query of GET /api/shares/{token}. Omitted sections are
// included.
type ShowQuery struct {
	Journal    *bool `schema:"journal"`
	Checklists *bool `schema:"checklists"`
}

func included(section *bool) bool {
	return section == nil || *section
}

// Show handles GET /api/shares/{token}
func (s *Shares) Show(w http.ResponseWriter, r *http.Request) {
	tok := mux.Vars(r)["token"]

	var query ShowQuery
	if err := parseQuery(r, &query); err != nil {
		middleware.DoError(w, "invalid query", err, http.StatusBadRequest)
		return
	}

	// A malformed token cannot match any share.
	if !token.IsValid(tok) {
		middleware.DoError(w, "share not found", nil, http.StatusNotFound)
		return
	}

	shared, err := s.app.OpenTripShare(tok)
	if err != nil {
		handleShareError(w, err)
		return
	}

	ret := presenters.PresentSharedTrip(shared)
	if !included(query.Journal) {
		ret.JournalEntries = []presenters.JournalEntry{}
	}
	if !included(query.Checklists) {
		ret.Checklists = []presenters.Checklist{}
	}

	middleware.RespondJSON(w, http.StatusOK, ret)
}

func handleShareError(w http.ResponseWriter, err error) {
	switch errors.Cause(err) {
	case app.ErrNotFound:
		middleware.DoError(w, "share not found", err, http.StatusNotFound)
	case app.ErrShareExpired:
		middleware.DoError(w, "share link expired", err, http.StatusGone)
	case app.ErrShareForbidden:
		middleware.DoError(w, "share does not allow viewing", err, http.StatusForbidden)
	default:
		middleware.DoError(w, "opening share", err, http.StatusInternalServerError)
	}
}
