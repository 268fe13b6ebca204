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

// Package output provides functions to print informations on the terminal
// in a consistent manner
package output

import (
	"fmt"
	"time"

	"github.com/dnote/tripnote/pkg/app"
	"github.com/dnote/tripnote/pkg/cli/log"
	"github.com/dnote/tripnote/pkg/cli/utils"
	"github.com/dnote/tripnote/pkg/database"
	"github.com/dnote/tripnote/pkg/geocode"
)

const timeLayout = "Jan 2, 2006 3:04pm (MST)"

// FormatTime formats epoch milliseconds for display
func FormatTime(ms int64) string {
	return time.UnixMilli(ms).Format(timeLayout)
}

// FormatDateRange formats an optional start and end date
func FormatDateRange(start, end *int64) string {
	switch {
	case start != nil && end != nil:
		return fmt.Sprintf("%s to %s", utils.FormatDate(*start), utils.FormatDate(*end))
	case start != nil:
		return fmt.Sprintf("from %s", utils.FormatDate(*start))
	case end != nil:
		return fmt.Sprintf("until %s", utils.FormatDate(*end))
	default:
		return "no dates"
	}
}

// FormatCoordinates formats an optional coordinate pair
func FormatCoordinates(lat, lng *float64) string {
	if lat == nil || lng == nil {
		return "-"
	}

	return fmt.Sprintf("%.5f, %.5f", *lat, *lng)
}

// Checkbox returns the marker of a checklist item
func Checkbox(done bool) string {
	if done {
		return "[x]"
	}

	return "[ ]"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

// UserInfo prints a user information
func UserInfo(u database.User) {
	log.Infof("username: %s\n", u.Username)
	log.Infof("email: %s\n", u.Email)
	if u.FirstName != nil || u.LastName != nil {
		log.Infof("name: %s %s\n", deref(u.FirstName), deref(u.LastName))
	}
	if u.Country != nil {
		log.Infof("country: %s\n", *u.Country)
	}
	log.Infof("user id: %d\n", u.ID)
}

// TripInfo prints a trip information
func TripInfo(t database.Trip) {
	log.Infof("trip: %s\n", t.Title)
	log.Infof("trip id: %d\n", t.ID)
	log.Infof("dates: %s\n", FormatDateRange(t.StartDate, t.EndDate))
	log.Infof("location: %s\n", FormatCoordinates(t.Latitude, t.Longitude))
	log.Infof("created at: %s\n", FormatTime(t.CreatedAt))
	if t.Description != nil && *t.Description != "" {
		fmt.Printf("\n%s\n", *t.Description)
	}
}

// TripList prints a list of trips
func TripList(trips []database.Trip) {
	for _, t := range trips {
		log.Plainf("(%d) %s %s\n", t.ID, t.Title, log.ColorGray.Sprintf("[%s]", FormatDateRange(t.StartDate, t.EndDate)))
	}
}

// StepList prints the steps of a trip in their order
func StepList(steps []database.TripStep) {
	for _, s := range steps {
		log.Plainf("%d. (%d) %s %s\n", s.OrderIndex, s.ID, s.Name, log.ColorGray.Sprintf("[%s]", FormatCoordinates(s.Latitude, s.Longitude)))
	}
}

// JournalEntryInfo prints a journal entry with its media
func JournalEntryInfo(e database.JournalEntry, media []database.JournalMedia) {
	log.Infof("entry: %s\n", e.Title)
	log.Infof("entry id: %d\n", e.ID)
	log.Infof("date: %s\n", utils.FormatDate(e.EntryDate))
	if e.StepID != nil {
		log.Infof("step id: %d\n", *e.StepID)
	}
	for _, m := range media {
		log.Infof("%s (%d): %s %s\n", m.Type, m.ID, m.URI, deref(m.Caption))
	}

	fmt.Printf("\n------------------------content------------------------\n")
	fmt.Printf("%s", deref(e.Content))
	fmt.Printf("\n-------------------------------------------------------\n")
}

// JournalList prints a list of journal entries
func JournalList(entries []database.JournalEntry) {
	for _, e := range entries {
		log.Plainf("(%d) %s %s\n", e.ID, log.ColorGray.Sprint(utils.FormatDate(e.EntryDate)), e.Title)
	}
}

// ChecklistList prints a list of checklists
func ChecklistList(checklists []database.Checklist) {
	for _, c := range checklists {
		suffix := ""
		if c.IsTemplate {
			suffix = log.ColorGray.Sprint(" [template]")
		}
		log.Plainf("(%d) %s%s\n", c.ID, c.Name, suffix)
	}
}

// ItemList prints the items of a checklist in their order
func ItemList(items []database.ChecklistItem) {
	for _, i := range items {
		due := ""
		if i.DueDate != nil {
			due = log.ColorGray.Sprintf(" due %s", utils.FormatDate(*i.DueDate))
		}
		log.Plainf("%s (%d) %s %s%s\n", Checkbox(i.IsCompleted), i.ID, i.Text, log.ColorGray.Sprintf("[%s]", i.Priority), due)
	}
}

// ShareInfo prints a share link
func ShareInfo(s database.TripShare, url string, now int64) {
	p := s.Permissions.Data()

	log.Infof("link: %s\n", url)
	log.Infof("type: %s\n", s.ShareType)
	log.Infof("permissions: view=%t edit=%t journal=%t checklists=%t\n", p.CanView, p.CanEdit, p.CanAddJournal, p.CanManageChecklists)
	if s.ExpiresAt != nil {
		state := "expires"
		if s.IsExpired(now) {
			state = "expired"
		}
		log.Infof("%s: %s\n", state, utils.FormatDate(*s.ExpiresAt))
	}
}

// ShareList prints the share links of a trip
func ShareList(shares []database.TripShare, now int64) {
	for _, s := range shares {
		state := ""
		if s.IsExpired(now) {
			state = log.ColorRed.Sprint(" [expired]")
		}
		log.Plainf("(%d) %s %s%s\n", s.ID, s.ShareToken, log.ColorGray.Sprintf("[%s]", s.ShareType), state)
	}
}

// CollaboratorList prints the collaborators of a trip
func CollaboratorList(collaborators []database.TripCollaborator) {
	for _, c := range collaborators {
		state := "invited"
		if c.JoinedAt != nil {
			state = "joined"
		}
		log.Plainf("(%d) user %d %s %s\n", c.ID, c.UserID, c.Role, log.ColorGray.Sprintf("[%s]", state))
	}
}

// SnapshotInfo prints a summary of an offline snapshot
func SnapshotInfo(s app.Snapshot) {
	log.Infof("last sync: %s\n", FormatTime(s.LastSync))
	log.Infof("trips: %d\n", len(s.Trips))
	log.Infof("steps: %d\n", len(s.TripSteps))
	log.Infof("journal entries: %d\n", len(s.JournalEntries))
	log.Infof("checklists: %d\n", len(s.Checklists))
	log.Infof("checklist items: %d\n", len(s.ChecklistItems))
}

// PlaceInfo prints a reverse geocoded place
func PlaceInfo(p geocode.Place) {
	log.Infof("place: %s\n", p.Label())
	if p.DisplayName != "" {
		log.Infof("address: %s\n", p.DisplayName)
	}
	log.Infof("coordinates: %.5f, %.5f\n", p.Latitude, p.Longitude)
}
