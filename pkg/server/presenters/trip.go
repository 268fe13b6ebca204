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

	"github.com/dnote/tripnote/pkg/app"
	"github.com/dnote/tripnote/pkg/database"
)

// Trip is a result of PresentTrip
type Trip struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	CoverImage  *string    `json:"cover_image"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	CreatedAt   time.Time  `json:"created_at"`
}

// PresentTrip presents a trip. The owner is left out.
func PresentTrip(trip database.Trip) Trip {
	return Trip{
		ID:          trip.ID,
		Title:       trip.Title,
		Description: trip.Description,
		StartDate:   FormatTSPtr(trip.StartDate),
		EndDate:     FormatTSPtr(trip.EndDate),
		CoverImage:  trip.CoverImage,
		Latitude:    trip.Latitude,
		Longitude:   trip.Longitude,
		CreatedAt:   FormatTS(trip.CreatedAt),
	}
}

// Step is a result of PresentStep
type Step struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	OrderIndex  int        `json:"order_index"`
}

// PresentStep presents a step
func PresentStep(step database.TripStep) Step {
	return Step{
		ID:          step.ID,
		Name:        step.Name,
		Description: step.Description,
		StartDate:   FormatTSPtr(step.StartDate),
		EndDate:     FormatTSPtr(step.EndDate),
		Latitude:    step.Latitude,
		Longitude:   step.Longitude,
		OrderIndex:  step.OrderIndex,
	}
}

// PresentSteps presents steps
func PresentSteps(steps []database.TripStep) []Step {
	ret := []Step{}

	for _, step := range steps {
		ret = append(ret, PresentStep(step))
	}

	return ret
}

// JournalEntry is a result of PresentJournalEntry
type JournalEntry struct {
	ID        int       `json:"id"`
	StepID    *int      `json:"step_id"`
	Title     string    `json:"title"`
	Content   *string   `json:"content"`
	EntryDate time.Time `json:"entry_date"`
}

// PresentJournalEntry presents a journal entry
func PresentJournalEntry(entry database.JournalEntry) JournalEntry {
	return JournalEntry{
		ID:        entry.ID,
		StepID:    entry.StepID,
		Title:     entry.Title,
		Content:   entry.Content,
		EntryDate: FormatTS(entry.EntryDate),
	}
}

// PresentJournalEntries presents journal entries
func PresentJournalEntries(entries []database.JournalEntry) []JournalEntry {
	ret := []JournalEntry{}

	for _, entry := range entries {
		ret = append(ret, PresentJournalEntry(entry))
	}

	return ret
}

// ChecklistItem is a result of PresentChecklistItem
type ChecklistItem struct {
	ID          int        `json:"id"`
	Text        string     `json:"text"`
	IsCompleted bool       `json:"is_completed"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	OrderIndex  int        `json:"order_index"`
}

// PresentChecklistItem presents a checklist item. Reminders are private to
// the device that set them and are left out.
func PresentChecklistItem(item database.ChecklistItem) ChecklistItem {
	return ChecklistItem{
		ID:          item.ID,
		Text:        item.Text,
		IsCompleted: item.IsCompleted,
		Priority:    item.Priority,
		DueDate:     FormatTSPtr(item.DueDate),
		OrderIndex:  item.OrderIndex,
	}
}

// Checklist is a result of PresentChecklists
type Checklist struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Items       []ChecklistItem `json:"items"`
}

// PresentChecklists presents checklists, each with its own items
func PresentChecklists(checklists []database.Checklist, items []database.ChecklistItem) []Checklist {
	byChecklist := map[int][]ChecklistItem{}
	for _, item := range items {
		byChecklist[item.ChecklistID] = append(byChecklist[item.ChecklistID], PresentChecklistItem(item))
	}

	ret := []Checklist{}
	for _, c := range checklists {
		its := byChecklist[c.ID]
		if its == nil {
			its = []ChecklistItem{}
		}

		ret = append(ret, Checklist{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Items:       its,
		})
	}

	return ret
}

// Share is a result of PresentShare
type Share struct {
	ShareType   string                    `json:"share_type"`
	Permissions database.SharePermissions `json:"permissions"`
	ExpiresAt   *time.Time                `json:"expires_at"`
}

// PresentShare presents a share without its token
func PresentShare(share database.TripShare) Share {
	return Share{
		ShareType:   share.ShareType,
		Permissions: share.Permissions.Data(),
		ExpiresAt:   FormatTSPtr(share.ExpiresAt),
	}
}

// SharedTrip is a result of PresentSharedTrip
type SharedTrip struct {
	Share          Share          `json:"share"`
	Trip           Trip           `json:"trip"`
	Steps          []Step         `json:"steps"`
	JournalEntries []JournalEntry `json:"journal_entries"`
	Checklists     []Checklist    `json:"checklists"`
}

// PresentSharedTrip presents what a share link opens
func PresentSharedTrip(s app.SharedTrip) SharedTrip {
	return SharedTrip{
		Share:          PresentShare(s.Share),
		Trip:           PresentTrip(s.Trip),
		Steps:          PresentSteps(s.Steps),
		JournalEntries: PresentJournalEntries(s.JournalEntries),
		Checklists:     PresentChecklists(s.Checklists, s.ChecklistItems),
	}
}
