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

package app

import (
	"github.com/dnote/tripnote/pkg/database"
	"github.com/dnote/tripnote/pkg/null"
)

// JournalEntryParams is the data of a new journal entry
type JournalEntryParams struct {
	TripID  int
	StepID  *int
	Title   string
	Content *string
	// EntryDate defaults to the current time
	EntryDate *int64
}

// JournalEntryPatch is a partial update of a journal entry
type JournalEntryPatch struct {
	Title     *string
	Content   null.Field[string]
	StepID    null.Field[int]
	EntryDate *int64
}

// JournalMediaParams is the data of a new journal attachment
type JournalMediaParams struct {
	EntryID int
	Type    string
	URI     string
	Caption *string
}

// validateStepOfTrip checks that the step exists and belongs to the trip
func (a *App) validateStepOfTrip(stepID *int, tripID int) error {
	if stepID == nil {
		return nil
	}

	step, err := a.GetTripStepByID(*stepID)
	if err != nil {
		return err
	}
	if step == nil || step.TripID != tripID {
		return newValidationError("stepId", "step %d does not belong to the trip", *stepID)
	}

	return nil
}

// InsertJournalEntry creates a journal entry and returns its id
func (a *App) InsertJournalEntry(p JournalEntryParams) (int, error) {
	if err := validateRequired("title", p.Title); err != nil {
		return 0, err
	}
	if err := a.validateStepOfTrip(p.StepID, p.TripID); err != nil {
		return 0, err
	}

	now := a.now()
	entryDate := now
	if p.EntryDate != nil {
		entryDate = *p.EntryDate
	}

	entry := database.JournalEntry{
		TripID:    p.TripID,
		StepID:    p.StepID,
		Title:     p.Title,
		Content:   p.Content,
		EntryDate: entryDate,
		CreatedAt: now,
	}
	if err := a.DB.Create(&entry).Error; err != nil {
		return 0, newStorageError("inserting journal entry", err)
	}

	markSnapshotsStale(a.DB)

	return entry.ID, nil
}

// GetJournalEntries returns the journal of the trip, most recent entry date first
func (a *App) GetJournalEntries(tripID int) ([]database.JournalEntry, error) {
	entries := []database.JournalEntry{}
	if err := a.DB.Where("tripId = ?", tripID).Order("entryDate DESC, createdAt DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, newStorageError("finding journal entries", err)
	}

	return entries, nil
}

// GetJournalEntryByID returns the journal entry with the given id, or nil if none exists
func (a *App) GetJournalEntryByID(id int) (*database.JournalEntry, error) {
	var entry database.JournalEntry
	ok, err := findByID(a.DB, &entry, id)
	if err != nil {
		return nil, newStorageError("finding journal entry", err)
	}
	if !ok {
		return nil, nil
	}

	return &entry, nil
}

// UpdateJournalEntry applies a partial update to the journal entry
func (a *App) UpdateJournalEntry(id int, p JournalEntryPatch) error {
	u := updates{}

	if p.Title != nil {
		if err := validateRequired("title", *p.Title); err != nil {
			return err
		}
		u["title"] = *p.Title
	}
	if stepID, ok := p.StepID.Get(); ok {
		current, err := a.GetJournalEntryByID(id)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrNotFound
		}
		if err := a.validateStepOfTrip(&stepID, current.TripID); err != nil {
			return err
		}
	}

	setNullable(u, "content", p.Content)
	setNullable(u, "stepId", p.StepID)
	setValue(u, "entryDate", p.EntryDate)

	if err := applyUpdates(a.DB, &database.JournalEntry{}, id, u, "updating journal entry"); err != nil {
		return err
	}

	markSnapshotsStale(a.DB)

	return nil
}

// DeleteJournalEntry deletes the journal entry along with its media
func (a *App) DeleteJournalEntry(id int) error {
	if err := deleteByID(a.DB, &database.JournalEntry{}, id, "deleting journal entry"); err != nil {
		return err
	}

	markSnapshotsStale(a.DB)

	return nil
}

// AddJournalMedia attaches a photo or an audio recording to the journal
// entry and returns the id of the attachment
func (a *App) AddJournalMedia(p JournalMediaParams) (int, error) {
	if err := validateOneOf("type", p.Type, database.MediaTypePhoto, database.MediaTypeAudio); err != nil {
		return 0, err
	}
	if err := validateRequired("uri", p.URI); err != nil {
		return 0, err
	}

	media := database.JournalMedia{
		EntryID:   p.EntryID,
		Type:      p.Type,
		URI:       p.URI,
		Caption:   p.Caption,
		CreatedAt: a.now(),
	}
	if err := a.DB.Create(&media).Error; err != nil {
		return 0, newStorageError("inserting journal media", err)
	}

	return media.ID, nil
}

// GetJournalMedia returns the attachments of the journal entry in the order they were added
func (a *App) GetJournalMedia(entryID int) ([]database.JournalMedia, error) {
	media := []database.JournalMedia{}
	if err := a.DB.Where("entryId = ?", entryID).Order("createdAt ASC, id ASC").Find(&media).Error; err != nil {
		return nil, newStorageError("finding journal media", err)
	}

	return media, nil
}

// DeleteJournalMedia deletes the attachment
func (a *App) DeleteJournalMedia(id int) error {
	return deleteByID(a.DB, &database.JournalMedia{}, id, "deleting journal media")
}
