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
	"encoding/json"

	"github.com/dnote/tripnote/pkg/database"
	"github.com/dnote/tripnote/pkg/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// SnapshotVersion is the version of the offline snapshot format
const SnapshotVersion = 1

// Snapshot is a point-in-time copy of a user's data for offline viewing
type Snapshot struct {
	Version        int                      `json:"version"`
	UserID         int                      `json:"userId"`
	LastSync       int64                    `json:"lastSync"`
	Trips          []database.Trip          `json:"trips"`
	TripSteps      []database.TripStep      `json:"tripSteps"`
	JournalEntries []database.JournalEntry  `json:"journalEntries"`
	Checklists     []database.Checklist     `json:"checklists"`
	ChecklistItems []database.ChecklistItem `json:"checklistItems"`
}

// buildSnapshot reads the user's trips, everything the trips own and the
// checklist templates
func buildSnapshot(db *gorm.DB, userID int) (Snapshot, error) {
	s := Snapshot{
		Version:        SnapshotVersion,
		UserID:         userID,
		Trips:          []database.Trip{},
		TripSteps:      []database.TripStep{},
		JournalEntries: []database.JournalEntry{},
		Checklists:     []database.Checklist{},
		ChecklistItems: []database.ChecklistItem{},
	}

	if err := db.Where("userId = ?", userID).Order("createdAt DESC, id DESC").Find(&s.Trips).Error; err != nil {
		return s, errors.Wrap(err, "finding trips")
	}

	tripIDs := []int{}
	for _, t := range s.Trips {
		tripIDs = append(tripIDs, t.ID)
	}

	if err := db.Where("tripId IN ?", tripIDs).Order("tripId ASC, orderIndex ASC, id ASC").Find(&s.TripSteps).Error; err != nil {
		return s, errors.Wrap(err, "finding steps")
	}
	if err := db.Where("tripId IN ?", tripIDs).Order("entryDate DESC, createdAt DESC, id DESC").Find(&s.JournalEntries).Error; err != nil {
		return s, errors.Wrap(err, "finding journal entries")
	}
	if err := db.Where("tripId IN ? OR tripId IS NULL", tripIDs).Order("createdAt DESC, id DESC").Find(&s.Checklists).Error; err != nil {
		return s, errors.Wrap(err, "finding checklists")
	}

	checklistIDs := []int{}
	for _, c := range s.Checklists {
		checklistIDs = append(checklistIDs, c.ID)
	}

	if err := db.Where("checklistId IN ?", checklistIDs).Order("checklistId ASC, orderIndex ASC, id ASC").Find(&s.ChecklistItems).Error; err != nil {
		return s, errors.Wrap(err, "finding checklist items")
	}

	return s, nil
}

// markSyncError records a failed snapshot of the user's data. A failure to
// record it is only logged.
func (a *App) markSyncError(userID int, cause error) {
	if err := setSystem(a.DB, database.SyncStatusKey(userID), database.SyncStatusError); err != nil {
		log.WithFields(log.Fields{
			"user_id": userID,
			"cause":   cause.Error(),
		}).ErrorWrap(err, "recording the sync error")
	}
}

// markSnapshotsStale sets every synced snapshot back to pending after a write
// to data the snapshots copy. A failure is only logged.
func markSnapshotsStale(db *gorm.DB) {
	err := db.Model(&database.System{}).
		Where("key LIKE ? AND value = ?", database.SystemSyncStatus+":%", database.SyncStatusSynced).
		Update("value", database.SyncStatusPending).Error
	if err != nil {
		log.ErrorWrap(err, "marking offline snapshots stale")
	}
}

// PrepareOfflineData stores a snapshot of the user's data and marks the
// user's sync status as synced. On failure the sync status is set to error.
// Any later write to trips, steps, journal entries or checklists sets it back
// to pending until the snapshot is prepared again.
func (a *App) PrepareOfflineData(userID int) (Snapshot, error) {
	tx := a.DB.Begin()

	s, err := buildSnapshot(tx, userID)
	if err != nil {
		tx.Rollback()
		a.markSyncError(userID, err)
		return Snapshot{}, newStorageError("reading offline data", err)
	}
	s.LastSync = a.now()

	b, err := json.Marshal(s)
	if err != nil {
		tx.Rollback()
		a.markSyncError(userID, err)
		return Snapshot{}, errors.Wrap(err, "encoding offline data")
	}

	if err := setSystem(tx, database.OfflineSnapshotKey(userID), string(b)); err != nil {
		tx.Rollback()
		a.markSyncError(userID, err)
		return Snapshot{}, newStorageError("saving offline data", err)
	}
	if err := setSystem(tx, database.SyncStatusKey(userID), database.SyncStatusSynced); err != nil {
		tx.Rollback()
		a.markSyncError(userID, err)
		return Snapshot{}, newStorageError("saving sync status", err)
	}

	if err := tx.Commit().Error; err != nil {
		a.markSyncError(userID, err)
		return Snapshot{}, newStorageError("committing a transaction", err)
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"trips":   len(s.Trips),
	}).Info("prepared offline data")

	return s, nil
}

// GetOfflineData returns the snapshot stored for the user, or nil if none
// was prepared
func (a *App) GetOfflineData(userID int) (*Snapshot, error) {
	v, ok, err := getSystem(a.DB, database.OfflineSnapshotKey(userID))
	if err != nil {
		return nil, newStorageError("reading offline data", err)
	}
	if !ok {
		return nil, nil
	}

	var s Snapshot
	if err := json.Unmarshal([]byte(v), &s); err != nil {
		return nil, errors.Wrap(err, "decoding offline data")
	}
	if s.UserID != userID {
		return nil, nil
	}

	return &s, nil
}

// GetSyncStatus returns the sync status of the user's snapshot. It is
// pending until set.
func (a *App) GetSyncStatus(userID int) (string, error) {
	v, ok, err := getSystem(a.DB, database.SyncStatusKey(userID))
	if err != nil {
		return "", newStorageError("reading sync status", err)
	}
	if !ok {
		return database.SyncStatusPending, nil
	}

	return v, nil
}

// SetSyncStatus sets the sync status of the user's snapshot
func (a *App) SetSyncStatus(userID int, status string) error {
	if err := validateOneOf("status", status, database.SyncStatusSynced, database.SyncStatusPending, database.SyncStatusError); err != nil {
		return err
	}

	if err := setSystem(a.DB, database.SyncStatusKey(userID), status); err != nil {
		return newStorageError("saving sync status", err)
	}

	return nil
}
