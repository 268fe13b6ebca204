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

package database

import "fmt"

const (
	// PriorityLow is the low checklist item priority
	PriorityLow = "low"
	// PriorityMedium is the default checklist item priority
	PriorityMedium = "medium"
	// PriorityHigh is the high checklist item priority
	PriorityHigh = "high"
)

const (
	// MediaTypePhoto is a photo attached to a journal entry
	MediaTypePhoto = "photo"
	// MediaTypeAudio is an audio recording attached to a journal entry
	MediaTypeAudio = "audio"
)

const (
	// ShareTypeReadonly grants view access through a share link
	ShareTypeReadonly = "readonly"
	// ShareTypeCollaborative grants edit access through a share link
	ShareTypeCollaborative = "collaborative"
)

const (
	// RoleViewer can view a trip
	RoleViewer = "viewer"
	// RoleEditor can edit a trip
	RoleEditor = "editor"
	// RoleAdmin can edit a trip and manage its collaborators
	RoleAdmin = "admin"
)

const (
	// SyncStatusSynced indicates the offline snapshot is up to date
	SyncStatusSynced = "synced"
	// SyncStatusPending indicates local changes are not in the snapshot yet
	SyncStatusPending = "pending"
	// SyncStatusError indicates the last snapshot preparation failed
	SyncStatusError = "error"
)

const (
	// SystemOfflineSnapshot prefixes the keys of the serialized offline snapshots in the system table
	SystemOfflineSnapshot = "offline_snapshot"
	// SystemSyncStatus prefixes the keys of the sync statuses in the system table
	SystemSyncStatus = "sync_status"
	// SystemSessionUserID is the key of the id of the user logged in to the CLI
	SystemSessionUserID = "session_user_id"
)

// OfflineSnapshotKey is the system key of the user's offline snapshot
func OfflineSnapshotKey(userID int) string {
	return fmt.Sprintf("%s:%d", SystemOfflineSnapshot, userID)
}

// SyncStatusKey is the system key of the sync status of the user's snapshot
func SyncStatusKey(userID int) string {
	return fmt.Sprintf("%s:%d", SystemSyncStatus, userID)
}
