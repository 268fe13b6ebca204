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

import (
	"gorm.io/datatypes"
)

// User is a model for a user
type User struct {
	ID        int     `gorm:"column:id;primaryKey" json:"id"`
	Username  string  `gorm:"column:username" json:"username"`
	Email     string  `gorm:"column:email" json:"email"`
	Password  string  `gorm:"column:password" json:"-"`
	FirstName *string `gorm:"column:firstName" json:"firstName"`
	LastName  *string `gorm:"column:lastName" json:"lastName"`
	Mobile    *string `gorm:"column:mobile" json:"mobile"`
	BirthDate *int64  `gorm:"column:birthDate" json:"birthDate"`
	Avatar    *string `gorm:"column:avatar" json:"avatar"`
	Country   *string `gorm:"column:country" json:"country"`
	CreatedAt int64   `gorm:"column:createdAt;autoCreateTime:false" json:"createdAt"`
}

// TableName returns the table name of the model
func (User) TableName() string { return "users" }

// Trip is a model for a trip, the aggregate root of the itinerary
type Trip struct {
	ID          int      `gorm:"column:id;primaryKey" json:"id"`
	UserID      int      `gorm:"column:userId" json:"userId"`
	Title       string   `gorm:"column:title" json:"title"`
	Description *string  `gorm:"column:description" json:"description"`
	StartDate   *int64   `gorm:"column:startDate" json:"startDate"`
	EndDate     *int64   `gorm:"column:endDate" json:"endDate"`
	CoverImage  *string  `gorm:"column:coverImage" json:"coverImage"`
	Latitude    *float64 `gorm:"column:latitude" json:"latitude"`
	Longitude   *float64 `gorm:"column:longitude" json:"longitude"`
	CreatedAt   int64    `gorm:"column:createdAt;autoCreateTime:false" json:"createdAt"`
}

// TableName returns the table name of the model
func (Trip) TableName() string { return "trips" }

// TripStep is a model for an ordered stage of a trip
type TripStep struct {
	ID          int      `gorm:"column:id;primaryKey" json:"id"`
	TripID      int      `gorm:"column:tripId" json:"tripId"`
	Name        string   `gorm:"column:name" json:"name"`
	Description *string  `gorm:"column:description" json:"description"`
	StartDate   *int64   `gorm:"column:startDate" json:"startDate"`
	EndDate     *int64   `gorm:"column:endDate" json:"endDate"`
	Latitude    *float64 `gorm:"column:latitude" json:"latitude"`
	Longitude   *float64 `gorm:"column:longitude" json:"longitude"`
	OrderIndex  int      `gorm:"column:orderIndex" json:"orderIndex"`
	CreatedAt   int64    `gorm:"column:createdAt;autoCreateTime:false" json:"createdAt"`
}

// TableName returns the table name of the model
func (TripStep) TableName() string { return "trip_steps" }

// JournalEntry is a model for a journal entry
type JournalEntry struct {
	ID        int     `gorm:"column:id;primaryKey" json:"id"`
	TripID    int     `gorm:"column:tripId" json:"tripId"`
	StepID    *int    `gorm:"column:stepId" json:"stepId"`
	Title     string  `gorm:"column:title" json:"title"`
	Content   *string `gorm:"column:content" json:"content"`
	EntryDate int64   `gorm:"column:entryDate" json:"entryDate"`
	CreatedAt int64   `gorm:"column:createdAt;autoCreateTime:false" json:"createdAt"`
}

// TableName returns the table name of the model
func (JournalEntry) TableName() string { return "journal_entries" }

// JournalMedia is a model for a photo or an audio recording attached to a journal entry
type JournalMedia struct {
	ID        int     `gorm:"column:id;primaryKey" json:"id"`
	EntryID   int     `gorm:"column:entryId" json:"entryId"`
	Type      string  `gorm:"column:type" json:"type"`
	URI       string  `gorm:"column:uri" json:"uri"`
	Caption   *string `gorm:"column:caption" json:"caption"`
	CreatedAt int64   `gorm:"column:createdAt;autoCreateTime:false" json:"createdAt"`
}

// TableName returns the table name of the model
func (JournalMedia) TableName() string { return "journal_media" }

// Checklist is a model for a checklist. A checklist without a trip is a template.
type Checklist struct {
	ID          int     `gorm:"column:id;primaryKey" json:"id"`
	TripID      *int    `gorm:"column:tripId" json:"tripId"`
	Name        string  `gorm:"column:name" json:"name"`
	Description *string `gorm:"column:description" json:"description"`
	IsTemplate  bool    `gorm:"column:isTemplate" json:"isTemplate"`
	CreatedAt   int64   `gorm:"column:createdAt;autoCreateTime:false" json:"createdAt"`
}

// TableName returns the table name of the model
func (Checklist) TableName() string { return "checklists" }

// ChecklistItem is a model for an item of a checklist
type ChecklistItem struct {
	ID           int    `gorm:"column:id;primaryKey" json:"id"`
	ChecklistID  int    `gorm:"column:checklistId" json:"checklistId"`
	Text         string `gorm:"column:text" json:"text"`
	IsCompleted  bool   `gorm:"column:isCompleted" json:"isCompleted"`
	Priority     string `gorm:"column:priority" json:"priority"`
	DueDate      *int64 `gorm:"column:dueDate" json:"dueDate"`
	ReminderDate *int64 `gorm:"column:reminderDate" json:"reminderDate"`
	OrderIndex   int    `gorm:"column:orderIndex" json:"orderIndex"`
	CreatedAt    int64  `gorm:"column:createdAt;autoCreateTime:false" json:"createdAt"`
}

// TableName returns the table name of the model
func (ChecklistItem) TableName() string { return "checklist_items" }

// SharePermissions is the capability set granted by a share link
type SharePermissions struct {
	CanView             bool `json:"canView"`
	CanEdit             bool `json:"canEdit"`
	CanAddJournal       bool `json:"canAddJournal"`
	CanManageChecklists bool `json:"canManageChecklists"`
}

// TripShare is a model for a share link of a trip
type TripShare struct {
	ID          int                                  `gorm:"column:id;primaryKey" json:"id"`
	TripID      int                                  `gorm:"column:tripId" json:"tripId"`
	ShareToken  string                               `gorm:"column:shareToken" json:"shareToken"`
	ShareType   string                               `gorm:"column:shareType" json:"shareType"`
	Permissions datatypes.JSONType[SharePermissions] `gorm:"column:permissions" json:"permissions"`
	ExpiresAt   *int64                               `gorm:"column:expiresAt" json:"expiresAt"`
	CreatedBy   int                                  `gorm:"column:createdBy" json:"createdBy"`
	CreatedAt   int64                                `gorm:"column:createdAt;autoCreateTime:false" json:"createdAt"`
}

// TableName returns the table name of the model
func (TripShare) TableName() string { return "trip_shares" }

// IsExpired reports whether the share has an expiry before the given epoch
// milliseconds. Lookups never filter on expiry; callers decide with this.
func (s TripShare) IsExpired(nowMillis int64) bool {
	return s.ExpiresAt != nil && *s.ExpiresAt < nowMillis
}

// TripCollaborator is a model for a user collaborating on a trip
type TripCollaborator struct {
	ID        int    `gorm:"column:id;primaryKey" json:"id"`
	TripID    int    `gorm:"column:tripId" json:"tripId"`
	UserID    int    `gorm:"column:userId" json:"userId"`
	Role      string `gorm:"column:role" json:"role"`
	InvitedBy int    `gorm:"column:invitedBy" json:"invitedBy"`
	JoinedAt  *int64 `gorm:"column:joinedAt" json:"joinedAt"`
	CreatedAt int64  `gorm:"column:createdAt;autoCreateTime:false" json:"createdAt"`
}

// TableName returns the table name of the model
func (TripCollaborator) TableName() string { return "trip_collaborators" }

// System is a model for a local key-value pair
type System struct {
	Key   string `gorm:"column:key;primaryKey"`
	Value string `gorm:"column:value"`
}

// TableName returns the table name of the model
func (System) TableName() string { return "system" }
