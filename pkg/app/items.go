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

// ChecklistItemParams is the data of a new checklist item
type ChecklistItemParams struct {
	ChecklistID int
	Text        string
	// Priority defaults to medium
	Priority     string
	DueDate      *int64
	ReminderDate *int64
}

// ChecklistItemPatch is a partial update of a checklist item
type ChecklistItemPatch struct {
	Text         *string
	IsCompleted  *bool
	Priority     *string
	DueDate      null.Field[int64]
	ReminderDate null.Field[int64]
	OrderIndex   *int
}

func validatePriority(priority string) error {
	return validateOneOf("priority", priority, database.PriorityLow, database.PriorityMedium, database.PriorityHigh)
}

// InsertChecklistItem creates an item at the end of the checklist and
// returns its id
func (a *App) InsertChecklistItem(p ChecklistItemParams) (int, error) {
	if err := validateRequired("text", p.Text); err != nil {
		return 0, err
	}

	priority := p.Priority
	if priority == "" {
		priority = database.PriorityMedium
	}
	if err := validatePriority(priority); err != nil {
		return 0, err
	}

	tx := a.DB.Begin()

	var maxIndex int
	if err := tx.Model(&database.ChecklistItem{}).
		Select("COALESCE(MAX(orderIndex), 0)").
		Where("checklistId = ?", p.ChecklistID).
		Scan(&maxIndex).Error; err != nil {
		tx.Rollback()
		return 0, newStorageError("finding the last order index", err)
	}

	item := database.ChecklistItem{
		ChecklistID:  p.ChecklistID,
		Text:         p.Text,
		IsCompleted:  false,
		Priority:     priority,
		DueDate:      p.DueDate,
		ReminderDate: p.ReminderDate,
		OrderIndex:   maxIndex + 1,
		CreatedAt:    a.now(),
	}
	if err := tx.Create(&item).Error; err != nil {
		tx.Rollback()
		return 0, newStorageError("inserting checklist item", err)
	}

	if err := tx.Commit().Error; err != nil {
		return 0, newStorageError("committing a transaction", err)
	}

	markSnapshotsStale(a.DB)

	return item.ID, nil
}

// GetChecklistItems returns the items of the checklist in order
func (a *App) GetChecklistItems(checklistID int) ([]database.ChecklistItem, error) {
	items := []database.ChecklistItem{}
	if err := a.DB.Where("checklistId = ?", checklistID).Order("orderIndex ASC, id ASC").Find(&items).Error; err != nil {
		return nil, newStorageError("finding checklist items", err)
	}

	return items, nil
}

// GetChecklistItemsByCompletion returns the items of the checklist with the
// given completion state, in order
func (a *App) GetChecklistItemsByCompletion(checklistID int, completed bool) ([]database.ChecklistItem, error) {
	items := []database.ChecklistItem{}
	if err := a.DB.Where("checklistId = ? AND isCompleted = ?", checklistID, completed).Order("orderIndex ASC, id ASC").Find(&items).Error; err != nil {
		return nil, newStorageError("finding checklist items", err)
	}

	return items, nil
}

// GetChecklistItemByID returns the item with the given id, or nil if none exists
func (a *App) GetChecklistItemByID(id int) (*database.ChecklistItem, error) {
	var item database.ChecklistItem
	ok, err := findByID(a.DB, &item, id)
	if err != nil {
		return nil, newStorageError("finding checklist item", err)
	}
	if !ok {
		return nil, nil
	}

	return &item, nil
}

// UpdateChecklistItem applies a partial update to the item
func (a *App) UpdateChecklistItem(id int, p ChecklistItemPatch) error {
	u := updates{}

	if p.Text != nil {
		if err := validateRequired("text", *p.Text); err != nil {
			return err
		}
		u["text"] = *p.Text
	}
	if p.Priority != nil {
		if err := validatePriority(*p.Priority); err != nil {
			return err
		}
		u["priority"] = *p.Priority
	}

	setValue(u, "isCompleted", p.IsCompleted)
	setNullable(u, "dueDate", p.DueDate)
	setNullable(u, "reminderDate", p.ReminderDate)
	setValue(u, "orderIndex", p.OrderIndex)

	if err := applyUpdates(a.DB, &database.ChecklistItem{}, id, u, "updating checklist item"); err != nil {
		return err
	}

	markSnapshotsStale(a.DB)

	return nil
}

// DeleteChecklistItem deletes the item. The order of the remaining items is
// left as is.
func (a *App) DeleteChecklistItem(id int) error {
	if err := deleteByID(a.DB, &database.ChecklistItem{}, id, "deleting checklist item"); err != nil {
		return err
	}

	markSnapshotsStale(a.DB)

	return nil
}

// ReorderChecklistItems sets the order of the checklist's items to 1..N
// following the position of each id. Ids of items of other checklists are
// ignored.
func (a *App) ReorderChecklistItems(checklistID int, orderedIDs []int) error {
	if err := reorder(a.DB, &database.ChecklistItem{}, "checklistId", checklistID, orderedIDs, "reordering checklist items"); err != nil {
		return err
	}

	markSnapshotsStale(a.DB)

	return nil
}
