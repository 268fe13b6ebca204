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
	"github.com/pkg/errors"
)

// ChecklistParams is the data of a new checklist
type ChecklistParams struct {
	// TripID is nil for a template
	TripID      *int
	Name        string
	Description *string
	IsTemplate  bool
}

// ChecklistPatch is a partial update of a checklist
type ChecklistPatch struct {
	Name        *string
	Description null.Field[string]
}

// InsertChecklist creates a checklist and returns its id. A checklist
// without a trip is always a template, and a template cannot belong to a trip.
func (a *App) InsertChecklist(p ChecklistParams) (int, error) {
	if err := validateRequired("name", p.Name); err != nil {
		return 0, err
	}
	if p.IsTemplate && p.TripID != nil {
		return 0, newValidationError("isTemplate", "a template cannot belong to a trip")
	}

	checklist := database.Checklist{
		TripID:      p.TripID,
		Name:        p.Name,
		Description: p.Description,
		IsTemplate:  p.IsTemplate || p.TripID == nil,
		CreatedAt:   a.now(),
	}
	if err := a.DB.Create(&checklist).Error; err != nil {
		return 0, newStorageError("inserting checklist", err)
	}

	markSnapshotsStale(a.DB)

	return checklist.ID, nil
}

// GetChecklists returns the checklists of the trip, newest first
func (a *App) GetChecklists(tripID int) ([]database.Checklist, error) {
	checklists := []database.Checklist{}
	if err := a.DB.Where("tripId = ?", tripID).Order("createdAt DESC, id DESC").Find(&checklists).Error; err != nil {
		return nil, newStorageError("finding checklists", err)
	}

	return checklists, nil
}

// GetChecklistTemplates returns the reusable templates, newest first
func (a *App) GetChecklistTemplates() ([]database.Checklist, error) {
	checklists := []database.Checklist{}
	if err := a.DB.Where("isTemplate = ?", true).Order("createdAt DESC, id DESC").Find(&checklists).Error; err != nil {
		return nil, newStorageError("finding checklist templates", err)
	}

	return checklists, nil
}

// GetChecklistByID returns the checklist with the given id, or nil if none exists
func (a *App) GetChecklistByID(id int) (*database.Checklist, error) {
	var checklist database.Checklist
	ok, err := findByID(a.DB, &checklist, id)
	if err != nil {
		return nil, newStorageError("finding checklist", err)
	}
	if !ok {
		return nil, nil
	}

	return &checklist, nil
}

// UpdateChecklist applies a partial update to the checklist
func (a *App) UpdateChecklist(id int, p ChecklistPatch) error {
	u := updates{}

	if p.Name != nil {
		if err := validateRequired("name", *p.Name); err != nil {
			return err
		}
		u["name"] = *p.Name
	}
	setNullable(u, "description", p.Description)

	if err := applyUpdates(a.DB, &database.Checklist{}, id, u, "updating checklist"); err != nil {
		return err
	}

	markSnapshotsStale(a.DB)

	return nil
}

// DeleteChecklist deletes the checklist along with its items
func (a *App) DeleteChecklist(id int) error {
	if err := deleteByID(a.DB, &database.Checklist{}, id, "deleting checklist"); err != nil {
		return err
	}

	markSnapshotsStale(a.DB)

	return nil
}

// CreateChecklistFromTemplate copies the template and its items into a new
// checklist of the trip and returns its id. Copied items are not completed
// and keep the template's order. Dates are not copied.
func (a *App) CreateChecklistFromTemplate(templateID, tripID int) (int, error) {
	template, err := a.GetChecklistByID(templateID)
	if err != nil {
		return 0, err
	}
	if template == nil {
		return 0, ErrNotFound
	}
	if !template.IsTemplate {
		return 0, newValidationError("templateId", "checklist %d is not a template", templateID)
	}

	items, err := a.GetChecklistItems(templateID)
	if err != nil {
		return 0, err
	}

	now := a.now()
	tx := a.DB.Begin()

	checklist := database.Checklist{
		TripID:      &tripID,
		Name:        template.Name,
		Description: template.Description,
		IsTemplate:  false,
		CreatedAt:   now,
	}
	if err := tx.Create(&checklist).Error; err != nil {
		tx.Rollback()
		return 0, newStorageError("inserting checklist", err)
	}

	for _, item := range items {
		copied := database.ChecklistItem{
			ChecklistID: checklist.ID,
			Text:        item.Text,
			IsCompleted: false,
			Priority:    item.Priority,
			OrderIndex:  item.OrderIndex,
			CreatedAt:   now,
		}
		if err := tx.Create(&copied).Error; err != nil {
			tx.Rollback()
			return 0, newStorageError("copying checklist item", errors.Wrapf(err, "item %d", item.ID))
		}
	}

	if err := tx.Commit().Error; err != nil {
		return 0, newStorageError("committing a transaction", err)
	}

	markSnapshotsStale(a.DB)

	return checklist.ID, nil
}
