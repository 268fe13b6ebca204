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

// StepParams is the data of a new trip step
type StepParams struct {
	TripID      int
	Name        string
	Description *string
	StartDate   *int64
	EndDate     *int64
	Latitude    *float64
	Longitude   *float64
	// OrderIndex defaults to one more than the number of steps in the trip
	OrderIndex *int
}

// StepPatch is a partial update of a trip step
type StepPatch struct {
	Name        *string
	Description null.Field[string]
	StartDate   null.Field[int64]
	EndDate     null.Field[int64]
	Latitude    null.Field[float64]
	Longitude   null.Field[float64]
	OrderIndex  *int
}

// InsertTripStep creates a step and returns its id
func (a *App) InsertTripStep(p StepParams) (int, error) {
	if err := validateRequired("name", p.Name); err != nil {
		return 0, err
	}
	if err := validateDates(p.StartDate, p.EndDate); err != nil {
		return 0, err
	}
	if err := validateCoordinates(p.Latitude, p.Longitude); err != nil {
		return 0, err
	}

	var orderIndex int
	if p.OrderIndex != nil {
		orderIndex = *p.OrderIndex
	} else {
		var count int64
		if err := a.DB.Model(&database.TripStep{}).Where("tripId = ?", p.TripID).Count(&count).Error; err != nil {
			return 0, newStorageError("counting steps", err)
		}

		orderIndex = int(count) + 1
	}

	step := database.TripStep{
		TripID:      p.TripID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		OrderIndex:  orderIndex,
		CreatedAt:   a.now(),
	}
	if err := a.DB.Create(&step).Error; err != nil {
		return 0, newStorageError("inserting step", err)
	}

	markSnapshotsStale(a.DB)

	return step.ID, nil
}

// GetTripSteps returns the steps of the trip in route order
func (a *App) GetTripSteps(tripID int) ([]database.TripStep, error) {
	steps := []database.TripStep{}
	if err := a.DB.Where("tripId = ?", tripID).Order("orderIndex ASC, id ASC").Find(&steps).Error; err != nil {
		return nil, newStorageError("finding steps", err)
	}

	return steps, nil
}

// GetTripStepByID returns the step with the given id, or nil if none exists
func (a *App) GetTripStepByID(id int) (*database.TripStep, error) {
	var step database.TripStep
	ok, err := findByID(a.DB, &step, id)
	if err != nil {
		return nil, newStorageError("finding step", err)
	}
	if !ok {
		return nil, nil
	}

	return &step, nil
}

// UpdateTripStep applies a partial update to the step
func (a *App) UpdateTripStep(id int, p StepPatch) error {
	current, err := a.GetTripStepByID(id)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrNotFound
	}

	u := updates{}

	if p.Name != nil {
		if err := validateRequired("name", *p.Name); err != nil {
			return err
		}
		u["name"] = *p.Name
	}
	if err := validateDates(mergeNullable(current.StartDate, p.StartDate), mergeNullable(current.EndDate, p.EndDate)); err != nil {
		return err
	}
	if err := validateCoordinates(p.Latitude.Ptr(), p.Longitude.Ptr()); err != nil {
		return err
	}

	setNullable(u, "description", p.Description)
	setNullable(u, "startDate", p.StartDate)
	setNullable(u, "endDate", p.EndDate)
	setNullable(u, "latitude", p.Latitude)
	setNullable(u, "longitude", p.Longitude)
	setValue(u, "orderIndex", p.OrderIndex)

	if err := applyUpdates(a.DB, &database.TripStep{}, id, u, "updating step"); err != nil {
		return err
	}

	markSnapshotsStale(a.DB)

	return nil
}

// DeleteTripStep deletes the step. Journal entries referencing it are kept
// and lose the reference.
func (a *App) DeleteTripStep(id int) error {
	if err := deleteByID(a.DB, &database.TripStep{}, id, "deleting step"); err != nil {
		return err
	}

	markSnapshotsStale(a.DB)

	return nil
}

// ReorderTripSteps sets the order of the trip's steps to 1..N following the
// position of each id. Ids of steps of other trips are ignored.
func (a *App) ReorderTripSteps(tripID int, orderedIDs []int) error {
	if err := reorder(a.DB, &database.TripStep{}, "tripId", tripID, orderedIDs, "reordering steps"); err != nil {
		return err
	}

	markSnapshotsStale(a.DB)

	return nil
}
