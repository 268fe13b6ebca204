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
	"fmt"

	"github.com/dnote/tripnote/pkg/database"
	"github.com/dnote/tripnote/pkg/log"
	"github.com/dnote/tripnote/pkg/null"
)

const (
	maxTripTitleLength       = 100
	maxTripDescriptionLength = 500
)

// TripParams is the data of a new trip
type TripParams struct {
	UserID      int
	Title       string
	Description *string
	StartDate   *int64
	EndDate     *int64
	CoverImage  *string
	Latitude    *float64
	Longitude   *float64
}

// TripPatch is a partial update of a trip
type TripPatch struct {
	Title       *string
	Description null.Field[string]
	StartDate   null.Field[int64]
	EndDate     null.Field[int64]
	CoverImage  null.Field[string]
	Latitude    null.Field[float64]
	Longitude   null.Field[float64]
}

// InsertTripResult is the outcome of creating a trip
type InsertTripResult struct {
	ID int
	// SeedStepID is the id of the step created from the trip's coordinates,
	// or 0 if none was created
	SeedStepID int
	// Warnings lists the failures of side effects that did not prevent the
	// trip from being created
	Warnings []string
}

func validateTripTitle(title string) error {
	if err := validateRequired("title", title); err != nil {
		return err
	}

	return validateMaxLength("title", title, maxTripTitleLength)
}

func validateTripDescription(description *string) error {
	if description == nil {
		return nil
	}

	return validateMaxLength("description", *description, maxTripDescriptionLength)
}

// InsertTrip creates a trip. If the trip has coordinates, an initial step
// mirroring the trip is created too. Failing to create that step does not
// fail the trip and is reported in the result's warnings instead.
func (a *App) InsertTrip(p TripParams) (InsertTripResult, error) {
	var ret InsertTripResult

	if err := validateTripTitle(p.Title); err != nil {
		return ret, err
	}
	if err := validateTripDescription(p.Description); err != nil {
		return ret, err
	}
	if err := validateDates(p.StartDate, p.EndDate); err != nil {
		return ret, err
	}
	if err := validateCoordinates(p.Latitude, p.Longitude); err != nil {
		return ret, err
	}

	trip := database.Trip{
		UserID:      p.UserID,
		Title:       p.Title,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		CoverImage:  p.CoverImage,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		CreatedAt:   a.now(),
	}
	if err := a.DB.Create(&trip).Error; err != nil {
		return ret, newStorageError("inserting trip", err)
	}
	ret.ID = trip.ID

	if p.Latitude != nil && p.Longitude != nil {
		step := database.TripStep{
			TripID:      trip.ID,
			Name:        trip.Title,
			Description: trip.Description,
			StartDate:   trip.StartDate,
			EndDate:     trip.EndDate,
			Latitude:    trip.Latitude,
			Longitude:   trip.Longitude,
			OrderIndex:  0,
			CreatedAt:   trip.CreatedAt,
		}

		if err := a.DB.Create(&step).Error; err != nil {
			msg := fmt.Sprintf("creating the initial step: %s", err.Error())
			ret.Warnings = append(ret.Warnings, msg)

			log.WithFields(log.Fields{
				"trip_id": trip.ID,
				"error":   err.Error(),
			}).Warn("failed to create the initial step")
		} else {
			ret.SeedStepID = step.ID
		}
	}

	markSnapshotsStale(a.DB)

	return ret, nil
}

// GetTripByID returns the trip with the given id, or nil if none exists
func (a *App) GetTripByID(id int) (*database.Trip, error) {
	var trip database.Trip
	ok, err := findByID(a.DB, &trip, id)
	if err != nil {
		return nil, newStorageError("finding trip", err)
	}
	if !ok {
		return nil, nil
	}

	return &trip, nil
}

// GetAllTrips returns the trips owned by the user, newest first
func (a *App) GetAllTrips(userID int) ([]database.Trip, error) {
	trips := []database.Trip{}
	if err := a.DB.Where("userId = ?", userID).Order("createdAt DESC, id DESC").Find(&trips).Error; err != nil {
		return nil, newStorageError("finding trips", err)
	}

	return trips, nil
}

// GetSharedTrips returns the trips the user collaborates on, newest first
func (a *App) GetSharedTrips(userID int) ([]database.Trip, error) {
	sub := a.DB.Model(&database.TripCollaborator{}).Select("tripId").Where("userId = ?", userID)

	trips := []database.Trip{}
	if err := a.DB.Where("id IN (?)", sub).Order("createdAt DESC, id DESC").Find(&trips).Error; err != nil {
		return nil, newStorageError("finding shared trips", err)
	}

	return trips, nil
}

// UpdateTrip applies a partial update to the trip. The dates the trip will
// hold after the update must be in order.
func (a *App) UpdateTrip(id int, p TripPatch) error {
	current, err := a.GetTripByID(id)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrNotFound
	}

	u := updates{}

	if p.Title != nil {
		if err := validateTripTitle(*p.Title); err != nil {
			return err
		}
		u["title"] = *p.Title
	}
	if err := validateTripDescription(p.Description.Ptr()); err != nil {
		return err
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
	setNullable(u, "coverImage", p.CoverImage)
	setNullable(u, "latitude", p.Latitude)
	setNullable(u, "longitude", p.Longitude)

	if err := applyUpdates(a.DB, &database.Trip{}, id, u, "updating trip"); err != nil {
		return err
	}

	markSnapshotsStale(a.DB)

	return nil
}

// DeleteTrip deletes the trip. Its steps, journal, checklists, shares and
// collaborators are deleted by the store's cascade rules.
func (a *App) DeleteTrip(id int) error {
	if err := deleteByID(a.DB, &database.Trip{}, id, "deleting trip"); err != nil {
		return err
	}

	markSnapshotsStale(a.DB)

	return nil
}
