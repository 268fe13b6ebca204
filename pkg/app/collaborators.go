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
)

// TripCollaboratorParams is the data of a new collaborator
type TripCollaboratorParams struct {
	TripID    int
	UserID    int
	Role      string
	InvitedBy int
}

func validateRole(role string) error {
	return validateOneOf("role", role, database.RoleViewer, database.RoleEditor, database.RoleAdmin)
}

// AddTripCollaborator invites the user to the trip and returns the id of the
// invitation
func (a *App) AddTripCollaborator(p TripCollaboratorParams) (int, error) {
	if err := validateRole(p.Role); err != nil {
		return 0, err
	}

	var count int64
	if err := a.DB.Model(&database.TripCollaborator{}).Where("tripId = ? AND userId = ?", p.TripID, p.UserID).Count(&count).Error; err != nil {
		return 0, newStorageError("counting collaborators", err)
	}
	if count > 0 {
		return 0, newValidationError("userId", "user %d already collaborates on the trip", p.UserID)
	}

	collaborator := database.TripCollaborator{
		TripID:    p.TripID,
		UserID:    p.UserID,
		Role:      p.Role,
		InvitedBy: p.InvitedBy,
		CreatedAt: a.now(),
	}
	if err := a.DB.Create(&collaborator).Error; err != nil {
		return 0, newStorageError("inserting collaborator", err)
	}

	return collaborator.ID, nil
}

// GetTripCollaborators returns the collaborators of the trip in the order they were invited
func (a *App) GetTripCollaborators(tripID int) ([]database.TripCollaborator, error) {
	collaborators := []database.TripCollaborator{}
	if err := a.DB.Where("tripId = ?", tripID).Order("createdAt ASC, id ASC").Find(&collaborators).Error; err != nil {
		return nil, newStorageError("finding collaborators", err)
	}

	return collaborators, nil
}

// AcceptCollaboration marks the invitation as joined
func (a *App) AcceptCollaboration(id int) error {
	return applyUpdates(a.DB, &database.TripCollaborator{}, id, updates{"joinedAt": a.now()}, "accepting collaboration")
}

// UpdateCollaboratorRole changes the role of the collaborator
func (a *App) UpdateCollaboratorRole(id int, role string) error {
	if err := validateRole(role); err != nil {
		return err
	}

	return applyUpdates(a.DB, &database.TripCollaborator{}, id, updates{"role": role}, "updating collaborator role")
}

// RemoveTripCollaborator removes the collaborator from the trip
func (a *App) RemoveTripCollaborator(id int) error {
	return deleteByID(a.DB, &database.TripCollaborator{}, id, "removing collaborator")
}
