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
	"testing"
	"time"

	"github.com/dnote/tripnote/pkg/assert"
	"github.com/dnote/tripnote/pkg/clock"
	"github.com/dnote/tripnote/pkg/database"
	"github.com/dnote/tripnote/pkg/testutils"
	"github.com/pkg/errors"
)

func TestTripCollaborators(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest(db)
	c := mockClock(a)
	alice := testutils.SetupUserData(db, "alice@example.com", "password123")
	bob := testutils.SetupUserData(db, "bob@example.com", "password123")
	carol := testutils.SetupUserData(db, "carol@example.com", "password123")
	trip := testutils.SetupTripData(db, alice.ID, "Lisbon")

	bobID, err := a.AddTripCollaborator(TripCollaboratorParams{TripID: trip.ID, UserID: bob.ID, Role: database.RoleViewer, InvitedBy: alice.ID})
	if err != nil {
		t.Fatal(errors.Wrap(err, "adding bob"))
	}
	c.Advance(time.Second)
	carolID, err := a.AddTripCollaborator(TripCollaboratorParams{TripID: trip.ID, UserID: carol.ID, Role: database.RoleAdmin, InvitedBy: alice.ID})
	if err != nil {
		t.Fatal(errors.Wrap(err, "adding carol"))
	}

	_, err = a.AddTripCollaborator(TripCollaboratorParams{TripID: trip.ID, UserID: bob.ID, Role: database.RoleEditor, InvitedBy: alice.ID})
	assert.Equal(t, IsValidationError(err), true, "inviting twice should be a validation error")

	_, err = a.AddTripCollaborator(TripCollaboratorParams{TripID: trip.ID, UserID: alice.ID, Role: "owner", InvitedBy: alice.ID})
	assert.Equal(t, IsValidationError(err), true, "unknown role should be a validation error")

	collaborators, err := a.GetTripCollaborators(trip.ID)
	if err != nil {
		t.Fatal(errors.Wrap(err, "getting collaborators"))
	}
	assert.Equalf(t, len(collaborators), 2, "collaborator count mismatch")
	assert.Equal(t, collaborators[0].ID, bobID, "first invited should come first")
	assert.Equal(t, collaborators[1].ID, carolID, "last invited should come last")
	assert.Equal(t, collaborators[0].JoinedAt == nil, true, "invitation should not be joined yet")

	c.Advance(time.Hour)
	if err := a.AcceptCollaboration(bobID); err != nil {
		t.Fatal(errors.Wrap(err, "accepting"))
	}
	if err := a.UpdateCollaboratorRole(bobID, database.RoleEditor); err != nil {
		t.Fatal(errors.Wrap(err, "updating role"))
	}
	err = a.UpdateCollaboratorRole(bobID, "owner")
	assert.Equal(t, IsValidationError(err), true, "unknown role should be a validation error")

	collaborators, err = a.GetTripCollaborators(trip.ID)
	if err != nil {
		t.Fatal(errors.Wrap(err, "getting collaborators"))
	}
	assert.Equal(t, *collaborators[0].JoinedAt, clock.Millis(c), "joinedAt mismatch")
	assert.Equal(t, collaborators[0].Role, database.RoleEditor, "role mismatch")

	if err := a.RemoveTripCollaborator(carolID); err != nil {
		t.Fatal(errors.Wrap(err, "removing"))
	}
	collaborators, err = a.GetTripCollaborators(trip.ID)
	if err != nil {
		t.Fatal(errors.Wrap(err, "getting collaborators"))
	}
	assert.Equal(t, len(collaborators), 1, "collaborator count after removal mismatch")

	err = a.RemoveTripCollaborator(carolID)
	assert.Equal(t, err, ErrNotFound, "removing twice should be not found")
	err = a.AcceptCollaboration(carolID)
	assert.Equal(t, err, ErrNotFound, "accepting a removed invitation should be not found")
}

func TestDeleteUser_removesCollaborations(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest(db)
	alice := testutils.SetupUserData(db, "alice@example.com", "password123")
	bob := testutils.SetupUserData(db, "bob@example.com", "password123")
	trip := testutils.SetupTripData(db, alice.ID, "Lisbon")

	if _, err := a.AddTripCollaborator(TripCollaboratorParams{TripID: trip.ID, UserID: bob.ID, Role: database.RoleViewer, InvitedBy: alice.ID}); err != nil {
		t.Fatal(errors.Wrap(err, "adding collaborator"))
	}

	if err := a.DeleteUser(bob.ID); err != nil {
		t.Fatal(errors.Wrap(err, "deleting user"))
	}

	collaborators, err := a.GetTripCollaborators(trip.ID)
	if err != nil {
		t.Fatal(errors.Wrap(err, "getting collaborators"))
	}
	assert.Equal(t, len(collaborators), 0, "collaboration of a deleted user should be gone")
}
