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
	"github.com/dnote/tripnote/pkg/token"
	"github.com/pkg/errors"
)

func TestCreateTripShare(t *testing.T) {
	testCases := []struct {
		name                string
		shareType           string
		permissions         *database.SharePermissions
		expectedPermissions database.SharePermissions
	}{
		{
			name:                "readonly with default permissions",
			shareType:           database.ShareTypeReadonly,
			expectedPermissions: database.SharePermissions{CanView: true},
		},
		{
			name:      "collaborative with default permissions",
			shareType: database.ShareTypeCollaborative,
			expectedPermissions: database.SharePermissions{
				CanView:             true,
				CanEdit:             true,
				CanAddJournal:       true,
				CanManageChecklists: true,
			},
		},
		{
			name:                "collaborative with custom permissions",
			shareType:           database.ShareTypeCollaborative,
			permissions:         &database.SharePermissions{CanView: true, CanAddJournal: true},
			expectedPermissions: database.SharePermissions{CanView: true, CanAddJournal: true},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := testutils.InitMemoryDB(t)
			a := NewTest(db)
			user := testutils.SetupUserData(db, "alice@example.com", "password123")
			trip := testutils.SetupTripData(db, user.ID, "Lisbon")

			tok, err := a.CreateTripShare(TripShareParams{
				TripID:      trip.ID,
				ShareType:   tc.shareType,
				Permissions: tc.permissions,
				CreatedBy:   user.ID,
			})
			if err != nil {
				t.Fatal(errors.Wrap(err, "creating share"))
			}
			assert.Equal(t, token.IsValid(tok), true, "token should be 32 alphanumeric characters")

			share, err := a.GetTripShareByToken(tok)
			if err != nil {
				t.Fatal(errors.Wrap(err, "finding share"))
			}
			assert.Equal(t, share.TripID, trip.ID, "tripId mismatch")
			assert.Equal(t, share.ShareType, tc.shareType, "shareType mismatch")
			assert.Equal(t, share.Permissions.Data(), tc.expectedPermissions, "permissions mismatch")
			assert.Equal(t, share.CreatedBy, user.ID, "createdBy mismatch")
			assert.Equal(t, share.CreatedAt, a.now(), "createdAt mismatch")
			assert.Equal(t, share.ExpiresAt == nil, true, "expiresAt should be null")
		})
	}
}

func TestCreateTripShare_errors(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest(db)
	user := testutils.SetupUserData(db, "alice@example.com", "password123")
	trip := testutils.SetupTripData(db, user.ID, "Lisbon")

	_, err := a.CreateTripShare(TripShareParams{TripID: trip.ID, ShareType: "public", CreatedBy: user.ID})
	assert.Equal(t, IsValidationError(err), true, "unknown share type should be a validation error")

	_, err = a.CreateTripShare(TripShareParams{TripID: trip.ID + 1, ShareType: database.ShareTypeReadonly, CreatedBy: user.ID})
	assert.Equal(t, IsStorageError(err), true, "missing trip should be a storage error")

	var count int64
	testutils.MustExec(t, db.Model(&database.TripShare{}).Count(&count), "counting shares")
	assert.Equal(t, count, int64(0), "no share should be persisted")
}

func TestCreateTripShare_unique(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest(db)
	user := testutils.SetupUserData(db, "alice@example.com", "password123")
	trip := testutils.SetupTripData(db, user.ID, "Lisbon")

	const trials = 10000

	seen := make(map[string]bool, trials)
	prev := ""
	for i := 0; i < trials; i++ {
		tok, err := a.CreateTripShare(TripShareParams{TripID: trip.ID, ShareType: database.ShareTypeReadonly, CreatedBy: user.ID})
		if err != nil {
			t.Fatal(errors.Wrapf(err, "creating share %d", i))
		}
		if tok == prev || seen[tok] {
			t.Fatalf("duplicate token after %d trials: %s", i, tok)
		}

		seen[tok] = true
		prev = tok
	}

	var count int64
	testutils.MustExec(t, db.Model(&database.TripShare{}).Count(&count), "counting shares")
	assert.Equal(t, count, int64(trials), "share count mismatch")
}

func TestGetTripShareByToken(t *testing.T) {
	t.Run("unknown token", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)
		a := NewTest(db)

		share, err := a.GetTripShareByToken("abcdefghijklmnopqrstuvwxyz012345")
		assert.Equal(t, err, nil, "unknown token should not be an error")
		assert.Equal(t, share == nil, true, "unknown token should return nil")
	})

	t.Run("expired share is still returned", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)
		a := NewTest(db)
		c := mockClock(a)
		user := testutils.SetupUserData(db, "alice@example.com", "password123")
		trip := testutils.SetupTripData(db, user.ID, "Lisbon")

		expiresAt := clock.Millis(c) + time.Hour.Milliseconds()
		tok, err := a.CreateTripShare(TripShareParams{
			TripID:    trip.ID,
			ShareType: database.ShareTypeReadonly,
			ExpiresAt: &expiresAt,
			CreatedBy: user.ID,
		})
		if err != nil {
			t.Fatal(errors.Wrap(err, "creating share"))
		}

		share, err := a.GetTripShareByToken(tok)
		if err != nil {
			t.Fatal(errors.Wrap(err, "finding share"))
		}
		assert.Equal(t, share.IsExpired(clock.Millis(c)), false, "share should not be expired yet")

		c.Advance(2 * time.Hour)

		share, err = a.GetTripShareByToken(tok)
		if err != nil {
			t.Fatal(errors.Wrap(err, "finding share"))
		}
		assert.Equal(t, share != nil, true, "lookup should not filter expired shares")
		assert.Equal(t, *share.ExpiresAt < clock.Millis(c), true, "expiresAt should be in the past")
		assert.Equal(t, share.IsExpired(clock.Millis(c)), true, "share should be classified as expired")
	})
}

func TestGetTripShares(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest(db)
	c := mockClock(a)
	user := testutils.SetupUserData(db, "alice@example.com", "password123")
	trip := testutils.SetupTripData(db, user.ID, "Lisbon")
	other := testutils.SetupTripData(db, user.ID, "Porto")

	first, err := a.CreateTripShare(TripShareParams{TripID: trip.ID, ShareType: database.ShareTypeReadonly, CreatedBy: user.ID})
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating share"))
	}
	c.Advance(time.Second)
	second, err := a.CreateTripShare(TripShareParams{TripID: trip.ID, ShareType: database.ShareTypeCollaborative, CreatedBy: user.ID})
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating share"))
	}
	if _, err := a.CreateTripShare(TripShareParams{TripID: other.ID, ShareType: database.ShareTypeReadonly, CreatedBy: user.ID}); err != nil {
		t.Fatal(errors.Wrap(err, "creating share"))
	}

	shares, err := a.GetTripShares(trip.ID)
	if err != nil {
		t.Fatal(errors.Wrap(err, "getting shares"))
	}
	assert.Equalf(t, len(shares), 2, "share count mismatch")
	assert.Equal(t, shares[0].ShareToken, second, "newest share should come first")
	assert.Equal(t, shares[1].ShareToken, first, "oldest share should come last")
}

func TestDeleteTripShare(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest(db)
	user := testutils.SetupUserData(db, "alice@example.com", "password123")
	trip := testutils.SetupTripData(db, user.ID, "Lisbon")

	tok, err := a.CreateTripShare(TripShareParams{TripID: trip.ID, ShareType: database.ShareTypeReadonly, CreatedBy: user.ID})
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating share"))
	}
	share, err := a.GetTripShareByToken(tok)
	if err != nil {
		t.Fatal(errors.Wrap(err, "finding share"))
	}

	if err := a.DeleteTripShare(share.ID); err != nil {
		t.Fatal(errors.Wrap(err, "deleting share"))
	}

	share, err = a.GetTripShareByToken(tok)
	assert.Equal(t, err, nil, "lookup after delete should not be an error")
	assert.Equal(t, share == nil, true, "share should be gone")
}

func TestOpenTripShare(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest(db)
	user := testutils.SetupUserData(db, "alice@example.com", "password123")
	trip := testutils.SetupTripData(db, user.ID, "Lisbon")
	testutils.SetupStepData(db, trip.ID, "Alfama", 1)
	testutils.SetupStepData(db, trip.ID, "Belém", 2)

	if _, err := a.InsertJournalEntry(JournalEntryParams{TripID: trip.ID, Title: "Arrived"}); err != nil {
		t.Fatal(errors.Wrap(err, "preparing an entry"))
	}
	tripID := trip.ID
	checklistID, err := a.InsertChecklist(ChecklistParams{TripID: &tripID, Name: "Packing"})
	if err != nil {
		t.Fatal(errors.Wrap(err, "preparing a checklist"))
	}
	if _, err := a.InsertChecklistItem(ChecklistItemParams{ChecklistID: checklistID, Text: "Passport"}); err != nil {
		t.Fatal(errors.Wrap(err, "preparing an item"))
	}

	tok, err := a.CreateTripShare(TripShareParams{TripID: trip.ID, ShareType: database.ShareTypeReadonly, CreatedBy: user.ID})
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating share"))
	}

	got, err := a.OpenTripShare(tok)
	if err != nil {
		t.Fatal(errors.Wrap(err, "opening share"))
	}

	assert.Equal(t, got.Trip.ID, trip.ID, "trip mismatch")
	assert.Equal(t, got.Share.ShareToken, tok, "share mismatch")
	assert.Equal(t, len(got.Steps), 2, "step count mismatch")
	assert.Equal(t, got.Steps[0].Name, "Alfama", "step order mismatch")
	assert.Equal(t, len(got.JournalEntries), 1, "entry count mismatch")
	assert.Equal(t, len(got.Checklists), 1, "checklist count mismatch")
	assert.Equal(t, len(got.ChecklistItems), 1, "item count mismatch")
}

func TestOpenTripShare_errors(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest(db)
	c := mockClock(a)
	user := testutils.SetupUserData(db, "alice@example.com", "password123")
	trip := testutils.SetupTripData(db, user.ID, "Lisbon")

	expiresAt := clock.Millis(c) + time.Hour.Milliseconds()
	expiring, err := a.CreateTripShare(TripShareParams{TripID: trip.ID, ShareType: database.ShareTypeReadonly, ExpiresAt: &expiresAt, CreatedBy: user.ID})
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating share"))
	}
	hidden, err := a.CreateTripShare(TripShareParams{
		TripID:      trip.ID,
		ShareType:   database.ShareTypeReadonly,
		Permissions: &database.SharePermissions{CanView: false},
		CreatedBy:   user.ID,
	})
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating share"))
	}

	_, err = a.OpenTripShare("abcdefghijklmnopqrstuvwxyz012345")
	assert.Equal(t, err, ErrNotFound, "unknown token error mismatch")

	_, err = a.OpenTripShare(hidden)
	assert.Equal(t, err, ErrShareForbidden, "hidden share error mismatch")

	_, err = a.OpenTripShare(expiring)
	assert.Equal(t, err, nil, "share should open before its expiry")

	c.Advance(2 * time.Hour)
	_, err = a.OpenTripShare(expiring)
	assert.Equal(t, err, ErrShareExpired, "expired share error mismatch")
}

func TestDeleteExpiredShares(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest(db)
	c := mockClock(a)
	user := testutils.SetupUserData(db, "alice@example.com", "password123")
	trip := testutils.SetupTripData(db, user.ID, "Lisbon")

	past := clock.Millis(c) - time.Hour.Milliseconds()
	future := clock.Millis(c) + time.Hour.Milliseconds()
	for _, expiresAt := range []*int64{&past, &future, nil} {
		if _, err := a.CreateTripShare(TripShareParams{TripID: trip.ID, ShareType: database.ShareTypeReadonly, ExpiresAt: expiresAt, CreatedBy: user.ID}); err != nil {
			t.Fatal(errors.Wrap(err, "creating share"))
		}
	}

	count, err := a.DeleteExpiredShares()
	if err != nil {
		t.Fatal(errors.Wrap(err, "deleting expired shares"))
	}
	assert.Equal(t, count, int64(1), "deleted count mismatch")

	shares, err := a.GetTripShares(trip.ID)
	if err != nil {
		t.Fatal(errors.Wrap(err, "getting shares"))
	}
	assert.Equal(t, len(shares), 2, "remaining share count mismatch")
}
