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

	"github.com/dnote/tripnote/pkg/assert"
	"github.com/dnote/tripnote/pkg/database"
	"github.com/dnote/tripnote/pkg/null"
	"github.com/dnote/tripnote/pkg/testutils"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

func TestInsertUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)
		a := NewTest(db)

		id, err := a.InsertUser(UserParams{
			Username:  "alice",
			Email:     "alice@example.com",
			Password:  "secret1",
			FirstName: strPtr("Alice"),
			Country:   strPtr("PT"),
		})
		if err != nil {
			t.Fatal(errors.Wrap(err, "inserting user"))
		}

		var user database.User
		testutils.MustExec(t, db.Where("id = ?", id).First(&user), "finding user")

		assert.Equal(t, user.Username, "alice", "username mismatch")
		assert.Equal(t, user.Email, "alice@example.com", "email mismatch")
		assert.Equal(t, *user.FirstName, "Alice", "firstName mismatch")
		assert.Equal(t, *user.Country, "PT", "country mismatch")
		assert.Equal(t, user.LastName == nil, true, "lastName should be null")
		assert.Equal(t, user.CreatedAt, a.now(), "createdAt mismatch")
		assert.NotEqual(t, user.Password, "secret1", "password should not be stored in plain text")

		err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret1"))
		assert.Equal(t, err, nil, "stored hash should match the password")
	})

	testCases := []struct {
		name          string
		params        UserParams
		expectedField string
	}{
		{
			name:          "short username",
			params:        UserParams{Username: "al", Email: "alice@example.com", Password: "secret1"},
			expectedField: "username",
		},
		{
			name:          "blank username",
			params:        UserParams{Username: "    ", Email: "alice@example.com", Password: "secret1"},
			expectedField: "username",
		},
		{
			name:          "short password",
			params:        UserParams{Username: "alice", Email: "alice@example.com", Password: "12345"},
			expectedField: "password",
		},
		{
			name:          "email without domain",
			params:        UserParams{Username: "alice", Email: "alice@", Password: "secret1"},
			expectedField: "email",
		},
		{
			name:          "email without dot",
			params:        UserParams{Username: "alice", Email: "alice@example", Password: "secret1"},
			expectedField: "email",
		},
		{
			name:          "email with space",
			params:        UserParams{Username: "alice", Email: "al ice@example.com", Password: "secret1"},
			expectedField: "email",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := testutils.InitMemoryDB(t)
			a := NewTest(db)

			_, err := a.InsertUser(tc.params)

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected a validation error, got %v", err)
			}
			assert.Equal(t, verr.Field, tc.expectedField, "field mismatch")

			var count int64
			testutils.MustExec(t, db.Model(&database.User{}).Count(&count), "counting users")
			assert.Equal(t, count, int64(0), "no user should be persisted")
		})
	}

	t.Run("duplicate email", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)
		a := NewTest(db)
		testutils.SetupUserData(db, "alice@example.com", "password123")

		_, err := a.InsertUser(UserParams{Username: "alice2", Email: "alice@example.com", Password: "secret1"})

		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected a validation error, got %v", err)
		}
		assert.Equal(t, verr.Field, "email", "field mismatch")
	})
}

func TestGetUser(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest(db)
	user := testutils.SetupUserData(db, "alice@example.com", "password123")

	byID, err := a.GetUserByID(user.ID)
	if err != nil {
		t.Fatal(errors.Wrap(err, "getting by id"))
	}
	assert.Equal(t, byID.Email, "alice@example.com", "email mismatch")

	byEmail, err := a.GetUserByEmail("alice@example.com")
	if err != nil {
		t.Fatal(errors.Wrap(err, "getting by email"))
	}
	assert.Equal(t, byEmail.ID, user.ID, "id mismatch")

	missing, err := a.GetUserByID(user.ID + 1)
	assert.Equal(t, err, nil, "missing id should not be an error")
	assert.Equal(t, missing == nil, true, "missing id should return nil")

	missing, err = a.GetUserByEmail("bob@example.com")
	assert.Equal(t, err, nil, "missing email should not be an error")
	assert.Equal(t, missing == nil, true, "missing email should return nil")
}

func TestAuthenticate(t *testing.T) {
	testCases := []struct {
		name     string
		email    string
		password string
		ok       bool
	}{
		{"correct credentials", "alice@example.com", "password123", true},
		{"wrong password", "alice@example.com", "password124", false},
		{"unknown email", "bob@example.com", "password123", false},
		{"empty password", "alice@example.com", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := testutils.InitMemoryDB(t)
			a := NewTest(db)
			user := testutils.SetupUserData(db, "alice@example.com", "password123")

			got, err := a.Authenticate(tc.email, tc.password)
			if tc.ok {
				if err != nil {
					t.Fatal(errors.Wrap(err, "authenticating"))
				}
				assert.Equal(t, got.ID, user.ID, "user mismatch")
				return
			}

			assert.Equal(t, err, ErrLoginInvalid, "error mismatch")
			assert.Equal(t, got == nil, true, "user should be nil")
		})
	}
}

func TestAuthenticate_upgradesLegacyCredential(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest(db)

	legacy := database.User{Username: "carol", Email: "carol@example.com", Password: "plaintext", CreatedAt: 1}
	testutils.MustExec(t, db.Create(&legacy), "preparing legacy user")

	_, err := a.Authenticate("carol@example.com", "wrong")
	assert.Equal(t, err, ErrLoginInvalid, "wrong plain text password should be rejected")

	user, err := a.Authenticate("carol@example.com", "plaintext")
	if err != nil {
		t.Fatal(errors.Wrap(err, "authenticating"))
	}
	assert.Equal(t, user.ID, legacy.ID, "user mismatch")

	var record database.User
	testutils.MustExec(t, db.Where("id = ?", legacy.ID).First(&record), "finding user")
	assert.Equal(t, isHashed(record.Password), true, "credential should have been hashed")

	// The upgraded credential keeps working
	_, err = a.Authenticate("carol@example.com", "plaintext")
	assert.Equal(t, err, nil, "authenticating with the upgraded credential")
}

func TestAuthenticate_emptyLegacyCredential(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest(db)

	legacy := database.User{Username: "dave", Email: "dave@example.com", Password: "", CreatedAt: 1}
	testutils.MustExec(t, db.Create(&legacy), "preparing legacy user")

	user, err := a.Authenticate("dave@example.com", "")
	assert.Equal(t, err, ErrLoginInvalid, "empty password should not match an empty credential")
	assert.Equal(t, user == nil, true, "user should be nil")

	_, err = a.Authenticate("dave@example.com", "anything")
	assert.Equal(t, err, ErrLoginInvalid, "a password should not match an empty credential")

	var record database.User
	testutils.MustExec(t, db.Where("id = ?", legacy.ID).First(&record), "finding user")
	assert.Equal(t, record.Password, "", "credential should not have been rewritten")
}

func TestUpdateUserProfile(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)
		a := NewTest(db)

		id, err := a.InsertUser(UserParams{
			Username:  "alice",
			Email:     "alice@example.com",
			Password:  "secret1",
			FirstName: strPtr("Alice"),
			LastName:  strPtr("Liddell"),
			Mobile:    strPtr("+351000000"),
		})
		if err != nil {
			t.Fatal(errors.Wrap(err, "preparing user"))
		}

		err = a.UpdateUserProfile(id, UserPatch{
			FirstName: null.Value("Alicia"),
			Mobile:    null.Null[string](),
		})
		if err != nil {
			t.Fatal(errors.Wrap(err, "updating"))
		}

		user, err := a.GetUserByID(id)
		if err != nil {
			t.Fatal(errors.Wrap(err, "finding user"))
		}
		assert.Equal(t, user.Username, "alice", "username should be unchanged")
		assert.Equal(t, *user.FirstName, "Alicia", "firstName mismatch")
		assert.Equal(t, *user.LastName, "Liddell", "omitted lastName should be unchanged")
		assert.Equal(t, user.Mobile == nil, true, "mobile should be cleared")
	})

	t.Run("email taken by another user", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)
		a := NewTest(db)
		alice := testutils.SetupUserData(db, "alice@example.com", "password123")
		testutils.SetupUserData(db, "bob@example.com", "password123")

		err := a.UpdateUserProfile(alice.ID, UserPatch{Email: strPtr("bob@example.com")})
		assert.Equal(t, IsValidationError(err), true, "should be a validation error")

		err = a.UpdateUserProfile(alice.ID, UserPatch{Email: strPtr("alice@example.com")})
		assert.Equal(t, err, nil, "keeping one's own email should succeed")
	})

	t.Run("missing user", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)
		a := NewTest(db)

		err := a.UpdateUserProfile(42, UserPatch{Country: null.Value("FR")})
		assert.Equal(t, err, ErrNotFound, "error mismatch")
	})
}

func TestUpdatePassword(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest(db)
	user := testutils.SetupUserData(db, "alice@example.com", "password123")

	err := a.UpdatePassword(user.ID, "short")
	assert.Equal(t, IsValidationError(err), true, "short password should be rejected")

	if err := a.UpdatePassword(user.ID, "newpassword"); err != nil {
		t.Fatal(errors.Wrap(err, "updating password"))
	}

	_, err = a.Authenticate("alice@example.com", "password123")
	assert.Equal(t, err, ErrLoginInvalid, "old password should be rejected")
	_, err = a.Authenticate("alice@example.com", "newpassword")
	assert.Equal(t, err, nil, "new password should be accepted")
}

func TestDeleteUser(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest(db)
	alice := testutils.SetupUserData(db, "alice@example.com", "password123")
	bob := testutils.SetupUserData(db, "bob@example.com", "password123")
	aliceTrip := testutils.SetupTripData(db, alice.ID, "Lisbon")
	testutils.SetupStepData(db, aliceTrip.ID, "Alfama", 1)
	bobTrip := testutils.SetupTripData(db, bob.ID, "Porto")

	if err := a.DeleteUser(alice.ID); err != nil {
		t.Fatal(errors.Wrap(err, "deleting user"))
	}

	var userCount, tripCount, stepCount int64
	testutils.MustExec(t, db.Model(&database.User{}).Count(&userCount), "counting users")
	testutils.MustExec(t, db.Model(&database.Trip{}).Count(&tripCount), "counting trips")
	testutils.MustExec(t, db.Model(&database.TripStep{}).Count(&stepCount), "counting steps")

	assert.Equal(t, userCount, int64(1), "user count mismatch")
	assert.Equal(t, tripCount, int64(1), "trip count mismatch")
	assert.Equal(t, stepCount, int64(0), "step count mismatch")

	remaining, err := a.GetTripByID(bobTrip.ID)
	if err != nil {
		t.Fatal(errors.Wrap(err, "finding trip"))
	}
	assert.Equal(t, remaining.UserID, bob.ID, "other users' trips should be kept")

	err = a.DeleteUser(alice.ID)
	assert.Equal(t, err, ErrNotFound, "deleting twice should be not found")
}
