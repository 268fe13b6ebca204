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

// Package session keeps track of the user logged in to the command line
package session

import (
	"strconv"

	"github.com/dnote/tripnote/pkg/cli/context"
	"github.com/dnote/tripnote/pkg/database"
	"github.com/pkg/errors"
)

// ErrNotLoggedIn is an error for a command that needs a logged in user
var ErrNotLoggedIn = errors.New("not logged in. run 'tripnote user login' first")

// Login records the given user as the logged in user
func Login(ctx context.TripnoteCtx, userID int) error {
	if err := ctx.App.SetSystemValue(database.SystemSessionUserID, strconv.Itoa(userID)); err != nil {
		return errors.Wrap(err, "saving the session")
	}

	return nil
}

// Logout forgets the logged in user
func Logout(ctx context.TripnoteCtx) error {
	_, ok, err := ctx.App.GetSystemValue(database.SystemSessionUserID)
	if err != nil {
		return errors.Wrap(err, "getting the session")
	}
	if !ok {
		return ErrNotLoggedIn
	}

	if err := ctx.App.DeleteSystemValue(database.SystemSessionUserID); err != nil {
		return errors.Wrap(err, "deleting the session")
	}

	return nil
}

// UserID returns the id of the logged in user
func UserID(ctx context.TripnoteCtx) (int, error) {
	val, ok, err := ctx.App.GetSystemValue(database.SystemSessionUserID)
	if err != nil {
		return 0, errors.Wrap(err, "getting the session")
	}
	if !ok {
		return 0, ErrNotLoggedIn
	}

	id, err := strconv.Atoi(val)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing the session user id '%s'", val)
	}

	return id, nil
}

// User returns the logged in user. A session pointing to a user that no
// longer exists is cleared.
func User(ctx context.TripnoteCtx) (*database.User, error) {
	id, err := UserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := ctx.App.GetUserByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "finding the logged in user")
	}
	if user == nil {
		if err := ctx.App.DeleteSystemValue(database.SystemSessionUserID); err != nil {
			return nil, errors.Wrap(err, "deleting a stale session")
		}

		return nil, ErrNotLoggedIn
	}

	return user, nil
}
