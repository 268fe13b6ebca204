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

package user

import (
	"testing"

	"github.com/dnote/tripnote/pkg/app"
	"github.com/dnote/tripnote/pkg/assert"
	"github.com/dnote/tripnote/pkg/cli/context"
	"github.com/dnote/tripnote/pkg/cli/session"
	"github.com/pkg/errors"
)

func run(ctx context.TripnoteCtx, args ...string) error {
	cmd := NewCmd(ctx)
	cmd.SetArgs(args)

	return cmd.Execute()
}

func TestRegisterLoginLogout(t *testing.T) {
	ctx := context.InitTestCtx(t)

	err := run(ctx, "register", "--username", "alice", "--email", "alice@example.com", "--password", "pass1234", "--country", "PT")
	if err != nil {
		t.Fatal(errors.Wrap(err, "registering"))
	}

	user, err := session.User(ctx)
	if err != nil {
		t.Fatal(errors.Wrap(err, "getting the session user"))
	}
	assert.Equal(t, user.Username, "alice", "username mismatch")
	assert.Equal(t, *user.Country, "PT", "country mismatch")
	assert.Equal(t, user.FirstName == nil, true, "first name should be omitted")

	if err := run(ctx, "logout"); err != nil {
		t.Fatal(errors.Wrap(err, "logging out"))
	}
	_, err = session.UserID(ctx)
	assert.Equal(t, err, session.ErrNotLoggedIn, "should be logged out")

	err = run(ctx, "login", "--email", "alice@example.com", "--password", "wrong-pass")
	assert.Equal(t, err, app.ErrLoginInvalid, "error mismatch")

	if err := run(ctx, "login", "--email", "alice@example.com", "--password", "pass1234"); err != nil {
		t.Fatal(errors.Wrap(err, "logging in"))
	}
	id, err := session.UserID(ctx)
	if err != nil {
		t.Fatal(errors.Wrap(err, "getting the session"))
	}
	assert.Equal(t, id, user.ID, "session user mismatch")
}

func TestRegister_invalid(t *testing.T) {
	ctx := context.InitTestCtx(t)

	err := run(ctx, "register", "--username", "al", "--email", "alice@example.com", "--password", "pass1234")
	assert.Equal(t, app.IsValidationError(err), true, "should be a validation error")

	_, err = session.UserID(ctx)
	assert.Equal(t, err, session.ErrNotLoggedIn, "should not be logged in")
}

func TestUpdate(t *testing.T) {
	ctx := context.InitTestCtx(t)

	err := run(ctx, "register", "--username", "alice", "--email", "alice@example.com", "--password", "pass1234", "--first-name", "Alice", "--country", "PT")
	if err != nil {
		t.Fatal(errors.Wrap(err, "registering"))
	}

	if err := run(ctx, "update", "--username", "alice2", "--clear-country", "--birth-date", "1990-01-02"); err != nil {
		t.Fatal(errors.Wrap(err, "updating"))
	}

	user, err := session.User(ctx)
	if err != nil {
		t.Fatal(errors.Wrap(err, "getting the session user"))
	}
	assert.Equal(t, user.Username, "alice2", "username mismatch")
	assert.Equal(t, *user.FirstName, "Alice", "first name should be untouched")
	assert.Equal(t, user.Country == nil, true, "country should be cleared")
	assert.Equal(t, *user.BirthDate, int64(631238400000), "birth date mismatch")
}

func TestUpdate_notLoggedIn(t *testing.T) {
	ctx := context.InitTestCtx(t)

	err := run(ctx, "update", "--username", "alice2")
	assert.Equal(t, err, session.ErrNotLoggedIn, "error mismatch")
}

func TestPasswd(t *testing.T) {
	ctx := context.InitTestCtx(t)

	if err := run(ctx, "register", "--username", "alice", "--email", "alice@example.com", "--password", "pass1234"); err != nil {
		t.Fatal(errors.Wrap(err, "registering"))
	}
	if err := run(ctx, "passwd", "--password", "newpass123"); err != nil {
		t.Fatal(errors.Wrap(err, "changing the password"))
	}

	if _, err := ctx.App.Authenticate("alice@example.com", "newpass123"); err != nil {
		t.Fatal(errors.Wrap(err, "authenticating with the new password"))
	}
}

func TestDelete(t *testing.T) {
	ctx := context.InitTestCtx(t)

	if err := run(ctx, "register", "--username", "alice", "--email", "alice@example.com", "--password", "pass1234"); err != nil {
		t.Fatal(errors.Wrap(err, "registering"))
	}
	if err := run(ctx, "delete", "--yes"); err != nil {
		t.Fatal(errors.Wrap(err, "deleting"))
	}

	u, err := ctx.App.GetUserByEmail("alice@example.com")
	if err != nil {
		t.Fatal(errors.Wrap(err, "finding the user"))
	}
	assert.Equal(t, u == nil, true, "user should be deleted")

	_, err = session.UserID(ctx)
	assert.Equal(t, err, session.ErrNotLoggedIn, "should be logged out")
}
