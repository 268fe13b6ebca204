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

package share

import (
	"strconv"
	"testing"

	"github.com/dnote/tripnote/pkg/assert"
	"github.com/dnote/tripnote/pkg/cli/context"
	"github.com/dnote/tripnote/pkg/cli/session"
	"github.com/dnote/tripnote/pkg/database"
	"github.com/dnote/tripnote/pkg/testutils"
	"github.com/dnote/tripnote/pkg/token"
	"github.com/pkg/errors"
)

func run(ctx context.TripnoteCtx, args ...string) error {
	cmd := NewCmd(ctx)
	cmd.SetArgs(args)

	return cmd.Execute()
}

func setupLoggedIn(t *testing.T) (context.TripnoteCtx, database.Trip) {
	ctx := context.InitTestCtx(t)
	user := testutils.SetupUserData(ctx.DB, "alice@example.com", "pass1234")
	if err := session.Login(ctx, user.ID); err != nil {
		t.Fatal(errors.Wrap(err, "logging in"))
	}
	trip := testutils.SetupTripData(ctx.DB, user.ID, "Portugal")

	return ctx, trip
}

func getOnlyShare(t *testing.T, ctx context.TripnoteCtx, tripID int) database.TripShare {
	shares, err := ctx.App.GetTripShares(tripID)
	if err != nil {
		t.Fatal(errors.Wrap(err, "listing shares"))
	}
	if len(shares) != 1 {
		t.Fatalf("expected one share, got %d", len(shares))
	}

	return shares[0]
}

func TestCreate(t *testing.T) {
	testCases := []struct {
		name                string
		args                []string
		expectedType        string
		expectedPermissions database.SharePermissions
	}{
		{
			name:                "readonly by default",
			args:                []string{},
			expectedType:        database.ShareTypeReadonly,
			expectedPermissions: database.SharePermissions{CanView: true},
		},
		{
			name:         "collaborative",
			args:         []string{"--type", "collaborative"},
			expectedType: database.ShareTypeCollaborative,
			expectedPermissions: database.SharePermissions{
				CanView:             true,
				CanEdit:             true,
				CanAddJournal:       true,
				CanManageChecklists: true,
			},
		},
		{
			name:                "permission override",
			args:                []string{"--can-add-journal"},
			expectedType:        database.ShareTypeReadonly,
			expectedPermissions: database.SharePermissions{CanView: true, CanAddJournal: true},
		},
		{
			name:         "collaborative without edit",
			args:         []string{"--type", "collaborative", "--can-edit=false"},
			expectedType: database.ShareTypeCollaborative,
			expectedPermissions: database.SharePermissions{
				CanView:             true,
				CanAddJournal:       true,
				CanManageChecklists: true,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, trip := setupLoggedIn(t)

			args := append([]string{"create", strconv.Itoa(trip.ID)}, tc.args...)
			if err := run(ctx, args...); err != nil {
				t.Fatal(errors.Wrap(err, "creating"))
			}

			share := getOnlyShare(t, ctx, trip.ID)
			assert.Equal(t, share.ShareType, tc.expectedType, "share type mismatch")
			assert.DeepEqual(t, share.Permissions.Data(), tc.expectedPermissions, "permissions mismatch")
			assert.Equal(t, token.IsValid(share.ShareToken), true, "token should be valid")
			assert.Equal(t, share.ExpiresAt == nil, true, "expiry should be omitted")
		})
	}
}

func TestCreate_invalidType(t *testing.T) {
	ctx, trip := setupLoggedIn(t)

	if err := run(ctx, "create", strconv.Itoa(trip.ID), "--type", "public"); err == nil {
		t.Error("expected an error for an unknown share type")
	}
}

func TestOpen(t *testing.T) {
	ctx, trip := setupLoggedIn(t)

	if err := run(ctx, "create", strconv.Itoa(trip.ID), "--expires", "2010-01-01"); err != nil {
		t.Fatal(errors.Wrap(err, "creating"))
	}
	share := getOnlyShare(t, ctx, trip.ID)

	if err := run(ctx, "open", token.ShareURL(ctx.DeepLinkScheme, share.ShareToken)); err != nil {
		t.Fatal(errors.Wrap(err, "opening the link"))
	}
	if err := run(ctx, "open", share.ShareToken); err != nil {
		t.Fatal(errors.Wrap(err, "opening the token"))
	}
	if err := run(ctx, "open", "tripnote://share/"+"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"); err == nil {
		t.Error("expected an error for an unknown token")
	}
	if err := run(ctx, "open", "https://example.com"); err == nil {
		t.Error("expected an error for a link without a token")
	}
}

func TestOpen_expired(t *testing.T) {
	ctx, trip := setupLoggedIn(t)

	// the test clock is at 2009-11-10
	if err := run(ctx, "create", strconv.Itoa(trip.ID), "--expires", "2009-11-01"); err != nil {
		t.Fatal(errors.Wrap(err, "creating"))
	}
	share := getOnlyShare(t, ctx, trip.ID)

	if err := run(ctx, "open", share.ShareToken); err == nil {
		t.Error("expected an error for an expired link")
	}
}

func TestRemove(t *testing.T) {
	ctx, trip := setupLoggedIn(t)

	if err := run(ctx, "create", strconv.Itoa(trip.ID)); err != nil {
		t.Fatal(errors.Wrap(err, "creating"))
	}
	share := getOnlyShare(t, ctx, trip.ID)

	if err := run(ctx, "rm", strconv.Itoa(share.ID)); err != nil {
		t.Fatal(errors.Wrap(err, "removing"))
	}

	got, err := ctx.App.GetTripShareByToken(share.ShareToken)
	if err != nil {
		t.Fatal(errors.Wrap(err, "finding the share"))
	}
	assert.Equal(t, got == nil, true, "share should be removed")

	if err := run(ctx, "rm", strconv.Itoa(share.ID)); err == nil {
		t.Error("expected an error for a removed share")
	}
}

func TestInvite(t *testing.T) {
	ctx, trip := setupLoggedIn(t)
	emailBackend := testutils.MockEmailbackendImplementation{}
	ctx.App.EmailBackend = &emailBackend

	if err := run(ctx, "create", strconv.Itoa(trip.ID)); err != nil {
		t.Fatal(errors.Wrap(err, "creating"))
	}
	share := getOnlyShare(t, ctx, trip.ID)

	if err := run(ctx, "invite", token.ShareURL(ctx.DeepLinkScheme, share.ShareToken), "bob@example.com"); err != nil {
		t.Fatal(errors.Wrap(err, "inviting"))
	}

	assert.Equal(t, len(emailBackend.Emails), 1, "email count mismatch")
	assert.DeepEqual(t, emailBackend.Emails[0].To, []string{"bob@example.com"}, "recipient mismatch")

	if err := run(ctx, "invite", share.ShareToken, "not-an-email"); err == nil {
		t.Error("expected an error for an invalid email")
	}
	assert.Equal(t, len(emailBackend.Emails), 1, "no email should be sent for an invalid address")
}

func TestCreate_notLoggedIn(t *testing.T) {
	ctx := context.InitTestCtx(t)
	user := testutils.SetupUserData(ctx.DB, "alice@example.com", "pass1234")
	trip := testutils.SetupTripData(ctx.DB, user.ID, "Portugal")

	err := run(ctx, "create", strconv.Itoa(trip.ID))
	assert.Equal(t, err, session.ErrNotLoggedIn, "error mismatch")
}
