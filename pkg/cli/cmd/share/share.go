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
	"github.com/dnote/tripnote/pkg/app"
	"github.com/dnote/tripnote/pkg/cli/cmd/trip"
	"github.com/dnote/tripnote/pkg/cli/context"
	"github.com/dnote/tripnote/pkg/cli/infra"
	"github.com/dnote/tripnote/pkg/cli/log"
	"github.com/dnote/tripnote/pkg/cli/output"
	"github.com/dnote/tripnote/pkg/cli/session"
	"github.com/dnote/tripnote/pkg/cli/utils"
	"github.com/dnote/tripnote/pkg/clock"
	"github.com/dnote/tripnote/pkg/database"
	"github.com/dnote/tripnote/pkg/token"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
  * Share a trip read only
  tripnote share create 3

  * Let others edit the trip until the end of May
  tripnote share create 3 --type collaborative --expires 2024-05-31

  * Open a link someone sent you
  tripnote share open tripnote://share/Kx9fQ2mPzL8vRt3NaB4cD5eF6gH7jK8m

  * Email a link
  tripnote share invite Kx9fQ2mPzL8vRt3NaB4cD5eF6gH7jK8m bob@example.com`

// permissionFlags are the flags that override the default permissions of
// the share type
var permissionFlags = []string{"can-view", "can-edit", "can-add-journal", "can-manage-checklists"}

// NewCmd returns a new share command
func NewCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "share",
		Short:   "Share trips with links",
		Example: example,
	}

	cmd.AddCommand(newCreateCmd(ctx))
	cmd.AddCommand(newOpenCmd(ctx))
	cmd.AddCommand(newLsCmd(ctx))
	cmd.AddCommand(newRemoveCmd(ctx))
	cmd.AddCommand(newInviteCmd(ctx))

	return cmd
}

// getPermissions returns nil if no permission flag was given, so that the
// defaults of the share type apply
func getPermissions(cmd *cobra.Command, shareType string) *database.SharePermissions {
	f := cmd.Flags()

	changed := false
	for _, name := range permissionFlags {
		if f.Changed(name) {
			changed = true
		}
	}
	if !changed {
		return nil
	}

	p := app.DefaultPermissions(shareType)
	if f.Changed("can-view") {
		p.CanView, _ = f.GetBool("can-view")
	}
	if f.Changed("can-edit") {
		p.CanEdit, _ = f.GetBool("can-edit")
	}
	if f.Changed("can-add-journal") {
		p.CanAddJournal, _ = f.GetBool("can-add-journal")
	}
	if f.Changed("can-manage-checklists") {
		p.CanManageChecklists, _ = f.GetBool("can-manage-checklists")
	}

	return &p
}

func newCreateCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "create <trip id>",
		Short:   "Create a share link for a trip",
		Aliases: []string{"add", "new"},
		Args:    cobra.ExactArgs(1),
		RunE:    newCreateRun(ctx),
	}

	f := cmd.Flags()
	f.String("type", database.ShareTypeReadonly, "the type of the link (readonly, collaborative)")
	f.String("expires", "", "the date the link expires (YYYY-MM-DD)")
	f.Bool("can-view", true, "allow viewing the trip")
	f.Bool("can-edit", false, "allow editing the trip")
	f.Bool("can-add-journal", false, "allow adding journal entries")
	f.Bool("can-manage-checklists", false, "allow managing checklists")

	return cmd
}

func newCreateRun(ctx context.TripnoteCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		userID, err := session.UserID(ctx)
		if err != nil {
			return err
		}
		t, err := trip.Find(ctx, args[0])
		if err != nil {
			return err
		}

		shareType, _ := cmd.Flags().GetString("type")
		p := app.TripShareParams{
			TripID:      t.ID,
			ShareType:   shareType,
			Permissions: getPermissions(cmd, shareType),
			CreatedBy:   userID,
		}
		if p.ExpiresAt, err = infra.DatePtr(cmd, "expires"); err != nil {
			return err
		}

		tok, err := ctx.App.CreateTripShare(p)
		if err != nil {
			return errors.Wrap(err, "creating the share link")
		}

		share, err := ctx.App.GetTripShareByToken(tok)
		if err != nil {
			return errors.Wrap(err, "finding the share link")
		}

		log.Successf("shared %s\n", t.Title)
		output.ShareInfo(*share, token.ShareURL(ctx.DeepLinkScheme, tok), clock.Millis(ctx.Clock))

		return nil
	}
}

func newOpenCmd(ctx context.TripnoteCtx) *cobra.Command {
	return &cobra.Command{
		Use:   "open <link|token>",
		Short: "Open a shared trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := token.ParseShareURL(args[0])
			if err != nil {
				return err
			}

			shared, err := ctx.App.OpenTripShare(tok)
			switch errors.Cause(err) {
			case nil:
			case app.ErrNotFound:
				return errors.New("share link not found")
			case app.ErrShareExpired:
				return errors.Errorf("the share link expired on %s", utils.FormatDate(*shared.Share.ExpiresAt))
			case app.ErrShareForbidden:
				return errors.New("the share link does not allow viewing the trip")
			default:
				return errors.Wrap(err, "opening the share link")
			}

			t, share, steps := shared.Trip, shared.Share, shared.Steps
			output.TripInfo(t)
			log.Infof("journal entries: %d\n", len(shared.JournalEntries))
			log.Infof("checklists: %d\n", len(shared.Checklists))
			output.ShareInfo(share, token.ShareURL(ctx.DeepLinkScheme, tok), clock.Millis(ctx.Clock))
			if len(steps) > 0 {
				log.Plain("\n")
				output.StepList(steps)
			}

			return nil
		},
	}
}

func newLsCmd(ctx context.TripnoteCtx) *cobra.Command {
	return &cobra.Command{
		Use:     "ls <trip id>",
		Short:   "List the share links of a trip",
		Aliases: []string{"l", "list"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := trip.Find(ctx, args[0])
			if err != nil {
				return err
			}

			shares, err := ctx.App.GetTripShares(t.ID)
			if err != nil {
				return errors.Wrap(err, "listing share links")
			}
			if len(shares) == 0 {
				log.Info("no share links\n")
				return nil
			}
			output.ShareList(shares, clock.Millis(ctx.Clock))

			return nil
		},
	}
}

func newRemoveCmd(ctx context.TripnoteCtx) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <share id>",
		Short:   "Revoke a share link",
		Aliases: []string{"remove", "revoke"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := utils.ParseID(args[0])
			if err != nil {
				return err
			}

			err = ctx.App.DeleteTripShare(id)
			if errors.Cause(err) == app.ErrNotFound {
				return errors.Errorf("share link %d not found", id)
			} else if err != nil {
				return errors.Wrap(err, "revoking the share link")
			}

			log.Successf("revoked the share link %d\n", id)

			return nil
		},
	}
}

func newInviteCmd(ctx context.TripnoteCtx) *cobra.Command {
	return &cobra.Command{
		Use:   "invite <link|token> <email>",
		Short: "Email a share link",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := session.UserID(ctx)
			if err != nil {
				return err
			}
			tok, err := token.ParseShareURL(args[0])
			if err != nil {
				return err
			}

			err = ctx.App.SendShareLink(userID, tok, args[1])
			if errors.Cause(err) == app.ErrNotFound {
				return errors.New("share link not found")
			} else if errors.Cause(err) == app.ErrInvalidSMTPConfig {
				return errors.New("email is not configured. set the smtp section of the configuration file")
			} else if err != nil {
				return errors.Wrap(err, "sending the share link")
			}

			log.Successf("sent the link to %s\n", args[1])

			return nil
		},
	}
}
