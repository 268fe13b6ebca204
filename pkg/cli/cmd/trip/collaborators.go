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

package trip

import (
	"github.com/dnote/tripnote/pkg/app"
	"github.com/dnote/tripnote/pkg/cli/context"
	"github.com/dnote/tripnote/pkg/cli/log"
	"github.com/dnote/tripnote/pkg/cli/output"
	"github.com/dnote/tripnote/pkg/cli/session"
	"github.com/dnote/tripnote/pkg/cli/utils"
	"github.com/dnote/tripnote/pkg/database"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newInviteCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invite <trip id> <email>",
		Short: "Invite a registered user to collaborate on a trip",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := session.UserID(ctx)
			if err != nil {
				return err
			}
			trip, err := Find(ctx, args[0])
			if err != nil {
				return err
			}

			invitee, err := ctx.App.GetUserByEmail(args[1])
			if err != nil {
				return errors.Wrap(err, "finding the invitee")
			}
			if invitee == nil {
				return errors.Errorf("no user with the email %s. share a link instead", args[1])
			}

			role, _ := cmd.Flags().GetString("role")
			id, err := ctx.App.AddTripCollaborator(app.TripCollaboratorParams{
				TripID:    trip.ID,
				UserID:    invitee.ID,
				Role:      role,
				InvitedBy: userID,
			})
			if err != nil {
				return errors.Wrap(err, "adding the collaborator")
			}

			log.Successf("invited %s to %s as %s\n", invitee.Email, trip.Title, role)

			if noEmail, _ := cmd.Flags().GetBool("no-email"); noEmail {
				return nil
			}
			if err := ctx.App.SendCollaboratorInvite(id); err != nil {
				log.Warnf("could not email the invitation: %s\n", err.Error())
			}

			return nil
		},
	}

	f := cmd.Flags()
	f.String("role", database.RoleViewer, "the role of the collaborator (viewer, editor, admin)")
	f.Bool("no-email", false, "do not email the invitation")

	return cmd
}

func newAcceptCmd(ctx context.TripnoteCtx) *cobra.Command {
	return &cobra.Command{
		Use:   "accept <invitation id>",
		Short: "Accept an invitation to collaborate on a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := utils.ParseID(args[0])
			if err != nil {
				return err
			}

			err = ctx.App.AcceptCollaboration(id)
			if errors.Cause(err) == app.ErrNotFound {
				return errors.Errorf("invitation %d not found", id)
			} else if err != nil {
				return errors.Wrap(err, "accepting the invitation")
			}

			log.Success("joined the trip\n")

			return nil
		},
	}
}

func newCollaboratorsCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collaborators <trip id>",
		Short: "List or manage the collaborators of a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trip, err := Find(ctx, args[0])
			if err != nil {
				return err
			}

			f := cmd.Flags()
			if f.Changed("remove") {
				id, _ := f.GetInt("remove")
				if err := ctx.App.RemoveTripCollaborator(id); err != nil {
					return errors.Wrap(err, "removing the collaborator")
				}
				log.Successf("removed the collaborator %d\n", id)
			}
			if f.Changed("set-role") {
				id, _ := f.GetInt("set-role")
				role, _ := f.GetString("role")
				if err := ctx.App.UpdateCollaboratorRole(id, role); err != nil {
					return errors.Wrap(err, "changing the role")
				}
				log.Successf("changed the role of %d to %s\n", id, role)
			}

			collaborators, err := ctx.App.GetTripCollaborators(trip.ID)
			if err != nil {
				return errors.Wrap(err, "listing collaborators")
			}
			if len(collaborators) == 0 {
				log.Info("no collaborators\n")
				return nil
			}
			output.CollaboratorList(collaborators)

			return nil
		},
	}

	f := cmd.Flags()
	f.Int("remove", 0, "the invitation id of a collaborator to remove")
	f.Int("set-role", 0, "the invitation id of a collaborator whose role to change")
	f.String("role", database.RoleEditor, "the new role used with --set-role")

	return cmd
}
