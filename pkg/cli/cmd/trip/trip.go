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
	"github.com/dnote/tripnote/pkg/cli/infra"
	"github.com/dnote/tripnote/pkg/cli/log"
	"github.com/dnote/tripnote/pkg/cli/output"
	"github.com/dnote/tripnote/pkg/cli/session"
	"github.com/dnote/tripnote/pkg/cli/ui"
	"github.com/dnote/tripnote/pkg/cli/utils"
	"github.com/dnote/tripnote/pkg/database"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
  * Plan a trip starting in Lisbon
  tripnote trip add "Portugal" --start 2024-05-01 --end 2024-05-10 --lat 38.7223 --lng -9.1393

  * List your trips and the trips shared with you
  tripnote trip ls
  tripnote trip ls --shared

  * Remove the end date of a trip
  tripnote trip edit 3 --clear-end

  * Invite a collaborator
  tripnote trip invite 3 bob@example.com --role editor`

// NewCmd returns a new trip command
func NewCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "trip",
		Short:   "Manage trips",
		Aliases: []string{"t"},
		Example: example,
	}

	cmd.AddCommand(newAddCmd(ctx))
	cmd.AddCommand(newLsCmd(ctx))
	cmd.AddCommand(newViewCmd(ctx))
	cmd.AddCommand(newEditCmd(ctx))
	cmd.AddCommand(newRemoveCmd(ctx))
	cmd.AddCommand(newInviteCmd(ctx))
	cmd.AddCommand(newAcceptCmd(ctx))
	cmd.AddCommand(newCollaboratorsCmd(ctx))

	return cmd
}

// Find returns the trip with the id given as an argument
func Find(ctx context.TripnoteCtx, arg string) (*database.Trip, error) {
	id, err := utils.ParseID(arg)
	if err != nil {
		return nil, err
	}

	trip, err := ctx.App.GetTripByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "finding the trip")
	}
	if trip == nil {
		return nil, errors.Errorf("trip %d not found", id)
	}

	return trip, nil
}

func addTripFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("description", "d", "", "the description")
	f.String("start", "", "the start date (YYYY-MM-DD)")
	f.String("end", "", "the end date (YYYY-MM-DD)")
	f.String("cover", "", "the uri of the cover image")
	f.Float64("lat", 0, "the latitude of the starting point")
	f.Float64("lng", 0, "the longitude of the starting point")
}

func newAddCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add <title>",
		Short:   "Add a new trip",
		Aliases: []string{"a", "new"},
		Args:    cobra.ExactArgs(1),
		RunE:    newAddRun(ctx),
	}
	addTripFlags(cmd)

	return cmd
}

func getTripParams(cmd *cobra.Command, userID int, title string) (app.TripParams, error) {
	p := app.TripParams{
		UserID: userID,
		Title:  title,
	}
	var err error

	if p.Description, err = infra.StringPtr(cmd, "description"); err != nil {
		return p, err
	}
	if p.StartDate, err = infra.DatePtr(cmd, "start"); err != nil {
		return p, err
	}
	if p.EndDate, err = infra.DatePtr(cmd, "end"); err != nil {
		return p, err
	}
	if p.CoverImage, err = infra.StringPtr(cmd, "cover"); err != nil {
		return p, err
	}
	if p.Latitude, err = infra.FloatPtr(cmd, "lat"); err != nil {
		return p, err
	}
	if p.Longitude, err = infra.FloatPtr(cmd, "lng"); err != nil {
		return p, err
	}

	return p, nil
}

func newAddRun(ctx context.TripnoteCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		userID, err := session.UserID(ctx)
		if err != nil {
			return err
		}

		p, err := getTripParams(cmd, userID, args[0])
		if err != nil {
			return errors.Wrap(err, "reading flags")
		}

		res, err := ctx.App.InsertTrip(p)
		if err != nil {
			return errors.Wrap(err, "creating the trip")
		}
		for _, w := range res.Warnings {
			log.Warnf("%s\n", w)
		}

		trip, err := ctx.App.GetTripByID(res.ID)
		if err != nil {
			return errors.Wrap(err, "finding the trip")
		}

		log.Successf("added the trip %s\n", trip.Title)
		output.TripInfo(*trip)
		if res.SeedStepID != 0 {
			log.Infof("first step id: %d\n", res.SeedStepID)
		}

		return nil
	}
}

func newLsCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Short:   "List trips",
		Aliases: []string{"l", "list"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := session.UserID(ctx)
			if err != nil {
				return err
			}

			shared, _ := cmd.Flags().GetBool("shared")

			var trips []database.Trip
			if shared {
				trips, err = ctx.App.GetSharedTrips(userID)
			} else {
				trips, err = ctx.App.GetAllTrips(userID)
			}
			if err != nil {
				return errors.Wrap(err, "listing trips")
			}

			if len(trips) == 0 {
				log.Info("no trips\n")
				return nil
			}
			output.TripList(trips)

			return nil
		},
	}

	cmd.Flags().Bool("shared", false, "list the trips shared with you instead")

	return cmd
}

func newViewCmd(ctx context.TripnoteCtx) *cobra.Command {
	return &cobra.Command{
		Use:     "view <trip id>",
		Short:   "View a trip with its steps",
		Aliases: []string{"v"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trip, err := Find(ctx, args[0])
			if err != nil {
				return err
			}

			steps, err := ctx.App.GetTripSteps(trip.ID)
			if err != nil {
				return errors.Wrap(err, "listing steps")
			}
			entries, err := ctx.App.GetJournalEntries(trip.ID)
			if err != nil {
				return errors.Wrap(err, "listing journal entries")
			}
			checklists, err := ctx.App.GetChecklists(trip.ID)
			if err != nil {
				return errors.Wrap(err, "listing checklists")
			}

			output.TripInfo(*trip)
			log.Infof("journal entries: %d\n", len(entries))
			log.Infof("checklists: %d\n", len(checklists))
			if len(steps) > 0 {
				log.Plain("\n")
				output.StepList(steps)
			}

			return nil
		},
	}
}

func newEditCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "edit <trip id>",
		Short:   "Edit a trip",
		Aliases: []string{"e"},
		Args:    cobra.ExactArgs(1),
		RunE:    newEditRun(ctx),
	}

	addTripFlags(cmd)
	cmd.Flags().StringP("title", "t", "", "a new title")
	for _, name := range []string{"description", "start", "end", "cover", "lat", "lng"} {
		infra.AddClearFlag(cmd, name)
	}

	return cmd
}

func getTripPatch(cmd *cobra.Command) (app.TripPatch, error) {
	var p app.TripPatch
	var err error

	if p.Title, err = infra.StringPtr(cmd, "title"); err != nil {
		return p, err
	}
	if p.Description, err = infra.NullableString(cmd, "description"); err != nil {
		return p, err
	}
	if p.StartDate, err = infra.NullableDate(cmd, "start"); err != nil {
		return p, err
	}
	if p.EndDate, err = infra.NullableDate(cmd, "end"); err != nil {
		return p, err
	}
	if p.CoverImage, err = infra.NullableString(cmd, "cover"); err != nil {
		return p, err
	}
	if p.Latitude, err = infra.NullableFloat(cmd, "lat"); err != nil {
		return p, err
	}
	if p.Longitude, err = infra.NullableFloat(cmd, "lng"); err != nil {
		return p, err
	}

	return p, nil
}

func newEditRun(ctx context.TripnoteCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		trip, err := Find(ctx, args[0])
		if err != nil {
			return err
		}

		p, err := getTripPatch(cmd)
		if err != nil {
			return errors.Wrap(err, "reading flags")
		}

		if err := ctx.App.UpdateTrip(trip.ID, p); err != nil {
			return errors.Wrap(err, "updating the trip")
		}

		updated, err := ctx.App.GetTripByID(trip.ID)
		if err != nil {
			return errors.Wrap(err, "finding the trip")
		}

		log.Success("edited the trip\n")
		output.TripInfo(*updated)

		return nil
	}
}

func newRemoveCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <trip id>",
		Short:   "Remove a trip with everything it owns",
		Aliases: []string{"remove", "d"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trip, err := Find(ctx, args[0])
			if err != nil {
				return err
			}

			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				ok, err := ui.Confirm("remove the trip "+trip.Title+"?", false)
				if err != nil {
					return errors.Wrap(err, "getting confirmation")
				}
				if !ok {
					log.Warnf("aborted by user\n")
					return nil
				}
			}

			if err := ctx.App.DeleteTrip(trip.ID); err != nil {
				return errors.Wrap(err, "removing the trip")
			}

			log.Successf("removed %s\n", trip.Title)

			return nil
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "skip the confirmation")

	return cmd
}
