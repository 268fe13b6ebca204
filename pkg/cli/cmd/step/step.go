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

package step

import (
	"github.com/dnote/tripnote/pkg/app"
	"github.com/dnote/tripnote/pkg/cli/cmd/trip"
	"github.com/dnote/tripnote/pkg/cli/context"
	"github.com/dnote/tripnote/pkg/cli/infra"
	"github.com/dnote/tripnote/pkg/cli/log"
	"github.com/dnote/tripnote/pkg/cli/output"
	"github.com/dnote/tripnote/pkg/cli/ui"
	"github.com/dnote/tripnote/pkg/cli/utils"
	"github.com/dnote/tripnote/pkg/database"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
  * Add a step to trip 3
  tripnote step add 3 "Porto" --lat 41.1579 --lng -8.6291 --start 2024-05-04

  * Put the steps of trip 3 in a new order
  tripnote step reorder 3 12,10,11

  * Remove the coordinates of a step
  tripnote step edit 12 --clear-lat --clear-lng`

// NewCmd returns a new step command
func NewCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "step",
		Short:   "Manage the steps of a trip",
		Aliases: []string{"s"},
		Example: example,
	}

	cmd.AddCommand(newAddCmd(ctx))
	cmd.AddCommand(newLsCmd(ctx))
	cmd.AddCommand(newEditCmd(ctx))
	cmd.AddCommand(newReorderCmd(ctx))
	cmd.AddCommand(newRemoveCmd(ctx))

	return cmd
}

func find(ctx context.TripnoteCtx, arg string) (*database.TripStep, error) {
	id, err := utils.ParseID(arg)
	if err != nil {
		return nil, err
	}

	step, err := ctx.App.GetTripStepByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "finding the step")
	}
	if step == nil {
		return nil, errors.Errorf("step %d not found", id)
	}

	return step, nil
}

func addStepFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("description", "d", "", "the description")
	f.String("start", "", "the arrival date (YYYY-MM-DD)")
	f.String("end", "", "the departure date (YYYY-MM-DD)")
	f.Float64("lat", 0, "the latitude")
	f.Float64("lng", 0, "the longitude")
	f.Int("order", 0, "the position in the route")
}

func newAddCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add <trip id> <name>",
		Short:   "Add a step to a trip",
		Aliases: []string{"a", "new"},
		Args:    cobra.ExactArgs(2),
		RunE:    newAddRun(ctx),
	}
	addStepFlags(cmd)

	return cmd
}

func newAddRun(ctx context.TripnoteCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		t, err := trip.Find(ctx, args[0])
		if err != nil {
			return err
		}

		p := app.StepParams{
			TripID: t.ID,
			Name:   args[1],
		}
		if p.Description, err = infra.StringPtr(cmd, "description"); err != nil {
			return err
		}
		if p.StartDate, err = infra.DatePtr(cmd, "start"); err != nil {
			return err
		}
		if p.EndDate, err = infra.DatePtr(cmd, "end"); err != nil {
			return err
		}
		if p.Latitude, err = infra.FloatPtr(cmd, "lat"); err != nil {
			return err
		}
		if p.Longitude, err = infra.FloatPtr(cmd, "lng"); err != nil {
			return err
		}
		if p.OrderIndex, err = infra.IntPtr(cmd, "order"); err != nil {
			return err
		}

		id, err := ctx.App.InsertTripStep(p)
		if err != nil {
			return errors.Wrap(err, "creating the step")
		}

		log.Successf("added the step %s (%d) to %s\n", p.Name, id, t.Title)

		return nil
	}
}

func newLsCmd(ctx context.TripnoteCtx) *cobra.Command {
	return &cobra.Command{
		Use:     "ls <trip id>",
		Short:   "List the steps of a trip in route order",
		Aliases: []string{"l", "list"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := trip.Find(ctx, args[0])
			if err != nil {
				return err
			}

			steps, err := ctx.App.GetTripSteps(t.ID)
			if err != nil {
				return errors.Wrap(err, "listing steps")
			}
			if len(steps) == 0 {
				log.Info("no steps\n")
				return nil
			}
			output.StepList(steps)

			return nil
		},
	}
}

func newEditCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "edit <step id>",
		Short:   "Edit a step",
		Aliases: []string{"e"},
		Args:    cobra.ExactArgs(1),
		RunE:    newEditRun(ctx),
	}

	addStepFlags(cmd)
	cmd.Flags().StringP("name", "n", "", "a new name")
	for _, name := range []string{"description", "start", "end", "lat", "lng"} {
		infra.AddClearFlag(cmd, name)
	}

	return cmd
}

func newEditRun(ctx context.TripnoteCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		step, err := find(ctx, args[0])
		if err != nil {
			return err
		}

		var p app.StepPatch
		if p.Name, err = infra.StringPtr(cmd, "name"); err != nil {
			return err
		}
		if p.Description, err = infra.NullableString(cmd, "description"); err != nil {
			return err
		}
		if p.StartDate, err = infra.NullableDate(cmd, "start"); err != nil {
			return err
		}
		if p.EndDate, err = infra.NullableDate(cmd, "end"); err != nil {
			return err
		}
		if p.Latitude, err = infra.NullableFloat(cmd, "lat"); err != nil {
			return err
		}
		if p.Longitude, err = infra.NullableFloat(cmd, "lng"); err != nil {
			return err
		}
		if p.OrderIndex, err = infra.IntPtr(cmd, "order"); err != nil {
			return err
		}

		if err := ctx.App.UpdateTripStep(step.ID, p); err != nil {
			return errors.Wrap(err, "updating the step")
		}

		log.Successf("edited the step %d\n", step.ID)

		return nil
	}
}

func newReorderCmd(ctx context.TripnoteCtx) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <trip id> <step ids...>",
		Short: "Set the route order of the steps of a trip",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := trip.Find(ctx, args[0])
			if err != nil {
				return err
			}
			ids, err := utils.ParseIDs(args[1:])
			if err != nil {
				return err
			}

			if err := ctx.App.ReorderTripSteps(t.ID, ids); err != nil {
				return errors.Wrap(err, "reordering the steps")
			}

			steps, err := ctx.App.GetTripSteps(t.ID)
			if err != nil {
				return errors.Wrap(err, "listing steps")
			}
			log.Success("reordered the steps\n")
			output.StepList(steps)

			return nil
		},
	}
}

func newRemoveCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <step id>",
		Short:   "Remove a step",
		Aliases: []string{"remove", "d"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			step, err := find(ctx, args[0])
			if err != nil {
				return err
			}

			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				ok, err := ui.Confirm("remove the step "+step.Name+"?", false)
				if err != nil {
					return errors.Wrap(err, "getting confirmation")
				}
				if !ok {
					log.Warnf("aborted by user\n")
					return nil
				}
			}

			if err := ctx.App.DeleteTripStep(step.ID); err != nil {
				return errors.Wrap(err, "removing the step")
			}

			log.Successf("removed %s\n", step.Name)

			return nil
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "skip the confirmation")

	return cmd
}
