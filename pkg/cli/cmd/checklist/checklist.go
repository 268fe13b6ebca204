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

package checklist

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
  * Create a reusable packing template
  tripnote checklist add "Packing" --template

  * Add an item to it
  tripnote checklist item add 4 "Passport" --priority high

  * Use the template for trip 3
  tripnote checklist use 4 3

  * Check off items 10 and 11
  tripnote checklist check 10,11

  * List what is left to do
  tripnote checklist items 5 --pending`

// NewCmd returns a new checklist command
func NewCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "checklist",
		Short:   "Manage checklists and their items",
		Aliases: []string{"c"},
		Example: example,
	}

	cmd.AddCommand(newAddCmd(ctx))
	cmd.AddCommand(newLsCmd(ctx))
	cmd.AddCommand(newEditCmd(ctx))
	cmd.AddCommand(newRemoveCmd(ctx))
	cmd.AddCommand(newUseCmd(ctx))
	cmd.AddCommand(newItemsCmd(ctx))
	cmd.AddCommand(newItemCmd(ctx))
	cmd.AddCommand(newCheckCmd(ctx, true))
	cmd.AddCommand(newCheckCmd(ctx, false))
	cmd.AddCommand(newReorderCmd(ctx))

	return cmd
}

func find(ctx context.TripnoteCtx, arg string) (*database.Checklist, error) {
	id, err := utils.ParseID(arg)
	if err != nil {
		return nil, err
	}

	checklist, err := ctx.App.GetChecklistByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "finding the checklist")
	}
	if checklist == nil {
		return nil, errors.Errorf("checklist %d not found", id)
	}

	return checklist, nil
}

func newAddCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add <name>",
		Short:   "Add a checklist to a trip, or a template",
		Aliases: []string{"a", "new"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			isTemplate, _ := f.GetBool("template")

			p := app.ChecklistParams{
				Name:       args[0],
				IsTemplate: isTemplate,
			}
			var err error
			if p.Description, err = infra.StringPtr(cmd, "description"); err != nil {
				return err
			}

			if f.Changed("trip") {
				tripID, _ := f.GetString("trip")
				t, err := trip.Find(ctx, tripID)
				if err != nil {
					return err
				}
				p.TripID = &t.ID
			} else if !isTemplate {
				return errors.New("either --trip or --template is required")
			}

			id, err := ctx.App.InsertChecklist(p)
			if err != nil {
				return errors.Wrap(err, "creating the checklist")
			}

			log.Successf("added the checklist %s (%d)\n", p.Name, id)

			return nil
		},
	}

	f := cmd.Flags()
	f.String("trip", "", "the id of the trip")
	f.Bool("template", false, "make the checklist a reusable template")
	f.StringP("description", "d", "", "the description")

	return cmd
}

func newLsCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls [trip id]",
		Short:   "List the checklists of a trip, or the templates",
		Aliases: []string{"l", "list"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, _ := cmd.Flags().GetBool("templates")

			var checklists []database.Checklist
			var err error

			if templates {
				checklists, err = ctx.App.GetChecklistTemplates()
			} else {
				if len(args) != 1 {
					return errors.New("a trip id is required unless --templates is given")
				}

				t, ferr := trip.Find(ctx, args[0])
				if ferr != nil {
					return ferr
				}
				checklists, err = ctx.App.GetChecklists(t.ID)
			}
			if err != nil {
				return errors.Wrap(err, "listing checklists")
			}

			if len(checklists) == 0 {
				log.Info("no checklists\n")
				return nil
			}
			output.ChecklistList(checklists)

			return nil
		},
	}

	cmd.Flags().Bool("templates", false, "list the templates")

	return cmd
}

func newEditCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "edit <checklist id>",
		Short:   "Rename a checklist or change its description",
		Aliases: []string{"e"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checklist, err := find(ctx, args[0])
			if err != nil {
				return err
			}

			var p app.ChecklistPatch
			if p.Name, err = infra.StringPtr(cmd, "name"); err != nil {
				return err
			}
			if p.Description, err = infra.NullableString(cmd, "description"); err != nil {
				return err
			}

			if err := ctx.App.UpdateChecklist(checklist.ID, p); err != nil {
				return errors.Wrap(err, "updating the checklist")
			}

			log.Successf("edited the checklist %d\n", checklist.ID)

			return nil
		},
	}

	f := cmd.Flags()
	f.StringP("name", "n", "", "a new name")
	f.StringP("description", "d", "", "a new description")
	infra.AddClearFlag(cmd, "description")

	return cmd
}

func newRemoveCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <checklist id>",
		Short:   "Remove a checklist with its items",
		Aliases: []string{"remove", "d"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checklist, err := find(ctx, args[0])
			if err != nil {
				return err
			}

			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				ok, err := ui.Confirm("remove the checklist "+checklist.Name+"?", false)
				if err != nil {
					return errors.Wrap(err, "getting confirmation")
				}
				if !ok {
					log.Warnf("aborted by user\n")
					return nil
				}
			}

			if err := ctx.App.DeleteChecklist(checklist.ID); err != nil {
				return errors.Wrap(err, "removing the checklist")
			}

			log.Successf("removed %s\n", checklist.Name)

			return nil
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "skip the confirmation")

	return cmd
}

func newUseCmd(ctx context.TripnoteCtx) *cobra.Command {
	return &cobra.Command{
		Use:   "use <template id> <trip id>",
		Short: "Copy a template into a new checklist of a trip",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			templateID, err := utils.ParseID(args[0])
			if err != nil {
				return err
			}
			t, err := trip.Find(ctx, args[1])
			if err != nil {
				return err
			}

			id, err := ctx.App.CreateChecklistFromTemplate(templateID, t.ID)
			if errors.Cause(err) == app.ErrNotFound {
				return errors.Errorf("template %d not found", templateID)
			} else if err != nil {
				return errors.Wrap(err, "copying the template")
			}

			items, err := ctx.App.GetChecklistItems(id)
			if err != nil {
				return errors.Wrap(err, "listing items")
			}

			log.Successf("created the checklist %d for %s\n", id, t.Title)
			output.ItemList(items)

			return nil
		},
	}
}

func newReorderCmd(ctx context.TripnoteCtx) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <checklist id> <item ids...>",
		Short: "Set the order of the items of a checklist",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			checklist, err := find(ctx, args[0])
			if err != nil {
				return err
			}
			ids, err := utils.ParseIDs(args[1:])
			if err != nil {
				return err
			}

			if err := ctx.App.ReorderChecklistItems(checklist.ID, ids); err != nil {
				return errors.Wrap(err, "reordering the items")
			}

			items, err := ctx.App.GetChecklistItems(checklist.ID)
			if err != nil {
				return errors.Wrap(err, "listing items")
			}
			log.Success("reordered the items\n")
			output.ItemList(items)

			return nil
		},
	}
}
