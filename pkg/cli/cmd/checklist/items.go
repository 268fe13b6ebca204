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
	"github.com/dnote/tripnote/pkg/cli/context"
	"github.com/dnote/tripnote/pkg/cli/infra"
	"github.com/dnote/tripnote/pkg/cli/log"
	"github.com/dnote/tripnote/pkg/cli/output"
	"github.com/dnote/tripnote/pkg/cli/utils"
	"github.com/dnote/tripnote/pkg/database"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newItemsCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items <checklist id>",
		Short: "List the items of a checklist in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checklist, err := find(ctx, args[0])
			if err != nil {
				return err
			}

			f := cmd.Flags()
			done, _ := f.GetBool("done")
			pending, _ := f.GetBool("pending")

			var items []database.ChecklistItem
			switch {
			case done && pending:
				return errors.New("--done and --pending cannot be used together")
			case done:
				items, err = ctx.App.GetChecklistItemsByCompletion(checklist.ID, true)
			case pending:
				items, err = ctx.App.GetChecklistItemsByCompletion(checklist.ID, false)
			default:
				items, err = ctx.App.GetChecklistItems(checklist.ID)
			}
			if err != nil {
				return errors.Wrap(err, "listing items")
			}

			log.Infof("%s\n", checklist.Name)
			if len(items) == 0 {
				log.Info("no items\n")
				return nil
			}
			output.ItemList(items)

			return nil
		},
	}

	f := cmd.Flags()
	f.Bool("done", false, "list completed items only")
	f.Bool("pending", false, "list items that are not completed only")

	return cmd
}

func newItemCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage a checklist item",
	}

	cmd.AddCommand(newItemAddCmd(ctx))
	cmd.AddCommand(newItemEditCmd(ctx))
	cmd.AddCommand(newItemRemoveCmd(ctx))

	return cmd
}

func addItemFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("priority", "", "the priority (low, medium, high)")
	f.String("due", "", "the due date (YYYY-MM-DD)")
	f.String("reminder", "", "the reminder date (YYYY-MM-DD)")
}

func newItemAddCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add <checklist id> <text>",
		Short:   "Add an item to the end of a checklist",
		Aliases: []string{"a", "new"},
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			checklist, err := find(ctx, args[0])
			if err != nil {
				return err
			}

			p := app.ChecklistItemParams{
				ChecklistID: checklist.ID,
				Text:        args[1],
			}
			p.Priority, _ = cmd.Flags().GetString("priority")
			if p.DueDate, err = infra.DatePtr(cmd, "due"); err != nil {
				return err
			}
			if p.ReminderDate, err = infra.DatePtr(cmd, "reminder"); err != nil {
				return err
			}

			id, err := ctx.App.InsertChecklistItem(p)
			if err != nil {
				return errors.Wrap(err, "creating the item")
			}

			log.Successf("added the item %d to %s\n", id, checklist.Name)

			return nil
		},
	}
	addItemFlags(cmd)

	return cmd
}

func newItemEditCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "edit <item id>",
		Short:   "Edit a checklist item",
		Aliases: []string{"e"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := utils.ParseID(args[0])
			if err != nil {
				return err
			}

			var p app.ChecklistItemPatch
			if p.Text, err = infra.StringPtr(cmd, "text"); err != nil {
				return err
			}
			if p.Priority, err = infra.StringPtr(cmd, "priority"); err != nil {
				return err
			}
			if p.DueDate, err = infra.NullableDate(cmd, "due"); err != nil {
				return err
			}
			if p.ReminderDate, err = infra.NullableDate(cmd, "reminder"); err != nil {
				return err
			}

			err = ctx.App.UpdateChecklistItem(id, p)
			if errors.Cause(err) == app.ErrNotFound {
				return errors.Errorf("item %d not found", id)
			} else if err != nil {
				return errors.Wrap(err, "updating the item")
			}

			log.Successf("edited the item %d\n", id)

			return nil
		},
	}

	addItemFlags(cmd)
	cmd.Flags().StringP("text", "t", "", "a new text")
	infra.AddClearFlag(cmd, "due")
	infra.AddClearFlag(cmd, "reminder")

	return cmd
}

func newItemRemoveCmd(ctx context.TripnoteCtx) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <item id>",
		Short:   "Remove a checklist item",
		Aliases: []string{"remove", "d"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := utils.ParseID(args[0])
			if err != nil {
				return err
			}

			err = ctx.App.DeleteChecklistItem(id)
			if errors.Cause(err) == app.ErrNotFound {
				return errors.Errorf("item %d not found", id)
			} else if err != nil {
				return errors.Wrap(err, "removing the item")
			}

			log.Successf("removed the item %d\n", id)

			return nil
		},
	}
}

// newCheckCmd returns the check command, or the uncheck command if
// completed is false
func newCheckCmd(ctx context.TripnoteCtx, completed bool) *cobra.Command {
	use, short, verb := "check <item ids...>", "Mark items as completed", "checked"
	if !completed {
		use, short, verb = "uncheck <item ids...>", "Mark items as not completed", "unchecked"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := utils.ParseIDs(args)
			if err != nil {
				return err
			}

			for _, id := range ids {
				err := ctx.App.UpdateChecklistItem(id, app.ChecklistItemPatch{IsCompleted: &completed})
				if errors.Cause(err) == app.ErrNotFound {
					return errors.Errorf("item %d not found", id)
				} else if err != nil {
					return errors.Wrapf(err, "updating the item %d", id)
				}

				item, err := ctx.App.GetChecklistItemByID(id)
				if err != nil {
					return errors.Wrap(err, "finding the item")
				}
				log.Successf("%s %s %s\n", verb, output.Checkbox(item.IsCompleted), item.Text)
			}

			return nil
		},
	}
}
