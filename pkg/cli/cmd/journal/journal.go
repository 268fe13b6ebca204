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

package journal

import (
	"os"
	"strings"

	"github.com/dnote/tripnote/pkg/app"
	"github.com/dnote/tripnote/pkg/cli/cmd/trip"
	"github.com/dnote/tripnote/pkg/cli/context"
	"github.com/dnote/tripnote/pkg/cli/infra"
	"github.com/dnote/tripnote/pkg/cli/log"
	"github.com/dnote/tripnote/pkg/cli/output"
	"github.com/dnote/tripnote/pkg/cli/ui"
	"github.com/dnote/tripnote/pkg/cli/utils"
	"github.com/dnote/tripnote/pkg/cli/utils/diff"
	"github.com/dnote/tripnote/pkg/database"
	"github.com/dnote/tripnote/pkg/null"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
  * Open an editor to write about the day
  tripnote journal add 3 "Arrived in Lisbon" --step 12

  * Skip the editor by providing content directly
  tripnote journal add 3 "Pastéis" -c "best custard tarts so far"

  * Send stdin content to an entry
  echo "rain all day" | tripnote journal add 3 "Day 2"

  * Edit the content of an entry in an editor
  tripnote journal edit 7 --editor

  * Attach a photo
  tripnote journal media add 7 file:///photos/tram.jpg --caption "tram 28"`

// NewCmd returns a new journal command
func NewCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "journal",
		Short:   "Write about a trip",
		Aliases: []string{"j"},
		Example: example,
	}

	cmd.AddCommand(newAddCmd(ctx))
	cmd.AddCommand(newLsCmd(ctx))
	cmd.AddCommand(newViewCmd(ctx))
	cmd.AddCommand(newEditCmd(ctx))
	cmd.AddCommand(newRemoveCmd(ctx))
	cmd.AddCommand(newMediaCmd(ctx))

	return cmd
}

func find(ctx context.TripnoteCtx, arg string) (*database.JournalEntry, error) {
	id, err := utils.ParseID(arg)
	if err != nil {
		return nil, err
	}

	entry, err := ctx.App.GetJournalEntryByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "finding the entry")
	}
	if entry == nil {
		return nil, errors.Errorf("journal entry %d not found", id)
	}

	return entry, nil
}

// isPiped reports whether content is being sent through stdin
func isPiped() bool {
	fInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}

	return fInfo.Mode()&os.ModeCharDevice == 0
}

// getContent returns the content given with the content flag, piped through
// stdin, or written in an editor, in that order of precedence
func getContent(ctx context.TripnoteCtx, cmd *cobra.Command) (*string, error) {
	c, err := infra.StringPtr(cmd, "content")
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}

	var content string
	if isPiped() {
		content, err = ui.ReadStdInput()
		if err != nil {
			return nil, errors.Wrap(err, "getting piped input")
		}
	} else {
		fpath, err := ui.GetTmpContentPath(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "getting temporarily content file path")
		}

		content, err = ui.GetEditorInput(ctx, fpath)
		if err != nil {
			return nil, errors.Wrap(err, "getting editor input")
		}
	}

	if strings.TrimSpace(content) == "" {
		return nil, nil
	}

	return &content, nil
}

func newAddCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add <trip id> <title>",
		Short:   "Add a journal entry",
		Aliases: []string{"a", "new"},
		Args:    cobra.ExactArgs(2),
		RunE:    newAddRun(ctx),
	}

	f := cmd.Flags()
	f.StringP("content", "c", "", "the content of the entry")
	f.Int("step", 0, "the id of the step the entry is about")
	f.String("date", "", "the date of the entry (YYYY-MM-DD). defaults to now")

	return cmd
}

func newAddRun(ctx context.TripnoteCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		t, err := trip.Find(ctx, args[0])
		if err != nil {
			return err
		}

		p := app.JournalEntryParams{
			TripID: t.ID,
			Title:  args[1],
		}
		if p.StepID, err = infra.IntPtr(cmd, "step"); err != nil {
			return err
		}
		if p.EntryDate, err = infra.DatePtr(cmd, "date"); err != nil {
			return err
		}
		if p.Content, err = getContent(ctx, cmd); err != nil {
			return errors.Wrap(err, "getting content")
		}

		id, err := ctx.App.InsertJournalEntry(p)
		if err != nil {
			return errors.Wrap(err, "creating the entry")
		}

		entry, err := ctx.App.GetJournalEntryByID(id)
		if err != nil {
			return errors.Wrap(err, "finding the entry")
		}

		log.Successf("added to %s\n", t.Title)
		output.JournalEntryInfo(*entry, nil)

		return nil
	}
}

func newLsCmd(ctx context.TripnoteCtx) *cobra.Command {
	return &cobra.Command{
		Use:     "ls <trip id>",
		Short:   "List the journal entries of a trip, newest first",
		Aliases: []string{"l", "list"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := trip.Find(ctx, args[0])
			if err != nil {
				return err
			}

			entries, err := ctx.App.GetJournalEntries(t.ID)
			if err != nil {
				return errors.Wrap(err, "listing journal entries")
			}
			if len(entries) == 0 {
				log.Info("no journal entries\n")
				return nil
			}
			output.JournalList(entries)

			return nil
		},
	}
}

func newViewCmd(ctx context.TripnoteCtx) *cobra.Command {
	return &cobra.Command{
		Use:     "view <entry id>",
		Short:   "View a journal entry with its media",
		Aliases: []string{"v", "cat"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := find(ctx, args[0])
			if err != nil {
				return err
			}

			media, err := ctx.App.GetJournalMedia(entry.ID)
			if err != nil {
				return errors.Wrap(err, "listing media")
			}
			output.JournalEntryInfo(*entry, media)

			return nil
		},
	}
}

func newEditCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "edit <entry id>",
		Short:   "Edit a journal entry",
		Aliases: []string{"e"},
		Args:    cobra.ExactArgs(1),
		RunE:    newEditRun(ctx),
	}

	f := cmd.Flags()
	f.StringP("title", "t", "", "a new title")
	f.StringP("content", "c", "", "a new content")
	f.BoolP("editor", "e", false, "edit the content in an editor")
	f.Int("step", 0, "the id of the step the entry is about")
	f.String("date", "", "a new date (YYYY-MM-DD)")
	infra.AddClearFlag(cmd, "content")
	infra.AddClearFlag(cmd, "step")

	return cmd
}

func getEditedContent(ctx context.TripnoteCtx, cmd *cobra.Command, current *string) (null.Field[string], error) {
	useEditor, _ := cmd.Flags().GetBool("editor")
	if !useEditor {
		return infra.NullableString(cmd, "content")
	}
	if cmd.Flags().Changed("content") {
		return null.Field[string]{}, errors.New("--editor cannot be used with --content")
	}

	fpath, err := ui.GetTmpContentPath(ctx)
	if err != nil {
		return null.Field[string]{}, errors.Wrap(err, "getting temporarily content file path")
	}
	c, err := ui.GetEditorInputWith(ctx, fpath, deref(current))
	if err != nil {
		return null.Field[string]{}, errors.Wrap(err, "getting editor input")
	}

	return null.Value(c), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

func printContentDiff(before, after string) {
	diffs := diff.Do(before, after)
	if !diff.Changed(diffs) {
		return
	}

	for _, line := range diff.Lines(diffs) {
		switch {
		case strings.HasPrefix(line, "+"):
			log.Plain(log.ColorGreen.Sprintln(line))
		case strings.HasPrefix(line, "-"):
			log.Plain(log.ColorRed.Sprintln(line))
		default:
			log.Plainf("%s\n", line)
		}
	}
}

func newEditRun(ctx context.TripnoteCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		entry, err := find(ctx, args[0])
		if err != nil {
			return err
		}

		var p app.JournalEntryPatch
		if p.Title, err = infra.StringPtr(cmd, "title"); err != nil {
			return err
		}
		if p.StepID, err = infra.NullableInt(cmd, "step"); err != nil {
			return err
		}
		if p.EntryDate, err = infra.DatePtr(cmd, "date"); err != nil {
			return err
		}
		if p.Content, err = getEditedContent(ctx, cmd, entry.Content); err != nil {
			return err
		}

		if err := ctx.App.UpdateJournalEntry(entry.ID, p); err != nil {
			return errors.Wrap(err, "updating the entry")
		}

		log.Successf("edited the entry %d\n", entry.ID)
		if p.Content.IsSet() {
			c, _ := p.Content.Get()
			printContentDiff(deref(entry.Content), c)
		}

		return nil
	}
}

func newRemoveCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <entry id>",
		Short:   "Remove a journal entry with its media",
		Aliases: []string{"remove", "d"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := find(ctx, args[0])
			if err != nil {
				return err
			}

			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				ok, err := ui.Confirm("remove the entry "+entry.Title+"?", false)
				if err != nil {
					return errors.Wrap(err, "getting confirmation")
				}
				if !ok {
					log.Warnf("aborted by user\n")
					return nil
				}
			}

			if err := ctx.App.DeleteJournalEntry(entry.ID); err != nil {
				return errors.Wrap(err, "removing the entry")
			}

			log.Successf("removed %s\n", entry.Title)

			return nil
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "skip the confirmation")

	return cmd
}
