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
	"github.com/dnote/tripnote/pkg/app"
	"github.com/dnote/tripnote/pkg/cli/context"
	"github.com/dnote/tripnote/pkg/cli/infra"
	"github.com/dnote/tripnote/pkg/cli/log"
	"github.com/dnote/tripnote/pkg/cli/utils"
	"github.com/dnote/tripnote/pkg/database"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newMediaCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "media",
		Short: "Manage the photos and recordings of a journal entry",
	}

	cmd.AddCommand(newMediaAddCmd(ctx))
	cmd.AddCommand(newMediaLsCmd(ctx))
	cmd.AddCommand(newMediaRemoveCmd(ctx))

	return cmd
}

func newMediaAddCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <entry id> <uri>",
		Short: "Attach a photo or an audio recording to an entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := find(ctx, args[0])
			if err != nil {
				return err
			}

			mediaType, _ := cmd.Flags().GetString("type")
			caption, err := infra.StringPtr(cmd, "caption")
			if err != nil {
				return err
			}

			id, err := ctx.App.AddJournalMedia(app.JournalMediaParams{
				EntryID: entry.ID,
				Type:    mediaType,
				URI:     args[1],
				Caption: caption,
			})
			if err != nil {
				return errors.Wrap(err, "attaching the media")
			}

			log.Successf("attached the %s %d to %s\n", mediaType, id, entry.Title)

			return nil
		},
	}

	f := cmd.Flags()
	f.String("type", database.MediaTypePhoto, "the type of the media (photo, audio)")
	f.String("caption", "", "the caption")

	return cmd
}

func newMediaLsCmd(ctx context.TripnoteCtx) *cobra.Command {
	return &cobra.Command{
		Use:     "ls <entry id>",
		Short:   "List the media of an entry",
		Aliases: []string{"list"},
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
			if len(media) == 0 {
				log.Info("no media\n")
				return nil
			}

			for _, m := range media {
				caption := ""
				if m.Caption != nil {
					caption = log.ColorGray.Sprintf(" %s", *m.Caption)
				}
				log.Plainf("(%d) %s %s%s\n", m.ID, m.Type, m.URI, caption)
			}

			return nil
		},
	}
}

func newMediaRemoveCmd(ctx context.TripnoteCtx) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <media id>",
		Short:   "Detach a media from its entry",
		Aliases: []string{"remove"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := utils.ParseID(args[0])
			if err != nil {
				return err
			}

			err = ctx.App.DeleteJournalMedia(id)
			if errors.Cause(err) == app.ErrNotFound {
				return errors.Errorf("media %d not found", id)
			} else if err != nil {
				return errors.Wrap(err, "removing the media")
			}

			log.Successf("removed the media %d\n", id)

			return nil
		},
	}
}
