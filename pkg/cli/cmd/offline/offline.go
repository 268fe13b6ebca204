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

package offline

import (
	"github.com/dnote/tripnote/pkg/cli/context"
	"github.com/dnote/tripnote/pkg/cli/infra"
	"github.com/dnote/tripnote/pkg/cli/log"
	"github.com/dnote/tripnote/pkg/cli/output"
	"github.com/dnote/tripnote/pkg/cli/session"
	"github.com/dnote/tripnote/pkg/database"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
  * Save your trips for viewing without a connection
  tripnote offline prepare

  * Check when the offline copy was last refreshed
  tripnote offline status

  * Refresh the offline copy if it is out of date
  tripnote offline sync`

// NewCmd returns a new offline command
func NewCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "offline",
		Short:   "Manage the offline copy of your trips",
		Example: example,
	}

	cmd.AddCommand(newPrepareCmd(ctx))
	cmd.AddCommand(newStatusCmd(ctx))
	cmd.AddCommand(newSyncCmd(ctx))

	return cmd
}

func prepare(ctx context.TripnoteCtx) error {
	userID, err := session.UserID(ctx)
	if err != nil {
		return err
	}

	s, err := ctx.App.PrepareOfflineData(userID)
	if err != nil {
		return errors.Wrap(err, "preparing offline data")
	}

	log.Success("prepared the offline copy\n")
	output.SnapshotInfo(s)

	return nil
}

func newPrepareCmd(ctx context.TripnoteCtx) *cobra.Command {
	return &cobra.Command{
		Use:   "prepare",
		Short: "Save a snapshot of your trips",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return prepare(ctx)
		},
	}
}

func newStatusCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show or set the sync status of the offline copy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := session.UserID(ctx)
			if err != nil {
				return err
			}

			set, err := infra.StringPtr(cmd, "set")
			if err != nil {
				return err
			}
			if set != nil {
				if err := ctx.App.SetSyncStatus(userID, *set); err != nil {
					return errors.Wrap(err, "setting the sync status")
				}
			}

			status, err := ctx.App.GetSyncStatus(userID)
			if err != nil {
				return errors.Wrap(err, "getting the sync status")
			}
			log.Infof("status: %s\n", status)

			s, err := ctx.App.GetOfflineData(userID)
			if err != nil {
				return errors.Wrap(err, "reading offline data")
			}
			if s == nil {
				log.Info("no offline copy. run 'tripnote offline prepare'\n")
				return nil
			}
			output.SnapshotInfo(*s)

			return nil
		},
	}

	cmd.Flags().String("set", "", "set the status (synced, pending, error)")

	return cmd
}

func newSyncCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Refresh the offline copy unless it is up to date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")

			userID, err := session.UserID(ctx)
			if err != nil {
				return err
			}

			status, err := ctx.App.GetSyncStatus(userID)
			if err != nil {
				return errors.Wrap(err, "getting the sync status")
			}
			if status == database.SyncStatusSynced && !force {
				log.Info("the offline copy is up to date\n")
				return nil
			}

			return prepare(ctx)
		},
	}

	cmd.Flags().BoolP("force", "f", false, "refresh even if the offline copy is up to date")

	return cmd
}
