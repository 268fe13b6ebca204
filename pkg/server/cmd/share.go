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

package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dnote/tripnote/pkg/log"
	"github.com/dnote/tripnote/pkg/prompt"
	"github.com/dnote/tripnote/pkg/token"
	"github.com/pkg/errors"
)

// confirm prompts for user input to confirm a choice
func confirm(r io.Reader, question string, optimistic bool) (bool, error) {
	message := prompt.FormatQuestion(question, optimistic)
	fmt.Print(message + " ")

	confirmed, err := prompt.ReadYesNo(r, optimistic)
	if err != nil {
		return false, errors.Wrap(err, "reading stdin")
	}

	return confirmed, nil
}

func formatExpiry(expiresAt *int64) string {
	if expiresAt == nil {
		return "never"
	}

	return time.UnixMilli(*expiresAt).UTC().Format(time.RFC3339)
}

func shareListCmd(args []string) {
	fs := setupFlagSet("list", "tripnote-server share list")

	tripID := fs.Int("trip", 0, "ID of the trip (required)")
	dbPath := fs.String("dbPath", "", "Path to SQLite database file (env: DBPath, default: $XDG_DATA_HOME/tripnote/tripnote.db)")

	fs.Parse(args)

	if *tripID <= 0 {
		fmt.Println("Error: trip is required")
		fs.Usage()
		os.Exit(1)
	}

	a, cleanup := setupAppWithDB(fs, *dbPath)
	defer cleanup()

	shares, err := a.GetTripShares(*tripID)
	if err != nil {
		log.ErrorWrap(err, "getting shares")
		os.Exit(1)
	}

	if len(shares) == 0 {
		fmt.Printf("Trip %d has no share links\n", *tripID)
		return
	}

	for _, s := range shares {
		fmt.Printf("%s  %s  expires: %s\n", token.ShareURL(a.DeepLinkScheme, s.ShareToken), s.ShareType, formatExpiry(s.ExpiresAt))
	}
}

func shareRevokeCmd(args []string, stdin io.Reader) {
	fs := setupFlagSet("revoke", "tripnote-server share revoke")

	link := fs.String("token", "", "Share token or link (required)")
	dbPath := fs.String("dbPath", "", "Path to SQLite database file (env: DBPath, default: $XDG_DATA_HOME/tripnote/tripnote.db)")

	fs.Parse(args)

	requireString(fs, *link, "token")

	tok, err := token.ParseShareURL(*link)
	if err != nil {
		fmt.Printf("Error: %s\n", err)
		os.Exit(1)
	}

	a, cleanup := setupAppWithDB(fs, *dbPath)
	defer cleanup()

	share, err := a.GetTripShareByToken(tok)
	if err != nil {
		log.ErrorWrap(err, "finding share")
		os.Exit(1)
	}
	if share == nil {
		fmt.Printf("Error: share %s not found\n", tok)
		os.Exit(1)
	}

	ok, err := confirm(stdin, fmt.Sprintf("Revoke the %s share of trip %d?", share.ShareType, share.TripID), false)
	if err != nil {
		log.ErrorWrap(err, "getting confirmation")
		os.Exit(1)
	}
	if !ok {
		fmt.Println("Aborted by user")
		return
	}

	if err := a.DeleteTripShare(share.ID); err != nil {
		log.ErrorWrap(err, "revoking share")
		os.Exit(1)
	}

	fmt.Printf("Share revoked successfully\n")
}

func sharePurgeExpiredCmd(args []string) {
	fs := setupFlagSet("purge-expired", "tripnote-server share purge-expired")

	dbPath := fs.String("dbPath", "", "Path to SQLite database file (env: DBPath, default: $XDG_DATA_HOME/tripnote/tripnote.db)")

	fs.Parse(args)

	a, cleanup := setupAppWithDB(fs, *dbPath)
	defer cleanup()

	count, err := a.DeleteExpiredShares()
	if err != nil {
		log.ErrorWrap(err, "deleting expired shares")
		os.Exit(1)
	}

	fmt.Printf("Deleted %d expired share(s)\n", count)
}

func shareCmd(args []string, stdin io.Reader) {
	if len(args) < 1 {
		fmt.Println(`Usage:
  tripnote-server share [command]

Available commands:
  list: List the share links of a trip
  revoke: Revoke a share link
  purge-expired: Delete the share links that have expired`)
		os.Exit(1)
	}

	subcommand := args[0]
	subArgs := []string{}
	if len(args) > 1 {
		subArgs = args[1:]
	}

	switch subcommand {
	case "list":
		shareListCmd(subArgs)
	case "revoke":
		shareRevokeCmd(subArgs, stdin)
	case "purge-expired":
		sharePurgeExpiredCmd(subArgs)
	default:
		fmt.Printf("Unknown subcommand: %s\n\n", subcommand)
		fmt.Println(`Available commands:
  list: List the share links of a trip
  revoke: Revoke a share link
  purge-expired: Delete the share links that have expired`)
		os.Exit(1)
	}
}
