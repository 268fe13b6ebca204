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

package main

import (
	"os"
	"strings"

	"github.com/dnote/tripnote/pkg/cli/infra"
	"github.com/dnote/tripnote/pkg/cli/log"
	"github.com/dnote/tripnote/pkg/database"
	"github.com/pkg/errors"

	// commands
	"github.com/dnote/tripnote/pkg/cli/cmd/checklist"
	"github.com/dnote/tripnote/pkg/cli/cmd/journal"
	"github.com/dnote/tripnote/pkg/cli/cmd/offline"
	"github.com/dnote/tripnote/pkg/cli/cmd/place"
	"github.com/dnote/tripnote/pkg/cli/cmd/root"
	"github.com/dnote/tripnote/pkg/cli/cmd/share"
	"github.com/dnote/tripnote/pkg/cli/cmd/step"
	"github.com/dnote/tripnote/pkg/cli/cmd/trip"
	"github.com/dnote/tripnote/pkg/cli/cmd/user"
	"github.com/dnote/tripnote/pkg/cli/cmd/version"
)

// versionTag is populated during link time
var versionTag = "master"

// parseDBPath extracts --dbPath flag value from command line arguments
// regardless of where it appears (before or after subcommand).
// Returns empty string if not found.
func parseDBPath(args []string) string {
	for i, arg := range args {
		// Handle --dbPath=value
		if strings.HasPrefix(arg, "--dbPath=") {
			return strings.TrimPrefix(arg, "--dbPath=")
		}
		// Handle --dbPath value
		if arg == "--dbPath" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func main() {
	// --dbPath can appear after the subcommand (e.g. "tripnote trip ls --dbPath=./trips.db")
	// and root.ParseFlags only parses flags before the subcommand, so it is
	// extracted by hand before the database is opened.
	dbPath := parseDBPath(os.Args[1:])

	ctx, err := infra.Init(versionTag, dbPath)
	if err != nil {
		log.Errorf("%s\n", errors.Wrap(err, "initializing context").Error())
		os.Exit(1)
	}

	root.Register(user.NewCmd(*ctx))
	root.Register(trip.NewCmd(*ctx))
	root.Register(step.NewCmd(*ctx))
	root.Register(journal.NewCmd(*ctx))
	root.Register(checklist.NewCmd(*ctx))
	root.Register(share.NewCmd(*ctx))
	root.Register(offline.NewCmd(*ctx))
	root.Register(place.NewCmd(*ctx))
	root.Register(version.NewCmd(*ctx))

	err = root.Execute()
	database.Close(ctx.DB)

	if err != nil {
		log.Errorf("%s\n", err.Error())
		os.Exit(1)
	}
}
