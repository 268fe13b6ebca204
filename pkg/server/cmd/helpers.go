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
	"flag"
	"fmt"
	"os"

	"github.com/dnote/tripnote/pkg/app"
	"github.com/dnote/tripnote/pkg/clock"
	"github.com/dnote/tripnote/pkg/database"
	"github.com/dnote/tripnote/pkg/log"
	"github.com/dnote/tripnote/pkg/server/config"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func initDB(dbPath, logLevel string) (*gorm.DB, error) {
	db, err := database.Open(dbPath, logLevel)
	if err != nil {
		return nil, errors.Wrap(err, "opening the database")
	}

	report, err := database.EnsureSchema(db)
	if err != nil {
		database.Close(db)
		return nil, errors.Wrap(err, "ensuring the schema")
	}
	if len(report.AddedColumns) > 0 {
		log.WithFields(log.Fields{
			"columns": report.AddedColumns,
		}).Info("upgraded the schema")
	}

	return db, nil
}

func initApp(cfg config.Config) (app.App, error) {
	db, err := initDB(cfg.DBPath, cfg.LogLevel)
	if err != nil {
		return app.App{}, err
	}

	a := app.New(db, clock.New())
	a.DeepLinkScheme = cfg.DeepLinkScheme

	return a, nil
}

func closeApp(a app.App) {
	if err := database.Close(a.DB); err != nil {
		log.ErrorWrap(err, "closing the database")
	}
}

// printFlags prints flags with -- prefix for consistency with CLI
func printFlags(fs *flag.FlagSet) {
	fs.VisitAll(func(f *flag.Flag) {
		fmt.Printf("  --%s", f.Name)

		// Print type hint for non-boolean flags
		name, usage := flag.UnquoteUsage(f)
		if name != "" {
			fmt.Printf(" %s", name)
		}
		fmt.Println()

		// Print usage description with indentation
		if usage != "" {
			fmt.Printf("    \t%s", usage)
			if f.DefValue != "" && f.DefValue != "false" {
				fmt.Printf(" (default: %s)", f.DefValue)
			}
			fmt.Println()
		}
	})
}

// setupFlagSet creates a FlagSet with standard usage format
func setupFlagSet(name, usageCmd string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Printf(`Usage:
  %s [flags]

Flags:
`, usageCmd)
		printFlags(fs)
	}
	return fs
}

// requireString validates that a required string flag is not empty
func requireString(fs *flag.FlagSet, value, fieldName string) {
	if value == "" {
		fmt.Printf("Error: %s is required\n", fieldName)
		fs.Usage()
		os.Exit(1)
	}
}

// setupAppWithDB creates config, initializes app, and returns cleanup function
func setupAppWithDB(fs *flag.FlagSet, dbPath string) (*app.App, func()) {
	cfg, err := config.New(config.Params{
		DBPath: dbPath,
	})
	if err != nil {
		fmt.Printf("Error: %s\n\n", err)
		fs.Usage()
		os.Exit(1)
	}

	a, err := initApp(cfg)
	if err != nil {
		log.ErrorWrap(err, "initializing the app")
		os.Exit(1)
	}

	return &a, func() { closeApp(a) }
}
