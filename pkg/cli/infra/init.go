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

// Package infra provides operations and definitions for the
// local infrastructure for tripnote
package infra

import (
	"os"
	"path/filepath"

	"github.com/dnote/tripnote/pkg/app"
	"github.com/dnote/tripnote/pkg/cli/config"
	"github.com/dnote/tripnote/pkg/cli/consts"
	"github.com/dnote/tripnote/pkg/cli/context"
	clilog "github.com/dnote/tripnote/pkg/cli/log"
	"github.com/dnote/tripnote/pkg/cli/utils"
	"github.com/dnote/tripnote/pkg/clock"
	"github.com/dnote/tripnote/pkg/database"
	"github.com/dnote/tripnote/pkg/dirs"
	"github.com/dnote/tripnote/pkg/geocode"
	"github.com/dnote/tripnote/pkg/log"
	"github.com/dnote/tripnote/pkg/mailer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// RunEFunc is a function type of tripnote commands
type RunEFunc func(*cobra.Command, []string) error

func getDBPath(paths context.Paths, customPath string, cf config.Config) string {
	if customPath != "" {
		return customPath
	}
	if cf.DBPath != "" {
		return cf.DBPath
	}

	return filepath.Join(paths.Data, dirs.AppDirName, dirs.DBFilename)
}

func newPaths() context.Paths {
	return context.Paths{
		Home:   dirs.Home,
		Config: dirs.ConfigHome,
		Data:   dirs.DataHome,
		Cache:  dirs.CacheHome,
	}
}

// Init initializes the tripnote environment and returns a new tripnote context
func Init(versionTag, customDBPath string) (*context.TripnoteCtx, error) {
	dirs.Reload()

	ctx := context.TripnoteCtx{
		Paths:   newPaths(),
		Version: versionTag,
	}

	if err := initFiles(ctx); err != nil {
		return nil, errors.Wrap(err, "initializing files")
	}

	cf, err := config.Read(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	if cf.LogLevel != "" {
		log.SetLevel(cf.LogLevel)
	}

	dbPath := getDBPath(ctx.Paths, customDBPath, cf)
	db, err := InitDB(dbPath, cf.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "initializing database")
	}

	ctx = setupCtx(ctx, db, dbPath, cf)

	if err := InitSystem(ctx); err != nil {
		return nil, errors.Wrap(err, "initializing system data")
	}

	clilog.Debug("context: version=%s db=%s scheme=%s\n", ctx.Version, ctx.DBPath, ctx.DeepLinkScheme)

	return &ctx, nil
}

// setupCtx enriches the base context with the database and config values
func setupCtx(ctx context.TripnoteCtx, db *gorm.DB, dbPath string, cf config.Config) context.TripnoteCtx {
	c := clock.New()

	a := app.New(db, c)
	if cf.DeepLinkScheme != "" {
		a.DeepLinkScheme = cf.DeepLinkScheme
	}
	if cf.SMTP.From != "" {
		a.EmailFrom = cf.SMTP.From
	}
	backend, err := mailer.NewDefaultBackend(cf.SMTP.Params())
	if err == nil {
		a.EmailBackend = backend
	} else {
		clilog.Debug("email backend: %s. printing emails instead\n", err.Error())
	}

	ret := ctx
	ret.DB = db
	ret.DBPath = dbPath
	ret.App = a
	ret.Clock = c
	ret.Editor = cf.Editor
	ret.DeepLinkScheme = a.DeepLinkScheme
	ret.Geocoder = geocode.New(geocode.Params{
		Endpoint:  cf.GeocodeEndpoint,
		UserAgent: "tripnote/" + ctx.Version,
		Clock:     c,
	})

	return ret
}

// InitDB opens the database at the given path and brings its schema up to date
func InitDB(dbPath, logLevel string) (*gorm.DB, error) {
	clilog.Debug("initializing the database at %s\n", dbPath)

	db, err := database.Open(dbPath, logLevel)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to db")
	}

	report, err := database.EnsureSchema(db)
	if err != nil {
		database.Close(db)
		return nil, errors.Wrap(err, "ensuring the schema")
	}
	if len(report.AddedColumns) > 0 {
		clilog.Debug("upgraded the schema. added columns: %v\n", report.AddedColumns)
	}

	return db, nil
}

// InitSystem removes the offline snapshot and sync status stored by older
// versions without a user scope. Snapshots are kept per user.
func InitSystem(ctx context.TripnoteCtx) error {
	clilog.Debug("initializing the system\n")

	for _, key := range []string{database.SystemOfflineSnapshot, database.SystemSyncStatus} {
		if err := ctx.App.DeleteSystemValue(key); err != nil {
			return errors.Wrapf(err, "removing the unscoped %s", key)
		}
	}

	return nil
}

// getEditorCommand returns the system's editor command with appropriate flags,
// if necessary, to make the command wait until editor is close to exit.
func getEditorCommand() string {
	editor := os.Getenv("EDITOR")

	var ret string

	switch editor {
	case "atom":
		ret = "atom -w"
	case "subl":
		ret = "subl -n -w"
	case "code":
		ret = "code -n -w"
	case "mate":
		ret = "mate -w"
	case "vim":
		ret = "vim"
	case "nano":
		ret = "nano"
	case "emacs":
		ret = "emacs"
	case "nvim":
		ret = "nvim"
	default:
		ret = "vi"
	}

	return ret
}

// initConfigFile populates a new config file if it does not exist yet
func initConfigFile(ctx context.TripnoteCtx) error {
	path := config.GetPath(ctx)
	ok, err := utils.FileExists(path)
	if err != nil {
		return errors.Wrap(err, "checking if config exists")
	}
	if ok {
		return nil
	}

	cf := config.Config{
		Editor:         getEditorCommand(),
		DeepLinkScheme: consts.DefaultDeepLinkScheme,
		LogLevel:       consts.DefaultLogLevel,
	}

	if err := config.Write(ctx, cf); err != nil {
		return errors.Wrap(err, "writing config")
	}

	return nil
}

// initFiles creates, if necessary, the tripnote directory and files inside
func initFiles(ctx context.TripnoteCtx) error {
	if err := context.InitDirs(ctx.Paths); err != nil {
		return errors.Wrap(err, "creating the tripnote dir")
	}
	if err := initConfigFile(ctx); err != nil {
		return errors.Wrap(err, "generating the config file")
	}

	return nil
}
