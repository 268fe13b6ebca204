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
	"net/http"
	"os"

	"github.com/dnote/tripnote/pkg/log"
	"github.com/dnote/tripnote/pkg/server/config"
	"github.com/dnote/tripnote/pkg/server/controllers"
	"github.com/dnote/tripnote/pkg/server/job"
	"github.com/pkg/errors"
)

func startCmd(args []string) {
	fs := setupFlagSet("start", "tripnote-server start")

	appEnv := fs.String("appEnv", "", "Application environment (env: APP_ENV, default: PRODUCTION)")
	port := fs.String("port", "", "Server port (env: PORT, default: 3001)")
	dbPath := fs.String("dbPath", "", "Path to SQLite database file (env: DBPath, default: $XDG_DATA_HOME/tripnote/tripnote.db)")
	deepLinkScheme := fs.String("deepLinkScheme", "", "Scheme of the share links (env: DEEP_LINK_SCHEME, default: tripnote)")
	logLevel := fs.String("logLevel", "", "Log level: debug, info, warn, or error (env: LOG_LEVEL, default: info)")
	purgeSchedule := fs.String("purgeSchedule", "", "Cron schedule of the expired share purge, or 'off' (env: PURGE_SCHEDULE, default: @hourly)")

	fs.Parse(args)

	cfg, err := config.New(config.Params{
		AppEnv:         *appEnv,
		Port:           *port,
		DBPath:         *dbPath,
		DeepLinkScheme: *deepLinkScheme,
		LogLevel:       *logLevel,
		PurgeSchedule:  *purgeSchedule,
	})
	if err != nil {
		fmt.Printf("Error: %s\n\n", err)
		fs.Usage()
		os.Exit(1)
	}

	log.SetLevel(cfg.LogLevel)

	app, err := initApp(cfg)
	if err != nil {
		log.ErrorWrap(err, "initializing the app")
		os.Exit(1)
	}
	defer closeApp(app)

	runner, err := job.NewRunner(&app, cfg.PurgeSchedule)
	if err != nil {
		log.ErrorWrap(err, "initializing the jobs")
		os.Exit(1)
	}
	runner.Start()
	defer runner.Stop()

	ctl := controllers.New(&app)
	rc := controllers.RouteConfig{
		WebRoutes:   controllers.NewWebRoutes(&app, ctl),
		APIRoutes:   controllers.NewAPIRoutes(&app, ctl),
		Controllers: ctl,
	}
	r, err := controllers.NewRouter(&app, rc)
	if err != nil {
		panic(errors.Wrap(err, "initializing router"))
	}

	log.WithFields(log.Fields{
		"version": Version,
		"port":    cfg.Port,
		"db_path": cfg.DBPath,
	}).Info("tripnote server starting")

	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.ErrorWrap(err, "server failed")
		os.Exit(1)
	}
}
