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

// Package job schedules the background maintenance of the server
package job

import (
	"github.com/dnote/tripnote/pkg/app"
	"github.com/dnote/tripnote/pkg/log"
	"github.com/pkg/errors"
	"github.com/robfig/cron"
)

// Runner runs the scheduled jobs
type Runner struct {
	Cron *cron.Cron
	App  *app.App
}

// NewRunner returns a runner with every job scheduled. A blank schedule
// disables the purge.
func NewRunner(a *app.App, purgeSchedule string) (*Runner, error) {
	if err := a.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating the app parameters")
	}

	r := &Runner{
		Cron: cron.New(),
		App:  a,
	}

	if purgeSchedule != "" {
		if err := r.Cron.AddFunc(purgeSchedule, r.PurgeExpiredShares); err != nil {
			return nil, errors.Wrapf(err, "scheduling the share purge '%s'", purgeSchedule)
		}
	}

	return r, nil
}

// Start starts the scheduler in its own goroutine
func (r *Runner) Start() {
	r.Cron.Start()
}

// Stop stops the scheduler. Running jobs are not interrupted.
func (r *Runner) Stop() {
	r.Cron.Stop()
}

// PurgeExpiredShares deletes the share links whose expiry has passed
func (r *Runner) PurgeExpiredShares() {
	count, err := r.App.DeleteExpiredShares()
	if err != nil {
		log.ErrorWrap(err, "purging expired shares")
		return
	}

	log.WithFields(log.Fields{
		"count": count,
	}).Info("purged expired shares")
}
