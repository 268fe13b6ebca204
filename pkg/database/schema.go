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

package database

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/dnote/tripnote/pkg/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

//go:embed schema.sql
var schemaSQL string

//go:embed indices.sql
var indicesSQL string

// columnProbe is a column that may be missing from a table created by an
// older version of the app
type columnProbe struct {
	table      string
	column     string
	definition string
}

// columnProbes lists, per table, every column added after the table was
// first introduced. Each is added with ALTER TABLE if missing.
var columnProbes = []columnProbe{
	{"users", "firstName", "TEXT"},
	{"users", "lastName", "TEXT"},
	{"users", "mobile", "TEXT"},
	{"users", "birthDate", "INTEGER"},
	{"users", "avatar", "TEXT"},
	{"users", "country", "TEXT"},

	{"trips", "description", "TEXT"},
	{"trips", "startDate", "INTEGER"},
	{"trips", "endDate", "INTEGER"},
	{"trips", "coverImage", "TEXT"},
	{"trips", "latitude", "REAL"},
	{"trips", "longitude", "REAL"},

	{"trip_steps", "description", "TEXT"},
	{"trip_steps", "startDate", "INTEGER"},
	{"trip_steps", "endDate", "INTEGER"},
	{"trip_steps", "latitude", "REAL"},
	{"trip_steps", "longitude", "REAL"},
	{"trip_steps", "orderIndex", "INTEGER NOT NULL DEFAULT 0"},

	{"journal_entries", "stepId", "INTEGER REFERENCES trip_steps (id) ON DELETE SET NULL"},
	{"journal_entries", "content", "TEXT"},

	{"journal_media", "caption", "TEXT"},

	{"checklists", "description", "TEXT"},
	{"checklists", "isTemplate", "INTEGER NOT NULL DEFAULT 0"},

	{"checklist_items", "priority", "TEXT NOT NULL DEFAULT 'medium' CHECK (priority IN ('low', 'medium', 'high'))"},
	{"checklist_items", "dueDate", "INTEGER"},
	{"checklist_items", "reminderDate", "INTEGER"},
	{"checklist_items", "orderIndex", "INTEGER NOT NULL DEFAULT 0"},

	{"trip_shares", "expiresAt", "INTEGER"},

	{"trip_collaborators", "joinedAt", "INTEGER"},
}

// SchemaReport describes what EnsureSchema changed
type SchemaReport struct {
	// AddedColumns lists the columns added to existing tables, as "table.column"
	AddedColumns []string
}

// EnsureSchema brings the database to the current schema regardless of its
// prior state. Tables are created if absent, missing columns are added and
// indices are created. It never drops a table or a row and can be called
// any number of times.
func EnsureSchema(db *gorm.DB) (SchemaReport, error) {
	var report SchemaReport

	if err := db.Exec(schemaSQL).Error; err != nil {
		return report, errors.Wrap(err, "creating tables")
	}

	added, err := addColumns(db, columnProbes)
	if err != nil {
		return report, errors.Wrap(err, "adding columns")
	}
	report.AddedColumns = added

	if err := db.Exec(indicesSQL).Error; err != nil {
		return report, errors.Wrap(err, "creating indices")
	}

	if len(added) > 0 {
		log.WithFields(log.Fields{
			"columns": added,
		}).Info("Upgraded database schema.")
	}

	return report, nil
}

// addColumns attempts to add each probed column. A column that already
// exists is skipped; any other failure is returned.
func addColumns(db *gorm.DB, probes []columnProbe) ([]string, error) {
	added := []string{}

	// duplicate column failures are expected on every run
	quiet := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)})

	for _, p := range probes {
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", p.table, p.column, p.definition)

		err := quiet.Exec(stmt).Error
		if err == nil {
			added = append(added, fmt.Sprintf("%s.%s", p.table, p.column))
			continue
		}
		if isDuplicateColumn(err) {
			continue
		}

		return added, errors.Wrapf(err, "adding column %s.%s", p.table, p.column)
	}

	return added, nil
}

func isDuplicateColumn(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "duplicate column name")
}
