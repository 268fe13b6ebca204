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

// Package database defines the persisted models and manages the schema of
// the embedded SQLite store
package database

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dnote/tripnote/pkg/log"
	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// getDBLogLevel maps the application log level to the GORM log level
func getDBLogLevel(level string) logger.LogLevel {
	switch level {
	case log.LevelDebug:
		return logger.Info
	case log.LevelWarn:
		return logger.Warn
	case log.LevelError:
		return logger.Error
	default:
		return logger.Silent
	}
}

// isFilePath reports whether the dsn points to a regular file on disk
func isFilePath(dsn string) bool {
	return dsn != ":memory:" && !strings.HasPrefix(dsn, "file:")
}

// withForeignKeys enables foreign key enforcement on every connection
// opened from the dsn. SQLite leaves it off by default, which would
// disable the cascade rules of the schema.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}

	return dsn + sep + "_foreign_keys=1"
}

// Open initializes the database connection. The dsn is either a path to the
// database file, created along with its directory if missing, or a SQLite
// URI such as an in-memory database.
func Open(dsn string, logLevel string) (*gorm.DB, error) {
	if isFilePath(dsn) {
		dir := filepath.Dir(dsn)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, "creating database directory at %s", dir)
		}
	}

	db, err := gorm.Open(sqlite.Open(withForeignKeys(dsn)), &gorm.Config{
		Logger: logger.Default.LogMode(getDBLogLevel(logLevel)),
	})
	if err != nil {
		return nil, errors.Wrap(err, "opening database connection")
	}

	return db, nil
}

// Close closes the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "getting the connection pool")
	}

	return sqlDB.Close()
}
