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

package app

import (
	"github.com/dnote/tripnote/pkg/database"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func getSystem(db *gorm.DB, key string) (string, bool, error) {
	var s database.System
	err := db.Where("key = ?", key).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	} else if err != nil {
		return "", false, errors.Wrapf(err, "finding system %s", key)
	}

	return s.Value, true, nil
}

func setSystem(db *gorm.DB, key, value string) error {
	s := database.System{Key: key, Value: value}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&s).Error
	if err != nil {
		return errors.Wrapf(err, "saving system %s", key)
	}

	return nil
}

// GetSystemValue returns the value stored under the key and whether it exists
func (a *App) GetSystemValue(key string) (string, bool, error) {
	v, ok, err := getSystem(a.DB, key)
	if err != nil {
		return "", false, newStorageError("reading system value", err)
	}

	return v, ok, nil
}

// SetSystemValue stores the value under the key, replacing any previous value
func (a *App) SetSystemValue(key, value string) error {
	if err := setSystem(a.DB, key, value); err != nil {
		return newStorageError("writing system value", err)
	}

	return nil
}

// DeleteSystemValue removes the key. Removing a missing key is not an error.
func (a *App) DeleteSystemValue(key string) error {
	if err := a.DB.Where("key = ?", key).Delete(&database.System{}).Error; err != nil {
		return newStorageError("deleting system value", err)
	}

	return nil
}
