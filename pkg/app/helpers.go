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
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dnote/tripnote/pkg/null"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// updates is a set of column assignments of a partial update
type updates map[string]interface{}

// setNullable assigns the column if the field was supplied. An explicit
// null assigns NULL.
func setNullable[T any](u updates, column string, f null.Field[T]) {
	if f.IsSet() {
		u[column] = f.Interface()
	}
}

// setValue assigns the column if the value was supplied
func setValue[T any](u updates, column string, v *T) {
	if v != nil {
		u[column] = *v
	}
}

// mergeNullable returns the value a nullable column will hold after the update
func mergeNullable[T any](current *T, f null.Field[T]) *T {
	if !f.IsSet() {
		return current
	}

	return f.Ptr()
}

// applyUpdates writes the assignments to the row with the given id. An
// empty set of assignments writes nothing.
func applyUpdates(db *gorm.DB, model interface{}, id int, u updates, op string) error {
	if len(u) == 0 {
		var count int64
		if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
			return newStorageError(op, err)
		}
		if count == 0 {
			return ErrNotFound
		}

		return nil
	}

	res := db.Model(model).Where("id = ?", id).Updates(map[string]interface{}(u))
	if res.Error != nil {
		return newStorageError(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// deleteByID deletes the row with the given id
func deleteByID(db *gorm.DB, model interface{}, id int, op string) error {
	res := db.Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return newStorageError(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// findByID finds the row with the given id. It returns false if no row matches.
func findByID(db *gorm.DB, dest interface{}, id int) (bool, error) {
	err := db.Where("id = ?", id).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	return true, nil
}

// reorder rewrites the orderIndex of the rows to 1..N following their
// position in orderedIDs. Rows that do not belong to the parent, and rows of
// the parent that are not listed, keep their orderIndex. An id listed more
// than once is rejected before anything is written.
func reorder(db *gorm.DB, model interface{}, parentColumn string, parentID int, orderedIDs []int, op string) error {
	seen := map[int]bool{}
	for _, id := range orderedIDs {
		if seen[id] {
			return newValidationError("orderedIds", "id %d is listed more than once", id)
		}
		seen[id] = true
	}

	tx := db.Begin()

	cond := fmt.Sprintf("id = ? AND %s = ?", parentColumn)
	for idx, id := range orderedIDs {
		if err := tx.Model(model).Where(cond, id, parentID).Update("orderIndex", idx+1).Error; err != nil {
			tx.Rollback()
			return newStorageError(op, errors.Wrapf(err, "updating the order of %d", id))
		}
	}

	if err := tx.Commit().Error; err != nil {
		return newStorageError(op, errors.Wrap(err, "committing a transaction"))
	}

	return nil
}

func validateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return newValidationError(field, "%s is required", field)
	}

	return nil
}

func validateMaxLength(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return newValidationError(field, "%s must be %d characters or fewer", field, max)
	}

	return nil
}

func validateDates(start, end *int64) error {
	if start != nil && end != nil && *start >= *end {
		return newValidationError("endDate", "end date must be after start date")
	}

	return nil
}

func validateCoordinates(lat, lng *float64) error {
	if lat != nil && (*lat < -90 || *lat > 90) {
		return newValidationError("latitude", "latitude must be between -90 and 90")
	}
	if lng != nil && (*lng < -180 || *lng > 180) {
		return newValidationError("longitude", "longitude must be between -180 and 180")
	}

	return nil
}

func validateOneOf(field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}

	return newValidationError(field, "%s must be one of %s", field, strings.Join(allowed, ", "))
}
