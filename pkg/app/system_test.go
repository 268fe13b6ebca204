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
	"testing"

	"github.com/dnote/tripnote/pkg/assert"
	"github.com/dnote/tripnote/pkg/database"
	"github.com/dnote/tripnote/pkg/testutils"
	"github.com/pkg/errors"
)

func TestSystemValue(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest(db)

	_, ok, err := a.GetSystemValue(database.SystemSessionUserID)
	if err != nil {
		t.Fatal(errors.Wrap(err, "getting"))
	}
	assert.Equal(t, ok, false, "key should not exist yet")

	if err := a.SetSystemValue(database.SystemSessionUserID, "1"); err != nil {
		t.Fatal(errors.Wrap(err, "setting"))
	}
	if err := a.SetSystemValue(database.SystemSessionUserID, "2"); err != nil {
		t.Fatal(errors.Wrap(err, "overwriting"))
	}

	v, ok, err := a.GetSystemValue(database.SystemSessionUserID)
	if err != nil {
		t.Fatal(errors.Wrap(err, "getting"))
	}
	assert.Equal(t, ok, true, "key should exist")
	assert.Equal(t, v, "2", "value mismatch")

	var count int64
	testutils.MustExec(t, db.Model(&database.System{}).Count(&count), "counting system rows")
	assert.Equal(t, count, int64(1), "overwriting should not duplicate the key")

	if err := a.DeleteSystemValue(database.SystemSessionUserID); err != nil {
		t.Fatal(errors.Wrap(err, "deleting"))
	}
	if err := a.DeleteSystemValue(database.SystemSessionUserID); err != nil {
		t.Fatal(errors.Wrap(err, "deleting a missing key"))
	}

	_, ok, err = a.GetSystemValue(database.SystemSessionUserID)
	if err != nil {
		t.Fatal(errors.Wrap(err, "getting"))
	}
	assert.Equal(t, ok, false, "key should be gone")
}
