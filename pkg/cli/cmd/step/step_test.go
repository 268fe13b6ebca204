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

package step

import (
	"strconv"
	"testing"

	"github.com/dnote/tripnote/pkg/app"
	"github.com/dnote/tripnote/pkg/assert"
	"github.com/dnote/tripnote/pkg/cli/context"
	"github.com/dnote/tripnote/pkg/database"
	"github.com/dnote/tripnote/pkg/testutils"
	"github.com/pkg/errors"
)

func run(ctx context.TripnoteCtx, args ...string) error {
	cmd := NewCmd(ctx)
	cmd.SetArgs(args)

	return cmd.Execute()
}

func setupTrip(t *testing.T) (context.TripnoteCtx, database.Trip) {
	ctx := context.InitTestCtx(t)
	user := testutils.SetupUserData(ctx.DB, "alice@example.com", "pass1234")
	trip := testutils.SetupTripData(ctx.DB, user.ID, "Portugal")

	return ctx, trip
}

func TestAdd(t *testing.T) {
	ctx, trip := setupTrip(t)
	tripID := strconv.Itoa(trip.ID)

	if err := run(ctx, "add", tripID, "Lisbon", "--lat", "38.7223", "--lng", "-9.1393"); err != nil {
		t.Fatal(errors.Wrap(err, "adding Lisbon"))
	}
	if err := run(ctx, "add", tripID, "Porto", "--start", "2024-05-04"); err != nil {
		t.Fatal(errors.Wrap(err, "adding Porto"))
	}

	steps, err := ctx.App.GetTripSteps(trip.ID)
	if err != nil {
		t.Fatal(errors.Wrap(err, "listing steps"))
	}
	assert.Equal(t, len(steps), 2, "step count mismatch")
	assert.Equal(t, steps[0].Name, "Lisbon", "first step mismatch")
	assert.Equal(t, steps[0].OrderIndex, 1, "first order mismatch")
	assert.Equal(t, *steps[0].Latitude, 38.7223, "latitude mismatch")
	assert.Equal(t, steps[1].Name, "Porto", "second step mismatch")
	assert.Equal(t, steps[1].OrderIndex, 2, "second order mismatch")
	assert.Equal(t, steps[1].Latitude == nil, true, "latitude should be omitted")
	assert.Equal(t, *steps[1].StartDate, int64(1714780800000), "start date mismatch")
}

func TestAdd_invalidCoordinates(t *testing.T) {
	ctx, trip := setupTrip(t)

	err := run(ctx, "add", strconv.Itoa(trip.ID), "Nowhere", "--lat", "91", "--lng", "0")
	assert.Equal(t, app.IsValidationError(err), true, "should be a validation error")
}

func TestEdit(t *testing.T) {
	ctx, trip := setupTrip(t)
	step := testutils.SetupStepData(ctx.DB, trip.ID, "Lisbon", 1)
	testutils.MustExec(t, ctx.DB.Model(&step).Updates(map[string]interface{}{"latitude": 38.7, "longitude": -9.1}), "setting coordinates")

	if err := run(ctx, "edit", strconv.Itoa(step.ID), "--name", "Lisboa", "--clear-lat", "--clear-lng"); err != nil {
		t.Fatal(errors.Wrap(err, "editing"))
	}

	got, err := ctx.App.GetTripStepByID(step.ID)
	if err != nil {
		t.Fatal(errors.Wrap(err, "finding the step"))
	}
	assert.Equal(t, got.Name, "Lisboa", "name mismatch")
	assert.Equal(t, got.Latitude == nil, true, "latitude should be cleared")
	assert.Equal(t, got.Longitude == nil, true, "longitude should be cleared")
}

func TestEdit_valueAndClear(t *testing.T) {
	ctx, trip := setupTrip(t)
	step := testutils.SetupStepData(ctx.DB, trip.ID, "Lisbon", 1)

	if err := run(ctx, "edit", strconv.Itoa(step.ID), "--start", "2024-05-01", "--clear-start"); err == nil {
		t.Error("expected an error for a value given with its clear flag")
	}
}

func TestReorder(t *testing.T) {
	ctx, trip := setupTrip(t)
	s1 := testutils.SetupStepData(ctx.DB, trip.ID, "Lisbon", 1)
	s2 := testutils.SetupStepData(ctx.DB, trip.ID, "Porto", 2)
	s3 := testutils.SetupStepData(ctx.DB, trip.ID, "Faro", 3)

	ids := strconv.Itoa(s3.ID) + "," + strconv.Itoa(s1.ID)
	if err := run(ctx, "reorder", strconv.Itoa(trip.ID), ids, strconv.Itoa(s2.ID)); err != nil {
		t.Fatal(errors.Wrap(err, "reordering"))
	}

	steps, err := ctx.App.GetTripSteps(trip.ID)
	if err != nil {
		t.Fatal(errors.Wrap(err, "listing steps"))
	}
	assert.Equal(t, steps[0].ID, s3.ID, "first step mismatch")
	assert.Equal(t, steps[1].ID, s1.ID, "second step mismatch")
	assert.Equal(t, steps[2].ID, s2.ID, "third step mismatch")
}

func TestRemove(t *testing.T) {
	ctx, trip := setupTrip(t)
	step := testutils.SetupStepData(ctx.DB, trip.ID, "Lisbon", 1)

	if err := run(ctx, "rm", strconv.Itoa(step.ID), "-y"); err != nil {
		t.Fatal(errors.Wrap(err, "removing"))
	}

	got, err := ctx.App.GetTripStepByID(step.ID)
	if err != nil {
		t.Fatal(errors.Wrap(err, "finding the step"))
	}
	assert.Equal(t, got == nil, true, "step should be removed")

	if err := run(ctx, "rm", strconv.Itoa(step.ID), "-y"); err == nil {
		t.Error("expected an error for a removed step")
	}
}
