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

package place

import (
	"github.com/dnote/tripnote/pkg/cli/context"
	"github.com/dnote/tripnote/pkg/cli/infra"
	"github.com/dnote/tripnote/pkg/cli/output"
	"github.com/dnote/tripnote/pkg/cli/utils"
	"github.com/dnote/tripnote/pkg/geocode"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
  * Find the place at the given coordinates
  tripnote place --lat 38.7075 --lng -9.1364

  * Find the place of a step
  tripnote place --step 12`

// NewCmd returns a new place command
func NewCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "place",
		Short:   "Look up the place at a location",
		Example: example,
		Args:    cobra.NoArgs,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.Float64("lat", 0, "the latitude")
	f.Float64("lng", 0, "the longitude")
	f.String("step", "", "the id of a step whose location to look up")

	return cmd
}

func getCoordinates(ctx context.TripnoteCtx, cmd *cobra.Command) (float64, float64, error) {
	if cmd.Flags().Changed("step") {
		arg, _ := cmd.Flags().GetString("step")
		id, err := utils.ParseID(arg)
		if err != nil {
			return 0, 0, err
		}

		step, err := ctx.App.GetTripStepByID(id)
		if err != nil {
			return 0, 0, errors.Wrap(err, "finding the step")
		}
		if step == nil {
			return 0, 0, errors.Errorf("step %d not found", id)
		}
		if step.Latitude == nil || step.Longitude == nil {
			return 0, 0, errors.Errorf("step %d has no location", id)
		}

		return *step.Latitude, *step.Longitude, nil
	}

	lat, err := infra.FloatPtr(cmd, "lat")
	if err != nil {
		return 0, 0, err
	}
	lng, err := infra.FloatPtr(cmd, "lng")
	if err != nil {
		return 0, 0, err
	}
	if lat == nil || lng == nil {
		return 0, 0, errors.New("either --step or both --lat and --lng are required")
	}

	return *lat, *lng, nil
}

func newRun(ctx context.TripnoteCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		lat, lng, err := getCoordinates(ctx, cmd)
		if err != nil {
			return err
		}

		if ctx.Geocoder == nil {
			return errors.New("place lookup is not available")
		}

		p, err := ctx.Geocoder.Reverse(cmd.Context(), lat, lng)
		if errors.Cause(err) == geocode.ErrDisabled {
			return errors.New("place lookup failed too many times. try again in a few minutes")
		} else if err != nil {
			return errors.Wrap(err, "looking up the place")
		}

		output.PlaceInfo(p)

		return nil
	}
}
