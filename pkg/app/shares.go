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
	"github.com/dnote/tripnote/pkg/token"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TripShareParams is the data of a new share link
type TripShareParams struct {
	TripID    int
	ShareType string
	// Permissions defaults to the permissions of the share type
	Permissions *database.SharePermissions
	ExpiresAt   *int64
	CreatedBy   int
}

// DefaultPermissions returns the capability set granted by a share type
func DefaultPermissions(shareType string) database.SharePermissions {
	if shareType == database.ShareTypeCollaborative {
		return database.SharePermissions{
			CanView:             true,
			CanEdit:             true,
			CanAddJournal:       true,
			CanManageChecklists: true,
		}
	}

	return database.SharePermissions{
		CanView: true,
	}
}

// CreateTripShare mints a share token for the trip and returns it
func (a *App) CreateTripShare(p TripShareParams) (string, error) {
	if err := validateOneOf("shareType", p.ShareType, database.ShareTypeReadonly, database.ShareTypeCollaborative); err != nil {
		return "", err
	}

	permissions := DefaultPermissions(p.ShareType)
	if p.Permissions != nil {
		permissions = *p.Permissions
	}

	tok, err := token.Generate()
	if err != nil {
		return "", errors.Wrap(err, "generating share token")
	}

	share := database.TripShare{
		TripID:      p.TripID,
		ShareToken:  tok,
		ShareType:   p.ShareType,
		Permissions: datatypes.NewJSONType(permissions),
		ExpiresAt:   p.ExpiresAt,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   a.now(),
	}
	if err := a.DB.Create(&share).Error; err != nil {
		return "", newStorageError("inserting share", err)
	}

	return tok, nil
}

// GetTripShareByToken returns the share with the given token, or nil if none
// exists. Expired shares are returned too; use TripShare.IsExpired.
func (a *App) GetTripShareByToken(tok string) (*database.TripShare, error) {
	var share database.TripShare
	err := a.DB.Where("shareToken = ?", tok).First(&share).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, newStorageError("finding share", err)
	}

	return &share, nil
}

// GetTripShares returns the share links of the trip, newest first
func (a *App) GetTripShares(tripID int) ([]database.TripShare, error) {
	shares := []database.TripShare{}
	if err := a.DB.Where("tripId = ?", tripID).Order("createdAt DESC, id DESC").Find(&shares).Error; err != nil {
		return nil, newStorageError("finding shares", err)
	}

	return shares, nil
}

// DeleteTripShare revokes the share link
func (a *App) DeleteTripShare(id int) error {
	return deleteByID(a.DB, &database.TripShare{}, id, "deleting share")
}

// SharedTrip is what a share link opens: the trip with everything it owns
type SharedTrip struct {
	Share          database.TripShare
	Trip           database.Trip
	Steps          []database.TripStep
	JournalEntries []database.JournalEntry
	Checklists     []database.Checklist
	ChecklistItems []database.ChecklistItem
}

// OpenTripShare returns the trip behind the share token. It returns
// ErrNotFound if the token or its trip does not exist, ErrShareExpired if
// the share has expired and ErrShareForbidden if the share does not allow
// viewing. The share is set on the result of the last two.
func (a *App) OpenTripShare(tok string) (SharedTrip, error) {
	var ret SharedTrip

	share, err := a.GetTripShareByToken(tok)
	if err != nil {
		return ret, err
	}
	if share == nil {
		return ret, ErrNotFound
	}
	ret.Share = *share

	if share.IsExpired(a.now()) {
		return ret, ErrShareExpired
	}
	if !share.Permissions.Data().CanView {
		return ret, ErrShareForbidden
	}

	trip, err := a.GetTripByID(share.TripID)
	if err != nil {
		return ret, err
	}
	if trip == nil {
		return ret, ErrNotFound
	}

	ret.Trip = *trip

	if ret.Steps, err = a.GetTripSteps(trip.ID); err != nil {
		return ret, err
	}
	if ret.JournalEntries, err = a.GetJournalEntries(trip.ID); err != nil {
		return ret, err
	}
	if ret.Checklists, err = a.GetChecklists(trip.ID); err != nil {
		return ret, err
	}

	ret.ChecklistItems = []database.ChecklistItem{}
	for _, c := range ret.Checklists {
		items, err := a.GetChecklistItems(c.ID)
		if err != nil {
			return ret, err
		}
		ret.ChecklistItems = append(ret.ChecklistItems, items...)
	}

	return ret, nil
}

// DeleteExpiredShares deletes the shares whose expiry has passed and returns
// how many were deleted
func (a *App) DeleteExpiredShares() (int64, error) {
	res := a.DB.Where("expiresAt IS NOT NULL AND expiresAt < ?", a.now()).Delete(&database.TripShare{})
	if res.Error != nil {
		return 0, newStorageError("deleting expired shares", res.Error)
	}

	return res.RowsAffected, nil
}
