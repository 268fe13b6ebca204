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
	"crypto/subtle"
	"strings"

	"github.com/dnote/tripnote/pkg/database"
	"github.com/dnote/tripnote/pkg/log"
	"github.com/dnote/tripnote/pkg/null"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
)

// UserParams is the data of a new user
type UserParams struct {
	Username  string
	Email     string
	Password  string
	FirstName *string
	LastName  *string
	Mobile    *string
	BirthDate *int64
	Avatar    *string
	Country   *string
}

// UserPatch is a partial update of a user profile
type UserPatch struct {
	Username  *string
	Email     *string
	FirstName null.Field[string]
	LastName  null.Field[string]
	Mobile    null.Field[string]
	BirthDate null.Field[int64]
	Avatar    null.Field[string]
	Country   null.Field[string]
}

func validateUsername(username string) error {
	if len(strings.TrimSpace(username)) < minUsernameLength {
		return newValidationError("username", "username must be at least %d characters", minUsernameLength)
	}

	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return newValidationError("password", "password must be at least %d characters", minPasswordLength)
	}

	return nil
}

func validateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return newValidationError("email", "email is invalid")
	}

	return nil
}

// emailTaken reports whether a user other than exceptID has the email
func emailTaken(db *gorm.DB, email string, exceptID int) (bool, error) {
	var count int64
	if err := db.Model(&database.User{}).Where("email = ? AND id != ?", email, exceptID).Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hashing password")
	}

	return string(hashed), nil
}

// isHashed reports whether the stored credential is a bcrypt hash
func isHashed(stored string) bool {
	_, err := bcrypt.Cost([]byte(stored))
	return err == nil
}

// InsertUser creates a user and returns its id
func (a *App) InsertUser(p UserParams) (int, error) {
	if err := validateUsername(p.Username); err != nil {
		return 0, err
	}
	if err := validatePassword(p.Password); err != nil {
		return 0, err
	}
	if err := validateEmail(p.Email); err != nil {
		return 0, err
	}

	taken, err := emailTaken(a.DB, p.Email, 0)
	if err != nil {
		return 0, newStorageError("counting users", err)
	}
	if taken {
		return 0, newValidationError("email", "email is already registered")
	}

	hashed, err := hashPassword(p.Password)
	if err != nil {
		return 0, err
	}

	user := database.User{
		Username:  p.Username,
		Email:     p.Email,
		Password:  hashed,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Mobile:    p.Mobile,
		BirthDate: p.BirthDate,
		Avatar:    p.Avatar,
		Country:   p.Country,
		CreatedAt: a.now(),
	}
	if err := a.DB.Create(&user).Error; err != nil {
		return 0, newStorageError("inserting user", err)
	}

	return user.ID, nil
}

// GetUserByID returns the user with the given id, or nil if none exists
func (a *App) GetUserByID(id int) (*database.User, error) {
	var user database.User
	ok, err := findByID(a.DB, &user, id)
	if err != nil {
		return nil, newStorageError("finding user", err)
	}
	if !ok {
		return nil, nil
	}

	return &user, nil
}

// GetUserByEmail returns the user with the given email, or nil if none exists
func (a *App) GetUserByEmail(email string) (*database.User, error) {
	var user database.User
	err := a.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, newStorageError("finding user", err)
	}

	return &user, nil
}

// Authenticate returns the user with the given credentials. A credential
// stored in plain text by an older version of the app is accepted and
// replaced with its hash. An empty password never matches, even against an
// empty stored credential.
func (a *App) Authenticate(email, password string) (*database.User, error) {
	user, err := a.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrLoginInvalid
	}
	if password == "" || user.Password == "" {
		return nil, ErrLoginInvalid
	}

	if isHashed(user.Password) {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
			return nil, ErrLoginInvalid
		}

		return user, nil
	}

	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(password)) != 1 {
		return nil, ErrLoginInvalid
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	if err := a.DB.Model(&database.User{}).Where("id = ?", user.ID).Update("password", hashed).Error; err != nil {
		log.WithFields(log.Fields{
			"user_id": user.ID,
		}).ErrorWrap(err, "upgrading legacy credential")
	} else {
		user.Password = hashed
	}

	return user, nil
}

// UpdateUserProfile applies a partial update to the user
func (a *App) UpdateUserProfile(id int, p UserPatch) error {
	u := updates{}

	if p.Username != nil {
		if err := validateUsername(*p.Username); err != nil {
			return err
		}
		u["username"] = *p.Username
	}
	if p.Email != nil {
		if err := validateEmail(*p.Email); err != nil {
			return err
		}

		taken, err := emailTaken(a.DB, *p.Email, id)
		if err != nil {
			return newStorageError("counting users", err)
		}
		if taken {
			return newValidationError("email", "email is already registered")
		}
		u["email"] = *p.Email
	}

	setNullable(u, "firstName", p.FirstName)
	setNullable(u, "lastName", p.LastName)
	setNullable(u, "mobile", p.Mobile)
	setNullable(u, "birthDate", p.BirthDate)
	setNullable(u, "avatar", p.Avatar)
	setNullable(u, "country", p.Country)

	return applyUpdates(a.DB, &database.User{}, id, u, "updating user")
}

// UpdatePassword replaces the credential of the user
func (a *App) UpdatePassword(id int, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return err
	}

	return applyUpdates(a.DB, &database.User{}, id, updates{"password": hashed}, "updating password")
}

// DeleteUser deletes the user along with every trip the user owns
func (a *App) DeleteUser(id int) error {
	tx := a.DB.Begin()

	if err := tx.Where("userId = ?", id).Delete(&database.Trip{}).Error; err != nil {
		tx.Rollback()
		return newStorageError("deleting trips", err)
	}
	if err := deleteByID(tx, &database.User{}, id, "deleting user"); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return newStorageError("committing a transaction", err)
	}

	markSnapshotsStale(a.DB)

	return nil
}
