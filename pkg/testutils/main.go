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

// Package testutils provides utilities used in tests
package testutils

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/dnote/tripnote/pkg/database"
	"github.com/dnote/tripnote/pkg/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// InitMemoryDB creates an in-memory SQLite database with the schema ensured
func InitMemoryDB(t *testing.T) *gorm.DB {
	// Unique name per test so that shared-cache connections never cross tests
	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	db, err := database.Open(dbName, log.LevelInfo)
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if _, err := database.EnsureSchema(db); err != nil {
		t.Fatalf("failed to ensure schema: %v", err)
	}

	t.Cleanup(func() {
		database.Close(db)
	})

	return db
}

// SetupUserData creates and returns a new user with the given email and password
func SetupUserData(db *gorm.DB, email, password string) database.User {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(errors.Wrap(err, "Failed to hash password"))
	}

	user := database.User{
		Username:  strings.Split(email, "@")[0],
		Email:     email,
		Password:  string(hashedPassword),
		CreatedAt: 1,
	}
	if err := db.Create(&user).Error; err != nil {
		panic(errors.Wrap(err, "Failed to prepare user"))
	}

	return user
}

// SetupTripData creates and returns a new trip owned by the given user
func SetupTripData(db *gorm.DB, userID int, title string) database.Trip {
	trip := database.Trip{
		UserID:    userID,
		Title:     title,
		CreatedAt: 1,
	}
	if err := db.Create(&trip).Error; err != nil {
		panic(errors.Wrap(err, "Failed to prepare trip"))
	}

	return trip
}

// SetupStepData creates and returns a new step of the given trip
func SetupStepData(db *gorm.DB, tripID int, name string, orderIndex int) database.TripStep {
	step := database.TripStep{
		TripID:     tripID,
		Name:       name,
		OrderIndex: orderIndex,
		CreatedAt:  1,
	}
	if err := db.Create(&step).Error; err != nil {
		panic(errors.Wrap(err, "Failed to prepare step"))
	}

	return step
}

// MustExec fails the test if the given database query has error
func MustExec(t *testing.T, db *gorm.DB, message string) {
	t.Helper()
	if err := db.Error; err != nil {
		t.Fatalf("%s: %s", message, err.Error())
	}
}

// HTTPDo makes an HTTP request and returns a response
func HTTPDo(t *testing.T, req *http.Request) *http.Response {
	hc := http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	res, err := hc.Do(req)
	if err != nil {
		t.Fatal(errors.Wrap(err, "performing http request"))
	}

	return res
}

// MakeReq makes an HTTP request
func MakeReq(endpoint string, method, path, data string) *http.Request {
	u := fmt.Sprintf("%s%s", endpoint, path)

	req, err := http.NewRequest(method, u, strings.NewReader(data))
	if err != nil {
		panic(errors.Wrap(err, "constructing http request"))
	}

	return req
}

// MockEmail is a mock email data
type MockEmail struct {
	Subject string
	From    string
	To      []string
	Body    string
}

// MockEmailbackendImplementation is an email backend that keeps the emails in memory
type MockEmailbackendImplementation struct {
	mu     sync.RWMutex
	Emails []MockEmail
}

// Clear clears the mock email queue
func (b *MockEmailbackendImplementation) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.Emails = []MockEmail{}
}

// Queue is an implementation of Backend.Queue.
func (b *MockEmailbackendImplementation) Queue(subject, from string, to []string, contentType, body string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.Emails = append(b.Emails, MockEmail{
		Subject: subject,
		From:    from,
		To:      to,
		Body:    body,
	})

	return nil
}
