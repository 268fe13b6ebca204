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

package config

import (
	"fmt"
	"testing"

	"github.com/dnote/tripnote/pkg/assert"
	"github.com/pkg/errors"
)

func TestValidate(t *testing.T) {
	testCases := []struct {
		config      Config
		expectedErr error
	}{
		{
			config: Config{
				DBPath:         "test.db",
				Port:           "3000",
				LogLevel:       "info",
				DeepLinkScheme: "tripnote",
			},
			expectedErr: nil,
		},
		{
			config: Config{
				DBPath:         "",
				Port:           "3000",
				LogLevel:       "info",
				DeepLinkScheme: "tripnote",
			},
			expectedErr: ErrDBMissingPath,
		},
		{
			config: Config{
				DBPath:         "test.db",
				LogLevel:       "info",
				DeepLinkScheme: "tripnote",
			},
			expectedErr: ErrPortInvalid,
		},
		{
			config: Config{
				DBPath:         "test.db",
				Port:           "abc",
				LogLevel:       "info",
				DeepLinkScheme: "tripnote",
			},
			expectedErr: ErrPortInvalid,
		},
		{
			config: Config{
				DBPath:         "test.db",
				Port:           "70000",
				LogLevel:       "info",
				DeepLinkScheme: "tripnote",
			},
			expectedErr: ErrPortInvalid,
		},
		{
			config: Config{
				DBPath:         "test.db",
				Port:           "3000",
				LogLevel:       "verbose",
				DeepLinkScheme: "tripnote",
			},
			expectedErr: ErrLogLevelInvalid,
		},
		{
			config: Config{
				DBPath:   "test.db",
				Port:     "3000",
				LogLevel: "debug",
			},
			expectedErr: ErrDeepLinkSchemeInvalid,
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("test case %d", idx), func(t *testing.T) {
			err := validate(tc.config)

			assert.Equal(t, errors.Cause(err), tc.expectedErr, "error mismatch")
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("params take precedence over env", func(t *testing.T) {
		t.Setenv("PORT", "4000")
		t.Setenv("DEEP_LINK_SCHEME", "fromenv")

		c, err := New(Params{
			Port:   "5000",
			DBPath: "/tmp/tripnote-test.db",
		})
		if err != nil {
			t.Fatal(errors.Wrap(err, "creating config"))
		}

		assert.Equal(t, c.Port, "5000", "Port mismatch")
		assert.Equal(t, c.DeepLinkScheme, "fromenv", "DeepLinkScheme mismatch")
		assert.Equal(t, c.DBPath, "/tmp/tripnote-test.db", "DBPath mismatch")
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("APP_ENV", "")
		t.Setenv("PORT", "")
		t.Setenv("LOG_LEVEL", "")
		t.Setenv("DEEP_LINK_SCHEME", "")
		t.Setenv("PURGE_SCHEDULE", "")

		c, err := New(Params{DBPath: "/tmp/tripnote-test.db"})
		if err != nil {
			t.Fatal(errors.Wrap(err, "creating config"))
		}

		assert.Equal(t, c.AppEnv, AppEnvProduction, "AppEnv mismatch")
		assert.Equal(t, c.IsProd(), true, "IsProd mismatch")
		assert.Equal(t, c.Port, DefaultPort, "Port mismatch")
		assert.Equal(t, c.LogLevel, "info", "LogLevel mismatch")
		assert.Equal(t, c.DeepLinkScheme, "tripnote", "DeepLinkScheme mismatch")
		assert.Equal(t, c.PurgeSchedule, DefaultPurgeSchedule, "PurgeSchedule mismatch")
	})

	t.Run("purge off", func(t *testing.T) {
		c, err := New(Params{DBPath: "/tmp/tripnote-test.db", PurgeSchedule: PurgeOff})
		if err != nil {
			t.Fatal(errors.Wrap(err, "creating config"))
		}

		assert.Equal(t, c.PurgeSchedule, "", "PurgeSchedule mismatch")
	})

	t.Run("invalid env", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "loud")

		_, err := New(Params{DBPath: "/tmp/tripnote-test.db"})

		assert.Equal(t, errors.Cause(err), ErrLogLevelInvalid, "error mismatch")
	})
}
