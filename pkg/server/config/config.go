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
	"os"
	"strconv"

	"github.com/dnote/tripnote/pkg/dirs"
	"github.com/dnote/tripnote/pkg/log"
	"github.com/dnote/tripnote/pkg/token"
	"github.com/pkg/errors"
)

const (
	// AppEnvProduction represents an app environment for production.
	AppEnvProduction string = "PRODUCTION"
	// DefaultPort is the port the server listens on unless configured
	DefaultPort = "3001"
	// DefaultPurgeSchedule is the cron schedule of the expired share purge
	DefaultPurgeSchedule = "@hourly"
	// PurgeOff disables the expired share purge
	PurgeOff = "off"
)

var (
	// ErrDBMissingPath is an error for an incomplete configuration missing the database path
	ErrDBMissingPath = errors.New("DB Path is empty")
	// ErrPortInvalid is an error for an incomplete configuration with invalid port
	ErrPortInvalid = errors.New("Invalid Port")
	// ErrLogLevelInvalid is an error for a log level that is not recognized
	ErrLogLevelInvalid = errors.New("Invalid LogLevel")
	// ErrDeepLinkSchemeInvalid is an error for an empty deep link scheme
	ErrDeepLinkSchemeInvalid = errors.New("Invalid DeepLinkScheme")
)

// getOrEnv returns value if non-empty, otherwise env var, otherwise default
func getOrEnv(value, envKey, defaultVal string) string {
	if value != "" {
		return value
	}
	if env := os.Getenv(envKey); env != "" {
		return env
	}
	return defaultVal
}

// Config is an application configuration
type Config struct {
	AppEnv         string
	Port           string
	DBPath         string
	LogLevel       string
	DeepLinkScheme string
	// PurgeSchedule is blank when the purge is disabled
	PurgeSchedule  string
}

// Params are the configuration parameters for creating a new Config
type Params struct {
	AppEnv         string
	Port           string
	DBPath         string
	LogLevel       string
	DeepLinkScheme string
	PurgeSchedule  string
}

// New constructs and returns a new validated config.
// Empty string params will fall back to environment variables and defaults.
// The database defaults to the one the CLI writes to.
func New(p Params) (Config, error) {
	c := Config{
		AppEnv:         getOrEnv(p.AppEnv, "APP_ENV", AppEnvProduction),
		Port:           getOrEnv(p.Port, "PORT", DefaultPort),
		DBPath:         getOrEnv(p.DBPath, "DBPath", dirs.DBPath()),
		LogLevel:       getOrEnv(p.LogLevel, "LOG_LEVEL", log.LevelInfo),
		DeepLinkScheme: getOrEnv(p.DeepLinkScheme, "DEEP_LINK_SCHEME", token.DefaultScheme),
		PurgeSchedule:  getOrEnv(p.PurgeSchedule, "PURGE_SCHEDULE", DefaultPurgeSchedule),
	}
	if c.PurgeSchedule == PurgeOff {
		c.PurgeSchedule = ""
	}

	if err := validate(c); err != nil {
		return Config{}, err
	}

	return c, nil
}

// IsProd checks if the app environment is configured to be production.
func (c Config) IsProd() bool {
	return c.AppEnv == AppEnvProduction
}

func validate(c Config) error {
	if n, err := strconv.Atoi(c.Port); err != nil || n <= 0 || n > 65535 {
		return errors.Wrapf(ErrPortInvalid, "'%s'", c.Port)
	}

	if c.DBPath == "" {
		return ErrDBMissingPath
	}

	switch c.LogLevel {
	case log.LevelDebug, log.LevelInfo, log.LevelWarn, log.LevelError:
	default:
		return errors.Wrapf(ErrLogLevelInvalid, "'%s'", c.LogLevel)
	}

	if c.DeepLinkScheme == "" {
		return ErrDeepLinkSchemeInvalid
	}

	return nil
}
