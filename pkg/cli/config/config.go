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
	"path/filepath"

	"github.com/dnote/tripnote/pkg/cli/context"
	"github.com/dnote/tripnote/pkg/dirs"
	"github.com/dnote/tripnote/pkg/mailer"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// SMTP holds the settings used to email share links
type SMTP struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// Params returns the dialer settings
func (s SMTP) Params() mailer.SMTPParams {
	return mailer.SMTPParams{
		Host:     s.Host,
		Port:     s.Port,
		Username: s.Username,
		Password: s.Password,
	}
}

// Config holds tripnote configuration
type Config struct {
	Editor          string `yaml:"editor"`
	DBPath          string `yaml:"dbPath,omitempty"`
	DeepLinkScheme  string `yaml:"deepLinkScheme"`
	GeocodeEndpoint string `yaml:"geocodeEndpoint,omitempty"`
	LogLevel        string `yaml:"logLevel"`
	SMTP            SMTP   `yaml:"smtp,omitempty"`
}

// GetPath returns the path to the tripnote config file
func GetPath(ctx context.TripnoteCtx) string {
	return filepath.Join(ctx.Paths.Config, dirs.AppDirName, dirs.ConfigFilename)
}

// Read reads the config file
func Read(ctx context.TripnoteCtx) (Config, error) {
	var ret Config

	configPath := GetPath(ctx)
	b, err := os.ReadFile(configPath)
	if err != nil {
		return ret, errors.Wrap(err, "reading config file")
	}

	err = yaml.Unmarshal(b, &ret)
	if err != nil {
		return ret, errors.Wrap(err, "unmarshalling config")
	}

	return ret, nil
}

// Write writes the config to the config file
func Write(ctx context.TripnoteCtx, cf Config) error {
	path := GetPath(ctx)

	b, err := yaml.Marshal(cf)
	if err != nil {
		return errors.Wrap(err, "marshalling config into YAML")
	}

	// The file may hold the SMTP password
	err = os.WriteFile(path, b, 0600)
	if err != nil {
		return errors.Wrap(err, "writing the config file")
	}

	return nil
}
