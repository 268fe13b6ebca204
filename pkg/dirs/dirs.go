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

// Package dirs provides base directory definitions for the system and
// the locations of tripnote files within them
package dirs

import (
	"os"
	"os/user"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	// AppDirName is the name of the directory holding tripnote files
	// inside each base directory
	AppDirName = "tripnote"
	// DBFilename is the filename of the embedded database
	DBFilename = "tripnote.db"
	// ConfigFilename is the filename of the CLI configuration
	ConfigFilename = "tripnoterc"
)

// The environment variable names for the XDG base directory specification
var (
	envConfigHome = "XDG_CONFIG_HOME"
	envDataHome   = "XDG_DATA_HOME"
	envCacheHome  = "XDG_CACHE_HOME"
)

var (
	// Home is the home directory of the user
	Home string
	// ConfigHome is the full path to the directory in which user-specific
	// configurations should be written.
	ConfigHome string
	// DataHome is the full path to the directory in which user-specific data
	// files should be written.
	DataHome string
	// CacheHome is the full path to the directory in which user-specific
	// non-essential cached data should be written
	CacheHome string
)

func init() {
	Reload()
}

// Reload reloads the directory definitions
func Reload() {
	Home = getHomeDir()
	ConfigHome = readPath(envConfigHome, filepath.Join(Home, ".config"))
	DataHome = readPath(envDataHome, filepath.Join(Home, ".local", "share"))
	CacheHome = readPath(envCacheHome, filepath.Join(Home, ".cache"))
}

func getHomeDir() string {
	usr, err := user.Current()
	if err != nil {
		panic(errors.Wrap(err, "getting home dir"))
	}

	return usr.HomeDir
}

func readPath(envName, defaultPath string) string {
	if dir := os.Getenv(envName); dir != "" {
		return dir
	}

	return defaultPath
}

// DBPath returns the default path to the database file
func DBPath() string {
	return filepath.Join(DataHome, AppDirName, DBFilename)
}

// ConfigPath returns the path to the CLI configuration file
func ConfigPath() string {
	return filepath.Join(ConfigHome, AppDirName, ConfigFilename)
}
