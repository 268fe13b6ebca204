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
	"testing"

	"github.com/dnote/tripnote/pkg/assert"
	"github.com/dnote/tripnote/pkg/cli/context"
	"github.com/dnote/tripnote/pkg/dirs"
	"github.com/pkg/errors"
)

func newCtx(t *testing.T) context.TripnoteCtx {
	tmpDir := t.TempDir()
	paths := context.Paths{Config: tmpDir}
	if err := context.InitDirs(paths); err != nil {
		t.Fatal(errors.Wrap(err, "initializing dirs"))
	}

	return context.TripnoteCtx{Paths: paths}
}

func TestGetPath(t *testing.T) {
	ctx := context.TripnoteCtx{Paths: context.Paths{Config: "/tmp/config"}}

	assert.Equal(t, GetPath(ctx), filepath.Join("/tmp/config", dirs.AppDirName, dirs.ConfigFilename), "path mismatch")
}

func TestWriteRead(t *testing.T) {
	ctx := newCtx(t)

	cf := Config{
		Editor:         "vim",
		DeepLinkScheme: "tripnote",
		LogLevel:       "warn",
		SMTP: SMTP{
			Host:     "smtp.example.com",
			Port:     587,
			Username: "alice",
			Password: "secret",
			From:     "alice@example.com",
		},
	}
	if err := Write(ctx, cf); err != nil {
		t.Fatal(errors.Wrap(err, "writing"))
	}

	got, err := Read(ctx)
	if err != nil {
		t.Fatal(errors.Wrap(err, "reading"))
	}
	assert.DeepEqual(t, got, cf, "config mismatch")

	info, err := os.Stat(GetPath(ctx))
	if err != nil {
		t.Fatal(errors.Wrap(err, "getting file info"))
	}
	assert.Equal(t, info.Mode().Perm(), os.FileMode(0600), "file mode mismatch")
}

func TestRead_partial(t *testing.T) {
	ctx := newCtx(t)

	content := "deepLinkScheme: tripnote-dev\nsmtp:\n  host: smtp.example.com\n  port: 25\n"
	if err := os.WriteFile(GetPath(ctx), []byte(content), 0600); err != nil {
		t.Fatal(errors.Wrap(err, "writing"))
	}

	got, err := Read(ctx)
	if err != nil {
		t.Fatal(errors.Wrap(err, "reading"))
	}

	assert.Equal(t, got.DeepLinkScheme, "tripnote-dev", "scheme mismatch")
	assert.Equal(t, got.SMTP.Host, "smtp.example.com", "smtp host mismatch")
	assert.Equal(t, got.SMTP.Port, 25, "smtp port mismatch")
	assert.Equal(t, got.SMTP.Params().IsConfigured(), false, "smtp should not be configured without credentials")
}

func TestRead_missing(t *testing.T) {
	ctx := newCtx(t)

	if _, err := Read(ctx); err == nil {
		t.Error("expected an error for a missing config file")
	}
}
