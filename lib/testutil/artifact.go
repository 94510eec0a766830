// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// FixedModTime is the modification time WriteArtifact stamps when the
// caller has no preference. Whole seconds, so it survives the
// round trip through an HTTP date unchanged.
var FixedModTime = time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)

// UploadDir creates an empty upload directory removed when the test
// completes.
func UploadDir(t testing.TB) string {
	t.Helper()
	directory := filepath.Join(t.TempDir(), "uploads")
	if err := os.Mkdir(directory, 0o755); err != nil {
		t.Fatalf("creating upload directory: %v", err)
	}
	return directory
}

// WriteArtifact stores content under directory/id with the given
// modification time, creating directory if needed, and returns the
// file path.
func WriteArtifact(t testing.TB, directory, id string, content []byte, modTime time.Time) string {
	t.Helper()
	if err := os.MkdirAll(directory, 0o755); err != nil {
		t.Fatalf("creating upload directory: %v", err)
	}
	path := filepath.Join(directory, id)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing artifact %s: %v", id, err)
	}
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatalf("setting modification time of %s: %v", id, err)
	}
	return path
}
