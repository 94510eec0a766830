// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

package pastestore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// maxIdentifierLength is the longest file name the upload directory can
// hold (NAME_MAX on Linux).
const maxIdentifierLength = 255

// Resolver maps paste identifiers to files under one upload directory.
// It never writes and holds no state beyond the directory path, so a
// single Resolver serves any number of concurrent requests.
type Resolver struct {
	root string
}

// NewResolver returns a Resolver rooted at directory. The directory is
// not opened or checked here; its lifecycle belongs to the uploader.
func NewResolver(directory string) *Resolver {
	if directory == "" {
		panic("pastestore.NewResolver: directory is required")
	}
	return &Resolver{root: directory}
}

// Root returns the upload directory.
func (resolver *Resolver) Root() string { return resolver.root }

// Resolve opens the artifact named id and probes its metadata from the
// open handle, so the reported modification time always describes the
// bytes that will be streamed even if the file is deleted concurrently.
//
// Absence is always OutcomeNotFound: a missing file, a missing upload
// directory, a file that disappears between lookup and open, a
// directory, and an identifier that is not a plain local file name. Every
// other storage error is OutcomeIOFailure.
//
// The returned error is non-nil only when ctx is cancelled; the
// Outcome is then zero and no handle is left open.
func (resolver *Resolver) Resolve(ctx context.Context, id string) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	if !validIdentifier(id) {
		return notFound(), nil
	}

	file, err := os.OpenInRoot(resolver.root, id)
	if err != nil {
		return classify(err), nil
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return classify(err), nil
	}
	if !info.Mode().IsRegular() {
		file.Close()
		return notFound(), nil
	}

	if err := ctx.Err(); err != nil {
		file.Close()
		return Outcome{}, err
	}

	adviseSequential(file)

	return found(&Artifact{
		ID:         id,
		Content:    file,
		ModifiedAt: info.ModTime(),
		Size:       info.Size(),
	}), nil
}

// validIdentifier rejects identifiers that could name anything other
// than a direct child of the upload directory, and names no file can
// have (too long, or containing NUL). os.OpenInRoot already refuses to
// escape the root; this keeps such requests in the NotFound class
// instead of surfacing as I/O errors.
func validIdentifier(id string) bool {
	if id == "" || len(id) > maxIdentifierLength || strings.ContainsRune(id, 0) {
		return false
	}
	if !filepath.IsLocal(id) {
		return false
	}
	return filepath.Base(id) == id
}

func classify(err error) Outcome {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) || errors.Is(err, syscall.ENAMETOOLONG) {
		return notFound()
	}
	return ioFailure(err.Error())
}
