// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

// Package pastestore resolves paste identifiers to stored files.
//
// The store is a flat directory of files named by identifier, written
// by the upload side of the service. This package only reads it:
// [Resolver.Resolve] opens a file, probes its size and modification
// time from the open handle, and classifies the attempt as an
// [Outcome] of kind OutcomeFound, OutcomeNotFound, or
// OutcomeIOFailure. A missing artifact is never reported as an I/O
// failure.
//
// Found artifacts are returned as streaming handles; nothing is read
// into memory here.
package pastestore
