// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for Pastehouse
// packages.
//
// [UploadDir] and [WriteArtifact] build an upload directory the way
// the upload side of the service lays it out: one flat file per paste,
// named by identifier, with a controlled modification time so tests
// can assert Last-Modified headers exactly.
//
// [RequireClosed] and [RequireReceive] encapsulate the timeout safety
// valve pattern (select with time.After fallback) for readiness and
// completion channels of servers started in tests.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
