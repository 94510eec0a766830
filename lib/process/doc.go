// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides binary entrypoint helpers for Pastehouse
// binaries. It owns the one raw I/O pattern that exists before the
// structured logger: reporting a startup error to stderr and exiting
// with a non-zero status.
package process
