// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

// Package service provides shared infrastructure for Pastehouse
// binaries.
//
// The package extracts the scaffolding the retrieval server needs
// around its handler:
//
//   - Logging: [NewLogger] builds the JSON slog logger every binary
//     writes to stderr.
//   - Access logging: [RequestLogger] assigns each request a
//     correlation identifier and logs one record per request; handlers
//     reach the request-scoped logger through [Logger].
//   - HTTP serving: [HTTPServer] binds a TCP listener, signals
//     readiness, and drains in-flight requests on shutdown.
//
// Binaries compose these utilities in their own main() function rather
// than subclassing a framework. The package provides building blocks,
// not a runtime.
package service
