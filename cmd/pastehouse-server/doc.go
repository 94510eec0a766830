// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

// pastehouse-server serves stored pastes over HTTP.
//
// Pastes are files in a flat upload directory written by a separate
// uploader. A request for /abc123 streams the file named abc123
// verbatim; /abc123.json serves the same bytes with the Content-Type
// the json extension maps to, and unknown extensions fall back to
// text/plain. /pretty/abc123.rs renders the paste as a syntax
// highlighted HTML page, with the extension selecting the grammar.
//
// Configuration comes from a YAML file (--config or
// $PASTEHOUSE_CONFIG) or built-in defaults, with --upload-dir and
// --address overriding either. Logs are JSON on stderr.
package main
