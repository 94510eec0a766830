// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

// Package pasteresponse turns a [pastestore.Outcome] into one of four
// response shapes: raw content, MIME-typed content, not found, or
// server error.
//
// MIME types come from a static extension table ([MIMEByExtension]),
// never from sniffing content. Every shape exposes the artifact's
// modification time so the transport layer can set freshness headers;
// [ETag] derives a matching entity tag without reading the artifact.
package pasteresponse
