// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

// Package highlight renders paste content as syntax-highlighted HTML.
//
// A [Catalog] holds a set of grammars and one color theme. The
// process-wide catalog is decoded once from two resources compiled
// into the binary: resources/syntaxes.bin (a zstd-compressed CBOR
// [Manifest] mapping tokens such as "rs" or "py" to chroma lexers) and
// resources/ayu_dark.xml (a chroma XML style). [LoadCatalog] returns
// it; [NewCatalog] builds independent catalogs for tests and tools.
// The blob is regenerated from resources/grammars.yaml with
// `go generate`.
//
// [Render] looks up a grammar with [Catalog.Find], which falls back to
// plain text for unknown tokens, and produces a single <pre> element
// with inline styles. Whitespace in the content is preserved exactly.
// [Document] wraps a fragment in a standalone page.
//
// Every error is an [Error] carrying one [ErrorKind]. Theme and
// grammar loading errors only come from catalog construction and are
// fatal at startup; per-call errors are KindIO (from [RenderArtifact])
// and KindInvalidSyntax.
package highlight
