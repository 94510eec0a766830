// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the paste
// retrieval server.
//
// Configuration is loaded from a single file specified by either the
// PASTEHOUSE_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). There is no automatic file search. Without a
// file, the server runs on [Default] plus command-line flags.
//
// The configuration file supports environment-specific sections
// (development, staging, production) that override base values when
// [Config].Environment matches.
//
// ${VAR} and ${VAR:-default} patterns are expanded in paths.upload_dir
// after loading. No other environment variables override config
// values.
//
// This package depends on no other Pastehouse packages.
package config
