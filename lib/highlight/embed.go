// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

package highlight

import _ "embed"

//go:generate go run ../../cmd/pastehouse catalog build --manifest resources/grammars.yaml --out resources/syntaxes.bin

//go:embed resources/syntaxes.bin
var embeddedSyntaxes []byte

//go:embed resources/ayu_dark.xml
var embeddedTheme []byte
