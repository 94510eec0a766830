// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"fmt"
	"io"
	"os"
)

// exit is swapped out in tests.
var exit = os.Exit

// Fatal writes "error: err" to stderr and exits with code 1. Use it in
// main() for errors from run() where the structured logger may not be
// initialized.
func Fatal(err error) {
	fatal(os.Stderr, err)
}

func fatal(stderr io.Writer, err error) {
	fmt.Fprintf(stderr, "error: %v\n", err)
	exit(1)
}
