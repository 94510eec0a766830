// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package pastestore

import (
	"os"

	"golang.org/x/sys/unix"
)

// adviseSequential tells the kernel the artifact will be read front to
// back so readahead is widened. The advice is best-effort; the file
// reads the same without it.
func adviseSequential(file *os.File) {
	rawConn, err := file.SyscallConn()
	if err != nil {
		return
	}
	_ = rawConn.Control(func(fd uintptr) {
		_ = unix.Fadvise(int(fd), 0, 0, unix.FADV_SEQUENTIAL)
	})
}
