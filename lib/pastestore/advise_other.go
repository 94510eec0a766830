// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !linux

package pastestore

import "os"

func adviseSequential(*os.File) {}
