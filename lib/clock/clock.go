// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock abstracts the wall clock for testability. Production code
// injects Real(); tests inject Fake() with deterministic time control.
//
// Request timing (access-log durations, render latency) reads the
// clock through this interface instead of calling time.Now directly.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// Since returns the time elapsed on c since start.
func Since(c Clock, start time.Time) time.Duration {
	return c.Now().Sub(start)
}
