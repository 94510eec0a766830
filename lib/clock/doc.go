// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable wall clock for testability.
//
// Production code accepts a Clock instead of calling time.Now
// directly. In production, Real() provides the standard library
// behavior. In tests, Fake() provides a clock that moves only when
// Advance or Set is called, or by a fixed step per reading when
// AutoAdvance is set:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	c.AutoAdvance(10 * time.Millisecond)
//	handler := service.RequestLogger(next, logger, c)
//	// every logged duration is exactly 10ms
package clock
