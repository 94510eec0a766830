// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeNowStandsStill(t *testing.T) {
	c := Fake(epoch)
	if got := c.Now(); !got.Equal(epoch) {
		t.Fatalf("Now() = %v, want %v", got, epoch)
	}
	if got := c.Now(); !got.Equal(epoch) {
		t.Fatalf("second Now() = %v, want %v", got, epoch)
	}
}

func TestFakeAdvance(t *testing.T) {
	c := Fake(epoch)
	c.Advance(5 * time.Second)
	if got := Since(c, epoch); got != 5*time.Second {
		t.Fatalf("Since(epoch) = %v, want 5s", got)
	}
}

func TestFakeAdvanceNegativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for negative Advance")
		}
	}()
	Fake(epoch).Advance(-time.Second)
}

func TestFakeSet(t *testing.T) {
	c := Fake(epoch)
	earlier := epoch.Add(-time.Hour)
	c.Set(earlier)
	if got := c.Now(); !got.Equal(earlier) {
		t.Fatalf("Now() after Set = %v, want %v", got, earlier)
	}
}

func TestFakeAutoAdvance(t *testing.T) {
	c := Fake(epoch)
	c.AutoAdvance(250 * time.Millisecond)

	start := c.Now()
	if !start.Equal(epoch) {
		t.Fatalf("first Now() = %v, want %v", start, epoch)
	}
	if got := Since(c, start); got != 250*time.Millisecond {
		t.Fatalf("Since(start) = %v, want 250ms", got)
	}
}

func TestFakeConcurrentAdvance(t *testing.T) {
	c := Fake(epoch)
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Advance(time.Millisecond)
			_ = c.Now()
		}()
	}
	wg.Wait()
	if got := Since(c, epoch); got != 50*time.Millisecond {
		t.Fatalf("Since(epoch) = %v, want 50ms", got)
	}
}

func TestRealAdvances(t *testing.T) {
	c := Real()
	before := c.Now()
	if Since(c, before) < 0 {
		t.Fatal("real clock went backwards")
	}
}
