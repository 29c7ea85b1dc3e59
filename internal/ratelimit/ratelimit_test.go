package ratelimit

import (
	"testing"
	"time"
)

func fixedClock(t *time.Time) func() time.Time {
	return func() time.Time { return *t }
}

func TestAllowWithinLimit(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory(5, 10*time.Minute)
	m.now = fixedClock(&now)

	for i := 0; i < 5; i++ {
		if !m.Allow("1.2.3.4") {
			t.Fatalf("submission %d should be allowed", i+1)
		}
	}
	if m.Allow("1.2.3.4") {
		t.Fatal("sixth submission within the window should be rejected")
	}
}

func TestWindowStartsAtFirstSubmission(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory(5, 10*time.Minute)
	m.now = fixedClock(&now)

	m.Allow("ip")
	// 9 minutes in: still the same window.
	now = now.Add(9 * time.Minute)
	for i := 0; i < 4; i++ {
		if !m.Allow("ip") {
			t.Fatalf("submission %d should be allowed", i+2)
		}
	}
	if m.Allow("ip") {
		t.Fatal("limit should still apply inside the window")
	}
}

func TestWindowReset(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory(5, 10*time.Minute)
	m.now = fixedClock(&now)

	for i := 0; i < 5; i++ {
		m.Allow("ip")
	}
	if m.Allow("ip") {
		t.Fatal("expected rejection before the window elapsed")
	}

	now = now.Add(10 * time.Minute)
	if !m.Allow("ip") {
		t.Fatal("expected a fresh window after the period elapsed")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory(1, 10*time.Minute)
	m.now = fixedClock(&now)

	if !m.Allow("a") {
		t.Fatal("first key should be allowed")
	}
	if m.Allow("a") {
		t.Fatal("first key should now be limited")
	}
	if !m.Allow("b") {
		t.Fatal("second key has its own window")
	}
}

func TestPurgeDropsExpiredWindows(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory(5, 10*time.Minute)
	m.now = fixedClock(&now)

	m.Allow("old")
	now = now.Add(11 * time.Minute)
	m.Allow("fresh")

	if removed := m.Purge(); removed != 1 {
		t.Fatalf("expected 1 expired window purged, got %d", removed)
	}
	if len(m.entries) != 1 {
		t.Fatalf("expected 1 entry left, got %d", len(m.entries))
	}
}
