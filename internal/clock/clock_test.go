package clock

import (
	"sort"
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	clock := &RealClock{}

	before := time.Now()
	actual := clock.Now()
	after := time.Now()

	if actual.Before(before) || actual.After(after) {
		t.Errorf("RealClock.Now() returned time outside expected range: got %v, expected between %v and %v", actual, before, after)
	}
}

func TestFakeClock_Now(t *testing.T) {
	fixedTime := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	t.Run("zero step returns fixed time", func(t *testing.T) {
		clock := NewFakeClock(fixedTime)
		first := clock.Now()
		second := clock.Now()
		if !first.Equal(fixedTime) || !second.Equal(fixedTime) {
			t.Errorf("FakeClock.Now() = %v, %v, want %v", first, second, fixedTime)
		}
	})

	t.Run("step advances after each call", func(t *testing.T) {
		clock := NewFakeClock(fixedTime)
		clock.Step = time.Second
		first := clock.Now()
		second := clock.Now()
		if second.Sub(first) != time.Second {
			t.Errorf("expected 1s between calls, got %v", second.Sub(first))
		}
	})
}

func TestFakeClock_SetAndAdvance(t *testing.T) {
	clock := NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	newTime := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	clock.Set(newTime)
	clock.Advance(2 * time.Hour)

	want := newTime.Add(2 * time.Hour)
	if got := clock.Now(); !got.Equal(want) {
		t.Errorf("Now() = %v, want %v", got, want)
	}
}

func TestStamp(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	clock := NewFakeClock(time.Date(2026, 10, 18, 14, 5, 9, 42, loc))

	if got, want := Stamp(clock), "20261018T120509.000000042"; got != want {
		t.Errorf("Stamp() = %q, want %q", got, want)
	}
}

func TestStamp_SortsChronologically(t *testing.T) {
	clock := NewFakeClock(time.Date(2026, 1, 1, 23, 59, 59, 999999999, time.UTC))
	clock.Step = time.Nanosecond

	stamps := []string{Stamp(clock), Stamp(clock), Stamp(clock)}
	if !sort.StringsAreSorted(stamps) {
		t.Errorf("stamps not sorted: %v", stamps)
	}
}
