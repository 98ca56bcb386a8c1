package engine_test

import (
	"errors"
	"testing"

	"github.com/warp/payroll-engine/engine"
)

// =============================================================================
// PARSE CLOCK
// =============================================================================

func TestParseClock_ValidTimes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"17:30", 1050},
		{"23:59", 1439},
	}
	for _, tc := range cases {
		got, err := engine.ParseClock(tc.in)
		if err != nil {
			t.Errorf("ParseClock(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseClock_MalformedInputFailsExplicitly(t *testing.T) {
	// Malformed time strings must be rejected before any arithmetic,
	// never silently parsed.
	for _, in := range []string{
		"", "9:00", "09:0", "24:00", "12:60", "12-30", "ab:cd", "12:30:00", "-1:30",
	} {
		_, err := engine.ParseClock(in)
		if !errors.Is(err, engine.ErrInvalidTimeFormat) {
			t.Errorf("ParseClock(%q): want ErrInvalidTimeFormat, got %v", in, err)
		}
	}
}

// =============================================================================
// WINDOW DURATION
// =============================================================================

func TestWindowMinutes(t *testing.T) {
	cases := []struct {
		name       string
		start, end int
		want       int
	}{
		{"same-day shift", 540, 1020, 480},           // 09:00-17:00
		{"midnight crossing", 1320, 360, 480},        // 22:00-06:00
		{"zero-length window", 540, 540, 0},          // not 24 hours
		{"one minute before wrap", 0, 1439, 1439},    // 00:00-23:59
	}
	for _, tc := range cases {
		got, err := engine.WindowMinutes(tc.start, tc.end)
		if err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestWindowMinutes_RejectsOutOfRangeOffsets(t *testing.T) {
	for _, tc := range [][2]int{{-1, 100}, {100, 1440}, {2000, 100}} {
		_, err := engine.WindowMinutes(tc[0], tc[1])
		if !errors.Is(err, engine.ErrWindowOutOfRange) {
			t.Errorf("WindowMinutes(%d, %d): want ErrWindowOutOfRange, got %v", tc[0], tc[1], err)
		}
	}
}

// =============================================================================
// OVERLAP
// =============================================================================

func TestOverlap_SameDayWindows(t *testing.T) {
	// GIVEN: 09:00-17:00 and 12:00-20:00
	// THEN: they share 12:00-17:00 = 300 minutes
	got, err := engine.Overlap(540, 1020, 720, 1200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 300 {
		t.Errorf("got %d, want 300", got)
	}
}

func TestOverlap_DisjointWindowsShareNothing(t *testing.T) {
	got, err := engine.Overlap(540, 720, 780, 1020)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}

func TestOverlap_WindowWithItselfEqualsDuration(t *testing.T) {
	for _, w := range [][2]int{{540, 1020}, {1320, 360}, {0, 1439}} {
		got, err := engine.Overlap(w[0], w[1], w[0], w[1])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want, _ := engine.WindowMinutes(w[0], w[1])
		if got != want {
			t.Errorf("overlap(%v, self) = %d, want duration %d", w, got, want)
		}
	}
}

func TestOverlap_Symmetric(t *testing.T) {
	windows := [][2]int{{540, 1020}, {1320, 360}, {0, 360}, {1200, 240}}
	for _, a := range windows {
		for _, b := range windows {
			ab, err := engine.Overlap(a[0], a[1], b[0], b[1])
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			ba, err := engine.Overlap(b[0], b[1], a[0], a[1])
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ab != ba {
				t.Errorf("overlap(%v, %v) = %d but overlap(%v, %v) = %d", a, b, ab, b, a, ba)
			}
		}
	}
}

func TestOverlap_NightShiftAgainstEarlyMorningPremium(t *testing.T) {
	// GIVEN: a 22:00-06:00 shift and a 00:00-06:00 premium window
	// THEN: the premium hours land on the shift's second nominal day but
	//       still count - 6 hours of overlap
	got, err := engine.Overlap(1320, 360, 0, 360)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 360 {
		t.Errorf("got %d minutes, want 360", got)
	}
}

func TestOverlap_BothWindowsCrossMidnight(t *testing.T) {
	// 20:00-04:00 shift against a 23:00-06:00 premium: share 23:00-04:00.
	got, err := engine.Overlap(1200, 240, 1380, 360)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 300 {
		t.Errorf("got %d minutes, want 300", got)
	}
}

func TestOverlap_RejectsOutOfRangeOffsets(t *testing.T) {
	_, err := engine.Overlap(0, 1440, 0, 360)
	if !errors.Is(err, engine.ErrWindowOutOfRange) {
		t.Errorf("want ErrWindowOutOfRange, got %v", err)
	}
}
