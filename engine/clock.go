package engine

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CLOCK ARITHMETIC - Minute-of-day offsets and window overlap
// =============================================================================

// MinutesPerDay is the length of the nominal day all windows live in.
const MinutesPerDay = 1440

var sixty = decimal.NewFromInt(60)

// ParseClock converts a 24-hour "HH:MM" string into minutes from midnight.
// Anything else, including "24:00", is rejected.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, &TimeFormatError{Input: s}
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, &TimeFormatError{Input: s}
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, &TimeFormatError{Input: s}
	}
	return h*60 + m, nil
}

// WindowMinutes returns the duration of a window given as minute-of-day
// offsets, unrolling a single midnight crossing. An end equal to the start
// is a zero-length window, not a 24-hour one.
func WindowMinutes(start, end int) (int, error) {
	if err := checkMinute(start); err != nil {
		return 0, err
	}
	if err := checkMinute(end); err != nil {
		return 0, err
	}
	d := end - start
	if d < 0 {
		d += MinutesPerDay
	}
	return d, nil
}

// Overlap returns the number of minutes two time-of-day windows share.
// Each window may cross midnight at most once. Because both windows recur
// daily, the second window is also tried shifted one day either way and
// the best alignment wins: a 22:00-06:00 shift overlaps a 00:00-06:00
// premium window for 6 hours, even though the premium hours land on the
// next nominal day. Offsets outside [0, 1440) are rejected outright
// rather than silently wrapped.
func Overlap(aStart, aEnd, bStart, bEnd int) (int, error) {
	for _, m := range [...]int{aStart, aEnd, bStart, bEnd} {
		if err := checkMinute(m); err != nil {
			return 0, err
		}
	}

	// Unroll midnight crossings by pushing the end into the next day.
	ae, be := aEnd, bEnd
	if ae < aStart {
		ae += MinutesPerDay
	}
	if be < bStart {
		be += MinutesPerDay
	}

	best := 0
	for _, shift := range [...]int{-MinutesPerDay, 0, MinutesPerDay} {
		start := max(aStart, bStart+shift)
		end := min(ae, be+shift)
		if end-start > best {
			best = end - start
		}
	}
	return best, nil
}

func checkMinute(m int) error {
	if m < 0 || m >= MinutesPerDay {
		return &WindowError{Minute: m}
	}
	return nil
}

// minutesToHours converts whole minutes into decimal hours (450 -> 7.5).
func minutesToHours(m int) decimal.Decimal {
	return decimal.NewFromInt(int64(m)).Div(sixty)
}
