package engine_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/engine"
	"github.com/warp/payroll-engine/rules"
)

func entry(date, in, out string, breakMin int) engine.TimesheetEntry {
	return engine.TimesheetEntry{
		Date:               date,
		CheckIn:            in,
		CheckOut:           out,
		UnpaidBreakMinutes: breakMin,
	}
}

func TestCalculateTimesheet_SingleWeekWithWeeklyOvertime(t *testing.T) {
	// GIVEN: Ontario, $20/hr, five 9-hour days in one ISO week (Mon
	//        2025-01-06 through Fri 2025-01-10)
	// THEN: 45 hours against the 44-hour weekly threshold -> 44 regular
	//       + 1 at 1.5x; period gross 44*20 + 1*30 = 910; weekly
	//       frequency annualizes to 910 * 52 = 47320
	in := engine.TimesheetInput{
		Jurisdiction: "ON",
		HourlyWage:   decimal.NewFromInt(20),
		Frequency:    engine.FrequencyWeekly,
		Entries: []engine.TimesheetEntry{
			entry("2025-01-06", "08:00", "17:00", 0),
			entry("2025-01-07", "08:00", "17:00", 0),
			entry("2025-01-08", "08:00", "17:00", 0),
			entry("2025-01-09", "08:00", "17:00", 0),
			entry("2025-01-10", "08:00", "17:00", 0),
		},
	}
	res, err := engine.CalculateTimesheet(in, rules.Canada())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.Hours.Regular.Equal(decimal.NewFromInt(44)) {
		t.Errorf("regular hours = %s, want 44", res.Hours.Regular)
	}
	if !res.Hours.Overtime15.Equal(decimal.NewFromInt(1)) {
		t.Errorf("1.5x hours = %s, want 1", res.Hours.Overtime15)
	}
	if !res.GrossPerPeriod.Equal(decimal.NewFromInt(910)) {
		t.Errorf("period gross = %s, want 910", res.GrossPerPeriod)
	}
	if !res.GrossAnnual.Equal(decimal.NewFromInt(47320)) {
		t.Errorf("annual gross = %s, want 47320", res.GrossAnnual)
	}
}

func TestCalculateTimesheet_EntriesGroupByISOWeek(t *testing.T) {
	// GIVEN: six 8-hour days, but Fri 2025-01-10 and Mon 2025-01-13 fall
	//        in different ISO weeks
	// THEN: neither week crosses Ontario's 44-hour threshold, so all 48
	//       hours stay regular
	in := engine.TimesheetInput{
		Jurisdiction: "ON",
		HourlyWage:   decimal.NewFromInt(20),
		Frequency:    engine.FrequencyBiWeekly,
		Entries: []engine.TimesheetEntry{
			entry("2025-01-07", "09:00", "17:00", 0),
			entry("2025-01-08", "09:00", "17:00", 0),
			entry("2025-01-09", "09:00", "17:00", 0),
			entry("2025-01-10", "09:00", "17:00", 0),
			entry("2025-01-13", "09:00", "17:00", 0),
			entry("2025-01-14", "09:00", "17:00", 0),
		},
	}
	res, err := engine.CalculateTimesheet(in, rules.Canada())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.Hours.Regular.Equal(decimal.NewFromInt(48)) {
		t.Errorf("regular hours = %s, want 48", res.Hours.Regular)
	}
	if !res.Hours.Overtime15.IsZero() {
		t.Errorf("1.5x hours = %s, want 0", res.Hours.Overtime15)
	}
}

func TestCalculateTimesheet_SameDateEntriesSumBeforeClassification(t *testing.T) {
	// GIVEN: Alberta (8-hour daily threshold) and a split shift of
	//        5 + 5 hours on one date
	// THEN: the date classifies as a single 10-hour day: 8 regular + 2 OT
	in := engine.TimesheetInput{
		Jurisdiction: "AB",
		HourlyWage:   decimal.NewFromInt(25),
		Frequency:    engine.FrequencyWeekly,
		Entries: []engine.TimesheetEntry{
			entry("2025-03-04", "06:00", "11:00", 0),
			entry("2025-03-04", "15:00", "20:00", 0),
		},
	}
	res, err := engine.CalculateTimesheet(in, rules.Canada())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.Hours.Regular.Equal(decimal.NewFromInt(8)) {
		t.Errorf("regular hours = %s, want 8", res.Hours.Regular)
	}
	if !res.Hours.Overtime15.Equal(decimal.NewFromInt(2)) {
		t.Errorf("1.5x hours = %s, want 2", res.Hours.Overtime15)
	}
}

func TestCalculateTimesheet_MidnightShiftAttributedToStartDate(t *testing.T) {
	// A 22:00-06:00 punch is 8 hours on the date it starts.
	in := engine.TimesheetInput{
		Jurisdiction: "ON",
		HourlyWage:   decimal.NewFromInt(20),
		Frequency:    engine.FrequencyWeekly,
		Entries: []engine.TimesheetEntry{
			entry("2025-05-02", "22:00", "06:00", 0),
		},
	}
	res, err := engine.CalculateTimesheet(in, rules.Canada())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Hours.Total().Equal(decimal.NewFromInt(8)) {
		t.Errorf("total hours = %s, want 8", res.Hours.Total())
	}
}

func TestCalculateTimesheet_EmptyLogDegradesToZero(t *testing.T) {
	res, err := engine.CalculateTimesheet(engine.TimesheetInput{
		Jurisdiction: "NS",
		HourlyWage:   decimal.NewFromInt(20),
		Frequency:    engine.FrequencyMonthly,
	}, rules.Canada())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.GrossAnnual.IsZero() || !res.NetAnnual.IsZero() {
		t.Errorf("want zero-valued result, got gross=%s net=%s", res.GrossAnnual, res.NetAnnual)
	}
}

func TestCalculateTimesheet_RejectsBadEntries(t *testing.T) {
	rs := rules.Canada()
	base := engine.TimesheetInput{
		Jurisdiction: "ON",
		HourlyWage:   decimal.NewFromInt(20),
		Frequency:    engine.FrequencyWeekly,
	}

	bad := base
	bad.Entries = []engine.TimesheetEntry{entry("01/06/2025", "09:00", "17:00", 0)}
	if _, err := engine.CalculateTimesheet(bad, rs); !errors.Is(err, engine.ErrInvalidDate) {
		t.Errorf("slash date: want ErrInvalidDate, got %v", err)
	}

	bad = base
	bad.Entries = []engine.TimesheetEntry{entry("2025-01-06", "9am", "17:00", 0)}
	if _, err := engine.CalculateTimesheet(bad, rs); !errors.Is(err, engine.ErrInvalidTimeFormat) {
		t.Errorf("clock: want ErrInvalidTimeFormat, got %v", err)
	}

	bad = base
	bad.Entries = []engine.TimesheetEntry{entry("2025-01-06", "09:00", "17:00", -15)}
	if _, err := engine.CalculateTimesheet(bad, rs); !errors.Is(err, engine.ErrInvalidBreak) {
		t.Errorf("break: want ErrInvalidBreak, got %v", err)
	}
}
