/*
Package engine provides the core payroll computation engine.

PURPOSE:
  This package contains the pure calculation logic for Canadian payroll
  estimation: hours classification (regular / overtime / double-time),
  progressive tax-bracket arithmetic, capped statutory contributions, and
  the three calculation modes (hourly schedule, annual salary, timesheet).

KEY CONCEPTS IN THIS FILE (types.go):
  - PayFrequency: How often a worker is paid; fixes periods-per-year
  - HourBuckets: Classified hours for a pay period
  - HourlyInput / SalaryInput / TimesheetInput: One input record per mode
  - Result: The common output shape shared by all modes

DESIGN PRINCIPLES:
  1. Purity: Every calculation is a function of (input, rule set) only.
     No I/O, no shared state, safe for unbounded parallelism.
  2. Precision: Uses decimal.Decimal to avoid floating-point errors in
     money and hour arithmetic. Callers convert to float64 at the edge.
  3. Fail-fast validation: Malformed input aborts before any arithmetic;
     a Result is never partially computed.

USAGE:
  res, err := engine.CalculateSalary(engine.SalaryInput{
      Jurisdiction: "ON",
      AnnualSalary: decimal.NewFromInt(100000),
      Frequency:    engine.FrequencyBiWeekly,
  }, rules.Canada())

SEE ALSO:
  - rule.go: Jurisdiction / federal / contribution rule types
  - hours.go: Daily and weekly overtime classification
  - payroll.go: The three modes and the shared deduction pipeline
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// PAY FREQUENCY - Periods-per-year contract
// =============================================================================

// PayFrequency selects how per-period figures are derived from annual ones.
// The periods-per-year mapping is part of the public contract: result
// scaling depends on it.
type PayFrequency string

const (
	FrequencyDaily       PayFrequency = "daily"
	FrequencyWeekly      PayFrequency = "weekly"
	FrequencyBiWeekly    PayFrequency = "bi-weekly"
	FrequencySemiMonthly PayFrequency = "semi-monthly"
	FrequencyMonthly     PayFrequency = "monthly"
	FrequencyQuarterly   PayFrequency = "quarterly"
)

var frequencyPeriods = map[PayFrequency]int64{
	FrequencyDaily:       365,
	FrequencyWeekly:      52,
	FrequencyBiWeekly:    26,
	FrequencySemiMonthly: 24,
	FrequencyMonthly:     12,
	FrequencyQuarterly:   4,
}

// PeriodsPerYear returns the number of pay periods in a year for this
// frequency, or false if the frequency is not recognized.
func (f PayFrequency) PeriodsPerYear() (int64, bool) {
	n, ok := frequencyPeriods[f]
	return n, ok
}

// Frequencies returns all recognized pay frequencies, most frequent first.
func Frequencies() []PayFrequency {
	return []PayFrequency{
		FrequencyDaily,
		FrequencyWeekly,
		FrequencyBiWeekly,
		FrequencySemiMonthly,
		FrequencyMonthly,
		FrequencyQuarterly,
	}
}

// =============================================================================
// HOUR BUCKETS - Classified hours for one pay period
// =============================================================================

// HourBuckets holds hours classified by pay rate for one pay period.
// Premium hours are an overlay: they are already counted in one of the
// other buckets and earn a flat add-on rate on top.
type HourBuckets struct {
	Regular    decimal.Decimal
	Overtime15 decimal.Decimal // paid at the jurisdiction's overtime multiplier
	Overtime20 decimal.Decimal // paid at double time
	Premium    decimal.Decimal // overlap with the premium window
}

// Total returns the classified hours (regular + OT), excluding the premium
// overlay. Invariant: equals the total paid hours fed to the classifier.
func (b HourBuckets) Total() decimal.Decimal {
	return b.Regular.Add(b.Overtime15).Add(b.Overtime20)
}

// Scale multiplies every bucket by n (e.g. one week -> two weeks).
func (b HourBuckets) Scale(n int64) HourBuckets {
	f := decimal.NewFromInt(n)
	return HourBuckets{
		Regular:    b.Regular.Mul(f),
		Overtime15: b.Overtime15.Mul(f),
		Overtime20: b.Overtime20.Mul(f),
		Premium:    b.Premium.Mul(f),
	}
}

func (b HourBuckets) add(o HourBuckets) HourBuckets {
	return HourBuckets{
		Regular:    b.Regular.Add(o.Regular),
		Overtime15: b.Overtime15.Add(o.Overtime15),
		Overtime20: b.Overtime20.Add(o.Overtime20),
		Premium:    b.Premium.Add(o.Premium),
	}
}

// =============================================================================
// MODE INPUTS - One record per calculation mode
// =============================================================================

// WeeklySchedule is a fixed repeating work week. Times are 24-hour "HH:MM"
// strings; DaysActive is indexed Sunday through Saturday.
type WeeklySchedule struct {
	StartTime          string
	EndTime            string
	UnpaidBreakMinutes int
	DaysActive         [7]bool
}

// PremiumWindow is a time-of-day range during which an hourly add-on rate
// applies on top of base and overtime pay (e.g. a night-shift premium).
type PremiumWindow struct {
	Enabled     bool
	RatePerHour decimal.Decimal
	StartTime   string
	EndTime     string
}

// HourlyInput drives Mode A: a fixed weekly schedule at an hourly wage,
// reported over a bi-weekly pay period.
type HourlyInput struct {
	Jurisdiction       string
	HourlyWage         decimal.Decimal
	Schedule           WeeklySchedule
	Premium            PremiumWindow
	IncludeVacationPay bool
}

// SalaryInput drives Mode B: a known annual gross salary.
type SalaryInput struct {
	Jurisdiction string
	AnnualSalary decimal.Decimal
	Frequency    PayFrequency
}

// TimesheetEntry is one raw punch-clock record. Date is "YYYY-MM-DD";
// check-in/check-out are 24-hour "HH:MM" and may cross midnight.
type TimesheetEntry struct {
	Date               string
	CheckIn            string
	CheckOut           string
	UnpaidBreakMinutes int
	Notes              string
}

// TimesheetInput drives Mode C: an unordered log of punch-clock entries
// covering one pay period.
type TimesheetInput struct {
	Jurisdiction string
	HourlyWage   decimal.Decimal
	Frequency    PayFrequency
	Entries      []TimesheetEntry
}

// =============================================================================
// RESULT - Common output shape for all modes
// =============================================================================

// Result is the outcome of one payroll calculation. Per-period figures are
// the annual figures divided by the frequency's periods-per-year.
//
// Hours is nil for the salary mode, which never classifies hours.
type Result struct {
	Hours     *HourBuckets
	Frequency PayFrequency

	GrossPerPeriod         decimal.Decimal
	FederalTaxPerPeriod    decimal.Decimal
	ProvincialTaxPerPeriod decimal.Decimal
	PensionPerPeriod       decimal.Decimal
	InsurancePerPeriod     decimal.Decimal
	NetPerPeriod           decimal.Decimal

	GrossAnnual           decimal.Decimal
	NetAnnual             decimal.Decimal
	TotalDeductionsAnnual decimal.Decimal
}
