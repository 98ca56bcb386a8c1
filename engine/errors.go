/*
errors.go - Centralized error types for the payroll engine

PURPOSE:
  All validation errors in one place for consistency and discoverability.
  Every error here is detected before any bucket or tax arithmetic runs;
  the engine never returns a partially computed Result.

ERROR CATEGORIES:
  1. Format errors   - Malformed time or date strings
  2. Input errors    - Negative wages, breaks, out-of-range windows
  3. Lookup errors   - Unknown jurisdiction or pay frequency
  4. Rule errors     - Malformed rule tables (caught at load time)

USAGE:
  Callers can branch on sentinels:

    if errors.Is(err, engine.ErrUnknownJurisdiction) {
        // 400 with the list of valid codes
    }

SEE ALSO:
  - clock.go: Returns TimeFormatError / WindowError
  - payroll.go: Returns MoneyError and lookup errors
  - rule.go: Returns rule-table validation errors
*/
package engine

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidTimeFormat is returned for a time-of-day string that is not
	// valid 24-hour "HH:MM".
	ErrInvalidTimeFormat = errors.New("invalid time format")

	// ErrInvalidDate is returned for a timesheet date that is not "YYYY-MM-DD".
	ErrInvalidDate = errors.New("invalid date")

	// ErrWindowOutOfRange is returned when a minute offset falls outside a
	// single 24-hour cycle. Overlap arithmetic only handles windows that
	// start within one nominal day and span less than 24 hours.
	ErrWindowOutOfRange = errors.New("time window out of range")

	// ErrInvalidWage is returned for a negative hourly wage or premium rate.
	ErrInvalidWage = errors.New("invalid wage")

	// ErrInvalidSalary is returned for a negative annual salary.
	ErrInvalidSalary = errors.New("invalid salary")

	// ErrInvalidBreak is returned for a negative unpaid break duration.
	ErrInvalidBreak = errors.New("invalid unpaid break")

	// ErrUnknownJurisdiction is returned when a province/territory code is
	// not in the rule set. Every mode treats this as a hard error; there is
	// no silent fallback jurisdiction.
	ErrUnknownJurisdiction = errors.New("unknown jurisdiction")

	// ErrUnknownPayFrequency is returned for a frequency outside the
	// recognized periods-per-year table.
	ErrUnknownPayFrequency = errors.New("unknown pay frequency")

	// ErrInvalidRuleSet is returned when a rule table fails validation
	// (unsorted brackets, missing unbounded bracket, negative rates).
	ErrInvalidRuleSet = errors.New("invalid rule set")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// TimeFormatError reports the offending time-of-day string.
type TimeFormatError struct {
	Input string
}

func (e *TimeFormatError) Error() string {
	return fmt.Sprintf("invalid time format %q: want 24-hour HH:MM", e.Input)
}

func (e *TimeFormatError) Unwrap() error { return ErrInvalidTimeFormat }

// DateError reports the offending timesheet date string.
type DateError struct {
	Input string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date %q: want YYYY-MM-DD", e.Input)
}

func (e *DateError) Unwrap() error { return ErrInvalidDate }

// WindowError reports a minute offset outside [0, 1440).
type WindowError struct {
	Minute int
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("minute offset %d outside a single 24-hour cycle", e.Minute)
}

func (e *WindowError) Unwrap() error { return ErrWindowOutOfRange }

// MoneyError reports a monetary input that failed validation. Kind is one
// of ErrInvalidWage or ErrInvalidSalary.
type MoneyError struct {
	Field string
	Value decimal.Decimal
	Kind  error
}

func (e *MoneyError) Error() string {
	return fmt.Sprintf("%s: %s = %s", e.Kind, e.Field, e.Value)
}

func (e *MoneyError) Unwrap() error { return e.Kind }

// UnknownJurisdictionError reports a code missing from the rule set.
type UnknownJurisdictionError struct {
	Code string
}

func (e *UnknownJurisdictionError) Error() string {
	return fmt.Sprintf("unknown jurisdiction %q", e.Code)
}

func (e *UnknownJurisdictionError) Unwrap() error { return ErrUnknownJurisdiction }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input
// rather than an engine defect.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidTimeFormat) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrWindowOutOfRange) ||
		errors.Is(err, ErrInvalidWage) ||
		errors.Is(err, ErrInvalidSalary) ||
		errors.Is(err, ErrInvalidBreak) ||
		errors.Is(err, ErrUnknownJurisdiction) ||
		errors.Is(err, ErrUnknownPayFrequency)
}
