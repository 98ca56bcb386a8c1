/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's decimal-based domain model from the external API contract:
  money and hours cross the wire as float64, the engine computes in
  decimal, and conversion happens only here.

NAMING CONVENTION:
  - *Request: Request body types from clients
  - *DTO: Response types returned to clients

VALIDATION:
  DTOs are pure data carriers. Numeric sanity (NaN/Inf) is checked during
  conversion to decimal, before anything reaches the engine; everything
  else is the engine's job.

SEE ALSO:
  - handlers.go: Uses these types
  - engine/types.go: The domain model these map to
*/
package api

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/engine"
	"github.com/warp/payroll-engine/store/sqlite"
)

// =============================================================================
// CALCULATION REQUESTS
// =============================================================================

// HourlyRequest drives the hourly-schedule mode.
type HourlyRequest struct {
	Province           string      `json:"province"`
	HourlyWage         float64     `json:"hourly_wage"`
	StartTime          string      `json:"start_time"`
	EndTime            string      `json:"end_time"`
	UnpaidBreakMinutes int         `json:"unpaid_break_minutes"`
	DaysActive         [7]bool     `json:"days_active"` // Sunday..Saturday
	Premium            *PremiumDTO `json:"premium,omitempty"`
	IncludeVacationPay bool        `json:"include_vacation_pay"`

	UserID     string `json:"user_id,omitempty"`     // persist history when set
	WithAdvice bool   `json:"with_advice,omitempty"` // dispatch narrative advice
}

// PremiumDTO is an optional premium window on an hourly request.
type PremiumDTO struct {
	RatePerHour float64 `json:"rate_per_hour"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
}

// SalaryRequest drives the annual-salary mode.
type SalaryRequest struct {
	Province     string  `json:"province"`
	AnnualSalary float64 `json:"annual_salary"`
	PayFrequency string  `json:"pay_frequency"`

	UserID     string `json:"user_id,omitempty"`
	WithAdvice bool   `json:"with_advice,omitempty"`
}

// TimesheetRequest drives the timesheet-log mode.
type TimesheetRequest struct {
	Province     string              `json:"province"`
	HourlyWage   float64             `json:"hourly_wage"`
	PayFrequency string              `json:"pay_frequency"`
	Entries      []TimesheetEntryDTO `json:"entries"`

	UserID     string `json:"user_id,omitempty"`
	WithAdvice bool   `json:"with_advice,omitempty"`
}

// TimesheetEntryDTO is one punch-clock entry, both in calculation requests
// and in the stored-timesheet endpoints.
type TimesheetEntryDTO struct {
	ID                 string `json:"id,omitempty"`
	Date               string `json:"date"`
	CheckIn            string `json:"check_in"`
	CheckOut           string `json:"check_out"`
	UnpaidBreakMinutes int    `json:"unpaid_break_minutes"`
	Notes              string `json:"notes,omitempty"`
}

// =============================================================================
// RESPONSES
// =============================================================================

// HourBucketsDTO reports classified hours for the pay period.
type HourBucketsDTO struct {
	Regular    float64 `json:"regular"`
	Overtime15 float64 `json:"overtime_1_5x"`
	Overtime20 float64 `json:"overtime_2_0x"`
	Premium    float64 `json:"premium"`
}

// ResultDTO is the common calculation response. Hours is omitted for the
// salary mode, which never classifies hours.
type ResultDTO struct {
	Hours        *HourBucketsDTO `json:"hours,omitempty"`
	PayFrequency string          `json:"pay_frequency"`

	GrossPerPeriod         float64 `json:"gross_per_period"`
	FederalTaxPerPeriod    float64 `json:"federal_tax_per_period"`
	ProvincialTaxPerPeriod float64 `json:"provincial_tax_per_period"`
	PensionPerPeriod       float64 `json:"pension_per_period"`
	InsurancePerPeriod     float64 `json:"insurance_per_period"`
	NetPerPeriod           float64 `json:"net_per_period"`

	GrossAnnual           float64 `json:"gross_annual"`
	NetAnnual             float64 `json:"net_annual"`
	TotalDeductionsAnnual float64 `json:"total_deductions_annual"`
}

// JurisdictionDTO summarizes one province/territory's rules.
type JurisdictionDTO struct {
	Code                string       `json:"code"`
	Name                string       `json:"name"`
	DailyOTThreshold    *float64     `json:"daily_ot_threshold,omitempty"`
	WeeklyOTThreshold   float64      `json:"weekly_ot_threshold"`
	OvertimeMultiplier  float64      `json:"overtime_multiplier"`
	DoubleTimeThreshold *float64     `json:"double_time_threshold,omitempty"`
	VacationPayRate     float64      `json:"vacation_pay_rate"`
	BasicPersonalAmount float64      `json:"basic_personal_amount"`
	Brackets            []BracketDTO `json:"brackets"`
}

// BracketDTO is one tax bracket; UpTo is omitted on the unbounded one.
type BracketDTO struct {
	UpTo *float64 `json:"up_to,omitempty"`
	Rate float64  `json:"rate"`
}

// FrequencyDTO is one row of the periods-per-year contract table.
type FrequencyDTO struct {
	Frequency      string `json:"frequency"`
	PeriodsPerYear int64  `json:"periods_per_year"`
}

// CalculationRecordDTO is one saved calculation in history listings.
type CalculationRecordDTO struct {
	ID        string `json:"id"`
	Mode      string `json:"mode"`
	Inputs    any    `json:"inputs"`
	Results   any    `json:"results"`
	CreatedAt string `json:"created_at"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

// decFromFloat guards the float64 -> decimal edge: NaN and Inf are the
// JSON-side face of "non-numeric input" and must fail validation before
// the engine sees them (decimal.NewFromFloat panics on both).
func decFromFloat(field string, v float64, kind error) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Decimal{}, &engine.MoneyError{Field: field, Kind: kind}
	}
	return decimal.NewFromFloat(v), nil
}

func toResultDTO(res *engine.Result) ResultDTO {
	dto := ResultDTO{
		PayFrequency: string(res.Frequency),

		GrossPerPeriod:         res.GrossPerPeriod.InexactFloat64(),
		FederalTaxPerPeriod:    res.FederalTaxPerPeriod.InexactFloat64(),
		ProvincialTaxPerPeriod: res.ProvincialTaxPerPeriod.InexactFloat64(),
		PensionPerPeriod:       res.PensionPerPeriod.InexactFloat64(),
		InsurancePerPeriod:     res.InsurancePerPeriod.InexactFloat64(),
		NetPerPeriod:           res.NetPerPeriod.InexactFloat64(),

		GrossAnnual:           res.GrossAnnual.InexactFloat64(),
		NetAnnual:             res.NetAnnual.InexactFloat64(),
		TotalDeductionsAnnual: res.TotalDeductionsAnnual.InexactFloat64(),
	}
	if res.Hours != nil {
		dto.Hours = &HourBucketsDTO{
			Regular:    res.Hours.Regular.InexactFloat64(),
			Overtime15: res.Hours.Overtime15.InexactFloat64(),
			Overtime20: res.Hours.Overtime20.InexactFloat64(),
			Premium:    res.Hours.Premium.InexactFloat64(),
		}
	}
	return dto
}

func toJurisdictionDTO(j engine.JurisdictionRule) JurisdictionDTO {
	dto := JurisdictionDTO{
		Code:                j.Code,
		Name:                j.Name,
		WeeklyOTThreshold:   j.WeeklyOTThreshold.InexactFloat64(),
		OvertimeMultiplier:  j.OvertimeMultiplier.InexactFloat64(),
		VacationPayRate:     j.VacationPayRate.InexactFloat64(),
		BasicPersonalAmount: j.BasicPersonalAmount.InexactFloat64(),
	}
	if j.DailyOTThreshold != nil {
		v := j.DailyOTThreshold.InexactFloat64()
		dto.DailyOTThreshold = &v
	}
	if j.DoubleTimeThreshold != nil {
		v := j.DoubleTimeThreshold.InexactFloat64()
		dto.DoubleTimeThreshold = &v
	}
	for _, b := range j.Brackets {
		bd := BracketDTO{Rate: b.Rate.InexactFloat64()}
		if b.Upper != nil {
			v := b.Upper.InexactFloat64()
			bd.UpTo = &v
		}
		dto.Brackets = append(dto.Brackets, bd)
	}
	return dto
}

func toTimesheetEntryDTO(rec sqlite.TimesheetRecord) TimesheetEntryDTO {
	return TimesheetEntryDTO{
		ID:                 rec.ID,
		Date:               rec.Date,
		CheckIn:            rec.CheckIn,
		CheckOut:           rec.CheckOut,
		UnpaidBreakMinutes: rec.UnpaidBreakMinutes,
		Notes:              rec.Notes,
	}
}

func formatCreatedAt(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
