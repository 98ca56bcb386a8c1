/*
payroll.go - Calculation modes and the shared deduction pipeline

PURPOSE:
  The three public entry points of the engine, one per calculation mode:

    CalculateHourly    Mode A: fixed weekly schedule at an hourly wage
    CalculateSalary    Mode B: known annual gross salary
    CalculateTimesheet Mode C: raw punch-clock log (timesheet.go)

  All modes converge on one annualized deduction pipeline, applied in a
  fixed order: pension -> insurance -> federal tax -> provincial tax.
  Net pay is derived by subtraction, so the books always balance:
  NetAnnual == GrossAnnual - (fed + prov + pension + insurance), exactly.

VALIDATION:
  Each mode validates its whole input before any arithmetic. Unknown
  jurisdictions are a hard error in every mode; the engine has no default
  province. Zero wages or zero hours degrade to zero-valued results.

SEE ALSO:
  - hours.go: Overtime classification the hourly/timesheet modes drive
  - tax.go: Progressive bracket arithmetic
  - rule.go: The static tables every step reads
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// Double time is a fixed 2.0x of base wage in every jurisdiction that has it.
var doubleTimeRate = decimal.NewFromInt(2)

const weeksPerBiWeeklyPeriod = 2

// =============================================================================
// MODE A - HOURLY SCHEDULE
// =============================================================================

// CalculateHourly estimates pay from a fixed weekly schedule. One week is
// classified, scaled to the bi-weekly pay period, priced with the
// jurisdiction's overtime multipliers and any premium-window overlap, then
// annualized over 26 periods and fed through the deduction pipeline.
func CalculateHourly(in HourlyInput, rs *RuleSet) (*Result, error) {
	j, err := rs.Resolve(in.Jurisdiction)
	if err != nil {
		return nil, err
	}
	if in.HourlyWage.IsNegative() {
		return nil, &MoneyError{Field: "hourly_wage", Value: in.HourlyWage, Kind: ErrInvalidWage}
	}
	if in.Schedule.UnpaidBreakMinutes < 0 {
		return nil, ErrInvalidBreak
	}

	start, err := ParseClock(in.Schedule.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := ParseClock(in.Schedule.EndTime)
	if err != nil {
		return nil, err
	}
	worked, err := WindowMinutes(start, end)
	if err != nil {
		return nil, err
	}

	paidMinutes := worked - in.Schedule.UnpaidBreakMinutes
	if paidMinutes < 0 {
		paidMinutes = 0
	}
	paidHours := minutesToHours(paidMinutes)

	activeDays := 0
	for _, active := range in.Schedule.DaysActive {
		if active {
			activeDays++
		}
	}

	days := make([]decimal.Decimal, activeDays)
	for i := range days {
		days[i] = paidHours
	}
	week := ClassifyWeek(days, j)

	// Premium overlap is per day and independent of overtime buckets.
	if in.Premium.Enabled {
		if in.Premium.RatePerHour.IsNegative() {
			return nil, &MoneyError{Field: "premium_rate", Value: in.Premium.RatePerHour, Kind: ErrInvalidWage}
		}
		pStart, err := ParseClock(in.Premium.StartTime)
		if err != nil {
			return nil, err
		}
		pEnd, err := ParseClock(in.Premium.EndTime)
		if err != nil {
			return nil, err
		}
		overlap, err := Overlap(start, end, pStart, pEnd)
		if err != nil {
			return nil, err
		}
		week.Premium = minutesToHours(overlap).Mul(decimal.NewFromInt(int64(activeDays)))
	}

	period := week.Scale(weeksPerBiWeeklyPeriod)

	gross := period.Regular.Mul(in.HourlyWage).
		Add(period.Overtime15.Mul(in.HourlyWage).Mul(j.OvertimeMultiplier)).
		Add(period.Overtime20.Mul(in.HourlyWage).Mul(doubleTimeRate)).
		Add(period.Premium.Mul(in.Premium.RatePerHour))

	if in.IncludeVacationPay {
		gross = gross.Add(gross.Mul(j.VacationPayRate))
	}

	periods, _ := FrequencyBiWeekly.PeriodsPerYear()
	annual := gross.Mul(decimal.NewFromInt(periods))

	fig := runPipeline(annual, j, rs)
	return buildResult(fig, FrequencyBiWeekly, periods, &period), nil
}

// =============================================================================
// MODE B - ANNUAL SALARY
// =============================================================================

// CalculateSalary estimates take-home pay from a known annual gross. No
// hours are classified; Result.Hours is nil. Per-period figures use the
// caller's pay frequency.
func CalculateSalary(in SalaryInput, rs *RuleSet) (*Result, error) {
	j, err := rs.Resolve(in.Jurisdiction)
	if err != nil {
		return nil, err
	}
	if in.AnnualSalary.IsNegative() {
		return nil, &MoneyError{Field: "annual_salary", Value: in.AnnualSalary, Kind: ErrInvalidSalary}
	}
	periods, ok := in.Frequency.PeriodsPerYear()
	if !ok {
		return nil, ErrUnknownPayFrequency
	}

	fig := runPipeline(in.AnnualSalary, j, rs)
	return buildResult(fig, in.Frequency, periods, nil), nil
}

// =============================================================================
// SHARED DEDUCTION PIPELINE
// =============================================================================

type annualFigures struct {
	gross         decimal.Decimal
	pension       decimal.Decimal
	insurance     decimal.Decimal
	federalTax    decimal.Decimal
	provincialTax decimal.Decimal
	net           decimal.Decimal
}

// runPipeline applies the statutory deductions to an annualized gross, in
// the fixed order pension -> insurance -> federal -> provincial. Both tax
// bases subtract the capped contributions along with the basic personal
// amount, mirroring how the pay-stub credits are estimated.
func runPipeline(annualGross decimal.Decimal, j JurisdictionRule, rs *RuleSet) annualFigures {
	pensionable := decimal.Max(decimal.Zero, annualGross.Sub(rs.Pension.Exemption))
	pension := decimal.Min(pensionable.Mul(rs.Pension.Rate), rs.Pension.MaxAnnual)

	insurance := decimal.Min(annualGross.Mul(rs.Insurance.Rate), rs.Insurance.MaxAnnual)

	federalTaxable := decimal.Max(decimal.Zero,
		annualGross.Sub(rs.Federal.BasicPersonalAmount).Sub(pension).Sub(insurance))
	federalTax := ProgressiveTax(federalTaxable, rs.Federal.Brackets)

	provincialTaxable := decimal.Max(decimal.Zero,
		annualGross.Sub(j.BasicPersonalAmount).Sub(pension).Sub(insurance))
	provincialTax := ProgressiveTax(provincialTaxable, j.Brackets)

	net := annualGross.Sub(federalTax).Sub(provincialTax).Sub(pension).Sub(insurance)

	return annualFigures{
		gross:         annualGross,
		pension:       pension,
		insurance:     insurance,
		federalTax:    federalTax,
		provincialTax: provincialTax,
		net:           net,
	}
}

// buildResult derives the per-period figures by dividing each annual figure
// by the frequency's periods-per-year.
func buildResult(f annualFigures, freq PayFrequency, periods int64, hours *HourBuckets) *Result {
	n := decimal.NewFromInt(periods)
	return &Result{
		Hours:     hours,
		Frequency: freq,

		GrossPerPeriod:         f.gross.Div(n),
		FederalTaxPerPeriod:    f.federalTax.Div(n),
		ProvincialTaxPerPeriod: f.provincialTax.Div(n),
		PensionPerPeriod:       f.pension.Div(n),
		InsurancePerPeriod:     f.insurance.Div(n),
		NetPerPeriod:           f.net.Div(n),

		GrossAnnual:           f.gross,
		NetAnnual:             f.net,
		TotalDeductionsAnnual: f.gross.Sub(f.net),
	}
}
