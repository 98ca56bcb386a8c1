/*
timesheet.go - Mode C: payroll from a raw punch-clock log

PURPOSE:
  Turns an unordered collection of check-in/check-out entries into the
  same hour buckets the schedule mode produces. Entries are grouped by
  calendar date, dates by ISO 8601 week, and each week runs through the
  daily/weekly overtime classifier. The log's gross covers the log's own
  span (one pay period); annualization multiplies it by the selected
  frequency's periods-per-year.
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

type isoWeek struct {
	year int
	week int
}

// CalculateTimesheet estimates pay from raw timesheet entries. Multiple
// entries on the same date are summed into that day's paid hours before
// classification. Shifts may cross midnight; a shift is attributed to the
// day it starts on.
func CalculateTimesheet(in TimesheetInput, rs *RuleSet) (*Result, error) {
	j, err := rs.Resolve(in.Jurisdiction)
	if err != nil {
		return nil, err
	}
	if in.HourlyWage.IsNegative() {
		return nil, &MoneyError{Field: "hourly_wage", Value: in.HourlyWage, Kind: ErrInvalidWage}
	}
	periods, ok := in.Frequency.PeriodsPerYear()
	if !ok {
		return nil, ErrUnknownPayFrequency
	}

	// Validate and bucket every entry before any classification runs.
	weeks := make(map[isoWeek]map[string]decimal.Decimal)
	for _, e := range in.Entries {
		date, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			return nil, &DateError{Input: e.Date}
		}
		if e.UnpaidBreakMinutes < 0 {
			return nil, ErrInvalidBreak
		}
		checkIn, err := ParseClock(e.CheckIn)
		if err != nil {
			return nil, err
		}
		checkOut, err := ParseClock(e.CheckOut)
		if err != nil {
			return nil, err
		}
		worked, err := WindowMinutes(checkIn, checkOut)
		if err != nil {
			return nil, err
		}

		paidMinutes := worked - e.UnpaidBreakMinutes
		if paidMinutes < 0 {
			paidMinutes = 0
		}

		year, week := date.ISOWeek()
		key := isoWeek{year: year, week: week}
		if weeks[key] == nil {
			weeks[key] = make(map[string]decimal.Decimal)
		}
		weeks[key][e.Date] = weeks[key][e.Date].Add(minutesToHours(paidMinutes))
	}

	var total HourBuckets
	for _, days := range weeks {
		dayHours := make([]decimal.Decimal, 0, len(days))
		for _, h := range days {
			dayHours = append(dayHours, h)
		}
		total = total.add(ClassifyWeek(dayHours, j))
	}

	gross := total.Regular.Mul(in.HourlyWage).
		Add(total.Overtime15.Mul(in.HourlyWage).Mul(j.OvertimeMultiplier)).
		Add(total.Overtime20.Mul(in.HourlyWage).Mul(doubleTimeRate))

	annual := gross.Mul(decimal.NewFromInt(periods))

	fig := runPipeline(annual, j, rs)
	return buildResult(fig, in.Frequency, periods, &total), nil
}
