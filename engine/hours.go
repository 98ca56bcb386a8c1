/*
hours.go - Daily and weekly overtime classification

PURPOSE:
  Splits paid hours into regular / 1.5x / 2.0x buckets under a
  jurisdiction's employment standards. Daily rules run first, per day;
  the weekly threshold then applies to whatever stayed regular.

POLICY NOTE (documented approximation):
  Hours already moved to an overtime bucket by a daily rule are excluded
  from the weekly regular accumulator, so there is no double counting --
  but it also means total overtime is the SUM of daily-rule overtime and
  weekly-rule overtime on the remaining regular hours, not the GREATER of
  the two. Several provinces word their standards as "greater of". This
  simplification is carried over deliberately and is pending domain-expert
  review; see DESIGN.md. The tests pin the current behavior.

INVARIANT:
  Regular + Overtime15 + Overtime20 always equals the total paid hours in.
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// DayHours is one day's paid hours after daily-rule classification.
type DayHours struct {
	Regular    decimal.Decimal
	Overtime15 decimal.Decimal
	Overtime20 decimal.Decimal
}

// ClassifyDay applies the jurisdiction's daily rules to a single day.
// Hours past the double-time threshold (when defined) earn 2.0x, hours
// between the daily and double-time thresholds earn 1.5x, the rest is
// regular. Jurisdictions without a daily threshold classify everything
// as regular here; their overtime comes from the weekly rule alone.
func ClassifyDay(paidHours decimal.Decimal, rule JurisdictionRule) DayHours {
	day := DayHours{Regular: paidHours}
	if rule.DailyOTThreshold == nil || !paidHours.GreaterThan(*rule.DailyOTThreshold) {
		return day
	}

	daily := *rule.DailyOTThreshold
	if rule.DoubleTimeThreshold != nil && paidHours.GreaterThan(*rule.DoubleTimeThreshold) {
		dt := *rule.DoubleTimeThreshold
		day.Overtime20 = paidHours.Sub(dt)
		day.Overtime15 = dt.Sub(daily)
		day.Regular = daily
		return day
	}

	day.Overtime15 = paidHours.Sub(daily)
	day.Regular = daily
	return day
}

// ClassifyWeek classifies one week of work: daily rules per day, then the
// weekly threshold over the accumulated regular hours. Weekly-rule excess
// moves into the 1.5x bucket on top of any daily-rule overtime (see the
// policy note above). The Premium bucket is untouched; premium hours are
// computed independently of overtime.
func ClassifyWeek(days []decimal.Decimal, rule JurisdictionRule) HourBuckets {
	var week HourBuckets
	weeklyRegular := decimal.Zero

	for _, paid := range days {
		day := ClassifyDay(paid, rule)
		weeklyRegular = weeklyRegular.Add(day.Regular)
		week.Overtime15 = week.Overtime15.Add(day.Overtime15)
		week.Overtime20 = week.Overtime20.Add(day.Overtime20)
	}

	if weeklyRegular.GreaterThan(rule.WeeklyOTThreshold) {
		week.Overtime15 = week.Overtime15.Add(weeklyRegular.Sub(rule.WeeklyOTThreshold))
		week.Regular = rule.WeeklyOTThreshold
	} else {
		week.Regular = weeklyRegular
	}
	return week
}
