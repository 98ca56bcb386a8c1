/*
Package rules provides the built-in Canadian payroll reference tables.

PURPOSE:
  Concrete rule data for the engine: overtime and tax rules for all ten
  provinces and three territories, the federal tax schedule, and the
  CPP-style and EI-style statutory contributions. Figures are the
  simplified 2025/2026 estimates the calculator is documented against --
  this is an estimator, not a filing engine.

NOTES ON THE DATA:
  - The CPP2 (additional) contribution is folded into a slightly higher
    effective cap rather than modeled separately.
  - Provincial bracket lists are abbreviated to the slices that matter for
    typical employment income; every list still covers 0 to infinity.
  - Vacation pay is 4% everywhere at the entitlement tier modeled here.

USAGE:
  rs := rules.Canada()
  res, err := engine.CalculateSalary(input, rs)

SEE ALSO:
  - engine/rule.go: The types and the invariants Validate() enforces
  - factory/ruleset.go: Loading replacement tables from JSON
*/
package rules

import (
	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/engine"
)

// =============================================================================
// FEDERAL SCHEDULE AND STATUTORY CONTRIBUTIONS (2025/2026 estimates)
// =============================================================================

func federal() engine.FederalRule {
	return engine.FederalRule{
		BasicPersonalAmount: dec("15950"),
		Brackets: []engine.TaxBracket{
			engine.BracketUpTo("57375", "0.15"),
			engine.BracketUpTo("114750", "0.205"),
			engine.BracketUpTo("177722", "0.26"),
			engine.BracketUpTo("253865", "0.29"),
			engine.BracketAbove("0.33"),
		},
	}
}

func pension() engine.ContributionRule {
	return engine.ContributionRule{
		Rate:      dec("0.0595"),
		MaxAnnual: dec("4055.25"),
		Exemption: dec("3500"),
	}
}

func insurance() engine.ContributionRule {
	return engine.ContributionRule{
		Rate:      dec("0.0164"),
		MaxAnnual: dec("1077.48"),
	}
}

// =============================================================================
// PROVINCES AND TERRITORIES
// =============================================================================

// Canada returns the full built-in rule set. The result is freshly built on
// each call; callers treat it as immutable after load.
func Canada() *engine.RuleSet {
	rs := &engine.RuleSet{
		Federal:   federal(),
		Pension:   pension(),
		Insurance: insurance(),
		Jurisdictions: map[string]engine.JurisdictionRule{
			"AB": {
				Code: "AB", Name: "Alberta",
				DailyOTThreshold:    decp("8"),
				WeeklyOTThreshold:   dec("44"),
				OvertimeMultiplier:  dec("1.5"),
				VacationPayRate:     dec("0.04"),
				BasicPersonalAmount: dec("22250"),
				Brackets: []engine.TaxBracket{
					engine.BracketUpTo("151230", "0.10"),
					engine.BracketAbove("0.12"),
				},
			},
			"BC": {
				Code: "BC", Name: "British Columbia",
				DailyOTThreshold:    decp("8"),
				WeeklyOTThreshold:   dec("40"),
				OvertimeMultiplier:  dec("1.5"),
				DoubleTimeThreshold: decp("12"),
				VacationPayRate:     dec("0.04"),
				BasicPersonalAmount: dec("12580"),
				Brackets: []engine.TaxBracket{
					engine.BracketUpTo("48000", "0.0506"),
					engine.BracketUpTo("96000", "0.077"),
					engine.BracketAbove("0.105"),
				},
			},
			"MB": {
				Code: "MB", Name: "Manitoba",
				DailyOTThreshold:    decp("8"),
				WeeklyOTThreshold:   dec("40"),
				OvertimeMultiplier:  dec("1.5"),
				VacationPayRate:     dec("0.04"),
				BasicPersonalAmount: dec("16000"),
				Brackets: []engine.TaxBracket{
					engine.BracketUpTo("47000", "0.108"),
					engine.BracketAbove("0.1275"),
				},
			},
			"NB": {
				Code: "NB", Name: "New Brunswick",
				WeeklyOTThreshold:   dec("44"),
				OvertimeMultiplier:  dec("1.5"),
				VacationPayRate:     dec("0.04"),
				BasicPersonalAmount: dec("13500"),
				Brackets: []engine.TaxBracket{
					engine.BracketUpTo("49800", "0.094"),
					engine.BracketAbove("0.14"),
				},
			},
			"NL": {
				Code: "NL", Name: "Newfoundland and Labrador",
				WeeklyOTThreshold:   dec("40"),
				OvertimeMultiplier:  dec("1.5"),
				VacationPayRate:     dec("0.04"),
				BasicPersonalAmount: dec("10800"),
				Brackets: []engine.TaxBracket{
					engine.BracketUpTo("43000", "0.087"),
					engine.BracketAbove("0.145"),
				},
			},
			"NS": {
				Code: "NS", Name: "Nova Scotia",
				WeeklyOTThreshold:   dec("48"),
				OvertimeMultiplier:  dec("1.5"),
				VacationPayRate:     dec("0.04"),
				BasicPersonalAmount: dec("11481"),
				Brackets: []engine.TaxBracket{
					engine.BracketUpTo("32000", "0.0879"),
					engine.BracketAbove("0.1495"),
				},
			},
			"NT": {
				Code: "NT", Name: "Northwest Territories",
				DailyOTThreshold:    decp("8"),
				WeeklyOTThreshold:   dec("40"),
				OvertimeMultiplier:  dec("1.5"),
				VacationPayRate:     dec("0.04"),
				BasicPersonalAmount: dec("17300"),
				Brackets: []engine.TaxBracket{
					engine.BracketUpTo("52000", "0.059"),
					engine.BracketAbove("0.086"),
				},
			},
			"NU": {
				Code: "NU", Name: "Nunavut",
				DailyOTThreshold:    decp("8"),
				WeeklyOTThreshold:   dec("40"),
				OvertimeMultiplier:  dec("1.5"),
				VacationPayRate:     dec("0.04"),
				BasicPersonalAmount: dec("18500"),
				Brackets: []engine.TaxBracket{
					engine.BracketUpTo("54000", "0.04"),
					engine.BracketAbove("0.07"),
				},
			},
			"ON": {
				Code: "ON", Name: "Ontario",
				WeeklyOTThreshold:   dec("44"),
				OvertimeMultiplier:  dec("1.5"),
				VacationPayRate:     dec("0.04"),
				BasicPersonalAmount: dec("12399"),
				Brackets: []engine.TaxBracket{
					engine.BracketUpTo("52446", "0.0505"),
					engine.BracketUpTo("104891", "0.0915"),
					engine.BracketAbove("0.1116"),
				},
			},
			"PE": {
				Code: "PE", Name: "Prince Edward Island",
				WeeklyOTThreshold:   dec("48"),
				OvertimeMultiplier:  dec("1.5"),
				VacationPayRate:     dec("0.04"),
				BasicPersonalAmount: dec("13500"),
				Brackets: []engine.TaxBracket{
					engine.BracketUpTo("33000", "0.098"),
					engine.BracketAbove("0.138"),
				},
			},
			"QC": {
				Code: "QC", Name: "Quebec",
				WeeklyOTThreshold:   dec("40"),
				OvertimeMultiplier:  dec("1.5"),
				VacationPayRate:     dec("0.04"),
				BasicPersonalAmount: dec("18050"),
				Brackets: []engine.TaxBracket{
					engine.BracketUpTo("51780", "0.14"),
					engine.BracketUpTo("103545", "0.19"),
					engine.BracketAbove("0.24"),
				},
			},
			"SK": {
				Code: "SK", Name: "Saskatchewan",
				DailyOTThreshold:    decp("8"),
				WeeklyOTThreshold:   dec("40"),
				OvertimeMultiplier:  dec("1.5"),
				VacationPayRate:     dec("0.04"),
				BasicPersonalAmount: dec("18450"),
				Brackets: []engine.TaxBracket{
					engine.BracketUpTo("52000", "0.105"),
					engine.BracketAbove("0.125"),
				},
			},
			"YT": {
				Code: "YT", Name: "Yukon",
				DailyOTThreshold:    decp("8"),
				WeeklyOTThreshold:   dec("40"),
				OvertimeMultiplier:  dec("1.5"),
				VacationPayRate:     dec("0.04"),
				BasicPersonalAmount: dec("15950"),
				Brackets: []engine.TaxBracket{
					engine.BracketUpTo("57375", "0.064"),
					engine.BracketAbove("0.09"),
				},
			},
		},
	}
	return rs
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decp(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
