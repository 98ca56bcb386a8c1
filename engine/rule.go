/*
rule.go - Static rule tables the engine computes against

PURPOSE:
  Defines the shapes of the reference data every calculation reads:
  per-jurisdiction employment-standards and tax rules, the federal tax
  schedule, and the two capped statutory contributions (pension-style and
  insurance-style).

LIFECYCLE:
  A RuleSet is built once at process start (see the rules package for the
  built-in Canadian tables, or the factory package for JSON loading) and
  never mutated afterwards. The engine only reads it.

INVARIANTS (enforced by Validate):
  - Brackets sorted strictly ascending by upper threshold
  - Exactly one unbounded bracket, and it is last
  - Rates within [0, 1], thresholds and caps non-negative

SEE ALSO:
  - rules/canada.go: Built-in tables for all 13 provinces and territories
  - factory/ruleset.go: JSON loading for a different tax year
*/
package engine

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TAX BRACKETS
// =============================================================================

// TaxBracket is one slice of a progressive schedule: income between the
// previous bracket's upper threshold and this one is taxed at Rate.
// A nil Upper marks the final, unbounded bracket.
type TaxBracket struct {
	Upper *decimal.Decimal
	Rate  decimal.Decimal
}

// BracketUpTo builds a bounded bracket from string literals. Intended for
// static tables; panics on malformed literals.
func BracketUpTo(upper, rate string) TaxBracket {
	u := decimal.RequireFromString(upper)
	return TaxBracket{Upper: &u, Rate: decimal.RequireFromString(rate)}
}

// BracketAbove builds the final, unbounded bracket.
func BracketAbove(rate string) TaxBracket {
	return TaxBracket{Rate: decimal.RequireFromString(rate)}
}

// =============================================================================
// JURISDICTION / FEDERAL / CONTRIBUTION RULES
// =============================================================================

// JurisdictionRule captures one province or territory: its overtime
// thresholds, vacation pay rate, and provincial tax schedule.
//
// DailyOTThreshold is nil for jurisdictions with weekly-only overtime.
// DoubleTimeThreshold is nil unless hours past it earn double time.
type JurisdictionRule struct {
	Code string
	Name string

	DailyOTThreshold    *decimal.Decimal
	WeeklyOTThreshold   decimal.Decimal
	OvertimeMultiplier  decimal.Decimal
	DoubleTimeThreshold *decimal.Decimal

	VacationPayRate     decimal.Decimal
	BasicPersonalAmount decimal.Decimal
	Brackets            []TaxBracket
}

// FederalRule is the federal tax schedule, applied uniformly regardless of
// jurisdiction.
type FederalRule struct {
	BasicPersonalAmount decimal.Decimal
	Brackets            []TaxBracket
}

// ContributionRule is a flat-rate statutory contribution with an annual
// cap. Exemption is an income floor subtracted before applying the rate;
// it is zero for the insurance-style contribution.
type ContributionRule struct {
	Rate      decimal.Decimal
	MaxAnnual decimal.Decimal
	Exemption decimal.Decimal
}

// =============================================================================
// RULE SET
// =============================================================================

// RuleSet bundles everything a calculation needs. Immutable after load.
type RuleSet struct {
	Federal       FederalRule
	Pension       ContributionRule
	Insurance     ContributionRule
	Jurisdictions map[string]JurisdictionRule
}

// Resolve looks up a jurisdiction by code. Unknown codes are a hard error
// for every calculation mode.
func (rs *RuleSet) Resolve(code string) (JurisdictionRule, error) {
	j, ok := rs.Jurisdictions[code]
	if !ok {
		return JurisdictionRule{}, &UnknownJurisdictionError{Code: code}
	}
	return j, nil
}

// Codes returns the known jurisdiction codes in sorted order.
func (rs *RuleSet) Codes() []string {
	codes := make([]string, 0, len(rs.Jurisdictions))
	for c := range rs.Jurisdictions {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// Validate checks every table in the set. Meant to run once at load time;
// a RuleSet that fails validation must not be used.
func (rs *RuleSet) Validate() error {
	if err := validateBrackets(rs.Federal.Brackets); err != nil {
		return fmt.Errorf("%w: federal: %v", ErrInvalidRuleSet, err)
	}
	if rs.Federal.BasicPersonalAmount.IsNegative() {
		return fmt.Errorf("%w: federal: negative basic personal amount", ErrInvalidRuleSet)
	}
	if err := validateContribution(rs.Pension); err != nil {
		return fmt.Errorf("%w: pension: %v", ErrInvalidRuleSet, err)
	}
	if err := validateContribution(rs.Insurance); err != nil {
		return fmt.Errorf("%w: insurance: %v", ErrInvalidRuleSet, err)
	}
	if len(rs.Jurisdictions) == 0 {
		return fmt.Errorf("%w: no jurisdictions", ErrInvalidRuleSet)
	}
	for code, j := range rs.Jurisdictions {
		if err := validateJurisdiction(j); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidRuleSet, code, err)
		}
	}
	return nil
}

func validateJurisdiction(j JurisdictionRule) error {
	if j.Code == "" {
		return fmt.Errorf("missing code")
	}
	if !j.WeeklyOTThreshold.IsPositive() {
		return fmt.Errorf("weekly overtime threshold must be positive")
	}
	if j.DailyOTThreshold != nil && !j.DailyOTThreshold.IsPositive() {
		return fmt.Errorf("daily overtime threshold must be positive")
	}
	if j.DoubleTimeThreshold != nil {
		if j.DailyOTThreshold == nil {
			return fmt.Errorf("double-time threshold requires a daily threshold")
		}
		if !j.DoubleTimeThreshold.GreaterThan(*j.DailyOTThreshold) {
			return fmt.Errorf("double-time threshold must exceed the daily threshold")
		}
	}
	if j.OvertimeMultiplier.LessThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("overtime multiplier below 1")
	}
	if j.VacationPayRate.IsNegative() {
		return fmt.Errorf("negative vacation pay rate")
	}
	if j.BasicPersonalAmount.IsNegative() {
		return fmt.Errorf("negative basic personal amount")
	}
	return validateBrackets(j.Brackets)
}

func validateContribution(c ContributionRule) error {
	if c.Rate.IsNegative() || c.Rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("rate outside [0, 1]")
	}
	if c.MaxAnnual.IsNegative() {
		return fmt.Errorf("negative annual maximum")
	}
	if c.Exemption.IsNegative() {
		return fmt.Errorf("negative exemption")
	}
	return nil
}

// validateBrackets enforces the schedule invariant: strictly ascending
// thresholds covering income from 0 to infinity with no gaps, which the
// nil-Upper-last representation gives us by construction.
func validateBrackets(brackets []TaxBracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("empty bracket list")
	}
	prev := decimal.Zero
	for i, b := range brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("bracket %d: rate outside [0, 1]", i)
		}
		if b.Upper == nil {
			if i != len(brackets)-1 {
				return fmt.Errorf("bracket %d: unbounded bracket is not last", i)
			}
			continue
		}
		if i == len(brackets)-1 {
			return fmt.Errorf("final bracket must be unbounded")
		}
		if !b.Upper.GreaterThan(prev) {
			return fmt.Errorf("bracket %d: thresholds not strictly ascending", i)
		}
		prev = *b.Upper
	}
	return nil
}
