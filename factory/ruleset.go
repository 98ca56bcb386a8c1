/*
Package factory provides JSON to Go rule-set conversion.

PURPOSE:
  Converts JSON rule definitions into an engine.RuleSet. This enables tax
  tables to change without code changes - a new tax year's thresholds,
  rates, and contribution caps can ship as a config file.

WHY JSON?
  - Annual indexation updates without a rebuild
  - Easy review of figure changes in version control
  - The admin surface can serve and accept the same document

JSON SCHEMA:
  {
    "federal": {
      "basic_personal_amount": 15950,
      "brackets": [
        {"up_to": 57375, "rate": 0.15},
        {"rate": 0.33}
      ]
    },
    "pension":   {"rate": 0.0595, "max_annual": 4055.25, "exemption": 3500},
    "insurance": {"rate": 0.0164, "max_annual": 1077.48},
    "jurisdictions": [
      {
        "code": "BC",
        "name": "British Columbia",
        "daily_ot_threshold": 8,
        "weekly_ot_threshold": 40,
        "overtime_multiplier": 1.5,
        "double_time_threshold": 12,
        "vacation_pay_rate": 0.04,
        "basic_personal_amount": 12580,
        "brackets": [{"up_to": 48000, "rate": 0.0506}, {"rate": 0.105}]
      }
    ]
  }

  A bracket without "up_to" is the final, unbounded one. Optional
  thresholds are simply omitted.

USAGE:
  rs, err := factory.ParseRuleSet(jsonBytes)   // validated before return
  rs := factory.DefaultRuleSet()               // built-in Canadian tables

SEE ALSO:
  - engine/rule.go: Target types and the invariants Validate() enforces
  - rules/canada.go: The built-in tables DefaultRuleSet returns
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/engine"
	"github.com/warp/payroll-engine/rules"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// RuleSetJSON is the JSON representation of a complete rule set.
type RuleSetJSON struct {
	Federal       FederalJSON        `json:"federal"`
	Pension       ContributionJSON   `json:"pension"`
	Insurance     ContributionJSON   `json:"insurance"`
	Jurisdictions []JurisdictionJSON `json:"jurisdictions"`
}

// FederalJSON is the federal schedule.
type FederalJSON struct {
	BasicPersonalAmount decimal.Decimal `json:"basic_personal_amount"`
	Brackets            []BracketJSON   `json:"brackets"`
}

// ContributionJSON is a capped flat-rate statutory contribution.
type ContributionJSON struct {
	Rate      decimal.Decimal `json:"rate"`
	MaxAnnual decimal.Decimal `json:"max_annual"`
	Exemption decimal.Decimal `json:"exemption,omitempty"`
}

// JurisdictionJSON is one province or territory.
type JurisdictionJSON struct {
	Code                string           `json:"code"`
	Name                string           `json:"name"`
	DailyOTThreshold    *decimal.Decimal `json:"daily_ot_threshold,omitempty"`
	WeeklyOTThreshold   decimal.Decimal  `json:"weekly_ot_threshold"`
	OvertimeMultiplier  decimal.Decimal  `json:"overtime_multiplier"`
	DoubleTimeThreshold *decimal.Decimal `json:"double_time_threshold,omitempty"`
	VacationPayRate     decimal.Decimal  `json:"vacation_pay_rate"`
	BasicPersonalAmount decimal.Decimal  `json:"basic_personal_amount"`
	Brackets            []BracketJSON    `json:"brackets"`
}

// BracketJSON is one bracket; omit "up_to" on the final, unbounded one.
type BracketJSON struct {
	UpTo *decimal.Decimal `json:"up_to,omitempty"`
	Rate decimal.Decimal  `json:"rate"`
}

// =============================================================================
// CONVERSION
// =============================================================================

// DefaultRuleSet returns the built-in Canadian tables.
func DefaultRuleSet() *engine.RuleSet {
	return rules.Canada()
}

// ParseRuleSet decodes and validates a JSON rule set. The returned set has
// passed engine validation and is safe to use for calculations.
func ParseRuleSet(data []byte) (*engine.RuleSet, error) {
	var doc RuleSetJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse rule set: %w", err)
	}
	return BuildRuleSet(doc)
}

// BuildRuleSet converts an already-decoded document into an engine.RuleSet.
func BuildRuleSet(doc RuleSetJSON) (*engine.RuleSet, error) {
	rs := &engine.RuleSet{
		Federal: engine.FederalRule{
			BasicPersonalAmount: doc.Federal.BasicPersonalAmount,
			Brackets:            toBrackets(doc.Federal.Brackets),
		},
		Pension: engine.ContributionRule{
			Rate:      doc.Pension.Rate,
			MaxAnnual: doc.Pension.MaxAnnual,
			Exemption: doc.Pension.Exemption,
		},
		Insurance: engine.ContributionRule{
			Rate:      doc.Insurance.Rate,
			MaxAnnual: doc.Insurance.MaxAnnual,
			Exemption: doc.Insurance.Exemption,
		},
		Jurisdictions: make(map[string]engine.JurisdictionRule, len(doc.Jurisdictions)),
	}

	for _, j := range doc.Jurisdictions {
		if _, dup := rs.Jurisdictions[j.Code]; dup {
			return nil, fmt.Errorf("%w: duplicate jurisdiction %q", engine.ErrInvalidRuleSet, j.Code)
		}
		rs.Jurisdictions[j.Code] = engine.JurisdictionRule{
			Code:                j.Code,
			Name:                j.Name,
			DailyOTThreshold:    j.DailyOTThreshold,
			WeeklyOTThreshold:   j.WeeklyOTThreshold,
			OvertimeMultiplier:  j.OvertimeMultiplier,
			DoubleTimeThreshold: j.DoubleTimeThreshold,
			VacationPayRate:     j.VacationPayRate,
			BasicPersonalAmount: j.BasicPersonalAmount,
			Brackets:            toBrackets(j.Brackets),
		}
	}

	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return rs, nil
}

func toBrackets(in []BracketJSON) []engine.TaxBracket {
	out := make([]engine.TaxBracket, len(in))
	for i, b := range in {
		out[i] = engine.TaxBracket{Upper: b.UpTo, Rate: b.Rate}
	}
	return out
}
