package engine_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/engine"
)

func testBrackets() []engine.TaxBracket {
	return []engine.TaxBracket{
		engine.BracketUpTo("50000", "0.10"),
		engine.BracketUpTo("100000", "0.20"),
		engine.BracketAbove("0.30"),
	}
}

func TestProgressiveTax_ZeroIncomeIsZeroTax(t *testing.T) {
	got := engine.ProgressiveTax(decimal.Zero, testBrackets())
	if !got.IsZero() {
		t.Errorf("tax on zero income = %s, want 0", got)
	}
}

func TestProgressiveTax_NegativeIncomeIsZeroTax(t *testing.T) {
	got := engine.ProgressiveTax(decimal.NewFromInt(-100), testBrackets())
	if !got.IsZero() {
		t.Errorf("tax on negative income = %s, want 0", got)
	}
}

func TestProgressiveTax_WithinFirstBracket(t *testing.T) {
	got := engine.ProgressiveTax(decimal.NewFromInt(30000), testBrackets())
	want := decimal.NewFromInt(3000)
	if !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestProgressiveTax_ExactThresholdEqualsSumOfLowerBrackets(t *testing.T) {
	// Income exactly at a threshold taxes every lower bracket in full:
	// 50000*0.10 + 50000*0.20 = 15000
	got := engine.ProgressiveTax(decimal.NewFromInt(100000), testBrackets())
	want := decimal.NewFromInt(15000)
	if !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestProgressiveTax_TopBracketIsUnbounded(t *testing.T) {
	// 5000 + 10000 + 100000*0.30 = 45000
	got := engine.ProgressiveTax(decimal.NewFromInt(200000), testBrackets())
	want := decimal.NewFromInt(45000)
	if !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestProgressiveTax_MonotoneNonDecreasing(t *testing.T) {
	brackets := testBrackets()
	prev := decimal.Zero
	for income := int64(0); income <= 300000; income += 7500 {
		tax := engine.ProgressiveTax(decimal.NewFromInt(income), brackets)
		if tax.LessThan(prev) {
			t.Fatalf("tax decreased at income %d: %s < %s", income, tax, prev)
		}
		if tax.IsNegative() {
			t.Fatalf("negative tax at income %d: %s", income, tax)
		}
		prev = tax
	}
}
