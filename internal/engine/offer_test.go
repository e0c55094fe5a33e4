package engine

import (
	"math"
	"testing"

	"credit-decision-engine/internal/customer"
)

func approxEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestPriceTierTerms(t *testing.T) {
	e := newTestEngine(t)
	rec := customer.Record{AccountValue: 100000}

	tests := []struct {
		name       string
		tier       Tier
		amount     float64
		rate       float64
		tenure     int
		collateral Collateral
		feePct     float64
	}{
		{"very low", TierVeryLow, 30000, 7.5, 6, CollateralNone, 1.0},
		{"low", TierLow, 25000, 9.5, 6, CollateralRecommended, 1.5},
		{"medium", TierMedium, 15000, 12.5, 4, CollateralRequired, 2.0},
		{"high", TierHigh, 0, 0, 0, CollateralNotApplicable, 0},
		{"very high", TierVeryHigh, 0, 0, 0, CollateralNotApplicable, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			offer := e.Price(tc.tier, rec)
			if offer.Amount != tc.amount {
				t.Fatalf("expected amount %v got %v", tc.amount, offer.Amount)
			}
			if offer.AnnualRate != tc.rate {
				t.Fatalf("expected rate %v got %v", tc.rate, offer.AnnualRate)
			}
			if offer.TenureMonths != tc.tenure {
				t.Fatalf("expected tenure %d got %d", tc.tenure, offer.TenureMonths)
			}
			if offer.Collateral != tc.collateral {
				t.Fatalf("expected collateral %q got %q", tc.collateral, offer.Collateral)
			}
			if offer.ProcessingFeePct != tc.feePct {
				t.Fatalf("expected fee pct %v got %v", tc.feePct, offer.ProcessingFeePct)
			}
		})
	}
}

func TestPriceAppliesCap(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name     string
		tier     Tier
		account  float64
		expected float64
	}{
		{"very low capped", TierVeryLow, 500000, 75000},
		{"very low under cap", TierVeryLow, 150000, 45000},
		{"low capped", TierLow, 400000, 50000},
		{"medium capped", TierMedium, 300000, 25000},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			offer := e.Price(tc.tier, customer.Record{AccountValue: tc.account})
			if offer.Amount != tc.expected {
				t.Fatalf("expected %v got %v", tc.expected, offer.Amount)
			}
		})
	}
}

func TestPriceEconomics(t *testing.T) {
	e := newTestEngine(t)
	offer := e.Price(TierVeryLow, customer.Record{AccountValue: 150000})

	if offer.Amount != 45000 {
		t.Fatalf("expected amount 45000 got %v", offer.Amount)
	}
	if !approxEqual(offer.TotalInterest, 1687.5, 0.01) {
		t.Fatalf("expected total interest 1687.5 got %v", offer.TotalInterest)
	}
	if !approxEqual(offer.TotalRepayment, 46687.5, 0.01) {
		t.Fatalf("expected total repayment 46687.5 got %v", offer.TotalRepayment)
	}
	if !approxEqual(offer.MonthlyInstallment, 7781.25, 0.01) {
		t.Fatalf("expected installment 7781.25 got %v", offer.MonthlyInstallment)
	}
	if !approxEqual(offer.ProcessingFee, 450, 0.01) {
		t.Fatalf("expected processing fee 450 got %v", offer.ProcessingFee)
	}
}

func TestPriceZeroOfferHasNoEconomics(t *testing.T) {
	e := newTestEngine(t)
	offer := e.Price(TierHigh, customer.Record{AccountValue: 200000})

	if offer.Offered() {
		t.Fatalf("expected no offer, got amount %v", offer.Amount)
	}
	if offer.MonthlyInstallment != 0 || offer.TotalInterest != 0 || offer.TotalRepayment != 0 || offer.ProcessingFee != 0 {
		t.Fatalf("expected zero economics, got %+v", offer)
	}
}

func TestPriceMonotonicAcrossTiers(t *testing.T) {
	e := newTestEngine(t)
	rec := customer.Record{AccountValue: 60000}

	tiers := []Tier{TierVeryLow, TierLow, TierMedium, TierHigh, TierVeryHigh}
	prev := math.Inf(1)
	for _, tier := range tiers {
		offer := e.Price(tier, rec)
		if offer.Amount > prev {
			t.Fatalf("amount rose from %v to %v as tier worsened to %s", prev, offer.Amount, tier)
		}
		prev = offer.Amount
	}
}
