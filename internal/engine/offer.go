package engine

import "credit-decision-engine/internal/customer"

// Collateral indicates what security the offer demands.
type Collateral string

const (
	CollateralNone          Collateral = "Not Required"
	CollateralRecommended   Collateral = "Recommended"
	CollateralRequired      Collateral = "Required"
	CollateralNotApplicable Collateral = "N/A"
)

// LoanOffer carries the recommended terms for one customer. A zero Amount is
// the "no loan" signal: rate, tenure and the derived economics are left unset
// and the aggregator treats the customer as offer-less.
type LoanOffer struct {
	Amount           float64    `json:"amount"`
	AnnualRate       float64    `json:"annual_rate,omitempty"`
	TenureMonths     int        `json:"tenure_months,omitempty"`
	Collateral       Collateral `json:"collateral"`
	ProcessingFeePct float64    `json:"processing_fee_pct,omitempty"`

	// Derived economics, computed only when Amount > 0. Interest is simple,
	// pro-rated over the tenure.
	MonthlyInstallment float64 `json:"monthly_installment,omitempty"`
	TotalInterest      float64 `json:"total_interest,omitempty"`
	TotalRepayment     float64 `json:"total_repayment,omitempty"`
	ProcessingFee      float64 `json:"processing_fee,omitempty"`
}

// Offered reports whether the offer carries a positive principal.
func (o LoanOffer) Offered() bool {
	return o.Amount > 0
}

// Price sizes and prices a loan for the given tier. High and very high risk
// tiers receive the zero offer.
func (e *Engine) Price(tier Tier, rec customer.Record) LoanOffer {
	var terms OfferTerms
	switch tier {
	case TierVeryLow:
		terms = e.policy.Offers.VeryLow
	case TierLow:
		terms = e.policy.Offers.Low
	case TierMedium:
		terms = e.policy.Offers.Medium
	default:
		return LoanOffer{Collateral: CollateralNotApplicable}
	}

	amount := terms.Share * rec.AccountValue
	if amount > terms.Cap {
		amount = terms.Cap
	}
	offer := LoanOffer{
		Amount:           amount,
		AnnualRate:       terms.AnnualRate,
		TenureMonths:     terms.TenureMonths,
		Collateral:       terms.Collateral,
		ProcessingFeePct: terms.ProcessingFeePct,
	}
	if offer.Amount > 0 {
		offer.TotalInterest = offer.Amount * (offer.AnnualRate / 100) * (float64(offer.TenureMonths) / 12)
		offer.TotalRepayment = offer.Amount + offer.TotalInterest
		offer.MonthlyInstallment = offer.TotalRepayment / float64(offer.TenureMonths)
		offer.ProcessingFee = offer.Amount * (offer.ProcessingFeePct / 100)
	}
	return offer
}
