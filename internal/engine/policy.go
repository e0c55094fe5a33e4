package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Thresholds are the upper bounds of each tier band. A score below VeryLow
// classifies as very low risk, below Low as low risk, and so on; anything at
// or above High is very high risk. The Medium band is deliberately wide
// because the demo population clusters at the low-risk end.
type Thresholds struct {
	VeryLow float64 `json:"very_low"`
	Low     float64 `json:"low"`
	Medium  float64 `json:"medium"`
	High    float64 `json:"high"`
}

// OfferTerms define how a loan is sized and priced for one tier.
type OfferTerms struct {
	// Share of the customer's account value offered as principal.
	Share float64 `json:"share"`
	// Cap bounds the maximum exposure regardless of account value.
	Cap              float64    `json:"cap"`
	AnnualRate       float64    `json:"annual_rate"`
	TenureMonths     int        `json:"tenure_months"`
	Collateral       Collateral `json:"collateral"`
	ProcessingFeePct float64    `json:"processing_fee_pct"`
}

// OfferTable holds the lending terms for the tiers eligible for an offer.
// High and very high risk tiers never receive one.
type OfferTable struct {
	VeryLow OfferTerms `json:"very_low"`
	Low     OfferTerms `json:"low"`
	Medium  OfferTerms `json:"medium"`
}

// ApprovalLimits are the DTI ceilings applied per risk band when the final
// verdict is combined.
type ApprovalLimits struct {
	VeryLowMaxDTI float64 `json:"very_low_max_dti"`
	LowMaxDTI     float64 `json:"low_max_dti"`
	MediumMaxDTI  float64 `json:"medium_max_dti"`
}

// Policy bundles every tunable the engine consults. DefaultPolicy returns
// the production values; overrides may be loaded from JSON but the defaults
// are the behavioral contract.
type Policy struct {
	Thresholds Thresholds     `json:"thresholds"`
	Offers     OfferTable     `json:"offers"`
	Approval   ApprovalLimits `json:"approval"`
}

// DefaultPolicy returns the standard decisioning policy.
func DefaultPolicy() Policy {
	return Policy{
		Thresholds: Thresholds{
			VeryLow: 0.05,
			Low:     0.10,
			Medium:  0.50,
			High:    0.70,
		},
		Offers: OfferTable{
			VeryLow: OfferTerms{
				Share:            0.30,
				Cap:              75000,
				AnnualRate:       7.5,
				TenureMonths:     6,
				Collateral:       CollateralNone,
				ProcessingFeePct: 1.0,
			},
			Low: OfferTerms{
				Share:            0.25,
				Cap:              50000,
				AnnualRate:       9.5,
				TenureMonths:     6,
				Collateral:       CollateralRecommended,
				ProcessingFeePct: 1.5,
			},
			Medium: OfferTerms{
				Share:            0.15,
				Cap:              25000,
				AnnualRate:       12.5,
				TenureMonths:     4,
				Collateral:       CollateralRequired,
				ProcessingFeePct: 2.0,
			},
		},
		Approval: ApprovalLimits{
			VeryLowMaxDTI: 40,
			LowMaxDTI:     45,
			MediumMaxDTI:  50,
		},
	}
}

// LoadPolicy reads a JSON policy file, applying it over the defaults so a
// partial file only overrides what it names.
func LoadPolicy(path string) (Policy, error) {
	policy := DefaultPolicy()
	if path == "" {
		return policy, nil
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Policy{}, fmt.Errorf("read policy: %w", err)
	}
	if err := json.Unmarshal(data, &policy); err != nil {
		return Policy{}, fmt.Errorf("unmarshal policy: %w", err)
	}
	if err := policy.Validate(); err != nil {
		return Policy{}, err
	}
	return policy, nil
}

// Validate checks that the policy's bands are ordered and terms usable.
func (p Policy) Validate() error {
	th := p.Thresholds
	if !(th.VeryLow > 0 && th.VeryLow < th.Low && th.Low < th.Medium && th.Medium < th.High && th.High <= 1) {
		return fmt.Errorf("%w: tier thresholds must be ascending within (0,1]", ErrInvalidInput)
	}
	for _, terms := range []OfferTerms{p.Offers.VeryLow, p.Offers.Low, p.Offers.Medium} {
		if terms.Share <= 0 || terms.Cap <= 0 || terms.TenureMonths <= 0 {
			return fmt.Errorf("%w: offer terms require positive share, cap and tenure", ErrInvalidInput)
		}
	}
	if p.Approval.VeryLowMaxDTI <= 0 || p.Approval.LowMaxDTI < p.Approval.VeryLowMaxDTI || p.Approval.MediumMaxDTI < p.Approval.LowMaxDTI {
		return fmt.Errorf("%w: approval DTI ceilings must be ascending and positive", ErrInvalidInput)
	}
	return nil
}
