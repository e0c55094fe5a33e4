package engine

import (
	"fmt"

	"credit-decision-engine/internal/customer"
)

// Verdict is the final recommendation for a credit application.
type Verdict string

const (
	VerdictApprove               Verdict = "APPROVE"
	VerdictApproveWithConditions Verdict = "APPROVE WITH CONDITIONS"
	VerdictConditionalApproval   Verdict = "CONDITIONAL APPROVAL"
	VerdictReject                Verdict = "REJECT"
)

// Marker qualifies a rationale statement independently of every other
// statement in the list.
type Marker string

const (
	MarkerPositive Marker = "positive"
	MarkerCaution  Marker = "caution"
	MarkerNegative Marker = "negative"
	MarkerNeutral  Marker = "neutral"
)

// RationaleLine is one human-readable bullet in the decision rationale.
type RationaleLine struct {
	Marker    Marker `json:"marker"`
	Statement string `json:"statement"`
}

// Decision is the engine's terminal output for one evaluation: an immutable
// snapshot combining the tier, the offer, the affordability check, the
// attribution table and the banded rationale.
type Decision struct {
	CustomerID    string               `json:"customer_id"`
	RiskScore     float64              `json:"risk_score"`
	Tier          Tier                 `json:"-"`
	TierLabel     string               `json:"tier"`
	Verdict       Verdict              `json:"verdict"`
	Offer         LoanOffer            `json:"offer"`
	Affordability Affordability        `json:"affordability"`
	Attributions  []FeatureAttribution `json:"attributions"`
	Rationale     []RationaleLine      `json:"rationale"`
}

// Decide combines the tier and the affordability check into the final
// verdict. The branches cascade: a lower-risk tier that misses its own DTI
// ceiling may still qualify for the next weaker approval, and anything past
// the medium band is rejected outright.
func (e *Engine) Decide(tier Tier, offer LoanOffer, afford Affordability, rec customer.Record) Decision {
	limits := e.policy.Approval
	verdict := VerdictReject
	switch {
	case tier == TierVeryLow && afford.DTIRatio < limits.VeryLowMaxDTI:
		verdict = VerdictApprove
	case tier <= TierLow && afford.DTIRatio < limits.LowMaxDTI:
		verdict = VerdictApproveWithConditions
	case tier <= TierMedium && afford.DTIRatio < limits.MediumMaxDTI:
		verdict = VerdictConditionalApproval
	}

	return Decision{
		CustomerID:    rec.CustomerID,
		RiskScore:     rec.RiskScore,
		Tier:          tier,
		TierLabel:     tier.String(),
		Verdict:       verdict,
		Offer:         offer,
		Affordability: afford,
		Rationale:     e.buildRationale(rec, afford),
	}
}

// rationaleFact computes one independent banded statement. Facts that cannot
// be computed return ErrIncompleteAttribute and are degraded to a neutral
// placeholder without aborting the decision.
type rationaleFact struct {
	placeholder string
	build       func(customer.Record, Affordability) (RationaleLine, error)
}

func (e *Engine) buildRationale(rec customer.Record, afford Affordability) []RationaleLine {
	facts := []rationaleFact{
		{"Risk score unavailable", e.riskFact},
		{"Debt-to-income ratio unavailable", dtiFact},
		{"Credit bureau score unavailable", bureauFact},
		{"Sales volume unavailable", salesFact},
		{"Customer tenure unavailable", tenureFact},
	}

	lines := make([]RationaleLine, 0, len(facts))
	for _, fact := range facts {
		line, err := fact.build(rec, afford)
		if err != nil {
			lines = append(lines, RationaleLine{Marker: MarkerNeutral, Statement: fact.placeholder})
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func (e *Engine) riskFact(rec customer.Record, _ Affordability) (RationaleLine, error) {
	th := e.policy.Thresholds
	score := rec.RiskScore
	switch {
	case score < th.VeryLow:
		return RationaleLine{MarkerPositive, fmt.Sprintf("Very low risk score (%.6f probability of default)", score)}, nil
	case score < th.Low:
		return RationaleLine{MarkerCaution, fmt.Sprintf("Low risk score (%.6f probability of default)", score)}, nil
	case score < th.Medium:
		return RationaleLine{MarkerCaution, fmt.Sprintf("Medium risk score (%.6f probability of default)", score)}, nil
	default:
		return RationaleLine{MarkerNegative, fmt.Sprintf("High risk score (%.6f probability of default)", score)}, nil
	}
}

func dtiFact(_ customer.Record, afford Affordability) (RationaleLine, error) {
	ratio := afford.DTIRatio
	switch {
	case ratio < 40:
		return RationaleLine{MarkerPositive, fmt.Sprintf("Healthy debt-to-income ratio (%.1f%%)", ratio)}, nil
	case ratio < 50:
		return RationaleLine{MarkerCaution, fmt.Sprintf("Elevated debt-to-income ratio (%.1f%%)", ratio)}, nil
	default:
		return RationaleLine{MarkerNegative, fmt.Sprintf("High debt-to-income ratio (%.1f%%)", ratio)}, nil
	}
}

func bureauFact(rec customer.Record, _ Affordability) (RationaleLine, error) {
	score := rec.BureauScore
	if score <= 0 {
		return RationaleLine{}, ErrIncompleteAttribute
	}
	switch {
	case score >= 750:
		return RationaleLine{MarkerPositive, fmt.Sprintf("Excellent credit score (%d)", score)}, nil
	case score >= 700:
		return RationaleLine{MarkerPositive, fmt.Sprintf("Good credit score (%d)", score)}, nil
	case score >= 650:
		return RationaleLine{MarkerCaution, fmt.Sprintf("Fair credit score (%d)", score)}, nil
	default:
		return RationaleLine{MarkerNegative, fmt.Sprintf("Poor credit score (%d)", score)}, nil
	}
}

func salesFact(rec customer.Record, _ Affordability) (RationaleLine, error) {
	gmv := rec.AccountValue
	switch {
	case gmv > 100000:
		return RationaleLine{MarkerPositive, fmt.Sprintf("Strong business performance (%.2f GMV)", gmv)}, nil
	case gmv > 50000:
		return RationaleLine{MarkerPositive, fmt.Sprintf("Moderate business performance (%.2f GMV)", gmv)}, nil
	default:
		return RationaleLine{MarkerCaution, fmt.Sprintf("Limited business history (%.2f GMV)", gmv)}, nil
	}
}

func tenureFact(rec customer.Record, _ Affordability) (RationaleLine, error) {
	months := rec.ActiveMonths
	switch {
	case months >= 12:
		return RationaleLine{MarkerPositive, fmt.Sprintf("Long tenure (%d months)", months)}, nil
	case months >= 6:
		return RationaleLine{MarkerPositive, fmt.Sprintf("Established customer (%d months)", months)}, nil
	default:
		return RationaleLine{MarkerCaution, fmt.Sprintf("New customer (%d months)", months)}, nil
	}
}
