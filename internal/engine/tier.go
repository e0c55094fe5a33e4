package engine

import "fmt"

// Tier is the discretized risk band derived from a continuous risk score.
// Tiers are totally ordered: a lower value always means lower risk.
type Tier int

const (
	TierVeryLow Tier = iota
	TierLow
	TierMedium
	TierHigh
	TierVeryHigh
)

var tierLabels = [...]string{
	"Very Low Risk",
	"Low Risk",
	"Medium Risk",
	"High Risk",
	"Very High Risk",
}

func (t Tier) String() string {
	if t < TierVeryLow || t > TierVeryHigh {
		return fmt.Sprintf("Tier(%d)", int(t))
	}
	return tierLabels[t]
}

// Classify maps a risk score in [0,1] onto a tier using the policy's
// thresholds. Scores outside the domain fail with ErrInvalidInput.
func (e *Engine) Classify(riskScore float64) (Tier, error) {
	if riskScore != riskScore || riskScore < 0 || riskScore > 1 {
		return 0, fmt.Errorf("%w: risk score %v outside [0,1]", ErrInvalidInput, riskScore)
	}
	th := e.policy.Thresholds
	switch {
	case riskScore < th.VeryLow:
		return TierVeryLow, nil
	case riskScore < th.Low:
		return TierLow, nil
	case riskScore < th.Medium:
		return TierMedium, nil
	case riskScore < th.High:
		return TierHigh, nil
	default:
		return TierVeryHigh, nil
	}
}

// ScaledScore maps the raw risk score onto the 1-10 display scale used by
// the attribution synthesizer, where 10 is the lowest risk.
func ScaledScore(riskScore float64) float64 {
	scaled := 10 - riskScore*9
	if scaled > 10 {
		return 10
	}
	if scaled < 1 {
		return 1
	}
	return scaled
}
