package engine

import "credit-decision-engine/internal/customer"

// Effect is the qualitative direction of a feature's contribution.
type Effect string

const (
	EffectIncreasesRisk   Effect = "increases risk"
	EffectSlightIncrease  Effect = "slight risk increase"
	EffectReducesRisk     Effect = "reduces risk"
	EffectSlightReduction Effect = "slight risk reduction"
)

// FeatureAttribution explains one feature's push on the risk score. Positive
// contributions increase risk, negative ones reduce it. This is a calibrated
// heuristic, not a trained explainer.
type FeatureAttribution struct {
	Feature      string  `json:"feature"`
	Observed     float64 `json:"observed_value"`
	Contribution float64 `json:"contribution"`
	Effect       Effect  `json:"effect"`
	Explanation  string  `json:"explanation"`
}

type compareOp int

const (
	opAbove compareOp = iota
	opAtLeast
	opBelow
)

// attributionBucket holds the outcome for one branch of a feature rule. The
// multiplier is signed: favorable buckets carry negative multipliers so their
// contribution reduces risk.
type attributionBucket struct {
	Multiplier  float64
	Effect      Effect
	Explanation string
}

// attributionRule maps an observed feature value into one of three buckets.
// Upper is tested first, then Lower, then Fallback applies, all using the
// same comparison operator.
type attributionRule struct {
	Feature  string
	Observe  func(customer.Record) float64
	Op       compareOp
	Upper    float64
	Lower    float64
	High     attributionBucket
	Mid      attributionBucket
	Fallback attributionBucket
}

// attributionRules is the canonical feature list in display order. Bucket
// boundaries and multipliers are fixed; tests pin them.
var attributionRules = []attributionRule{
	{
		Feature: "Volatility",
		Observe: func(r customer.Record) float64 { return r.Volatility },
		Op:      opAbove, Upper: 0.5, Lower: 0.3,
		High:     attributionBucket{1.5, EffectIncreasesRisk, "High volatility indicates unstable business"},
		Mid:      attributionBucket{0.5, EffectSlightIncrease, "Moderate volatility shows some instability"},
		Fallback: attributionBucket{-0.8, EffectReducesRisk, "Low volatility indicates stable business"},
	},
	{
		Feature: "Days Since Last Order",
		Observe: func(r customer.Record) float64 { return float64(r.DaysSinceLastOrder) },
		Op:      opAbove, Upper: 60, Lower: 30,
		High:     attributionBucket{1.2, EffectIncreasesRisk, "Long gap since last order is concerning"},
		Mid:      attributionBucket{0.3, EffectSlightIncrease, "Moderate gap shows reduced engagement"},
		Fallback: attributionBucket{-0.7, EffectReducesRisk, "Recent activity shows engagement"},
	},
	{
		Feature: "GMV Slope",
		Observe: func(r customer.Record) float64 { return r.GMVSlope },
		Op:      opBelow, Upper: -500, Lower: 0,
		High:     attributionBucket{1.3, EffectIncreasesRisk, "Negative growth trend is concerning"},
		Mid:      attributionBucket{0.4, EffectSlightIncrease, "Declining trend shows weakness"},
		Fallback: attributionBucket{-0.6, EffectReducesRisk, "Positive growth trend is favorable"},
	},
	{
		Feature: "Sales Volume",
		Observe: func(r customer.Record) float64 { return r.AccountValue },
		Op:      opAbove, Upper: 100000, Lower: 50000,
		High:     attributionBucket{-0.9, EffectReducesRisk, "High sales volume reduces risk"},
		Mid:      attributionBucket{-0.4, EffectSlightReduction, "Moderate sales provide some stability"},
		Fallback: attributionBucket{0.6, EffectIncreasesRisk, "Low sales volume increases risk"},
	},
	{
		Feature: "Consistency Score",
		Observe: customer.Record.ConsistencyScore,
		Op:      opAbove, Upper: 0.7, Lower: 0.5,
		High:     attributionBucket{-0.5, EffectReducesRisk, "Consistent behavior is positive"},
		Mid:      attributionBucket{-0.2, EffectSlightReduction, "Moderate consistency is acceptable"},
		Fallback: attributionBucket{0.7, EffectIncreasesRisk, "Inconsistent behavior is concerning"},
	},
	{
		Feature: "Active Months",
		Observe: func(r customer.Record) float64 { return float64(r.ActiveMonths) },
		Op:      opAtLeast, Upper: 12, Lower: 6,
		High:     attributionBucket{-0.6, EffectReducesRisk, "Long tenure indicates stability"},
		Mid:      attributionBucket{-0.3, EffectSlightReduction, "Moderate tenure shows commitment"},
		Fallback: attributionBucket{0.5, EffectIncreasesRisk, "Short tenure increases uncertainty"},
	},
	{
		Feature: "Order Frequency",
		Observe: customer.Record.OrderFrequency,
		Op:      opAbove, Upper: 20, Lower: 10,
		High:     attributionBucket{-0.4, EffectReducesRisk, "Regular orders show reliability"},
		Mid:      attributionBucket{-0.2, EffectSlightReduction, "Moderate order frequency is acceptable"},
		Fallback: attributionBucket{0.4, EffectIncreasesRisk, "Low order frequency is concerning"},
	},
	{
		Feature: "Recency Score",
		Observe: customer.Record.RecencyScore,
		Op:      opAbove, Upper: 0.8, Lower: 0.5,
		High:     attributionBucket{-0.3, EffectReducesRisk, "Recent transactions are positive"},
		Mid:      attributionBucket{-0.1, EffectSlightReduction, "Moderate recency is acceptable"},
		Fallback: attributionBucket{0.5, EffectIncreasesRisk, "Lack of recent activity is concerning"},
	},
}

func (r attributionRule) bucket(value float64) attributionBucket {
	match := func(threshold float64) bool {
		switch r.Op {
		case opAtLeast:
			return value >= threshold
		case opBelow:
			return value < threshold
		default:
			return value > threshold
		}
	}
	if match(r.Upper) {
		return r.High
	}
	if match(r.Lower) {
		return r.Mid
	}
	return r.Fallback
}

// Explain produces the per-feature attribution table for a record. The
// magnitude of every contribution scales with the record's 1-10 score spread
// across the eight features; the output order matches the canonical list and
// is never re-sorted.
func Explain(rec customer.Record) []FeatureAttribution {
	baseImpact := ScaledScore(rec.RiskScore) / 8

	attributions := make([]FeatureAttribution, 0, len(attributionRules))
	for _, rule := range attributionRules {
		value := rule.Observe(rec)
		bucket := rule.bucket(value)
		attributions = append(attributions, FeatureAttribution{
			Feature:      rule.Feature,
			Observed:     value,
			Contribution: baseImpact * bucket.Multiplier,
			Effect:       bucket.Effect,
			Explanation:  bucket.Explanation,
		})
	}
	return attributions
}
