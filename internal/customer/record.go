package customer

// Record is the snapshot of a customer's risk and financial attributes
// consumed by the decision engine. It is assembled by a Provider and never
// mutated after lookup.
type Record struct {
	CustomerID string `json:"customer_id"`

	// RiskScore is a probability-of-default-like quantity in [0,1].
	// Lower is better. It is the single ranking key for every derived field.
	RiskScore float64 `json:"risk_score"`

	// AccountValue is the gross merchandise value transacted by the
	// customer, used both as the loan sizing base and as the sales-volume
	// attribution input.
	AccountValue float64 `json:"account_value"`

	Volatility         float64 `json:"volatility"`
	DaysSinceLastOrder int     `json:"days_since_last_order"`
	GMVSlope           float64 `json:"gmv_slope"`
	ActiveMonths       int     `json:"active_months"`
	OrderCount         int     `json:"order_count"`

	MonthlyIncome       float64 `json:"monthly_income"`
	ExistingObligations float64 `json:"existing_monthly_obligations"`

	// BureauScore is an external credit-bureau score (roughly 300-900).
	// Zero means unavailable; it only feeds rationale text, never tiering.
	BureauScore int `json:"bureau_score"`
}

// OrderFrequency returns average orders per active month.
func (r Record) OrderFrequency() float64 {
	months := r.ActiveMonths
	if months < 1 {
		months = 1
	}
	return float64(r.OrderCount) / float64(months)
}

// ConsistencyScore derives a stability measure from volatility.
func (r Record) ConsistencyScore() float64 {
	return 1 - r.Volatility
}

// RecencyScore maps days since last order onto [0,1], where 1 means an
// order today and 0 means 90 days or more of silence.
func (r Record) RecencyScore() float64 {
	score := 1 - float64(r.DaysSinceLastOrder)/90
	if score < 0 {
		return 0
	}
	return score
}
