package api

import (
	"time"

	"credit-decision-engine/internal/customer"
	"credit-decision-engine/internal/engine"
	"credit-decision-engine/internal/store"
)

// CustomerDTO is the API representation of a customer record.
type CustomerDTO struct {
	CustomerID          string  `json:"customer_id"`
	RiskScore           float64 `json:"risk_score"`
	ScaledScore         float64 `json:"scaled_score"`
	AccountValue        float64 `json:"account_value"`
	Volatility          float64 `json:"volatility"`
	DaysSinceLastOrder  int     `json:"days_since_last_order"`
	GMVSlope            float64 `json:"gmv_slope"`
	ActiveMonths        int     `json:"active_months"`
	OrderCount          int     `json:"order_count"`
	OrderFrequency      float64 `json:"order_frequency"`
	MonthlyIncome       float64 `json:"monthly_income"`
	ExistingObligations float64 `json:"existing_monthly_obligations"`
	BureauScore         int     `json:"bureau_score,omitempty"`
}

// CustomerFromRecord maps a provider record to its DTO.
func CustomerFromRecord(rec customer.Record) CustomerDTO {
	return CustomerDTO{
		CustomerID:          rec.CustomerID,
		RiskScore:           rec.RiskScore,
		ScaledScore:         engine.ScaledScore(rec.RiskScore),
		AccountValue:        rec.AccountValue,
		Volatility:          rec.Volatility,
		DaysSinceLastOrder:  rec.DaysSinceLastOrder,
		GMVSlope:            rec.GMVSlope,
		ActiveMonths:        rec.ActiveMonths,
		OrderCount:          rec.OrderCount,
		OrderFrequency:      rec.OrderFrequency(),
		MonthlyIncome:       rec.MonthlyIncome,
		ExistingObligations: rec.ExistingObligations,
		BureauScore:         rec.BureauScore,
	}
}

// DecisionDTO is the API representation of one evaluation outcome. It embeds
// the engine's immutable decision snapshot plus the log row identity when the
// decision was persisted.
type DecisionDTO struct {
	engine.Decision
	DecisionID string     `json:"decision_id,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

// DecisionFromEngine wraps an engine decision for the API.
func DecisionFromEngine(decision engine.Decision) DecisionDTO {
	return DecisionDTO{Decision: decision}
}

// DecisionLogDTO summarizes one decision log row.
type DecisionLogDTO struct {
	DecisionID  string    `json:"decision_id"`
	CustomerID  string    `json:"customer_id"`
	RiskScore   float64   `json:"risk_score"`
	Tier        string    `json:"tier"`
	Verdict     string    `json:"verdict"`
	OfferAmount float64   `json:"offer_amount"`
	DTIRatio    float64   `json:"dti_ratio"`
	DTIStatus   string    `json:"dti_status"`
	CreatedAt   time.Time `json:"created_at"`
}

// DecisionLogFromModel maps a log row to its DTO.
func DecisionLogFromModel(row store.DecisionLog) DecisionLogDTO {
	return DecisionLogDTO{
		DecisionID:  row.DecisionID,
		CustomerID:  row.CustomerID,
		RiskScore:   row.RiskScore,
		Tier:        row.Tier,
		Verdict:     row.Verdict,
		OfferAmount: row.OfferAmount,
		DTIRatio:    row.DTIRatio,
		DTIStatus:   row.DTIStatus,
		CreatedAt:   row.CreatedAt,
	}
}
