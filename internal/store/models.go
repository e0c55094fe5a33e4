package store

import (
	"encoding/json"
	"strings"
	"time"

	"credit-decision-engine/internal/customer"
	"credit-decision-engine/internal/engine"
)

// Customer persists one customer record supplied by the data provider.
type Customer struct {
	ID                  uint   `gorm:"primaryKey"`
	CustomerID          string `gorm:"size:64;uniqueIndex"`
	RiskScore           float64
	AccountValue        float64
	Volatility          float64
	DaysSinceLastOrder  int
	GMVSlope            float64
	ActiveMonths        int
	OrderCount          int
	MonthlyIncome       float64
	ExistingObligations float64
	BureauScore         int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// FromRecord maps a provider record onto the persistence model.
func FromRecord(rec customer.Record) Customer {
	return Customer{
		CustomerID:          strings.TrimSpace(rec.CustomerID),
		RiskScore:           rec.RiskScore,
		AccountValue:        rec.AccountValue,
		Volatility:          rec.Volatility,
		DaysSinceLastOrder:  rec.DaysSinceLastOrder,
		GMVSlope:            rec.GMVSlope,
		ActiveMonths:        rec.ActiveMonths,
		OrderCount:          rec.OrderCount,
		MonthlyIncome:       rec.MonthlyIncome,
		ExistingObligations: rec.ExistingObligations,
		BureauScore:         rec.BureauScore,
	}
}

// ToRecord converts the persistence model back into a provider record.
func (c Customer) ToRecord() customer.Record {
	return customer.Record{
		CustomerID:          c.CustomerID,
		RiskScore:           c.RiskScore,
		AccountValue:        c.AccountValue,
		Volatility:          c.Volatility,
		DaysSinceLastOrder:  c.DaysSinceLastOrder,
		GMVSlope:            c.GMVSlope,
		ActiveMonths:        c.ActiveMonths,
		OrderCount:          c.OrderCount,
		MonthlyIncome:       c.MonthlyIncome,
		ExistingObligations: c.ExistingObligations,
		BureauScore:         c.BureauScore,
	}
}

// DecisionLog is one appended evaluation outcome. Rows are immutable once
// written; the full decision snapshot is stored as JSON alongside the
// queryable summary columns.
type DecisionLog struct {
	ID           uint   `gorm:"primaryKey"`
	DecisionID   string `gorm:"size:36;uniqueIndex"`
	CustomerID   string `gorm:"size:64;index"`
	RiskScore    float64
	Tier         string `gorm:"size:32"`
	Verdict      string `gorm:"size:32;index"`
	OfferAmount  float64
	DTIRatio     float64
	DTIStatus    string `gorm:"size:16"`
	DecisionJSON string `gorm:"type:text"`
	CreatedAt    time.Time
}

// SetDecision serializes the decision snapshot into the log row.
func (l *DecisionLog) SetDecision(decision engine.Decision) error {
	payload, err := json.Marshal(decision)
	if err != nil {
		return err
	}
	l.DecisionJSON = string(payload)
	return nil
}

// Decision returns the unmarshalled decision snapshot.
func (l DecisionLog) Decision() (engine.Decision, error) {
	var decision engine.Decision
	if strings.TrimSpace(l.DecisionJSON) == "" {
		return decision, nil
	}
	err := json.Unmarshal([]byte(l.DecisionJSON), &decision)
	return decision, err
}
