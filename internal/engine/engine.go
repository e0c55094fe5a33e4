// Package engine implements the credit decision engine: a pure, stateless
// rule system that turns a customer's risk score and financial attributes
// into a loan verdict with recommended terms, a per-feature explanation of
// the score, and a debt-to-income affordability check. Every component is a
// deterministic function of its inputs; identical records always produce
// identical decisions.
package engine

import (
	"fmt"
	"math"

	"credit-decision-engine/internal/customer"
)

// Engine evaluates customer records under a fixed policy. It holds no
// mutable state, so a single instance may serve any number of concurrent
// evaluations.
type Engine struct {
	policy Policy
}

// New constructs an engine with the given policy.
func New(policy Policy) (*Engine, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Engine{policy: policy}, nil
}

// Policy returns the policy the engine was built with.
func (e *Engine) Policy() Policy {
	return e.policy
}

// ValidateRecord shape-checks the primary numeric fields a decision depends
// on. A violation fails with ErrInvalidInput; secondary fields such as the
// bureau score are not checked here and degrade locally instead.
func ValidateRecord(rec customer.Record) error {
	if rec.CustomerID == "" {
		return fmt.Errorf("%w: customer id is required", ErrInvalidInput)
	}
	if math.IsNaN(rec.RiskScore) || rec.RiskScore < 0 || rec.RiskScore > 1 {
		return fmt.Errorf("%w: risk score %v outside [0,1]", ErrInvalidInput, rec.RiskScore)
	}
	if math.IsNaN(rec.AccountValue) || rec.AccountValue < 0 {
		return fmt.Errorf("%w: account value must be non-negative, got %v", ErrInvalidInput, rec.AccountValue)
	}
	if rec.Volatility < 0 {
		return fmt.Errorf("%w: volatility must be non-negative, got %v", ErrInvalidInput, rec.Volatility)
	}
	if rec.DaysSinceLastOrder < 0 {
		return fmt.Errorf("%w: days since last order must be non-negative, got %d", ErrInvalidInput, rec.DaysSinceLastOrder)
	}
	if rec.ActiveMonths < 0 || rec.ActiveMonths > 36 {
		return fmt.Errorf("%w: active months %d outside [0,36]", ErrInvalidInput, rec.ActiveMonths)
	}
	if rec.OrderCount < 0 {
		return fmt.Errorf("%w: order count must be non-negative, got %d", ErrInvalidInput, rec.OrderCount)
	}
	if math.IsNaN(rec.MonthlyIncome) || rec.MonthlyIncome <= 0 {
		return fmt.Errorf("%w: monthly income must be positive, got %v", ErrInvalidInput, rec.MonthlyIncome)
	}
	if rec.ExistingObligations < 0 {
		return fmt.Errorf("%w: existing obligations must be non-negative, got %v", ErrInvalidInput, rec.ExistingObligations)
	}
	return nil
}

// Evaluate runs the full pipeline for one record: classify the tier, price
// the offer, synthesize the attribution table, assess affordability, then
// combine everything into the final decision.
func (e *Engine) Evaluate(rec customer.Record) (Decision, error) {
	if err := ValidateRecord(rec); err != nil {
		return Decision{}, err
	}

	tier, err := e.Classify(rec.RiskScore)
	if err != nil {
		return Decision{}, err
	}

	offer := e.Price(tier, rec)
	afford, err := Assess(offer, rec.MonthlyIncome, rec.ExistingObligations)
	if err != nil {
		return Decision{}, err
	}

	decision := e.Decide(tier, offer, afford, rec)
	decision.Attributions = Explain(rec)
	return decision, nil
}
