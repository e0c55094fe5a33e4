package engine

import "fmt"

// DTIStatus bands the debt-to-income ratio.
type DTIStatus string

const (
	DTIHealthy  DTIStatus = "Healthy"
	DTIElevated DTIStatus = "Elevated"
	DTIHigh     DTIStatus = "High"
)

const (
	dtiHealthyBelow = 40.0
	dtiElevatedMax  = 50.0
)

// Affordability is the debt-to-income assessment for an offer against the
// customer's income and existing obligations.
type Affordability struct {
	MonthlyIncome       float64   `json:"monthly_income"`
	ExistingObligations float64   `json:"existing_obligations"`
	NewInstallment      float64   `json:"new_installment"`
	TotalObligations    float64   `json:"total_obligations"`
	DTIRatio            float64   `json:"dti_ratio"`
	Status              DTIStatus `json:"status"`
}

// Assess computes the DTI ratio the offer's installment would push the
// customer to. A zero offer contributes no new installment.
func Assess(offer LoanOffer, monthlyIncome, existingObligations float64) (Affordability, error) {
	if monthlyIncome <= 0 || monthlyIncome != monthlyIncome {
		return Affordability{}, fmt.Errorf("%w: monthly income must be positive, got %v", ErrInvalidInput, monthlyIncome)
	}
	if existingObligations < 0 {
		return Affordability{}, fmt.Errorf("%w: existing obligations must be non-negative, got %v", ErrInvalidInput, existingObligations)
	}

	assessment := Affordability{
		MonthlyIncome:       monthlyIncome,
		ExistingObligations: existingObligations,
		NewInstallment:      offer.MonthlyInstallment,
	}
	assessment.TotalObligations = existingObligations + assessment.NewInstallment
	assessment.DTIRatio = assessment.TotalObligations / monthlyIncome * 100
	assessment.Status = dtiStatus(assessment.DTIRatio)
	return assessment, nil
}

func dtiStatus(ratio float64) DTIStatus {
	switch {
	case ratio < dtiHealthyBelow:
		return DTIHealthy
	case ratio <= dtiElevatedMax:
		return DTIElevated
	default:
		return DTIHigh
	}
}
