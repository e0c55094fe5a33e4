package engine

import (
	"errors"
	"testing"
)

func TestAssessDTIArithmetic(t *testing.T) {
	offer := LoanOffer{Amount: 20000, MonthlyInstallment: 3406}

	assessment, err := Assess(offer, 18500, 3400)
	if err != nil {
		t.Fatalf("assess: %v", err)
	}
	if assessment.NewInstallment != 3406 {
		t.Fatalf("expected new installment 3406 got %v", assessment.NewInstallment)
	}
	if assessment.TotalObligations != 6806 {
		t.Fatalf("expected total obligations 6806 got %v", assessment.TotalObligations)
	}
	if !approxEqual(assessment.DTIRatio, 36.789, 0.01) {
		t.Fatalf("expected dti ratio ~36.8 got %v", assessment.DTIRatio)
	}
	if assessment.Status != DTIHealthy {
		t.Fatalf("expected status %q got %q", DTIHealthy, assessment.Status)
	}
}

func TestAssessStatusBands(t *testing.T) {
	tests := []struct {
		name        string
		installment float64
		income      float64
		obligations float64
		expected    DTIStatus
	}{
		{"healthy", 0, 10000, 3999, DTIHealthy},
		{"elevated at 40", 0, 10000, 4000, DTIElevated},
		{"elevated at 50", 0, 10000, 5000, DTIElevated},
		{"high above 50", 0, 10000, 5001, DTIHigh},
		{"installment pushes high", 4000, 10000, 2000, DTIHigh},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			offer := LoanOffer{MonthlyInstallment: tc.installment}
			assessment, err := Assess(offer, tc.income, tc.obligations)
			if err != nil {
				t.Fatalf("assess: %v", err)
			}
			if assessment.Status != tc.expected {
				t.Fatalf("expected %q got %q (dti %v)", tc.expected, assessment.Status, assessment.DTIRatio)
			}
		})
	}
}

func TestAssessZeroOffer(t *testing.T) {
	assessment, err := Assess(LoanOffer{}, 18500, 3400)
	if err != nil {
		t.Fatalf("assess: %v", err)
	}
	if assessment.NewInstallment != 0 {
		t.Fatalf("expected zero installment got %v", assessment.NewInstallment)
	}
	if !approxEqual(assessment.DTIRatio, 18.378, 0.01) {
		t.Fatalf("expected dti from existing obligations only, got %v", assessment.DTIRatio)
	}
}

func TestAssessInvalidInput(t *testing.T) {
	tests := []struct {
		name        string
		income      float64
		obligations float64
	}{
		{"zero income", 0, 1000},
		{"negative income", -500, 1000},
		{"negative obligations", 10000, -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Assess(LoanOffer{}, tc.income, tc.obligations); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput got %v", err)
			}
		})
	}
}
