package customer

import (
	"context"
	"reflect"
	"testing"
)

func TestSimulateDeterministic(t *testing.T) {
	first := Simulate("CUST-0042")
	second := Simulate("CUST-0042")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical records, got\n%+v\n%+v", first, second)
	}

	other := Simulate("CUST-0043")
	if reflect.DeepEqual(first, other) {
		t.Fatalf("expected distinct records for distinct ids")
	}
}

func TestSimulateRiskConsistentBands(t *testing.T) {
	for i := 0; i < 200; i++ {
		rec := Simulate(string(rune('A'+i%26)) + "-" + string(rune('0'+i%10)))
		if rec.RiskScore < 0 || rec.RiskScore > 1 {
			t.Fatalf("risk score %v outside [0,1]", rec.RiskScore)
		}
		if rec.MonthlyIncome <= 0 {
			t.Fatalf("expected positive income, got %v", rec.MonthlyIncome)
		}
		if rec.ExistingObligations < 0 {
			t.Fatalf("expected non-negative obligations, got %v", rec.ExistingObligations)
		}
		if rec.ActiveMonths < 0 || rec.ActiveMonths > 36 {
			t.Fatalf("active months %d outside [0,36]", rec.ActiveMonths)
		}
		switch {
		case rec.RiskScore >= 0.7:
			if rec.BureauScore < 500 || rec.BureauScore > 600 {
				t.Fatalf("very high risk bureau score %d outside band", rec.BureauScore)
			}
		case rec.RiskScore < 0.05:
			if rec.BureauScore < 780 || rec.BureauScore > 850 {
				t.Fatalf("very low risk bureau score %d outside band", rec.BureauScore)
			}
			if rec.ActiveMonths < 12 {
				t.Fatalf("very low risk tenure %d below band", rec.ActiveMonths)
			}
		}
	}
}

func TestSimulatorListAndLookup(t *testing.T) {
	sim := NewSimulator(10)

	records, err := sim.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 10 {
		t.Fatalf("expected 10 records got %d", len(records))
	}

	limited, err := sim.List(context.Background(), 3)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 3 {
		t.Fatalf("expected 3 records got %d", len(limited))
	}

	rec, err := sim.Lookup(context.Background(), records[0].CustomerID)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !reflect.DeepEqual(rec, records[0]) {
		t.Fatalf("lookup mismatch for %s", records[0].CustomerID)
	}

	if _, err := sim.Lookup(context.Background(), ""); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
}

func TestRecordDerivedValues(t *testing.T) {
	rec := Record{OrderCount: 120, ActiveMonths: 12, Volatility: 0.25, DaysSinceLastOrder: 9}

	if got := rec.OrderFrequency(); got != 10 {
		t.Fatalf("expected frequency 10 got %v", got)
	}
	if got := rec.ConsistencyScore(); got != 0.75 {
		t.Fatalf("expected consistency 0.75 got %v", got)
	}
	if got := rec.RecencyScore(); got != 0.9 {
		t.Fatalf("expected recency 0.9 got %v", got)
	}

	zero := Record{OrderCount: 5, ActiveMonths: 0, DaysSinceLastOrder: 120}
	if got := zero.OrderFrequency(); got != 5 {
		t.Fatalf("expected frequency clamp to one month, got %v", got)
	}
	if got := zero.RecencyScore(); got != 0 {
		t.Fatalf("expected recency floor 0 got %v", got)
	}
}
