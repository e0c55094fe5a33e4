package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"credit-decision-engine/internal/customer"
	"credit-decision-engine/internal/engine"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "credit.db"), true)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close database: %v", err)
		}
	})
	return db
}

func testRecord(id string) customer.Record {
	return customer.Record{
		CustomerID:          id,
		RiskScore:           0.03,
		AccountValue:        150000,
		Volatility:          0.2,
		DaysSinceLastOrder:  5,
		GMVSlope:            300,
		ActiveMonths:        14,
		OrderCount:          300,
		MonthlyIncome:       18500,
		ExistingObligations: 3400,
		BureauScore:         785,
	}
}

func TestCustomerRoundTrip(t *testing.T) {
	db := openTestDB(t)
	rec := testRecord("CUST-0001")

	if err := db.UpsertCustomer(rec); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	stored, err := db.GetCustomer("CUST-0001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored != rec {
		t.Fatalf("expected %+v got %+v", rec, stored)
	}

	if _, err := db.GetCustomer("CUST-9999"); !errors.Is(err, customer.ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
}

func TestUpsertCustomerRefreshes(t *testing.T) {
	db := openTestDB(t)
	rec := testRecord("CUST-0001")

	if err := db.UpsertCustomer(rec); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	rec.RiskScore = 0.2
	rec.BureauScore = 690
	if err := db.UpsertCustomer(rec); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	count, err := db.CountCustomers()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 customer got %d", count)
	}

	stored, err := db.GetCustomer("CUST-0001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.RiskScore != 0.2 || stored.BureauScore != 690 {
		t.Fatalf("expected refreshed fields, got %+v", stored)
	}
}

func TestListCustomersOrdered(t *testing.T) {
	db := openTestDB(t)
	for _, id := range []string{"CUST-0003", "CUST-0001", "CUST-0002"} {
		if err := db.UpsertCustomer(testRecord(id)); err != nil {
			t.Fatalf("upsert %s: %v", id, err)
		}
	}

	records, err := db.ListCustomers(0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records got %d", len(records))
	}
	for i, expected := range []string{"CUST-0001", "CUST-0002", "CUST-0003"} {
		if records[i].CustomerID != expected {
			t.Fatalf("position %d: expected %s got %s", i, expected, records[i].CustomerID)
		}
	}

	limited, err := db.ListCustomers(2)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 records got %d", len(limited))
	}
}

func TestDecisionLogRoundTrip(t *testing.T) {
	db := openTestDB(t)

	eng, err := engine.New(engine.DefaultPolicy())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	decision, err := eng.Evaluate(testRecord("CUST-0001"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	row, err := db.SaveDecision(decision)
	if err != nil {
		t.Fatalf("save decision: %v", err)
	}
	if row.DecisionID == "" {
		t.Fatalf("expected generated decision id")
	}
	if row.Verdict != string(decision.Verdict) {
		t.Fatalf("expected verdict %q got %q", decision.Verdict, row.Verdict)
	}

	rows, err := db.RecentDecisions(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row got %d", len(rows))
	}

	restored, err := rows[0].Decision()
	if err != nil {
		t.Fatalf("decode decision: %v", err)
	}
	if restored.Verdict != decision.Verdict || restored.CustomerID != decision.CustomerID {
		t.Fatalf("snapshot mismatch: %+v", restored)
	}
	if len(restored.Rationale) != len(decision.Rationale) {
		t.Fatalf("expected %d rationale lines got %d", len(decision.Rationale), len(restored.Rationale))
	}
}

func TestProviderAdapter(t *testing.T) {
	db := openTestDB(t)
	if err := db.UpsertCustomer(testRecord("CUST-0001")); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	var provider customer.Provider = NewProvider(db)
	rec, err := provider.Lookup(context.Background(), "CUST-0001")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if rec.CustomerID != "CUST-0001" {
		t.Fatalf("unexpected record %+v", rec)
	}

	records, err := provider.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record got %d", len(records))
	}
}
