// Command seed populates the SQLite customer book with simulated customers
// and optionally writes the generated records to a JSON file for inspection.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"credit-decision-engine/internal/customer"
	"credit-decision-engine/internal/store"
)

func main() {
	var (
		dbPath     = flag.String("db", filepath.FromSlash("data/credit-decisions.db"), "Path to SQLite database")
		count      = flag.Int("count", 50, "Number of simulated customers to generate")
		outputPath = flag.String("output", "", "Optional path to write the generated records as JSON")
		replace    = flag.Bool("replace", false, "Regenerate records even for customers that already exist")
	)
	flag.Parse()

	if dir := filepath.Dir(*dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logrus.Fatalf("create data directory: %v", err)
		}
	}

	db, err := store.Open(*dbPath, true)
	if err != nil {
		logrus.Fatalf("open database: %v", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logrus.WithError(cerr).Warn("close database")
		}
	}()

	sim := customer.NewSimulator(*count)
	records, err := sim.List(context.Background(), 0)
	if err != nil {
		logrus.Fatalf("simulate customers: %v", err)
	}

	inserted := 0
	for _, rec := range records {
		if !*replace {
			if _, err := db.GetCustomer(rec.CustomerID); err == nil {
				continue
			}
		}
		if err := db.UpsertCustomer(rec); err != nil {
			logrus.Fatalf("upsert %s: %v", rec.CustomerID, err)
		}
		inserted++
	}

	if *outputPath != "" {
		payload, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			logrus.Fatalf("marshal records: %v", err)
		}
		if err := os.WriteFile(*outputPath, payload, 0o644); err != nil {
			logrus.Fatalf("write output: %v", err)
		}
	}

	total, err := db.CountCustomers()
	if err != nil {
		logrus.Fatalf("count customers: %v", err)
	}
	logrus.WithFields(logrus.Fields{
		"generated": len(records),
		"inserted":  inserted,
		"total":     total,
	}).Info("customer book seeded")
}
