package customer

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
)

// Simulator fabricates customer records with attributes that stay consistent
// with the drawn risk score: low-risk customers get healthier volumes, tenure
// and bureau scores than high-risk ones. Generation is seeded from the
// customer ID, so looking up the same ID always yields the same record.
type Simulator struct {
	size int
}

// NewSimulator returns a simulator exposing the given number of customers
// through List. Lookup accepts any ID.
func NewSimulator(size int) *Simulator {
	if size <= 0 {
		size = 50
	}
	return &Simulator{size: size}
}

// Lookup fabricates the record for the given ID.
func (s *Simulator) Lookup(_ context.Context, customerID string) (Record, error) {
	if customerID == "" {
		return Record{}, ErrNotFound
	}
	return Simulate(customerID), nil
}

// List fabricates records for the simulator's fixed ID range.
func (s *Simulator) List(_ context.Context, limit int) ([]Record, error) {
	n := s.size
	if limit > 0 && limit < n {
		n = limit
	}
	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, Simulate(fmt.Sprintf("CUST-%04d", i+1)))
	}
	return records, nil
}

// Simulate builds a deterministic record for the given customer ID.
func Simulate(customerID string) Record {
	h := fnv.New64a()
	h.Write([]byte(customerID))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	risk := drawRiskScore(rng)
	rec := Record{
		CustomerID:    customerID,
		RiskScore:     risk,
		MonthlyIncome: uniform(rng, 12000, 35000),
	}
	rec.ExistingObligations = rec.MonthlyIncome * uniform(rng, 0.10, 0.30)

	switch {
	case risk >= 0.7:
		rec.AccountValue = uniform(rng, 15000, 50000)
		rec.OrderCount = randint(rng, 20, 60)
		rec.ActiveMonths = randint(rng, 4, 8)
		rec.DaysSinceLastOrder = randint(rng, 45, 90)
		rec.Volatility = uniform(rng, 0.50, 0.95)
		rec.GMVSlope = uniform(rng, -1500, 0)
		rec.BureauScore = randint(rng, 500, 600)
	case risk >= 0.5:
		rec.AccountValue = uniform(rng, 25000, 80000)
		rec.OrderCount = randint(rng, 30, 100)
		rec.ActiveMonths = randint(rng, 6, 10)
		rec.DaysSinceLastOrder = randint(rng, 30, 60)
		rec.Volatility = uniform(rng, 0.40, 0.80)
		rec.GMVSlope = uniform(rng, -800, 100)
		rec.BureauScore = randint(rng, 580, 650)
	case risk >= 0.1:
		rec.AccountValue = uniform(rng, 40000, 150000)
		rec.OrderCount = randint(rng, 50, 150)
		rec.ActiveMonths = randint(rng, 8, 14)
		rec.DaysSinceLastOrder = randint(rng, 15, 35)
		rec.Volatility = uniform(rng, 0.20, 0.50)
		rec.GMVSlope = uniform(rng, -200, 400)
		rec.BureauScore = randint(rng, 640, 720)
	case risk >= 0.05:
		rec.AccountValue = uniform(rng, 80000, 250000)
		rec.OrderCount = randint(rng, 80, 200)
		rec.ActiveMonths = randint(rng, 12, 24)
		rec.DaysSinceLastOrder = randint(rng, 1, 15)
		rec.Volatility = uniform(rng, 0.10, 0.35)
		rec.GMVSlope = uniform(rng, 0, 600)
		rec.BureauScore = randint(rng, 710, 800)
	default:
		rec.AccountValue = uniform(rng, 80000, 250000)
		rec.OrderCount = randint(rng, 80, 200)
		rec.ActiveMonths = randint(rng, 12, 24)
		rec.DaysSinceLastOrder = randint(rng, 1, 15)
		rec.Volatility = uniform(rng, 0.02, 0.25)
		rec.GMVSlope = uniform(rng, 50, 800)
		rec.BureauScore = randint(rng, 780, 850)
	}
	return rec
}

// drawRiskScore samples a score from bands weighted the way the demo
// population clusters: most customers sit at the low-risk end.
func drawRiskScore(rng *rand.Rand) float64 {
	u := rng.Float64()
	switch {
	case u < 0.40:
		return uniform(rng, 0.001, 0.05)
	case u < 0.65:
		return uniform(rng, 0.05, 0.10)
	case u < 0.85:
		return uniform(rng, 0.10, 0.50)
	case u < 0.95:
		return uniform(rng, 0.50, 0.70)
	default:
		return uniform(rng, 0.70, 0.98)
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func randint(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
