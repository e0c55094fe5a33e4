package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"credit-decision-engine/internal/customer"
	"credit-decision-engine/internal/engine"
)

// Database wraps the GORM DB handle and exposes repository helpers for the
// customer book and the decision log.
type Database struct {
	gorm *gorm.DB
	mu   sync.Mutex
}

// Open initializes the SQLite-backed database at the provided path.
func Open(path string, silent bool) (*Database, error) {
	cfg := &gorm.Config{}
	if silent {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}
	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&Customer{}, &DecisionLog{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.Exec("PRAGMA journal_mode=WAL").Error; err != nil {
		logrus.WithError(err).Warn("enable WAL mode")
	}
	if err := db.Exec("PRAGMA synchronous=NORMAL").Error; err != nil {
		logrus.WithError(err).Warn("set synchronous pragma")
	}
	return &Database{gorm: db}, nil
}

// GORM exposes the raw gorm.DB handle.
func (d *Database) GORM() *gorm.DB {
	return d.gorm
}

// Close closes the underlying database connection.
func (d *Database) Close() error {
	if d == nil {
		return nil
	}
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// UpsertCustomer inserts or refreshes a customer record keyed by its ID.
func (d *Database) UpsertCustomer(rec customer.Record) error {
	model := FromRecord(rec)
	if model.CustomerID == "" {
		return errors.New("customer id is empty")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "customer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"risk_score", "account_value", "volatility", "days_since_last_order",
			"gmv_slope", "active_months", "order_count", "monthly_income",
			"existing_obligations", "bureau_score", "updated_at",
		}),
	}).Create(&model).Error
}

// GetCustomer returns the record for the given customer ID.
func (d *Database) GetCustomer(customerID string) (customer.Record, error) {
	customerID = strings.TrimSpace(customerID)
	var model Customer
	err := d.gorm.Where("customer_id = ?", customerID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return customer.Record{}, customer.ErrNotFound
	}
	if err != nil {
		return customer.Record{}, err
	}
	return model.ToRecord(), nil
}

// ListCustomers returns stored customer records ordered by ID.
func (d *Database) ListCustomers(limit int) ([]customer.Record, error) {
	query := d.gorm.Model(&Customer{}).Order("customer_id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var models []Customer
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	records := make([]customer.Record, 0, len(models))
	for _, model := range models {
		records = append(records, model.ToRecord())
	}
	return records, nil
}

// CountCustomers returns the number of stored customers.
func (d *Database) CountCustomers() (int64, error) {
	var count int64
	if err := d.gorm.Model(&Customer{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SaveDecision appends an evaluation outcome to the decision log and returns
// the stored row with its generated decision ID.
func (d *Database) SaveDecision(decision engine.Decision) (DecisionLog, error) {
	row := DecisionLog{
		DecisionID:  uuid.NewString(),
		CustomerID:  decision.CustomerID,
		RiskScore:   decision.RiskScore,
		Tier:        decision.TierLabel,
		Verdict:     string(decision.Verdict),
		OfferAmount: decision.Offer.Amount,
		DTIRatio:    decision.Affordability.DTIRatio,
		DTIStatus:   string(decision.Affordability.Status),
	}
	if err := row.SetDecision(decision); err != nil {
		return DecisionLog{}, fmt.Errorf("serialize decision: %w", err)
	}

	start := time.Now()
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.gorm.Create(&row).Error; err != nil {
		logrus.WithError(err).WithField("customer_id", decision.CustomerID).Error("save decision failed")
		return DecisionLog{}, err
	}
	logrus.WithFields(logrus.Fields{
		"customer_id": decision.CustomerID,
		"verdict":     decision.Verdict,
		"duration":    time.Since(start),
	}).Debug("decision logged")
	return row, nil
}

// RecentDecisions returns log rows ordered newest first.
func (d *Database) RecentDecisions(limit int) ([]DecisionLog, error) {
	query := d.gorm.Model(&DecisionLog{}).Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var rows []DecisionLog
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CountDecisions returns the number of logged decisions.
func (d *Database) CountDecisions() (int64, error) {
	var count int64
	if err := d.gorm.Model(&DecisionLog{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Provider adapts the database to the customer.Provider interface.
type Provider struct {
	db *Database
}

// NewProvider wraps the database as a customer data provider.
func NewProvider(db *Database) *Provider {
	return &Provider{db: db}
}

// Lookup fetches a stored customer record.
func (p *Provider) Lookup(_ context.Context, customerID string) (customer.Record, error) {
	return p.db.GetCustomer(customerID)
}

// List returns stored customer records.
func (p *Provider) List(_ context.Context, limit int) ([]customer.Record, error) {
	return p.db.ListCustomers(limit)
}
