package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"credit-decision-engine/internal/api"
	"credit-decision-engine/internal/cache"
	"credit-decision-engine/internal/config"
	"credit-decision-engine/internal/customer"
	"credit-decision-engine/internal/engine"
	"credit-decision-engine/internal/store"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (YAML)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		logrus.SetLevel(level)
	}

	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logrus.Fatalf("create data directory: %v", err)
		}
	}

	db, err := store.Open(cfg.Database.Path, cfg.Database.Silent)
	if err != nil {
		logrus.Fatalf("open database: %v", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logrus.WithError(cerr).Warn("close database")
		}
	}()

	if err := seedIfEmpty(db, cfg.Engine.SeedCustomers); err != nil {
		logrus.Fatalf("seed customers: %v", err)
	}

	policy, err := engine.LoadPolicy(cfg.Engine.PolicyPath)
	if err != nil {
		logrus.Fatalf("load policy: %v", err)
	}
	eng, err := engine.New(policy)
	if err != nil {
		logrus.Fatalf("create engine: %v", err)
	}

	var decisions cache.Cache = cache.NewMemoryCache()
	if cfg.Redis.Enabled {
		redisCache := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.TTL)
		if err := redisCache.Ping(); err != nil {
			logrus.WithError(err).Warn("redis unreachable, falling back to in-memory decision cache")
		} else {
			logrus.WithField("addr", cfg.Redis.Addr).Info("redis decision cache enabled")
			decisions = redisCache
		}
	}

	server, err := api.NewServer(api.Config{AllowedOrigins: cfg.Server.AllowedOrigins}, eng, store.NewProvider(db), db, decisions)
	if err != nil {
		logrus.Fatalf("create server: %v", err)
	}
	router, err := server.Router()
	if err != nil {
		logrus.Fatalf("configure router: %v", err)
	}

	logrus.Infof("starting credit decision engine on :%s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logrus.Fatalf("server exited: %v", err)
	}
}

// seedIfEmpty populates the customer book with simulated customers on first
// start so the API has something to decide on.
func seedIfEmpty(db *store.Database, count int) error {
	existing, err := db.CountCustomers()
	if err != nil {
		return err
	}
	if existing > 0 || count <= 0 {
		return nil
	}

	sim := customer.NewSimulator(count)
	records, err := sim.List(context.Background(), 0)
	if err != nil {
		return err
	}
	for _, rec := range records {
		if err := db.UpsertCustomer(rec); err != nil {
			return err
		}
	}
	logrus.WithField("customers", len(records)).Info("seeded simulated customer book")
	return nil
}
