// Package api exposes the credit decision engine over HTTP. It is a thin
// adapter: handlers translate records and decisions to JSON and never hold
// decision logic of their own.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"credit-decision-engine/internal/cache"
	"credit-decision-engine/internal/customer"
	"credit-decision-engine/internal/engine"
	"credit-decision-engine/internal/store"
)

// Config defines server dependencies.
type Config struct {
	AllowedOrigins []string
}

// Server wires HTTP handlers with the engine, the customer provider, the
// decision log, and the optional decision cache.
type Server struct {
	engine         *engine.Engine
	provider       customer.Provider
	db             *store.Database
	decisions      cache.Cache
	allowedOrigins []string
}

// NewServer constructs the API server.
func NewServer(cfg Config, eng *engine.Engine, provider customer.Provider, db *store.Database, decisions cache.Cache) (*Server, error) {
	if eng == nil {
		return nil, errors.New("engine is required")
	}
	if provider == nil {
		return nil, errors.New("customer provider is required")
	}
	if decisions == nil {
		decisions = cache.NewMemoryCache()
	}
	return &Server{
		engine:         eng,
		provider:       provider,
		db:             db,
		decisions:      decisions,
		allowedOrigins: cfg.AllowedOrigins,
	}, nil
}

// Router configures gin routes.
func (s *Server) Router() (*gin.Engine, error) {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowCredentials = true
	if len(s.allowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = s.allowedOrigins
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	r.GET("/api/healthz", s.handleHealth)

	api := r.Group("/api")
	{
		api.GET("/policy", s.handlePolicy)
		api.GET("/customers", s.handleListCustomers)
		api.GET("/customers/:id", s.handleGetCustomer)
		api.POST("/customers/:id/decision", s.handleDecision)
		api.GET("/decisions", s.handleListDecisions)
	}

	return r, nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handlePolicy(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.Policy())
}

func (s *Server) handleListCustomers(c *gin.Context) {
	limit := parseLimit(c.Query("limit"), 100)
	records, err := s.provider.List(c.Request.Context(), limit)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	dtos := make([]CustomerDTO, 0, len(records))
	for _, rec := range records {
		dtos = append(dtos, CustomerFromRecord(rec))
	}
	c.JSON(http.StatusOK, gin.H{"items": dtos, "total": len(dtos)})
}

func (s *Server) handleGetCustomer(c *gin.Context) {
	rec, err := s.provider.Lookup(c.Request.Context(), c.Param("id"))
	if errors.Is(err, customer.ErrNotFound) {
		s.renderError(c, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, CustomerFromRecord(rec))
}

// handleDecision evaluates one customer. Identical records produce identical
// decisions, so a cached serialization can be replayed as-is unless the
// caller forces a fresh evaluation.
func (s *Server) handleDecision(c *gin.Context) {
	customerID := c.Param("id")
	force := c.Query("force") == "true"

	cacheKey := "decision:" + customerID
	if !force {
		if cached, ok := s.decisions.Get(cacheKey); ok {
			c.Header("X-Decision-Cache", "hit")
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}
	}

	rec, err := s.provider.Lookup(c.Request.Context(), customerID)
	if errors.Is(err, customer.ErrNotFound) {
		s.renderError(c, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}

	decision, err := s.engine.Evaluate(rec)
	if errors.Is(err, engine.ErrInvalidInput) {
		// Never fabricate a decision for an unusable record.
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":       "cannot assess customer",
			"detail":      err.Error(),
			"customer_id": customerID,
		})
		return
	}
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}

	dto := DecisionFromEngine(decision)
	if s.db != nil {
		row, err := s.db.SaveDecision(decision)
		if err != nil {
			logrus.WithError(err).WithField("customer_id", customerID).Warn("append decision log")
		} else {
			dto.DecisionID = row.DecisionID
			dto.CreatedAt = &row.CreatedAt
		}
	}

	if payload, err := json.Marshal(dto); err == nil {
		if err := s.decisions.Set(cacheKey, string(payload)); err != nil {
			logrus.WithError(err).WithField("customer_id", customerID).Warn("cache decision")
		}
	}

	c.JSON(http.StatusOK, dto)
}

func (s *Server) handleListDecisions(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusOK, gin.H{"items": []DecisionLogDTO{}, "total": 0})
		return
	}
	limit := parseLimit(c.Query("limit"), 50)
	rows, err := s.db.RecentDecisions(limit)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	total, err := s.db.CountDecisions()
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	dtos := make([]DecisionLogDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, DecisionLogFromModel(row))
	}
	c.JSON(http.StatusOK, gin.H{"items": dtos, "total": total})
}

func (s *Server) renderError(c *gin.Context, status int, err error) {
	logrus.WithError(err).WithField("path", c.FullPath()).Warn("request failed")
	c.JSON(status, gin.H{"error": err.Error()})
}

func parseLimit(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return fallback
	}
	return limit
}
