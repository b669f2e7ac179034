package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/DragosStezar/FitTrack/internal/nutrition"
)

// Handler holds shared dependencies for all route handlers.
type Handler struct {
	store          profileStore
	events         eventPublisher
	calc           *nutrition.Calculator
	verifier       tokenVerifier
	limiter        *rateLimiter
	log            logrus.FieldLogger
	requirePremium bool
}

/* ─── Database helpers ────────────────────────────────────────────────── */

// querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// queryOne runs a query and scans the first row into T using RowToStructByName.
// Scan errors are logged since they usually mean a struct/column mismatch.
func queryOne[T any](ctx context.Context, db querier, log logrus.FieldLogger, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := db.Query(ctx, sql, args)
	if err != nil {
		log.WithError(err).Error("[queryOne] query failed")
		var zero T
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		log.WithError(err).Error("[queryOne] scan failed")
	}
	return result, err
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// health reports liveness plus database reachability.
// GET /health (public).
func (h *Handler) health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		h.log.WithError(err).Warn("[health] database ping failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "service": serviceName})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName})
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// newDBPool creates a connection pool. Simple query protocol avoids "cached plan
// must not change result type" errors after migrations alter a table.
func newDBPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return pool, nil
}

// registerRoutes registers all routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	// Public routes
	router.GET("/health", h.health)
	router.GET("/metrics", metricsHandler())

	// Authenticated routes
	api := router.Group("/api", h.authMiddleware(), h.limiter.middleware())
	api.GET("/userprofile/me", h.getMyProfile)
	api.PUT("/userprofile/me", h.putMyProfile)
	api.POST("/nutrition/calculate", h.calculateNutrition)
}
