package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/DragosStezar/FitTrack/internal/config"
	"github.com/DragosStezar/FitTrack/internal/nutrition"
)

const serviceName = "fittrack-api"

func main() {
	log := logrus.New()

	if err := config.LoadEnvFile(".env"); err != nil {
		log.WithError(err).Fatal("error loading .env")
	}
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	configureLogger(log, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := newDBPool(ctx, cfg.Database.URL)
	if err != nil {
		log.WithError(err).Fatal("database unavailable")
	}
	defer pool.Close()
	log.Info("DB pool ready")

	policy, err := nutrition.PolicyByName(cfg.Nutrition.AdjustmentPolicy)
	if err != nil {
		log.WithError(err).Fatal("invalid nutrition policy")
	}

	var events eventPublisher = noopPublisher{}
	if len(cfg.Events.Brokers) > 0 {
		events = newKafkaPublisher(cfg.Events.Brokers, cfg.Events.Topic)
		log.WithField("topic", cfg.Events.Topic).Info("publishing profile events to kafka")
	}
	defer func() {
		if err := events.Close(); err != nil {
			log.WithError(err).Warn("closing event publisher")
		}
	}()

	limiter := newRateLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst)
	limiter.startCleanup(ctx, time.Minute)

	h := &Handler{
		store:  newPGProfileStore(pool, log),
		events: events,
		calc:   nutrition.NewCalculator(policy),
		verifier: tokenVerifier{
			secret:   []byte(cfg.Auth.JWTSecret),
			issuer:   cfg.Auth.JWTIssuer,
			audience: cfg.Auth.JWTAudience,
		},
		limiter:        limiter,
		log:            log,
		requirePremium: cfg.Auth.RequirePremium,
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log), metricsMiddleware())
	if err := router.SetTrustedProxies(nil); err != nil {
		log.WithError(err).Fatal("configuring trusted proxies")
	}
	h.registerRoutes(router)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      corsHandler(router, cfg.Server.AllowedOrigins),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.WithField("port", cfg.Server.Port).Info("starting " + serviceName)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

// configureLogger applies level and format: JSON in production so log
// shippers can parse it, text with full timestamps otherwise.
func configureLogger(log *logrus.Logger, cfg *config.Config) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.WithField("level", cfg.Log.Level).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.IsProduction() {
		log.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
