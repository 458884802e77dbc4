package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storeops/internal/domain/attendance"
	"storeops/internal/domain/audit"
	"storeops/internal/domain/auth"
	"storeops/internal/domain/delivery"
	"storeops/internal/domain/expense"
	"storeops/internal/domain/org"
	"storeops/internal/domain/payment"
	"storeops/internal/domain/report"
	"storeops/internal/domain/sales"
	"storeops/internal/platform/cache"
	"storeops/internal/platform/config"
	"storeops/internal/platform/db"
	"storeops/internal/platform/jobs"
	"storeops/internal/platform/metrics"
	attendancehandler "storeops/internal/transport/http/handlers/attendance"
	audithandler "storeops/internal/transport/http/handlers/audit"
	authhandler "storeops/internal/transport/http/handlers/auth"
	deliveryhandler "storeops/internal/transport/http/handlers/delivery"
	expensehandler "storeops/internal/transport/http/handlers/expense"
	orghandler "storeops/internal/transport/http/handlers/org"
	paymenthandler "storeops/internal/transport/http/handlers/payment"
	reportshandler "storeops/internal/transport/http/handlers/reports"
	saleshandler "storeops/internal/transport/http/handlers/sales"
	"storeops/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	DB     *pgxpool.Pool
	Router http.Handler

	redisCache *cache.RedisReportCache
}

// New connects, migrates, seeds, and assembles the router. The caller owns
// Close.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	app := &App{Config: cfg, DB: pool}

	var reportCache cache.ReportCache = cache.NoopReportCache{}
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisReportCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := redisCache.Ping(ctx); err != nil {
			slog.Warn("redis unreachable, report cache disabled", "addr", cfg.RedisAddr, "err", err)
			_ = redisCache.Close()
		} else {
			reportCache = redisCache
			app.redisCache = redisCache
		}
	}

	collector := metrics.New()

	orgRepo := org.NewRepository(pool)
	auditService := audit.New(pool)
	authService := auth.NewService(auth.NewStore(pool), cfg.JWTSecret, cfg.TokenTTL)
	attendanceService := attendance.NewService(attendance.NewRepository(pool), orgRepo)
	deliveryService := delivery.NewService(delivery.NewRepository(pool), orgRepo)
	salesService := sales.NewService(sales.NewRepository(pool), orgRepo)
	expenseService := expense.NewService(expense.NewRepository(pool), orgRepo)
	paymentService := payment.NewService(payment.NewRepository(pool), orgRepo)
	reportService := report.NewService(report.NewRepository(pool), orgRepo, reportCache)

	jobsService := jobs.New(pool, cfg, collector)
	jobsService.Start(ctx)

	isProd := cfg.Environment == "production"
	window := time.Minute

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(isProd))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Metrics(collector))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, window))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(collector.Snapshot())
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(authService, auditService)
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.LoginRateLimit(cfg.RateLimitPerMinute, window)).Post("/login", authHandler.HandleLogin)
			r.Post("/logout", authHandler.HandleLogout)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			orghandler.NewHandler(orgRepo, reportService, auditService).RegisterRoutes(r)
			attendancehandler.NewHandler(attendanceService, auditService).RegisterRoutes(r)
			deliveryhandler.NewHandler(deliveryService, auditService).RegisterRoutes(r)
			saleshandler.NewHandler(salesService, auditService).RegisterRoutes(r)
			expensehandler.NewHandler(expenseService, auditService).RegisterRoutes(r)
			paymenthandler.NewHandler(paymentService, auditService).RegisterRoutes(r)
			reportshandler.NewHandler(reportService).RegisterRoutes(r)
			audithandler.NewHandler(auditService).RegisterRoutes(r)
		})
	})

	app.Router = router
	return app, nil
}

func (a *App) Close() {
	if a.redisCache != nil {
		_ = a.redisCache.Close()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

// Run blocks serving HTTP until the listener fails.
func Run(ctx context.Context, cfg config.Config) error {
	app, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	log.Printf("storeops server listening on %s", cfg.Addr)
	return http.ListenAndServe(cfg.Addr, app.Router)
}
