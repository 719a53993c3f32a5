package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"staffhub/internal/domain/dashboard"
	"staffhub/internal/domain/directory"
	"staffhub/internal/domain/timeoff"
	"staffhub/internal/platform/config"
	"staffhub/internal/platform/db"
	"staffhub/internal/platform/memstore"
	"staffhub/internal/platform/metrics"
	"staffhub/internal/transport/http/api"
	dashboardhandler "staffhub/internal/transport/http/handlers/dashboard"
	directoryhandler "staffhub/internal/transport/http/handlers/directory"
	timeoffhandler "staffhub/internal/transport/http/handlers/timeoff"
	"staffhub/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	Pool    *pgxpool.Pool
	Router  http.Handler
	Metrics *metrics.Collector
}

// New wires stores, services, and routes. With DATABASE_URL unset the app
// runs entirely on the in-memory store.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{Config: cfg, Metrics: metrics.New()}

	var (
		employees   directory.EmployeeStore
		departments directory.DepartmentStore
		requests    timeoff.RequestStore
		lookup      timeoff.EmployeeLookup
	)

	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		app.Pool = pool

		if cfg.RunMigrations {
			if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
				pool.Close()
				return nil, err
			}
		}
		if cfg.RunSeed {
			if err := db.Seed(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
		}

		directoryStore := directory.NewStore(pool)
		employees = directoryStore
		departments = directoryStore
		lookup = directoryStore
		requests = timeoff.NewStore(pool)
	} else {
		store := memstore.New()
		employees = store
		departments = store
		requests = store
		lookup = store
	}

	directoryService := directory.NewService(employees, departments)
	timeoffService := timeoff.NewService(requests, lookup)
	dashboardService := dashboard.NewService(employees, departments, requests)

	app.Router = app.buildRouter(directoryService, timeoffService, dashboardService)
	return app, nil
}

func (a *App) buildRouter(
	directoryService *directory.Service,
	timeoffService *timeoff.Service,
	dashboardService *dashboard.Service,
) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recover)
	router.Use(middleware.SecureHeaders(a.Config.Environment == "production"))
	router.Use(middleware.BodyLimit(a.Config.MaxBodyBytes))
	router.Use(middleware.Metrics(a.Metrics))
	if a.Config.RateLimitPerMinute > 0 {
		router.Use(middleware.RateLimit(a.Config.RateLimitPerMinute, time.Minute))
	}

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if a.Pool != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := a.Pool.Ping(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if a.Config.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, a.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		directoryhandler.NewHandler(directoryService).RegisterRoutes(r)
		timeoffhandler.NewHandler(timeoffService, directoryService, dashboardService).RegisterRoutes(r)
		dashboardhandler.NewHandler(dashboardService).RegisterRoutes(r)
	})

	return router
}

func (a *App) Close() {
	if a.Pool != nil {
		a.Pool.Close()
	}
}

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	app, err := New(ctx, cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	if app.Pool == nil {
		log.Println("DATABASE_URL not set, using in-memory store")
	}

	log.Printf("staffhub server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
