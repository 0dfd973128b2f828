package main

import (
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/renovata/washquote/internal/config"
	"github.com/renovata/washquote/internal/db"
	"github.com/renovata/washquote/internal/migrations"
	"github.com/renovata/washquote/internal/seed"
)

type server struct {
	auth *authService
	db   *sql.DB
}

func main() {
	cfg := config.Load()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database, "migrations"); err != nil {
			log.Fatalf("failed to run database migrations: %v", err)
		}
	}

	stats, err := seed.Run(database, seed.Config{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		CatalogDir:    cfg.CatalogDir,
	})
	if err != nil {
		log.Fatalf("failed to run startup seed: %v", err)
	}
	slog.Info("startup seed complete", "inserts", stats.Inserts)

	srv := &server{
		auth: newAuthService(database, cfg.SessionSecret),
		db:   database,
	}

	addr := ":" + cfg.Port
	slog.Info("listening", "addr", addr)
	if err := http.ListenAndServe(addr, srv.router(cfg.AllowedOrigin)); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func (s *server) router(allowedOrigin string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// The wizard and admin back office are a single-page client served from
	// another origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Post("/api/login", s.handleLogin)
	r.Post("/api/logout", s.handleLogout)

	// Public wizard endpoints.
	r.Get("/api/pricing-context", s.handlePricingContext)
	r.Post("/api/estimate", s.handleEstimate)
	r.Post("/api/submissions", s.handleSubmissionCreate)

	// Admin back office.
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(s.requireAdmin)

		r.Get("/rates", s.handleRatesGet)
		r.Put("/rates", s.handleRatesUpdate)

		r.Get("/brands", s.handleBrandsList)
		r.Post("/brands", s.handleBrandCreate)
		r.Put("/brands/{id}", s.handleBrandUpdate)
		r.Delete("/brands/{id}", s.handleBrandDelete)

		r.Get("/fixtures/{catalog}", s.handleFixturesList)
		r.Post("/fixtures/{catalog}", s.handleFixtureCreate)
		r.Put("/fixtures/{catalog}/{id}", s.handleFixtureUpdate)
		r.Delete("/fixtures/{catalog}/{id}", s.handleFixtureDelete)

		r.Get("/submissions", s.handleSubmissionsList)
		r.Get("/submissions/export", s.handleSubmissionsExport)
		r.Patch("/submissions/{id}/status", s.handleSubmissionStatus)
	})

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
