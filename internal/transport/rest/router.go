package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/hr-management/internal/attendance"
	"github.com/frahmantamala/hr-management/internal/auth"
	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/frahmantamala/hr-management/internal/transport/middleware"
	"github.com/frahmantamala/hr-management/internal/transport/swagger"
)

// RouterConfig carries the wired handlers plus the bits of configuration the
// router needs directly.
type RouterConfig struct {
	DB                *sql.DB
	AuthHandler       *auth.Handler
	EmployeeHandler   *employee.Handler
	AttendanceHandler *attendance.Handler
	UploadDir         string
	Logger            *slog.Logger
}

// RegisterAllRoutes mounts the whole HTTP surface at the root. Everything
// except login, health, docs and static photos sits behind the access gate.
func RegisterAllRoutes(router *chi.Mux, cfg RouterConfig) {
	healthHandler := NewHealthHandler(cfg.DB)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(cfg.Logger))
	router.Use(middleware.RecoveryMiddleware(cfg.Logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Get("/health", healthHandler.livenessHandler)
	router.Get("/health/ready", healthHandler.readinessHandler)

	if cfg.UploadDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir)))
		router.Get("/uploads/*", fs.ServeHTTP)
	}

	router.Post("/auth/login", cfg.AuthHandler.Login)

	router.Group(func(pr chi.Router) {
		pr.Use(cfg.AuthHandler.AuthMiddleware)

		pr.Route("/employees", func(er chi.Router) {
			er.Get("/", cfg.EmployeeHandler.List)
			er.Post("/", cfg.EmployeeHandler.Create)
			er.Get("/{id}", cfg.EmployeeHandler.Get)
			er.Put("/{id}", cfg.EmployeeHandler.Update)
			er.Delete("/{id}", cfg.EmployeeHandler.Delete)
		})

		pr.Route("/attendance", func(ar chi.Router) {
			ar.Get("/", cfg.AttendanceHandler.List)
			ar.Post("/", cfg.AttendanceHandler.Create)
			ar.Get("/{id}", cfg.AttendanceHandler.Get)
			ar.Put("/{id}", cfg.AttendanceHandler.Update)
			ar.Delete("/{id}", cfg.AttendanceHandler.Delete)
		})

		pr.Get("/reports/attendance", cfg.AttendanceHandler.MonthlyReport)
		pr.Get("/reports/attendance/export", cfg.AttendanceHandler.ExportMonthlyReport)
	})

	notFound := transport.NewBaseHandler(cfg.Logger)
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		notFound.WriteError(w, http.StatusNotFound, "Route not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		notFound.WriteError(w, http.StatusNotFound, "Route not found")
	})
}
