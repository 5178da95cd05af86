package rest

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/transport"
)

type HealthHandler struct {
	*transport.BaseHandler
	db *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{
		BaseHandler: transport.NewBaseHandler(nil),
		db:          db,
	}
}

// liveness: the process is up, nothing else is checked.
func (h *HealthHandler) livenessHandler(w http.ResponseWriter, r *http.Request) {
	h.WriteSuccess(w, http.StatusOK, "Server is running", nil)
}

// readiness: the database must answer a ping.
func (h *HealthHandler) readinessHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := internal.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.Logger.Error("readiness check failed", "error", err)
		h.WriteError(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Server is ready", nil)
}
