package rest

import (
	"net/http"
	"time"

	"github.com/bccsims/asset-inventory/internal/transport"
	"github.com/jmoiron/sqlx"
)

// HealthHandler serves liveness and the operator-facing database probe.
type HealthHandler struct {
	*transport.BaseHandler
	db *sqlx.DB
}

func NewHealthHandler(base *transport.BaseHandler, db *sqlx.DB) *HealthHandler {
	return &HealthHandler{BaseHandler: base, db: db}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// DBStatus reports connectivity and row counts per table. It exposes no
// connection details, only whether the pool answers and how much data it holds.
func (h *HealthHandler) DBStatus(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		h.Logger.Error("database ping failed", "error", err)
		h.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success":   false,
			"connected": false,
		})
		return
	}

	counts := map[string]int64{}
	for _, table := range []string{"users", "user_sessions", "inventory", "assets", "activity_log", "departments"} {
		var count int64
		if err := h.db.GetContext(r.Context(), &count, "SELECT COUNT(*) FROM "+table); err != nil {
			h.Logger.Warn("table count failed", "table", table, "error", err)
			continue
		}
		counts[table] = count
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"connected": true,
		"tables":    counts,
	})
}
