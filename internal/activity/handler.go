package activity

import (
	"net/http"
	"strconv"

	"github.com/bccsims/asset-inventory/internal"
	"github.com/bccsims/asset-inventory/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{BaseHandler: base, Service: svc}
}

func (h *Handler) ListLogs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.WriteAppError(w, internal.NewValidationError("limit must be a number"))
			return
		}
		limit = parsed
	}

	logs, err := h.Service.ListRecent(r.Context(), limit)
	if err != nil {
		h.WriteAppError(w, internal.NewInternalError("failed to load activity logs", err))
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"logs":    logs,
	})
}
