package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bccsims/asset-inventory/internal"
	"github.com/bccsims/asset-inventory/pkg/logger"
)

// BaseHandler provides the response helpers shared by all HTTP handlers.
// Every response uses the {success: bool, ...} envelope the frontend expects.
type BaseHandler struct {
	Logger     *slog.Logger
	Production bool
}

func NewBaseHandler(lg *slog.Logger, production bool) *BaseHandler {
	if lg == nil {
		lg = logger.L()
	}
	return &BaseHandler{Logger: lg, Production: production}
}

// WriteJSON writes a JSON response.
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes a failure envelope with the given status and message.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.WriteJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// WriteAppError maps an error onto the envelope. Expected failures keep
// their message; anything else becomes a sanitized 500 in production and the
// raw message in development.
func (h *BaseHandler) WriteAppError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		if appErr.Type == internal.ErrorTypeInternal {
			h.Logger.Error("internal error", "error", appErr.Error())
			if h.Production {
				h.WriteError(w, appErr.StatusCode, "Internal server error")
				return
			}
			h.WriteError(w, appErr.StatusCode, appErr.Error())
			return
		}
		h.WriteError(w, appErr.StatusCode, appErr.Message)
		return
	}

	h.Logger.Error("unexpected error", "error", err)
	if h.Production {
		h.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	h.WriteError(w, http.StatusInternalServerError, err.Error())
}
