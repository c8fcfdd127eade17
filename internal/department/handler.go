package department

import (
	"net/http"

	"github.com/bccsims/asset-inventory/internal"
	"github.com/bccsims/asset-inventory/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	Repo RepositoryAPI
}

func NewHandler(base *transport.BaseHandler, repo RepositoryAPI) *Handler {
	return &Handler{BaseHandler: base, Repo: repo}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Repo.List(r.Context())
	if err != nil {
		h.WriteAppError(w, internal.NewInternalError("failed to load departments", err))
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"departments": FromDataModelSlice(rows),
	})
}
