package repairs

import (
	"crypto/subtle"
	"net/http"

	"github.com/bccsims/asset-inventory/internal"
	"github.com/bccsims/asset-inventory/internal/asset"
	"github.com/bccsims/asset-inventory/internal/transport"
	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	Client *Client
	Assets asset.ServiceAPI
	apiKey string
}

func NewHandler(base *transport.BaseHandler, client *Client, assets asset.ServiceAPI, apiKey string) *Handler {
	return &Handler{BaseHandler: base, Client: client, Assets: assets, apiKey: apiKey}
}

// RepairStatus proxies the repairs tracker for the UI. It always answers
// HTTP 200; when the tracker is down the body carries success=false so the
// page renders a placeholder instead of an error state.
func (h *Handler) RepairStatus(w http.ResponseWriter, r *http.Request) {
	serial := chi.URLParam(r, "serial")

	status, err := h.Client.FetchRepairStatus(r.Context(), serial)
	if err != nil {
		h.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success": false,
			"message": "Status unavailable",
		})
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"repair":  status,
	})
}

// ExternalAssetLookup lets the repairs tracker resolve a serial number to an
// asset. It authenticates with a shared key, compared in constant time.
func (h *Handler) ExternalAssetLookup(w http.ResponseWriter, r *http.Request) {
	provided := r.Header.Get("x-api-key")
	if h.apiKey == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(h.apiKey)) != 1 {
		h.WriteAppError(w, internal.ErrInvalidAPIKey)
		return
	}

	serial := chi.URLParam(r, "serial")
	view, err := h.Assets.LookupBySerial(r.Context(), serial)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"srNumber":   view.SRNumber,
		"owner":      view.Owner,
		"department": view.Department,
	})
}
