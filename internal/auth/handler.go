package auth

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/bccsims/asset-inventory/internal"
	"github.com/bccsims/asset-inventory/internal/transport"
)

// CookieConfig carries everything the handler needs to issue and clear the
// session cookie. Secure and SameSite=Strict only in production so local
// development over plain HTTP keeps working.
type CookieConfig struct {
	Name       string
	TTL        time.Duration
	Production bool
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Cookie  CookieConfig
}

func NewHandler(base *transport.BaseHandler, svc ServiceAPI, cookie CookieConfig) *Handler {
	return &Handler{
		BaseHandler: base,
		Service:     svc,
		Cookie:      cookie,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	identity, token, err := h.Service.Login(r.Context(), dto, clientIP(r), r.UserAgent())
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.setSessionCookie(w, token)
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    identity,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := TokenFromContext(r.Context())
	if err := h.Service.Logout(r.Context(), token); err != nil {
		h.WriteAppError(w, internal.NewInternalError("logout failed", err))
		return
	}

	h.clearSessionCookie(w)
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Signed out successfully",
	})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrNotAuthenticated)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    identity,
	})
}

// SessionMiddleware authenticates the request from the session cookie. Any
// validation failure clears the cookie, even for malformed tokens, so stale
// browsers converge on the login page.
func (h *Handler) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(h.Cookie.Name)
		if err != nil || cookie.Value == "" {
			h.WriteAppError(w, internal.ErrNotAuthenticated)
			return
		}

		identity, err := h.Service.ResolveSession(r.Context(), cookie.Value)
		if err != nil {
			h.clearSessionCookie(w)
			h.WriteAppError(w, err)
			return
		}

		ctx := ContextWithIdentity(r.Context(), identity)
		ctx = ContextWithToken(ctx, cookie.Value)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	sameSite := http.SameSiteLaxMode
	if h.Cookie.Production {
		sameSite = http.SameSiteStrictMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.Cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Cookie.TTL.Seconds()),
		HttpOnly: true,
		Secure:   h.Cookie.Production,
		SameSite: sameSite,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.Cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// clientIP honors the first X-Forwarded-For hop; the service runs behind a
// trusted proxy in production.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	host := r.RemoteAddr
	if idx := strings.LastIndex(host, ":"); idx > 0 {
		host = host[:idx]
	}
	return host
}
