package rest

import (
	"log/slog"
	"net/http"

	"github.com/bccsims/asset-inventory/internal/activity"
	"github.com/bccsims/asset-inventory/internal/asset"
	"github.com/bccsims/asset-inventory/internal/auth"
	"github.com/bccsims/asset-inventory/internal/department"
	"github.com/bccsims/asset-inventory/internal/inventory"
	"github.com/bccsims/asset-inventory/internal/repairs"
	"github.com/bccsims/asset-inventory/internal/stats"
	"github.com/bccsims/asset-inventory/internal/transport/middleware"
	"github.com/bccsims/asset-inventory/internal/transport/swagger"
	"github.com/bccsims/asset-inventory/internal/user"
	"github.com/go-chi/chi"
)

// Deps collects every wired handler the router mounts.
type Deps struct {
	Logger         *slog.Logger
	AllowedOrigins []string

	Auth        *auth.Handler
	Policy      *auth.Policy
	Inventory   *inventory.Handler
	Assets      *asset.Handler
	Users       *user.Handler
	Activity    *activity.Handler
	Departments *department.Handler
	Stats       *stats.Handler
	Repairs     *repairs.Handler
	Health      *HealthHandler

	OpenAPIPath string
}

// RegisterAllRoutes mounts the full API surface under /api. Session
// authentication wraps everything except login, health, the partner lookup,
// and the API docs; per-resource role checks sit inside the session group.
func RegisterAllRoutes(r chi.Router, deps Deps) {
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(deps.Logger))
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.CORS(deps.AllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		// Public surface.
		r.Get("/health", deps.Health.Health)
		r.Get("/debug/db-status", deps.Health.DBStatus)
		r.Post("/auth/login", deps.Auth.Login)
		r.Get("/external/asset/{serial}", deps.Repairs.ExternalAssetLookup)

		// Session-authenticated surface.
		r.Group(func(r chi.Router) {
			r.Use(deps.Auth.SessionMiddleware)

			r.Post("/auth/logout", deps.Auth.Logout)
			r.Get("/auth/me", deps.Auth.Me)

			r.Get("/stats", deps.Stats.Summary)
			r.Get("/departments", deps.Departments.List)
			r.Get("/categories", deps.Inventory.ListCategories)

			r.Route("/inventory", func(r chi.Router) {
				r.Use(deps.Policy.Require(auth.PermManageInventory))
				r.Get("/", deps.Inventory.List)
				r.Post("/", deps.Inventory.Create)
				r.Put("/", deps.Inventory.Update)
				r.Delete("/{id}", deps.Inventory.Delete)
			})

			r.Route("/assets", func(r chi.Router) {
				// The repair-status proxy only needs a session; mutations
				// need the asset grant.
				r.Get("/repair-status/{serial}", deps.Repairs.RepairStatus)

				r.Group(func(r chi.Router) {
					r.Use(deps.Policy.Require(auth.PermManageAssets))
					r.Get("/", deps.Assets.List)
					r.Post("/", deps.Assets.Create)
					r.Post("/bulk", deps.Assets.BulkCreate)
					r.Put("/", deps.Assets.Update)
					r.Delete("/{id}", deps.Assets.Delete)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(deps.Policy.Require(auth.PermManageUsers))
				r.Get("/", deps.Users.List)
				r.Post("/", deps.Users.Create)
				r.Delete("/{id}", deps.Users.Deactivate)
			})

			r.With(deps.Policy.Require(auth.PermViewAuditLog)).
				Get("/activity-logs", deps.Activity.ListLogs)
		})
	})

	// API documentation.
	openAPIPath := deps.OpenAPIPath
	if openAPIPath == "" {
		openAPIPath = "api/openapi.yml"
	}
	r.Get("/openapi.yml", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, openAPIPath)
	})
	r.Handle("/swagger/*", swagger.Handler())
}
