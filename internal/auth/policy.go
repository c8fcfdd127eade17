package auth

import (
	"net/http"
	"strings"

	"github.com/bccsims/asset-inventory/internal"
	"github.com/bccsims/asset-inventory/internal/transport"
)

// Permissions are coarse resource grants. Routes declare the permission they
// need; the static table below maps roles onto grants. The table is
// evaluated on every request against the freshly loaded user, so a role
// change applies from the next request onward.
const (
	PermManageUsers     = "users:manage"
	PermViewAuditLog    = "audit:view"
	PermManageInventory = "inventory:manage"
	PermManageAssets    = "assets:manage"
)

// rolePermissions keys are lowercased role names.
var rolePermissions = map[string][]string{
	strings.ToLower(RoleHeadAdministrator): {
		PermManageUsers,
		PermViewAuditLog,
		PermManageInventory,
		PermManageAssets,
	},
	strings.ToLower(RoleAdmin): {
		PermViewAuditLog,
		PermManageInventory,
		PermManageAssets,
	},
	strings.ToLower(RoleStockTaker): {
		PermManageInventory,
	},
	strings.ToLower(RoleAssetAdder): {
		PermManageAssets,
	},
}

// RoleAllows reports whether the role carries the permission. Role matching
// is case-insensitive; unknown roles carry nothing.
func RoleAllows(role, permission string) bool {
	for _, p := range rolePermissions[strings.ToLower(role)] {
		if p == permission {
			return true
		}
	}
	return false
}

// Policy produces route middleware enforcing the role table. Denial is a
// whole-response 403, never a partial result.
type Policy struct {
	*transport.BaseHandler
}

func NewPolicy(base *transport.BaseHandler) *Policy {
	return &Policy{BaseHandler: base}
}

func (p *Policy) Require(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				p.WriteAppError(w, internal.ErrNotAuthenticated)
				return
			}

			if !RoleAllows(identity.Role, permission) {
				p.Logger.Warn("access denied: insufficient role",
					"user_id", identity.ID,
					"role", identity.Role,
					"required_permission", permission,
					"path", r.URL.Path)
				p.WriteAppError(w, internal.ErrInsufficientRole)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
