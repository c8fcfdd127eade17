package auth

import (
	"context"
	"strings"
	"time"
)

// Role names as stored and as sent over the wire. Comparison is always
// case-insensitive.
const (
	RoleAdmin             = "Admin"
	RoleHeadAdministrator = "Head Administrator"
	RoleStockTaker        = "Stock Taker"
	RoleAssetAdder        = "Asset Adder"
)

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Initials string `json:"initials"`
}

// Account is the credential-store view of a user, as the auth repository
// returns it.
type Account struct {
	ID           int64
	Username     string
	Name         string
	PasswordHash string
	Role         string
	Initials     string
	IsActive     bool
}

// NormalizeIdentity applies the legacy override for the bootstrap "admin"
// account: its display name and role read back as fixed values regardless of
// what the row says. Kept for compatibility with records created before the
// seeded role existed; every read of a user identity must go through here.
func NormalizeIdentity(a *Account) Identity {
	if strings.EqualFold(a.Username, "admin") {
		initials := a.Initials
		if initials == "" {
			initials = "SA"
		}
		return Identity{
			ID:       a.ID,
			Username: a.Username,
			Name:     "System Administrator",
			Role:     RoleHeadAdministrator,
			Initials: initials,
		}
	}

	return Identity{
		ID:       a.ID,
		Username: a.Username,
		Name:     a.Name,
		Role:     a.Role,
		Initials: a.Initials,
	}
}

// UserRepository is what the auth service needs from the credential store.
type UserRepository interface {
	// GetActiveByUsername returns the active account for the username, or
	// nil when no such account exists.
	GetActiveByUsername(ctx context.Context, username string) (*Account, error)
	GetByID(ctx context.Context, id int64) (*Account, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

type ctxKey string

const (
	identityKey ctxKey = "auth.identity"
	tokenKey    ctxKey = "auth.token"
)

func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	return id, ok && id != nil
}

func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

func TokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(tokenKey).(string); ok {
		return token
	}
	return ""
}
