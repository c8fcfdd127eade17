package user

import (
	"context"
	"strings"
	"time"

	"github.com/bccsims/asset-inventory/internal/auth"
	userDatamodel "github.com/bccsims/asset-inventory/internal/core/datamodel/user"
)

// View is the account shape returned to administrators. Password hashes never
// leave the repository layer.
type View struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	Initials  string     `json:"initials"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type RepositoryAPI interface {
	List(ctx context.Context) ([]*userDatamodel.User, error)
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	// GetByUsername matches regardless of active flag so a deactivated
	// account still blocks its username from reuse.
	GetByUsername(ctx context.Context, username string) (*userDatamodel.User, error)
	Create(ctx context.Context, u *userDatamodel.User) error
	Deactivate(ctx context.Context, id int64) error
}

func FromDataModel(u *userDatamodel.User) *View {
	// Admin accounts present the same normalized identity everywhere.
	identity := auth.NormalizeIdentity(&auth.Account{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Role:     u.Role,
		Initials: u.Initials,
		IsActive: u.IsActive,
	})
	return &View{
		ID:        identity.ID,
		Username:  identity.Username,
		Name:      identity.Name,
		Role:      identity.Role,
		Initials:  identity.Initials,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
}

func FromDataModelSlice(rows []*userDatamodel.User) []*View {
	result := make([]*View, len(rows))
	for i, row := range rows {
		result[i] = FromDataModel(row)
	}
	return result
}

// initialsFor derives display initials from the leading letters of a full
// name, capped at two characters.
func initialsFor(fullName string) string {
	var b strings.Builder
	for _, part := range strings.Fields(fullName) {
		runes := []rune(part)
		b.WriteString(strings.ToUpper(string(runes[0])))
		if b.Len() >= 2 {
			break
		}
	}
	if b.Len() == 0 {
		return "U"
	}
	return b.String()
}
