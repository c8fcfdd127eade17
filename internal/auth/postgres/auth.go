package postgres

import (
	"context"
	"time"

	"github.com/bccsims/asset-inventory/internal/auth"
	userDatamodel "github.com/bccsims/asset-inventory/internal/core/datamodel/user"
	"gorm.io/gorm"
)

// AuthRepository implements auth.UserRepository over the users table.
type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) auth.UserRepository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) GetActiveByUsername(ctx context.Context, username string) (*auth.Account, error) {
	var row userDatamodel.User
	err := r.db.WithContext(ctx).
		Where("username = ? AND is_active = ?", username, true).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return toAccount(&row), nil
}

func (r *AuthRepository) GetByID(ctx context.Context, id int64) (*auth.Account, error) {
	var row userDatamodel.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return toAccount(&row), nil
}

func (r *AuthRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&userDatamodel.User{}).
		Where("id = ?", id).
		Update("last_login", at).Error
}

func toAccount(u *userDatamodel.User) *auth.Account {
	return &auth.Account{
		ID:           u.ID,
		Username:     u.Username,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Initials:     u.Initials,
		IsActive:     u.IsActive,
	}
}
