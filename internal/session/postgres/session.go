package postgres

import (
	"context"
	"time"

	sessionDatamodel "github.com/bccsims/asset-inventory/internal/core/datamodel/session"
	"github.com/bccsims/asset-inventory/internal/session"
	"gorm.io/gorm"
)

// SessionStore implements session.Store using GORM.
type SessionStore struct {
	db *gorm.DB
}

func NewSessionStore(db *gorm.DB) session.Store {
	return &SessionStore{db: db}
}

func (r *SessionStore) Create(ctx context.Context, s *session.Session) error {
	return r.db.WithContext(ctx).Create(session.ToDataModel(s)).Error
}

func (r *SessionStore) Get(ctx context.Context, token string) (*session.Session, error) {
	var row sessionDatamodel.Session
	err := r.db.WithContext(ctx).
		Where("session_token = ? AND is_active = ?", token, true).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, session.ErrNotFound
		}
		return nil, err
	}
	return session.FromDataModel(&row), nil
}

func (r *SessionStore) Touch(ctx context.Context, token string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&sessionDatamodel.Session{}).
		Where("session_token = ?", token).
		Update("last_activity", at).Error
}

func (r *SessionStore) Deactivate(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Model(&sessionDatamodel.Session{}).
		Where("session_token = ?", token).
		Update("is_active", false).Error
}

func (r *SessionStore) DeactivateExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&sessionDatamodel.Session{}).
		Where("is_active = ? AND last_activity < ?", true, cutoff).
		Update("is_active", false)
	return res.RowsAffected, res.Error
}
