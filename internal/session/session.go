package session

import (
	"context"
	"errors"
	"time"

	sessionDatamodel "github.com/bccsims/asset-inventory/internal/core/datamodel/session"
)

// Session is the domain view of an authenticated browser session. The token
// is opaque and high-entropy; expiry slides with LastActivity, not CreatedAt.
type Session struct {
	Token        string
	UserID       int64
	ClientIP     string
	UserAgent    string
	IsActive     bool
	CreatedAt    time.Time
	LastActivity time.Time
}

// Expired reports whether the session idled past the TTL at the given time.
func (s *Session) Expired(ttl time.Duration, now time.Time) bool {
	if s.LastActivity.IsZero() {
		return true
	}
	return s.LastActivity.Before(now.Add(-ttl))
}

var (
	ErrNotFound = errors.New("session not found")
	ErrExpired  = errors.New("session expired")
)

// Store abstracts session persistence so the manager can swap the database
// store for the in-memory fallback without callers noticing.
type Store interface {
	Create(ctx context.Context, s *Session) error
	// Get returns the active session for the token, or ErrNotFound when the
	// token is unknown or deactivated.
	Get(ctx context.Context, token string) (*Session, error)
	Touch(ctx context.Context, token string, at time.Time) error
	Deactivate(ctx context.Context, token string) error
	// DeactivateExpired bulk-deactivates sessions idle since before cutoff
	// and returns how many were affected.
	DeactivateExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

func ToDataModel(s *Session) *sessionDatamodel.Session {
	return &sessionDatamodel.Session{
		UserID:       s.UserID,
		SessionToken: s.Token,
		IPAddress:    s.ClientIP,
		UserAgent:    s.UserAgent,
		IsActive:     s.IsActive,
		LastActivity: s.LastActivity,
		CreatedAt:    s.CreatedAt,
	}
}

func FromDataModel(s *sessionDatamodel.Session) *Session {
	return &Session{
		Token:        s.SessionToken,
		UserID:       s.UserID,
		ClientIP:     s.IPAddress,
		UserAgent:    s.UserAgent,
		IsActive:     s.IsActive,
		LastActivity: s.LastActivity,
		CreatedAt:    s.CreatedAt,
	}
}
