package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const tokenBytes = 48

// Manager owns the session lifecycle: issue, validate, touch, destroy and
// sweep. It starts on the persistent store and flips to the in-memory
// fallback the first time the store fails; the flip is one-way and lasts
// until process restart, so sessions created before the flip are lost with
// the database.
type Manager struct {
	ttl    time.Duration
	logger *slog.Logger

	mu       sync.RWMutex
	store    Store
	fallback *MemoryStore
	degraded bool
}

func NewManager(store Store, ttl time.Duration, logger *slog.Logger) *Manager {
	return &Manager{
		ttl:      ttl,
		logger:   logger,
		store:    store,
		fallback: NewMemoryStore(),
	}
}

// TTL returns the sliding-expiration window.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Degraded reports whether the manager is running on the in-memory fallback.
func (m *Manager) Degraded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.degraded
}

func (m *Manager) currentStore() Store {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.degraded {
		return m.fallback
	}
	return m.store
}

func (m *Manager) enterDegradedMode(cause error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.degraded {
		return
	}
	m.degraded = true
	m.logger.Error("session store unavailable, switching to in-memory sessions until restart", "error", cause)
}

// Create issues a fresh high-entropy token and persists the session. A store
// failure is absorbed by the fallback so logins keep working while the
// database is down.
func (m *Manager) Create(ctx context.Context, userID int64, clientIP, userAgent string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	now := time.Now()
	s := &Session{
		Token:        token,
		UserID:       userID,
		ClientIP:     clientIP,
		UserAgent:    userAgent,
		IsActive:     true,
		CreatedAt:    now,
		LastActivity: now,
	}

	if err := m.currentStore().Create(ctx, s); err != nil {
		m.enterDegradedMode(err)
		if err := m.fallback.Create(ctx, s); err != nil {
			return "", err
		}
	}

	return token, nil
}

// Validate resolves a token to its session. An expired session is
// proactively deactivated and reported as ErrExpired; unknown or inactive
// tokens are ErrNotFound. Callers treat both as unauthenticated.
func (m *Manager) Validate(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrNotFound
	}

	s, err := m.currentStore().Get(ctx, token)
	if err == ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		m.enterDegradedMode(err)
		s, err = m.fallback.Get(ctx, token)
		if err != nil {
			return nil, ErrNotFound
		}
	}

	if s.Expired(m.ttl, time.Now()) {
		if err := m.Destroy(ctx, token); err != nil {
			m.logger.Warn("failed to deactivate expired session", "error", err)
		}
		return nil, ErrExpired
	}

	return s, nil
}

// Touch moves LastActivity to now. Invoked on every authenticated request;
// this is what makes expiration sliding rather than absolute.
func (m *Manager) Touch(ctx context.Context, token string) error {
	if err := m.currentStore().Touch(ctx, token, time.Now()); err != nil {
		m.enterDegradedMode(err)
		return m.fallback.Touch(ctx, token, time.Now())
	}
	return nil
}

// Destroy deactivates the session. Idempotent.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := m.currentStore().Deactivate(ctx, token); err != nil {
		m.enterDegradedMode(err)
		return m.fallback.Deactivate(ctx, token)
	}
	return nil
}

// SweepExpired batch-deactivates everything idle past the TTL.
func (m *Manager) SweepExpired(ctx context.Context) {
	cutoff := time.Now().Add(-m.ttl)
	n, err := m.currentStore().DeactivateExpired(ctx, cutoff)
	if err != nil {
		m.enterDegradedMode(err)
		if n, err = m.fallback.DeactivateExpired(ctx, cutoff); err != nil {
			m.logger.Error("session sweep failed", "error", err)
			return
		}
	}
	if n > 0 {
		m.logger.Info("deactivated expired sessions", "count", n)
	}
}

// StartSweeper runs SweepExpired on the given interval until ctx is
// cancelled. Runs concurrently with request handling against the same store;
// a session deactivated mid-request is acceptable staleness within one
// request lifetime.
func (m *Manager) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.SweepExpired(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
