package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/bccsims/asset-inventory/internal"
	"github.com/bccsims/asset-inventory/internal/session"
	"golang.org/x/crypto/bcrypt"
)

type ServiceAPI interface {
	Login(ctx context.Context, dto LoginDTO, clientIP, userAgent string) (*Identity, string, error)
	Logout(ctx context.Context, token string) error
	ResolveSession(ctx context.Context, token string) (*Identity, error)
}

// Service performs authentication: credential checks at login and session
// resolution on every request.
type Service struct {
	users    UserRepository
	sessions *session.Manager
	logger   *slog.Logger
}

func NewService(users UserRepository, sessions *session.Manager, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

// Login verifies the credentials and opens a session. Unknown usernames and
// wrong passwords produce the identical generic error so usernames cannot be
// enumerated.
func (s *Service) Login(ctx context.Context, dto LoginDTO, clientIP, userAgent string) (*Identity, string, error) {
	if err := dto.Validate(); err != nil {
		return nil, "", err
	}

	account, err := s.users.GetActiveByUsername(ctx, dto.Username)
	if err != nil {
		s.logger.Error("login: user lookup failed", "error", err)
		return nil, "", internal.NewInternalError("login failed", err)
	}
	if account == nil {
		return nil, "", internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, "", internal.ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, account.ID, clientIP, userAgent)
	if err != nil {
		s.logger.Error("login: session creation failed", "error", err, "user_id", account.ID)
		return nil, "", internal.NewInternalError("login failed", err)
	}

	// Best effort; a failed timestamp update must not block the login.
	if err := s.users.UpdateLastLogin(ctx, account.ID, time.Now()); err != nil {
		s.logger.Warn("login: failed to update last_login", "error", err, "user_id", account.ID)
	}

	identity := NormalizeIdentity(account)
	s.logger.Info("user logged in", "user_id", account.ID, "username", account.Username)
	return &identity, token, nil
}

// Logout deactivates the session. Idempotent.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}

// ResolveSession validates the token, re-reads the user row and returns the
// normalized identity. The user is loaded fresh on every request, so role
// and activation changes apply immediately rather than at next login. The
// session's activity clock is touched here, which keeps expiration sliding.
func (s *Service) ResolveSession(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, internal.ErrNotAuthenticated
	}

	sess, err := s.sessions.Validate(ctx, token)
	switch err {
	case nil:
	case session.ErrExpired:
		return nil, internal.ErrSessionExpired
	case session.ErrNotFound:
		return nil, internal.ErrSessionInvalid
	default:
		return nil, internal.NewInternalError("session validation failed", err)
	}

	account, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		s.logger.Error("session user lookup failed", "error", err, "user_id", sess.UserID)
		return nil, internal.NewInternalError("session validation failed", err)
	}
	if account == nil || !account.IsActive {
		if err := s.sessions.Destroy(ctx, token); err != nil {
			s.logger.Warn("failed to deactivate session for inactive user", "error", err)
		}
		return nil, internal.ErrUserInactive
	}

	if err := s.sessions.Touch(ctx, token); err != nil {
		s.logger.Warn("failed to touch session", "error", err)
	}

	identity := NormalizeIdentity(account)
	return &identity, nil
}
