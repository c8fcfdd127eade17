package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bccsims/asset-inventory/internal"
	"github.com/bccsims/asset-inventory/internal/activity"
	"github.com/bccsims/asset-inventory/internal/auth"
	userDatamodel "github.com/bccsims/asset-inventory/internal/core/datamodel/user"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type ServiceAPI interface {
	List(ctx context.Context) ([]*View, error)
	Create(ctx context.Context, actorID int64, dto CreateUserDTO) (*View, error)
	Deactivate(ctx context.Context, actorID int64, id int64) error
}

type Service struct {
	repo   RepositoryAPI
	audit  activity.Recorder
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, audit activity.Recorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]*View, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("user list failed", "error", err)
		return nil, internal.NewInternalError("failed to load users", err)
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) Create(ctx context.Context, actorID int64, dto CreateUserDTO) (*View, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByUsername(ctx, dto.Username)
	if err != nil {
		return nil, internal.NewInternalError("failed to verify username", err)
	}
	if existing != nil {
		return nil, internal.ErrDuplicateUsername
	}

	password := dto.Password
	if password == "" {
		password = DefaultPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	role := dto.Role
	if role == "" {
		role = auth.RoleStockTaker
	}

	row := &userDatamodel.User{
		Username:     dto.Username,
		PasswordHash: string(hash),
		Name:         dto.FullName,
		Role:         role,
		Initials:     initialsFor(dto.FullName),
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("user create failed", "error", err, "username", dto.Username)
		return nil, internal.NewInternalError("failed to create user", err)
	}

	s.recordAudit(ctx, actorID, activity.ActionCreateUser, row.ID,
		fmt.Sprintf("Created user account: %s", dto.Username))

	return FromDataModel(row), nil
}

// Deactivate soft-deletes the account. The row stays so the activity log and
// username history remain intact.
func (s *Service) Deactivate(ctx context.Context, actorID int64, id int64) error {
	if id == actorID {
		return internal.NewValidationError("cannot deactivate your own account")
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return internal.NewInternalError("failed to load user", err)
	}
	if existing == nil {
		return internal.ErrUserNotFound
	}

	if err := s.repo.Deactivate(ctx, id); err != nil {
		s.logger.Error("user deactivate failed", "error", err, "user_id", id)
		return internal.NewInternalError("failed to deactivate user", err)
	}

	s.recordAudit(ctx, actorID, activity.ActionDeactivateUser, id,
		fmt.Sprintf("Deactivated user account: %s", existing.Username))

	return nil
}

func (s *Service) recordAudit(ctx context.Context, actorID int64, action string, recordID int64, description string) {
	entry := activity.Entry{
		UserID:      actorID,
		Action:      action,
		TargetTable: "users",
		RecordID:    &recordID,
		Description: description,
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Warn("audit entry lost for user mutation", "action", action, "record_id", recordID)
	}
}
