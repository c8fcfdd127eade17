package inventory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bccsims/asset-inventory/internal"
	"github.com/bccsims/asset-inventory/internal/activity"
)

type ServiceAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*Item, error)
	Create(ctx context.Context, actorID int64, dto ItemDTO) (int64, error)
	Update(ctx context.Context, actorID int64, dto ItemDTO) error
	Delete(ctx context.Context, actorID int64, id int64) error
	Categories(ctx context.Context) ([]*Category, error)
}

type Service struct {
	repo   RepositoryAPI
	audit  activity.Recorder
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, audit activity.Recorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Item, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("inventory list failed", "error", err)
		return nil, internal.NewInternalError("failed to load inventory", err)
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) Create(ctx context.Context, actorID int64, dto ItemDTO) (int64, error) {
	if err := dto.Validate(); err != nil {
		return 0, err
	}

	row := ToDataModel(dto.toItem())
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("inventory create failed", "error", err, "name", dto.Name)
		return 0, internal.NewInternalError("failed to create inventory item", err)
	}

	// Audit append is best-effort: the item is already persisted and a
	// logging failure must not roll it back.
	s.recordAudit(ctx, actorID, activity.ActionCreateInventory, row.ID,
		fmt.Sprintf("Added new inventory item: %s", dto.Name))

	return row.ID, nil
}

func (s *Service) Update(ctx context.Context, actorID int64, dto ItemDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}
	if dto.ID == 0 {
		return internal.NewValidationError("id is required")
	}

	existing, err := s.repo.GetByID(ctx, dto.ID)
	if err != nil {
		return internal.NewInternalError("failed to load inventory item", err)
	}
	if existing == nil {
		return internal.ErrItemNotFound
	}

	row := ToDataModel(dto.toItem())
	row.CreatedAt = existing.CreatedAt
	row.Status = existing.Status
	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("inventory update failed", "error", err, "item_id", dto.ID)
		return internal.NewInternalError("failed to update inventory item", err)
	}

	s.recordAudit(ctx, actorID, activity.ActionUpdateInventory, dto.ID,
		fmt.Sprintf("Updated inventory item: %s", dto.Name))

	return nil
}

// Delete removes the row permanently; inventory has no soft delete.
func (s *Service) Delete(ctx context.Context, actorID int64, id int64) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return internal.NewInternalError("failed to load inventory item", err)
	}
	if existing == nil {
		return internal.ErrItemNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("inventory delete failed", "error", err, "item_id", id)
		return internal.NewInternalError("failed to delete inventory item", err)
	}

	s.recordAudit(ctx, actorID, activity.ActionDeleteInventory, id,
		fmt.Sprintf("Deleted inventory item: %s", existing.ItemName))

	return nil
}

func (s *Service) Categories(ctx context.Context) ([]*Category, error) {
	rows, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, internal.NewInternalError("failed to load categories", err)
	}
	categories := make([]*Category, len(rows))
	for i, row := range rows {
		categories[i] = &Category{ID: row.ID, Name: row.Name}
	}
	return categories, nil
}

func (s *Service) recordAudit(ctx context.Context, actorID int64, action string, recordID int64, description string) {
	entry := activity.Entry{
		UserID:      actorID,
		Action:      action,
		TargetTable: "inventory",
		RecordID:    &recordID,
		Description: description,
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Warn("audit entry lost for inventory mutation", "action", action, "record_id", recordID)
	}
}
