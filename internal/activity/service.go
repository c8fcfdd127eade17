package activity

import (
	"context"
	"log/slog"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type ServiceAPI interface {
	Recorder
	ListRecent(ctx context.Context, limit int) ([]*LogView, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Record appends one audit entry. The trail is append-only; nothing ever
// updates or removes rows.
func (s *Service) Record(ctx context.Context, entry Entry) error {
	if err := s.repo.Insert(ctx, ToDataModel(entry)); err != nil {
		s.logger.Error("activity log append failed",
			"error", err,
			"action", entry.Action,
			"table", entry.TargetTable,
			"user_id", entry.UserID)
		return err
	}
	return nil
}

func (s *Service) ListRecent(ctx context.Context, limit int) ([]*LogView, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.repo.ListRecent(ctx, limit)
}
