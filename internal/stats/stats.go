package stats

import (
	"context"
	"log/slog"

	"github.com/bccsims/asset-inventory/internal"
	"github.com/jmoiron/sqlx"
)

// Summary backs the dashboard tiles.
type Summary struct {
	TotalItems        int64 `db:"total_items" json:"totalItems"`
	LowStockItems     int64 `db:"low_stock_items" json:"lowStockItems"`
	TotalAssets       int64 `db:"total_assets" json:"totalAssets"`
	AssetsUnderRepair int64 `db:"assets_under_repair" json:"assetsUnderRepair"`
	ActiveUsers       int64 `db:"active_users" json:"activeUsers"`
}

type ServiceAPI interface {
	Summary(ctx context.Context) (*Summary, error)
}

// Service aggregates dashboard counts in a single round trip.
type Service struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewService(db *sqlx.DB, logger *slog.Logger) *Service {
	return &Service{db: db, logger: logger}
}

const summaryQuery = `
SELECT
    (SELECT COUNT(*) FROM inventory WHERE status = 'active')                          AS total_items,
    (SELECT COUNT(*) FROM inventory WHERE status = 'active'
        AND quantity <= reorder_level)                                                AS low_stock_items,
    (SELECT COUNT(*) FROM assets)                                                     AS total_assets,
    (SELECT COUNT(*) FROM assets WHERE LOWER(condition_status) = 'under repair')      AS assets_under_repair,
    (SELECT COUNT(*) FROM users WHERE is_active = true)                               AS active_users
`

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	var summary Summary
	if err := s.db.GetContext(ctx, &summary, summaryQuery); err != nil {
		s.logger.Error("stats query failed", "error", err)
		return nil, internal.NewInternalError("failed to load statistics", err)
	}
	return &summary, nil
}
