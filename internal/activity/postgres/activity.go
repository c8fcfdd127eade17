package postgres

import (
	"context"

	"github.com/bccsims/asset-inventory/internal/activity"
	activityDatamodel "github.com/bccsims/asset-inventory/internal/core/datamodel/activity"
	"gorm.io/gorm"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) activity.RepositoryAPI {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Insert(ctx context.Context, entry *activityDatamodel.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListRecent joins the acting user for display. The join is LEFT so entries
// survive user deactivation.
func (r *ActivityRepository) ListRecent(ctx context.Context, limit int) ([]*activity.LogView, error) {
	var views []*activity.LogView
	err := r.db.WithContext(ctx).
		Table("activity_log").
		Select("activity_log.id, activity_log.user_id, users.username AS username, users.role AS user_role, activity_log.action, activity_log.table_name AS target_table, activity_log.record_id, activity_log.description, activity_log.timestamp").
		Joins("LEFT JOIN users ON users.id = activity_log.user_id").
		Order("activity_log.timestamp DESC").
		Limit(limit).
		Scan(&views).Error
	return views, err
}
