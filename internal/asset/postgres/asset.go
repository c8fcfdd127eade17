package postgres

import (
	"context"
	"time"

	"github.com/bccsims/asset-inventory/internal/asset"
	assetDatamodel "github.com/bccsims/asset-inventory/internal/core/datamodel/asset"
	"gorm.io/gorm"
)

type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) asset.RepositoryAPI {
	return &AssetRepository{db: db}
}

func (r *AssetRepository) List(ctx context.Context, filter asset.ListFilter) ([]*assetDatamodel.Asset, error) {
	q := r.db.WithContext(ctx)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(
			"employee_name ILIKE ? OR sr_number ILIKE ? OR serial_number ILIKE ? OR asset_name ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if filter.Department != "" {
		q = q.Where("department = ?", filter.Department)
	}
	if filter.Status != "" {
		q = q.Where("LOWER(condition_status) = LOWER(?)", filter.Status)
	}

	var assets []*assetDatamodel.Asset
	err := q.Order("created_at DESC").Find(&assets).Error
	return assets, err
}

func (r *AssetRepository) GetByID(ctx context.Context, id int64) (*assetDatamodel.Asset, error) {
	var row assetDatamodel.Asset
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *AssetRepository) GetBySerial(ctx context.Context, serial string) (*assetDatamodel.Asset, error) {
	var row assetDatamodel.Asset
	err := r.db.WithContext(ctx).
		Where("LOWER(serial_number) = LOWER(?)", serial).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *AssetRepository) ExistsBySerial(ctx context.Context, serial string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&assetDatamodel.Asset{}).
		Where("LOWER(serial_number) = LOWER(?)", serial).
		Count(&count).Error
	return count > 0, err
}

func (r *AssetRepository) Create(ctx context.Context, a *assetDatamodel.Asset) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AssetRepository) CreateBatch(ctx context.Context, batch []*assetDatamodel.Asset) error {
	return r.db.WithContext(ctx).Create(&batch).Error
}

func (r *AssetRepository) Update(ctx context.Context, a *assetDatamodel.Asset) error {
	a.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AssetRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&assetDatamodel.Asset{}, id).Error
}
