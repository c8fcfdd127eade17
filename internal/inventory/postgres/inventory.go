package postgres

import (
	"context"
	"time"

	inventoryDatamodel "github.com/bccsims/asset-inventory/internal/core/datamodel/inventory"
	"github.com/bccsims/asset-inventory/internal/inventory"
	"gorm.io/gorm"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) inventory.RepositoryAPI {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) List(ctx context.Context, filter inventory.ListFilter) ([]*inventoryDatamodel.Item, error) {
	q := r.db.WithContext(ctx).Where("status = ?", "active")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("item_name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}

	var items []*inventoryDatamodel.Item
	err := q.Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *InventoryRepository) GetByID(ctx context.Context, id int64) (*inventoryDatamodel.Item, error) {
	var item inventoryDatamodel.Item
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *InventoryRepository) Create(ctx context.Context, item *inventoryDatamodel.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *InventoryRepository) Update(ctx context.Context, item *inventoryDatamodel.Item) error {
	item.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *InventoryRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&inventoryDatamodel.Item{}, id).Error
}

func (r *InventoryRepository) Categories(ctx context.Context) ([]*inventoryDatamodel.Category, error) {
	var categories []*inventoryDatamodel.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}
