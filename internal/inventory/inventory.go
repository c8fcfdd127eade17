package inventory

import (
	"context"
	"time"

	inventoryDatamodel "github.com/bccsims/asset-inventory/internal/core/datamodel/inventory"
)

// Item is the domain/wire view of a stock record. The wire speaks
// price/serialNumber/lowStockThreshold; the store speaks
// unit_cost/item_code/reorder_level. The converters below are the single
// place that mapping lives.
type Item struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	CategoryID        *int64    `json:"category,omitempty"`
	Quantity          int       `json:"quantity"`
	Price             float64   `json:"price"`
	SerialNumber      string    `json:"serialNumber"`
	Description       string    `json:"description"`
	LowStockThreshold int       `json:"lowStockThreshold"`
	Unit              string    `json:"unit"`
	Supplier          string    `json:"supplier"`
	Location          string    `json:"location"`
	CreatedAt         time.Time `json:"createdAt"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ListFilter narrows the inventory listing. Search matches name and
// description, case-insensitively.
type ListFilter struct {
	Search     string
	CategoryID *int64
}

type RepositoryAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*inventoryDatamodel.Item, error)
	GetByID(ctx context.Context, id int64) (*inventoryDatamodel.Item, error)
	Create(ctx context.Context, item *inventoryDatamodel.Item) error
	Update(ctx context.Context, item *inventoryDatamodel.Item) error
	Delete(ctx context.Context, id int64) error
	Categories(ctx context.Context) ([]*inventoryDatamodel.Category, error)
}

func ToDataModel(i *Item) *inventoryDatamodel.Item {
	unit := i.Unit
	if unit == "" {
		unit = "pcs"
	}
	location := i.Location
	if location == "" {
		location = "Store"
	}
	threshold := i.LowStockThreshold
	if threshold == 0 {
		threshold = 10
	}
	return &inventoryDatamodel.Item{
		ID:           i.ID,
		ItemName:     i.Name,
		Description:  i.Description,
		Quantity:     i.Quantity,
		UnitCost:     i.Price,
		Unit:         unit,
		ItemCode:     i.SerialNumber,
		Supplier:     i.Supplier,
		Location:     location,
		ReorderLevel: threshold,
		CategoryID:   i.CategoryID,
		Status:       "active",
	}
}

func FromDataModel(i *inventoryDatamodel.Item) *Item {
	return &Item{
		ID:                i.ID,
		Name:              i.ItemName,
		CategoryID:        i.CategoryID,
		Quantity:          i.Quantity,
		Price:             i.UnitCost,
		SerialNumber:      i.ItemCode,
		Description:       i.Description,
		LowStockThreshold: i.ReorderLevel,
		Unit:              i.Unit,
		Supplier:          i.Supplier,
		Location:          i.Location,
		CreatedAt:         i.CreatedAt,
	}
}

func FromDataModelSlice(items []*inventoryDatamodel.Item) []*Item {
	result := make([]*Item, len(items))
	for i, item := range items {
		result[i] = FromDataModel(item)
	}
	return result
}
