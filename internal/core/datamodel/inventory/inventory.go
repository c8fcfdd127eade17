package inventory

import "time"

// Item is the storage model for stock records. Wire names differ: the API
// speaks price/serialNumber/lowStockThreshold, storage speaks
// unit_cost/item_code/reorder_level.
type Item struct {
	ID           int64     `gorm:"primaryKey"`
	ItemName     string    `gorm:"column:item_name;not null"`
	Description  string    `gorm:"column:description"`
	Quantity     int       `gorm:"column:quantity;default:0"`
	UnitCost     float64   `gorm:"column:unit_cost;default:0"`
	Unit         string    `gorm:"column:unit;default:pcs"`
	ItemCode     string    `gorm:"column:item_code"`
	Supplier     string    `gorm:"column:supplier"`
	Location     string    `gorm:"column:location"`
	ReorderLevel int       `gorm:"column:reorder_level;default:10"`
	CategoryID   *int64    `gorm:"column:category_id"`
	Status       string    `gorm:"column:status;default:active"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (Item) TableName() string {
	return "inventory"
}

type Category struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"column:name;uniqueIndex;not null"`
}

func (Category) TableName() string {
	return "categories"
}
