package inventory

import "github.com/bccsims/asset-inventory/internal"

// ItemDTO is the transport payload for creating and updating inventory.
type ItemDTO struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	CategoryID        *int64  `json:"category,omitempty"`
	Quantity          int     `json:"quantity"`
	Price             float64 `json:"price"`
	SerialNumber      string  `json:"serialNumber"`
	Description       string  `json:"description"`
	LowStockThreshold int     `json:"lowStockThreshold"`
	Unit              string  `json:"unit"`
	Supplier          string  `json:"supplier"`
	Location          string  `json:"location"`
}

func (d ItemDTO) Validate() error {
	if d.Name == "" {
		return internal.NewValidationError("name is required")
	}
	if d.Quantity < 0 {
		return internal.NewValidationError("quantity cannot be negative")
	}
	if d.Price < 0 {
		return internal.NewValidationError("price cannot be negative")
	}
	return nil
}

func (d ItemDTO) toItem() *Item {
	return &Item{
		ID:                d.ID,
		Name:              d.Name,
		CategoryID:        d.CategoryID,
		Quantity:          d.Quantity,
		Price:             d.Price,
		SerialNumber:      d.SerialNumber,
		Description:       d.Description,
		LowStockThreshold: d.LowStockThreshold,
		Unit:              d.Unit,
		Supplier:          d.Supplier,
		Location:          d.Location,
	}
}
