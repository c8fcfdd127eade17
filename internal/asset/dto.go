package asset

import (
	"fmt"
	"time"

	"github.com/bccsims/asset-inventory/internal"
)

// AssetDTO is the transport payload for creating and updating assets.
type AssetDTO struct {
	ID             int64      `json:"id"`
	EmployeeName   string     `json:"employeeName"`
	Type           string     `json:"type"`
	SRNumber       string     `json:"srNumber"`
	SerialNumber   string     `json:"serialNumber"`
	Department     string     `json:"department"`
	DepartmentID   *int64     `json:"departmentId,omitempty"`
	Section        string     `json:"section"`
	Position       string     `json:"position"`
	ExtNumber      string     `json:"extNumber"`
	OfficeNumber   string     `json:"officeNumber"`
	Location       string     `json:"location"`
	Status         string     `json:"status"`
	Model          string     `json:"model"`
	Notes          string     `json:"notes"`
	PurchaseDate   *time.Time `json:"purchaseDate,omitempty"`
	WarrantyExpiry *time.Time `json:"warrantyExpiry,omitempty"`
	DisposalDate   *time.Time `json:"disposalDate,omitempty"`
}

func (d AssetDTO) Validate() error {
	if d.EmployeeName == "" {
		return internal.NewValidationError("employeeName is required")
	}
	if d.Type == "" {
		return internal.NewValidationError("type is required")
	}
	return nil
}

func (d AssetDTO) toAsset() *Asset {
	return &Asset{
		ID:             d.ID,
		EmployeeName:   d.EmployeeName,
		Type:           d.Type,
		SRNumber:       d.SRNumber,
		SerialNumber:   d.SerialNumber,
		Department:     d.Department,
		DepartmentID:   d.DepartmentID,
		Section:        d.Section,
		Position:       d.Position,
		ExtNumber:      d.ExtNumber,
		OfficeNumber:   d.OfficeNumber,
		Location:       d.Location,
		Status:         d.Status,
		Model:          d.Model,
		Notes:          d.Notes,
		PurchaseDate:   d.PurchaseDate,
		WarrantyExpiry: d.WarrantyExpiry,
		DisposalDate:   d.DisposalDate,
	}
}

// BulkAssetsDTO wraps the payload for the batch registration endpoint.
type BulkAssetsDTO struct {
	Assets []AssetDTO `json:"assets"`
}

func (d BulkAssetsDTO) Validate() error {
	if len(d.Assets) == 0 {
		return internal.NewValidationError("assets must not be empty")
	}
	for i, a := range d.Assets {
		if err := a.Validate(); err != nil {
			if appErr, ok := internal.IsAppError(err); ok {
				return internal.NewValidationError(fmt.Sprintf("asset %d: %s", i+1, appErr.Message))
			}
			return err
		}
	}
	return nil
}
