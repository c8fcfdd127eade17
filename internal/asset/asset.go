package asset

import (
	"context"
	"strings"
	"time"

	assetDatamodel "github.com/bccsims/asset-inventory/internal/core/datamodel/asset"
)

// Asset status values as the wire speaks them. Storage keeps them lowercase.
const (
	StatusActive      = "Active"
	StatusUnderRepair = "Under Repair"
	StatusDisposed    = "Disposed"
)

// Asset is the domain/wire view of an assigned hardware record.
type Asset struct {
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
	CreatedAt      time.Time  `json:"addedDate"`
}

// PartnerView is the reduced shape exposed to the repairs system through the
// key-authenticated lookup.
type PartnerView struct {
	SRNumber   string `json:"srNumber"`
	Owner      string `json:"owner"`
	Department string `json:"department"`
}

type ListFilter struct {
	Search     string
	Department string
	Status     string
}

type RepositoryAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*assetDatamodel.Asset, error)
	GetByID(ctx context.Context, id int64) (*assetDatamodel.Asset, error)
	GetBySerial(ctx context.Context, serial string) (*assetDatamodel.Asset, error)
	// ExistsBySerial backs the duplicate-serial policy's pre-insert check.
	ExistsBySerial(ctx context.Context, serial string) (bool, error)
	Create(ctx context.Context, a *assetDatamodel.Asset) error
	CreateBatch(ctx context.Context, batch []*assetDatamodel.Asset) error
	Update(ctx context.Context, a *assetDatamodel.Asset) error
	Delete(ctx context.Context, id int64) error
}

// statusToStorage lowercases a wire status for the condition_status column.
func statusToStorage(status string) string {
	if status == "" {
		return "active"
	}
	return strings.ToLower(status)
}

// statusToWire restores display casing from the stored value.
func statusToWire(status string) string {
	switch strings.ToLower(status) {
	case "under repair":
		return StatusUnderRepair
	case "disposed":
		return StatusDisposed
	default:
		return StatusActive
	}
}

func ToDataModel(a *Asset) *assetDatamodel.Asset {
	assetName := a.Type
	if assetName == "" {
		assetName = "Asset"
	}
	location := a.Location
	if location == "" {
		location = "Office"
	}
	return &assetDatamodel.Asset{
		ID:              a.ID,
		AssetName:       assetName,
		EmployeeName:    a.EmployeeName,
		AssetCode:       a.SRNumber,
		SRNumber:        a.SRNumber,
		SerialNumber:    a.SerialNumber,
		Department:      a.Department,
		DepartmentID:    a.DepartmentID,
		Section:         a.Section,
		Position:        a.Position,
		ExtNumber:       a.ExtNumber,
		OfficeNumber:    a.OfficeNumber,
		Location:        location,
		ConditionStatus: statusToStorage(a.Status),
		Model:           a.Model,
		Notes:           a.Notes,
		PurchaseDate:    a.PurchaseDate,
		WarrantyExpiry:  a.WarrantyExpiry,
		DisposalDate:    a.DisposalDate,
	}
}

func FromDataModel(a *assetDatamodel.Asset) *Asset {
	srNumber := a.SRNumber
	if srNumber == "" {
		srNumber = a.AssetCode
	}
	return &Asset{
		ID:             a.ID,
		EmployeeName:   a.EmployeeName,
		Type:           a.AssetName,
		SRNumber:       srNumber,
		SerialNumber:   a.SerialNumber,
		Department:     a.Department,
		DepartmentID:   a.DepartmentID,
		Section:        a.Section,
		Position:       a.Position,
		ExtNumber:      a.ExtNumber,
		OfficeNumber:   a.OfficeNumber,
		Location:       a.Location,
		Status:         statusToWire(a.ConditionStatus),
		Model:          a.Model,
		Notes:          a.Notes,
		PurchaseDate:   a.PurchaseDate,
		WarrantyExpiry: a.WarrantyExpiry,
		DisposalDate:   a.DisposalDate,
		CreatedAt:      a.CreatedAt,
	}
}

func FromDataModelSlice(rows []*assetDatamodel.Asset) []*Asset {
	result := make([]*Asset, len(rows))
	for i, row := range rows {
		result[i] = FromDataModel(row)
	}
	return result
}
