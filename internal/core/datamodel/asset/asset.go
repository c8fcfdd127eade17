package asset

import "time"

// Asset is the storage model for assigned hardware. sr_number is the
// internal reference; serial_number is the manufacturer serial and must be
// unique when present. department holds the denormalized department name for
// legacy records alongside department_id.
type Asset struct {
	ID              int64      `gorm:"primaryKey"`
	AssetName       string     `gorm:"column:asset_name;not null"`
	EmployeeName    string     `gorm:"column:employee_name;not null"`
	AssetCode       string     `gorm:"column:asset_code"`
	SRNumber        string     `gorm:"column:sr_number;uniqueIndex"`
	SerialNumber    string     `gorm:"column:serial_number"`
	Department      string     `gorm:"column:department"`
	DepartmentID    *int64     `gorm:"column:department_id"`
	Section         string     `gorm:"column:section"`
	Position        string     `gorm:"column:position"`
	ExtNumber       string     `gorm:"column:ext_number"`
	OfficeNumber    string     `gorm:"column:office_number"`
	Location        string     `gorm:"column:location;default:Office"`
	ConditionStatus string     `gorm:"column:condition_status;default:active"`
	Model           string     `gorm:"column:model"`
	Notes           string     `gorm:"column:notes"`
	PurchaseDate    *time.Time `gorm:"column:purchase_date"`
	WarrantyExpiry  *time.Time `gorm:"column:warranty_expiry"`
	DisposalDate    *time.Time `gorm:"column:disposal_date"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (Asset) TableName() string {
	return "assets"
}
