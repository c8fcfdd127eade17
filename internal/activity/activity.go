package activity

import (
	"context"
	"time"

	activityDatamodel "github.com/bccsims/asset-inventory/internal/core/datamodel/activity"
)

// Action tags recorded with every mutation. One tag per verb and resource.
const (
	ActionCreateInventory = "CREATE_INVENTORY"
	ActionUpdateInventory = "UPDATE_INVENTORY"
	ActionDeleteInventory = "DELETE_INVENTORY"

	ActionCreateAsset      = "CREATE_ASSET"
	ActionUpdateAsset      = "UPDATE_ASSET"
	ActionDeleteAsset      = "DELETE_ASSET"
	ActionBulkCreateAssets = "BULK_CREATE_ASSETS"

	ActionCreateUser     = "CREATE_USER"
	ActionDeactivateUser = "DEACTIVATE_USER"
)

// Entry is one audit record: who did what to which row, in human-readable
// form.
type Entry struct {
	UserID      int64
	Action      string
	TargetTable string
	RecordID    *int64
	Description string
}

// LogView is the read shape for the audit trail, joined with the acting
// user's current username and role.
type LogView struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Username    string    `json:"username"`
	UserRole    string    `json:"userRole"`
	Action      string    `json:"action"`
	TargetTable string    `json:"targetTable"`
	RecordID    *int64    `json:"recordId,omitempty"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// Recorder is what mutating services depend on. Appends are best-effort:
// callers log a failed append and keep the primary mutation.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

type RepositoryAPI interface {
	Insert(ctx context.Context, entry *activityDatamodel.Entry) error
	ListRecent(ctx context.Context, limit int) ([]*LogView, error)
}

func ToDataModel(e Entry) *activityDatamodel.Entry {
	return &activityDatamodel.Entry{
		UserID:      e.UserID,
		Action:      e.Action,
		TargetTable: e.TargetTable,
		RecordID:    e.RecordID,
		Description: e.Description,
		Timestamp:   time.Now(),
	}
}
