package activity

import "time"

// Entry is the storage model for the audit trail. Rows are append-only: the
// application never updates or deletes them.
type Entry struct {
	ID          int64     `gorm:"primaryKey"`
	UserID      int64     `gorm:"column:user_id;not null;index"`
	Action      string    `gorm:"column:action;not null"`
	TargetTable string    `gorm:"column:table_name;not null"`
	RecordID    *int64    `gorm:"column:record_id"`
	Description string    `gorm:"column:description"`
	Timestamp   time.Time `gorm:"column:timestamp"`
}

func (Entry) TableName() string {
	return "activity_log"
}
