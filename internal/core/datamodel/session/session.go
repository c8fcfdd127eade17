package session

import "time"

// Session is the storage model for browser sessions. One row per token;
// tokens are never reused. Expiry is measured from last_activity.
type Session struct {
	ID           int64     `gorm:"primaryKey"`
	UserID       int64     `gorm:"column:user_id;not null;index"`
	SessionToken string    `gorm:"column:session_token;uniqueIndex;not null"`
	IPAddress    string    `gorm:"column:ip_address"`
	UserAgent    string    `gorm:"column:user_agent"`
	IsActive     bool      `gorm:"column:is_active;default:true"`
	LastActivity time.Time `gorm:"column:last_activity;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (Session) TableName() string {
	return "user_sessions"
}
