package model

import "time"

// AuditLog is an append-only trail of administrative changes.
type AuditLog struct {
	AuditLogID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"audit_log_id"`
	UserID     string    `gorm:"type:uuid;not null"                             json:"user_id"`
	Action     string    `gorm:"type:varchar(20);not null"                      json:"action"` // override
	StudentID  string    `gorm:"type:uuid;not null"                             json:"student_id"`
	Date       string    `gorm:"type:varchar(10);not null"                      json:"date"`
	Period     int       `gorm:"type:smallint;not null"                         json:"period"`
	OldValue   string    `gorm:"type:varchar(10);not null"                      json:"old_value"`
	NewValue   string    `gorm:"type:varchar(10);not null"                      json:"new_value"`
	Reason     string    `gorm:"type:varchar(500);not null"                     json:"reason"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName table name
func (AuditLog) TableName() string { return "audit_logs" }
