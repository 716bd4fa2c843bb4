package model

import "time"

// Attendance statuses.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
)

// User roles.
const (
	RoleAdmin = "admin"
	RoleCR    = "cr"
)

// BaseModel audit timestamps embedded by every mutable model.
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
