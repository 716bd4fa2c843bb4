package model

import "time"

// AttendanceSlot is one row per submitted (date, period).
// Inserting this row is the conditional write that enforces submit-once.
type AttendanceSlot struct {
	Date      string    `gorm:"type:varchar(10);primaryKey"        json:"date"` // YYYY-MM-DD
	Period    int       `gorm:"type:smallint;primaryKey"           json:"period"`
	SubjectID string    `gorm:"type:uuid;not null"                 json:"subject_id"`
	MarkedBy  string    `gorm:"type:uuid;not null"                 json:"marked_by"`
	MarkedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"marked_at"`
}

// TableName table name
func (AttendanceSlot) TableName() string { return "attendance_slots" }

// AttendanceRecord is one student in one slot, keyed by (student_id, date, period).
type AttendanceRecord struct {
	StudentID   string    `gorm:"type:uuid;primaryKey"               json:"student_id"`
	Date        string    `gorm:"type:varchar(10);primaryKey"        json:"date"`
	Period      int       `gorm:"type:smallint;primaryKey"           json:"period"`
	SubjectID   string    `gorm:"type:uuid;not null"                 json:"subject_id"`
	SubjectName string    `gorm:"type:varchar(100);not null"         json:"subject_name"` // denormalized at mark time
	Status      string    `gorm:"type:varchar(10);not null"          json:"status"`       // present | absent
	MarkedBy    string    `gorm:"type:uuid;not null"                 json:"marked_by"`
	MarkedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"marked_at"`

	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
}

// TableName table name
func (AttendanceRecord) TableName() string { return "attendance_records" }

// IsPresent reports whether the record counts toward attendance.
func (r *AttendanceRecord) IsPresent() bool { return r.Status == StatusPresent }
