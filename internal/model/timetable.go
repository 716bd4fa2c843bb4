package model

// TimetableEntry assigns one subject to a (weekday, period).
type TimetableEntry struct {
	TimetableEntryID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"       json:"timetable_entry_id"`
	Weekday          string `gorm:"type:varchar(10);not null;uniqueIndex:uq_weekday_period" json:"weekday"` // Sunday..Saturday
	Period           int    `gorm:"type:smallint;not null;uniqueIndex:uq_weekday_period"    json:"period"`  // 1-7
	SubjectID        string `gorm:"type:uuid;not null"                                      json:"subject_id"`
	BaseModel

	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
}

// TableName table name
func (TimetableEntry) TableName() string { return "timetable_entries" }
