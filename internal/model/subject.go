package model

// Subject is a row of subjects.
type Subject struct {
	SubjectID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"subject_id"`
	Code      string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"code"`
	Name      string `gorm:"type:varchar(100);not null"                     json:"name"`
	Type      string `gorm:"type:varchar(20);not null;default:'theory'"     json:"type"` // theory | lab
	BaseModel
}

// TableName table name
func (Subject) TableName() string { return "subjects" }
