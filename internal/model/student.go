package model

// Student is a member of the class roster.
type Student struct {
	StudentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`
	RollNo    string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"roll_no"`
	Name      string `gorm:"type:varchar(100);not null"                     json:"name"`
	Gender    string `gorm:"type:varchar(10);not null"                      json:"gender"`
	BaseModel
}

// TableName table name
func (Student) TableName() string { return "students" }
