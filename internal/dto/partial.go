package dto

// DateQuery a single required date.
type DateQuery struct {
	Date string `form:"date" binding:"required,isodate"`
}

// PartialResponse students present for some but not all conducted periods.
type PartialResponse struct {
	Date         string           `json:"date"`
	TotalPeriods int              `json:"totalPeriods"`
	Students     []PartialStudent `json:"students"`
}

// PartialStudent one flagged student.
type PartialStudent struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	RollNo   string `json:"rollNo"`
	Attended int    `json:"attended"`
	Total    int    `json:"total"`
	Missing  int    `json:"missing"`
}
