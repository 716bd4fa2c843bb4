package dto

import "github.com/Harshavardhanyedla/AttendX/internal/period"

// LiveResponse today's per-period status board.
type LiveResponse struct {
	Date    string       `json:"date"`
	Day     string       `json:"day"`
	Periods []LivePeriod `json:"periods"`
}

// LivePeriod one scheduled period. Counts are zero until marked.
type LivePeriod struct {
	Period    int           `json:"period"`
	TimeRange period.Range  `json:"timeRange"`
	Subject   *SubjectBrief `json:"subject"`
	IsMarked  bool          `json:"isMarked"`
	Total     int           `json:"total"`
	Present   int           `json:"present"`
	Absent    int           `json:"absent"`
}
