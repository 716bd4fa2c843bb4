package dto

import "github.com/Harshavardhanyedla/AttendX/internal/period"

// SessionQuery optional overrides; both default to "now".
type SessionQuery struct {
	Day    string `form:"day"    binding:"omitempty,weekday"`
	Period *int   `form:"period" binding:"omitempty,min=1,max=7"`
}

// SessionResponse the current class session.
// Period is nil during the break or outside class hours.
type SessionResponse struct {
	Day       string        `json:"day"`
	Date      string        `json:"date"`
	Period    *int          `json:"period"`
	Message   string        `json:"message,omitempty"`
	TimeRange *period.Range `json:"timeRange,omitempty"`
	Subject   *SubjectBrief `json:"subject,omitempty"`
	IsMarked  bool          `json:"isMarked"`
}
