package dto

import "github.com/Harshavardhanyedla/AttendX/internal/period"

// RosterQuery optional slot to pre-fill statuses from.
type RosterQuery struct {
	Date   string `form:"date"   binding:"omitempty,isodate"`
	Period int    `form:"period" binding:"omitempty,min=1,max=7"`
}

// RosterStudent a student and their status in the queried slot.
type RosterStudent struct {
	ID     string `json:"id"`
	RollNo string `json:"rollNo"`
	Name   string `json:"name"`
	Gender string `json:"gender"`
	Status string `json:"status,omitempty"`
}

// SubjectResponse subject reference entry.
type SubjectResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// TimetableResponse a weekday's schedule.
type TimetableResponse struct {
	Day     string             `json:"day"`
	Entries []TimetableSlotDTO `json:"entries"`
}

// TimetableSlotDTO one scheduled period.
type TimetableSlotDTO struct {
	Period    int           `json:"period"`
	TimeRange period.Range  `json:"timeRange"`
	Subject   *SubjectBrief `json:"subject"`
}
