package dto

import "github.com/Harshavardhanyedla/AttendX/internal/period"

// ── queries ──

// SlotQuery a (date, period) pair.
type SlotQuery struct {
	Date   string `form:"date"   binding:"required,isodate"`
	Period int    `form:"period" binding:"required,min=1,max=7"`
}

// StudentReportQuery optional inclusive range.
type StudentReportQuery struct {
	StudentID string `form:"studentId" binding:"required,uuid"`
	StartDate string `form:"startDate" binding:"omitempty,isodate"`
	EndDate   string `form:"endDate"   binding:"omitempty,isodate"`
}

// SubjectReportQuery optional inclusive range.
type SubjectReportQuery struct {
	SubjectID string `form:"subjectId" binding:"required,uuid"`
	StartDate string `form:"startDate" binding:"omitempty,isodate"`
	EndDate   string `form:"endDate"   binding:"omitempty,isodate"`
}

// MonthQuery YYYY-MM.
type MonthQuery struct {
	Month string `form:"month" binding:"required,yearmonth"`
}

// DateRange echoes the applied bounds; empty means open.
type DateRange struct {
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// ── period ──

// PeriodReport one slot's records.
type PeriodReport struct {
	Date      string         `json:"date"`
	Day       string         `json:"day"`
	Period    int            `json:"period"`
	Label     string         `json:"periodLabel"`
	TimeRange period.Range   `json:"timeRange"`
	Subject   string         `json:"subject"`
	Summary   Summary        `json:"summary"`
	Records   []PeriodRecord `json:"records"`
}

// PeriodRecord a student's status in the slot.
type PeriodRecord struct {
	StudentID string `json:"studentId"`
	RollNo    string `json:"rollNo"`
	Name      string `json:"name"`
	Gender    string `json:"gender"`
	Status    string `json:"status"`
}

// ── daily ──

// DailyReport every scheduled period of a date.
type DailyReport struct {
	Date    string        `json:"date"`
	Day     string        `json:"day"`
	Periods []DailyPeriod `json:"periods"`
	Overall Summary       `json:"overall"`
}

// DailyPeriod one scheduled period's counts.
type DailyPeriod struct {
	Period    int           `json:"period"`
	Label     string        `json:"periodLabel"`
	TimeRange period.Range  `json:"timeRange"`
	Subject   *SubjectBrief `json:"subject"`
	Summary
}

// ── student ──

// StudentBrief roster identity.
type StudentBrief struct {
	ID     string `json:"id"`
	RollNo string `json:"rollNo"`
	Name   string `json:"name"`
	Gender string `json:"gender"`
}

// StudentReport one student's attendance over a range.
type StudentReport struct {
	Student   StudentBrief       `json:"student"`
	DateRange DateRange          `json:"dateRange"`
	Stats     Summary            `json:"stats"`
	Subjects  []SubjectBreakdown `json:"subjectWise"`
	Records   []StudentRecord    `json:"records"`
}

// SubjectBreakdown per-subject counts for a student.
type SubjectBreakdown struct {
	Code string `json:"code"`
	Name string `json:"subject"`
	Summary
}

// StudentRecord one attended (or missed) period.
type StudentRecord struct {
	Date        string `json:"date"`
	Period      int    `json:"period"`
	SubjectCode string `json:"subjectCode"`
	SubjectName string `json:"subjectName"`
	Status      string `json:"status"`
}

// ── subject ──

// SubjectReport one subject's attendance over a range.
type SubjectReport struct {
	Subject   SubjectBrief       `json:"subject"`
	DateRange DateRange          `json:"dateRange"`
	Stats     Summary            `json:"stats"`
	Students  []StudentBreakdown `json:"studentWise"`
	Records   []SubjectRecord    `json:"records"`
}

// SubjectRecord one student's status in one held period.
type SubjectRecord struct {
	Date      string `json:"date"`
	Period    int    `json:"period"`
	StudentID string `json:"studentId"`
	RollNo    string `json:"rollNo"`
	Name      string `json:"name"`
	Status    string `json:"status"`
}

// StudentBreakdown per-student counts for a subject.
type StudentBreakdown struct {
	StudentID string `json:"studentId"`
	RollNo    string `json:"rollNo"`
	Name      string `json:"name"`
	Gender    string `json:"gender"`
	Summary
}

// ── monthly ──

// MonthlyRow one roster student's month.
type MonthlyRow struct {
	RollNo         string
	Name           string
	TotalConducted int
	Attended       int
	Percentage     string // two decimals
}
