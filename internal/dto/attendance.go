package dto

// ── mark ──

// MarkAttendanceRequest one slot's full roster of marks.
type MarkAttendanceRequest struct {
	Date      string      `json:"date"      binding:"required,isodate"`
	Period    int         `json:"period"    binding:"required,min=1,max=7"`
	SubjectID string      `json:"subjectId" binding:"required,uuid"`
	Records   []MarkEntry `json:"records"   binding:"required,min=1,dive"`
}

// MarkEntry a single student's status.
type MarkEntry struct {
	StudentID string `json:"studentId" binding:"required,uuid"`
	Status    string `json:"status"    binding:"required,attstatus"`
}

// MarkAttendanceResponse counts of what was stored.
type MarkAttendanceResponse struct {
	Date    string `json:"date"`
	Period  int    `json:"period"`
	Total   int    `json:"total"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
}

// ── override ──

// OverrideRequest changes one stored status.
type OverrideRequest struct {
	StudentID string `json:"studentId" binding:"required,uuid"`
	Date      string `json:"date"      binding:"required,isodate"`
	Period    int    `json:"period"    binding:"required,min=1,max=7"`
	Status    string `json:"status"    binding:"required,attstatus"`
	Reason    string `json:"reason"    binding:"required,max=500"`
}

// OverrideResponse before/after of an override.
type OverrideResponse struct {
	StudentID string `json:"studentId"`
	Date      string `json:"date"`
	Period    int    `json:"period"`
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
}

// ── audit ──

// AuditLogQuery list bound.
type AuditLogQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=200"`
}

// AuditLogResponse one audit entry.
type AuditLogResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Action    string `json:"action"`
	StudentID string `json:"studentId"`
	Date      string `json:"date"`
	Period    int    `json:"period"`
	OldValue  string `json:"oldValue"`
	NewValue  string `json:"newValue"`
	Reason    string `json:"reason"`
	CreatedAt string `json:"createdAt"`
}
