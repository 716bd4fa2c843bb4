package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Harshavardhanyedla/AttendX/internal/dto"
	"github.com/Harshavardhanyedla/AttendX/internal/service"
	"github.com/Harshavardhanyedla/AttendX/pkg/jwt"
	"github.com/Harshavardhanyedla/AttendX/pkg/response"
	"github.com/Harshavardhanyedla/AttendX/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validation.Register(); err != nil {
		panic(err)
	}
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	logoutErr     error
	loggedOut     *jwt.Claims
	meResult      *dto.UserResponse
	meErr         error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Refresh(_ context.Context, _ string) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, claims *jwt.Claims) error {
	m.loggedOut = claims
	return m.logoutErr
}
func (m *mockAuthService) Me(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.meResult, m.meErr
}

// ── Mock attendance-side services ──

type mockSessionService struct {
	result *dto.SessionResponse
	err    error
	got    *dto.SessionQuery
}

func (m *mockSessionService) Resolve(_ context.Context, q *dto.SessionQuery) (*dto.SessionResponse, error) {
	m.got = q
	return m.result, m.err
}

type mockAttendanceService struct {
	markResult     *dto.MarkAttendanceResponse
	markErr        error
	markedBy       string
	overrideResult *dto.OverrideResponse
	overrideErr    error
	auditResult    []dto.AuditLogResponse
	auditLimit     int
}

func (m *mockAttendanceService) Mark(_ context.Context, _ *dto.MarkAttendanceRequest, markerID string) (*dto.MarkAttendanceResponse, error) {
	m.markedBy = markerID
	return m.markResult, m.markErr
}
func (m *mockAttendanceService) Override(_ context.Context, _ *dto.OverrideRequest, _ string) (*dto.OverrideResponse, error) {
	return m.overrideResult, m.overrideErr
}
func (m *mockAttendanceService) ListAuditLogs(_ context.Context, limit int) ([]dto.AuditLogResponse, error) {
	m.auditLimit = limit
	return m.auditResult, nil
}

type mockLiveService struct {
	result *dto.LiveResponse
	err    error
}

func (m *mockLiveService) Today(_ context.Context) (*dto.LiveResponse, error) {
	return m.result, m.err
}

type mockPartialService struct {
	result *dto.PartialResponse
	err    error
}

func (m *mockPartialService) Detect(_ context.Context, _ string) (*dto.PartialResponse, error) {
	return m.result, m.err
}

type mockRosterService struct {
	students []dto.RosterStudent
	err      error
}

func (m *mockRosterService) ListStudents(_ context.Context, _ *dto.RosterQuery) ([]dto.RosterStudent, error) {
	return m.students, m.err
}
func (m *mockRosterService) ListSubjects(_ context.Context) ([]dto.SubjectResponse, error) {
	return nil, m.err
}
func (m *mockRosterService) TodayTimetable(_ context.Context) (*dto.TimetableResponse, error) {
	return &dto.TimetableResponse{Day: "Monday"}, m.err
}
func (m *mockRosterService) TimetableCalendar(_ context.Context) (*bytes.Buffer, string, error) {
	return bytes.NewBufferString("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"), "timetable.ics", m.err
}

// ── Mock report services ──

type mockReportService struct {
	periodResult  *dto.PeriodReport
	studentErr    error
	subjectResult *dto.SubjectReport
	err           error
}

func (m *mockReportService) Period(_ context.Context, _ string, _ int) (*dto.PeriodReport, error) {
	return m.periodResult, m.err
}
func (m *mockReportService) Daily(_ context.Context, _ string) (*dto.DailyReport, error) {
	return &dto.DailyReport{}, m.err
}
func (m *mockReportService) Student(_ context.Context, _ *dto.StudentReportQuery) (*dto.StudentReport, error) {
	return &dto.StudentReport{}, m.studentErr
}
func (m *mockReportService) Subject(_ context.Context, _ *dto.SubjectReportQuery) (*dto.SubjectReport, error) {
	return m.subjectResult, m.err
}

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) MonthlyRows(_ context.Context, _ string) ([]dto.MonthlyRow, error) {
	return nil, m.err
}
func (m *mockExportService) MonthlyCSV(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) PeriodWorkbook(_ context.Context, _ string, _ int) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) DailyWorkbook(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) StudentWorkbook(_ context.Context, _ *dto.StudentReportQuery) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

type attendanceMocks struct {
	session    *mockSessionService
	attendance *mockAttendanceService
	live       *mockLiveService
	partial    *mockPartialService
	roster     *mockRosterService
}

func newAttendanceHandler() (*AttendanceHandler, *attendanceMocks) {
	m := &attendanceMocks{
		session:    &mockSessionService{},
		attendance: &mockAttendanceService{},
		live:       &mockLiveService{},
		partial:    &mockPartialService{},
		roster:     &mockRosterService{},
	}
	return NewAttendanceHandler(m.session, m.attendance, m.live, m.partial, m.roster), m
}

// withUser stands in for JWTAuth.
func withUser(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxUserID, userID)
		c.Set(CtxRole, role)
		c.Set(CtxClaims, &jwt.Claims{UserID: userID, Role: role})
		c.Next()
	}
}

func serve(method, route, target string, body io.Reader, handlers ...gin.HandlerFunc) *httptest.ResponseRecorder {
	r := gin.New()
	r.Handle(method, route, handlers...)
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

const (
	subjectAI = "3f9c2a1e-7b4d-4e8a-9c0f-1d2e3a4b5c6d"
	student01 = "a1b2c3d4-0001-4a5b-8c7d-000000000001"
	student02 = "a1b2c3d4-0002-4a5b-8c7d-000000000002"
)

func validMark() dto.MarkAttendanceRequest {
	return dto.MarkAttendanceRequest{
		Date:      "2026-10-19",
		Period:    3,
		SubjectID: subjectAI,
		Records: []dto.MarkEntry{
			{StudentID: student01, Status: "present"},
			{StudentID: student02, Status: "absent"},
		},
	}
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{
		loginResult: &dto.TokenResponse{AccessToken: "a", RefreshToken: "r", ExpiresIn: 900},
	})

	w := serve("POST", "/auth/login", "/auth/login",
		jsonBody(dto.LoginRequest{Username: "cr", Password: "cr123"}), h.Login)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := serve("POST", "/auth/login", "/auth/login", strings.NewReader("invalid json"), h.Login)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 10001 {
		t.Errorf("expected code 10001, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := serve("POST", "/auth/login", "/auth/login",
		jsonBody(dto.LoginRequest{Username: "cr", Password: "wrong"}), h.Login)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11001 {
		t.Errorf("expected code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_Refresh_Invalid(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{refreshErr: service.ErrInvalidToken})

	w := serve("POST", "/auth/refresh", "/auth/refresh",
		jsonBody(dto.RefreshTokenRequest{RefreshToken: "old"}), h.Refresh)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthHandler_Logout_PassesClaims(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock)

	w := serve("POST", "/auth/logout", "/auth/logout", nil, withUser("user-1", "cr"), h.Logout)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.loggedOut == nil || mock.loggedOut.UserID != "user-1" {
		t.Errorf("expected claims for user-1, got %+v", mock.loggedOut)
	}
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := serve("GET", "/auth/me", "/auth/me", nil, h.Me)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AttendanceHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAttendanceHandler_Mark_Success(t *testing.T) {
	h, m := newAttendanceHandler()
	m.attendance.markResult = &dto.MarkAttendanceResponse{Date: "2026-10-19", Period: 3, Total: 2, Present: 1, Absent: 1}

	w := serve("POST", "/mark", "/mark", jsonBody(validMark()), withUser("user-cr", "cr"), h.Mark)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if m.attendance.markedBy != "user-cr" {
		t.Errorf("expected marker user-cr, got %q", m.attendance.markedBy)
	}
}

func TestAttendanceHandler_Mark_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *dto.MarkAttendanceRequest)
	}{
		{"bad date", func(r *dto.MarkAttendanceRequest) { r.Date = "19-10-2026" }},
		{"period out of range", func(r *dto.MarkAttendanceRequest) { r.Period = 8 }},
		{"unknown status", func(r *dto.MarkAttendanceRequest) { r.Records[0].Status = "late" }},
		{"empty records", func(r *dto.MarkAttendanceRequest) { r.Records = nil }},
		{"missing subject", func(r *dto.MarkAttendanceRequest) { r.SubjectID = "" }},
		{"subject code instead of id", func(r *dto.MarkAttendanceRequest) { r.SubjectID = "DSC-T" }},
		{"roll number instead of id", func(r *dto.MarkAttendanceRequest) { r.Records[1].StudentID = "BCA001" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newAttendanceHandler()
			req := validMark()
			tt.mutate(&req)

			w := serve("POST", "/mark", "/mark", jsonBody(req), withUser("user-cr", "cr"), h.Mark)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
			if m.attendance.markedBy != "" {
				t.Error("service must not be called for an invalid request")
			}
		})
	}
}

func TestAttendanceHandler_Mark_AlreadyMarked(t *testing.T) {
	h, m := newAttendanceHandler()
	m.attendance.markErr = fmt.Errorf("%w: 2026-10-19 P3", service.ErrSlotAlreadyMarked)

	w := serve("POST", "/mark", "/mark", jsonBody(validMark()), withUser("user-cr", "cr"), h.Mark)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12003 {
		t.Errorf("expected code 12003, got %d", resp.Code)
	}
	if !strings.Contains(resp.Message, "2026-10-19 P3") {
		t.Errorf("expected slot in message, got %q", resp.Message)
	}
}

func TestAttendanceHandler_Mark_Unauthenticated(t *testing.T) {
	h, _ := newAttendanceHandler()

	w := serve("POST", "/mark", "/mark", jsonBody(validMark()), h.Mark)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAttendanceHandler_Override_Errors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrRecordNotFound, http.StatusNotFound},
		{service.ErrOverrideConflict, http.StatusConflict},
		{service.ErrStatusUnchanged, http.StatusBadRequest},
		{fmt.Errorf("db down"), http.StatusInternalServerError},
	}
	body := dto.OverrideRequest{StudentID: student01, Date: "2026-10-19", Period: 1, Status: "present", Reason: "late entry"}

	for _, tt := range tests {
		h, m := newAttendanceHandler()
		m.attendance.overrideErr = tt.err

		w := serve("PUT", "/override", "/override", jsonBody(body), withUser("user-admin", "admin"), h.Override)

		if w.Code != tt.want {
			t.Errorf("%v: expected %d, got %d", tt.err, tt.want, w.Code)
		}
	}
}

func TestAttendanceHandler_Session_BindsQuery(t *testing.T) {
	h, m := newAttendanceHandler()
	m.session.result = &dto.SessionResponse{Day: "Tuesday"}

	w := serve("GET", "/session", "/session?day=Tuesday&period=4", nil, h.Session)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if m.session.got.Day != "Tuesday" || m.session.got.Period == nil || *m.session.got.Period != 4 {
		t.Errorf("unexpected bound query %+v", m.session.got)
	}

	w = serve("GET", "/session", "/session?day=Funday", nil, h.Session)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown weekday, got %d", w.Code)
	}
}

func TestAttendanceHandler_TimetableCalendar(t *testing.T) {
	h, _ := newAttendanceHandler()

	w := serve("GET", "/timetable.ics", "/timetable.ics", nil, h.TimetableCalendar)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != contentTypeICS {
		t.Errorf("unexpected content type %q", ct)
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "timetable.ics") {
		t.Errorf("unexpected content disposition %q", w.Header().Get("Content-Disposition"))
	}
}

func TestAttendanceHandler_Partial_RequiresDate(t *testing.T) {
	h, _ := newAttendanceHandler()

	w := serve("GET", "/partial", "/partial", nil, h.Partial)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAttendanceHandler_AuditLogs_Limit(t *testing.T) {
	h, m := newAttendanceHandler()

	w := serve("GET", "/audit-logs", "/audit-logs?limit=20", nil, h.ListAuditLogs)
	if w.Code != http.StatusOK || m.attendance.auditLimit != 20 {
		t.Errorf("expected 200 with limit 20, got %d / %d", w.Code, m.attendance.auditLimit)
	}

	w = serve("GET", "/audit-logs", "/audit-logs?limit=500", nil, h.ListAuditLogs)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 over max limit, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ReportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestReportHandler_Monthly_CSV(t *testing.T) {
	exp := &mockExportService{
		buf:      bytes.NewBufferString("Roll No,Name,Total Classes,Attended,Percentage\n"),
		filename: "attendance_2026-10.csv",
	}
	h := NewReportHandler(&mockReportService{}, exp)

	w := serve("GET", "/monthly", "/monthly?month=2026-10", nil, h.Monthly)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attendance_2026-10.csv") {
		t.Errorf("unexpected content disposition %q", cd)
	}
	if !strings.HasPrefix(w.Body.String(), "Roll No,") {
		t.Errorf("unexpected body %q", w.Body.String())
	}
}

func TestReportHandler_Monthly_InvalidMonth(t *testing.T) {
	h := NewReportHandler(&mockReportService{}, &mockExportService{})

	for _, month := range []string{"", "2026-13", "oct"} {
		w := serve("GET", "/monthly", "/monthly?month="+month, nil, h.Monthly)
		if w.Code != http.StatusBadRequest {
			t.Errorf("month %q: expected 400, got %d", month, w.Code)
		}
	}
}

func TestReportHandler_Student_NotFound(t *testing.T) {
	h := NewReportHandler(&mockReportService{studentErr: service.ErrStudentNotFound}, &mockExportService{})

	w := serve("GET", "/student", "/student?studentId="+student01, nil, h.Student)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 13002 {
		t.Errorf("expected code 13002, got %d", resp.Code)
	}
}

func TestReportHandler_MalformedIDs(t *testing.T) {
	h := NewReportHandler(&mockReportService{subjectResult: &dto.SubjectReport{}}, &mockExportService{})

	tests := []struct {
		route, target string
		handler       gin.HandlerFunc
	}{
		{"/student", "/student?studentId=BCA001", h.Student},
		{"/subject", "/subject?subjectId=DSC-T", h.Subject},
		{"/student/download", "/student/download?studentId=BCA001", h.DownloadStudent},
	}
	for _, tt := range tests {
		w := serve("GET", tt.route, tt.target, nil, tt.handler)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tt.target, w.Code)
		}
		if resp := parseResponse(w); resp.Code != 10001 {
			t.Errorf("%s: expected code 10001, got %d", tt.target, resp.Code)
		}
	}
}

func TestReportHandler_Period(t *testing.T) {
	h := NewReportHandler(&mockReportService{
		periodResult: &dto.PeriodReport{Date: "2026-10-19", Period: 2, Summary: dto.Summary{Total: 3, Present: 2, Absent: 1, Rate: 67}},
	}, &mockExportService{})

	w := serve("GET", "/period", "/period?date=2026-10-19&period=2", nil, h.Period)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Data dto.PeriodReport `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Summary.Rate != 67 {
		t.Errorf("expected rate 67, got %d", body.Data.Summary.Rate)
	}
}

func TestReportHandler_DownloadPeriod_Workbook(t *testing.T) {
	exp := &mockExportService{buf: bytes.NewBufferString("xlsx"), filename: "attendance_2026-10-19_P2.xlsx"}
	h := NewReportHandler(&mockReportService{}, exp)

	w := serve("GET", "/download/period", "/download/period?date=2026-10-19&period=2", nil, h.DownloadPeriod)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != contentTypeXLSX {
		t.Errorf("unexpected content type %q", ct)
	}
}
