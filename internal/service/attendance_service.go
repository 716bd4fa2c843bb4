package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Harshavardhanyedla/AttendX/config"
	"github.com/Harshavardhanyedla/AttendX/internal/dto"
	"github.com/Harshavardhanyedla/AttendX/internal/model"
	"github.com/Harshavardhanyedla/AttendX/internal/period"
	"github.com/Harshavardhanyedla/AttendX/internal/repository"
	pkgerrors "github.com/Harshavardhanyedla/AttendX/pkg/errors"
	"github.com/Harshavardhanyedla/AttendX/pkg/metrics"
)

// ── attendance errors ──

var (
	ErrInvalidAttendance = errors.New("invalid attendance submission")
	ErrSlotAlreadyMarked = errors.New("attendance already submitted for this slot")
	ErrRecordNotFound    = errors.New("attendance record not found")
	ErrStatusUnchanged   = errors.New("record already has this status")
	ErrOverrideConflict  = errors.New("record was changed by another request")
)

// UnknownSubject is stored when the subject id does not resolve.
const UnknownSubject = "Unknown"

// ActionOverride audit action for a status change.
const ActionOverride = "override"

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

// AttendanceService records and corrects attendance.
type AttendanceService interface {
	// Mark stores one slot's batch atomically. Under submit_once a second
	// submission for the slot fails with ErrSlotAlreadyMarked.
	Mark(ctx context.Context, req *dto.MarkAttendanceRequest, markerID string) (*dto.MarkAttendanceResponse, error)
	// Override changes one stored status and writes an audit entry.
	Override(ctx context.Context, req *dto.OverrideRequest, adminID string) (*dto.OverrideResponse, error)
	ListAuditLogs(ctx context.Context, limit int) ([]dto.AuditLogResponse, error)
}

type attendanceService struct {
	repo    *repository.Repository
	policy  string
	clock   period.Clock
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewAttendanceService creates an AttendanceService. An empty policy means
// submit_once.
func NewAttendanceService(
	repo *repository.Repository,
	policy string,
	clock period.Clock,
	m *metrics.Metrics,
	logger *zap.Logger,
) AttendanceService {
	if policy == "" {
		policy = config.PolicySubmitOnce
	}
	return &attendanceService{
		repo:    repo,
		policy:  policy,
		clock:   clock,
		metrics: m,
		logger:  logger,
	}
}

// ────────────────────── Mark ──────────────────────

func (s *attendanceService) Mark(ctx context.Context, req *dto.MarkAttendanceRequest, markerID string) (*dto.MarkAttendanceResponse, error) {
	if err := validateMark(req); err != nil {
		s.metrics.Submission(metrics.ResultInvalid)
		return nil, err
	}

	if err := s.checkStudents(ctx, req.Records); err != nil {
		s.metrics.Submission(metrics.ResultInvalid)
		return nil, err
	}

	subjectName, err := s.subjectName(ctx, req.SubjectID)
	if err != nil {
		s.metrics.Submission(metrics.ResultError)
		return nil, err
	}

	now := s.clock.Now()
	slot := &model.AttendanceSlot{
		Date:      req.Date,
		Period:    req.Period,
		SubjectID: req.SubjectID,
		MarkedBy:  markerID,
		MarkedAt:  now,
	}
	records := make([]model.AttendanceRecord, 0, len(req.Records))
	present := 0
	for _, e := range req.Records {
		if e.Status == model.StatusPresent {
			present++
		}
		records = append(records, model.AttendanceRecord{
			StudentID:   e.StudentID,
			Date:        req.Date,
			Period:      req.Period,
			SubjectID:   req.SubjectID,
			SubjectName: subjectName,
			Status:      e.Status,
			MarkedBy:    markerID,
			MarkedAt:    now,
		})
	}

	result := metrics.ResultCreated
	if s.policy == config.PolicyOverwrite {
		result = metrics.ResultOverwritten
		err = s.repo.Attendance.UpsertBatch(ctx, slot, records)
	} else {
		err = s.repo.Attendance.CreateBatch(ctx, slot, records)
	}
	if err != nil {
		if errors.Is(err, pkgerrors.ErrSlotTaken) {
			s.metrics.Submission(metrics.ResultConflict)
			return nil, fmt.Errorf("%w: %s %s", ErrSlotAlreadyMarked, req.Date, period.Label(req.Period))
		}
		s.metrics.Submission(metrics.ResultError)
		s.logger.Error("persist attendance batch failed",
			zap.String("date", req.Date),
			zap.Int("period", req.Period),
			zap.Int("records", len(records)),
			zap.Error(err),
		)
		return nil, err
	}

	s.metrics.Submission(result)
	s.metrics.Records(present, len(records)-present)
	s.logger.Info("attendance marked",
		zap.String("date", req.Date),
		zap.Int("period", req.Period),
		zap.String("subject", subjectName),
		zap.Int("total", len(records)),
		zap.Int("present", present),
		zap.String("marked_by", markerID),
		zap.String("policy", s.policy),
	)

	return &dto.MarkAttendanceResponse{
		Date:    req.Date,
		Period:  req.Period,
		Total:   len(records),
		Present: present,
		Absent:  len(records) - present,
	}, nil
}

func validateMark(req *dto.MarkAttendanceRequest) error {
	if _, err := period.ParseDate(req.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidAttendance)
	}
	if !period.Valid(req.Period) {
		return fmt.Errorf("%w: period must be between %d and %d", ErrInvalidAttendance, period.First, period.Last)
	}
	if req.SubjectID == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidAttendance)
	}
	if len(req.Records) == 0 {
		return fmt.Errorf("%w: records must not be empty", ErrInvalidAttendance)
	}
	seen := make(map[string]struct{}, len(req.Records))
	for i, e := range req.Records {
		if e.StudentID == "" {
			return fmt.Errorf("%w: records[%d] has no student", ErrInvalidAttendance, i)
		}
		if e.Status != model.StatusPresent && e.Status != model.StatusAbsent {
			return fmt.Errorf("%w: records[%d] status %q", ErrInvalidAttendance, i, e.Status)
		}
		if _, dup := seen[e.StudentID]; dup {
			return fmt.Errorf("%w: student %s listed twice", ErrInvalidAttendance, e.StudentID)
		}
		seen[e.StudentID] = struct{}{}
	}
	return nil
}

// checkStudents rejects ids missing from the roster.
func (s *attendanceService) checkStudents(ctx context.Context, entries []dto.MarkEntry) error {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.StudentID
	}
	found, err := s.repo.Student.ListByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("load students failed", zap.Error(err))
		return err
	}
	if len(found) == len(ids) {
		return nil
	}
	known := make(map[string]struct{}, len(found))
	for _, st := range found {
		known[st.StudentID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("%w: unknown student %s", ErrInvalidAttendance, id)
		}
	}
	return nil
}

func (s *attendanceService) subjectName(ctx context.Context, subjectID string) (string, error) {
	sub, err := s.repo.Subject.GetByID(ctx, subjectID)
	if err != nil {
		if isNotFound(err) {
			s.logger.Warn("subject not found, storing placeholder name", zap.String("subject_id", subjectID))
			return UnknownSubject, nil
		}
		s.logger.Error("lookup subject failed", zap.String("subject_id", subjectID), zap.Error(err))
		return "", err
	}
	return sub.Name, nil
}

// ────────────────────── Override ──────────────────────

func (s *attendanceService) Override(ctx context.Context, req *dto.OverrideRequest, adminID string) (*dto.OverrideResponse, error) {
	if _, err := period.ParseDate(req.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidAttendance)
	}
	if !period.Valid(req.Period) {
		return nil, fmt.Errorf("%w: period must be between %d and %d", ErrInvalidAttendance, period.First, period.Last)
	}
	if req.Status != model.StatusPresent && req.Status != model.StatusAbsent {
		return nil, fmt.Errorf("%w: status %q", ErrInvalidAttendance, req.Status)
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrInvalidAttendance)
	}

	rec, err := s.repo.Attendance.GetByKey(ctx, req.StudentID, req.Date, req.Period)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrRecordNotFound
		}
		s.logger.Error("load attendance record failed", zap.Error(err))
		return nil, err
	}
	if rec.Status == req.Status {
		return nil, ErrStatusUnchanged
	}

	oldStatus := rec.Status
	entry := &model.AuditLog{
		UserID:    adminID,
		Action:    ActionOverride,
		StudentID: req.StudentID,
		Date:      req.Date,
		Period:    req.Period,
		OldValue:  oldStatus,
		NewValue:  req.Status,
		Reason:    reason,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.Attendance.UpdateStatusWithAudit(ctx, rec, req.Status, entry); err != nil {
		if errors.Is(err, pkgerrors.ErrStaleRecord) {
			return nil, ErrOverrideConflict
		}
		s.logger.Error("override attendance failed", zap.Error(err))
		return nil, err
	}

	s.metrics.Override()
	s.logger.Info("attendance overridden",
		zap.String("student_id", req.StudentID),
		zap.String("date", req.Date),
		zap.Int("period", req.Period),
		zap.String("old", oldStatus),
		zap.String("new", req.Status),
		zap.String("by", adminID),
	)

	return &dto.OverrideResponse{
		StudentID: req.StudentID,
		Date:      req.Date,
		Period:    req.Period,
		OldStatus: oldStatus,
		NewStatus: req.Status,
	}, nil
}

// ────────────────────── Audit ──────────────────────

func (s *attendanceService) ListAuditLogs(ctx context.Context, limit int) ([]dto.AuditLogResponse, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}

	logs, err := s.repo.AuditLog.List(ctx, limit)
	if err != nil {
		s.logger.Error("list audit logs failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		result = append(result, dto.AuditLogResponse{
			ID:        l.AuditLogID,
			UserID:    l.UserID,
			Action:    l.Action,
			StudentID: l.StudentID,
			Date:      l.Date,
			Period:    l.Period,
			OldValue:  l.OldValue,
			NewValue:  l.NewValue,
			Reason:    l.Reason,
			CreatedAt: l.CreatedAt.Format(time.RFC3339),
		})
	}
	return result, nil
}
