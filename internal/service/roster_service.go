package service

import (
	"bytes"
	"context"

	"go.uber.org/zap"

	"github.com/Harshavardhanyedla/AttendX/internal/dto"
	"github.com/Harshavardhanyedla/AttendX/internal/model"
	"github.com/Harshavardhanyedla/AttendX/internal/period"
	"github.com/Harshavardhanyedla/AttendX/internal/repository"
)

// RosterService reference data for the marking screen.
type RosterService interface {
	// ListStudents returns the roster by roll number. With a date and
	// period it also carries each student's status in that slot; students
	// not yet marked default to present.
	ListStudents(ctx context.Context, q *dto.RosterQuery) ([]dto.RosterStudent, error)
	ListSubjects(ctx context.Context) ([]dto.SubjectResponse, error)
	TodayTimetable(ctx context.Context) (*dto.TimetableResponse, error)
	TimetableCalendar(ctx context.Context) (*bytes.Buffer, string, error)
}

type rosterService struct {
	repo   *repository.Repository
	clock  period.Clock
	logger *zap.Logger
}

// NewRosterService creates a RosterService.
func NewRosterService(repo *repository.Repository, clock period.Clock, logger *zap.Logger) RosterService {
	return &rosterService{repo: repo, clock: clock, logger: logger}
}

func (s *rosterService) ListStudents(ctx context.Context, q *dto.RosterQuery) ([]dto.RosterStudent, error) {
	students, err := s.repo.Student.List(ctx)
	if err != nil {
		s.logger.Error("list students failed", zap.Error(err))
		return nil, err
	}

	withStatus := q.Date != "" && q.Period != 0
	var statuses map[string]string
	if withStatus {
		if _, err := period.ParseDate(q.Date); err != nil {
			return nil, ErrInvalidDate
		}
		if !period.Valid(q.Period) {
			return nil, ErrInvalidPeriod
		}
		records, err := s.repo.Attendance.ListBySlot(ctx, q.Date, q.Period)
		if err != nil {
			s.logger.Error("list slot records failed", zap.Error(err))
			return nil, err
		}
		statuses = make(map[string]string, len(records))
		for _, r := range records {
			statuses[r.StudentID] = r.Status
		}
	}

	result := make([]dto.RosterStudent, 0, len(students))
	for _, st := range students {
		rs := dto.RosterStudent{
			ID:     st.StudentID,
			RollNo: st.RollNo,
			Name:   st.Name,
			Gender: st.Gender,
		}
		if withStatus {
			rs.Status = model.StatusPresent
			if status, ok := statuses[st.StudentID]; ok {
				rs.Status = status
			}
		}
		result = append(result, rs)
	}
	return result, nil
}

func (s *rosterService) ListSubjects(ctx context.Context) ([]dto.SubjectResponse, error) {
	subjects, err := s.repo.Subject.List(ctx)
	if err != nil {
		s.logger.Error("list subjects failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.SubjectResponse, 0, len(subjects))
	for _, sub := range subjects {
		result = append(result, dto.SubjectResponse{
			ID:   sub.SubjectID,
			Code: sub.Code,
			Name: sub.Name,
			Type: sub.Type,
		})
	}
	return result, nil
}

func (s *rosterService) TodayTimetable(ctx context.Context) (*dto.TimetableResponse, error) {
	day := period.Weekday(s.clock.Now())
	entries, err := s.repo.Timetable.ListByWeekday(ctx, day)
	if err != nil {
		s.logger.Error("list timetable failed", zap.String("day", day), zap.Error(err))
		return nil, err
	}

	resp := &dto.TimetableResponse{Day: day, Entries: make([]dto.TimetableSlotDTO, 0, len(entries))}
	for _, e := range entries {
		tr, _ := period.TimeRange(e.Period)
		resp.Entries = append(resp.Entries, dto.TimetableSlotDTO{
			Period:    e.Period,
			TimeRange: tr,
			Subject:   subjectBrief(e.Subject, e.SubjectID),
		})
	}
	return resp, nil
}
