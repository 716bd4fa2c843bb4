package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Harshavardhanyedla/AttendX/internal/dto"
	"github.com/Harshavardhanyedla/AttendX/internal/period"
	"github.com/Harshavardhanyedla/AttendX/internal/repository"
)

// Session messages.
const (
	MsgBreakTime  = "It is break time (13:00-14:00)"
	MsgNoSession  = "No class session active now"
	MsgFreePeriod = "Free period (no subject assigned)"
)

// SessionService resolves which class is on now.
type SessionService interface {
	// Resolve uses q.Day and q.Period when given, otherwise the clock.
	Resolve(ctx context.Context, q *dto.SessionQuery) (*dto.SessionResponse, error)
}

type sessionService struct {
	repo   *repository.Repository
	clock  period.Clock
	logger *zap.Logger
}

// NewSessionService creates a SessionService.
func NewSessionService(repo *repository.Repository, clock period.Clock, logger *zap.Logger) SessionService {
	return &sessionService{repo: repo, clock: clock, logger: logger}
}

func (s *sessionService) Resolve(ctx context.Context, q *dto.SessionQuery) (*dto.SessionResponse, error) {
	now := s.clock.Now()
	resp := &dto.SessionResponse{
		Day:  q.Day,
		Date: period.Date(now),
	}
	if resp.Day == "" {
		resp.Day = period.Weekday(now)
	}

	var p int
	if q.Period != nil {
		p = *q.Period
	} else {
		cur := period.Current(now)
		switch cur.Kind {
		case period.Break:
			resp.Message = MsgBreakTime
			return resp, nil
		case period.None:
			resp.Message = MsgNoSession
			return resp, nil
		}
		p = cur.Number
	}
	resp.Period = &p

	entry, err := s.repo.Timetable.GetByWeekdayAndPeriod(ctx, resp.Day, p)
	if err != nil {
		if isNotFound(err) {
			resp.Message = MsgFreePeriod
			return resp, nil
		}
		s.logger.Error("lookup timetable entry failed",
			zap.String("day", resp.Day), zap.Int("period", p), zap.Error(err))
		return nil, err
	}

	marked, err := s.repo.Attendance.SlotExists(ctx, resp.Date, p)
	if err != nil {
		s.logger.Error("check slot failed",
			zap.String("date", resp.Date), zap.Int("period", p), zap.Error(err))
		return nil, err
	}

	tr, _ := period.TimeRange(p)
	resp.TimeRange = &tr
	resp.Subject = subjectBrief(entry.Subject, entry.SubjectID)
	resp.IsMarked = marked
	return resp, nil
}
