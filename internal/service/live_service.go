package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/Harshavardhanyedla/AttendX/internal/dto"
	"github.com/Harshavardhanyedla/AttendX/internal/period"
	"github.com/Harshavardhanyedla/AttendX/internal/repository"
)

// LiveService today's marking board.
type LiveService interface {
	// Today lists every scheduled period of the current weekday with its
	// marked state and counts.
	Today(ctx context.Context) (*dto.LiveResponse, error)
}

type liveService struct {
	repo   *repository.Repository
	clock  period.Clock
	logger *zap.Logger
}

// NewLiveService creates a LiveService.
func NewLiveService(repo *repository.Repository, clock period.Clock, logger *zap.Logger) LiveService {
	return &liveService{repo: repo, clock: clock, logger: logger}
}

type periodCount struct {
	total, present int
}

func (s *liveService) Today(ctx context.Context) (*dto.LiveResponse, error) {
	now := s.clock.Now()
	day := period.Weekday(now)
	date := period.Date(now)

	entries, err := s.repo.Timetable.ListByWeekday(ctx, day)
	if err != nil {
		s.logger.Error("list timetable failed", zap.String("day", day), zap.Error(err))
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Period < entries[j].Period })

	records, err := s.repo.Attendance.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("list attendance failed", zap.String("date", date), zap.Error(err))
		return nil, err
	}

	counts := make(map[int]*periodCount)
	for i := range records {
		c, ok := counts[records[i].Period]
		if !ok {
			c = &periodCount{}
			counts[records[i].Period] = c
		}
		c.total++
		if records[i].IsPresent() {
			c.present++
		}
	}

	resp := &dto.LiveResponse{
		Date:    date,
		Day:     day,
		Periods: make([]dto.LivePeriod, 0, len(entries)),
	}
	for _, e := range entries {
		tr, _ := period.TimeRange(e.Period)
		lp := dto.LivePeriod{
			Period:    e.Period,
			TimeRange: tr,
			Subject:   subjectBrief(e.Subject, e.SubjectID),
		}
		if c, ok := counts[e.Period]; ok {
			lp.IsMarked = true
			lp.Total = c.total
			lp.Present = c.present
			lp.Absent = c.total - c.present
		}
		resp.Periods = append(resp.Periods, lp)
	}
	return resp, nil
}
