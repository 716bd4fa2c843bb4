package service

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/Harshavardhanyedla/AttendX/internal/dto"
	"github.com/Harshavardhanyedla/AttendX/internal/period"
	"github.com/Harshavardhanyedla/AttendX/internal/repository"
)

// ── report query errors ──

var (
	ErrInvalidDate   = errors.New("date must be YYYY-MM-DD")
	ErrInvalidPeriod = errors.New("period must be between 1 and 7")
	ErrInvalidMonth  = errors.New("month must be YYYY-MM")
	ErrInvalidRange  = errors.New("startDate must not be after endDate")
)

// Placeholders for records whose student left the roster.
const (
	unknownStudentName = "Unknown"
	unknownRollNo      = "N/A"
)

// PartialService finds students who skipped some of the day's classes.
type PartialService interface {
	// Detect flags students present for at least one but not every
	// conducted period of date. A period is conducted when any record
	// exists for it. Output is sorted by missing periods, worst first.
	Detect(ctx context.Context, date string) (*dto.PartialResponse, error)
}

type partialService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPartialService creates a PartialService.
func NewPartialService(repo *repository.Repository, logger *zap.Logger) PartialService {
	return &partialService{repo: repo, logger: logger}
}

func (s *partialService) Detect(ctx context.Context, date string) (*dto.PartialResponse, error) {
	if _, err := period.ParseDate(date); err != nil {
		return nil, ErrInvalidDate
	}

	records, err := s.repo.Attendance.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("list attendance failed", zap.String("date", date), zap.Error(err))
		return nil, err
	}

	resp := &dto.PartialResponse{Date: date, Students: []dto.PartialStudent{}}
	if len(records) == 0 {
		return resp, nil
	}

	conducted := make(map[int]struct{})
	presentBy := make(map[string]int)
	var order []string // first appearance
	for i := range records {
		r := &records[i]
		conducted[r.Period] = struct{}{}
		if _, seen := presentBy[r.StudentID]; !seen {
			presentBy[r.StudentID] = 0
			order = append(order, r.StudentID)
		}
		if r.IsPresent() {
			presentBy[r.StudentID]++
		}
	}
	total := len(conducted)
	resp.TotalPeriods = total

	var flagged []string
	for _, id := range order {
		if n := presentBy[id]; n > 0 && n < total {
			flagged = append(flagged, id)
		}
	}
	if len(flagged) == 0 {
		return resp, nil
	}

	students, err := s.repo.Student.ListByIDs(ctx, flagged)
	if err != nil {
		s.logger.Error("load students failed", zap.Error(err))
		return nil, err
	}
	byID := make(map[string]int, len(students))
	for i := range students {
		byID[students[i].StudentID] = i
	}

	for _, id := range flagged {
		ps := dto.PartialStudent{
			ID:       id,
			Name:     unknownStudentName,
			RollNo:   unknownRollNo,
			Attended: presentBy[id],
			Total:    total,
			Missing:  total - presentBy[id],
		}
		if i, ok := byID[id]; ok {
			ps.Name = students[i].Name
			ps.RollNo = students[i].RollNo
		}
		resp.Students = append(resp.Students, ps)
	}

	sort.SliceStable(resp.Students, func(i, j int) bool {
		return resp.Students[i].Missing > resp.Students[j].Missing
	})
	return resp, nil
}
