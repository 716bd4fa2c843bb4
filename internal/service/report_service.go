package service

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/Harshavardhanyedla/AttendX/internal/dto"
	"github.com/Harshavardhanyedla/AttendX/internal/model"
	"github.com/Harshavardhanyedla/AttendX/internal/period"
	"github.com/Harshavardhanyedla/AttendX/internal/repository"
)

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrSubjectNotFound = errors.New("subject not found")
)

// noSubject labels a period report with no records.
const noSubject = "N/A"

// ReportService read-only attendance breakdowns. Rates are whole
// percentages rounded half away from zero.
type ReportService interface {
	Period(ctx context.Context, date string, p int) (*dto.PeriodReport, error)
	// Daily covers every timetable period of date's weekday. The overall
	// rate is computed from summed counts, never averaged.
	Daily(ctx context.Context, date string) (*dto.DailyReport, error)
	Student(ctx context.Context, q *dto.StudentReportQuery) (*dto.StudentReport, error)
	Subject(ctx context.Context, q *dto.SubjectReportQuery) (*dto.SubjectReport, error)
}

type reportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReportService creates a ReportService.
func NewReportService(repo *repository.Repository, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// Period
// ═══════════════════════════════════════════════════════════

func (s *reportService) Period(ctx context.Context, date string, p int) (*dto.PeriodReport, error) {
	day, err := period.WeekdayOf(date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	tr, ok := period.TimeRange(p)
	if !ok {
		return nil, ErrInvalidPeriod
	}

	records, err := s.repo.Attendance.ListBySlot(ctx, date, p)
	if err != nil {
		s.logger.Error("list slot records failed", zap.String("date", date), zap.Int("period", p), zap.Error(err))
		return nil, err
	}

	rows := make([]dto.PeriodRecord, 0, len(records))
	for i := range records {
		r := &records[i]
		row := dto.PeriodRecord{
			StudentID: r.StudentID,
			RollNo:    unknownRollNo,
			Name:      unknownStudentName,
			Status:    r.Status,
		}
		if r.Student != nil {
			row.RollNo = r.Student.RollNo
			row.Name = r.Student.Name
			row.Gender = r.Student.Gender
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].RollNo < rows[j].RollNo })

	subject := noSubject
	if len(records) > 0 {
		subject = records[0].SubjectName
	}

	total, present := tally(records)
	return &dto.PeriodReport{
		Date:      date,
		Day:       day,
		Period:    p,
		Label:     period.Label(p),
		TimeRange: tr,
		Subject:   subject,
		Summary:   summarize(total, present),
		Records:   rows,
	}, nil
}

// ═══════════════════════════════════════════════════════════
// Daily
// ═══════════════════════════════════════════════════════════

func (s *reportService) Daily(ctx context.Context, date string) (*dto.DailyReport, error) {
	day, err := period.WeekdayOf(date)
	if err != nil {
		return nil, ErrInvalidDate
	}

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
	byPeriod := make(map[int][]model.AttendanceRecord)
	for _, r := range records {
		byPeriod[r.Period] = append(byPeriod[r.Period], r)
	}

	report := &dto.DailyReport{
		Date:    date,
		Day:     day,
		Periods: make([]dto.DailyPeriod, 0, len(entries)),
	}
	var sumTotal, sumPresent int
	for _, e := range entries {
		tr, _ := period.TimeRange(e.Period)
		total, present := tally(byPeriod[e.Period])
		sumTotal += total
		sumPresent += present
		report.Periods = append(report.Periods, dto.DailyPeriod{
			Period:    e.Period,
			Label:     period.Label(e.Period),
			TimeRange: tr,
			Subject:   subjectBrief(e.Subject, e.SubjectID),
			Summary:   summarize(total, present),
		})
	}
	report.Overall = summarize(sumTotal, sumPresent)
	return report, nil
}

// ═══════════════════════════════════════════════════════════
// Student
// ═══════════════════════════════════════════════════════════

func (s *reportService) Student(ctx context.Context, q *dto.StudentReportQuery) (*dto.StudentReport, error) {
	if err := validateRange(q.StartDate, q.EndDate); err != nil {
		return nil, err
	}

	student, err := s.repo.Student.GetByID(ctx, q.StudentID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("load student failed", zap.String("student_id", q.StudentID), zap.Error(err))
		return nil, err
	}

	records, err := s.repo.Attendance.ListByStudent(ctx, q.StudentID, q.StartDate, q.EndDate)
	if err != nil {
		s.logger.Error("list student attendance failed", zap.String("student_id", q.StudentID), zap.Error(err))
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date > records[j].Date
		}
		return records[i].Period < records[j].Period
	})

	type bucket struct {
		code, name     string
		total, present int
	}
	var order []string
	buckets := make(map[string]*bucket)
	rows := make([]dto.StudentRecord, 0, len(records))

	for i := range records {
		r := &records[i]
		code := r.SubjectID
		if r.Subject != nil {
			code = r.Subject.Code
		}
		b, ok := buckets[code]
		if !ok {
			b = &bucket{code: code, name: r.SubjectName}
			buckets[code] = b
			order = append(order, code)
		}
		b.total++
		if r.IsPresent() {
			b.present++
		}
		rows = append(rows, dto.StudentRecord{
			Date:        r.Date,
			Period:      r.Period,
			SubjectCode: code,
			SubjectName: r.SubjectName,
			Status:      r.Status,
		})
	}

	subjects := make([]dto.SubjectBreakdown, 0, len(order))
	for _, code := range order {
		b := buckets[code]
		subjects = append(subjects, dto.SubjectBreakdown{
			Code:    b.code,
			Name:    b.name,
			Summary: summarize(b.total, b.present),
		})
	}

	total, present := tally(records)
	return &dto.StudentReport{
		Student: dto.StudentBrief{
			ID:     student.StudentID,
			RollNo: student.RollNo,
			Name:   student.Name,
			Gender: student.Gender,
		},
		DateRange: dto.DateRange{StartDate: q.StartDate, EndDate: q.EndDate},
		Stats:     summarize(total, present),
		Subjects:  subjects,
		Records:   rows,
	}, nil
}

// ═══════════════════════════════════════════════════════════
// Subject
// ═══════════════════════════════════════════════════════════

func (s *reportService) Subject(ctx context.Context, q *dto.SubjectReportQuery) (*dto.SubjectReport, error) {
	if err := validateRange(q.StartDate, q.EndDate); err != nil {
		return nil, err
	}

	subject, err := s.repo.Subject.GetByID(ctx, q.SubjectID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSubjectNotFound
		}
		s.logger.Error("load subject failed", zap.String("subject_id", q.SubjectID), zap.Error(err))
		return nil, err
	}

	records, err := s.repo.Attendance.ListBySubject(ctx, q.SubjectID, q.StartDate, q.EndDate)
	if err != nil {
		s.logger.Error("list subject attendance failed", zap.String("subject_id", q.SubjectID), zap.Error(err))
		return nil, err
	}

	byStudent := make(map[string]*dto.StudentBreakdown)
	rows := make([]dto.SubjectRecord, 0, len(records))
	for i := range records {
		r := &records[i]
		b, ok := byStudent[r.StudentID]
		if !ok {
			b = &dto.StudentBreakdown{
				StudentID: r.StudentID,
				RollNo:    unknownRollNo,
				Name:      unknownStudentName,
			}
			if r.Student != nil {
				b.RollNo = r.Student.RollNo
				b.Name = r.Student.Name
				b.Gender = r.Student.Gender
			}
			byStudent[r.StudentID] = b
		}
		b.Total++
		if r.IsPresent() {
			b.Present++
		}
		rows = append(rows, dto.SubjectRecord{
			Date:      r.Date,
			Period:    r.Period,
			StudentID: r.StudentID,
			RollNo:    b.RollNo,
			Name:      b.Name,
			Status:    r.Status,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date > rows[j].Date
		}
		if rows[i].Period != rows[j].Period {
			return rows[i].Period < rows[j].Period
		}
		return rows[i].RollNo < rows[j].RollNo
	})

	students := make([]dto.StudentBreakdown, 0, len(byStudent))
	for _, b := range byStudent {
		b.Summary = summarize(b.Total, b.Present)
		students = append(students, *b)
	}
	sort.Slice(students, func(i, j int) bool {
		if students[i].RollNo != students[j].RollNo {
			return students[i].RollNo < students[j].RollNo
		}
		return students[i].StudentID < students[j].StudentID
	})

	total, present := tally(records)
	return &dto.SubjectReport{
		Subject:   dto.SubjectBrief{ID: subject.SubjectID, Code: subject.Code, Name: subject.Name},
		DateRange: dto.DateRange{StartDate: q.StartDate, EndDate: q.EndDate},
		Stats:     summarize(total, present),
		Students:  students,
		Records:   rows,
	}, nil
}

// validateRange checks optional inclusive bounds.
func validateRange(start, end string) error {
	if start != "" {
		if _, err := period.ParseDate(start); err != nil {
			return ErrInvalidDate
		}
	}
	if end != "" {
		if _, err := period.ParseDate(end); err != nil {
			return ErrInvalidDate
		}
	}
	if start != "" && end != "" && start > end {
		return ErrInvalidRange
	}
	return nil
}
