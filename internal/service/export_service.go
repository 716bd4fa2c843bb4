package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Harshavardhanyedla/AttendX/internal/dto"
	"github.com/Harshavardhanyedla/AttendX/internal/period"
	"github.com/Harshavardhanyedla/AttendX/internal/repository"
)

var ErrExportGenerateFail = errors.New("failed to generate export file")

// MonthlyHeader is the first CSV line of a monthly export.
var MonthlyHeader = []string{"Roll No", "Name", "Total Classes", "Attended", "Percentage"}

// ExportService renders downloadable files. Buffers are returned with a
// suggested filename; the handler sets the response headers.
type ExportService interface {
	// MonthlyRows computes one row per roster student for a YYYY-MM month.
	MonthlyRows(ctx context.Context, month string) ([]dto.MonthlyRow, error)
	MonthlyCSV(ctx context.Context, month string) (*bytes.Buffer, string, error)

	PeriodWorkbook(ctx context.Context, date string, p int) (*bytes.Buffer, string, error)
	DailyWorkbook(ctx context.Context, date string) (*bytes.Buffer, string, error)
	StudentWorkbook(ctx context.Context, q *dto.StudentReportQuery) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo    *repository.Repository
	reports ReportService
	logger  *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, reports ReportService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, reports: reports, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// Monthly CSV
// ═══════════════════════════════════════════════════════════
//
// totalConducted is the number of distinct (date, period) pairs with any
// record in the month. Every roster student gets a row, records or not.

func (s *exportService) MonthlyRows(ctx context.Context, month string) ([]dto.MonthlyRow, error) {
	from, to, err := period.MonthBounds(month)
	if err != nil {
		return nil, ErrInvalidMonth
	}

	records, err := s.repo.Attendance.ListByDateRange(ctx, from, to)
	if err != nil {
		s.logger.Error("list monthly attendance failed", zap.String("month", month), zap.Error(err))
		return nil, err
	}

	type slotKey struct {
		date   string
		period int
	}
	conducted := make(map[slotKey]struct{})
	attended := make(map[string]int)
	for i := range records {
		r := &records[i]
		conducted[slotKey{r.Date, r.Period}] = struct{}{}
		if r.IsPresent() {
			attended[r.StudentID]++
		}
	}
	total := len(conducted)

	students, err := s.repo.Student.List(ctx)
	if err != nil {
		s.logger.Error("list students failed", zap.Error(err))
		return nil, err
	}

	rows := make([]dto.MonthlyRow, 0, len(students))
	for _, st := range students {
		n := attended[st.StudentID]
		rows = append(rows, dto.MonthlyRow{
			RollNo:         st.RollNo,
			Name:           st.Name,
			TotalConducted: total,
			Attended:       n,
			Percentage:     percentage(n, total),
		})
	}
	return rows, nil
}

// percentage formats attended/total*100 with two decimals, "0.00" when
// nothing was conducted.
func percentage(attended, total int) string {
	if total == 0 {
		return "0.00"
	}
	return strconv.FormatFloat(float64(attended)*100/float64(total), 'f', 2, 64)
}

func (s *exportService) MonthlyCSV(ctx context.Context, month string) (*bytes.Buffer, string, error) {
	rows, err := s.MonthlyRows(ctx, month)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	if err := w.Write(MonthlyHeader); err != nil {
		return nil, "", err
	}
	for _, r := range rows {
		rec := []string{
			r.RollNo,
			r.Name,
			strconv.Itoa(r.TotalConducted),
			strconv.Itoa(r.Attended),
			r.Percentage,
		}
		if err := w.Write(rec); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		s.logger.Error("write monthly csv failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, fmt.Sprintf("attendance_%s.csv", month), nil
}

// ═══════════════════════════════════════════════════════════
// Workbooks
// ═══════════════════════════════════════════════════════════

const sheetName = "Report"

func (s *exportService) PeriodWorkbook(ctx context.Context, date string, p int) (*bytes.Buffer, string, error) {
	rep, err := s.reports.Period(ctx, date, p)
	if err != nil {
		return nil, "", err
	}

	wb := newWorkbook()
	defer wb.f.Close()

	wb.title(fmt.Sprintf("Attendance %s %s (%s) %s", rep.Date, rep.Label, rep.TimeRange, rep.Subject), 5)
	wb.summary(rep.Summary)
	wb.header("Roll No", "Name", "Gender", "Status")
	for _, r := range rep.Records {
		wb.row(r.RollNo, r.Name, r.Gender, r.Status)
	}
	wb.widths(12, 28, 10, 12)

	return s.finish(wb, fmt.Sprintf("attendance_%s_%s.xlsx", rep.Date, rep.Label))
}

func (s *exportService) DailyWorkbook(ctx context.Context, date string) (*bytes.Buffer, string, error) {
	rep, err := s.reports.Daily(ctx, date)
	if err != nil {
		return nil, "", err
	}

	wb := newWorkbook()
	defer wb.f.Close()

	wb.title(fmt.Sprintf("Daily summary %s (%s)", rep.Date, rep.Day), 7)
	wb.summary(rep.Overall)
	wb.header("Period", "Time", "Subject", "Total", "Present", "Absent", "Rate %")
	for _, p := range rep.Periods {
		name := ""
		if p.Subject != nil {
			name = p.Subject.Name
		}
		wb.row(p.Label, p.TimeRange.String(), name, p.Total, p.Present, p.Absent, p.Rate)
	}
	wb.widths(8, 16, 30, 8, 8, 8, 8)

	return s.finish(wb, fmt.Sprintf("daily_%s.xlsx", rep.Date))
}

func (s *exportService) StudentWorkbook(ctx context.Context, q *dto.StudentReportQuery) (*bytes.Buffer, string, error) {
	rep, err := s.reports.Student(ctx, q)
	if err != nil {
		return nil, "", err
	}

	wb := newWorkbook()
	defer wb.f.Close()

	wb.title(fmt.Sprintf("%s %s", rep.Student.RollNo, rep.Student.Name), 5)
	wb.summary(rep.Stats)
	wb.header("Code", "Subject", "Total", "Present", "Rate %")
	for _, sub := range rep.Subjects {
		wb.row(sub.Code, sub.Name, sub.Total, sub.Present, sub.Rate)
	}
	wb.next++
	wb.header("Date", "Period", "Subject", "Status")
	for _, r := range rep.Records {
		wb.row(r.Date, period.Label(r.Period), r.SubjectName, r.Status)
	}
	wb.widths(12, 30, 10, 10, 10)

	return s.finish(wb, fmt.Sprintf("student_%s.xlsx", rep.Student.RollNo))
}

func (s *exportService) finish(wb *workbook, filename string) (*bytes.Buffer, string, error) {
	buf := new(bytes.Buffer)
	if err := wb.f.Write(buf); err != nil {
		s.logger.Error("write workbook failed", zap.String("file", filename), zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, filename, nil
}

// ── workbook helpers ──

type workbook struct {
	f           *excelize.File
	next        int
	headerStyle int
}

func newWorkbook() *workbook {
	f := excelize.NewFile()
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	return &workbook{f: f, next: 1, headerStyle: style}
}

func (w *workbook) title(text string, span int) {
	first := cell(1, w.next)
	w.f.SetCellValue(sheetName, first, text)
	w.f.MergeCell(sheetName, first, cell(span, w.next))
	w.f.SetCellStyle(sheetName, first, first, w.headerStyle)
	w.next++
}

func (w *workbook) summary(sum dto.Summary) {
	w.row("Total", sum.Total, "Present", sum.Present, "Absent", sum.Absent, "Rate %", sum.Rate)
	w.next++
}

func (w *workbook) header(values ...string) {
	for i, v := range values {
		w.f.SetCellValue(sheetName, cell(i+1, w.next), v)
	}
	w.f.SetCellStyle(sheetName, cell(1, w.next), cell(len(values), w.next), w.headerStyle)
	w.next++
}

func (w *workbook) row(values ...interface{}) {
	for i, v := range values {
		w.f.SetCellValue(sheetName, cell(i+1, w.next), v)
	}
	w.next++
}

func (w *workbook) widths(widths ...float64) {
	for i, wd := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		w.f.SetColWidth(sheetName, col, col, wd)
	}
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
