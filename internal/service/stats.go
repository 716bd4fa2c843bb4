package service

import (
	"errors"
	"math"

	"gorm.io/gorm"

	"github.com/Harshavardhanyedla/AttendX/internal/dto"
	"github.com/Harshavardhanyedla/AttendX/internal/model"
)

// rate is present/total as a whole percentage, half away from zero.
func rate(present, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(present) * 100 / float64(total)))
}

func summarize(total, present int) dto.Summary {
	return dto.Summary{
		Total:   total,
		Present: present,
		Absent:  total - present,
		Rate:    rate(present, total),
	}
}

// tally counts total and present over records.
func tally(records []model.AttendanceRecord) (total, present int) {
	for i := range records {
		total++
		if records[i].IsPresent() {
			present++
		}
	}
	return total, present
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func subjectBrief(sub *model.Subject, fallbackID string) *dto.SubjectBrief {
	if sub == nil {
		return &dto.SubjectBrief{ID: fallbackID}
	}
	return &dto.SubjectBrief{ID: sub.SubjectID, Code: sub.Code, Name: sub.Name}
}
