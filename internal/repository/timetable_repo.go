package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Harshavardhanyedla/AttendX/internal/model"
)

// TimetableRepository weekly timetable access
type TimetableRepository interface {
	ListByWeekday(ctx context.Context, weekday string) ([]model.TimetableEntry, error)
	GetByWeekdayAndPeriod(ctx context.Context, weekday string, period int) (*model.TimetableEntry, error)
	BatchCreate(ctx context.Context, entries []model.TimetableEntry) error
}

type timetableRepo struct {
	db *gorm.DB
}

// NewTimetableRepo creates a TimetableRepository.
func NewTimetableRepo(db *gorm.DB) TimetableRepository {
	return &timetableRepo{db: db}
}

func (r *timetableRepo) ListByWeekday(ctx context.Context, weekday string) ([]model.TimetableEntry, error) {
	var entries []model.TimetableEntry
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("weekday = ?", weekday).
		Order("period ASC").
		Find(&entries).Error
	return entries, err
}

func (r *timetableRepo) GetByWeekdayAndPeriod(ctx context.Context, weekday string, period int) (*model.TimetableEntry, error) {
	var entry model.TimetableEntry
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("weekday = ? AND period = ?", weekday, period).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *timetableRepo) BatchCreate(ctx context.Context, entries []model.TimetableEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&entries).Error
}
