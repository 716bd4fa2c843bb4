package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Harshavardhanyedla/AttendX/internal/model"
	pkgerrors "github.com/Harshavardhanyedla/AttendX/pkg/errors"
)

// AttendanceRepository attendance slots and records.
//
// Date bounds are inclusive YYYY-MM-DD strings; an empty bound is open.
type AttendanceRepository interface {
	SlotExists(ctx context.Context, date string, period int) (bool, error)
	// CreateBatch writes the slot header and its records in one transaction.
	// A slot that already exists yields pkgerrors.ErrSlotTaken.
	CreateBatch(ctx context.Context, slot *model.AttendanceSlot, records []model.AttendanceRecord) error
	// UpsertBatch replaces the slot and each record by composite key.
	UpsertBatch(ctx context.Context, slot *model.AttendanceSlot, records []model.AttendanceRecord) error

	GetByKey(ctx context.Context, studentID, date string, period int) (*model.AttendanceRecord, error)
	ListByDate(ctx context.Context, date string) ([]model.AttendanceRecord, error)
	ListBySlot(ctx context.Context, date string, period int) ([]model.AttendanceRecord, error)
	ListByStudent(ctx context.Context, studentID, from, to string) ([]model.AttendanceRecord, error)
	ListBySubject(ctx context.Context, subjectID, from, to string) ([]model.AttendanceRecord, error)
	ListByDateRange(ctx context.Context, from, to string) ([]model.AttendanceRecord, error)

	// UpdateStatusWithAudit flips one record's status and appends the audit
	// entry atomically. The update is conditional on rec.Status still being
	// current; otherwise pkgerrors.ErrStaleRecord.
	UpdateStatusWithAudit(ctx context.Context, rec *model.AttendanceRecord, newStatus string, log *model.AuditLog) error
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo creates an AttendanceRepository.
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

// ────── Write ──────

func (r *attendanceRepo) SlotExists(ctx context.Context, date string, period int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.AttendanceSlot{}).
		Where("date = ? AND period = ?", date, period).
		Count(&count).Error
	return count > 0, err
}

func (r *attendanceRepo) CreateBatch(ctx context.Context, slot *model.AttendanceSlot, records []model.AttendanceRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(slot).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return pkgerrors.ErrSlotTaken
			}
			return err
		}
		if len(records) > 0 {
			if err := tx.Omit(clause.Associations).CreateInBatches(&records, 100).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *attendanceRepo) UpsertBatch(ctx context.Context, slot *model.AttendanceSlot, records []model.AttendanceRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "period"}},
			DoUpdates: clause.AssignmentColumns([]string{"subject_id", "marked_by", "marked_at"}),
		}).Create(slot).Error
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "student_id"}, {Name: "date"}, {Name: "period"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"subject_id", "subject_name", "status", "marked_by", "marked_at",
			}),
		}).CreateInBatches(&records, 100).Error
	})
}

func (r *attendanceRepo) UpdateStatusWithAudit(ctx context.Context, rec *model.AttendanceRecord, newStatus string, log *model.AuditLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.AttendanceRecord{}).
			Where("student_id = ? AND date = ? AND period = ? AND status = ?",
				rec.StudentID, rec.Date, rec.Period, rec.Status).
			Update("status", newStatus)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return pkgerrors.ErrStaleRecord
		}
		if err := tx.Create(log).Error; err != nil {
			return err
		}
		rec.Status = newStatus
		return nil
	})
}

// ────── Read ──────

func (r *attendanceRepo) GetByKey(ctx context.Context, studentID, date string, period int) (*model.AttendanceRecord, error) {
	if !validID(studentID) {
		return nil, gorm.ErrRecordNotFound
	}
	var rec model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND date = ? AND period = ?", studentID, date, period).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *attendanceRepo) ListByDate(ctx context.Context, date string) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("period ASC").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepo) ListBySlot(ctx context.Context, date string, period int) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("date = ? AND period = ?", date, period).
		Find(&records).Error
	return records, err
}

func (r *attendanceRepo) ListByStudent(ctx context.Context, studentID, from, to string) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	db := dateRange(r.db.WithContext(ctx), from, to).
		Where("student_id = ?", studentID)
	err := db.Preload("Subject").
		Order("date DESC, period ASC").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepo) ListBySubject(ctx context.Context, subjectID, from, to string) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	db := dateRange(r.db.WithContext(ctx), from, to).
		Where("subject_id = ?", subjectID)
	err := db.Preload("Student").
		Order("date DESC, period ASC").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepo) ListByDateRange(ctx context.Context, from, to string) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := dateRange(r.db.WithContext(ctx), from, to).
		Order("date ASC, period ASC").
		Find(&records).Error
	return records, err
}

// dateRange applies inclusive bounds. YYYY-MM-DD sorts lexically.
func dateRange(db *gorm.DB, from, to string) *gorm.DB {
	if from != "" {
		db = db.Where("date >= ?", from)
	}
	if to != "" {
		db = db.Where("date <= ?", to)
	}
	return db
}
