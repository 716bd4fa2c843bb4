package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Harshavardhanyedla/AttendX/internal/model"
)

// StudentRepository roster access
type StudentRepository interface {
	List(ctx context.Context) ([]model.Student, error)
	GetByID(ctx context.Context, id string) (*model.Student, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Student, error)
	BatchCreate(ctx context.Context, students []model.Student) error
}

type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo creates a StudentRepository.
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) List(ctx context.Context) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Order("roll_no ASC").
		Find(&students).Error
	return students, err
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("student_id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) ListByIDs(ctx context.Context, ids []string) ([]model.Student, error) {
	ids = validIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	var students []model.Student
	err := r.db.WithContext(ctx).
		Where("student_id IN ?", ids).
		Order("roll_no ASC").
		Find(&students).Error
	return students, err
}

func (r *studentRepo) BatchCreate(ctx context.Context, students []model.Student) error {
	if len(students) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(&students, 100).Error
}
