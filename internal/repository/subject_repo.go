package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Harshavardhanyedla/AttendX/internal/model"
)

// SubjectRepository subject reference data
type SubjectRepository interface {
	List(ctx context.Context) ([]model.Subject, error)
	GetByID(ctx context.Context, id string) (*model.Subject, error)
	BatchCreate(ctx context.Context, subjects []model.Subject) error
}

type subjectRepo struct {
	db *gorm.DB
}

// NewSubjectRepo creates a SubjectRepository.
func NewSubjectRepo(db *gorm.DB) SubjectRepository {
	return &subjectRepo{db: db}
}

func (r *subjectRepo) List(ctx context.Context) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.db.WithContext(ctx).
		Order("code ASC").
		Find(&subjects).Error
	return subjects, err
}

func (r *subjectRepo) GetByID(ctx context.Context, id string) (*model.Subject, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var subject model.Subject
	err := r.db.WithContext(ctx).
		Where("subject_id = ?", id).
		First(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepo) BatchCreate(ctx context.Context, subjects []model.Subject) error {
	if len(subjects) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&subjects).Error
}
