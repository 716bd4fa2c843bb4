package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Harshavardhanyedla/AttendX/internal/model"
	pkgerrors "github.com/Harshavardhanyedla/AttendX/pkg/errors"
)

// UserRepository staff accounts (admins and class representatives).
type UserRepository interface {
	// Create stores a new account; a taken username is
	// pkgerrors.ErrUsernameTaken.
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	// GetByUsername matches case-insensitively, ignoring surrounding spaces.
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepo creates a UserRepository.
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	user.Username = normalizeUsername(user.Username)
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return pkgerrors.ErrUsernameTaken
	}
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var user model.User
	err := r.db.WithContext(ctx).
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	name := normalizeUsername(username)
	if name == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var user model.User
	err := r.db.WithContext(ctx).
		Where("LOWER(username) = ?", name).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
