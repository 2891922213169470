package gormstore

import (
	"context"
	"errors"

	"github.com/taskforge/scheduler/internal/errs"
	"github.com/taskforge/scheduler/internal/id"
	"github.com/taskforge/scheduler/internal/models"
	"gorm.io/gorm"
)

// UserStore is a gorm implementation of store.UserStore, grounded on
// the teacher's UserRepository.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore builds a UserStore over db.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsNil() {
		user.ID = id.New()
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return errs.Wrap("gormstore.User.Create", err)
	}
	return nil
}

func (s *UserStore) FindByID(ctx context.Context, userID id.ID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("gormstore.User.FindByID", "user not found")
	}
	if err != nil {
		return nil, errs.Wrap("gormstore.User.FindByID", err)
	}
	return &user, nil
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("gormstore.User.FindByUsername", "user not found")
	}
	if err != nil {
		return nil, errs.Wrap("gormstore.User.FindByUsername", err)
	}
	return &user, nil
}

func (s *UserStore) Update(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return errs.Wrap("gormstore.User.Update", err)
	}
	return nil
}
