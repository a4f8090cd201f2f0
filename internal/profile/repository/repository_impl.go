package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/flowbooks/flowbooks/internal/profile/domain"
)

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) GetActive(ctx context.Context) (*domain.BusinessProfile, error) {
	var profile domain.BusinessProfile
	err := r.db.WithContext(ctx).
		Order("created_at asc, id asc").
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *repo) Upsert(ctx context.Context, profile *domain.BusinessProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
