package repository

import (
	"context"
	"errors"
	"fmt"

	"musicbrainz/internal/http-api/models"

	"gorm.io/gorm"
)

type LabelRepository interface {
	Create(ctx context.Context, label *models.Label) error
	GetByID(ctx context.Context, id int64) (*models.Label, error)
	GetByGID(ctx context.Context, gid string) (*models.Label, error)
	Exists(ctx context.Context, id int64) (bool, error)
	SearchByName(ctx context.Context, name string, limit int) ([]models.Label, error)
}

type labelRepository struct {
	db *gorm.DB
}

func NewLabelRepository(db *gorm.DB) LabelRepository {
	return &labelRepository{db: db}
}

func (r *labelRepository) Create(ctx context.Context, label *models.Label) error {
	if err := r.db.WithContext(ctx).Create(label).Error; err != nil {
		return fmt.Errorf("create label: %w", err)
	}
	return nil
}

func (r *labelRepository) GetByID(ctx context.Context, id int64) (*models.Label, error) {
	var label models.Label
	if err := r.db.WithContext(ctx).First(&label, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &label, nil
}

func (r *labelRepository) GetByGID(ctx context.Context, gid string) (*models.Label, error) {
	var label models.Label
	if err := r.db.WithContext(ctx).Where("gid = ?", gid).First(&label).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &label, nil
}

func (r *labelRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Label{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *labelRepository) SearchByName(ctx context.Context, name string, limit int) ([]models.Label, error) {
	var labels []models.Label
	if err := r.db.WithContext(ctx).
		Where("name LIKE ?", "%"+name+"%").
		Order("sort_name").
		Limit(limit).
		Find(&labels).Error; err != nil {
		return nil, fmt.Errorf("search labels: %w", err)
	}
	return labels, nil
}
