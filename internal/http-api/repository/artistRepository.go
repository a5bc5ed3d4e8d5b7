package repository

import (
	"context"
	"errors"
	"fmt"

	"musicbrainz/internal/http-api/models"

	"gorm.io/gorm"
)

type ArtistRepository interface {
	Create(ctx context.Context, artist *models.Artist) error
	GetByID(ctx context.Context, id int64) (*models.Artist, error)
	GetByGID(ctx context.Context, gid string) (*models.Artist, error)
	Exists(ctx context.Context, id int64) (bool, error)
	SearchByName(ctx context.Context, name string, limit int) ([]models.Artist, error)
}

type artistRepository struct {
	db *gorm.DB
}

func NewArtistRepository(db *gorm.DB) ArtistRepository {
	return &artistRepository{db: db}
}

func (r *artistRepository) Create(ctx context.Context, artist *models.Artist) error {
	if err := r.db.WithContext(ctx).Create(artist).Error; err != nil {
		return fmt.Errorf("create artist: %w", err)
	}
	return nil
}

func (r *artistRepository) GetByID(ctx context.Context, id int64) (*models.Artist, error) {
	var artist models.Artist
	if err := r.db.WithContext(ctx).First(&artist, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &artist, nil
}

func (r *artistRepository) GetByGID(ctx context.Context, gid string) (*models.Artist, error) {
	var artist models.Artist
	if err := r.db.WithContext(ctx).Where("gid = ?", gid).First(&artist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &artist, nil
}

func (r *artistRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Artist{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *artistRepository) SearchByName(ctx context.Context, name string, limit int) ([]models.Artist, error) {
	var artists []models.Artist
	if err := r.db.WithContext(ctx).
		Where("name LIKE ?", "%"+name+"%").
		Order("sort_name").
		Limit(limit).
		Find(&artists).Error; err != nil {
		return nil, fmt.Errorf("search artists: %w", err)
	}
	return artists, nil
}
