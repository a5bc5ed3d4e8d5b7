package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"musicbrainz/internal/http-api/models"

	"gorm.io/gorm"
)

type ReleaseRepository interface {
	Create(ctx context.Context, release *models.Release) error
	GetByID(ctx context.Context, id int64) (*models.Release, error)
	GetByGID(ctx context.Context, gid string) (*models.Release, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ListByArtist(ctx context.Context, artistID int64) ([]models.Release, error)
	// UpcomingByArtists returns releases by any of the given artists whose
	// release date falls inside [from, to]. Used by the notification sweep.
	UpcomingByArtists(ctx context.Context, artistIDs []int64, from, to time.Time) ([]models.Release, error)
}

type releaseRepository struct {
	db *gorm.DB
}

func NewReleaseRepository(db *gorm.DB) ReleaseRepository {
	return &releaseRepository{db: db}
}

func (r *releaseRepository) Create(ctx context.Context, release *models.Release) error {
	if err := r.db.WithContext(ctx).Create(release).Error; err != nil {
		return fmt.Errorf("create release: %w", err)
	}
	return nil
}

func (r *releaseRepository) GetByID(ctx context.Context, id int64) (*models.Release, error) {
	var release models.Release
	if err := r.db.WithContext(ctx).
		Preload("Artist").
		First(&release, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &release, nil
}

func (r *releaseRepository) GetByGID(ctx context.Context, gid string) (*models.Release, error) {
	var release models.Release
	if err := r.db.WithContext(ctx).
		Preload("Artist").
		Preload("Tracks").
		Where("gid = ?", gid).
		First(&release).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &release, nil
}

func (r *releaseRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Release{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *releaseRepository) ListByArtist(ctx context.Context, artistID int64) ([]models.Release, error) {
	var releases []models.Release
	if err := r.db.WithContext(ctx).
		Where("artist_id = ?", artistID).
		Order("release_date").
		Find(&releases).Error; err != nil {
		return nil, fmt.Errorf("list releases by artist: %w", err)
	}
	return releases, nil
}

func (r *releaseRepository) UpcomingByArtists(ctx context.Context, artistIDs []int64, from, to time.Time) ([]models.Release, error) {
	if len(artistIDs) == 0 {
		return nil, nil
	}
	var releases []models.Release
	if err := r.db.WithContext(ctx).
		Preload("Artist").
		Where("artist_id IN ? AND release_date >= ? AND release_date <= ?", artistIDs, from, to).
		Order("release_date").
		Find(&releases).Error; err != nil {
		return nil, fmt.Errorf("upcoming releases: %w", err)
	}
	return releases, nil
}
