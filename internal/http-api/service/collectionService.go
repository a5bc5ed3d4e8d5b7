package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"musicbrainz/internal/http-api/models"
	"musicbrainz/internal/http-api/repository"
)

var (
	ErrCollectionNotFound = errors.New("collection not found")
	ErrArtistNotFound     = errors.New("artist not found")
	ErrReleaseNotFound    = errors.New("release not found")
	ErrInvalidAttribute   = errors.New("unknown release attribute code")
	ErrInvalidTimeRange   = errors.New("range start is after range end")
	ErrStaleTimestamp     = errors.New("timestamp earlier than current last_checked")
	ErrNotOwner           = errors.New("collection belongs to another editor")
)

type CollectionService interface {
	Create(ctx context.Context, owner string, isPublic bool, opts repository.CollectionOptions) (*models.CollectionInfo, error)
	Get(ctx context.Context, editorID string, collectionID int64) (*models.CollectionInfo, error)
	ListOwn(ctx context.Context, editorID string) ([]models.CollectionInfo, error)
	Delete(ctx context.Context, editorID string, collectionID int64) error

	WatchArtist(ctx context.Context, editorID string, collectionID, artistID int64) error
	UnwatchArtist(ctx context.Context, editorID string, collectionID, artistID int64) error
	ListWatchArtists(ctx context.Context, editorID string, collectionID int64) ([]models.WatchArtistLink, error)

	AddDiscographyArtist(ctx context.Context, editorID string, collectionID, artistID int64) error
	RemoveDiscographyArtist(ctx context.Context, editorID string, collectionID, artistID int64) error
	ListDiscographyArtists(ctx context.Context, editorID string, collectionID int64) ([]models.DiscographyArtistLink, error)

	MarkReleaseOwned(ctx context.Context, editorID string, collectionID, releaseID int64) error
	UnmarkReleaseOwned(ctx context.Context, editorID string, collectionID, releaseID int64) error
	IgnoreRelease(ctx context.Context, editorID string, collectionID, releaseID int64) error
	UnignoreRelease(ctx context.Context, editorID string, collectionID, releaseID int64) error

	SetIgnoreTimeRange(ctx context.Context, editorID string, collectionID int64, start, end time.Time) (*models.IgnoreTimeRange, error)
	ClearIgnoreTimeRange(ctx context.Context, editorID string, collectionID int64) error

	AdvanceLastChecked(ctx context.Context, collectionID int64, ts time.Time) error
}

type collectionService struct {
	repo        repository.CollectionRepository
	artistRepo  repository.ArtistRepository
	releaseRepo repository.ReleaseRepository
}

func NewCollectionService(
	repo repository.CollectionRepository,
	artistRepo repository.ArtistRepository,
	releaseRepo repository.ReleaseRepository,
) CollectionService {
	return &collectionService{
		repo:        repo,
		artistRepo:  artistRepo,
		releaseRepo: releaseRepo,
	}
}

func (s *collectionService) Create(ctx context.Context, owner string, isPublic bool, opts repository.CollectionOptions) (*models.CollectionInfo, error) {
	// ignoredAttributeSet values come from a closed enumeration; unknown
	// codes are rejected before anything is written.
	for _, code := range opts.IgnoredAttributes {
		if !models.ValidAttribute(code) {
			return nil, fmt.Errorf("%w: %d", ErrInvalidAttribute, code)
		}
	}
	if opts.NotificationLeadDays != nil && *opts.NotificationLeadDays < 0 {
		return nil, fmt.Errorf("%w: negative lead days", ErrInvalidAttribute)
	}
	return s.repo.Create(ctx, owner, isPublic, opts)
}

// owned loads a collection and verifies the caller owns it. All writes go
// through this; reads additionally accept public collections.
func (s *collectionService) owned(ctx context.Context, editorID string, collectionID int64) (*models.CollectionInfo, error) {
	collection, err := s.repo.GetByID(ctx, collectionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}
	if collection.Owner != editorID {
		return nil, ErrNotOwner
	}
	return collection, nil
}

func (s *collectionService) Get(ctx context.Context, editorID string, collectionID int64) (*models.CollectionInfo, error) {
	collection, err := s.repo.GetByID(ctx, collectionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}
	if collection.Owner != editorID && !collection.IsPublic {
		return nil, ErrNotOwner
	}
	return collection, nil
}

func (s *collectionService) ListOwn(ctx context.Context, editorID string) ([]models.CollectionInfo, error) {
	return s.repo.GetByOwner(ctx, editorID)
}

func (s *collectionService) Delete(ctx context.Context, editorID string, collectionID int64) error {
	if _, err := s.owned(ctx, editorID, collectionID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, collectionID)
}

func (s *collectionService) requireArtist(ctx context.Context, artistID int64) error {
	exists, err := s.artistRepo.Exists(ctx, artistID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrArtistNotFound
	}
	return nil
}

func (s *collectionService) requireRelease(ctx context.Context, releaseID int64) error {
	exists, err := s.releaseRepo.Exists(ctx, releaseID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrReleaseNotFound
	}
	return nil
}

func (s *collectionService) WatchArtist(ctx context.Context, editorID string, collectionID, artistID int64) error {
	if _, err := s.owned(ctx, editorID, collectionID); err != nil {
		return err
	}
	if err := s.requireArtist(ctx, artistID); err != nil {
		return err
	}
	return s.repo.AddWatchArtist(ctx, collectionID, artistID)
}

func (s *collectionService) UnwatchArtist(ctx context.Context, editorID string, collectionID, artistID int64) error {
	if _, err := s.owned(ctx, editorID, collectionID); err != nil {
		return err
	}
	return s.repo.RemoveWatchArtist(ctx, collectionID, artistID)
}

func (s *collectionService) ListWatchArtists(ctx context.Context, editorID string, collectionID int64) ([]models.WatchArtistLink, error) {
	if _, err := s.Get(ctx, editorID, collectionID); err != nil {
		return nil, err
	}
	return s.repo.ListWatchArtists(ctx, collectionID)
}

func (s *collectionService) AddDiscographyArtist(ctx context.Context, editorID string, collectionID, artistID int64) error {
	if _, err := s.owned(ctx, editorID, collectionID); err != nil {
		return err
	}
	if err := s.requireArtist(ctx, artistID); err != nil {
		return err
	}
	return s.repo.AddDiscographyArtist(ctx, collectionID, artistID)
}

func (s *collectionService) RemoveDiscographyArtist(ctx context.Context, editorID string, collectionID, artistID int64) error {
	if _, err := s.owned(ctx, editorID, collectionID); err != nil {
		return err
	}
	return s.repo.RemoveDiscographyArtist(ctx, collectionID, artistID)
}

func (s *collectionService) ListDiscographyArtists(ctx context.Context, editorID string, collectionID int64) ([]models.DiscographyArtistLink, error) {
	if _, err := s.Get(ctx, editorID, collectionID); err != nil {
		return nil, err
	}
	return s.repo.ListDiscographyArtists(ctx, collectionID)
}

func (s *collectionService) MarkReleaseOwned(ctx context.Context, editorID string, collectionID, releaseID int64) error {
	if _, err := s.owned(ctx, editorID, collectionID); err != nil {
		return err
	}
	if err := s.requireRelease(ctx, releaseID); err != nil {
		return err
	}
	return s.repo.MarkReleaseOwned(ctx, collectionID, releaseID)
}

func (s *collectionService) UnmarkReleaseOwned(ctx context.Context, editorID string, collectionID, releaseID int64) error {
	if _, err := s.owned(ctx, editorID, collectionID); err != nil {
		return err
	}
	return s.repo.UnmarkReleaseOwned(ctx, collectionID, releaseID)
}

func (s *collectionService) IgnoreRelease(ctx context.Context, editorID string, collectionID, releaseID int64) error {
	if _, err := s.owned(ctx, editorID, collectionID); err != nil {
		return err
	}
	if err := s.requireRelease(ctx, releaseID); err != nil {
		return err
	}
	return s.repo.IgnoreRelease(ctx, collectionID, releaseID)
}

func (s *collectionService) UnignoreRelease(ctx context.Context, editorID string, collectionID, releaseID int64) error {
	if _, err := s.owned(ctx, editorID, collectionID); err != nil {
		return err
	}
	return s.repo.UnignoreRelease(ctx, collectionID, releaseID)
}

func (s *collectionService) SetIgnoreTimeRange(ctx context.Context, editorID string, collectionID int64, start, end time.Time) (*models.IgnoreTimeRange, error) {
	if start.After(end) {
		return nil, ErrInvalidTimeRange
	}
	if _, err := s.owned(ctx, editorID, collectionID); err != nil {
		return nil, err
	}
	return s.repo.SetIgnoreTimeRange(ctx, collectionID, start, end)
}

func (s *collectionService) ClearIgnoreTimeRange(ctx context.Context, editorID string, collectionID int64) error {
	if _, err := s.owned(ctx, editorID, collectionID); err != nil {
		return err
	}
	return s.repo.ClearIgnoreTimeRange(ctx, collectionID)
}

func (s *collectionService) AdvanceLastChecked(ctx context.Context, collectionID int64, ts time.Time) error {
	err := s.repo.AdvanceLastChecked(ctx, collectionID, ts)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrCollectionNotFound
	case errors.Is(err, repository.ErrStaleLastChecked):
		return ErrStaleTimestamp
	default:
		return err
	}
}
