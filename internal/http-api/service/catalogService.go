package service

import (
	"context"
	"errors"
	"fmt"

	"musicbrainz/internal/cache"
	"musicbrainz/internal/http-api/models"
	"musicbrainz/internal/http-api/repository"

	"github.com/google/uuid"
)

var ErrLabelNotFound = errors.New("label not found")

// CatalogService is the read/write surface for artist, release and label
// entities. Lookups by gid are cache-aside through Redis since they are the
// hot path of the public web service.
type CatalogService interface {
	CreateArtist(ctx context.Context, artist *models.Artist) error
	ArtistByGID(ctx context.Context, gid string) (*models.Artist, error)
	SearchArtists(ctx context.Context, name string, limit int) ([]models.Artist, error)

	CreateRelease(ctx context.Context, release *models.Release) error
	ReleaseByGID(ctx context.Context, gid string) (*models.Release, error)
	ReleasesByArtist(ctx context.Context, artistID int64) ([]models.Release, error)

	CreateLabel(ctx context.Context, label *models.Label) error
	LabelByGID(ctx context.Context, gid string) (*models.Label, error)
	SearchLabels(ctx context.Context, name string, limit int) ([]models.Label, error)
}

type catalogService struct {
	artistRepo  repository.ArtistRepository
	releaseRepo repository.ReleaseRepository
	labelRepo   repository.LabelRepository
	cache       *cache.Cache
}

func NewCatalogService(
	artistRepo repository.ArtistRepository,
	releaseRepo repository.ReleaseRepository,
	labelRepo repository.LabelRepository,
	c *cache.Cache,
) CatalogService {
	return &catalogService{
		artistRepo:  artistRepo,
		releaseRepo: releaseRepo,
		labelRepo:   labelRepo,
		cache:       c,
	}
}

func (s *catalogService) CreateArtist(ctx context.Context, artist *models.Artist) error {
	if artist.GID == "" {
		artist.GID = uuid.New().String()
	}
	if artist.SortName == "" {
		artist.SortName = artist.Name
	}
	return s.artistRepo.Create(ctx, artist)
}

func (s *catalogService) ArtistByGID(ctx context.Context, gid string) (*models.Artist, error) {
	key := "artist:gid:" + gid
	var cached models.Artist
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	artist, err := s.artistRepo.GetByGID(ctx, gid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	_ = s.cache.SetJSON(ctx, key, artist)
	return artist, nil
}

func (s *catalogService) SearchArtists(ctx context.Context, name string, limit int) ([]models.Artist, error) {
	return s.artistRepo.SearchByName(ctx, name, limit)
}

func (s *catalogService) CreateRelease(ctx context.Context, release *models.Release) error {
	exists, err := s.artistRepo.Exists(ctx, release.ArtistID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrArtistNotFound
	}
	for _, code := range release.Attributes {
		if !models.ValidAttribute(code) {
			return fmt.Errorf("%w: %d", ErrInvalidAttribute, code)
		}
	}
	if release.GID == "" {
		release.GID = uuid.New().String()
	}
	return s.releaseRepo.Create(ctx, release)
}

func (s *catalogService) ReleaseByGID(ctx context.Context, gid string) (*models.Release, error) {
	key := "release:gid:" + gid
	var cached models.Release
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	release, err := s.releaseRepo.GetByGID(ctx, gid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReleaseNotFound
		}
		return nil, err
	}
	_ = s.cache.SetJSON(ctx, key, release)
	return release, nil
}

func (s *catalogService) ReleasesByArtist(ctx context.Context, artistID int64) ([]models.Release, error) {
	exists, err := s.artistRepo.Exists(ctx, artistID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrArtistNotFound
	}
	return s.releaseRepo.ListByArtist(ctx, artistID)
}

func (s *catalogService) CreateLabel(ctx context.Context, label *models.Label) error {
	if label.GID == "" {
		label.GID = uuid.New().String()
	}
	if label.SortName == "" {
		label.SortName = label.Name
	}
	return s.labelRepo.Create(ctx, label)
}

func (s *catalogService) LabelByGID(ctx context.Context, gid string) (*models.Label, error) {
	key := "label:gid:" + gid
	var cached models.Label
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	label, err := s.labelRepo.GetByGID(ctx, gid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLabelNotFound
		}
		return nil, err
	}
	_ = s.cache.SetJSON(ctx, key, label)
	return label, nil
}

func (s *catalogService) SearchLabels(ctx context.Context, name string, limit int) ([]models.Label, error) {
	return s.labelRepo.SearchByName(ctx, name, limit)
}
