package service

import (
	"context"
	"testing"
	"time"

	"musicbrainz/database"
	"musicbrainz/internal/http-api/models"
	"musicbrainz/internal/http-api/repository"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type collectionServiceFixture struct {
	db  *gorm.DB
	svc CollectionService
}

func newCollectionServiceFixture(t *testing.T) *collectionServiceFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	svc := NewCollectionService(
		repository.NewCollectionRepository(db),
		repository.NewArtistRepository(db),
		repository.NewReleaseRepository(db),
	)
	return &collectionServiceFixture{db: db, svc: svc}
}

func (f *collectionServiceFixture) seedArtist(t *testing.T, name string) *models.Artist {
	t.Helper()
	artist := &models.Artist{GID: uuid.New().String(), Name: name, SortName: name}
	require.NoError(t, f.db.Create(artist).Error)
	return artist
}

func intRef(i int) *int { return &i }

func TestCollectionServiceCreateValidation(t *testing.T) {
	f := newCollectionServiceFixture(t)
	ctx := context.Background()
	owner := uuid.New().String()

	t.Run("UnknownAttributeCode", func(t *testing.T) {
		_, err := f.svc.Create(ctx, owner, false, repository.CollectionOptions{
			IgnoredAttributes: models.AttributeSet{42},
		})
		assert.ErrorIs(t, err, ErrInvalidAttribute)
	})

	t.Run("NegativeLeadDays", func(t *testing.T) {
		_, err := f.svc.Create(ctx, owner, false, repository.CollectionOptions{
			NotificationLeadDays: intRef(-1),
		})
		assert.Error(t, err)
	})

	t.Run("ValidOptions", func(t *testing.T) {
		collection, err := f.svc.Create(ctx, owner, false, repository.CollectionOptions{
			IgnoredAttributes:    models.AttributeSet{models.AttrBootleg},
			NotificationLeadDays: intRef(14),
		})
		require.NoError(t, err)
		assert.Equal(t, 14, collection.NotificationLeadDays)
	})
}

func TestCollectionServiceOwnership(t *testing.T) {
	f := newCollectionServiceFixture(t)
	ctx := context.Background()
	owner := uuid.New().String()
	stranger := uuid.New().String()

	private, err := f.svc.Create(ctx, owner, false, repository.CollectionOptions{})
	require.NoError(t, err)
	public, err := f.svc.Create(ctx, owner, true, repository.CollectionOptions{})
	require.NoError(t, err)

	t.Run("OwnerReadsPrivate", func(t *testing.T) {
		_, err := f.svc.Get(ctx, owner, private.ID)
		assert.NoError(t, err)
	})

	t.Run("StrangerBlockedFromPrivate", func(t *testing.T) {
		_, err := f.svc.Get(ctx, stranger, private.ID)
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("StrangerReadsPublic", func(t *testing.T) {
		_, err := f.svc.Get(ctx, stranger, public.ID)
		assert.NoError(t, err)
	})

	t.Run("StrangerCannotWritePublic", func(t *testing.T) {
		artist := f.seedArtist(t, "Squarepusher")
		err := f.svc.WatchArtist(ctx, stranger, public.ID, artist.ID)
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("StrangerCannotDelete", func(t *testing.T) {
		err := f.svc.Delete(ctx, stranger, private.ID)
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("MissingCollection", func(t *testing.T) {
		_, err := f.svc.Get(ctx, owner, 9999)
		assert.ErrorIs(t, err, ErrCollectionNotFound)
	})
}

func TestCollectionServiceEntityChecks(t *testing.T) {
	f := newCollectionServiceFixture(t)
	ctx := context.Background()
	owner := uuid.New().String()

	collection, err := f.svc.Create(ctx, owner, false, repository.CollectionOptions{})
	require.NoError(t, err)

	t.Run("WatchUnknownArtist", func(t *testing.T) {
		err := f.svc.WatchArtist(ctx, owner, collection.ID, 9999)
		assert.ErrorIs(t, err, ErrArtistNotFound)
	})

	t.Run("OwnUnknownRelease", func(t *testing.T) {
		err := f.svc.MarkReleaseOwned(ctx, owner, collection.ID, 9999)
		assert.ErrorIs(t, err, ErrReleaseNotFound)
	})

	t.Run("WatchKnownArtist", func(t *testing.T) {
		artist := f.seedArtist(t, "Plaid")
		require.NoError(t, f.svc.WatchArtist(ctx, owner, collection.ID, artist.ID))

		links, err := f.svc.ListWatchArtists(ctx, owner, collection.ID)
		require.NoError(t, err)
		assert.Len(t, links, 1)
	})
}

func TestCollectionServiceTimeRange(t *testing.T) {
	f := newCollectionServiceFixture(t)
	ctx := context.Background()
	owner := uuid.New().String()

	collection, err := f.svc.Create(ctx, owner, false, repository.CollectionOptions{})
	require.NoError(t, err)

	start := time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2027, 1, 5, 0, 0, 0, 0, time.UTC)

	t.Run("StartAfterEnd", func(t *testing.T) {
		_, err := f.svc.SetIgnoreTimeRange(ctx, owner, collection.ID, end, start)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("ValidRange", func(t *testing.T) {
		timeRange, err := f.svc.SetIgnoreTimeRange(ctx, owner, collection.ID, start, end)
		require.NoError(t, err)
		assert.True(t, timeRange.Covers(start.AddDate(0, 0, 3)))

		require.NoError(t, f.svc.ClearIgnoreTimeRange(ctx, owner, collection.ID))
	})
}

func TestCollectionServiceAdvanceLastChecked(t *testing.T) {
	f := newCollectionServiceFixture(t)
	ctx := context.Background()
	owner := uuid.New().String()

	collection, err := f.svc.Create(ctx, owner, false, repository.CollectionOptions{})
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, f.svc.AdvanceLastChecked(ctx, collection.ID, now))

	err = f.svc.AdvanceLastChecked(ctx, collection.ID, now.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrStaleTimestamp)

	err = f.svc.AdvanceLastChecked(ctx, 9999, now)
	assert.ErrorIs(t, err, ErrCollectionNotFound)
}
