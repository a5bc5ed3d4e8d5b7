package repository

import (
	"context"
	"testing"
	"time"

	"musicbrainz/internal/http-api/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

func TestCollectionCreateDefaults(t *testing.T) {
	db := newTestDB(t)
	repo := NewCollectionRepository(db)
	ctx := context.Background()
	owner := uuid.New().String()

	collection, err := repo.Create(ctx, owner, false, CollectionOptions{})
	require.NoError(t, err)

	assert.Equal(t, owner, collection.Owner)
	assert.True(t, collection.EmailNotifications)
	assert.Equal(t, 7, collection.NotificationLeadDays)
	assert.Equal(t, models.DefaultIgnoredAttributes(), collection.IgnoredAttributeSet)
	assert.False(t, collection.IsPublic)

	// last_checked is backdated so the collection is due immediately.
	assert.True(t, collection.DueAt(time.Now()))

	reloaded, err := repo.GetByID(ctx, collection.ID)
	require.NoError(t, err)
	assert.Equal(t, collection.IgnoredAttributeSet, reloaded.IgnoredAttributeSet)
}

func TestCollectionCreateExplicitOptions(t *testing.T) {
	db := newTestDB(t)
	repo := NewCollectionRepository(db)
	ctx := context.Background()

	collection, err := repo.Create(ctx, uuid.New().String(), true, CollectionOptions{
		EmailNotifications:   boolPtr(false),
		NotificationLeadDays: intPtr(30),
		IgnoredAttributes:    models.AttributeSet{2, 3},
	})
	require.NoError(t, err)

	// Explicit false must survive the round trip.
	reloaded, err := repo.GetByID(ctx, collection.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.EmailNotifications)
	assert.Equal(t, 30, reloaded.NotificationLeadDays)
	assert.Equal(t, models.AttributeSet{2, 3}, reloaded.IgnoredAttributeSet)
	assert.True(t, reloaded.IsPublic)
}

func TestCollectionGetByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewCollectionRepository(db)

	_, err := repo.GetByID(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWatchArtistIdempotentAdd(t *testing.T) {
	db := newTestDB(t)
	repo := NewCollectionRepository(db)
	ctx := context.Background()

	collection, err := repo.Create(ctx, uuid.New().String(), false, CollectionOptions{})
	require.NoError(t, err)
	artist := seedArtist(t, db, "Boards of Canada")

	require.NoError(t, repo.AddWatchArtist(ctx, collection.ID, artist.ID))
	require.NoError(t, repo.AddWatchArtist(ctx, collection.ID, artist.ID))

	links, err := repo.ListWatchArtists(ctx, collection.ID)
	require.NoError(t, err)
	assert.Len(t, links, 1)
	assert.Equal(t, artist.ID, links[0].ArtistID)
}

func TestWatchArtistIdempotentRemove(t *testing.T) {
	db := newTestDB(t)
	repo := NewCollectionRepository(db)
	ctx := context.Background()

	collection, err := repo.Create(ctx, uuid.New().String(), false, CollectionOptions{})
	require.NoError(t, err)
	artist := seedArtist(t, db, "Autechre")

	require.NoError(t, repo.AddWatchArtist(ctx, collection.ID, artist.ID))
	require.NoError(t, repo.RemoveWatchArtist(ctx, collection.ID, artist.ID))
	// Removing a pair that is already gone is still a success.
	require.NoError(t, repo.RemoveWatchArtist(ctx, collection.ID, artist.ID))

	links, err := repo.ListWatchArtists(ctx, collection.ID)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestOwnedAndIgnoredReleaseLinks(t *testing.T) {
	db := newTestDB(t)
	repo := NewCollectionRepository(db)
	ctx := context.Background()

	collection, err := repo.Create(ctx, uuid.New().String(), false, CollectionOptions{})
	require.NoError(t, err)
	artist := seedArtist(t, db, "Aphex Twin")
	release := seedRelease(t, db, artist.ID, "Syro", time.Now(), models.AttrAlbum)

	owns, err := repo.OwnsRelease(ctx, collection.ID, release.ID)
	require.NoError(t, err)
	assert.False(t, owns)

	require.NoError(t, repo.MarkReleaseOwned(ctx, collection.ID, release.ID))
	require.NoError(t, repo.MarkReleaseOwned(ctx, collection.ID, release.ID))

	owns, err = repo.OwnsRelease(ctx, collection.ID, release.ID)
	require.NoError(t, err)
	assert.True(t, owns)

	require.NoError(t, repo.IgnoreRelease(ctx, collection.ID, release.ID))
	ignores, err := repo.IgnoresRelease(ctx, collection.ID, release.ID)
	require.NoError(t, err)
	assert.True(t, ignores)

	require.NoError(t, repo.UnignoreRelease(ctx, collection.ID, release.ID))
	ignores, err = repo.IgnoresRelease(ctx, collection.ID, release.ID)
	require.NoError(t, err)
	assert.False(t, ignores)
}

func TestSetIgnoreTimeRangeReusesRows(t *testing.T) {
	db := newTestDB(t)
	repo := NewCollectionRepository(db)
	ctx := context.Background()

	first, err := repo.Create(ctx, uuid.New().String(), false, CollectionOptions{})
	require.NoError(t, err)
	second, err := repo.Create(ctx, uuid.New().String(), false, CollectionOptions{})
	require.NoError(t, err)

	start := time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2027, 1, 5, 0, 0, 0, 0, time.UTC)

	rangeA, err := repo.SetIgnoreTimeRange(ctx, first.ID, start, end)
	require.NoError(t, err)
	rangeB, err := repo.SetIgnoreTimeRange(ctx, second.ID, start, end)
	require.NoError(t, err)

	// Identical windows share one row.
	assert.Equal(t, rangeA.ID, rangeB.ID)

	reloaded, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.TimeRange)
	assert.True(t, reloaded.TimeRange.Covers(time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)))

	require.NoError(t, repo.ClearIgnoreTimeRange(ctx, first.ID))
	reloaded, err = repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.IgnoreTimeRangeID)
}

func TestAdvanceLastCheckedMonotonic(t *testing.T) {
	db := newTestDB(t)
	repo := NewCollectionRepository(db)
	ctx := context.Background()

	collection, err := repo.Create(ctx, uuid.New().String(), false, CollectionOptions{})
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, repo.AdvanceLastChecked(ctx, collection.ID, now))

	// Moving backwards loses the compare-and-set.
	err = repo.AdvanceLastChecked(ctx, collection.ID, now.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrStaleLastChecked)

	// Moving forward still works.
	require.NoError(t, repo.AdvanceLastChecked(ctx, collection.ID, now.Add(time.Hour)))

	err = repo.AdvanceLastChecked(ctx, 9999, now)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListDue(t *testing.T) {
	db := newTestDB(t)
	repo := NewCollectionRepository(db)
	ctx := context.Background()
	now := time.Now()

	due, err := repo.Create(ctx, uuid.New().String(), false, CollectionOptions{})
	require.NoError(t, err)

	// Freshly swept: not due again until the lead window passes.
	fresh, err := repo.Create(ctx, uuid.New().String(), false, CollectionOptions{})
	require.NoError(t, err)
	require.NoError(t, repo.AdvanceLastChecked(ctx, fresh.ID, now))

	// Long lead window: passes the coarse SQL filter but fails the
	// precise per-row check.
	longLead, err := repo.Create(ctx, uuid.New().String(), false, CollectionOptions{
		NotificationLeadDays: intPtr(30),
	})
	require.NoError(t, err)

	var seen []int64
	it := repo.ListDue(ctx, now)
	for it.Next() {
		seen = append(seen, it.Collection().ID)
	}
	require.NoError(t, it.Err())

	assert.Contains(t, seen, due.ID)
	assert.NotContains(t, seen, fresh.ID)
	assert.NotContains(t, seen, longLead.ID)
}

func TestCollectionDeleteRemovesLinks(t *testing.T) {
	db := newTestDB(t)
	repo := NewCollectionRepository(db)
	ctx := context.Background()

	collection, err := repo.Create(ctx, uuid.New().String(), false, CollectionOptions{})
	require.NoError(t, err)
	artist := seedArtist(t, db, "Burial")
	release := seedRelease(t, db, artist.ID, "Untrue", time.Now(), models.AttrAlbum)

	require.NoError(t, repo.AddWatchArtist(ctx, collection.ID, artist.ID))
	require.NoError(t, repo.AddDiscographyArtist(ctx, collection.ID, artist.ID))
	require.NoError(t, repo.MarkReleaseOwned(ctx, collection.ID, release.ID))

	require.NoError(t, repo.Delete(ctx, collection.ID))

	_, err = repo.GetByID(ctx, collection.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var watchCount, hasCount int64
	require.NoError(t, db.Model(&models.WatchArtistLink{}).Where("collection_id = ?", collection.ID).Count(&watchCount).Error)
	require.NoError(t, db.Model(&models.HasReleaseLink{}).Where("collection_id = ?", collection.ID).Count(&hasCount).Error)
	assert.Zero(t, watchCount)
	assert.Zero(t, hasCount)

	assert.ErrorIs(t, repo.Delete(ctx, collection.ID), ErrNotFound)
}
