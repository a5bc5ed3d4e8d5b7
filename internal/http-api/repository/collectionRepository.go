package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"musicbrainz/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrNotFound covers any lookup of a row that does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrStaleLastChecked is returned when an advance would move
	// last_checked backwards.
	ErrStaleLastChecked = errors.New("timestamp earlier than current last_checked")
)

// CollectionOptions carries the optional knobs for a new collection. Zero
// values fall back to the documented defaults.
type CollectionOptions struct {
	EmailNotifications   *bool
	NotificationLeadDays *int
	IgnoredAttributes    models.AttributeSet
}

type CollectionRepository interface {
	Create(ctx context.Context, owner string, isPublic bool, opts CollectionOptions) (*models.CollectionInfo, error)
	GetByID(ctx context.Context, id int64) (*models.CollectionInfo, error)
	GetByOwner(ctx context.Context, owner string) ([]models.CollectionInfo, error)
	Delete(ctx context.Context, id int64) error

	AddWatchArtist(ctx context.Context, collectionID, artistID int64) error
	RemoveWatchArtist(ctx context.Context, collectionID, artistID int64) error
	ListWatchArtists(ctx context.Context, collectionID int64) ([]models.WatchArtistLink, error)

	AddDiscographyArtist(ctx context.Context, collectionID, artistID int64) error
	RemoveDiscographyArtist(ctx context.Context, collectionID, artistID int64) error
	ListDiscographyArtists(ctx context.Context, collectionID int64) ([]models.DiscographyArtistLink, error)

	MarkReleaseOwned(ctx context.Context, collectionID, releaseID int64) error
	UnmarkReleaseOwned(ctx context.Context, collectionID, releaseID int64) error
	OwnsRelease(ctx context.Context, collectionID, releaseID int64) (bool, error)

	IgnoreRelease(ctx context.Context, collectionID, releaseID int64) error
	UnignoreRelease(ctx context.Context, collectionID, releaseID int64) error
	IgnoresRelease(ctx context.Context, collectionID, releaseID int64) (bool, error)

	SetIgnoreTimeRange(ctx context.Context, collectionID int64, start, end time.Time) (*models.IgnoreTimeRange, error)
	ClearIgnoreTimeRange(ctx context.Context, collectionID int64) error

	AdvanceLastChecked(ctx context.Context, collectionID int64, ts time.Time) error
	ListDue(ctx context.Context, now time.Time) *DueCollections
}

type collectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

// newCollectionLastCheckedAge backdates last_checked on creation so a fresh
// collection is eligible for the very next sweep.
const newCollectionLastCheckedAge = 7 * 24 * time.Hour

const defaultNotificationLeadDays = 7

func (r *collectionRepository) Create(ctx context.Context, owner string, isPublic bool, opts CollectionOptions) (*models.CollectionInfo, error) {
	collection := &models.CollectionInfo{
		Owner:                owner,
		LastChecked:          time.Now().Add(-newCollectionLastCheckedAge),
		IsPublic:             isPublic,
		EmailNotifications:   true,
		NotificationLeadDays: defaultNotificationLeadDays,
		IgnoredAttributeSet:  models.DefaultIgnoredAttributes(),
	}
	if opts.EmailNotifications != nil {
		collection.EmailNotifications = *opts.EmailNotifications
	}
	if opts.NotificationLeadDays != nil {
		collection.NotificationLeadDays = *opts.NotificationLeadDays
	}
	if opts.IgnoredAttributes != nil {
		collection.IgnoredAttributeSet = opts.IgnoredAttributes
	}

	if err := r.db.WithContext(ctx).Create(collection).Error; err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	return collection, nil
}

func (r *collectionRepository) GetByID(ctx context.Context, id int64) (*models.CollectionInfo, error) {
	var collection models.CollectionInfo
	if err := r.db.WithContext(ctx).
		Preload("TimeRange").
		First(&collection, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &collection, nil
}

func (r *collectionRepository) GetByOwner(ctx context.Context, owner string) ([]models.CollectionInfo, error) {
	var collections []models.CollectionInfo
	if err := r.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("id").
		Find(&collections).Error; err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return collections, nil
}

// Delete removes a collection and all its join rows in one transaction.
// The FK constraints cascade too, but the explicit deletes keep the
// behavior identical on backends where AutoMigrate skipped the constraints.
func (r *collectionRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, link := range []any{
			&models.WatchArtistLink{},
			&models.DiscographyArtistLink{},
			&models.IgnoreReleaseLink{},
			&models.HasReleaseLink{},
		} {
			if err := tx.Where("collection_id = ?", id).Delete(link).Error; err != nil {
				return fmt.Errorf("delete collection links: %w", err)
			}
		}

		result := tx.Delete(&models.CollectionInfo{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("delete collection: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// Pair adds are conflict-ignoring upserts: inserting the same pair twice
// leaves exactly one row.

func (r *collectionRepository) AddWatchArtist(ctx context.Context, collectionID, artistID int64) error {
	link := &models.WatchArtistLink{CollectionID: collectionID, ArtistID: artistID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(link).Error; err != nil {
		return fmt.Errorf("add watch artist: %w", err)
	}
	return nil
}

func (r *collectionRepository) RemoveWatchArtist(ctx context.Context, collectionID, artistID int64) error {
	if err := r.db.WithContext(ctx).
		Where("collection_id = ? AND artist_id = ?", collectionID, artistID).
		Delete(&models.WatchArtistLink{}).Error; err != nil {
		return fmt.Errorf("remove watch artist: %w", err)
	}
	return nil
}

func (r *collectionRepository) ListWatchArtists(ctx context.Context, collectionID int64) ([]models.WatchArtistLink, error) {
	var links []models.WatchArtistLink
	if err := r.db.WithContext(ctx).
		Preload("Artist").
		Where("collection_id = ?", collectionID).
		Order("id").
		Find(&links).Error; err != nil {
		return nil, fmt.Errorf("list watch artists: %w", err)
	}
	return links, nil
}

func (r *collectionRepository) AddDiscographyArtist(ctx context.Context, collectionID, artistID int64) error {
	link := &models.DiscographyArtistLink{CollectionID: collectionID, ArtistID: artistID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(link).Error; err != nil {
		return fmt.Errorf("add discography artist: %w", err)
	}
	return nil
}

func (r *collectionRepository) RemoveDiscographyArtist(ctx context.Context, collectionID, artistID int64) error {
	if err := r.db.WithContext(ctx).
		Where("collection_id = ? AND artist_id = ?", collectionID, artistID).
		Delete(&models.DiscographyArtistLink{}).Error; err != nil {
		return fmt.Errorf("remove discography artist: %w", err)
	}
	return nil
}

func (r *collectionRepository) ListDiscographyArtists(ctx context.Context, collectionID int64) ([]models.DiscographyArtistLink, error) {
	var links []models.DiscographyArtistLink
	if err := r.db.WithContext(ctx).
		Preload("Artist").
		Where("collection_id = ?", collectionID).
		Order("id").
		Find(&links).Error; err != nil {
		return nil, fmt.Errorf("list discography artists: %w", err)
	}
	return links, nil
}

func (r *collectionRepository) MarkReleaseOwned(ctx context.Context, collectionID, releaseID int64) error {
	link := &models.HasReleaseLink{CollectionID: collectionID, ReleaseID: releaseID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(link).Error; err != nil {
		return fmt.Errorf("mark release owned: %w", err)
	}
	return nil
}

func (r *collectionRepository) UnmarkReleaseOwned(ctx context.Context, collectionID, releaseID int64) error {
	if err := r.db.WithContext(ctx).
		Where("collection_id = ? AND release_id = ?", collectionID, releaseID).
		Delete(&models.HasReleaseLink{}).Error; err != nil {
		return fmt.Errorf("unmark release owned: %w", err)
	}
	return nil
}

func (r *collectionRepository) OwnsRelease(ctx context.Context, collectionID, releaseID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.HasReleaseLink{}).
		Where("collection_id = ? AND release_id = ?", collectionID, releaseID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *collectionRepository) IgnoreRelease(ctx context.Context, collectionID, releaseID int64) error {
	link := &models.IgnoreReleaseLink{CollectionID: collectionID, ReleaseID: releaseID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(link).Error; err != nil {
		return fmt.Errorf("ignore release: %w", err)
	}
	return nil
}

func (r *collectionRepository) UnignoreRelease(ctx context.Context, collectionID, releaseID int64) error {
	if err := r.db.WithContext(ctx).
		Where("collection_id = ? AND release_id = ?", collectionID, releaseID).
		Delete(&models.IgnoreReleaseLink{}).Error; err != nil {
		return fmt.Errorf("unignore release: %w", err)
	}
	return nil
}

func (r *collectionRepository) IgnoresRelease(ctx context.Context, collectionID, releaseID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.IgnoreReleaseLink{}).
		Where("collection_id = ? AND release_id = ?", collectionID, releaseID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SetIgnoreTimeRange links the collection to a range row covering
// [start, end], reusing an existing identical row when one exists.
func (r *collectionRepository) SetIgnoreTimeRange(ctx context.Context, collectionID int64, start, end time.Time) (*models.IgnoreTimeRange, error) {
	var timeRange models.IgnoreTimeRange
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where(&models.IgnoreTimeRange{RangeStart: start, RangeEnd: end}).
			FirstOrCreate(&timeRange).Error; err != nil {
			return fmt.Errorf("find or create time range: %w", err)
		}

		result := tx.Model(&models.CollectionInfo{}).
			Where("id = ?", collectionID).
			Update("ignore_time_range", timeRange.ID)
		if result.Error != nil {
			return fmt.Errorf("link time range: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &timeRange, nil
}

func (r *collectionRepository) ClearIgnoreTimeRange(ctx context.Context, collectionID int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.CollectionInfo{}).
		Where("id = ?", collectionID).
		Update("ignore_time_range", nil)
	if result.Error != nil {
		return fmt.Errorf("clear time range: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AdvanceLastChecked moves last_checked forward with a compare-and-set so
// overlapping sweeps can never move it backwards.
func (r *collectionRepository) AdvanceLastChecked(ctx context.Context, collectionID int64, ts time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.CollectionInfo{}).
		Where("id = ? AND last_checked <= ?", collectionID, ts).
		Update("last_checked", ts)
	if result.Error != nil {
		return fmt.Errorf("advance last_checked: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Either the collection is gone or the update lost the race.
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.CollectionInfo{}).
			Where("id = ?", collectionID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrStaleLastChecked
	}
	return nil
}

// dueBatchSize is how many candidate rows ListDue pulls per round trip.
const dueBatchSize = 100

// ListDue returns a lazy, single-consumption iterator over collections with
// last_checked + notification_lead_days <= now. The iterator pages through
// the table by id, so it reflects a point-in-time snapshot per batch and is
// not restartable.
func (r *collectionRepository) ListDue(ctx context.Context, now time.Time) *DueCollections {
	return &DueCollections{
		ctx: ctx,
		db:  r.db,
		now: now,
	}
}

// DueCollections walks due collections one at a time. Usage:
//
//	it := repo.ListDue(ctx, now)
//	for it.Next() {
//	    c := it.Collection()
//	    ...
//	}
//	if err := it.Err(); err != nil { ... }
type DueCollections struct {
	ctx    context.Context
	db     *gorm.DB
	now    time.Time
	batch  []models.CollectionInfo
	idx    int
	cursor int64
	err    error
	done   bool
}

// Next advances to the next due collection, fetching a new batch from the
// database when the current one is exhausted.
func (it *DueCollections) Next() bool {
	for {
		if it.done || it.err != nil {
			return false
		}
		for it.idx < len(it.batch) {
			c := &it.batch[it.idx]
			it.idx++
			// The SQL filter is coarse (lead days vary per row); the
			// precise lead-window check happens here.
			if c.DueAt(it.now) {
				return true
			}
		}

		var batch []models.CollectionInfo
		if err := it.db.WithContext(it.ctx).
			Preload("TimeRange").
			Where("id > ? AND last_checked <= ?", it.cursor, it.now).
			Order("id").
			Limit(dueBatchSize).
			Find(&batch).Error; err != nil {
			it.err = fmt.Errorf("list due collections: %w", err)
			return false
		}
		if len(batch) == 0 {
			it.done = true
			return false
		}
		it.cursor = batch[len(batch)-1].ID
		it.batch = batch
		it.idx = 0
	}
}

// Collection returns the collection positioned by the last Next call. The
// pointer is only valid until the next Next call.
func (it *DueCollections) Collection() *models.CollectionInfo {
	return &it.batch[it.idx-1]
}

// Err reports the first database error hit during iteration.
func (it *DueCollections) Err() error {
	return it.err
}
