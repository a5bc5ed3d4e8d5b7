package sweep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"musicbrainz/internal/http-api/models"
	"musicbrainz/internal/http-api/repository"
)

// Sweeper walks all due collections and turns upcoming or newly added
// releases into editor notifications. One Run is one sweep; a scheduler
// (cmd/notify-sweep) decides how often it fires.
type Sweeper struct {
	collections   repository.CollectionRepository
	releases      repository.ReleaseRepository
	notifications repository.NotificationRepository
	notifier      *Notifier
	log           *slog.Logger

	workerCount int
}

type Config struct {
	WorkerCount int
	NotifierURL string
	Logger      *slog.Logger
}

func NewSweeper(
	collections repository.CollectionRepository,
	releases repository.ReleaseRepository,
	notifications repository.NotificationRepository,
	cfg Config,
) *Sweeper {
	workerCount := cfg.WorkerCount
	if workerCount == 0 {
		workerCount = 4
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{
		collections:   collections,
		releases:      releases,
		notifications: notifications,
		notifier:      NewNotifier(cfg.NotifierURL, logger),
		log:           logger,
		workerCount:   workerCount,
	}
}

// Stats summarizes one sweep run.
type Stats struct {
	CollectionsSwept int
	Notified         int
	Errors           int
}

// Run performs a single sweep over every due collection. Collections are
// processed concurrently by a worker pool; each one advances its own
// last_checked only after its releases were examined.
func (s *Sweeper) Run(ctx context.Context) (Stats, error) {
	start := time.Now()
	var stats Stats

	pool := NewWorkerPool(ctx, s.workerCount, s.log)
	pool.Start()

	results := make(chan collectionResult, s.workerCount*2)
	collectDone := make(chan struct{})
	go func() {
		defer close(collectDone)
		for r := range results {
			stats.CollectionsSwept++
			stats.Notified += r.notified
			if r.err != nil {
				stats.Errors++
				s.log.Error("collection sweep failed", "collection_id", r.collectionID, "error", r.err)
			}
		}
	}()

	it := s.collections.ListDue(ctx, start)
	for it.Next() {
		// The iterator reuses its buffer, so copy before handing off.
		collection := *it.Collection()
		pool.Submit(func(taskCtx context.Context) error {
			notified, err := s.sweepCollection(taskCtx, &collection, start)
			results <- collectionResult{collectionID: collection.ID, notified: notified, err: err}
			return err
		})
	}

	pool.Wait()
	close(results)
	<-collectDone

	// Drain in-flight gateway deliveries so single-shot runs do not exit
	// with POSTs still on the wire.
	s.notifier.Flush()

	if err := it.Err(); err != nil {
		return stats, fmt.Errorf("iterate due collections: %w", err)
	}

	s.log.Info("sweep complete",
		"collections", stats.CollectionsSwept,
		"notified", stats.Notified,
		"errors", stats.Errors,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return stats, nil
}

type collectionResult struct {
	collectionID int64
	notified     int
	err          error
}

// sweepCollection examines one collection and returns how many
// notifications it produced.
func (s *Sweeper) sweepCollection(ctx context.Context, c *models.CollectionInfo, sweepStart time.Time) (int, error) {
	horizon := sweepStart.AddDate(0, 0, c.NotificationLeadDays)

	watched, err := s.collections.ListWatchArtists(ctx, c.ID)
	if err != nil {
		return 0, err
	}
	discography, err := s.collections.ListDiscographyArtists(ctx, c.ID)
	if err != nil {
		return 0, err
	}

	notified := 0

	// Watched artists: releases dated inside the lead window.
	watchIDs := make([]int64, 0, len(watched))
	for _, link := range watched {
		watchIDs = append(watchIDs, link.ArtistID)
	}
	upcoming, err := s.releases.UpcomingByArtists(ctx, watchIDs, sweepStart, horizon)
	if err != nil {
		return notified, err
	}
	for _, release := range upcoming {
		n, err := s.maybeNotify(ctx, c, &release, "UPCOMING_RELEASE")
		if err != nil {
			return notified, err
		}
		notified += n
	}

	// Discography artists: anything dated since the last sweep, plus the
	// same forward window.
	discIDs := make([]int64, 0, len(discography))
	for _, link := range discography {
		discIDs = append(discIDs, link.ArtistID)
	}
	recent, err := s.releases.UpcomingByArtists(ctx, discIDs, c.LastChecked, horizon)
	if err != nil {
		return notified, err
	}
	for _, release := range recent {
		n, err := s.maybeNotify(ctx, c, &release, "NEW_RELEASE")
		if err != nil {
			return notified, err
		}
		notified += n
	}

	// A lost CAS race means another sweep already advanced the clock;
	// that is fine.
	if err := s.collections.AdvanceLastChecked(ctx, c.ID, sweepStart); err != nil &&
		!errors.Is(err, repository.ErrStaleLastChecked) {
		return notified, err
	}
	return notified, nil
}

// maybeNotify applies the suppression rules and records a notification
// when none of them fire. Returns 1 when a notification was created.
func (s *Sweeper) maybeNotify(ctx context.Context, c *models.CollectionInfo, release *models.Release, kind string) (int, error) {
	if suppressed, err := s.suppressed(ctx, c, release); err != nil || suppressed {
		return 0, err
	}

	// One notification per editor per release, ever.
	exists, err := s.notifications.ExistsForRelease(ctx, c.Owner, release.ID)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, nil
	}

	title := release.Title
	if release.Artist != nil {
		title = fmt.Sprintf("%s - %s", release.Artist.Name, release.Title)
	}
	message := fmt.Sprintf("%q is due for release", release.Title)
	if release.ReleaseDate != nil {
		message = fmt.Sprintf("%q is due for release on %s", release.Title, release.ReleaseDate.Format("2006-01-02"))
	}

	notification := &models.Notification{
		EditorID:  c.Owner,
		Type:      kind,
		ReleaseID: release.ID,
		Title:     title,
		Message:   message,
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		return 0, err
	}

	if c.EmailNotifications {
		s.notifier.NotifyRelease(c.Owner, release.ID, title, message)
	}
	return 1, nil
}

// suppressed applies the per-collection filters: explicitly ignored
// releases, releases already owned, ignored attribute codes, and the
// optional ignore time range.
func (s *Sweeper) suppressed(ctx context.Context, c *models.CollectionInfo, release *models.Release) (bool, error) {
	if ignored, err := s.collections.IgnoresRelease(ctx, c.ID, release.ID); err != nil || ignored {
		return ignored, err
	}
	if owned, err := s.collections.OwnsRelease(ctx, c.ID, release.ID); err != nil || owned {
		return owned, err
	}

	for _, attr := range release.Attributes {
		if c.IgnoredAttributeSet.Contains(attr) {
			return true, nil
		}
	}

	if c.TimeRange != nil && release.ReleaseDate != nil && c.TimeRange.Covers(*release.ReleaseDate) {
		return true, nil
	}
	return false, nil
}
