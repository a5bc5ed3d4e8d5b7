package repository

import (
	"context"
	"testing"
	"time"

	"musicbrainz/database"
	"musicbrainz/internal/http-api/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory database with the full schema applied.
// A single connection keeps the :memory: database alive across queries.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func seedArtist(t *testing.T, db *gorm.DB, name string) *models.Artist {
	t.Helper()
	artist := &models.Artist{GID: uuid.New().String(), Name: name, SortName: name}
	require.NoError(t, NewArtistRepository(db).Create(context.Background(), artist))
	return artist
}

func seedRelease(t *testing.T, db *gorm.DB, artistID int64, title string, date time.Time, attrs ...int) *models.Release {
	t.Helper()
	release := &models.Release{
		GID:         uuid.New().String(),
		ArtistID:    artistID,
		Title:       title,
		ReleaseDate: &date,
		Attributes:  models.AttributeSet(attrs),
	}
	require.NoError(t, NewReleaseRepository(db).Create(context.Background(), release))
	return release
}
