package database

import (
	"fmt"
	"log/slog"
	"time"

	"musicbrainz/internal/config"
	"musicbrainz/internal/http-api/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func ConnectDB(cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	gormLog := logger.Default.LogMode(logger.Warn)
	if cfg.IsDevelopment() {
		gormLog = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access underlying connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Connected to the database successfully")
	return db, nil
}

// Migrate applies the schema for every persisted model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Editor{},
		&models.RefreshToken{},
		&models.Artist{},
		&models.Label{},
		&models.Release{},
		&models.Track{},
		&models.IgnoreTimeRange{},
		&models.CollectionInfo{},
		&models.WatchArtistLink{},
		&models.DiscographyArtistLink{},
		&models.IgnoreReleaseLink{},
		&models.HasReleaseLink{},
		&models.Tag{},
		&models.ArtistTagRaw{},
		&models.ReleaseTagRaw{},
		&models.TrackTagRaw{},
		&models.LabelTagRaw{},
		&models.Notification{},
	)
}
