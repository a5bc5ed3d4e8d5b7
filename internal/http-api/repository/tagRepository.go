package repository

import (
	"context"
	"errors"
	"fmt"

	"musicbrainz/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TagKind selects which raw vote table a tag operation targets.
type TagKind string

const (
	TagKindArtist  TagKind = "artist"
	TagKindRelease TagKind = "release"
	TagKindTrack   TagKind = "track"
	TagKindLabel   TagKind = "label"
)

// ErrUnknownTagKind is returned for a kind outside the four raw tables.
var ErrUnknownTagKind = errors.New("unknown tag kind")

// TagWeight is one aggregated tag-cloud entry for an entity.
type TagWeight struct {
	TagID int64  `json:"tag_id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type TagRepository interface {
	// Vote records (entity, tag, editor). Voting the same triple twice is a
	// no-op; the unique index keeps the table one-row-per-triple.
	Vote(ctx context.Context, kind TagKind, entityID int64, tagName, editorID string) error
	Withdraw(ctx context.Context, kind TagKind, entityID int64, tagName, editorID string) error
	// Cloud folds raw votes into per-tag counts for one entity, heaviest
	// first.
	Cloud(ctx context.Context, kind TagKind, entityID int64) ([]TagWeight, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// rawTable maps a kind to its vote table and entity column.
func rawTable(kind TagKind) (table, column string, err error) {
	switch kind {
	case TagKindArtist:
		return "artist_tag_raw", "artist_id", nil
	case TagKindRelease:
		return "release_tag_raw", "release_id", nil
	case TagKindTrack:
		return "track_tag_raw", "track_id", nil
	case TagKindLabel:
		return "label_tag_raw", "label_id", nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnknownTagKind, kind)
	}
}

func rawRow(kind TagKind, entityID, tagID int64, editorID string) (any, error) {
	switch kind {
	case TagKindArtist:
		return &models.ArtistTagRaw{ArtistID: entityID, TagID: tagID, EditorID: editorID}, nil
	case TagKindRelease:
		return &models.ReleaseTagRaw{ReleaseID: entityID, TagID: tagID, EditorID: editorID}, nil
	case TagKindTrack:
		return &models.TrackTagRaw{TrackID: entityID, TagID: tagID, EditorID: editorID}, nil
	case TagKindLabel:
		return &models.LabelTagRaw{LabelID: entityID, TagID: tagID, EditorID: editorID}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTagKind, kind)
	}
}

func (r *tagRepository) Vote(ctx context.Context, kind TagKind, entityID int64, tagName, editorID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tag models.Tag
		if err := tx.Where(&models.Tag{Name: tagName}).FirstOrCreate(&tag).Error; err != nil {
			return fmt.Errorf("find or create tag: %w", err)
		}

		row, err := rawRow(kind, entityID, tag.ID, editorID)
		if err != nil {
			return err
		}

		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row)
		if result.Error != nil {
			return fmt.Errorf("record tag vote: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			// Duplicate vote, nothing to count.
			return nil
		}

		return tx.Model(&models.Tag{}).
			Where("id = ?", tag.ID).
			Update("ref_count", gorm.Expr("ref_count + 1")).Error
	})
}

func rawModel(kind TagKind) (any, error) {
	switch kind {
	case TagKindArtist:
		return &models.ArtistTagRaw{}, nil
	case TagKindRelease:
		return &models.ReleaseTagRaw{}, nil
	case TagKindTrack:
		return &models.TrackTagRaw{}, nil
	case TagKindLabel:
		return &models.LabelTagRaw{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTagKind, kind)
	}
}

func (r *tagRepository) Withdraw(ctx context.Context, kind TagKind, entityID int64, tagName, editorID string) error {
	_, column, err := rawTable(kind)
	if err != nil {
		return err
	}
	model, err := rawModel(kind)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tag models.Tag
		if err := tx.Where("name = ?", tagName).First(&tag).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		result := tx.
			Where(column+" = ? AND tag_id = ? AND editor_id = ?", entityID, tag.ID, editorID).
			Delete(model)
		if result.Error != nil {
			return fmt.Errorf("withdraw tag vote: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		return tx.Model(&models.Tag{}).
			Where("id = ? AND ref_count > 0", tag.ID).
			Update("ref_count", gorm.Expr("ref_count - 1")).Error
	})
}

func (r *tagRepository) Cloud(ctx context.Context, kind TagKind, entityID int64) ([]TagWeight, error) {
	table, column, err := rawTable(kind)
	if err != nil {
		return nil, err
	}
	var weights []TagWeight
	if err := r.db.WithContext(ctx).
		Table(table).
		Select("tag.id AS tag_id, tag.name AS name, COUNT(*) AS count").
		Joins("JOIN tag ON tag.id = "+table+".tag_id").
		Where(column+" = ?", entityID).
		Group("tag.id, tag.name").
		Order("count DESC, name").
		Scan(&weights).Error; err != nil {
		return nil, fmt.Errorf("tag cloud: %w", err)
	}
	return weights, nil
}
