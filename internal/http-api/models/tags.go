package models

type Tag struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name     string `json:"name" gorm:"uniqueIndex;not null"`
	RefCount int64  `json:"ref_count" gorm:"not null;default:0"`
}

func (Tag) TableName() string {
	return "tag"
}

// Raw tag-vote tables: one row per (entity, tag, editor) triple. The unique
// indexes keep a voter from stacking the same tag on the same entity; the
// aggregation in the tag repository folds these rows into cloud weights.

type ArtistTagRaw struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	ArtistID int64  `json:"artist_id" gorm:"not null;uniqueIndex:idx_artist_tag_raw_triple"`
	TagID    int64  `json:"tag_id" gorm:"not null;uniqueIndex:idx_artist_tag_raw_triple"`
	EditorID string `json:"editor_id" gorm:"type:uuid;not null;uniqueIndex:idx_artist_tag_raw_triple"`

	Tag *Tag `gorm:"foreignKey:TagID" json:"tag,omitempty"`
}

func (ArtistTagRaw) TableName() string {
	return "artist_tag_raw"
}

type ReleaseTagRaw struct {
	ID        int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	ReleaseID int64  `json:"release_id" gorm:"not null;uniqueIndex:idx_release_tag_raw_triple"`
	TagID     int64  `json:"tag_id" gorm:"not null;uniqueIndex:idx_release_tag_raw_triple"`
	EditorID  string `json:"editor_id" gorm:"type:uuid;not null;uniqueIndex:idx_release_tag_raw_triple"`

	Tag *Tag `gorm:"foreignKey:TagID" json:"tag,omitempty"`
}

func (ReleaseTagRaw) TableName() string {
	return "release_tag_raw"
}

type TrackTagRaw struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	TrackID  int64  `json:"track_id" gorm:"not null;uniqueIndex:idx_track_tag_raw_triple"`
	TagID    int64  `json:"tag_id" gorm:"not null;uniqueIndex:idx_track_tag_raw_triple"`
	EditorID string `json:"editor_id" gorm:"type:uuid;not null;uniqueIndex:idx_track_tag_raw_triple"`

	Tag *Tag `gorm:"foreignKey:TagID" json:"tag,omitempty"`
}

func (TrackTagRaw) TableName() string {
	return "track_tag_raw"
}

type LabelTagRaw struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	LabelID  int64  `json:"label_id" gorm:"not null;uniqueIndex:idx_label_tag_raw_triple"`
	TagID    int64  `json:"tag_id" gorm:"not null;uniqueIndex:idx_label_tag_raw_triple"`
	EditorID string `json:"editor_id" gorm:"type:uuid;not null;uniqueIndex:idx_label_tag_raw_triple"`

	Tag *Tag `gorm:"foreignKey:TagID" json:"tag,omitempty"`
}

func (LabelTagRaw) TableName() string {
	return "label_tag_raw"
}
