package models

import "time"

// CollectionInfo is one editor's release-tracking collection: which artists
// they follow, which releases they already own or never want to hear about,
// and how they want to be warned about upcoming releases.
type CollectionInfo struct {
	ID                   int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	Owner                string       `gorm:"type:uuid;not null;index" json:"owner"`
	IgnoreTimeRangeID    *int64       `gorm:"column:ignore_time_range" json:"ignore_time_range,omitempty"`
	LastChecked          time.Time    `gorm:"not null" json:"last_checked"`
	IsPublic             bool         `gorm:"default:false" json:"is_public"`
	EmailNotifications   bool         `json:"email_notifications"`
	NotificationLeadDays int          `gorm:"not null" json:"notification_lead_days"`
	IgnoredAttributeSet  AttributeSet `json:"ignored_attribute_set"`

	// Associations
	Editor    *Editor          `gorm:"foreignKey:Owner" json:"editor,omitempty"`
	TimeRange *IgnoreTimeRange `gorm:"foreignKey:IgnoreTimeRangeID" json:"time_range,omitempty"`
}

func (CollectionInfo) TableName() string {
	return "collection_info"
}

// DueAt reports whether the collection is due for a notification sweep at
// the given instant: last_checked + notification_lead_days <= now.
func (c *CollectionInfo) DueAt(now time.Time) bool {
	return !c.LastChecked.AddDate(0, 0, c.NotificationLeadDays).After(now)
}

// IgnoreTimeRange is a date window during which release notifications are
// suppressed. Rows are shared: several collections may reference one range.
type IgnoreTimeRange struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	RangeStart time.Time `gorm:"not null" json:"range_start"`
	RangeEnd   time.Time `gorm:"not null" json:"range_end"`
}

func (IgnoreTimeRange) TableName() string {
	return "collection_ignore_time_range"
}

// Covers reports whether t falls inside [range_start, range_end].
func (r *IgnoreTimeRange) Covers(t time.Time) bool {
	return !t.Before(r.RangeStart) && !t.After(r.RangeEnd)
}

// WatchArtistLink subscribes a collection to an artist's future releases.
type WatchArtistLink struct {
	ID           int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	CollectionID int64 `gorm:"not null;uniqueIndex:idx_watch_artist_pair" json:"collection_id"`
	ArtistID     int64 `gorm:"not null;uniqueIndex:idx_watch_artist_pair" json:"artist_id"`

	Collection *CollectionInfo `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE;" json:"-"`
	Artist     *Artist         `gorm:"foreignKey:ArtistID;constraint:OnDelete:CASCADE;" json:"artist,omitempty"`
}

func (WatchArtistLink) TableName() string {
	return "collection_watch_artist"
}

// DiscographyArtistLink tracks an artist's complete release history, past
// releases included. Distinct from watch links, which are forward-looking.
type DiscographyArtistLink struct {
	ID           int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	CollectionID int64 `gorm:"not null;uniqueIndex:idx_discography_artist_pair" json:"collection_id"`
	ArtistID     int64 `gorm:"not null;uniqueIndex:idx_discography_artist_pair" json:"artist_id"`

	Collection *CollectionInfo `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE;" json:"-"`
	Artist     *Artist         `gorm:"foreignKey:ArtistID;constraint:OnDelete:CASCADE;" json:"artist,omitempty"`
}

func (DiscographyArtistLink) TableName() string {
	return "collection_discography_artist"
}

// IgnoreReleaseLink suppresses notifications for one release, overriding
// attribute and time-range rules.
type IgnoreReleaseLink struct {
	ID           int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	CollectionID int64 `gorm:"not null;uniqueIndex:idx_ignore_release_pair" json:"collection_id"`
	ReleaseID    int64 `gorm:"not null;uniqueIndex:idx_ignore_release_pair" json:"release_id"`

	Collection *CollectionInfo `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE;" json:"-"`
	Release    *Release        `gorm:"foreignKey:ReleaseID;constraint:OnDelete:CASCADE;" json:"release,omitempty"`
}

func (IgnoreReleaseLink) TableName() string {
	return "collection_ignore_release"
}

// HasReleaseLink marks a release as already owned by the collection.
type HasReleaseLink struct {
	ID           int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	CollectionID int64 `gorm:"not null;uniqueIndex:idx_has_release_pair" json:"collection_id"`
	ReleaseID    int64 `gorm:"not null;uniqueIndex:idx_has_release_pair" json:"release_id"`

	Collection *CollectionInfo `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE;" json:"-"`
	Release    *Release        `gorm:"foreignKey:ReleaseID;constraint:OnDelete:CASCADE;" json:"release,omitempty"`
}

func (HasReleaseLink) TableName() string {
	return "collection_has_release"
}
