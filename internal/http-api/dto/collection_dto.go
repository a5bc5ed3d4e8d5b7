package dto

import (
	"time"

	"musicbrainz/internal/http-api/models"
)

// CreateCollectionRequest: payload to opt into release tracking. Omitted
// fields take the documented defaults.
type CreateCollectionRequest struct {
	IsPublic             bool  `json:"is_public"`
	EmailNotifications   *bool `json:"email_notifications,omitempty"`
	NotificationLeadDays *int  `json:"notification_lead_days,omitempty"`
	IgnoredAttributes    []int `json:"ignored_attributes,omitempty"`
}

// CollectionResponse mirrors one collection_info row.
type CollectionResponse struct {
	ID                   int64              `json:"id"`
	Owner                string             `json:"owner"`
	LastChecked          time.Time          `json:"last_checked"`
	IsPublic             bool               `json:"is_public"`
	EmailNotifications   bool               `json:"email_notifications"`
	NotificationLeadDays int                `json:"notification_lead_days"`
	IgnoredAttributes    []int              `json:"ignored_attributes"`
	TimeRange            *TimeRangeResponse `json:"ignore_time_range,omitempty"`
}

type TimeRangeResponse struct {
	ID         int64     `json:"id"`
	RangeStart time.Time `json:"range_start"`
	RangeEnd   time.Time `json:"range_end"`
}

func FromCollectionModel(c models.CollectionInfo) CollectionResponse {
	resp := CollectionResponse{
		ID:                   c.ID,
		Owner:                c.Owner,
		LastChecked:          c.LastChecked,
		IsPublic:             c.IsPublic,
		EmailNotifications:   c.EmailNotifications,
		NotificationLeadDays: c.NotificationLeadDays,
		IgnoredAttributes:    c.IgnoredAttributeSet,
	}
	if c.TimeRange != nil {
		resp.TimeRange = &TimeRangeResponse{
			ID:         c.TimeRange.ID,
			RangeStart: c.TimeRange.RangeStart,
			RangeEnd:   c.TimeRange.RangeEnd,
		}
	}
	return resp
}

// ArtistLinkRequest: payload to watch or track an artist
type ArtistLinkRequest struct {
	ArtistID int64 `json:"artist_id" binding:"required"`
}

// ReleaseLinkRequest: payload to own or ignore a release
type ReleaseLinkRequest struct {
	ReleaseID int64 `json:"release_id" binding:"required"`
}

// TimeRangeRequest: payload to set the collection's ignore window
type TimeRangeRequest struct {
	RangeStart time.Time `json:"range_start" binding:"required"`
	RangeEnd   time.Time `json:"range_end" binding:"required"`
}

// ArtistLinkResponse: one watch or discography entry
type ArtistLinkResponse struct {
	ID       int64           `json:"id"`
	ArtistID int64           `json:"artist_id"`
	Artist   *ArtistResponse `json:"artist,omitempty"`
}

// ArtistLinkListResponse: list of artist links for a collection
type ArtistLinkListResponse struct {
	Items []ArtistLinkResponse `json:"items"`
	Total int                  `json:"total"`
}
