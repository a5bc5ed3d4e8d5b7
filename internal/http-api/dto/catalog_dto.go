package dto

import (
	"encoding/xml"
	"time"

	"musicbrainz/internal/http-api/models"
)

// Web-service response DTOs carry both json and xml tags because the body
// format is chosen per request by the format negotiator.

type ArtistResponse struct {
	XMLName  xml.Name `xml:"artist" json:"-"`
	GID      string   `xml:"id,attr" json:"gid"`
	Name     string   `xml:"name" json:"name"`
	SortName string   `xml:"sort-name" json:"sort_name"`
}

func FromArtistModel(a models.Artist) ArtistResponse {
	return ArtistResponse{
		GID:      a.GID,
		Name:     a.Name,
		SortName: a.SortName,
	}
}

type ArtistListResponse struct {
	XMLName xml.Name         `xml:"artist-list" json:"-"`
	Artists []ArtistResponse `xml:"artist" json:"artists"`
	Total   int              `xml:"count,attr" json:"total"`
}

type ReleaseResponse struct {
	XMLName     xml.Name        `xml:"release" json:"-"`
	GID         string          `xml:"id,attr" json:"gid"`
	Title       string          `xml:"title" json:"title"`
	ReleaseDate string          `xml:"date,omitempty" json:"release_date,omitempty"`
	Attributes  []string        `xml:"attribute-list>attribute,omitempty" json:"attributes,omitempty"`
	Artist      *ArtistResponse `xml:"artist,omitempty" json:"artist,omitempty"`
}

func FromReleaseModel(r models.Release) ReleaseResponse {
	resp := ReleaseResponse{
		GID:   r.GID,
		Title: r.Title,
	}
	if r.ReleaseDate != nil {
		resp.ReleaseDate = r.ReleaseDate.Format("2006-01-02")
	}
	for _, code := range r.Attributes {
		if name := models.AttributeName(code); name != "" {
			resp.Attributes = append(resp.Attributes, name)
		}
	}
	if r.Artist != nil {
		artist := FromArtistModel(*r.Artist)
		resp.Artist = &artist
	}
	return resp
}

type ReleaseListResponse struct {
	XMLName  xml.Name          `xml:"release-list" json:"-"`
	Releases []ReleaseResponse `xml:"release" json:"releases"`
	Total    int               `xml:"count,attr" json:"total"`
}

type LabelResponse struct {
	XMLName  xml.Name `xml:"label" json:"-"`
	GID      string   `xml:"id,attr" json:"gid"`
	Name     string   `xml:"name" json:"name"`
	SortName string   `xml:"sort-name" json:"sort_name"`
}

func FromLabelModel(l models.Label) LabelResponse {
	return LabelResponse{
		GID:      l.GID,
		Name:     l.Name,
		SortName: l.SortName,
	}
}

type LabelListResponse struct {
	XMLName xml.Name        `xml:"label-list" json:"-"`
	Labels  []LabelResponse `xml:"label" json:"labels"`
	Total   int             `xml:"count,attr" json:"total"`
}

// Write-side payloads (plain JSON API, negotiation does not apply)

type CreateArtistRequest struct {
	Name     string `json:"name" binding:"required"`
	SortName string `json:"sort_name"`
}

type CreateReleaseRequest struct {
	ArtistID    int64      `json:"artist_id" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	Attributes  []int      `json:"attributes,omitempty"`
	Barcode     *string    `json:"barcode,omitempty"`
}

type CreateLabelRequest struct {
	Name     string  `json:"name" binding:"required"`
	SortName string  `json:"sort_name"`
	Country  *string `json:"country,omitempty"`
}
