package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"musicbrainz/internal/http-api/dto"
	"musicbrainz/internal/http-api/repository"
	"musicbrainz/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type CollectionHandler struct {
	svc service.CollectionService
}

func NewCollectionHandler(svc service.CollectionService) *CollectionHandler {
	return &CollectionHandler{svc: svc}
}

func (h *CollectionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.ListOwn)
	rg.GET("/:id", h.Get)
	rg.DELETE("/:id", h.Delete)

	rg.POST("/:id/watch-artists", h.WatchArtist)
	rg.GET("/:id/watch-artists", h.ListWatchArtists)
	rg.DELETE("/:id/watch-artists/:artist_id", h.UnwatchArtist)

	rg.POST("/:id/discography-artists", h.AddDiscographyArtist)
	rg.GET("/:id/discography-artists", h.ListDiscographyArtists)
	rg.DELETE("/:id/discography-artists/:artist_id", h.RemoveDiscographyArtist)

	rg.POST("/:id/owned-releases", h.MarkReleaseOwned)
	rg.DELETE("/:id/owned-releases/:release_id", h.UnmarkReleaseOwned)

	rg.POST("/:id/ignored-releases", h.IgnoreRelease)
	rg.DELETE("/:id/ignored-releases/:release_id", h.UnignoreRelease)

	rg.PUT("/:id/ignore-time-range", h.SetIgnoreTimeRange)
	rg.DELETE("/:id/ignore-time-range", h.ClearIgnoreTimeRange)
}

// editorID pulls the authenticated editor out of the request context.
func editorID(c *gin.Context) (string, bool) {
	v, exists := c.Get("editorID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "editor not authenticated"})
		return "", false
	}
	return v.(string), true
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCollectionNotFound),
		errors.Is(err, service.ErrArtistNotFound),
		errors.Is(err, service.ErrReleaseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidAttribute),
		errors.Is(err, service.ErrInvalidTimeRange),
		errors.Is(err, service.ErrStaleTimestamp):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// Create a new collection for the authenticated editor
func (h *CollectionHandler) Create(c *gin.Context) {
	editor, ok := editorID(c)
	if !ok {
		return
	}

	var req dto.CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	collection, err := h.svc.Create(ctx, editor, req.IsPublic, repository.CollectionOptions{
		EmailNotifications:   req.EmailNotifications,
		NotificationLeadDays: req.NotificationLeadDays,
		IgnoredAttributes:    req.IgnoredAttributes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromCollectionModel(*collection))
}

// ListOwn returns the authenticated editor's collections
func (h *CollectionHandler) ListOwn(c *gin.Context) {
	editor, ok := editorID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	collections, err := h.svc.ListOwn(ctx, editor)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]dto.CollectionResponse, 0, len(collections))
	for _, collection := range collections {
		items = append(items, dto.FromCollectionModel(collection))
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

func (h *CollectionHandler) Get(c *gin.Context) {
	editor, ok := editorID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	collection, err := h.svc.Get(ctx, editor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromCollectionModel(*collection))
}

func (h *CollectionHandler) Delete(c *gin.Context) {
	editor, ok := editorID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, editor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// artistLink factors the four watch/discography add/remove handlers.
func (h *CollectionHandler) artistLink(c *gin.Context, op func(ctx context.Context, editor string, collectionID, artistID int64) error, status int) {
	editor, ok := editorID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var artistID int64
	if c.Request.Method == http.MethodDelete {
		artistID, ok = pathID(c, "artist_id")
		if !ok {
			return
		}
	} else {
		var req dto.ArtistLinkRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		artistID = req.ArtistID
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := op(ctx, editor, id, artistID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(status)
}

func (h *CollectionHandler) WatchArtist(c *gin.Context) {
	h.artistLink(c, h.svc.WatchArtist, http.StatusCreated)
}

func (h *CollectionHandler) UnwatchArtist(c *gin.Context) {
	h.artistLink(c, h.svc.UnwatchArtist, http.StatusNoContent)
}

func (h *CollectionHandler) AddDiscographyArtist(c *gin.Context) {
	h.artistLink(c, h.svc.AddDiscographyArtist, http.StatusCreated)
}

func (h *CollectionHandler) RemoveDiscographyArtist(c *gin.Context) {
	h.artistLink(c, h.svc.RemoveDiscographyArtist, http.StatusNoContent)
}

func (h *CollectionHandler) ListWatchArtists(c *gin.Context) {
	editor, ok := editorID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	links, err := h.svc.ListWatchArtists(ctx, editor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]dto.ArtistLinkResponse, 0, len(links))
	for _, link := range links {
		resp := dto.ArtistLinkResponse{ID: link.ID, ArtistID: link.ArtistID}
		if link.Artist != nil {
			artist := dto.FromArtistModel(*link.Artist)
			resp.Artist = &artist
		}
		items = append(items, resp)
	}
	c.JSON(http.StatusOK, dto.ArtistLinkListResponse{Items: items, Total: len(items)})
}

func (h *CollectionHandler) ListDiscographyArtists(c *gin.Context) {
	editor, ok := editorID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	links, err := h.svc.ListDiscographyArtists(ctx, editor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]dto.ArtistLinkResponse, 0, len(links))
	for _, link := range links {
		resp := dto.ArtistLinkResponse{ID: link.ID, ArtistID: link.ArtistID}
		if link.Artist != nil {
			artist := dto.FromArtistModel(*link.Artist)
			resp.Artist = &artist
		}
		items = append(items, resp)
	}
	c.JSON(http.StatusOK, dto.ArtistLinkListResponse{Items: items, Total: len(items)})
}

// releaseLink factors the owned/ignored add/remove handlers.
func (h *CollectionHandler) releaseLink(c *gin.Context, op func(ctx context.Context, editor string, collectionID, releaseID int64) error, status int) {
	editor, ok := editorID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var releaseID int64
	if c.Request.Method == http.MethodDelete {
		releaseID, ok = pathID(c, "release_id")
		if !ok {
			return
		}
	} else {
		var req dto.ReleaseLinkRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		releaseID = req.ReleaseID
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := op(ctx, editor, id, releaseID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(status)
}

func (h *CollectionHandler) MarkReleaseOwned(c *gin.Context) {
	h.releaseLink(c, h.svc.MarkReleaseOwned, http.StatusCreated)
}

func (h *CollectionHandler) UnmarkReleaseOwned(c *gin.Context) {
	h.releaseLink(c, h.svc.UnmarkReleaseOwned, http.StatusNoContent)
}

func (h *CollectionHandler) IgnoreRelease(c *gin.Context) {
	h.releaseLink(c, h.svc.IgnoreRelease, http.StatusCreated)
}

func (h *CollectionHandler) UnignoreRelease(c *gin.Context) {
	h.releaseLink(c, h.svc.UnignoreRelease, http.StatusNoContent)
}

func (h *CollectionHandler) SetIgnoreTimeRange(c *gin.Context) {
	editor, ok := editorID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.TimeRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	timeRange, err := h.svc.SetIgnoreTimeRange(ctx, editor, id, req.RangeStart, req.RangeEnd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TimeRangeResponse{
		ID:         timeRange.ID,
		RangeStart: timeRange.RangeStart,
		RangeEnd:   timeRange.RangeEnd,
	})
}

func (h *CollectionHandler) ClearIgnoreTimeRange(c *gin.Context) {
	editor, ok := editorID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.ClearIgnoreTimeRange(ctx, editor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
