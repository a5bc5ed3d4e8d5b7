package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"musicbrainz/internal/http-api/dto"
	"musicbrainz/internal/http-api/repository"
	"musicbrainz/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	svc service.TagService
}

func NewTagHandler(svc service.TagService) *TagHandler {
	return &TagHandler{svc: svc}
}

func (h *TagHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// kind is one of: artist, release, track, label
	rg.POST("/:kind", h.Vote)
	rg.DELETE("/:kind", h.Withdraw)
	rg.GET("/:kind/:entity_id", h.Cloud)
}

func (h *TagHandler) Vote(c *gin.Context) {
	editor, ok := editorID(c)
	if !ok {
		return
	}

	var req dto.TagVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	kind := repository.TagKind(c.Param("kind"))
	if err := h.svc.Vote(ctx, kind, req.EntityID, req.Tag, editor); err != nil {
		respondTagError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *TagHandler) Withdraw(c *gin.Context) {
	editor, ok := editorID(c)
	if !ok {
		return
	}

	var req dto.TagVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	kind := repository.TagKind(c.Param("kind"))
	if err := h.svc.Withdraw(ctx, kind, req.EntityID, req.Tag, editor); err != nil {
		respondTagError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TagHandler) Cloud(c *gin.Context) {
	id, ok := pathID(c, "entity_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	kind := repository.TagKind(c.Param("kind"))
	weights, err := h.svc.Cloud(ctx, kind, id)
	if err != nil {
		respondTagError(c, err)
		return
	}

	resp := dto.TagCloudResponse{EntityID: id, Kind: string(kind)}
	for _, w := range weights {
		resp.Tags = append(resp.Tags, dto.TagCloudEntry{TagID: w.TagID, Name: w.Name, Count: w.Count})
	}
	c.JSON(http.StatusOK, resp)
}

func respondTagError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownEntity), errors.Is(err, service.ErrEmptyTag):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
