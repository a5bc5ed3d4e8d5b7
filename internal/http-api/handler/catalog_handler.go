package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"musicbrainz/internal/http-api/dto"
	"musicbrainz/internal/http-api/middleware"
	"musicbrainz/internal/http-api/models"
	"musicbrainz/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// CatalogHandler is the write side of the catalog. Creates bypass review,
// so the routes are gated to auto-editors.
type CatalogHandler struct {
	catalog service.CatalogService
}

func NewCatalogHandler(catalog service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/artists", middleware.RequireAutoEditor(), h.CreateArtist)
	rg.POST("/releases", middleware.RequireAutoEditor(), h.CreateRelease)
	rg.POST("/labels", middleware.RequireAutoEditor(), h.CreateLabel)
}

func (h *CatalogHandler) CreateArtist(c *gin.Context) {
	var req dto.CreateArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	artist := &models.Artist{Name: req.Name, SortName: req.SortName}
	if err := h.catalog.CreateArtist(ctx, artist); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, artist)
}

func (h *CatalogHandler) CreateRelease(c *gin.Context) {
	var req dto.CreateReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	release := &models.Release{
		ArtistID:    req.ArtistID,
		Title:       req.Title,
		ReleaseDate: req.ReleaseDate,
		Attributes:  models.AttributeSet(req.Attributes),
		Barcode:     req.Barcode,
	}
	if err := h.catalog.CreateRelease(ctx, release); err != nil {
		switch {
		case errors.Is(err, service.ErrArtistNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidAttribute):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, release)
}

func (h *CatalogHandler) CreateLabel(c *gin.Context) {
	var req dto.CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	label := &models.Label{Name: req.Name, SortName: req.SortName, Country: req.Country}
	if err := h.catalog.CreateLabel(ctx, label); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, label)
}
