package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"musicbrainz/internal/http-api/dto"
	"musicbrainz/internal/http-api/service"
	"musicbrainz/internal/webservice"

	"github.com/gin-gonic/gin"
)

// WSHandler serves the public, versioned web service. Every route here sits
// behind the format negotiator middleware, so responses go out through the
// per-request negotiated serializer instead of plain JSON.
type WSHandler struct {
	catalog service.CatalogService
}

func NewWSHandler(catalog service.CatalogService) *WSHandler {
	return &WSHandler{catalog: catalog}
}

func (h *WSHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/artist/:gid", h.GetArtist)
	rg.GET("/artist", h.SearchArtists)
	rg.GET("/release/:gid", h.GetRelease)
	rg.GET("/label/:gid", h.GetLabel)
	rg.GET("/label", h.SearchLabels)
}

func wsNotFound(c *gin.Context, what string) {
	webservice.MustSerializer(c).WriteError(c, http.StatusNotFound, what+" not found")
}

func wsInternal(c *gin.Context, err error) {
	webservice.MustSerializer(c).WriteError(c, http.StatusInternalServerError, err.Error())
}

func (h *WSHandler) GetArtist(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	artist, err := h.catalog.ArtistByGID(ctx, c.Param("gid"))
	if err != nil {
		if errors.Is(err, service.ErrArtistNotFound) {
			wsNotFound(c, "artist")
			return
		}
		wsInternal(c, err)
		return
	}
	webservice.MustSerializer(c).Write(c, http.StatusOK, dto.FromArtistModel(*artist))
}

func (h *WSHandler) SearchArtists(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		webservice.MustSerializer(c).WriteError(c, http.StatusBadRequest, "name query parameter is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	artists, err := h.catalog.SearchArtists(ctx, name, 25)
	if err != nil {
		wsInternal(c, err)
		return
	}

	resp := dto.ArtistListResponse{Total: len(artists)}
	for _, artist := range artists {
		resp.Artists = append(resp.Artists, dto.FromArtistModel(artist))
	}
	webservice.MustSerializer(c).Write(c, http.StatusOK, resp)
}

func (h *WSHandler) GetRelease(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	release, err := h.catalog.ReleaseByGID(ctx, c.Param("gid"))
	if err != nil {
		if errors.Is(err, service.ErrReleaseNotFound) {
			wsNotFound(c, "release")
			return
		}
		wsInternal(c, err)
		return
	}
	webservice.MustSerializer(c).Write(c, http.StatusOK, dto.FromReleaseModel(*release))
}

func (h *WSHandler) GetLabel(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	label, err := h.catalog.LabelByGID(ctx, c.Param("gid"))
	if err != nil {
		if errors.Is(err, service.ErrLabelNotFound) {
			wsNotFound(c, "label")
			return
		}
		wsInternal(c, err)
		return
	}
	webservice.MustSerializer(c).Write(c, http.StatusOK, dto.FromLabelModel(*label))
}

func (h *WSHandler) SearchLabels(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		webservice.MustSerializer(c).WriteError(c, http.StatusBadRequest, "name query parameter is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	labels, err := h.catalog.SearchLabels(ctx, name, 25)
	if err != nil {
		wsInternal(c, err)
		return
	}

	resp := dto.LabelListResponse{Total: len(labels)}
	for _, label := range labels {
		resp.Labels = append(resp.Labels, dto.FromLabelModel(label))
	}
	webservice.MustSerializer(c).Write(c, http.StatusOK, resp)
}
