package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"musicbrainz/internal/http-api/handler"
	"musicbrainz/internal/http-api/models"
	"musicbrainz/internal/http-api/service"
	"musicbrainz/internal/webservice"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) CreateArtist(ctx context.Context, artist *models.Artist) error {
	args := m.Called(ctx, artist)
	return args.Error(0)
}

func (m *MockCatalogService) ArtistByGID(ctx context.Context, gid string) (*models.Artist, error) {
	args := m.Called(ctx, gid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artist), args.Error(1)
}

func (m *MockCatalogService) SearchArtists(ctx context.Context, name string, limit int) ([]models.Artist, error) {
	args := m.Called(ctx, name, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Artist), args.Error(1)
}

func (m *MockCatalogService) CreateRelease(ctx context.Context, release *models.Release) error {
	args := m.Called(ctx, release)
	return args.Error(0)
}

func (m *MockCatalogService) ReleaseByGID(ctx context.Context, gid string) (*models.Release, error) {
	args := m.Called(ctx, gid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Release), args.Error(1)
}

func (m *MockCatalogService) ReleasesByArtist(ctx context.Context, artistID int64) ([]models.Release, error) {
	args := m.Called(ctx, artistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Release), args.Error(1)
}

func (m *MockCatalogService) CreateLabel(ctx context.Context, label *models.Label) error {
	args := m.Called(ctx, label)
	return args.Error(0)
}

func (m *MockCatalogService) LabelByGID(ctx context.Context, gid string) (*models.Label, error) {
	args := m.Called(ctx, gid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Label), args.Error(1)
}

func (m *MockCatalogService) SearchLabels(ctx context.Context, name string, limit int) ([]models.Label, error) {
	args := m.Called(ctx, name, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Label), args.Error(1)
}

func setupWSRouter(t *testing.T, mockService *MockCatalogService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	negotiator, err := webservice.NewNegotiator(webservice.XMLSerializer{}, webservice.JSONSerializer{})
	require.NoError(t, err)

	r := gin.New()
	ws := r.Group("/ws/1")
	ws.Use(negotiator.Middleware())
	handler.NewWSHandler(mockService).RegisterRoutes(ws)
	return r
}

func TestWSHandler_GetArtist(t *testing.T) {
	mockService := new(MockCatalogService)
	r := setupWSRouter(t, mockService)

	artist := &models.Artist{
		ID:       1,
		GID:      "b10bbbfc-cf9e-42e0-be17-e2c3e1d2600d",
		Name:     "The Beatles",
		SortName: "Beatles, The",
	}

	t.Run("DefaultXML", func(t *testing.T) {
		mockService.On("ArtistByGID", mock.Anything, artist.GID).Return(artist, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/ws/1/artist/"+artist.GID, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")
		body := w.Body.String()
		assert.Contains(t, body, `<artist id="`+artist.GID+`">`)
		assert.Contains(t, body, "<name>The Beatles</name>")
		assert.Contains(t, body, "<sort-name>Beatles, The</sort-name>")
	})

	t.Run("JSONViaFmtToken", func(t *testing.T) {
		mockService.On("ArtistByGID", mock.Anything, artist.GID).Return(artist, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/ws/1/artist/"+artist.GID+"?fmt=json", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

		var response map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, artist.GID, response["gid"])
		assert.Equal(t, "The Beatles", response["name"])
	})

	t.Run("NotFoundInNegotiatedFormat", func(t *testing.T) {
		mockService.On("ArtistByGID", mock.Anything, "missing").Return(nil, service.ErrArtistNotFound).Once()

		req, _ := http.NewRequest(http.MethodGet, "/ws/1/artist/missing?fmt=json", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	})
}

func TestWSHandler_GetRelease(t *testing.T) {
	mockService := new(MockCatalogService)
	r := setupWSRouter(t, mockService)

	release := &models.Release{
		ID:         2,
		GID:        "f268b8bc-2768-426b-901b-c7966e76de29",
		Title:      "Abbey Road",
		Attributes: models.AttributeSet{models.AttrAlbum, models.AttrOfficial},
		Artist:     &models.Artist{GID: "b10bbbfc", Name: "The Beatles", SortName: "Beatles, The"},
	}

	mockService.On("ReleaseByGID", mock.Anything, release.GID).Return(release, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/ws/1/release/"+release.GID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	// Attribute codes render as names inside an attribute-list wrapper.
	assert.Contains(t, body, "<attribute-list><attribute>Album</attribute><attribute>Official</attribute></attribute-list>")
	assert.Contains(t, body, "<title>Abbey Road</title>")
}

func TestWSHandler_SearchArtists(t *testing.T) {
	mockService := new(MockCatalogService)
	r := setupWSRouter(t, mockService)

	t.Run("MissingName", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/ws/1/artist", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ListWithCount", func(t *testing.T) {
		results := []models.Artist{
			{GID: "gid-1", Name: "Beatles Tribute", SortName: "Beatles Tribute"},
			{GID: "gid-2", Name: "The Beatles", SortName: "Beatles, The"},
		}
		mockService.On("SearchArtists", mock.Anything, "beatles", 25).Return(results, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/ws/1/artist?name=beatles", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `<artist-list count="2">`)
	})
}
