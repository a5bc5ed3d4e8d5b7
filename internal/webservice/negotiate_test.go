package webservice

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNegotiator(t *testing.T) *Negotiator {
	t.Helper()
	n, err := NewNegotiator(XMLSerializer{}, JSONSerializer{})
	require.NoError(t, err)
	return n
}

func TestNewNegotiator(t *testing.T) {
	t.Run("RejectsEmptyRegistry", func(t *testing.T) {
		_, err := NewNegotiator()
		assert.Error(t, err)
	})

	t.Run("RejectsDuplicateToken", func(t *testing.T) {
		_, err := NewNegotiator(XMLSerializer{}, XMLSerializer{})
		assert.Error(t, err)
	})
}

func TestNegotiatorSelect(t *testing.T) {
	n := newTestNegotiator(t)

	t.Run("TokenBeatsHeader", func(t *testing.T) {
		// Explicit token wins even when the header wants something else.
		s, err := n.Select("json", "application/xml")
		require.NoError(t, err)
		assert.Equal(t, "json", s.Fmt())
	})

	t.Run("UnknownTokenIsHardFailure", func(t *testing.T) {
		// An unrecognized token never falls back to the Accept header.
		_, err := n.Select("yaml", "application/json")
		assert.ErrorIs(t, err, ErrNotAcceptable)
	})

	t.Run("MissingHeaderDefaultsToXML", func(t *testing.T) {
		s, err := n.Select("", "")
		require.NoError(t, err)
		assert.Equal(t, "xml", s.Fmt())
	})

	t.Run("HeaderNegotiation", func(t *testing.T) {
		s, err := n.Select("", "application/json")
		require.NoError(t, err)
		assert.Equal(t, "json", s.Fmt())
	})

	t.Run("QualityValuesDecide", func(t *testing.T) {
		s, err := n.Select("", "application/xml;q=0.3, application/json;q=0.9")
		require.NoError(t, err)
		assert.Equal(t, "json", s.Fmt())
	})

	t.Run("UnsatisfiableHeader", func(t *testing.T) {
		_, err := n.Select("", "text/html")
		assert.ErrorIs(t, err, ErrNotAcceptable)
	})
}

func setupNegotiatedRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	n := newTestNegotiator(t)

	r := gin.New()
	ws := r.Group("/ws/1")
	ws.Use(n.Middleware())
	ws.GET("/ping", func(c *gin.Context) {
		MustSerializer(c).Write(c, http.StatusOK, gin.H{"message": "pong"})
	})
	return r
}

func TestNegotiatorMiddleware(t *testing.T) {
	r := setupNegotiatedRouter(t)

	t.Run("DefaultIsXML", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/ws/1/ping", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")
	})

	t.Run("FmtTokenSelectsJSON", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/ws/1/ping?fmt=json", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	})

	t.Run("AcceptHeaderSelectsJSON", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/ws/1/ping", nil)
		req.Header.Set("Accept", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	})

	t.Run("UnknownTokenWrites406InFirstFormat", func(t *testing.T) {
		// Even with a perfectly good Accept header, a bad token aborts
		// with a 406 rendered by the first registered serializer.
		req, _ := http.NewRequest(http.MethodGet, "/ws/1/ping?fmt=yaml", nil)
		req.Header.Set("Accept", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotAcceptable, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")
		assert.True(t, strings.Contains(w.Body.String(), "<error>"))
		assert.Contains(t, w.Body.String(), "valid formats are")
	})

	t.Run("UnsatisfiableAcceptWrites406", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/ws/1/ping", nil)
		req.Header.Set("Accept", "text/html")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotAcceptable, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")
	})
}
