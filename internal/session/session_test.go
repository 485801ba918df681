package session

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupManager(t *testing.T) *Manager {
	t.Helper()

	db, err := OpenStore(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewManager(db, config.Session{Lifetime: time.Hour})
}

func TestNewManager(t *testing.T) {
	m := setupManager(t)

	assert.Equal(t, "catalog_session", m.Cookie.Name)
	assert.True(t, m.Cookie.HttpOnly)
	assert.False(t, m.Cookie.Secure)
	assert.Equal(t, time.Hour, m.Lifetime)
	assert.Equal(t, 30*time.Minute, m.IdleTimeout)
}

func TestWorkspaceKey_StableAcrossRequests(t *testing.T) {
	m := setupManager(t)

	router := gin.New()
	router.Use(m.LoadSave())
	router.GET("/key", func(c *gin.Context) {
		c.String(http.StatusOK, m.WorkspaceKey(c.Request))
	})

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/key", nil))
	require.Equal(t, http.StatusOK, first.Code)
	key := first.Body.String()
	require.NotEmpty(t, key)

	cookies := first.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "catalog_session", cookies[0].Name)

	req := httptest.NewRequest(http.MethodGet, "/key", nil)
	req.AddCookie(cookies[0])
	second := httptest.NewRecorder()
	router.ServeHTTP(second, req)
	assert.Equal(t, key, second.Body.String())

	third := httptest.NewRecorder()
	router.ServeHTTP(third, httptest.NewRequest(http.MethodGet, "/key", nil))
	assert.NotEqual(t, key, third.Body.String())
}

func TestCSRFMiddleware(t *testing.T) {
	secret := []byte("test-secret-key-32-bytes-long!!!")

	router := gin.New()
	router.Use(CSRFMiddleware(secret, false))
	router.GET("/form", func(c *gin.Context) {
		c.String(http.StatusOK, Token(c))
	})
	router.POST("/submit", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	t.Run("GET issues a token", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/form", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotEmpty(t, rr.Body.String())
	})

	t.Run("POST without token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.Header.Set("Accept", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Contains(t, rr.Body.String(), "CSRF token invalid")
	})

	t.Run("HTMX POST without token raises a toast", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.Header.Set("HX-Request", "true")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Contains(t, rr.Header().Get("HX-Trigger"), "showToast")
	})

	t.Run("POST with header token passes", func(t *testing.T) {
		get := httptest.NewRecorder()
		router.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/form", nil))
		token := get.Body.String()

		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.Header.Set(TokenHeader, token)
		for _, cookie := range get.Result().Cookies() {
			req.AddCookie(cookie)
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("POST with form field token passes", func(t *testing.T) {
		get := httptest.NewRecorder()
		router.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/form", nil))

		form := url.Values{FieldName: {get.Body.String()}}
		req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		for _, cookie := range get.Result().Cookies() {
			req.AddCookie(cookie)
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeadersMiddleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, rr.Header().Get("Content-Security-Policy"), "https://unpkg.com")
}
