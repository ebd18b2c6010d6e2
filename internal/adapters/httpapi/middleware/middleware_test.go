package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"yatube/internal/adapters/memory"
	userPort "yatube/internal/ports/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAuth map[string]*userPort.UserDTO

func (s stubAuth) Authenticate(_ context.Context, token string) (*userPort.UserDTO, error) {
	if u, ok := s[token]; ok {
		return u, nil
	}
	return nil, userPort.ErrInvalidCredentials
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(auth Authenticator) *gin.Engine {
	r := gin.New()
	r.Use(Authenticate(auth, zap.NewNop()))
	return r
}

func TestLoginURL(t *testing.T) {
	assert.Equal(t, "/auth/login/?next=/create/", LoginURL("/create/"))
	assert.Equal(t, "/auth/login/?next=/follow/%3Fpage%3D2", LoginURL("/follow/?page=2"))
}

func TestSafeNext(t *testing.T) {
	assert.Equal(t, "/create/", SafeNext("/create/"))
	assert.Equal(t, "/", SafeNext(""))
	assert.Equal(t, "/", SafeNext("https://evil.example"))
	assert.Equal(t, "/", SafeNext("//evil.example"))
	assert.Equal(t, "/", SafeNext("/\\evil.example"))
}

func TestLoginRequired_RedirectsAnonymous(t *testing.T) {
	r := newEngine(stubAuth{})
	r.GET("/create/", LoginRequired(), func(c *gin.Context) { c.String(http.StatusOK, "form") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/create/", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next=/create/", w.Header().Get("Location"))
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")
}

func TestLoginRequired_AllowsViewer(t *testing.T) {
	r := newEngine(stubAuth{"good": {ID: "u1", Username: "leo"}})
	r.GET("/create/", LoginRequired(), func(c *gin.Context) {
		u, ok := CurrentUser(c)
		require.True(t, ok)
		c.String(http.StatusOK, u.Username)
	})

	req := httptest.NewRequest(http.MethodGet, "/create/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "good"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "leo", w.Body.String())
}

func TestAuthenticate_DropsBadCookie(t *testing.T) {
	r := newEngine(stubAuth{})
	r.GET("/", func(c *gin.Context) {
		_, ok := CurrentUser(c)
		assert.False(t, ok)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "forged"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), SessionCookie+"=;")
}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func TestCachePage_ServesStaleUntilExpiry(t *testing.T) {
	clk := &clock{now: time.Date(2022, 10, 13, 0, 0, 0, 0, time.UTC)}
	cache := memory.NewPageCache(clk.Now)
	counter := 0

	r := newEngine(stubAuth{})
	r.GET("/", CachePage(cache, 20*time.Second, "index_page", zap.NewNop()), func(c *gin.Context) {
		counter++
		c.String(http.StatusOK, "render %d", counter)
	})

	get := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		return w
	}

	first := get()
	assert.Equal(t, "render 1", first.Body.String())
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	clk.now = clk.now.Add(10 * time.Second)
	second := get()
	assert.Equal(t, "render 1", second.Body.String())
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))

	clk.now = clk.now.Add(11 * time.Second)
	assert.Equal(t, "render 2", get().Body.String())

	require.NoError(t, cache.Clear(context.Background()))
	assert.Equal(t, "render 3", get().Body.String())
}

func TestCachePage_KeysByViewerAndURI(t *testing.T) {
	cache := memory.NewPageCache(nil)
	r := newEngine(stubAuth{"tok": {ID: "u1", Username: "leo"}})
	r.GET("/", CachePage(cache, time.Minute, "index_page", zap.NewNop()), func(c *gin.Context) {
		c.String(http.StatusOK, "page %s", c.Query("page"))
	})

	anon := httptest.NewRecorder()
	r.ServeHTTP(anon, httptest.NewRequest(http.MethodGet, "/?page=2", nil))

	req := httptest.NewRequest(http.MethodGet, "/?page=2", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "tok"})
	authed := httptest.NewRecorder()
	r.ServeHTTP(authed, req)

	assert.Equal(t, "MISS", authed.Header().Get("X-Cache"))
	assert.Equal(t, 2, cache.Len())

	ctx := context.Background()
	_, ok, err := cache.Get(ctx, "index_page:anonymous:/?page=2")
	require.NoError(t, err)
	assert.True(t, ok)
	_, ok, err = cache.Get(ctx, "index_page:u1:/?page=2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCachePage_SkipsErrorResponses(t *testing.T) {
	cache := memory.NewPageCache(nil)
	r := newEngine(stubAuth{})
	r.GET("/", CachePage(cache, time.Minute, "index_page", zap.NewNop()), func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
		c.String(http.StatusInternalServerError, "oops")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Zero(t, cache.Len())
}
