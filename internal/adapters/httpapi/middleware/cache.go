package middleware

import (
	"bytes"
	"net/http"
	"time"

	pagecachePort "yatube/internal/ports/pagecache"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const anonymous = "anonymous"

type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CacheKey is the key a page is stored under for this viewer and URI.
func CacheKey(prefix string, c *gin.Context) string {
	viewer := anonymous
	if u, ok := CurrentUser(c); ok {
		viewer = u.ID
	}
	return prefix + ":" + viewer + ":" + c.Request.URL.RequestURI()
}

// CachePage serves whole rendered pages from cache for ttl. Writes elsewhere
// in the app do not invalidate it.
func CachePage(cache pagecachePort.Cache, ttl time.Duration, prefix string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Next()
			return
		}

		key := CacheKey(prefix, c)
		page, ok, err := cache.Get(c.Request.Context(), key)
		if err != nil {
			logger.Warn("page cache read failed", zap.String("key", key), zap.Error(err))
		}
		if ok {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "text/html; charset=utf-8", page)
			c.Abort()
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Header("X-Cache", "MISS")
		c.Next()

		if rec.Status() != http.StatusOK {
			return
		}
		if err := cache.Set(c.Request.Context(), key, rec.body.Bytes(), ttl); err != nil {
			logger.Warn("page cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
}
