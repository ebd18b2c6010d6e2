package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	userPort "yatube/internal/ports/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// SessionCookie holds the signed session token.
	SessionCookie = "yatube_session"
	LoginPath     = "/auth/login/"

	viewerKey = "viewer"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*userPort.UserDTO, error)
}

// Authenticate resolves the session cookie into the current viewer. A bad or
// stale token leaves the request anonymous and drops the cookie.
func Authenticate(auth Authenticator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}
		viewer, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug("session rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
			c.Next()
			return
		}
		c.Set(viewerKey, viewer)
		c.Next()
	}
}

// CurrentUser returns the authenticated viewer, if any.
func CurrentUser(c *gin.Context) (*userPort.UserDTO, bool) {
	v, ok := c.Get(viewerKey)
	if !ok {
		return nil, false
	}
	viewer, ok := v.(*userPort.UserDTO)
	return viewer, ok && viewer != nil
}

// ClearUser makes the rest of the request anonymous.
func ClearUser(c *gin.Context) {
	c.Set(viewerKey, nil)
}

// LoginRequired sends anonymous visitors to the login page and back again.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		// جلوگیری از کش شدن صفحات خصوصی
		c.Header("Cache-Control", "no-store, no-cache, must-revalidate, private")
		c.Header("Pragma", "no-cache")

		if _, ok := CurrentUser(c); !ok {
			c.Redirect(http.StatusFound, LoginURL(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoginURL keeps slashes readable in the next parameter.
func LoginURL(next string) string {
	return LoginPath + "?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

// SafeNext accepts only local absolute paths as a post-login target.
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
