package middleware

import (
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

const (
	// CSRFCookie carries the per-browser token; forms echo it in CSRFField.
	CSRFCookie = "csrftoken"
	CSRFField  = "csrfmiddlewaretoken"
	CSRFHeader = "X-CSRFToken"

	csrfKey    = "csrf_token"
	csrfMaxAge = 365 * 24 * 60 * 60
)

// CSRF gives every browser a token cookie and rejects unsafe requests that do
// not send the same token back. Rejected requests are handed to deny.
func CSRF(secure bool, deny gin.HandlerFunc, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CSRFCookie)
		fresh := err != nil || !validCSRFToken(token)
		if fresh {
			if token, err = newCSRFToken(); err != nil {
				logger.Error("could not generate csrf token", zap.Error(err))
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CSRFCookie, token, csrfMaxAge, "/", "", secure, true)
		}
		c.Set(csrfKey, token)

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
			c.Next()
			return
		}

		sent := c.GetHeader(CSRFHeader)
		if sent == "" {
			sent = c.PostForm(CSRFField)
		}
		if fresh || subtle.ConstantTimeCompare([]byte(sent), []byte(token)) != 1 {
			logger.Warn("csrf check failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Bool("cookieMissing", fresh),
			)
			deny(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CSRFToken is the token forms rendered for this request must carry.
func CSRFToken(c *gin.Context) string {
	return c.GetString(csrfKey)
}

func newCSRFToken() (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(id.String(), "-", ""), nil
}

func validCSRFToken(token string) bool {
	if len(token) != 32 {
		return false
	}
	_, err := hex.DecodeString(token)
	return err == nil
}
