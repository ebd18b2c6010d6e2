package httpapi

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"yatube/internal/adapters/httpapi/middleware"
	followerPort "yatube/internal/ports/follower"
	groupPort "yatube/internal/ports/group"
	postPort "yatube/internal/ports/post"
	userPort "yatube/internal/ports/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates
var templatesFS embed.FS

var templateFuncs = template.FuncMap{
	"date":         func(t time.Time) string { return t.Format("2 Jan 2006") },
	"mediaURL":     func(path string) string { return "/media/" + path },
	"linebreaksbr": linebreaksbr,
}

func loadTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*/*.html")
}

// linebreaksbr escapes s and turns newlines into <br>.
func linebreaksbr(s string) template.HTML {
	escaped := template.HTMLEscapeString(strings.ReplaceAll(s, "\r\n", "\n"))
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

// view renders pages with the fields every template expects.
type view struct {
	logger *zap.Logger
}

func (v view) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if viewer, ok := middleware.CurrentUser(c); ok {
		data["viewer"] = viewer
	}
	data["csrf_token"] = middleware.CSRFToken(c)
	if _, ok := data["errors"]; !ok {
		data["errors"] = formErrors{}
	}
	if _, ok := data["title"]; !ok {
		data["title"] = "Yatube"
	}
	c.HTML(status, name, data)
}

func (v view) notFound(c *gin.Context) {
	v.render(c, http.StatusNotFound, "core/404.html", gin.H{
		"title": "Page not found",
		"path":  c.Request.URL.Path,
	})
}

func (v view) forbidden(c *gin.Context, reason string) {
	v.render(c, http.StatusForbidden, "core/403.html", gin.H{
		"title":  "Access denied",
		"reason": reason,
	})
}

func (v view) serverError(c *gin.Context, err error) {
	v.logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	_ = c.Error(err)
	v.render(c, http.StatusInternalServerError, "core/500.html", gin.H{"title": "Server error"})
}

// fail maps a service error onto a not-found or a server error page.
func (v view) fail(c *gin.Context, err error) {
	if isNotFound(err) {
		v.notFound(c)
		return
	}
	v.serverError(c, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, postPort.ErrPostNotFound) ||
		errors.Is(err, groupPort.ErrGroupNotFound) ||
		errors.Is(err, userPort.ErrUserNotFound) ||
		errors.Is(err, followerPort.ErrFollowNotFound)
}

func (v view) redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}
