package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AboutController struct{ view }

func NewAboutController(logger *zap.Logger) *AboutController {
	return &AboutController{view: view{logger: logger}}
}

func (ctl *AboutController) Author(c *gin.Context) {
	ctl.render(c, http.StatusOK, "about/author.html", gin.H{"title": "About the author"})
}

func (ctl *AboutController) Tech(c *gin.Context) {
	ctl.render(c, http.StatusOK, "about/tech.html", gin.H{"title": "Technologies"})
}
