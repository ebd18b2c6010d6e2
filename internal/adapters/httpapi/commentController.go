package httpapi

import (
	"errors"

	"yatube/internal/adapters/httpapi/middleware"
	postPort "yatube/internal/ports/post"

	"github.com/gin-gonic/gin"
)

// AddComment redirects back to the post only when the comment was saved;
// an invalid form is shown again on the detail page.
func (ctl *PostController) AddComment(c *gin.Context) {
	post, ok := ctl.loadPost(c)
	if !ok {
		return
	}
	viewer, _ := middleware.CurrentUser(c)

	var form commentForm
	if err := c.ShouldBind(&form); err != nil {
		ctl.renderDetail(c, post, form, bindErrors(err))
		return
	}
	if _, err := ctl.comments.AddComment(c.Request.Context(), post.ID, viewer.ID, form.Text); err != nil {
		if errors.Is(err, postPort.ErrEmptyText) {
			ctl.renderDetail(c, post, form, formErrors{"text": "This field is required."})
			return
		}
		ctl.fail(c, err)
		return
	}
	ctl.redirect(c, postURL(post.ID))
}
