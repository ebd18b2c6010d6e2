package httpapi

import (
	"errors"
	"net/http"

	"yatube/internal/adapters/httpapi/middleware"
	followerPort "yatube/internal/ports/follower"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FollowerController struct {
	view
	followers FollowerUseCase
	posts     PostUseCase
}

func NewFollowerController(followers FollowerUseCase, posts PostUseCase, logger *zap.Logger) *FollowerController {
	return &FollowerController{
		view:      view{logger: logger},
		followers: followers,
		posts:     posts,
	}
}

// FollowIndex lists posts by the authors the viewer follows.
func (ctl *FollowerController) FollowIndex(c *gin.Context) {
	viewer, _ := middleware.CurrentUser(c)
	page, err := ctl.posts.FollowFeed(c.Request.Context(), viewer.ID, c.Query("page"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ctl.render(c, http.StatusOK, "posts/follow.html", gin.H{
		"title":    "Following",
		"page_obj": page,
	})
}

func (ctl *FollowerController) FollowUser(c *gin.Context) {
	viewer, _ := middleware.CurrentUser(c)
	username := c.Param("username")

	err := ctl.followers.FollowUser(c.Request.Context(), viewer.ID, username)
	switch {
	case err == nil:
		ctl.redirect(c, "/profile/"+username+"/")
	case errors.Is(err, followerPort.ErrSelfFollow):
		ctl.forbidden(c, "You cannot follow yourself.")
	case errors.Is(err, followerPort.ErrAlreadyFollowing), errors.Is(err, followerPort.ErrIntegrity):
		// درج همزمان دو دنبال‌کردن هم به همین‌جا می‌رسد
		ctl.forbidden(c, "You already follow this author.")
	default:
		ctl.fail(c, err)
	}
}

func (ctl *FollowerController) UnfollowUser(c *gin.Context) {
	viewer, _ := middleware.CurrentUser(c)
	username := c.Param("username")

	if err := ctl.followers.UnfollowUser(c.Request.Context(), viewer.ID, username); err != nil {
		ctl.fail(c, err)
		return
	}
	ctl.redirect(c, "/profile/"+username+"/")
}
