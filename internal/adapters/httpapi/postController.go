package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"yatube/internal/adapters/httpapi/middleware"
	groupPort "yatube/internal/ports/group"
	mediaPort "yatube/internal/ports/media"
	postPort "yatube/internal/ports/post"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PostController struct {
	view
	posts     PostUseCase
	groups    GroupUseCase
	comments  CommentUseCase
	followers FollowerUseCase
}

func NewPostController(posts PostUseCase, groups GroupUseCase, comments CommentUseCase, followers FollowerUseCase, logger *zap.Logger) *PostController {
	return &PostController{
		view:      view{logger: logger},
		posts:     posts,
		groups:    groups,
		comments:  comments,
		followers: followers,
	}
}

func (ctl *PostController) Index(c *gin.Context) {
	page, err := ctl.posts.Index(c.Request.Context(), c.Query("page"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ctl.render(c, http.StatusOK, "posts/index.html", gin.H{
		"title":    "Latest updates",
		"page_obj": page,
	})
}

func (ctl *PostController) GroupPosts(c *gin.Context) {
	group, page, err := ctl.posts.GroupFeed(c.Request.Context(), c.Param("slug"), c.Query("page"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ctl.render(c, http.StatusOK, "posts/group_list.html", gin.H{
		"title":    group.Title,
		"group":    group,
		"page_obj": page,
	})
}

func (ctl *PostController) Profile(c *gin.Context) {
	ctx := c.Request.Context()
	profile, err := ctl.posts.ProfileFeed(ctx, c.Param("username"), c.Query("page"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	followers, following, err := ctl.followers.Counts(ctx, profile.Author.ID)
	if err != nil {
		ctl.serverError(c, err)
		return
	}

	data := gin.H{
		"title":           "Profile of " + profile.Author.FullName,
		"author":          profile.Author,
		"posts_count":     profile.PostsCount,
		"page_obj":        profile.Posts,
		"followers_count": followers,
		"following_count": following,
		"can_follow":      false,
		"following":       false,
	}
	if viewer, ok := middleware.CurrentUser(c); ok && viewer.ID != profile.Author.ID {
		isFollowing, err := ctl.followers.IsFollowing(ctx, viewer.ID, profile.Author.ID)
		if err != nil {
			ctl.serverError(c, err)
			return
		}
		data["can_follow"] = true
		data["following"] = isFollowing
	}
	ctl.render(c, http.StatusOK, "posts/profile.html", data)
}

func (ctl *PostController) PostDetail(c *gin.Context) {
	post, ok := ctl.loadPost(c)
	if !ok {
		return
	}
	ctl.renderDetail(c, post, commentForm{}, nil)
}

func (ctl *PostController) renderDetail(c *gin.Context, post *postPort.PostDTO, form commentForm, errs formErrors) {
	ctx := c.Request.Context()
	comments, err := ctl.comments.ListByPost(ctx, post.ID)
	if err != nil {
		ctl.serverError(c, err)
		return
	}
	count, err := ctl.posts.CountByAuthor(ctx, post.Author.ID)
	if err != nil {
		ctl.serverError(c, err)
		return
	}
	viewer, ok := middleware.CurrentUser(c)
	if errs == nil {
		errs = formErrors{}
	}
	ctl.render(c, http.StatusOK, "posts/post_detail.html", gin.H{
		"title":        post.Excerpt,
		"post":         post,
		"posts_count":  count,
		"comments":     comments,
		"comment_form": form,
		"errors":       errs,
		"can_edit":     ok && viewer.ID == post.Author.ID,
	})
}

// loadPost resolves :post_id and renders 404 when it is malformed or unknown.
func (ctl *PostController) loadPost(c *gin.Context) (*postPort.PostDTO, bool) {
	id, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || id == 0 {
		ctl.notFound(c)
		return nil, false
	}
	post, err := ctl.posts.GetPost(c.Request.Context(), uint(id))
	if err != nil {
		ctl.fail(c, err)
		return nil, false
	}
	return post, true
}

func (ctl *PostController) CreateForm(c *gin.Context) {
	ctl.renderPostForm(c, gin.H{"form": postForm{}})
}

func (ctl *PostController) Create(c *gin.Context) {
	viewer, _ := middleware.CurrentUser(c)

	in, form, errs := ctl.readPostForm(c)
	if len(errs) > 0 {
		ctl.renderPostForm(c, gin.H{"form": form, "errors": errs})
		return
	}
	if _, err := ctl.posts.CreatePost(c.Request.Context(), viewer.ID, in); err != nil {
		if errs := postErrors(err); errs != nil {
			ctl.renderPostForm(c, gin.H{"form": form, "errors": errs})
			return
		}
		ctl.serverError(c, err)
		return
	}
	ctl.redirect(c, "/profile/"+viewer.Username+"/")
}

func (ctl *PostController) EditForm(c *gin.Context) {
	post, ok := ctl.editablePost(c)
	if !ok {
		return
	}
	form := postForm{Text: post.Text}
	if post.Group != nil {
		form.Group = strconv.FormatUint(uint64(post.Group.ID), 10)
	}
	ctl.renderPostForm(c, gin.H{
		"form":    form,
		"is_edit": true,
		"post_id": post.ID,
		"image":   post.Image,
	})
}

func (ctl *PostController) Edit(c *gin.Context) {
	post, ok := ctl.editablePost(c)
	if !ok {
		return
	}
	viewer, _ := middleware.CurrentUser(c)
	editData := func(form postForm, errs formErrors) gin.H {
		return gin.H{"form": form, "errors": errs, "is_edit": true, "post_id": post.ID, "image": post.Image}
	}

	in, form, errs := ctl.readPostForm(c)
	if len(errs) > 0 {
		ctl.renderPostForm(c, editData(form, errs))
		return
	}
	if _, err := ctl.posts.UpdatePost(c.Request.Context(), post.ID, viewer.ID, in); err != nil {
		if errors.Is(err, postPort.ErrNotPostAuthor) {
			ctl.redirect(c, postURL(post.ID))
			return
		}
		if errs := postErrors(err); errs != nil {
			ctl.renderPostForm(c, editData(form, errs))
			return
		}
		ctl.fail(c, err)
		return
	}
	ctl.redirect(c, postURL(post.ID))
}

// editablePost loads the post and silently sends anyone but its author back
// to the detail page.
func (ctl *PostController) editablePost(c *gin.Context) (*postPort.PostDTO, bool) {
	post, ok := ctl.loadPost(c)
	if !ok {
		return nil, false
	}
	viewer, _ := middleware.CurrentUser(c)
	if viewer == nil || viewer.ID != post.Author.ID {
		ctl.redirect(c, postURL(post.ID))
		return nil, false
	}
	return post, true
}

func (ctl *PostController) readPostForm(c *gin.Context) (postPort.PostInput, postForm, formErrors) {
	var form postForm
	if err := c.ShouldBind(&form); err != nil {
		return postPort.PostInput{}, form, bindErrors(err)
	}
	upload, err := readUpload(c, "image")
	if err != nil {
		return postPort.PostInput{}, form, formErrors{"image": imageMessage(err)}
	}
	return postPort.PostInput{
		Text:       form.Text,
		GroupID:    form.groupID(),
		Image:      upload,
		ClearImage: form.ImageClear != "",
	}, form, nil
}

func (ctl *PostController) renderPostForm(c *gin.Context, data gin.H) {
	groups, err := ctl.groups.ListGroups(c.Request.Context())
	if err != nil {
		ctl.serverError(c, err)
		return
	}
	data["groups"] = groups
	if edit, _ := data["is_edit"].(bool); edit {
		data["title"] = "Edit post"
	} else {
		data["title"] = "New post"
		data["is_edit"] = false
	}
	ctl.render(c, http.StatusOK, "posts/create_post.html", data)
}

// postErrors turns validation failures reported by the post service into
// form errors; nil means err is not a validation failure.
func postErrors(err error) formErrors {
	switch {
	case errors.Is(err, postPort.ErrEmptyText):
		return formErrors{"text": "This field is required."}
	case errors.Is(err, groupPort.ErrGroupNotFound):
		return formErrors{"group": "Select a valid choice."}
	case errors.Is(err, mediaPort.ErrNotImage):
		return formErrors{"image": imageMessage(err)}
	}
	return nil
}

func imageMessage(err error) string {
	switch {
	case errors.Is(err, mediaPort.ErrNotImage):
		return "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
	case errors.Is(err, errImageTooLarge):
		return "The image is too large."
	default:
		return "The file could not be read."
	}
}

func postURL(id uint) string {
	return fmt.Sprintf("/posts/%d/", id)
}
