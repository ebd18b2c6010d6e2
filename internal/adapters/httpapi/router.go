package httpapi

import (
	"context"
	"fmt"
	"time"

	"yatube/internal/adapters/httpapi/middleware"
	commentPort "yatube/internal/ports/comment"
	groupPort "yatube/internal/ports/group"
	pagecachePort "yatube/internal/ports/pagecache"
	postPort "yatube/internal/ports/post"
	userPort "yatube/internal/ports/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IndexCachePrefix prefixes cache keys of the home page.
const IndexCachePrefix = "index_page"

// UserUseCase: اینترفیسِ لازم برای کنترلر/روتر (Inbound Port)
type UserUseCase interface {
	RegisterUser(ctx context.Context, in userPort.SignupInput) (*userPort.UserDTO, error)
	LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error)
	Authenticate(ctx context.Context, token string) (*userPort.UserDTO, error)
}

type GroupUseCase interface {
	ListGroups(ctx context.Context) ([]*groupPort.GroupDTO, error)
}

type PostUseCase interface {
	Index(ctx context.Context, page string) (*postPort.PostPage, error)
	GroupFeed(ctx context.Context, slug, page string) (*groupPort.GroupDTO, *postPort.PostPage, error)
	ProfileFeed(ctx context.Context, username, page string) (*postPort.Profile, error)
	FollowFeed(ctx context.Context, userID, page string) (*postPort.PostPage, error)
	GetPost(ctx context.Context, id uint) (*postPort.PostDTO, error)
	CountByAuthor(ctx context.Context, authorID string) (int64, error)
	CreatePost(ctx context.Context, authorID string, in postPort.PostInput) (*postPort.PostDTO, error)
	UpdatePost(ctx context.Context, id uint, editorID string, in postPort.PostInput) (*postPort.PostDTO, error)
}

type CommentUseCase interface {
	AddComment(ctx context.Context, postID uint, authorID, text string) (*commentPort.CommentDTO, error)
	ListByPost(ctx context.Context, postID uint) ([]*commentPort.CommentDTO, error)
}

type FollowerUseCase interface {
	FollowUser(ctx context.Context, followerID, authorUsername string) error
	UnfollowUser(ctx context.Context, followerID, authorUsername string) error
	IsFollowing(ctx context.Context, followerID, authorID string) (bool, error)
	Counts(ctx context.Context, userID string) (followers, following int, err error)
}

type Options struct {
	PageCache     pagecachePort.Cache
	IndexCacheTTL time.Duration
	MediaRoot     string
	StaticRoot    string
	SecureCookies bool
	Logger        *zap.Logger
}

// فقط روتینگ: UseCase از بیرون تزریق می‌شود
func SetupRoutes(
	userUC UserUseCase,
	groupUC GroupUseCase,
	postUC PostUseCase,
	commentUC CommentUseCase,
	followerUC FollowerUseCase,
	opts Options,
) (*gin.Engine, error) {
	if opts.PageCache == nil {
		return nil, fmt.Errorf("page cache is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	registerValidators()

	r := gin.New()
	r.Use(middleware.Logger(logger), gin.Recovery())
	pages := view{logger: logger}
	r.Use(middleware.Authenticate(userUC, logger))
	r.Use(middleware.CSRF(opts.SecureCookies, func(c *gin.Context) {
		pages.forbidden(c, "CSRF verification failed. Request aborted.")
	}, logger))
	r.SetHTMLTemplate(tmpl)

	if opts.StaticRoot != "" {
		r.Static("/static", opts.StaticRoot)
	}
	if opts.MediaRoot != "" {
		r.Static("/media", opts.MediaRoot)
	}

	uc := NewUserController(userUC, opts.SecureCookies, logger)
	pc := NewPostController(postUC, groupUC, commentUC, followerUC, logger)
	fc := NewFollowerController(followerUC, postUC, logger)
	ac := NewAboutController(logger)
	login := middleware.LoginRequired()

	// صفحه اصلی برای مدت کوتاهی کش می‌شود
	indexCache := middleware.CachePage(opts.PageCache, opts.IndexCacheTTL, IndexCachePrefix, logger)
	r.GET("/", indexCache, pc.Index)
	r.HEAD("/", indexCache, pc.Index)
	r.GET("/group/:slug/", pc.GroupPosts)
	r.GET("/profile/:username/", pc.Profile)
	r.GET("/posts/:post_id/", pc.PostDetail)

	r.GET("/create/", login, pc.CreateForm)
	r.POST("/create/", login, pc.Create)
	r.GET("/posts/:post_id/edit/", login, pc.EditForm)
	r.POST("/posts/:post_id/edit/", login, pc.Edit)
	r.POST("/posts/:post_id/comment/", login, pc.AddComment)

	r.GET("/follow/", login, fc.FollowIndex)
	r.GET("/profile/:username/follow/", login, fc.FollowUser)
	r.GET("/profile/:username/unfollow/", login, fc.UnfollowUser)

	auth := r.Group("/auth")
	auth.GET("/signup/", uc.SignupForm)
	auth.POST("/signup/", uc.Signup)
	auth.GET("/login/", uc.LoginForm)
	auth.POST("/login/", uc.Login)
	auth.GET("/logout/", uc.Logout)

	r.GET("/about/author/", ac.Author)
	r.GET("/about/tech/", ac.Tech)

	r.NoRoute(pages.notFound)

	return r, nil
}
