package commands

import (
	"context"
	"fmt"

	dbadapter "yatube/internal/adapters/database"
	"yatube/internal/adapters/memory"
	redisadapter "yatube/internal/adapters/redis"
	"yatube/internal/adapters/storage"
	"yatube/internal/config"
	commentapp "yatube/internal/core/comment/service"
	followerapp "yatube/internal/core/follower/service"
	groupapp "yatube/internal/core/group/service"
	postapp "yatube/internal/core/post/service"
	userapp "yatube/internal/core/user/service"
	pagecachePort "yatube/internal/ports/pagecache"
	"yatube/internal/workers"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const redisCachePrefix = "yatube:cache:"

// app holds the wired dependencies shared by every command.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	redis  *redis.Client

	cache   pagecachePort.Cache
	sweeper workers.Sweeper

	users     *userapp.UserService
	groups    *groupapp.GroupService
	posts     *postapp.PostService
	comments  *commentapp.CommentService
	followers *followerapp.FollowerService
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := config.NewLogger(cfg.AppEnv)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := config.OpenDB(cfg.DBDriver, cfg.DBDSN, logger)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: logger, db: db}

	switch cfg.CacheBackend {
	case "redis":
		client, err := config.NewRedisClient(ctx, cfg)
		if err != nil {
			a.close()
			return nil, err
		}
		a.redis = client
		a.cache = redisadapter.NewPageCacheRedis(client, redisCachePrefix, logger)
	default:
		mem := memory.NewPageCache(nil)
		a.cache = mem
		a.sweeper = mem
	}

	userRepo := dbadapter.NewUserRepositoryDatabase(db)         // آداپتر خروجی
	groupRepo := dbadapter.NewGroupRepositoryDatabase(db)       // آداپتر خروجی
	postRepo := dbadapter.NewPostRepositoryDatabase(db)         // آداپتر خروجی
	commentRepo := dbadapter.NewCommentRepositoryDatabase(db)   // آداپتر خروجی
	followerRepo := dbadapter.NewFollowerRepositoryDatabase(db) // آداپتر خروجی
	media := storage.NewLocalStorage(cfg.MediaRoot)

	a.users = userapp.NewUserService(userRepo, media, []byte(cfg.JWTSecret), logger)
	a.groups = groupapp.NewGroupService(groupRepo, logger)
	a.posts = postapp.NewPostService(postRepo, groupRepo, userRepo, media, cfg.PostsPerPage, logger)
	a.comments = commentapp.NewCommentService(commentRepo, postRepo, logger)
	a.followers = followerapp.NewFollowerService(followerRepo, userRepo, logger)
	return a, nil
}

// close بستن اتصالات به Redis و دیتابیس
func (a *app) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
	if err := config.CloseDB(a.db); err != nil {
		a.logger.Error("Error closing database connection", zap.Error(err))
	}
	_ = a.logger.Sync()
}

// withApp wires the app for one command run and tears it down afterwards.
func withApp(ctx context.Context, fn func(a *app) error) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()
	return fn(a)
}
