package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	dbadapter "yatube/internal/adapters/database"
	"yatube/internal/adapters/httpapi"
	"yatube/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the schema and run the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return withApp(ctx, func(a *app) error { return runServe(ctx, a) })
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context, a *app) error {
	if err := dbadapter.AutoMigrate(a.db); err != nil {
		return err
	}
	a.logger.Info("✅ Database migrations completed")

	if a.cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine, err := httpapi.SetupRoutes(a.users, a.groups, a.posts, a.comments, a.followers, httpapi.Options{
		PageCache:     a.cache,
		IndexCacheTTL: a.cfg.IndexCacheTTL,
		MediaRoot:     a.cfg.MediaRoot,
		StaticRoot:    a.cfg.StaticRoot,
		SecureCookies: a.cfg.AppEnv == "production",
		Logger:        a.logger,
	}) // تزریق یوزکیس به آداپتر ورودی
	if err != nil {
		return err
	}

	// اجرای janitor در پس‌زمینه
	if a.sweeper != nil {
		go workers.NewCacheJanitor(a.sweeper, a.cfg.CacheSweepInterval, a.logger).Run(ctx)
	}

	srv := &http.Server{
		Addr:              ":" + a.cfg.AppPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("App is running...", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
