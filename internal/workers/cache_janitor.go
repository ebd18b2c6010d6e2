package workers

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const defaultSweepInterval = time.Minute

// Sweeper drops expired entries and reports how many it dropped.
type Sweeper interface {
	Sweep() int
}

type CacheJanitor struct {
	Cache    Sweeper
	Interval time.Duration
	Logger   *zap.Logger
}

func NewCacheJanitor(cache Sweeper, interval time.Duration, logger *zap.Logger) *CacheJanitor {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &CacheJanitor{
		Cache:    cache,
		Interval: interval,
		Logger:   logger,
	}
}

// Run پاک‌سازی دوره‌ای کش تا زمان لغو context
func (w *CacheJanitor) Run(ctx context.Context) {
	w.Logger.Info("🚀 CacheJanitor started", zap.Duration("interval", w.Interval))
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("🛑 CacheJanitor stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *CacheJanitor) sweep() int {
	removed := w.Cache.Sweep()
	if removed > 0 {
		w.Logger.Debug("expired pages removed", zap.Int("count", removed))
	}
	return removed
}
