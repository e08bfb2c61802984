package service

import (
	"context"

	"github.com/coursematch/recoengine/internal/platform/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ReloadChannel is the pub/sub channel an operator publishes to in order
// to fan a configuration reload out to every running replica without a
// restart.
const ReloadChannel = "config:reload"

// WatchReload subscribes to ReloadChannel and calls store.Reload on every
// message, until ctx is cancelled. Reload failures are logged and do not
// stop the watcher — a bad publish should not wedge a fleet of replicas
// into a crash loop.
func WatchReload(ctx context.Context, rdb *redis.Client, store *ConfigStore, log *logger.Logger) {
	sub := rdb.Subscribe(ctx, ReloadChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := store.Reload(ctx); err != nil {
				log.Error("configuration reload failed",
					zap.String("channel", msg.Channel),
					zap.Error(err),
				)
				continue
			}
			log.Info("configuration reloaded", zap.String("channel", msg.Channel))
		}
	}
}
