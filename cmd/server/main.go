package main

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"diary-service/internal/app"
	"diary-service/internal/cache"
	"diary-service/internal/config"
	"diary-service/internal/router"
	"diary-service/internal/server"
)

func main() {
	ctx := context.Background()

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL required")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to db", zap.Error(err))
	}
	defer pool.Close()

	var slotCache *cache.SlotCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, slot cache disabled", zap.Error(err))
		} else {
			slotCache = cache.NewSlotCache(rdb)
		}
	}

	appInstance := &app.App{DB: pool, Cfg: cfg, Log: logger}

	r := router.Build(appInstance, cfg, slotCache)
	if err := server.Run(r, cfg.Port, logger); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
