package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"diary-service/internal/config"
	"diary-service/internal/service"
)

// App holds the shared dependencies handed to the router.
type App struct {
	DB    *pgxpool.Pool
	Cfg   *config.Config
	Log   *zap.Logger
	Diary *service.DiaryService
}
