package main

import (
	"log"
	"log/slog"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"

	"bloomberg_lite/internal/app/di"
	"bloomberg_lite/internal/app/router"
	authadapters "bloomberg_lite/internal/feature/auth/adapters"
	authhandler "bloomberg_lite/internal/feature/auth/transport/handler"
	authusecase "bloomberg_lite/internal/feature/auth/usecase"
	quotehandler "bloomberg_lite/internal/feature/quotes/transport/handler"
	quoteusecase "bloomberg_lite/internal/feature/quotes/usecase"
	watchlistadapters "bloomberg_lite/internal/feature/watchlist/adapters"
	watchlisthandler "bloomberg_lite/internal/feature/watchlist/transport/handler"
	watchlistusecase "bloomberg_lite/internal/feature/watchlist/usecase"
	"bloomberg_lite/internal/platform/config"
	infradb "bloomberg_lite/internal/platform/db"
	jwtmw "bloomberg_lite/internal/platform/jwt"
	infraredis "bloomberg_lite/internal/platform/redis"
)

func main() {
	cfg := config.Load()

	if !cfg.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set. Set a strong secret in production.")
	}

	// db
	db := infradb.OpenDB(infradb.Config{
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Host:         cfg.DB.Host,
		Port:         cfg.DB.Port,
		Name:         cfg.DB.Name,
		InstanceName: cfg.DB.InstanceName,
	})

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(cfg.Redis); err != nil {
		slog.Warn("Redis unavailable. Running without quote cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	watchlistRepo := watchlistadapters.NewWatchlistRepository(db)
	marketRepo := di.NewMarket(cfg)
	quoteCache := di.NewQuoteCache(rdb, cfg)

	// Usecase
	tokenGen := jwtmw.NewGenerator(cfg.JWTSecret, cfg.TokenExpiry)
	authUC := authusecase.NewAuthUsecase(userRepo, tokenGen)
	quoteUC := quoteusecase.NewQuoteUsecase(marketRepo, quoteCache, cfg.QuoteTTL, cfg.HistoryTTL)
	watchlistUC := watchlistusecase.NewWatchlistUsecase(watchlistRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC, watchlistUC)
	quoteH := quotehandler.NewQuoteHandler(quoteUC)
	watchH := watchlisthandler.NewWatchlistHandler(watchlistUC, quoteUC)

	// ルータ生成
	r := router.NewRouter(cfg, authH, quoteH, watchH)

	addr := cfg.Host + ":" + cfg.Port
	slog.Info("starting server", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
