package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "bloomberg_lite/internal/feature/auth/transport/handler"
	quotehandler "bloomberg_lite/internal/feature/quotes/transport/handler"
	watchlisthandler "bloomberg_lite/internal/feature/watchlist/transport/handler"
	"bloomberg_lite/internal/platform/config"
	"bloomberg_lite/internal/platform/http/handler"
	jwtmw "bloomberg_lite/internal/platform/jwt"
)

// NewRouter はすべてのエンドポイントを登録したginエンジンを生成します。
func NewRouter(cfg config.Config, authH *authhandler.AuthHandler, quoteH *quotehandler.QuoteHandler,
	watchH *watchlisthandler.WatchlistHandler) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(corsConfig(cfg)))

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録
	r.POST("/register", authH.Register)
	// ログイン（トークン発行、フォームエンコード）
	r.POST("/token", authH.Token)

	// 認証必須のルート
	// リクエストヘッダーにベアラートークンが必要になる
	api := r.Group("/api")
	api.Use(jwtmw.AuthRequired(cfg.JWTSecret))
	{
		api.GET("/validate-token", authH.ValidateToken)
		api.GET("/user/profile", authH.Profile)
		api.GET("/stock/:symbol", quoteH.GetQuote)
		api.GET("/stock/:symbol/chart", quoteH.GetChart)
		api.GET("/watchlist", watchH.Get)
		api.GET("/watchlist/data", watchH.Data)
		api.POST("/watchlist/add", watchH.Add)
		api.DELETE("/watchlist/remove", watchH.Remove)
	}

	return r
}

// corsConfig は設定からCORSミドルウェアの構成を組み立てます。
// ワイルドカードオリジンの場合、認証情報付きリクエストは許可できません。
func corsConfig(cfg config.Config) cors.Config {
	c := cors.Config{
		AllowMethods: cfg.CORSMethods,
		AllowHeaders: cfg.CORSHeaders,
	}
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.CORSOrigins
		c.AllowCredentials = true
	}
	return c
}
