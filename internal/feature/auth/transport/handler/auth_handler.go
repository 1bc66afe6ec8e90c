// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"bloomberg_lite/internal/api"
	"bloomberg_lite/internal/feature/auth/domain/entity"
	"bloomberg_lite/internal/feature/auth/transport/http/dto"
	"bloomberg_lite/internal/feature/auth/usecase"
	jwtmw "bloomberg_lite/internal/platform/jwt"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は指定されたユーザー名・メールアドレス・パスワードで新規ユーザーを登録します。
	Register(ctx context.Context, username, email, password string) error
	// Login はユーザーを認証し、成功時に署名済みトークンを返します。
	Login(ctx context.Context, username, password string) (string, error)
	// Profile は指定されたユーザー名のユーザー情報を取得します。
	Profile(ctx context.Context, username string) (*entity.User, error)
}

// WatchlistLister は認証済みユーザーのウォッチリスト名一覧を取得します。
// プロファイル表示のためにwatchlistフィーチャーのユースケースが実装します。
type WatchlistLister interface {
	ListNames(ctx context.Context, userID uint) ([]string, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth       AuthUsecase
	watchlists WatchlistLister
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からユースケースを注入します。
func NewAuthHandler(auth AuthUsecase, watchlists WatchlistLister) *AuthHandler {
	return &AuthHandler{auth: auth, watchlists: watchlists}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - リクエストJSONをRegisterRequestにバインド
// - バリデーションエラー時は400を返却
// - ユーザー名またはメールアドレスの重複時は409を返却
// - 成功時は201を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	if err := h.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password); err != nil {
		slog.Warn("register failed", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
		switch {
		case errors.Is(err, usecase.ErrUsernameTaken):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "username already registered"})
		case errors.Is(err, usecase.ErrEmailTaken):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "email already registered"})
		case errors.Is(err, usecase.ErrUserAlreadyExists):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "user already registered"})
		default:
			// 内部エラーの詳細は公開しない
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "registration failed"})
		}
		return
	}
	slog.Info("user registered", "username", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.MessageResponse{Message: "User created successfully"})
}

// Token はログインAPIエンドポイントを処理します。
// - フォームエンコードされた認証情報をTokenRequestにバインド
// - バリデーションエラー時は400を返却
// - 認証失敗時は401を返却（どのフィールドが誤りかは開示しない）
// - 認証成功時はベアラートークン付きで200を返却
func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("token validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		// ユーザー列挙攻撃を防止するため、常に同じメッセージを返す
		slog.Warn("login failed", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "incorrect username or password"})
		return
	}
	slog.Info("user login successful", "username", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// ValidateToken は認証ミドルウェアを通過したトークンの情報を返します。
// ミドルウェアが検証済みなので、ここに到達した時点でトークンは有効です。
func (h *AuthHandler) ValidateToken(c *gin.Context) {
	username := c.GetString(jwtmw.ContextUsername)
	c.JSON(http.StatusOK, dto.ValidateResponse{Valid: true, Username: username})
}

// Profile は認証済みユーザーのプロファイルを返します。
func (h *AuthHandler) Profile(c *gin.Context) {
	username := c.GetString(jwtmw.ContextUsername)

	user, err := h.auth.Profile(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			// トークンは有効だがユーザーが削除されている場合
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "not authenticated"})
			return
		}
		slog.Error("profile lookup failed", "username", username, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	names, err := h.watchlists.ListNames(c.Request.Context(), user.ID)
	if err != nil {
		slog.Error("watchlist name lookup failed", "username", username, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{
		Username:   user.Username,
		Email:      user.Email,
		Watchlists: names,
	})
}
