// Package handler はwatchlistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"bloomberg_lite/internal/api"
	quotesentity "bloomberg_lite/internal/feature/quotes/domain/entity"
	quotesdto "bloomberg_lite/internal/feature/quotes/transport/http/dto"
	"bloomberg_lite/internal/feature/watchlist/domain/entity"
	"bloomberg_lite/internal/feature/watchlist/transport/http/dto"
	"bloomberg_lite/internal/feature/watchlist/usecase"
	jwtmw "bloomberg_lite/internal/platform/jwt"
)

// WatchlistUsecase はウォッチリスト操作のユースケースインターフェースを定義します。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type WatchlistUsecase interface {
	Get(ctx context.Context, userID uint) (*entity.Watchlist, error)
	Add(ctx context.Context, userID uint, symbol string) (bool, error)
	Remove(ctx context.Context, userID uint, symbol string) (bool, error)
}

// QuoteFetcher はウォッチリスト内の全銘柄のクオートを一括取得します。
// quotesフィーチャーのユースケースが実装します。
type QuoteFetcher interface {
	GetQuotes(ctx context.Context, symbols []string) (map[string]*quotesentity.Quote, error)
}

// WatchlistHandler はウォッチリストのHTTPリクエストを処理します。
type WatchlistHandler struct {
	uc     WatchlistUsecase
	quotes QuoteFetcher
}

// NewWatchlistHandler は指定されたusecaseでWatchlistHandlerの新しいインスタンスを生成します。
func NewWatchlistHandler(uc WatchlistUsecase, quotes QuoteFetcher) *WatchlistHandler {
	return &WatchlistHandler{uc: uc, quotes: quotes}
}

// Get は認証済みユーザーのデフォルトウォッチリストを返します。
// ウォッチリストが存在しない場合は空のリストが遅延作成されるため、404にはなりません。
//
// エンドポイント例:
// GET /api/watchlist
func (h *WatchlistHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	w, err := h.uc.Get(c.Request.Context(), userID)
	if err != nil {
		slog.Error("failed to load watchlist", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, dto.WatchlistResponse{Name: w.Name, Symbols: w.Symbols})
}

// Data はウォッチリスト内の全銘柄のクオートを返します。
// 個別銘柄の取得失敗は結果から除外されるだけで、全体は失敗しません。
//
// エンドポイント例:
// GET /api/watchlist/data
func (h *WatchlistHandler) Data(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	w, err := h.uc.Get(c.Request.Context(), userID)
	if err != nil {
		slog.Error("failed to load watchlist", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	quotes, err := h.quotes.GetQuotes(c.Request.Context(), w.Symbols)
	if err != nil {
		slog.Error("failed to fetch watchlist quotes", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	// ウォッチリストの並び順を保って整形
	out := make([]quotesdto.QuoteResponse, 0, len(w.Symbols))
	for _, sym := range w.Symbols {
		if q, ok := quotes[sym]; ok {
			out = append(out, quotesdto.NewQuoteResponse(q))
		}
	}
	c.JSON(http.StatusOK, out)
}

// Add はシンボルをウォッチリストに追加します。追加済みのシンボルはno-op成功です。
//
// エンドポイント例:
// POST /api/watchlist/add {"symbol": "AAPL"}
func (h *WatchlistHandler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.SymbolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "symbol is required"})
		return
	}

	added, err := h.uc.Add(c.Request.Context(), userID, req.Symbol)
	if err != nil {
		h.writeError(c, userID, err)
		return
	}

	sym := quotesentity.NormalizeSymbol(req.Symbol)
	msg := fmt.Sprintf("Added %s to watchlist", sym)
	if !added {
		msg = fmt.Sprintf("%s is already in watchlist", sym)
	}
	c.JSON(http.StatusOK, dto.MutationResponse{Message: msg, Changed: added})
}

// Remove はシンボルをウォッチリストから削除します。存在しないシンボルはno-op成功です。
//
// エンドポイント例:
// DELETE /api/watchlist/remove {"symbol": "AAPL"}
func (h *WatchlistHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.SymbolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "symbol is required"})
		return
	}

	removed, err := h.uc.Remove(c.Request.Context(), userID, req.Symbol)
	if err != nil {
		h.writeError(c, userID, err)
		return
	}

	sym := quotesentity.NormalizeSymbol(req.Symbol)
	msg := fmt.Sprintf("Removed %s from watchlist", sym)
	if !removed {
		msg = fmt.Sprintf("%s was not in watchlist", sym)
	}
	c.JSON(http.StatusOK, dto.MutationResponse{Message: msg, Changed: removed})
}

// writeError はユースケースのエラーをHTTPステータスに対応付けます。
func (h *WatchlistHandler) writeError(c *gin.Context, userID uint, err error) {
	if errors.Is(err, usecase.ErrInvalidSymbol) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "symbol is required"})
		return
	}
	slog.Error("watchlist operation failed", "user_id", userID, "error", err)
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
}

// currentUserID は認証ミドルウェアが設定したユーザーIDを取得します。
// 設定されていない場合は401を書き込み、falseを返します。
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(jwtmw.ContextUserID)
	if !exists {
		c.Header("WWW-Authenticate", "Bearer")
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "not authenticated"})
		return 0, false
	}
	id, ok := v.(uint)
	if !ok {
		c.Header("WWW-Authenticate", "Bearer")
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "not authenticated"})
		return 0, false
	}
	return id, true
}
