// Package handler はquotesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"bloomberg_lite/internal/api"
	"bloomberg_lite/internal/feature/quotes/domain/entity"
	"bloomberg_lite/internal/feature/quotes/transport/http/dto"
	"bloomberg_lite/internal/feature/quotes/usecase"
)

// QuotesUsecase はクオート取得のユースケースインターフェースを定義します。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type QuotesUsecase interface {
	GetQuote(ctx context.Context, symbol string) (*entity.Quote, error)
	GetHistory(ctx context.Context, symbol, period string) ([]entity.Bar, error)
}

// QuoteHandler はクオートデータのHTTPリクエストを処理します。
type QuoteHandler struct {
	uc QuotesUsecase
}

// NewQuoteHandler は指定されたusecaseでQuoteHandlerの新しいインスタンスを生成します。
func NewQuoteHandler(uc QuotesUsecase) *QuoteHandler {
	return &QuoteHandler{uc: uc}
}

// GetQuote は銘柄の正規化済みクオートをJSONで返します。
//
// エンドポイント例:
// GET /api/stock/:symbol
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	symbol := c.Param("symbol")

	q, err := h.uc.GetQuote(c.Request.Context(), symbol)
	if err != nil {
		h.writeError(c, symbol, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(q))
}

// GetChart は銘柄の日足ヒストリーをチャート用の等長配列で返します。
//
// エンドポイント例:
// GET /api/stock/:symbol/chart?period=6mo
func (h *QuoteHandler) GetChart(c *gin.Context) {
	symbol := c.Param("symbol")
	period := c.DefaultQuery("period", usecase.DefaultPeriod)

	bars, err := h.uc.GetHistory(c.Request.Context(), symbol, period)
	if err != nil {
		h.writeError(c, symbol, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewChartResponse(bars))
}

// writeError はユースケースのエラーをHTTPステータスに対応付けます。
// プロバイダ内部のエラーテキストはそのままクライアントに返しません。
func (h *QuoteHandler) writeError(c *gin.Context, symbol string, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidSymbol):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "symbol is required"})
	case errors.Is(err, usecase.ErrUnsupportedPeriod):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "unsupported period"})
	case errors.Is(err, usecase.ErrSymbolNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "no data found for symbol"})
	case errors.Is(err, usecase.ErrMarketUnavailable):
		slog.Error("market data fetch failed", "symbol", symbol, "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "market data unavailable"})
	default:
		slog.Error("quote request failed", "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}
