package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"bloomberg_lite/internal/feature/quotes/domain/entity"
	"bloomberg_lite/internal/feature/quotes/usecase"
	"bloomberg_lite/internal/platform/externalapi/twelvedata/dto"
	"bloomberg_lite/internal/shared/ratelimiter"
)

// TwelveDataMarket はTwelve Data外部APIから株価データを取得するMarketRepository実装です。
type TwelveDataMarket struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

// TwelveDataMarketがMarketRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketRepository = (*TwelveDataMarket)(nil)

// NewTwelveDataMarket は指定された設定、HTTPクライアント、レートリミッタで
// TwelveDataMarketの新しいインスタンスを生成します。
func NewTwelveDataMarket(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface) *TwelveDataMarket {
	return &TwelveDataMarket{cfg: cfg, client: client, limiter: limiter}
}

// FetchQuote はTwelve Data APIからクオートを取得し、正規化済みの
// entity.Quoteとして返します。
//
// クオートの数値フィールドは寛容にパースします: 空文字列・パース不能・NaNは
// すべて0に正規化されます（プロバイダが返せないフィールドはゼロ値のまま）。
func (t *TwelveDataMarket) FetchQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	var body dto.QuoteResponse
	if err := t.get(ctx, "/quote", url.Values{"symbol": []string{symbol}}, &body); err != nil {
		return nil, err
	}

	if body.Status == "error" {
		if isNotFound(body.Code, body.Message) {
			return nil, usecase.ErrSymbolNotFound
		}
		return nil, fmt.Errorf("%w: twelvedata: %s", usecase.ErrMarketUnavailable, body.Message)
	}
	if body.Symbol == "" {
		return nil, usecase.ErrSymbolNotFound
	}

	price := toFloat(body.Close)
	q := &entity.Quote{
		Symbol:             body.Symbol,
		CompanyName:        body.Name,
		CurrentPrice:       price,
		PriceChange:        toFloat(body.Change),
		PriceChangePercent: toFloat(body.PercentChange),
		PreviousClose:      toFloat(body.PreviousClose),
		Open:               toFloat(body.Open),
		DayHigh:            toFloat(body.High),
		DayLow:             toFloat(body.Low),
		Volume:             toInt(body.Volume),
		FiftyTwoWeekHigh:   toFloat(body.FiftyTwoWeek.High),
		FiftyTwoWeekLow:    toFloat(body.FiftyTwoWeek.Low),
		// MarketCap and PERatio are not exposed by the quote endpoint and
		// stay at their zero defaults.
	}
	return q, nil
}

// FetchDailyBars はTwelve Data APIから日足を取得し、古い順に並べ替えて返します。
// ヒストリーのバーはクオートと異なり厳密にパースし、不正な値はエラーになります。
func (t *TwelveDataMarket) FetchDailyBars(ctx context.Context, symbol string, outputsize int) ([]entity.Bar, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", "1day")
	q.Set("outputsize", strconv.Itoa(outputsize))

	var body dto.TimeSeriesResponse
	if err := t.get(ctx, "/time_series", q, &body); err != nil {
		return nil, err
	}

	if body.Status == "error" {
		if isNotFound(body.Code, body.Message) {
			return nil, usecase.ErrSymbolNotFound
		}
		return nil, fmt.Errorf("%w: twelvedata: %s", usecase.ErrMarketUnavailable, body.Message)
	}
	if len(body.Values) == 0 {
		return nil, usecase.ErrSymbolNotFound
	}

	bars := make([]entity.Bar, 0, len(body.Values))
	// Twelve Dataは新しい順で返すため、逆順に走査して古い順に組み立てる
	for i := len(body.Values) - 1; i >= 0; i-- {
		v := body.Values[i]

		tm, err := time.Parse("2006-01-02 15:04:05", v.Datetime)
		if err != nil {
			tm, err = time.Parse("2006-01-02", v.Datetime)
			if err != nil {
				return nil, fmt.Errorf("%w: parse time %q: %v", usecase.ErrMarketUnavailable, v.Datetime, err)
			}
		}
		o, err := strconv.ParseFloat(v.Open, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: parse open %q: %v", usecase.ErrMarketUnavailable, v.Open, err)
		}
		h, err := strconv.ParseFloat(v.High, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: parse high %q: %v", usecase.ErrMarketUnavailable, v.High, err)
		}
		l, err := strconv.ParseFloat(v.Low, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: parse low %q: %v", usecase.ErrMarketUnavailable, v.Low, err)
		}
		c, err := strconv.ParseFloat(v.Close, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: parse close %q: %v", usecase.ErrMarketUnavailable, v.Close, err)
		}
		vol := toInt(v.Volume) // 一部の銘柄では出来高が空になる

		bars = append(bars, entity.Bar{
			Time:   tm,
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: vol,
		})
	}
	return bars, nil
}

// get はレートリミットを尊重しつつGETリクエストを実行し、JSONをoutにデコードします。
func (t *TwelveDataMarket) get(ctx context.Context, path string, q url.Values, out any) error {
	if t.limiter != nil {
		t.limiter.WaitIfNeeded()
	}

	q.Set("apikey", t.cfg.TwelveDataAPIKey)
	u := fmt.Sprintf("%s%s?%s", t.cfg.BaseURL, path, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrMarketUnavailable, err)
	}

	res, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrMarketUnavailable, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return fmt.Errorf("%w: twelvedata http %d", usecase.ErrMarketUnavailable, res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", usecase.ErrMarketUnavailable, err)
	}
	return nil
}

// isNotFound はプロバイダのエラーエンベロープが「銘柄なし」を表すかを判定します。
// Twelve Dataは未知の銘柄に対してcode=400とcode=404の両方を使うことがあります。
func isNotFound(code int, message string) bool {
	if code == 404 {
		return true
	}
	return strings.Contains(strings.ToLower(message), "not found")
}

// toFloat は文字列の数値を寛容にパースします。空・パース不能・NaN・Infは0になります。
func toFloat(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// toInt は文字列の整数を寛容にパースします。小数表記の出来高にも対応します。
func toInt(s string) int64 {
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return int64(f)
	}
	return 0
}
