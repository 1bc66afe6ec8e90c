package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"bloomberg_lite/internal/feature/quotes/domain/entity"
)

const (
	// DefaultQuoteTTL はクオートスナップショットの鮮度ウィンドウのデフォルト値です。
	DefaultQuoteTTL = 5 * time.Minute
	// DefaultHistoryTTL は日足ヒストリーの鮮度ウィンドウのデフォルト値です。
	// 過去日付の日足は日中に変化しないため、クオートより大幅に長くできます。
	DefaultHistoryTTL = 24 * time.Hour
	// DefaultBatchSize はバッチ取得時の同時アウトバウンド呼び出し数の上限です。
	DefaultBatchSize = 10
	// DefaultPeriod はヒストリー取得のデフォルト期間です。
	DefaultPeriod = "6mo"
)

// periodBars は対応する期間ごとの日足本数（営業日ベース）を定義します。
var periodBars = map[string]int{
	"1mo": 22,
	"3mo": 66,
	"6mo": 126,
	"1y":  252,
	"2y":  504,
	"5y":  1260,
}

// MarketRepository は外部の市場データプロバイダを抽象化します。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	// FetchQuote は指定された銘柄の正規化済みクオートを取得します。
	// 銘柄が存在しない場合はErrSymbolNotFoundを返します。
	FetchQuote(ctx context.Context, symbol string) (*entity.Quote, error)

	// FetchDailyBars は指定された銘柄の日足を古い順で最大outputsize本取得します。
	FetchDailyBars(ctx context.Context, symbol string, outputsize int) ([]entity.Bar, error)
}

// QuoteCache はクオートスナップショットの永続キャッシュを抽象化します。
// ミスはエラーではなく(nil, nil)（ヒストリーは空スライス）で表現します。
type QuoteCache interface {
	GetQuote(ctx context.Context, symbol string) (*entity.Quote, error)
	PutQuote(ctx context.Context, quote *entity.Quote) error
	GetHistory(ctx context.Context, symbol, period string) ([]entity.Bar, error)
	PutHistory(ctx context.Context, symbol, period string, bars []entity.Bar) error
}

// quoteUsecase はクオート取得のビジネスロジックを実装します。
//
// キャッシュ読み取り → プロバイダ取得 → キャッシュ書き戻しの一連のシーケンスは
// muで直列化されます。プロセス内で同一銘柄への同時リクエストが read/fetch/write を
// 交互に実行して重複アップサートや古い読み取りと競合することはありません。
type quoteUsecase struct {
	market     MarketRepository
	cache      QuoteCache
	quoteTTL   time.Duration
	historyTTL time.Duration
	batchSize  int

	mu  sync.Mutex
	now func() time.Time
}

// NewQuoteUsecase はquoteUsecaseの新しいインスタンスを生成します。
// ttlに0以下を渡すとデフォルト値が使われます。
func NewQuoteUsecase(market MarketRepository, cache QuoteCache, quoteTTL, historyTTL time.Duration) *quoteUsecase {
	if quoteTTL <= 0 {
		quoteTTL = DefaultQuoteTTL
	}
	if historyTTL <= 0 {
		historyTTL = DefaultHistoryTTL
	}
	return &quoteUsecase{
		market:     market,
		cache:      cache,
		quoteTTL:   quoteTTL,
		historyTTL: historyTTL,
		batchSize:  DefaultBatchSize,
		now:        time.Now,
	}
}

// GetQuote は指定された銘柄のクオートを返します。
// 鮮度ウィンドウ内のキャッシュ済みスナップショットがあればそれを返し、
// なければプロバイダから取得してキャッシュに書き戻します。
// プロバイダ取得が失敗した場合、古いキャッシュへのフォールバックは行いません。
func (u *quoteUsecase) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	symbol = entity.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, ErrInvalidSymbol
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	// 1) キャッシュ確認。読み取り失敗はミスとして扱う（ベストエフォート）
	if cached, err := u.cache.GetQuote(ctx, symbol); err != nil {
		slog.Warn("quote cache read failed", "symbol", symbol, "error", err)
	} else if cached != nil && u.now().Sub(cached.FetchedAt) < u.quoteTTL {
		return cached, nil
	}

	// 2) キャッシュミスまたは鮮度切れ: プロバイダから取得
	q, err := u.market.FetchQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	q.Symbol = symbol
	q.FetchedAt = u.now()

	// 3) 無条件で書き戻し（シンボル単位のアップサート）。
	// 書き込み失敗は致命的ではないのでログのみ
	if err := u.cache.PutQuote(ctx, q); err != nil {
		slog.Warn("quote cache write failed", "symbol", symbol, "error", err)
	}

	return q, nil
}

// GetQuotes は複数銘柄のクオートを銘柄→クオートのマップとして返します。
// 取得は同時実行数をbatchSizeに制限して行い、個別銘柄の失敗はログに出力して
// 結果から除外します（バッチ全体は失敗しません）。
func (u *quoteUsecase) GetQuotes(ctx context.Context, symbols []string) (map[string]*entity.Quote, error) {
	results := make(map[string]*entity.Quote, len(symbols))
	if len(symbols) == 0 {
		return results, nil
	}

	var resultMu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(u.batchSize)

	seen := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		sym := entity.NormalizeSymbol(s)
		if sym == "" {
			slog.Warn("skipping empty symbol in batch")
			continue
		}
		if _, dup := seen[sym]; dup {
			continue
		}
		seen[sym] = struct{}{}

		g.Go(func() error {
			q, err := u.GetQuote(ctx, sym)
			if err != nil {
				// 個別銘柄の失敗はバッチを止めない
				slog.Warn("batch quote fetch failed", "symbol", sym, "error", err)
				return nil
			}
			resultMu.Lock()
			results[sym] = q
			resultMu.Unlock()
			return nil
		})
	}

	_ = g.Wait() // ワーカーはエラーを返さない
	return results, nil
}

// GetHistory は指定された銘柄と期間の日足ヒストリーを古い順で返します。
// クオートと同じ鮮度ゲート付きキャッシュパターンを、より長いウィンドウで使います。
func (u *quoteUsecase) GetHistory(ctx context.Context, symbol, period string) ([]entity.Bar, error) {
	symbol = entity.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, ErrInvalidSymbol
	}
	if period == "" {
		period = DefaultPeriod
	}
	outputsize, ok := periodBars[period]
	if !ok {
		return nil, ErrUnsupportedPeriod
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if cached, err := u.cache.GetHistory(ctx, symbol, period); err != nil {
		slog.Warn("history cache read failed", "symbol", symbol, "period", period, "error", err)
	} else if len(cached) > 0 {
		return cached, nil
	}

	bars, err := u.market.FetchDailyBars(ctx, symbol, outputsize)
	if err != nil {
		return nil, err
	}

	if err := u.cache.PutHistory(ctx, symbol, period, bars); err != nil {
		slog.Warn("history cache write failed", "symbol", symbol, "period", period, "error", err)
	}

	return bars, nil
}

// SupportedPeriods は対応しているヒストリー期間の一覧を返します。
func SupportedPeriods() []string {
	return []string{"1mo", "3mo", "6mo", "1y", "2y", "5y"}
}
