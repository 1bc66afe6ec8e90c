package usecase

import (
	"context"
	"errors"
	"fmt"

	quotesentity "bloomberg_lite/internal/feature/quotes/domain/entity"
	"bloomberg_lite/internal/feature/watchlist/domain/entity"
)

// WatchlistRepository はウォッチリストの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type WatchlistRepository interface {
	// FindByUserAndName は(ユーザーID, 名前)でウォッチリストを取得します。
	// 存在しない場合、ErrWatchlistNotFoundを返します。
	FindByUserAndName(ctx context.Context, userID uint, name string) (*entity.Watchlist, error)

	// Create は新しいウォッチリストを永続化します。
	// (ユーザーID, 名前)が既に存在する場合、ErrWatchlistExistsを返します。
	Create(ctx context.Context, w *entity.Watchlist) error

	// Save はウォッチリストのシンボル一覧と更新時刻を永続化します。
	Save(ctx context.Context, w *entity.Watchlist) error

	// ListNamesByUser はユーザーが所有するウォッチリスト名の一覧を返します。
	ListNamesByUser(ctx context.Context, userID uint) ([]string, error)
}

// watchlistUsecase はウォッチリスト操作のビジネスロジックを実装します。
type watchlistUsecase struct {
	repo WatchlistRepository
}

// NewWatchlistUsecase はwatchlistUsecaseの新しいインスタンスを生成します。
func NewWatchlistUsecase(repo WatchlistRepository) *watchlistUsecase {
	return &watchlistUsecase{repo: repo}
}

// Get はユーザーのデフォルトウォッチリストを返します。
// 存在しない場合は空のリストを遅延作成します（Not-Foundにはなりません）。
// 新規ユーザーが常に描画可能な（空の）ウォッチリストを持つようにするためです。
func (u *watchlistUsecase) Get(ctx context.Context, userID uint) (*entity.Watchlist, error) {
	w, err := u.repo.FindByUserAndName(ctx, userID, entity.DefaultName)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, ErrWatchlistNotFound) {
		return nil, fmt.Errorf("failed to load watchlist: %w", err)
	}

	// 遅延作成。同時リクエストとの作成競合に負けた場合は読み直す
	w = &entity.Watchlist{UserID: userID, Name: entity.DefaultName, Symbols: []string{}}
	if err := u.repo.Create(ctx, w); err != nil {
		if errors.Is(err, ErrWatchlistExists) {
			return u.repo.FindByUserAndName(ctx, userID, entity.DefaultName)
		}
		return nil, fmt.Errorf("failed to create watchlist: %w", err)
	}
	return w, nil
}

// Add はシンボルをデフォルトウォッチリストに追加します。
// 戻り値のboolはリストが変化したかを表します。既に存在するシンボルの追加は
// エラーではなく(false, nil)です（集合セマンティクス）。
func (u *watchlistUsecase) Add(ctx context.Context, userID uint, symbol string) (bool, error) {
	symbol = quotesentity.NormalizeSymbol(symbol)
	if symbol == "" {
		return false, ErrInvalidSymbol
	}

	w, err := u.Get(ctx, userID)
	if err != nil {
		return false, err
	}

	if !w.AddSymbol(symbol) {
		return false, nil
	}
	if err := u.repo.Save(ctx, w); err != nil {
		return false, fmt.Errorf("failed to save watchlist: %w", err)
	}
	return true, nil
}

// Remove はシンボルをデフォルトウォッチリストから削除します。
// 戻り値のboolはリストが変化したかを表します。存在しないシンボルの削除は
// エラーではなく(false, nil)です。
func (u *watchlistUsecase) Remove(ctx context.Context, userID uint, symbol string) (bool, error) {
	symbol = quotesentity.NormalizeSymbol(symbol)
	if symbol == "" {
		return false, ErrInvalidSymbol
	}

	w, err := u.Get(ctx, userID)
	if err != nil {
		return false, err
	}

	if !w.RemoveSymbol(symbol) {
		return false, nil
	}
	if err := u.repo.Save(ctx, w); err != nil {
		return false, fmt.Errorf("failed to save watchlist: %w", err)
	}
	return true, nil
}

// ListNames はユーザーが所有するウォッチリスト名の一覧を返します。
func (u *watchlistUsecase) ListNames(ctx context.Context, userID uint) ([]string, error) {
	names, err := u.repo.ListNamesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlists: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}
