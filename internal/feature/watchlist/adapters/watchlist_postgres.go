// Package adapters はwatchlistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"bloomberg_lite/internal/feature/watchlist/domain/entity"
	"bloomberg_lite/internal/feature/watchlist/usecase"
	"bloomberg_lite/internal/platform/db"
)

// watchlistPostgres はWatchlistRepositoryインターフェースのPostgreSQL実装です。
type watchlistPostgres struct {
	db *gorm.DB
}

// watchlistPostgresがWatchlistRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.WatchlistRepository = (*watchlistPostgres)(nil)

// NewWatchlistRepository は指定されたgorm.DB接続でwatchlistPostgresの新しいインスタンスを生成します。
func NewWatchlistRepository(gdb *gorm.DB) *watchlistPostgres {
	return &watchlistPostgres{db: gdb}
}

// FindByUserAndName は(ユーザーID, 名前)でウォッチリストを取得します。
// 存在しない場合、usecase.ErrWatchlistNotFoundを返します。
func (r *watchlistPostgres) FindByUserAndName(ctx context.Context, userID uint, name string) (*entity.Watchlist, error) {
	var w entity.Watchlist
	if err := r.db.WithContext(ctx).Where("user_id = ? AND name = ?", userID, name).First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrWatchlistNotFound
		}
		return nil, err
	}
	if w.Symbols == nil {
		w.Symbols = []string{}
	}
	return &w, nil
}

// Create は新しいウォッチリストをデータベースに追加します。
// (ユーザーID, 名前)のユニーク制約違反の場合、usecase.ErrWatchlistExistsを返します。
func (r *watchlistPostgres) Create(ctx context.Context, w *entity.Watchlist) error {
	if err := r.db.WithContext(ctx).Create(w).Error; err != nil {
		if db.IsDuplicateKey(err) {
			return usecase.ErrWatchlistExists
		}
		return err
	}
	return nil
}

// Save はウォッチリスト全体を上書き保存します。UpdatedAtはGORMが更新します。
func (r *watchlistPostgres) Save(ctx context.Context, w *entity.Watchlist) error {
	return r.db.WithContext(ctx).Save(w).Error
}

// ListNamesByUser はユーザーが所有するウォッチリスト名の一覧を返します。
func (r *watchlistPostgres) ListNamesByUser(ctx context.Context, userID uint) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&entity.Watchlist{}).
		Where("user_id = ?", userID).
		Order("name").
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
