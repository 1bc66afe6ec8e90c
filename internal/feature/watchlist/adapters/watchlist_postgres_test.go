package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"bloomberg_lite/internal/feature/watchlist/domain/entity"
	"bloomberg_lite/internal/feature/watchlist/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.Watchlist{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func TestWatchlistPostgres_Create(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWatchlistRepository(db)

		w := &entity.Watchlist{UserID: 1, Name: entity.DefaultName, Symbols: []string{"AAPL", "MSFT"}}
		err := repo.Create(context.Background(), w)

		assert.NoError(t, err, "failed to create watchlist")
		assert.NotZero(t, w.ID, "ID is not set")
	})

	t.Run("duplicate user and name error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWatchlistRepository(db)

		err := repo.Create(context.Background(), &entity.Watchlist{UserID: 1, Name: entity.DefaultName})
		require.NoError(t, err, "failed to create first watchlist")

		err = repo.Create(context.Background(), &entity.Watchlist{UserID: 1, Name: entity.DefaultName})
		assert.ErrorIs(t, err, usecase.ErrWatchlistExists, "should map unique violation")
	})

	t.Run("same name for different users is allowed", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWatchlistRepository(db)

		err := repo.Create(context.Background(), &entity.Watchlist{UserID: 1, Name: entity.DefaultName})
		require.NoError(t, err)

		err = repo.Create(context.Background(), &entity.Watchlist{UserID: 2, Name: entity.DefaultName})
		assert.NoError(t, err, "uniqueness is per user")
	})
}

func TestWatchlistPostgres_FindByUserAndName(t *testing.T) {
	t.Run("symbols round-trip through JSON serialization", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWatchlistRepository(db)

		w := &entity.Watchlist{UserID: 1, Name: entity.DefaultName, Symbols: []string{"AAPL", "MSFT", "GOOGL"}}
		require.NoError(t, repo.Create(context.Background(), w))

		found, err := repo.FindByUserAndName(context.Background(), 1, entity.DefaultName)

		assert.NoError(t, err, "failed to find watchlist")
		assert.Equal(t, w.ID, found.ID, "ID does not match")
		assert.Equal(t, []string{"AAPL", "MSFT", "GOOGL"}, found.Symbols, "symbols do not match")
	})

	t.Run("not found error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWatchlistRepository(db)

		found, err := repo.FindByUserAndName(context.Background(), 99, entity.DefaultName)

		assert.Nil(t, found, "watchlist should be nil")
		assert.ErrorIs(t, err, usecase.ErrWatchlistNotFound, "should return ErrWatchlistNotFound")
	})

	t.Run("nil symbols load as empty slice", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWatchlistRepository(db)

		require.NoError(t, repo.Create(context.Background(), &entity.Watchlist{UserID: 1, Name: entity.DefaultName}))

		found, err := repo.FindByUserAndName(context.Background(), 1, entity.DefaultName)

		assert.NoError(t, err)
		assert.NotNil(t, found.Symbols, "symbols should never be nil")
		assert.Empty(t, found.Symbols)
	})
}

func TestWatchlistPostgres_Save(t *testing.T) {
	t.Run("save persists updated symbols", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWatchlistRepository(db)

		w := &entity.Watchlist{UserID: 1, Name: entity.DefaultName, Symbols: []string{"AAPL"}}
		require.NoError(t, repo.Create(context.Background(), w))

		w.AddSymbol("MSFT")
		require.NoError(t, repo.Save(context.Background(), w))

		found, err := repo.FindByUserAndName(context.Background(), 1, entity.DefaultName)
		require.NoError(t, err)
		assert.Equal(t, []string{"AAPL", "MSFT"}, found.Symbols, "saved symbols do not match")
	})
}

func TestWatchlistPostgres_ListNamesByUser(t *testing.T) {
	t.Run("returns only own names sorted", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWatchlistRepository(db)

		ctx := context.Background()
		require.NoError(t, repo.Create(ctx, &entity.Watchlist{UserID: 1, Name: "Tech"}))
		require.NoError(t, repo.Create(ctx, &entity.Watchlist{UserID: 1, Name: entity.DefaultName}))
		require.NoError(t, repo.Create(ctx, &entity.Watchlist{UserID: 2, Name: "Other"}))

		names, err := repo.ListNamesByUser(ctx, 1)

		assert.NoError(t, err)
		assert.Equal(t, []string{entity.DefaultName, "Tech"}, names, "names do not match")
	})

	t.Run("no watchlists yields empty result", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWatchlistRepository(db)

		names, err := repo.ListNamesByUser(context.Background(), 42)

		assert.NoError(t, err)
		assert.Empty(t, names)
	})
}
