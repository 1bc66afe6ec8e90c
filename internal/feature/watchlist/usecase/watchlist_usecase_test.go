package usecase

import (
	"context"
	"errors"
	"testing"

	"bloomberg_lite/internal/feature/watchlist/domain/entity"
)

// mockWatchlistRepository はテスト用のWatchlistRepositoryモック実装です。
type mockWatchlistRepository struct {
	findFn      func(ctx context.Context, userID uint, name string) (*entity.Watchlist, error)
	createFn    func(ctx context.Context, w *entity.Watchlist) error
	saveFn      func(ctx context.Context, w *entity.Watchlist) error
	listNamesFn func(ctx context.Context, userID uint) ([]string, error)
	saved       []*entity.Watchlist
}

func (m *mockWatchlistRepository) FindByUserAndName(ctx context.Context, userID uint, name string) (*entity.Watchlist, error) {
	if m.findFn != nil {
		return m.findFn(ctx, userID, name)
	}
	return nil, ErrWatchlistNotFound
}

func (m *mockWatchlistRepository) Create(ctx context.Context, w *entity.Watchlist) error {
	if m.createFn != nil {
		return m.createFn(ctx, w)
	}
	return nil
}

func (m *mockWatchlistRepository) Save(ctx context.Context, w *entity.Watchlist) error {
	m.saved = append(m.saved, w)
	if m.saveFn != nil {
		return m.saveFn(ctx, w)
	}
	return nil
}

func (m *mockWatchlistRepository) ListNamesByUser(ctx context.Context, userID uint) ([]string, error) {
	if m.listNamesFn != nil {
		return m.listNamesFn(ctx, userID)
	}
	return nil, nil
}

// existing はfindFnに固定のウォッチリストを返させるヘルパーです。
func existing(w *entity.Watchlist) func(ctx context.Context, userID uint, name string) (*entity.Watchlist, error) {
	return func(ctx context.Context, userID uint, name string) (*entity.Watchlist, error) {
		return w, nil
	}
}

// TestWatchlistUsecase_Get_Existing は既存のデフォルトリストがそのまま返ることを検証します。
func TestWatchlistUsecase_Get_Existing(t *testing.T) {
	w := &entity.Watchlist{ID: 1, UserID: 7, Name: entity.DefaultName, Symbols: []string{"AAPL"}}
	repo := &mockWatchlistRepository{findFn: existing(w)}

	uc := NewWatchlistUsecase(repo)
	got, err := uc.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != w {
		t.Errorf("expected existing watchlist, got %+v", got)
	}
}

// TestWatchlistUsecase_Get_LazyCreate は未作成のユーザーに空のデフォルトリストが
// 遅延作成されることを検証します。
func TestWatchlistUsecase_Get_LazyCreate(t *testing.T) {
	var created *entity.Watchlist
	repo := &mockWatchlistRepository{
		createFn: func(ctx context.Context, w *entity.Watchlist) error {
			created = w
			return nil
		},
	}

	uc := NewWatchlistUsecase(repo)
	got, err := uc.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected lazy create")
	}
	if got.UserID != 7 || got.Name != entity.DefaultName {
		t.Errorf("unexpected watchlist: %+v", got)
	}
	if got.Symbols == nil || len(got.Symbols) != 0 {
		t.Errorf("expected empty (non-nil) symbols, got %v", got.Symbols)
	}
}

// TestWatchlistUsecase_Get_CreateRace は作成競合に負けた場合に勝者のリストを
// 読み直すことを検証します。
func TestWatchlistUsecase_Get_CreateRace(t *testing.T) {
	winner := &entity.Watchlist{ID: 2, UserID: 7, Name: entity.DefaultName, Symbols: []string{"MSFT"}}
	calls := 0
	repo := &mockWatchlistRepository{
		findFn: func(ctx context.Context, userID uint, name string) (*entity.Watchlist, error) {
			calls++
			if calls == 1 {
				return nil, ErrWatchlistNotFound
			}
			return winner, nil
		},
		createFn: func(ctx context.Context, w *entity.Watchlist) error {
			return ErrWatchlistExists
		},
	}

	uc := NewWatchlistUsecase(repo)
	got, err := uc.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != winner {
		t.Errorf("expected winner's watchlist, got %+v", got)
	}
}

// TestWatchlistUsecase_Add はシンボル追加の集合セマンティクスを検証します。
func TestWatchlistUsecase_Add(t *testing.T) {
	tests := []struct {
		name            string
		symbols         []string
		input           string
		expectedChanged bool
		expectedErr     error
		expectedSaves   int
	}{
		{
			name:            "new symbol is added and saved",
			symbols:         []string{"AAPL"},
			input:           "msft",
			expectedChanged: true,
			expectedSaves:   1,
		},
		{
			name:            "existing symbol is a no-op",
			symbols:         []string{"AAPL"},
			input:           " aapl ",
			expectedChanged: false,
			expectedSaves:   0,
		},
		{
			name:          "empty symbol is rejected",
			symbols:       []string{},
			input:         "   ",
			expectedErr:   ErrInvalidSymbol,
			expectedSaves: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &entity.Watchlist{UserID: 7, Name: entity.DefaultName, Symbols: tt.symbols}
			repo := &mockWatchlistRepository{findFn: existing(w)}

			uc := NewWatchlistUsecase(repo)
			changed, err := uc.Add(context.Background(), 7, tt.input)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected %v, got %v", tt.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if changed != tt.expectedChanged {
				t.Errorf("expected changed=%v, got %v", tt.expectedChanged, changed)
			}
			if len(repo.saved) != tt.expectedSaves {
				t.Errorf("expected %d saves, got %d", tt.expectedSaves, len(repo.saved))
			}
		})
	}
}

// TestWatchlistUsecase_Add_Normalizes は追加されるシンボルが正規化されることを検証します。
func TestWatchlistUsecase_Add_Normalizes(t *testing.T) {
	w := &entity.Watchlist{UserID: 7, Name: entity.DefaultName, Symbols: []string{}}
	repo := &mockWatchlistRepository{findFn: existing(w)}

	uc := NewWatchlistUsecase(repo)
	changed, err := uc.Add(context.Background(), 7, "  googl ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Error("expected list to change")
	}
	if len(w.Symbols) != 1 || w.Symbols[0] != "GOOGL" {
		t.Errorf("expected normalized GOOGL, got %v", w.Symbols)
	}
}

// TestWatchlistUsecase_Remove はシンボル削除の集合セマンティクスを検証します。
func TestWatchlistUsecase_Remove(t *testing.T) {
	tests := []struct {
		name            string
		symbols         []string
		input           string
		expectedChanged bool
		expectedSaves   int
	}{
		{
			name:            "present symbol is removed and saved",
			symbols:         []string{"AAPL", "MSFT"},
			input:           "aapl",
			expectedChanged: true,
			expectedSaves:   1,
		},
		{
			name:            "absent symbol is a no-op",
			symbols:         []string{"AAPL"},
			input:           "TSLA",
			expectedChanged: false,
			expectedSaves:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &entity.Watchlist{UserID: 7, Name: entity.DefaultName, Symbols: tt.symbols}
			repo := &mockWatchlistRepository{findFn: existing(w)}

			uc := NewWatchlistUsecase(repo)
			changed, err := uc.Remove(context.Background(), 7, tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if changed != tt.expectedChanged {
				t.Errorf("expected changed=%v, got %v", tt.expectedChanged, changed)
			}
			if len(repo.saved) != tt.expectedSaves {
				t.Errorf("expected %d saves, got %d", tt.expectedSaves, len(repo.saved))
			}
		})
	}
}

// TestWatchlistUsecase_ListNames はnilが空スライスに正規化されることを検証します。
func TestWatchlistUsecase_ListNames(t *testing.T) {
	t.Run("nil becomes empty slice", func(t *testing.T) {
		uc := NewWatchlistUsecase(&mockWatchlistRepository{})

		names, err := uc.ListNames(context.Background(), 7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if names == nil || len(names) != 0 {
			t.Errorf("expected empty slice, got %v", names)
		}
	})

	t.Run("repository error propagates", func(t *testing.T) {
		expectedErr := errors.New("database error")
		repo := &mockWatchlistRepository{
			listNamesFn: func(ctx context.Context, userID uint) ([]string, error) {
				return nil, expectedErr
			},
		}

		uc := NewWatchlistUsecase(repo)
		if _, err := uc.ListNames(context.Background(), 7); !errors.Is(err, expectedErr) {
			t.Errorf("expected %v, got %v", expectedErr, err)
		}
	})
}
