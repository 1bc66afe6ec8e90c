package dto

// SymbolRequest はウォッチリストへの追加・削除リクエストのDTOです。
type SymbolRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}

// WatchlistResponse はウォッチリストの内容を返すレスポンスDTOです。
type WatchlistResponse struct {
	Name    string   `json:"name"`
	Symbols []string `json:"symbols"`
}

// MutationResponse は追加・削除操作の結果を返すレスポンスDTOです。
// Changedは操作がリストを変化させたか（no-opとの区別）を表します。
type MutationResponse struct {
	Message string `json:"message"`
	Changed bool   `json:"changed"`
}
