package dto

// TokenResponse はログイン成功時のベアラートークンレスポンスです。
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ValidateResponse はトークン検証エンドポイントのレスポンスです。
type ValidateResponse struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username"`
}

// ProfileResponse はユーザープロファイルのレスポンスです。
type ProfileResponse struct {
	Username   string   `json:"username"`
	Email      string   `json:"email"`
	Watchlists []string `json:"watchlists"`
}
