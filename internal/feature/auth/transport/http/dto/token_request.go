package dto

// TokenRequest はログインリクエストのDTOです。
// OAuth2のパスワードフローに合わせてフォームエンコードで受け取ります。
type TokenRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}
