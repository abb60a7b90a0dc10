package repository

import (
	"context"

	"pawnshop/internal/domain/model"
)

// リフレッシュトークンの保存・取得・使用済み化。
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (model.RefreshToken, error)
	MarkUsed(ctx context.Context, tokenID string) error
	RevokeAllByAccountID(ctx context.Context, accountID int64) error
}
