package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"pawnshop/internal/domain/model"
	repo "pawnshop/internal/repository"
)

type RefreshTokenGormRepository struct {
	db *gorm.DB
}

func NewRefreshTokenGormRepository(db *gorm.DB) *RefreshTokenGormRepository {
	return &RefreshTokenGormRepository{db: db}
}

func (r *RefreshTokenGormRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// token_hashで1件検索。
func (r *RefreshTokenGormRepository) FindByTokenHash(ctx context.Context, tokenHash string) (model.RefreshToken, error) {
	var token model.RefreshToken
	err := r.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.RefreshToken{}, repo.ErrNotFound
	}
	if err != nil {
		return model.RefreshToken{}, err
	}
	return token, nil
}

// used_atをセットして使用済みにする。既に使用済み・無効ならErrNotFound。
func (r *RefreshTokenGormRepository) MarkUsed(ctx context.Context, tokenID string) error {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&model.RefreshToken{}).
		Where("id = ? AND used_at IS NULL AND revoked_at IS NULL", tokenID).
		Update("used_at", &now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// あるアカウントの未失効トークンを全て無効にする。
func (r *RefreshTokenGormRepository) RevokeAllByAccountID(ctx context.Context, accountID int64) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&model.RefreshToken{}).
		Where("account_id = ? AND revoked_at IS NULL", accountID).
		Update("revoked_at", &now).Error
}
