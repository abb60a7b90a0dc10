package auth

import (
	"context"
	"errors"

	"pawnshop/internal/domain/model"
	repo "pawnshop/internal/repository"
)

// トークンが見つからない・期限切れ・使用済みのどれか
var ErrRefreshTokenInvalid = errors.New("refresh token invalid")

type RefreshInput struct {
	RefreshToken string
}

type RefreshOutput struct {
	Token JwtAccessToken `json:"token"`
}

type RefreshUsecase struct {
	accountRepo repo.AccountRepository
	rtRepo      repo.RefreshTokenRepository
	issuer      AccessTokenIssuer
	idGen       IDGenerator
	clock       Clock
}

// DI
func NewRefreshUsecase(
	accountRepo repo.AccountRepository,
	rtRepo repo.RefreshTokenRepository,
	issuer AccessTokenIssuer,
	idGen IDGenerator,
	clock Clock,
) *RefreshUsecase {
	return &RefreshUsecase{
		accountRepo: accountRepo,
		rtRepo:      rtRepo,
		issuer:      issuer,
		idGen:       idGen,
		clock:       clock,
	}
}

// リフレッシュトークンを使い捨てにして新しいアクセストークンを発行する。
func (u *RefreshUsecase) Execute(ctx context.Context, in RefreshInput) (RefreshOutput, LoginSideEffect, error) {
	var out RefreshOutput
	var side LoginSideEffect

	if in.RefreshToken == "" {
		return out, side, ErrRefreshTokenInvalid
	}

	token, err := u.rtRepo.FindByTokenHash(ctx, hashToken(in.RefreshToken))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return out, side, ErrRefreshTokenInvalid
		}
		return out, side, err
	}

	now := u.clock.Now()

	//使用済み・失効済みトークンの再提示は盗難の疑い。
	//そのアカウントのトークンを全部無効にしてから拒否する。
	if token.UsedAt != nil || token.RevokedAt != nil {
		if err := u.rtRepo.RevokeAllByAccountID(ctx, token.AccountID); err != nil {
			return out, side, err
		}
		return out, side, ErrRefreshTokenInvalid
	}
	if now.After(token.ExpiresAt) {
		return out, side, ErrRefreshTokenInvalid
	}

	//使用済みにする（1回限り）
	if err := u.rtRepo.MarkUsed(ctx, token.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return out, side, ErrRefreshTokenInvalid
		}
		return out, side, err
	}

	account, err := u.accountRepo.FindByID(ctx, token.AccountID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return out, side, ErrRefreshTokenInvalid
		}
		return out, side, err
	}

	accessToken, accessExp, err := u.issuer.Issue(account.ID, account.Role, now)
	if err != nil {
		return out, side, err
	}

	//新しいリフレッシュトークンに付け替える（ローテーション）
	plainRefresh, err := generateSecureToken(32)
	if err != nil {
		return out, side, err
	}
	next := &model.RefreshToken{
		ID:        u.idGen.NewID(),
		AccountID: account.ID,
		TokenHash: hashToken(plainRefresh),
		ExpiresAt: token.ExpiresAt,
	}
	if err := u.rtRepo.Create(ctx, next); err != nil {
		return out, side, err
	}

	out.Token = JwtAccessToken{
		AccessToken: accessToken,
		ExpiresIn:   int(accessExp.Sub(now).Seconds()),
	}
	side.PlainRefreshToken = plainRefresh
	return out, side, nil
}
