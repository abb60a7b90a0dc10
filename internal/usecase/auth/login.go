package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"pawnshop/internal/domain/model"
	repo "pawnshop/internal/repository"
)

// 電話番号またはパスワードが違う
var ErrInvalidCredentials = errors.New("invalid credentials")

// token 形
type JwtAccessToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// handlerがJSONにして返す
type LoginOutput struct {
	Account model.Account  `json:"account"`
	Token   JwtAccessToken `json:"token"`
}

// handlerがCookieに詰めるために必要な値
type LoginSideEffect struct {
	PlainRefreshToken string
}

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(accountID int64, role model.Role, now time.Time) (token string, expiresAt time.Time, err error)
}

type LoginInput struct {
	Phone    string
	Password string
}

type LoginUsecase struct {
	accountRepo repo.AccountRepository
	rtRepo      repo.RefreshTokenRepository
	verifier    PasswordVerifier
	issuer      AccessTokenIssuer
	idGen       IDGenerator
	clock       Clock
	refreshTTL  time.Duration
}

// DI
func NewLoginUsecase(
	accountRepo repo.AccountRepository,
	rtRepo repo.RefreshTokenRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	idGen IDGenerator,
	clock Clock,
	refreshTTL time.Duration,
) *LoginUsecase {
	return &LoginUsecase{
		accountRepo: accountRepo,
		rtRepo:      rtRepo,
		verifier:    verifier,
		issuer:      issuer,
		idGen:       idGen,
		clock:       clock,
		refreshTTL:  refreshTTL,
	}
}

// ログイン処理を実行する
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, LoginSideEffect, error) {
	var out LoginOutput
	var side LoginSideEffect

	//電話番号でアカウント取得
	account, err := u.accountRepo.FindByPhone(ctx, in.Phone)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return out, side, ErrInvalidCredentials
		}
		return out, side, err
	}

	//顧客アカウントにパスワードは無いのでここで弾かれる
	if account.PasswordHash == "" {
		return out, side, ErrInvalidCredentials
	}

	//パスワード照合
	if ok := u.verifier.Verify(in.Password, account.PasswordHash); !ok {
		return out, side, ErrInvalidCredentials
	}

	//AccessToken発行
	now := u.clock.Now()
	accessToken, accessExp, err := u.issuer.Issue(account.ID, account.Role, now)
	if err != nil {
		return out, side, err
	}

	//RefreshToken生成
	plainRefresh, err := generateSecureToken(32)
	if err != nil {
		return out, side, err
	}

	refresh := &model.RefreshToken{
		ID:        u.idGen.NewID(),
		AccountID: account.ID,
		TokenHash: hashToken(plainRefresh),
		ExpiresAt: now.Add(u.refreshTTL),
	}
	if err := u.rtRepo.Create(ctx, refresh); err != nil {
		return out, side, err
	}

	//最終ログイン時刻更新
	if err := u.accountRepo.UpdateLastLogin(ctx, account.ID); err != nil {
		return out, side, err
	}

	//出力（ハッシュは返さない）
	account.PasswordHash = ""

	out.Account = account
	out.Token = JwtAccessToken{
		AccessToken: accessToken,
		ExpiresIn:   int(accessExp.Sub(now).Seconds()),
	}

	side.PlainRefreshToken = plainRefresh
	return out, side, nil
}

func hashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

func generateSecureToken(bytesLen int) (string, error) {
	if bytesLen <= 0 {
		return "", fmt.Errorf("bytesLen must be positive")
	}

	// ランダムなバイト列を作る（OSが持つ安全な乱数）
	b := make([]byte, bytesLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
