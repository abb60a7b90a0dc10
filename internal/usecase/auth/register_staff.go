package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"pawnshop/internal/domain/model"
	repo "pawnshop/internal/repository"
)

var (
	// 入力が不正
	ErrNameRequired     = errors.New("name required")
	ErrPhoneRequired    = errors.New("phone required")
	ErrPasswordTooShort = errors.New("password too short")
	ErrInvalidRole      = errors.New("role must be staff or admin")

	// 競合
	ErrPhoneAlreadyExists = errors.New("phone number already registered")
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// スタッフ登録の入力
type RegisterStaffInput struct {
	Name     string
	Phone    string
	Address  string
	Password string
	Role     model.Role
}

// RegisterStaffUsecaseはスタッフ・管理者アカウントの登録処理。
type RegisterStaffUsecase struct {
	accountRepo repo.AccountRepository
	hasher      PasswordHasher
	clock       Clock
}

// DI
func NewRegisterStaffUsecase(
	accountRepo repo.AccountRepository,
	hasher PasswordHasher,
	clock Clock,
) *RegisterStaffUsecase {
	return &RegisterStaffUsecase{
		accountRepo: accountRepo,
		hasher:      hasher,
		clock:       clock,
	}
}

// スタッフ登録実行
func (u *RegisterStaffUsecase) Execute(ctx context.Context, in RegisterStaffInput) (model.Account, error) {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)

	if name == "" {
		return model.Account{}, ErrNameRequired
	}
	if phone == "" {
		return model.Account{}, ErrPhoneRequired
	}

	// パスワードの長さチェック（最小12文字）
	if len(in.Password) < 12 {
		return model.Account{}, ErrPasswordTooShort
	}

	switch in.Role {
	case model.RoleStaff, model.RoleAdmin:
	default:
		return model.Account{}, ErrInvalidRole
	}

	// 電話番号の重複チェック
	_, err := u.accountRepo.FindByPhone(ctx, phone)
	if err == nil {
		return model.Account{}, ErrPhoneAlreadyExists
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.Account{}, err
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return model.Account{}, err
	}

	a := model.Account{
		Name:         name,
		Address:      strings.TrimSpace(in.Address),
		Phone:        phone,
		PasswordHash: hash,
		Role:         in.Role,
	}
	if err := u.accountRepo.Create(ctx, &a); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return model.Account{}, ErrPhoneAlreadyExists
		}
		return model.Account{}, err
	}

	a.PasswordHash = ""
	return a, nil
}
