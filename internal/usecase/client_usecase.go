package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"pawnshop/internal/domain/model"
	repo "pawnshop/internal/repository"
)

type ClientUsecase struct {
	accountRepo repo.AccountRepository
}

// DI
func NewClientUsecase(accountRepo repo.AccountRepository) *ClientUsecase {
	return &ClientUsecase{accountRepo: accountRepo}
}

type CreateClientInput struct {
	Name    string
	Address string
	Phone   string
}

// 顧客の登録。電話番号は全アカウントで一意。
func (u *ClientUsecase) CreateClient(ctx context.Context, in CreateClientInput) (model.Account, error) {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	if name == "" {
		return model.Account{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if phone == "" {
		return model.Account{}, NewHTTPError(http.StatusBadRequest, "phone required")
	}

	_, err := u.accountRepo.FindByPhone(ctx, phone)
	if err == nil {
		return model.Account{}, NewHTTPError(http.StatusConflict, "phone number already registered")
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.Account{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	a := model.Account{
		Name:    name,
		Address: strings.TrimSpace(in.Address),
		Phone:   phone,
		Role:    model.RoleUser,
	}
	if err := u.accountRepo.Create(ctx, &a); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			//pre-checkをすり抜けた並行登録は一意制約で弾かれる
			return model.Account{}, NewHTTPError(http.StatusConflict, "phone number already registered")
		}
		return model.Account{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return a, nil
}

// 注文・質入れ作成時の顧客解決に使う入力。
type ResolveCustomerInput struct {
	ID      *int64
	Name    string
	Address string
	Phone   string
}

// ID・電話・名前のどれかで顧客を探し、いなければ新規に作る。
// createdで既存か新規かを呼び出し側に伝える。
func (u *ClientUsecase) ResolveCustomer(ctx context.Context, in ResolveCustomerInput) (model.Account, bool, error) {
	sel := repo.CustomerSelector{
		ID:    in.ID,
		Name:  strings.TrimSpace(in.Name),
		Phone: strings.TrimSpace(in.Phone),
	}

	a, err := u.accountRepo.FindCustomer(ctx, sel)
	if err == nil {
		return a, false, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.Account{}, false, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	created, err := u.CreateClient(ctx, CreateClientInput{
		Name:    in.Name,
		Address: in.Address,
		Phone:   in.Phone,
	})
	if err != nil {
		return model.Account{}, false, err
	}
	return created, true, nil
}

func (u *ClientUsecase) ListClients(ctx context.Context) ([]model.Account, error) {
	items, err := u.accountRepo.ListCustomers(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// 次の顧客IDの見込み。予約はしない。
func (u *ClientUsecase) NextClientID(ctx context.Context) (int64, error) {
	last, err := u.accountRepo.LastCustomerID(ctx)
	if errors.Is(err, repo.ErrNotFound) {
		return 0, NewHTTPError(http.StatusNotFound, "no clients found")
	}
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return last + 1, nil
}
