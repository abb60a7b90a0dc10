package repository

import (
	"context"
	"errors"

	"pawnshop/internal/domain/model"
)

var (
	ErrNotFound = errors.New("not found")

	//一意制約（電話番号・商品名）に当たった
	ErrConflict = errors.New("conflict")
)

// 顧客検索の条件。与えられた項目だけをORで突き合わせる（role=userが前提）。
type CustomerSelector struct {
	ID    *int64
	Name  string
	Phone string
}

// 項目が1つも無ければ検索しても意味がない
func (s CustomerSelector) Empty() bool {
	return s.ID == nil && s.Name == "" && s.Phone == ""
}

// アカウントの永続化だけを約束。
type AccountRepository interface {
	//一意制約違反はErrConflictで返す
	Create(ctx context.Context, a *model.Account) error

	FindByID(ctx context.Context, id int64) (model.Account, error)
	FindByPhone(ctx context.Context, phone string) (model.Account, error)

	//role=userの中からOR条件で1件
	FindCustomer(ctx context.Context, sel CustomerSelector) (model.Account, error)

	ListCustomers(ctx context.Context) ([]model.Account, error)
	LastCustomerID(ctx context.Context) (int64, error)

	UpdateLastLogin(ctx context.Context, id int64) error
}
