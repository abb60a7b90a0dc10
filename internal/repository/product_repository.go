package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"pawnshop/internal/domain/model"
)

// 商品の永続化（保存・取得・削除）だけを約束。
// nameは呼び出し側が小文字化してから渡す。
type ProductRepository interface {
	//一意制約違反はErrConflictで返す
	Create(ctx context.Context, p model.Product) (model.Product, error)

	FindByID(ctx context.Context, id int64) (model.Product, error)
	FindByName(ctx context.Context, name string) (model.Product, error)

	//部分一致（大文字小文字を無視）
	SearchByName(ctx context.Context, q string) ([]model.Product, error)

	List(ctx context.Context) ([]model.Product, error)

	//価格と数量だけを更新する。対象なしはErrNotFound。
	UpdateFields(ctx context.Context, id int64, price *decimal.Decimal, amount *int64) error

	//戻り値は実際に消えたかどうか
	DeleteByID(ctx context.Context, id int64) (bool, error)
	DeleteByName(ctx context.Context, name string) error
	DeleteAll(ctx context.Context) (int64, error)

	LastID(ctx context.Context) (int64, error)
}
