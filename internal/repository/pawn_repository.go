package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"pawnshop/internal/domain/model"
)

// 顧客1人分の質入れJOIN行（全件一覧用。顧客の住所まで持つ）。
type PawnCustomerRow struct {
	CustomerID   int64           `gorm:"column:customer_id"`
	CustomerName string          `gorm:"column:customer_name"`
	Phone        string          `gorm:"column:phone"`
	Address      string          `gorm:"column:address"`
	PawnID       int64           `gorm:"column:pawn_id"`
	Deposit      decimal.Decimal `gorm:"column:deposit"`
	PawnDate     time.Time       `gorm:"column:pawn_date"`
	ExpireDate   time.Time       `gorm:"column:expire_date"`
	ProductID    int64           `gorm:"column:product_id"`
	ProductName  string          `gorm:"column:product_name"`
	Weight       string          `gorm:"column:weight"`
	Quantity     int64           `gorm:"column:quantity"`
	UnitPrice    decimal.Decimal `gorm:"column:unit_price"`
}

// 質入れJOINの1行（顧客指定の照会用）。
type PawnDetailRow struct {
	Phone        string          `gorm:"column:phone"`
	CustomerName string          `gorm:"column:customer_name"`
	PawnID       int64           `gorm:"column:pawn_id"`
	Deposit      decimal.Decimal `gorm:"column:deposit"`
	ProductName  string          `gorm:"column:product_name"`
	ProductID    int64           `gorm:"column:product_id"`
	Weight       string          `gorm:"column:weight"`
	Quantity     int64           `gorm:"column:quantity"`
	UnitPrice    decimal.Decimal `gorm:"column:unit_price"`
	PawnDate     time.Time       `gorm:"column:pawn_date"`
	ExpireDate   time.Time       `gorm:"column:expire_date"`
}

// 全件一覧の絞り込み。IDは一致、名前と電話は部分一致。
type PawnListFilter struct {
	ID    *int64
	Name  string
	Phone string
}

func (f PawnListFilter) Empty() bool {
	return f.ID == nil && f.Name == "" && f.Phone == ""
}

type PawnRepository interface {
	Create(ctx context.Context, p model.Pawn) (model.Pawn, error)
	CreateDetail(ctx context.Context, d model.PawnDetail) error

	ListDetailRows(ctx context.Context, sel CustomerSelector) ([]PawnDetailRow, error)

	//pawn id降順。filterが空なら全件。
	ListAllRows(ctx context.Context, f PawnListFilter) ([]PawnCustomerRow, error)

	LastID(ctx context.Context) (int64, error)
}
