package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"pawnshop/internal/domain/model"
)

// 4テーブルJOINの1行。位置indexではなく名前で受ける。
type OrderDetailRow struct {
	CustomerName string          `gorm:"column:customer_name"`
	Phone        string          `gorm:"column:phone"`
	OrderID      int64           `gorm:"column:order_id"`
	Deposit      decimal.Decimal `gorm:"column:deposit"`
	ProductName  string          `gorm:"column:product_name"`
	ProductID    int64           `gorm:"column:product_id"`
	Weight       string          `gorm:"column:weight"`
	Quantity     int64           `gorm:"column:quantity"`
	SellPrice    decimal.Decimal `gorm:"column:sell_price"`
	LaborCost    decimal.Decimal `gorm:"column:labor_cost"`
	BuyPrice     decimal.Decimal `gorm:"column:buy_price"`
	OrderDate    time.Time       `gorm:"column:order_date"`
}

type OrderRepository interface {
	Create(ctx context.Context, o model.Order) (model.Order, error)

	//ヘッダとは別に1行ずつ確定する（全体トランザクションは張らない）
	CreateDetail(ctx context.Context, d model.OrderDetail) error

	//Account→Order→OrderDetail→ProductのJOIN行
	ListDetailRows(ctx context.Context, sel CustomerSelector) ([]OrderDetailRow, error)

	LastID(ctx context.Context) (int64, error)
}
