package model

import "github.com/shopspring/decimal"

// 販売明細。Orderの子としてのみ存在する。
type OrderDetail struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64 `gorm:"not null;index" json:"order_id"`
	ProductID int64 `gorm:"not null;index" json:"product_id"`

	//重さの表記（"3.8g"など）をそのまま持つ
	Weight   string `gorm:"type:varchar(50)" json:"weight"`
	Quantity int64  `gorm:"not null" json:"quantity"`

	SellPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"sell_price"`
	LaborCost decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"labor_cost"`
	BuyPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"buy_price"`
}
