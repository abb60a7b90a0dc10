package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 販売取引のヘッダ。明細（OrderDetail）を1件以上持つ。
type Order struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID int64           `gorm:"not null;index" json:"customer_id"`
	Deposit    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"deposit"`
	OrderDate  time.Time       `gorm:"not null;autoCreateTime" json:"order_date"`

	//ヘッダ削除で明細も消す
	Details []OrderDetail `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
}
