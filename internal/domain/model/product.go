package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 商品。nameは小文字で保存して大文字小文字の違いは同一商品とみなす。
// 明細から暗黙に作られた行はUnitPrice/Amountがnullのまま（プレースホルダ商品）。
type Product struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`

	UnitPrice decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"price"`
	Amount    *int64              `json:"amount"`

	//登録したスタッフ
	StaffID int64 `gorm:"index" json:"staff_id"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
