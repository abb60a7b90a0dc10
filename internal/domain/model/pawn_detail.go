package model

import "github.com/shopspring/decimal"

// 質入れ明細。Pawnの子としてのみ存在する。
type PawnDetail struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	PawnID    int64 `gorm:"not null;index" json:"pawn_id"`
	ProductID int64 `gorm:"not null;index" json:"product_id"`

	Weight    string          `gorm:"type:varchar(50)" json:"weight"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
}
