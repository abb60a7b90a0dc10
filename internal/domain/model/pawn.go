package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 質入れ取引のヘッダ。PawnDate <= ExpireDateは作成時に検証する。
type Pawn struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID int64           `gorm:"not null;index" json:"customer_id"`
	Deposit    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"deposit"`
	PawnDate   time.Time       `gorm:"not null" json:"pawn_date"`
	ExpireDate time.Time       `gorm:"not null" json:"expire_date"`

	Details []PawnDetail `gorm:"foreignKey:PawnID;constraint:OnDelete:CASCADE" json:"-"`
}
