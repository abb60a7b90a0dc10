package model

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
	RoleUser  Role = "user"
)

// Accountはスタッフ・管理者・顧客を1つのテーブルで持つ。
// 顧客（role=user）は登録・注文・質入れのどれかで作られる。
type Account struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"type:varchar(255);not null" json:"name"`
	Address string `gorm:"type:varchar(255)" json:"address"`

	//電話番号は全アカウントで一意
	Phone string `gorm:"type:varchar(30);not null;uniqueIndex" json:"phone"`

	//顧客は空のまま
	PasswordHash string `gorm:"column:password_hash" json:"-"`

	Role Role `gorm:"type:varchar(20);not null;default:'user';index" json:"role"`

	LastLoginAt *time.Time `json:"-"`
	CreatedAt   time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
