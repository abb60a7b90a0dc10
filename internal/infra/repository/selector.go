package repository

import (
	"strings"

	"gorm.io/gorm"

	repo "pawnshop/internal/repository"
)

// JOINクエリ用のOR条件（accounts.を付けて列を曖昧にしない）。
func accountOrCondition(db *gorm.DB, sel repo.CustomerSelector) *gorm.DB {
	var cond *gorm.DB
	add := func(q string, v interface{}) {
		if cond == nil {
			cond = db.Where(q, v)
		} else {
			cond = cond.Or(q, v)
		}
	}

	if sel.ID != nil {
		add("accounts.id = ?", *sel.ID)
	}
	if sel.Phone != "" {
		add("accounts.phone = ?", sel.Phone)
	}
	if sel.Name != "" {
		add("LOWER(accounts.name) = ?", strings.ToLower(sel.Name))
	}
	return cond
}

// 全件一覧の絞り込み条件。IDは一致、名前・電話は部分一致。
func accountFilterCondition(db *gorm.DB, f repo.PawnListFilter) *gorm.DB {
	var cond *gorm.DB
	add := func(q string, v interface{}) {
		if cond == nil {
			cond = db.Where(q, v)
		} else {
			cond = cond.Or(q, v)
		}
	}

	if f.ID != nil {
		add("accounts.id = ?", *f.ID)
	}
	if f.Name != "" {
		add("accounts.name ILIKE ?", "%"+f.Name+"%")
	}
	if f.Phone != "" {
		add("accounts.phone LIKE ?", "%"+f.Phone+"%")
	}
	return cond
}
