package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"pawnshop/internal/domain/model"
	repo "pawnshop/internal/repository"
)

type AccountGormRepository struct {
	db *gorm.DB
}

// DI
func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

// アカウントの作成。電話番号の一意制約に当たったらErrConflict。
func (r *AccountGormRepository) Create(ctx context.Context, a *model.Account) error {
	err := r.db.WithContext(ctx).Create(a).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repo.ErrConflict
	}
	return err
}

func (r *AccountGormRepository) FindByID(ctx context.Context, id int64) (model.Account, error) {
	var a model.Account
	err := r.db.WithContext(ctx).First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Account{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Account{}, err
	}
	return a, nil
}

func (r *AccountGormRepository) FindByPhone(ctx context.Context, phone string) (model.Account, error) {
	var a model.Account
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Account{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Account{}, err
	}
	return a, nil
}

// role=userの中から、与えられた項目のOR条件で1件返す。
func (r *AccountGormRepository) FindCustomer(ctx context.Context, sel repo.CustomerSelector) (model.Account, error) {
	if sel.Empty() {
		return model.Account{}, repo.ErrNotFound
	}

	cond := customerOrCondition(r.db, sel)

	var a model.Account
	err := r.db.WithContext(ctx).
		Where("role = ?", model.RoleUser).
		Where(cond).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Account{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Account{}, err
	}
	return a, nil
}

func (r *AccountGormRepository) ListCustomers(ctx context.Context) ([]model.Account, error) {
	var items []model.Account
	err := r.db.WithContext(ctx).
		Where("role = ?", model.RoleUser).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.Account{}, err
	}
	return items, nil
}

// 一番新しい顧客のID。顧客が1人もいなければErrNotFound。
func (r *AccountGormRepository) LastCustomerID(ctx context.Context) (int64, error) {
	var a model.Account
	err := r.db.WithContext(ctx).
		Where("role = ?", model.RoleUser).
		Order("id desc").
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, repo.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return a.ID, nil
}

func (r *AccountGormRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Update("last_login_at", &now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// id一致 OR 電話一致 OR 名前一致（小文字化）のOR条件を組み立てる。
func customerOrCondition(db *gorm.DB, sel repo.CustomerSelector) *gorm.DB {
	var cond *gorm.DB
	add := func(q string, v interface{}) {
		if cond == nil {
			cond = db.Where(q, v)
		} else {
			cond = cond.Or(q, v)
		}
	}

	if sel.ID != nil {
		add("id = ?", *sel.ID)
	}
	if sel.Phone != "" {
		add("phone = ?", sel.Phone)
	}
	if sel.Name != "" {
		add("LOWER(name) = ?", strings.ToLower(sel.Name))
	}
	return cond
}
