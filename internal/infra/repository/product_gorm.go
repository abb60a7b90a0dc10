package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pawnshop/internal/domain/model"
	repo "pawnshop/internal/repository"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 商品の作成。名前の一意制約に当たったらErrConflict。
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	err := r.db.WithContext(ctx).Create(&p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return model.Product{}, repo.ErrConflict
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 小文字化済みの名前で完全一致1件。
func (r *ProductGormRepository) FindByName(ctx context.Context, name string) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 部分一致検索。大文字小文字は無視する。
func (r *ProductGormRepository) SearchByName(ctx context.Context, q string) ([]model.Product, error) {
	var items []model.Product
	like := "%" + q + "%"
	err := r.db.WithContext(ctx).
		Where("name ILIKE ?", like).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.Product{}, err
	}
	return items, nil
}

func (r *ProductGormRepository) List(ctx context.Context) ([]model.Product, error) {
	var items []model.Product
	err := r.db.WithContext(ctx).Order("id asc").Find(&items).Error
	if err != nil {
		return []model.Product{}, err
	}
	return items, nil
}

// 価格・数量のうち渡されたものだけを更新する。
func (r *ProductGormRepository) UpdateFields(ctx context.Context, id int64, price *decimal.Decimal, amount *int64) error {
	updates := map[string]interface{}{}
	if price != nil {
		updates["unit_price"] = *price
	}
	if amount != nil {
		updates["amount"] = *amount
	}

	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// ID指定の削除。消えたかどうかを返す（無くてもエラーにしない）。
func (r *ProductGormRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ProductGormRepository) DeleteByName(ctx context.Context, name string) error {
	res := r.db.WithContext(ctx).Where("name = ?", name).Delete(&model.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductGormRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Product{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// 一番新しい商品のID。商品が無ければErrNotFound。
func (r *ProductGormRepository) LastID(ctx context.Context) (int64, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Order("id desc").First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, repo.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return p.ID, nil
}
