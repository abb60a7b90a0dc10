package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pawnshop/internal/domain/model"
	repo "pawnshop/internal/repository"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) Create(ctx context.Context, o model.Order) (model.Order, error) {
	if err := r.db.WithContext(ctx).Create(&o).Error; err != nil {
		return model.Order{}, err
	}
	return o, nil
}

// 明細は1行ずつ確定する。途中で失敗しても先に入った行は残る。
func (r *OrderGormRepository) CreateDetail(ctx context.Context, d model.OrderDetail) error {
	return r.db.WithContext(ctx).Create(&d).Error
}

// Account→Order→OrderDetail→ProductのJOIN行を名前付きで受ける。
func (r *OrderGormRepository) ListDetailRows(ctx context.Context, sel repo.CustomerSelector) ([]repo.OrderDetailRow, error) {
	if sel.Empty() {
		return []repo.OrderDetailRow{}, nil
	}

	var rows []repo.OrderDetailRow
	err := r.db.WithContext(ctx).
		Table("accounts").
		Select(`accounts.name AS customer_name,
			accounts.phone AS phone,
			orders.id AS order_id,
			orders.deposit AS deposit,
			products.name AS product_name,
			products.id AS product_id,
			order_details.weight AS weight,
			order_details.quantity AS quantity,
			order_details.sell_price AS sell_price,
			order_details.labor_cost AS labor_cost,
			order_details.buy_price AS buy_price,
			orders.order_date AS order_date`).
		Joins("JOIN orders ON orders.customer_id = accounts.id").
		Joins("JOIN order_details ON order_details.order_id = orders.id").
		Joins("JOIN products ON products.id = order_details.product_id").
		Where("accounts.role = ?", model.RoleUser).
		Where(accountOrCondition(r.db, sel)).
		Order("orders.id asc, order_details.id asc").
		Scan(&rows).Error
	if err != nil {
		return []repo.OrderDetailRow{}, err
	}
	return rows, nil
}

func (r *OrderGormRepository) LastID(ctx context.Context) (int64, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Order("id desc").First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, repo.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return o.ID, nil
}
