package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pawnshop/internal/domain/model"
	repo "pawnshop/internal/repository"
)

type PawnGormRepository struct {
	db *gorm.DB
}

func NewPawnGormRepository(db *gorm.DB) *PawnGormRepository {
	return &PawnGormRepository{db: db}
}

func (r *PawnGormRepository) Create(ctx context.Context, p model.Pawn) (model.Pawn, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Pawn{}, err
	}
	return p, nil
}

// 明細は1行ずつ確定する。途中で失敗しても先に入った行は残る。
func (r *PawnGormRepository) CreateDetail(ctx context.Context, d model.PawnDetail) error {
	return r.db.WithContext(ctx).Create(&d).Error
}

// Account→Pawn→PawnDetail→ProductのJOIN行。
func (r *PawnGormRepository) ListDetailRows(ctx context.Context, sel repo.CustomerSelector) ([]repo.PawnDetailRow, error) {
	if sel.Empty() {
		return []repo.PawnDetailRow{}, nil
	}

	var rows []repo.PawnDetailRow
	err := r.db.WithContext(ctx).
		Table("accounts").
		Select(`accounts.phone AS phone,
			accounts.name AS customer_name,
			pawns.id AS pawn_id,
			pawns.deposit AS deposit,
			products.name AS product_name,
			products.id AS product_id,
			pawn_details.weight AS weight,
			pawn_details.quantity AS quantity,
			pawn_details.unit_price AS unit_price,
			pawns.pawn_date AS pawn_date,
			pawns.expire_date AS expire_date`).
		Joins("JOIN pawns ON pawns.customer_id = accounts.id").
		Joins("JOIN pawn_details ON pawn_details.pawn_id = pawns.id").
		Joins("JOIN products ON products.id = pawn_details.product_id").
		Where("accounts.role = ?", model.RoleUser).
		Where(accountOrCondition(r.db, sel)).
		Order("pawns.id asc, pawn_details.id asc").
		Scan(&rows).Error
	if err != nil {
		return []repo.PawnDetailRow{}, err
	}
	return rows, nil
}

// 全質入れのJOIN行。filterが空なら全件、あればOR条件で絞る。新しい質入れが先。
func (r *PawnGormRepository) ListAllRows(ctx context.Context, f repo.PawnListFilter) ([]repo.PawnCustomerRow, error) {
	tx := r.db.WithContext(ctx).
		Table("accounts").
		Select(`accounts.id AS customer_id,
			accounts.name AS customer_name,
			accounts.phone AS phone,
			accounts.address AS address,
			pawns.id AS pawn_id,
			pawns.deposit AS deposit,
			pawns.pawn_date AS pawn_date,
			pawns.expire_date AS expire_date,
			products.id AS product_id,
			products.name AS product_name,
			pawn_details.weight AS weight,
			pawn_details.quantity AS quantity,
			pawn_details.unit_price AS unit_price`).
		Joins("JOIN pawns ON pawns.customer_id = accounts.id").
		Joins("JOIN pawn_details ON pawn_details.pawn_id = pawns.id").
		Joins("JOIN products ON products.id = pawn_details.product_id")

	if !f.Empty() {
		tx = tx.Where("accounts.role = ?", model.RoleUser).
			Where(accountFilterCondition(r.db, f))
	}

	var rows []repo.PawnCustomerRow
	if err := tx.Order("pawns.id desc, pawn_details.id asc").Scan(&rows).Error; err != nil {
		return []repo.PawnCustomerRow{}, err
	}
	return rows, nil
}

func (r *PawnGormRepository) LastID(ctx context.Context) (int64, error) {
	var p model.Pawn
	err := r.db.WithContext(ctx).Order("id desc").First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, repo.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return p.ID, nil
}
