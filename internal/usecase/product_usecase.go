package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"pawnshop/internal/domain/model"
	repo "pawnshop/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ProductUsecase struct {
	productRepo repo.ProductRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo}
}

// POST /staff/products の入力DTO
type CreateProductInput struct {
	Name      string
	UnitPrice *decimal.Decimal
	Amount    *int64
}

// 商品名は小文字で比較・保存する。価格と数量は無くてもよい（プレースホルダ）。
func (u *ProductUsecase) CreateProduct(ctx context.Context, staffID int64, in CreateProductInput) (model.Product, error) {
	if staffID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	name := normalizeProductName(in.Name)
	if name == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	_, err := u.productRepo.FindByName(ctx, name)
	if err == nil {
		return model.Product{}, NewHTTPError(http.StatusConflict, "product already exists")
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p := model.Product{
		Name:    name,
		StaffID: staffID,
	}
	if in.UnitPrice != nil {
		p.UnitPrice = decimal.NewNullDecimal(*in.UnitPrice)
	}
	if in.Amount != nil {
		amount := *in.Amount
		p.Amount = &amount
	}

	created, err := u.productRepo.Create(ctx, p)
	if errors.Is(err, repo.ErrConflict) {
		//pre-checkの後に別リクエストが同名を入れた
		return model.Product{}, NewHTTPError(http.StatusConflict, "product already exists")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

// 既存の商品を返すか、名前だけのプレースホルダを作って返す。
// 戻り値のcreatedで「作った」のか「見つけた」のかを区別できる。
func (u *ProductUsecase) LookupOrCreateByName(ctx context.Context, staffID int64, name string) (model.Product, bool, error) {
	normalized := normalizeProductName(name)
	if normalized == "" {
		return model.Product{}, false, NewHTTPError(http.StatusBadRequest, "product name required")
	}

	p, err := u.productRepo.FindByName(ctx, normalized)
	if err == nil {
		return p, false, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, false, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	created, err := u.productRepo.Create(ctx, model.Product{
		Name:    normalized,
		StaffID: staffID,
	})
	if errors.Is(err, repo.ErrConflict) {
		//find-or-createの競合。負けた側は一意制約で弾かれる。
		return model.Product{}, false, NewHTTPError(http.StatusConflict, "product already exists")
	}
	if err != nil {
		return model.Product{}, false, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, true, nil
}

func (u *ProductUsecase) ListProducts(ctx context.Context) ([]model.Product, error) {
	items, err := u.productRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(items) == 0 {
		return nil, NewHTTPError(http.StatusNotFound, "products not found")
	}
	return items, nil
}

func (u *ProductUsecase) GetProductByID(ctx context.Context, id int64) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	p, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, fmt.Sprintf("product with id %d not found", id))
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 部分一致検索（大文字小文字を無視）。
func (u *ProductUsecase) SearchProductsByName(ctx context.Context, q string) ([]model.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "search query required")
	}
	items, err := u.productRepo.SearchByName(ctx, q)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(items) == 0 {
		return nil, NewHTTPError(http.StatusNotFound, fmt.Sprintf("no products found with name %q", q))
	}
	return items, nil
}

// PUT /staff/products の入力DTO。IDと名前の両方があればIDを使う。
type UpdateProductInput struct {
	ID        *int64
	Name      string
	UnitPrice *decimal.Decimal
	Amount    *int64
}

// 更新できるのは価格と数量だけ。
func (u *ProductUsecase) UpdateProduct(ctx context.Context, in UpdateProductInput) error {
	if in.ID == nil && strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "provide either a product id or product name")
	}

	//対象の存在確認が先。無い商品への更新は内容に関係なく404。
	var id int64
	if in.ID != nil {
		p, err := u.productRepo.FindByID(ctx, *in.ID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		id = p.ID
	} else {
		p, err := u.productRepo.FindByName(ctx, normalizeProductName(in.Name))
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		id = p.ID
	}

	if in.UnitPrice == nil && in.Amount == nil {
		return NewHTTPError(http.StatusBadRequest, "no valid fields provided for update")
	}

	err := u.productRepo.UpdateFields(ctx, id, in.UnitPrice, in.Amount)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// ID指定の削除は冪等。無かったら無かったまま成功にする。
func (u *ProductUsecase) DeleteProductByID(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	deleted, err := u.productRepo.DeleteByID(ctx, id)
	if err != nil {
		return false, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return deleted, nil
}

// 名前指定の削除は対象が無ければ404。
func (u *ProductUsecase) DeleteProductByName(ctx context.Context, name string) error {
	normalized := normalizeProductName(name)
	if normalized == "" {
		return NewHTTPError(http.StatusBadRequest, "product name required")
	}
	err := u.productRepo.DeleteByName(ctx, normalized)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, fmt.Sprintf("product with name %q not found", name))
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *ProductUsecase) DeleteAllProducts(ctx context.Context) (int64, error) {
	n, err := u.productRepo.DeleteAll(ctx)
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return n, nil
}

// 次に採番されそうなID。予約ではないので並行作成で追い越されることがある。
func (u *ProductUsecase) NextProductID(ctx context.Context) (int64, error) {
	last, err := u.productRepo.LastID(ctx)
	if errors.Is(err, repo.ErrNotFound) {
		return 0, NewHTTPError(http.StatusNotFound, "no products found")
	}
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return last + 1, nil
}

func normalizeProductName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
