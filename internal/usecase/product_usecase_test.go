package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pawnshop/internal/domain/model"
	repo "pawnshop/internal/repository"
	"pawnshop/internal/usecase"
)

func TestProductUsecase_CreateProduct_NameRequired(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProductRepoMock))

	_, err := uc.CreateProduct(context.Background(), 1, usecase.CreateProductInput{Name: "   "})
	assertHTTPError(t, err, http.StatusBadRequest)
}

// "Gold Ring"と"gold ring"は同じ商品
func TestProductUsecase_CreateProduct_CaseInsensitiveConflict(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	pRepo.On("FindByName", mock.Anything, "gold ring").
		Return(model.Product{ID: 1, Name: "gold ring"}, nil)

	uc := usecase.NewProductUsecase(pRepo)

	_, err := uc.CreateProduct(ctx, 1, usecase.CreateProductInput{Name: "Gold Ring"})
	assertHTTPError(t, err, http.StatusConflict)
	pRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductUsecase_CreateProduct_StoresLowercase(t *testing.T) {
	ctx := context.Background()
	price := decimal.NewFromInt(1500)

	pRepo := new(ProductRepoMock)
	pRepo.On("FindByName", mock.Anything, "gold ring").
		Return(model.Product{}, repo.ErrNotFound)
	pRepo.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "gold ring" && p.UnitPrice.Valid && p.StaffID == 7
	})).Return(model.Product{ID: 2, Name: "gold ring"}, nil)

	uc := usecase.NewProductUsecase(pRepo)

	created, err := uc.CreateProduct(ctx, 7, usecase.CreateProductInput{
		Name:      "Gold Ring",
		UnitPrice: &price,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), created.ID)
	pRepo.AssertExpectations(t)
}

func TestProductUsecase_LookupOrCreate_Existing(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	pRepo.On("FindByName", mock.Anything, "gold ring").
		Return(model.Product{ID: 3, Name: "gold ring"}, nil)

	uc := usecase.NewProductUsecase(pRepo)

	p, created, err := uc.LookupOrCreateByName(ctx, 1, "Gold Ring")
	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, int64(3), p.ID)
}

// 未知の商品名は価格・数量なしのプレースホルダとして作られる
func TestProductUsecase_LookupOrCreate_CreatesPlaceholder(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	pRepo.On("FindByName", mock.Anything, "silver chain").
		Return(model.Product{}, repo.ErrNotFound)
	pRepo.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "silver chain" && !p.UnitPrice.Valid && p.Amount == nil
	})).Return(model.Product{ID: 9, Name: "silver chain"}, nil)

	uc := usecase.NewProductUsecase(pRepo)

	p, created, err := uc.LookupOrCreateByName(ctx, 1, "Silver Chain")
	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(9), p.ID)
	pRepo.AssertExpectations(t)
}

func TestProductUsecase_UpdateProduct_NoIdentifier(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProductRepoMock))

	price := decimal.NewFromInt(100)
	err := uc.UpdateProduct(context.Background(), usecase.UpdateProductInput{UnitPrice: &price})
	assertHTTPError(t, err, http.StatusBadRequest)
}

func TestProductUsecase_UpdateProduct_NoUpdatableField(t *testing.T) {
	pRepo := new(ProductRepoMock)
	pRepo.On("FindByID", mock.Anything, int64(5)).
		Return(model.Product{ID: 5, Name: "gold ring"}, nil)

	uc := usecase.NewProductUsecase(pRepo)

	err := uc.UpdateProduct(context.Background(), usecase.UpdateProductInput{ID: int64ptr(5)})
	assertHTTPError(t, err, http.StatusBadRequest)
}

// 存在確認が先。無いIDなら更新内容が空でも404。
func TestProductUsecase_UpdateProduct_UnknownIDIsNotFoundBeforeFieldCheck(t *testing.T) {
	pRepo := new(ProductRepoMock)
	pRepo.On("FindByID", mock.Anything, int64(404)).
		Return(model.Product{}, repo.ErrNotFound)

	uc := usecase.NewProductUsecase(pRepo)

	err := uc.UpdateProduct(context.Background(), usecase.UpdateProductInput{ID: int64ptr(404)})
	assertHTTPError(t, err, http.StatusNotFound)
	pRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// IDと名前の両方があればIDを使う
func TestProductUsecase_UpdateProduct_IDWinsOverName(t *testing.T) {
	ctx := context.Background()
	amount := int64(4)

	pRepo := new(ProductRepoMock)
	pRepo.On("FindByID", mock.Anything, int64(5)).
		Return(model.Product{ID: 5, Name: "gold ring"}, nil)
	pRepo.On("UpdateFields", mock.Anything, int64(5), (*decimal.Decimal)(nil), &amount).Return(nil)

	uc := usecase.NewProductUsecase(pRepo)

	err := uc.UpdateProduct(ctx, usecase.UpdateProductInput{
		ID:     int64ptr(5),
		Name:   "Gold Ring",
		Amount: &amount,
	})
	assert.NoError(t, err)
	pRepo.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
}

func TestProductUsecase_UpdateProduct_ByName(t *testing.T) {
	ctx := context.Background()
	price := decimal.NewFromInt(2000)

	pRepo := new(ProductRepoMock)
	pRepo.On("FindByName", mock.Anything, "gold ring").
		Return(model.Product{ID: 8, Name: "gold ring"}, nil)
	pRepo.On("UpdateFields", mock.Anything, int64(8), &price, (*int64)(nil)).Return(nil)

	uc := usecase.NewProductUsecase(pRepo)

	err := uc.UpdateProduct(ctx, usecase.UpdateProductInput{Name: "Gold Ring", UnitPrice: &price})
	assert.NoError(t, err)
	pRepo.AssertExpectations(t)
}

func TestProductUsecase_UpdateProduct_NotFound(t *testing.T) {
	ctx := context.Background()
	price := decimal.NewFromInt(2000)

	pRepo := new(ProductRepoMock)
	pRepo.On("FindByID", mock.Anything, int64(404)).
		Return(model.Product{}, repo.ErrNotFound)

	uc := usecase.NewProductUsecase(pRepo)

	err := uc.UpdateProduct(ctx, usecase.UpdateProductInput{ID: int64ptr(404), UnitPrice: &price})
	assertHTTPError(t, err, http.StatusNotFound)
	pRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// ID指定の削除は冪等。無くても成功。
func TestProductUsecase_DeleteByID_AbsentIsSuccess(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	pRepo.On("DeleteByID", mock.Anything, int64(99)).Return(false, nil)

	uc := usecase.NewProductUsecase(pRepo)

	deleted, err := uc.DeleteProductByID(ctx, 99)
	assert.NoError(t, err)
	assert.False(t, deleted)
}

// 名前指定の削除は対象が無ければ404
func TestProductUsecase_DeleteByName_AbsentIsNotFound(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	pRepo.On("DeleteByName", mock.Anything, "gold ring").Return(repo.ErrNotFound)

	uc := usecase.NewProductUsecase(pRepo)

	err := uc.DeleteProductByName(ctx, "Gold Ring")
	assertHTTPError(t, err, http.StatusNotFound)
}

func TestProductUsecase_DeleteAll_ReturnsCount(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	pRepo.On("DeleteAll", mock.Anything).Return(int64(12), nil)

	uc := usecase.NewProductUsecase(pRepo)

	n, err := uc.DeleteAllProducts(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), n)
}

func TestProductUsecase_GetProductByID_NotFound(t *testing.T) {
	pRepo := new(ProductRepoMock)
	pRepo.On("FindByID", mock.Anything, int64(123)).Return(model.Product{}, repo.ErrNotFound)

	uc := usecase.NewProductUsecase(pRepo)

	_, err := uc.GetProductByID(context.Background(), 123)
	assertHTTPError(t, err, http.StatusNotFound)
}

func TestProductUsecase_SearchByName_Matches(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	pRepo.On("SearchByName", mock.Anything, "ring").Return([]model.Product{
		{ID: 1, Name: "gold ring"},
		{ID: 4, Name: "silver ring"},
	}, nil)

	uc := usecase.NewProductUsecase(pRepo)

	items, err := uc.SearchProductsByName(ctx, "ring")
	assert.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestProductUsecase_SearchByName_Empty(t *testing.T) {
	pRepo := new(ProductRepoMock)
	pRepo.On("SearchByName", mock.Anything, "emerald").Return([]model.Product{}, nil)

	uc := usecase.NewProductUsecase(pRepo)

	_, err := uc.SearchProductsByName(context.Background(), "emerald")
	assertHTTPError(t, err, http.StatusNotFound)
}

func TestProductUsecase_NextProductID(t *testing.T) {
	pRepo := new(ProductRepoMock)
	pRepo.On("LastID", mock.Anything).Return(int64(122), nil)

	uc := usecase.NewProductUsecase(pRepo)

	id, err := uc.NextProductID(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(123), id)
}

func TestProductUsecase_ListProducts_EmptyCatalog(t *testing.T) {
	pRepo := new(ProductRepoMock)
	pRepo.On("List", mock.Anything).Return([]model.Product{}, nil)

	uc := usecase.NewProductUsecase(pRepo)

	_, err := uc.ListProducts(context.Background())
	assertHTTPError(t, err, http.StatusNotFound)
}
