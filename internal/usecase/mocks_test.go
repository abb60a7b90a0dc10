package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pawnshop/internal/domain/model"
	repo "pawnshop/internal/repository"
	"pawnshop/internal/usecase"
)

// =====================
// Mocks
// =====================

type AccountRepoMock struct{ mock.Mock }

func (m *AccountRepoMock) Create(ctx context.Context, a *model.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *AccountRepoMock) FindByID(ctx context.Context, id int64) (model.Account, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(model.Account)
	return a, args.Error(1)
}

func (m *AccountRepoMock) FindByPhone(ctx context.Context, phone string) (model.Account, error) {
	args := m.Called(ctx, phone)
	a, _ := args.Get(0).(model.Account)
	return a, args.Error(1)
}

func (m *AccountRepoMock) FindCustomer(ctx context.Context, sel repo.CustomerSelector) (model.Account, error) {
	args := m.Called(ctx, sel)
	a, _ := args.Get(0).(model.Account)
	return a, args.Error(1)
}

func (m *AccountRepoMock) ListCustomers(ctx context.Context) ([]model.Account, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Account)
	return items, args.Error(1)
}

func (m *AccountRepoMock) LastCustomerID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AccountRepoMock) UpdateLastLogin(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindByName(ctx context.Context, name string) (model.Product, error) {
	args := m.Called(ctx, name)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) SearchByName(ctx context.Context, q string) ([]model.Product, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) UpdateFields(ctx context.Context, id int64, price *decimal.Decimal, amount *int64) error {
	args := m.Called(ctx, id, price, amount)
	return args.Error(0)
}

func (m *ProductRepoMock) DeleteByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *ProductRepoMock) DeleteByName(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *ProductRepoMock) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepoMock) LastID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, o model.Order) (model.Order, error) {
	args := m.Called(ctx, o)
	created, _ := args.Get(0).(model.Order)
	return created, args.Error(1)
}

func (m *OrderRepoMock) CreateDetail(ctx context.Context, d model.OrderDetail) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *OrderRepoMock) ListDetailRows(ctx context.Context, sel repo.CustomerSelector) ([]repo.OrderDetailRow, error) {
	args := m.Called(ctx, sel)
	rows, _ := args.Get(0).([]repo.OrderDetailRow)
	return rows, args.Error(1)
}

func (m *OrderRepoMock) LastID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type PawnRepoMock struct{ mock.Mock }

func (m *PawnRepoMock) Create(ctx context.Context, p model.Pawn) (model.Pawn, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Pawn)
	return created, args.Error(1)
}

func (m *PawnRepoMock) CreateDetail(ctx context.Context, d model.PawnDetail) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *PawnRepoMock) ListDetailRows(ctx context.Context, sel repo.CustomerSelector) ([]repo.PawnDetailRow, error) {
	args := m.Called(ctx, sel)
	rows, _ := args.Get(0).([]repo.PawnDetailRow)
	return rows, args.Error(1)
}

func (m *PawnRepoMock) ListAllRows(ctx context.Context, f repo.PawnListFilter) ([]repo.PawnCustomerRow, error) {
	args := m.Called(ctx, f)
	rows, _ := args.Get(0).([]repo.PawnCustomerRow)
	return rows, args.Error(1)
}

func (m *PawnRepoMock) LastID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// =====================
// Helpers
// =====================

func assertHTTPError(t *testing.T, err error, status int) {
	t.Helper()
	assert.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok, "expected HTTPError, got %v", err) {
		assert.Equal(t, status, he.Status)
	}
}

func int64ptr(v int64) *int64 {
	return &v
}
