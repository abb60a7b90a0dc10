package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pawnshop/internal/domain/model"
	repo "pawnshop/internal/repository"
	"pawnshop/internal/usecase"
)

func newOrderUsecase(oRepo *OrderRepoMock, aRepo *AccountRepoMock, pRepo *ProductRepoMock) *usecase.OrderUsecase {
	clients := usecase.NewClientUsecase(aRepo)
	catalog := usecase.NewProductUsecase(pRepo)
	return usecase.NewOrderUsecase(oRepo, aRepo, clients, catalog)
}

func TestOrderUsecase_CreateOrder_ValidatesInput(t *testing.T) {
	uc := newOrderUsecase(new(OrderRepoMock), new(AccountRepoMock), new(ProductRepoMock))

	cases := []struct {
		name string
		in   usecase.CreateOrderInput
	}{
		{"名前なし", usecase.CreateOrderInput{Phone: "090-1111-2222", Lines: []usecase.OrderLineInput{{ProductName: "gold ring"}}}},
		{"電話なし", usecase.CreateOrderInput{CustomerName: "tanaka", Lines: []usecase.OrderLineInput{{ProductName: "gold ring"}}}},
		{"明細なし", usecase.CreateOrderInput{CustomerName: "tanaka", Phone: "090-1111-2222"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateOrder(context.Background(), 1, tc.in)
			assertHTTPError(t, err, http.StatusBadRequest)
		})
	}
}

func TestOrderUsecase_CreateOrder_ExistingCustomerAndProduct(t *testing.T) {
	ctx := context.Background()

	aRepo := new(AccountRepoMock)
	aRepo.On("FindCustomer", mock.Anything, mock.MatchedBy(func(sel repo.CustomerSelector) bool {
		return sel.Name == "tanaka" && sel.Phone == "090-1111-2222"
	})).Return(model.Account{ID: 5, Name: "tanaka", Role: model.RoleUser}, nil)

	pRepo := new(ProductRepoMock)
	pRepo.On("FindByName", mock.Anything, "gold ring").
		Return(model.Product{ID: 3, Name: "gold ring"}, nil)

	oRepo := new(OrderRepoMock)
	oRepo.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.CustomerID == 5
	})).Return(model.Order{ID: 100, CustomerID: 5}, nil)
	oRepo.On("CreateDetail", mock.Anything, mock.MatchedBy(func(d model.OrderDetail) bool {
		return d.OrderID == 100 && d.ProductID == 3 && d.Quantity == 2
	})).Return(nil)

	uc := newOrderUsecase(oRepo, aRepo, pRepo)

	out, err := uc.CreateOrder(ctx, 1, usecase.CreateOrderInput{
		CustomerName: "tanaka",
		Phone:        "090-1111-2222",
		Deposit:      decimal.NewFromInt(10000),
		Lines: []usecase.OrderLineInput{{
			ProductName: "Gold Ring",
			Weight:      "3.5g",
			Quantity:    2,
			SellPrice:   decimal.NewFromInt(50000),
		}},
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(100), out.OrderID)
	assert.Equal(t, int64(5), out.CustomerID)
	assert.False(t, out.CustomerCreated)
	oRepo.AssertExpectations(t)
}

// 未知の顧客・未知の商品は注文作成の途中で作られる
func TestOrderUsecase_CreateOrder_CreatesCustomerAndProduct(t *testing.T) {
	ctx := context.Background()

	aRepo := new(AccountRepoMock)
	aRepo.On("FindCustomer", mock.Anything, mock.Anything).
		Return(model.Account{}, repo.ErrNotFound)
	aRepo.On("FindByPhone", mock.Anything, "080-3333-4444").
		Return(model.Account{}, repo.ErrNotFound)
	aRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Account) bool {
		return a.Name == "suzuki" && a.Role == model.RoleUser
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Account).ID = 21
	}).Return(nil)

	pRepo := new(ProductRepoMock)
	pRepo.On("FindByName", mock.Anything, "silver chain").
		Return(model.Product{}, repo.ErrNotFound)
	pRepo.On("Create", mock.Anything, mock.Anything).
		Return(model.Product{ID: 9, Name: "silver chain"}, nil)

	oRepo := new(OrderRepoMock)
	oRepo.On("Create", mock.Anything, mock.Anything).
		Return(model.Order{ID: 101, CustomerID: 21}, nil)
	oRepo.On("CreateDetail", mock.Anything, mock.MatchedBy(func(d model.OrderDetail) bool {
		return d.ProductID == 9
	})).Return(nil)

	uc := newOrderUsecase(oRepo, aRepo, pRepo)

	out, err := uc.CreateOrder(ctx, 1, usecase.CreateOrderInput{
		CustomerName: "suzuki",
		Phone:        "080-3333-4444",
		Lines:        []usecase.OrderLineInput{{ProductName: "Silver Chain", Quantity: 1}},
	})
	assert.NoError(t, err)
	assert.True(t, out.CustomerCreated)
	assert.Equal(t, int64(21), out.CustomerID)
}

// 2行目で失敗してもヘッダと1行目は既に確定している
func TestOrderUsecase_CreateOrder_SecondLineFailureLeavesHeader(t *testing.T) {
	ctx := context.Background()

	aRepo := new(AccountRepoMock)
	aRepo.On("FindCustomer", mock.Anything, mock.Anything).
		Return(model.Account{ID: 5, Role: model.RoleUser}, nil)

	pRepo := new(ProductRepoMock)
	pRepo.On("FindByName", mock.Anything, "gold ring").
		Return(model.Product{ID: 3, Name: "gold ring"}, nil)
	pRepo.On("FindByName", mock.Anything, "broken one").
		Return(model.Product{}, assert.AnError)

	oRepo := new(OrderRepoMock)
	oRepo.On("Create", mock.Anything, mock.Anything).
		Return(model.Order{ID: 102, CustomerID: 5}, nil)
	oRepo.On("CreateDetail", mock.Anything, mock.MatchedBy(func(d model.OrderDetail) bool {
		return d.ProductID == 3
	})).Return(nil)

	uc := newOrderUsecase(oRepo, aRepo, pRepo)

	_, err := uc.CreateOrder(ctx, 1, usecase.CreateOrderInput{
		CustomerName: "tanaka",
		Phone:        "090-1111-2222",
		Lines: []usecase.OrderLineInput{
			{ProductName: "Gold Ring", Quantity: 1},
			{ProductName: "Broken One", Quantity: 1},
		},
	})
	assertHTTPError(t, err, http.StatusInternalServerError)
	oRepo.AssertCalled(t, "CreateDetail", mock.Anything, mock.Anything)
	oRepo.AssertNumberOfCalls(t, "CreateDetail", 1)
}

func TestOrderUsecase_GetClientOrders_UnknownClient(t *testing.T) {
	aRepo := new(AccountRepoMock)
	aRepo.On("FindCustomer", mock.Anything, mock.Anything).
		Return(model.Account{}, repo.ErrNotFound)

	uc := newOrderUsecase(new(OrderRepoMock), aRepo, new(ProductRepoMock))

	_, err := uc.GetClientOrders(context.Background(), repo.CustomerSelector{Name: "nobody"})
	assertHTTPError(t, err, http.StatusNotFound)
}

// 注文ごとにまとめる。同じ商品が2行あってもそのまま2行とも載せる。
func TestOrderUsecase_GetClientOrders_GroupsWithoutDedup(t *testing.T) {
	ctx := context.Background()
	orderDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	aRepo := new(AccountRepoMock)
	aRepo.On("FindCustomer", mock.Anything, mock.Anything).
		Return(model.Account{ID: 5, Name: "tanaka", Role: model.RoleUser}, nil)

	oRepo := new(OrderRepoMock)
	oRepo.On("ListDetailRows", mock.Anything, mock.Anything).Return([]repo.OrderDetailRow{
		{OrderID: 1, Deposit: decimal.NewFromInt(1000), OrderDate: orderDate, ProductID: 3, ProductName: "gold ring", Quantity: 1},
		{OrderID: 1, Deposit: decimal.NewFromInt(1000), OrderDate: orderDate, ProductID: 3, ProductName: "gold ring", Quantity: 2},
		{OrderID: 2, Deposit: decimal.NewFromInt(0), OrderDate: orderDate, ProductID: 9, ProductName: "silver chain", Quantity: 1},
	}, nil)

	uc := newOrderUsecase(oRepo, aRepo, new(ProductRepoMock))

	records, err := uc.GetClientOrders(ctx, repo.CustomerSelector{Name: "tanaka"})
	assert.NoError(t, err)
	if assert.Len(t, records, 2) {
		assert.Equal(t, int64(1), records[0].OrderID)
		assert.Len(t, records[0].Products, 2)
		assert.Len(t, records[1].Products, 1)
	}
}

func TestOrderUsecase_GetClientOrders_NoOrdersIsEmptyList(t *testing.T) {
	aRepo := new(AccountRepoMock)
	aRepo.On("FindCustomer", mock.Anything, mock.Anything).
		Return(model.Account{ID: 5, Role: model.RoleUser}, nil)

	oRepo := new(OrderRepoMock)
	oRepo.On("ListDetailRows", mock.Anything, mock.Anything).Return([]repo.OrderDetailRow{}, nil)

	uc := newOrderUsecase(oRepo, aRepo, new(ProductRepoMock))

	records, err := uc.GetClientOrders(context.Background(), repo.CustomerSelector{ID: int64ptr(5)})
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestOrderUsecase_LastOrderID(t *testing.T) {
	oRepo := new(OrderRepoMock)
	oRepo.On("LastID", mock.Anything).Return(int64(77), nil)

	uc := newOrderUsecase(oRepo, new(AccountRepoMock), new(ProductRepoMock))

	id, found, err := uc.LastOrderID(context.Background())
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(77), id)
}

func TestOrderUsecase_LastOrderID_NoOrders(t *testing.T) {
	oRepo := new(OrderRepoMock)
	oRepo.On("LastID", mock.Anything).Return(int64(0), repo.ErrNotFound)

	uc := newOrderUsecase(oRepo, new(AccountRepoMock), new(ProductRepoMock))

	_, found, err := uc.LastOrderID(context.Background())
	assert.NoError(t, err)
	assert.False(t, found)
}
