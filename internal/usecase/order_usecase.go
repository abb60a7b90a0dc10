package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"pawnshop/internal/domain/model"
	repo "pawnshop/internal/repository"
)

type OrderUsecase struct {
	orderRepo   repo.OrderRepository
	accountRepo repo.AccountRepository
	clients     *ClientUsecase
	catalog     *ProductUsecase
}

// DI
func NewOrderUsecase(
	orderRepo repo.OrderRepository,
	accountRepo repo.AccountRepository,
	clients *ClientUsecase,
	catalog *ProductUsecase,
) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:   orderRepo,
		accountRepo: accountRepo,
		clients:     clients,
		catalog:     catalog,
	}
}

type OrderLineInput struct {
	ProductName string
	Weight      string
	Quantity    int64
	SellPrice   decimal.Decimal
	LaborCost   decimal.Decimal
	BuyPrice    decimal.Decimal
}

type CreateOrderInput struct {
	CustomerID   *int64
	CustomerName string
	Address      string
	Phone        string
	Deposit      decimal.Decimal
	Lines        []OrderLineInput
}

type CreateOrderOutput struct {
	OrderID         int64 `json:"order_id"`
	CustomerID      int64 `json:"customer_id"`
	CustomerCreated bool  `json:"customer_created"`
}

// 注文の作成。顧客と商品はいなければその場で作る。
// 明細は1行ずつ確定するので、途中の失敗で先行行が残ることがある（既知の挙動）。
func (u *OrderUsecase) CreateOrder(ctx context.Context, staffID int64, in CreateOrderInput) (CreateOrderOutput, error) {
	if staffID <= 0 {
		return CreateOrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.CustomerName) == "" {
		return CreateOrderOutput{}, NewHTTPError(http.StatusBadRequest, "customer name required")
	}
	if strings.TrimSpace(in.Phone) == "" {
		return CreateOrderOutput{}, NewHTTPError(http.StatusBadRequest, "phone required")
	}
	if len(in.Lines) == 0 {
		return CreateOrderOutput{}, NewHTTPError(http.StatusBadRequest, "order needs at least one line")
	}

	customer, customerCreated, err := u.clients.ResolveCustomer(ctx, ResolveCustomerInput{
		ID:      in.CustomerID,
		Name:    in.CustomerName,
		Address: in.Address,
		Phone:   in.Phone,
	})
	if err != nil {
		return CreateOrderOutput{}, err
	}

	order, err := u.orderRepo.Create(ctx, model.Order{
		CustomerID: customer.ID,
		Deposit:    in.Deposit,
	})
	if err != nil {
		return CreateOrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	for _, line := range in.Lines {
		product, _, err := u.catalog.LookupOrCreateByName(ctx, staffID, line.ProductName)
		if err != nil {
			return CreateOrderOutput{}, err
		}

		detail := model.OrderDetail{
			OrderID:   order.ID,
			ProductID: product.ID,
			Weight:    line.Weight,
			Quantity:  line.Quantity,
			SellPrice: line.SellPrice,
			LaborCost: line.LaborCost,
			BuyPrice:  line.BuyPrice,
		}
		if err := u.orderRepo.CreateDetail(ctx, detail); err != nil {
			return CreateOrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	return CreateOrderOutput{
		OrderID:         order.ID,
		CustomerID:      customer.ID,
		CustomerCreated: customerCreated,
	}, nil
}

type OrderLineRecord struct {
	ProductName string          `json:"product_name"`
	ProductID   int64           `json:"product_id"`
	Weight      string          `json:"weight"`
	Quantity    int64           `json:"quantity"`
	SellPrice   decimal.Decimal `json:"sell_price"`
	LaborCost   decimal.Decimal `json:"labor_cost"`
	BuyPrice    decimal.Decimal `json:"buy_price"`
}

type OrderRecord struct {
	OrderID   int64             `json:"order_id"`
	Deposit   decimal.Decimal   `json:"deposit"`
	OrderDate time.Time         `json:"order_date"`
	Products  []OrderLineRecord `json:"products"`
}

// 顧客の注文履歴。注文ごとに1レコード、明細は重複してもそのまま並べる
// （質入れ側と違って重複排除はしない）。
func (u *OrderUsecase) GetClientOrders(ctx context.Context, sel repo.CustomerSelector) ([]OrderRecord, error) {
	_, err := u.accountRepo.FindCustomer(ctx, sel)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, NewHTTPError(http.StatusNotFound, "client not found")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	rows, err := u.orderRepo.ListDetailRows(ctx, sel)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return groupOrderRows(rows), nil
}

// JOINのフラット行を注文単位にまとめる。ヘッダは最初に見た行の値で確定する。
func groupOrderRows(rows []repo.OrderDetailRow) []OrderRecord {
	records := []OrderRecord{}
	index := map[int64]int{}

	for _, row := range rows {
		i, ok := index[row.OrderID]
		if !ok {
			records = append(records, OrderRecord{
				OrderID:   row.OrderID,
				Deposit:   row.Deposit,
				OrderDate: row.OrderDate,
				Products:  []OrderLineRecord{},
			})
			i = len(records) - 1
			index[row.OrderID] = i
		}

		records[i].Products = append(records[i].Products, OrderLineRecord{
			ProductName: row.ProductName,
			ProductID:   row.ProductID,
			Weight:      row.Weight,
			Quantity:    row.Quantity,
			SellPrice:   row.SellPrice,
			LaborCost:   row.LaborCost,
			BuyPrice:    row.BuyPrice,
		})
	}

	return records
}

// 最新の注文ID。注文が1件も無いときはfound=false。
func (u *OrderUsecase) LastOrderID(ctx context.Context) (int64, bool, error) {
	id, err := u.orderRepo.LastID(ctx)
	if errors.Is(err, repo.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return id, true, nil
}
