package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"pawnshop/internal/config"
	"pawnshop/internal/middleware"
	repo "pawnshop/internal/repository"
	"pawnshop/internal/usecase"
)

// /staff/orders まわり。
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/staff/orders")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.POST("", h.create)
	g.GET("", h.clientOrders)
	g.GET("/last-id", h.lastID)
}

type orderLineRequest struct {
	ProductName string          `json:"product_name"`
	Weight      string          `json:"weight"`
	Quantity    int64           `json:"quantity"`
	SellPrice   decimal.Decimal `json:"sell_price"`
	LaborCost   decimal.Decimal `json:"labor_cost"`
	BuyPrice    decimal.Decimal `json:"buy_price"`
}

type orderCreateRequest struct {
	CustomerID   *int64             `json:"customer_id"`
	CustomerName string             `json:"customer_name"`
	Address      string             `json:"address"`
	Phone        string             `json:"phone"`
	Deposit      decimal.Decimal    `json:"deposit"`
	Lines        []orderLineRequest `json:"lines"`
}

func (h *OrderHandler) create(c echo.Context) error {
	var req orderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	staffID, ok := getAccountIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	in := usecase.CreateOrderInput{
		CustomerID:   req.CustomerID,
		CustomerName: req.CustomerName,
		Address:      req.Address,
		Phone:        req.Phone,
		Deposit:      req.Deposit,
	}
	for _, l := range req.Lines {
		in.Lines = append(in.Lines, usecase.OrderLineInput{
			ProductName: l.ProductName,
			Weight:      l.Weight,
			Quantity:    l.Quantity,
			SellPrice:   l.SellPrice,
			LaborCost:   l.LaborCost,
			BuyPrice:    l.BuyPrice,
		})
	}

	out, err := h.uc.CreateOrder(c.Request().Context(), staffID, in)
	if err != nil {
		return writeError(c, err)
	}

	return success(c, "order created successfully", out)
}

func (h *OrderHandler) clientOrders(c echo.Context) error {
	sel, err := customerSelectorFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid customer_id"})
	}

	records, err := h.uc.GetClientOrders(c.Request().Context(), sel)
	if err != nil {
		return writeError(c, err)
	}

	if len(records) == 0 {
		return success(c, "orders not found", records)
	}
	return success(c, "", records)
}

func (h *OrderHandler) lastID(c echo.Context) error {
	id, found, err := h.uc.LastOrderID(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	if !found {
		return success(c, "no orders found", nil)
	}
	return success(c, "", map[string]int64{"last_order_id": id})
}

// customer_id / customer_name / phone のクエリから検索条件を作る。
func customerSelectorFromQuery(c echo.Context) (repo.CustomerSelector, error) {
	sel := repo.CustomerSelector{
		Name:  c.QueryParam("customer_name"),
		Phone: c.QueryParam("phone"),
	}
	if v := c.QueryParam("customer_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return repo.CustomerSelector{}, err
		}
		sel.ID = &id
	}
	return sel, nil
}
