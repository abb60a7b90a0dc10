package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"pawnshop/internal/config"
	"pawnshop/internal/middleware"
	repo "pawnshop/internal/repository"
	"pawnshop/internal/usecase"
)

// /staff/pawns まわり。全件一覧だけはstaffロールにも開ける。
type PawnHandler struct {
	uc *usecase.PawnUsecase
}

// DI
func NewPawnHandler(uc *usecase.PawnUsecase) *PawnHandler {
	return &PawnHandler{uc: uc}
}

func (h *PawnHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/staff/pawns")
	g.Use(middleware.AuthJWT(cfg))

	admin := g.Group("", middleware.AdminRoleGuard())
	admin.POST("", h.create)
	admin.GET("", h.clientPawns)
	admin.GET("/next-id", h.nextID)

	//全件一覧はstaffでも見られる
	g.GET("/all", h.listAll, middleware.StaffRoleGuard())
}

type pawnLineRequest struct {
	ProductName string          `json:"product_name"`
	Weight      string          `json:"weight"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type pawnCreateRequest struct {
	CustomerID   *int64            `json:"customer_id"`
	CustomerName string            `json:"customer_name"`
	Address      string            `json:"address"`
	Phone        string            `json:"phone"`
	Deposit      decimal.Decimal   `json:"deposit"`
	PawnDate     *time.Time        `json:"pawn_date"`
	ExpireDate   time.Time         `json:"expire_date"`
	Lines        []pawnLineRequest `json:"lines"`
}

func (h *PawnHandler) create(c echo.Context) error {
	var req pawnCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	staffID, ok := getAccountIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	in := usecase.CreatePawnInput{
		CustomerID:   req.CustomerID,
		CustomerName: req.CustomerName,
		Address:      req.Address,
		Phone:        req.Phone,
		Deposit:      req.Deposit,
		PawnDate:     req.PawnDate,
		ExpireDate:   req.ExpireDate,
	}
	for _, l := range req.Lines {
		in.Lines = append(in.Lines, usecase.PawnLineInput{
			ProductName: l.ProductName,
			Weight:      l.Weight,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		})
	}

	out, err := h.uc.CreatePawn(c.Request().Context(), staffID, in)
	if err != nil {
		return writeError(c, err)
	}

	return success(c, "pawn created successfully", out)
}

func (h *PawnHandler) clientPawns(c echo.Context) error {
	sel, err := customerSelectorFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid customer_id"})
	}

	records, err := h.uc.GetClientPawns(c.Request().Context(), sel)
	if err != nil {
		return writeError(c, err)
	}

	if len(records) == 0 {
		return success(c, "pawns not found", records)
	}
	return success(c, "", records)
}

func (h *PawnHandler) listAll(c echo.Context) error {
	f := repo.PawnListFilter{
		Name:  c.QueryParam("customer_name"),
		Phone: c.QueryParam("phone"),
	}
	if v := c.QueryParam("customer_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid customer_id"})
		}
		f.ID = &id
	}

	records, err := h.uc.ListAllPawns(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}

	if len(records) == 0 {
		return success(c, "no pawn records found", records)
	}
	return success(c, "", records)
}

func (h *PawnHandler) nextID(c echo.Context) error {
	id, err := h.uc.NextPawnID(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return success(c, "", map[string]int64{"next_pawn_id": id})
}
