package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"pawnshop/internal/config"
	"pawnshop/internal/middleware"
	"pawnshop/internal/usecase"
)

// /staff/products まわり。
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/staff/products")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.POST("", h.create)
	g.GET("", h.list)
	g.PUT("", h.update)
	g.GET("/search/:query", h.search)
	g.GET("/next-id", h.nextID)
	g.DELETE("", h.deleteAll)
	g.DELETE("/name/:name", h.deleteByName)
	g.DELETE("/:id", h.deleteByID)
}

type productCreateRequest struct {
	Name      string           `json:"name"`
	UnitPrice *decimal.Decimal `json:"price"`
	Amount    *int64           `json:"amount"`
}

type productUpdateRequest struct {
	ID        *int64           `json:"id"`
	Name      string           `json:"name"`
	UnitPrice *decimal.Decimal `json:"price"`
	Amount    *int64           `json:"amount"`
}

func (h *ProductHandler) create(c echo.Context) error {
	var req productCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	staffID, ok := getAccountIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	_, err := h.uc.CreateProduct(c.Request().Context(), staffID, usecase.CreateProductInput{
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Amount:    req.Amount,
	})
	if err != nil {
		return writeError(c, err)
	}

	return success(c, "product created successfully", nil)
}

func (h *ProductHandler) list(c echo.Context) error {
	items, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return success(c, "", items)
}

// 数字だけならID検索、そうでなければ名前の部分一致検索。
func (h *ProductHandler) search(c echo.Context) error {
	query := c.Param("query")

	if isAllDigits(query) {
		id, err := strconv.ParseInt(query, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
		}
		p, err := h.uc.GetProductByID(c.Request().Context(), id)
		if err != nil {
			return writeError(c, err)
		}
		return success(c, "product retrieved successfully", p)
	}

	items, err := h.uc.SearchProductsByName(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	return success(c, "products retrieved successfully", items)
}

func (h *ProductHandler) update(c echo.Context) error {
	var req productUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	err := h.uc.UpdateProduct(c.Request().Context(), usecase.UpdateProductInput{
		ID:        req.ID,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Amount:    req.Amount,
	})
	if err != nil {
		return writeError(c, err)
	}

	return success(c, "product updated successfully", nil)
}

func (h *ProductHandler) deleteByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	deleted, err := h.uc.DeleteProductByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	//無かった場合も削除済み扱いで成功にする
	if !deleted {
		return success(c, fmt.Sprintf("product with id %d not found but considered deleted", id), nil)
	}
	return success(c, fmt.Sprintf("product with id %d deleted successfully", id), nil)
}

func (h *ProductHandler) deleteByName(c echo.Context) error {
	name := c.Param("name")
	if err := h.uc.DeleteProductByName(c.Request().Context(), name); err != nil {
		return writeError(c, err)
	}
	return success(c, fmt.Sprintf("product with name %q deleted successfully", name), nil)
}

func (h *ProductHandler) deleteAll(c echo.Context) error {
	n, err := h.uc.DeleteAllProducts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return success(c, fmt.Sprintf("all products deleted successfully, total deleted: %d", n), nil)
}

func (h *ProductHandler) nextID(c echo.Context) error {
	id, err := h.uc.NextProductID(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return success(c, "", map[string]int64{"next_product_id": id})
}

// ASCIIの数字だけを数値扱いにする。全角数字などは名前検索に回す。
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
