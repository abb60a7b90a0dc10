package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pawnshop/internal/config"
	"pawnshop/internal/middleware"
	"pawnshop/internal/usecase"
)

// /staff/clients まわり。
type ClientHandler struct {
	uc *usecase.ClientUsecase
}

// DI
func NewClientHandler(uc *usecase.ClientUsecase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

func (h *ClientHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/staff/clients")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/next-id", h.nextID)
}

type clientCreateRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (h *ClientHandler) create(c echo.Context) error {
	var req clientCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	_, err := h.uc.CreateClient(c.Request().Context(), usecase.CreateClientInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		return writeError(c, err)
	}

	return success(c, "client created successfully", nil)
}

func (h *ClientHandler) list(c echo.Context) error {
	items, err := h.uc.ListClients(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return success(c, "", items)
}

func (h *ClientHandler) nextID(c echo.Context) error {
	id, err := h.uc.NextClientID(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return success(c, "", map[string]int64{"id": id})
}
