package server

import (
	"github.com/labstack/echo/v4"

	"pawnshop/internal/config"
	"pawnshop/internal/handler"
)

// RegisterRoutes は各ハンドラのルートをまとめて登録する。
func RegisterRoutes(
	e *echo.Echo,
	cfg config.Config,
	authH *handler.AuthHandler,
	clientH *handler.ClientHandler,
	productH *handler.ProductHandler,
	orderH *handler.OrderHandler,
	pawnH *handler.PawnHandler,
) {
	authH.RegisterRoutes(e)
	clientH.RegisterRoutes(e, cfg)
	productH.RegisterRoutes(e, cfg)
	orderH.RegisterRoutes(e, cfg)
	pawnH.RegisterRoutes(e, cfg)
}
