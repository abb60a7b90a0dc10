package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"pawnshop/internal/domain/model"
	auth "pawnshop/internal/usecase/auth"
)

type AuthHandler struct {
	registerUC *auth.RegisterStaffUsecase
	loginUC    *auth.LoginUsecase
	refreshUC  *auth.RefreshUsecase
	refreshTTL time.Duration
}

// DI
func NewAuthHandler(
	registerUC *auth.RegisterStaffUsecase,
	loginUC *auth.LoginUsecase,
	refreshUC *auth.RefreshUsecase,
	refreshTTL time.Duration,
) *AuthHandler {
	return &AuthHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
		refreshUC:  refreshUC,
		refreshTTL: refreshTTL,
	}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/auth/register", h.register)
	e.POST("/auth/login", h.login)
	e.POST("/auth/refresh", h.refresh)
}

type registerRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	account, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterStaffInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Address:  req.Address,
		Password: req.Password,
		Role:     model.Role(req.Role),
	})
	if err != nil {
		return writeAuthError(c, err)
	}

	return success(c, "account created successfully", account)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, side, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return writeAuthError(c, err)
	}

	h.setRefreshCookie(c, side.PlainRefreshToken)
	return success(c, "", out)
}

func (h *AuthHandler) refresh(c echo.Context) error {
	//Cookie優先、無ければbody
	token := ""
	if cookie, err := c.Cookie("refresh_token"); err == nil {
		token = cookie.Value
	}
	if token == "" {
		var req refreshRequest
		if err := c.Bind(&req); err == nil {
			token = req.RefreshToken
		}
	}

	out, side, err := h.refreshUC.Execute(c.Request().Context(), auth.RefreshInput{RefreshToken: token})
	if err != nil {
		return writeAuthError(c, err)
	}

	h.setRefreshCookie(c, side.PlainRefreshToken)
	return success(c, "", out)
}

func (h *AuthHandler) setRefreshCookie(c echo.Context, plain string) {
	c.SetCookie(&http.Cookie{
		Name:     "refresh_token",
		Value:    plain,
		Path:     "/auth",
		MaxAge:   int(h.refreshTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// auth usecaseのsentinelエラーをHTTPステータスに写す。
func writeAuthError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, auth.ErrNameRequired),
		errors.Is(err, auth.ErrPhoneRequired),
		errors.Is(err, auth.ErrPasswordTooShort),
		errors.Is(err, auth.ErrInvalidRole):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrPhoneAlreadyExists):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrRefreshTokenInvalid):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
