package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/cms-seeder/internal/dto"
	"github.com/octobees/cms-seeder/internal/service"
)

// AuthHandler exposes the local registration endpoint.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/auth/local/register requests.
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, ErrNameValidation, "invalid payload")
	}

	resp, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			return Error(c, http.StatusBadRequest, ErrNameValidation, err.Error())
		case errors.Is(err, service.ErrEmailAlreadyExists):
			return Error(c, http.StatusBadRequest, ErrNameApplication, "Email or Username are already taken")
		default:
			return Error(c, http.StatusInternalServerError, ErrNameInternal, "unable to register user")
		}
	}

	return Success(c, http.StatusOK, resp)
}
