package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/octobees/cms-seeder/internal/dto"
	"github.com/octobees/cms-seeder/internal/middleware"
	"github.com/octobees/cms-seeder/internal/repository"
	"github.com/octobees/cms-seeder/internal/service"
)

// UserHandler exposes role catalog and user administration endpoints.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler constructs a handler instance.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Roles returns the role catalog.
func (h *UserHandler) Roles(c echo.Context) error {
	roles, err := h.users.ListRoles(c.Request().Context())
	if err != nil {
		return Error(c, http.StatusInternalServerError, ErrNameInternal, "failed to list roles")
	}
	return Success(c, http.StatusOK, dto.RolesResponse{Roles: roles})
}

// AssignRole handles PUT /api/users/:id.
func (h *UserHandler) AssignRole(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return Error(c, http.StatusBadRequest, ErrNameValidation, "invalid user id")
	}

	var req dto.AssignRoleRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, ErrNameValidation, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return Error(c, http.StatusBadRequest, ErrNameValidation, err.Error())
	}

	user, err := h.users.AssignRole(c.Request().Context(), id, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRoleNotFound):
			return Error(c, http.StatusBadRequest, ErrNameApplication, "role not found")
		case errors.Is(err, repository.ErrUserNotFound):
			return Error(c, http.StatusNotFound, ErrNameNotFound, "Not Found")
		default:
			return Error(c, http.StatusInternalServerError, ErrNameInternal, "failed to update user")
		}
	}

	return Success(c, http.StatusOK, user)
}

// Me returns the user identified by the request's token.
func (h *UserHandler) Me(c echo.Context) error {
	id, ok := middleware.UserIDFromContext(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "UnauthorizedError", "Missing or invalid credentials")
	}

	user, err := h.users.Me(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return Error(c, http.StatusNotFound, ErrNameNotFound, "Not Found")
		}
		return Error(c, http.StatusInternalServerError, ErrNameInternal, "failed to load user")
	}
	return Success(c, http.StatusOK, user)
}
