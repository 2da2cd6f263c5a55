package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/cms-seeder/internal/dto"
)

// Error names used in the CMS error envelope.
const (
	ErrNameValidation  = "ValidationError"
	ErrNameApplication = "ApplicationError"
	ErrNameNotFound    = "NotFoundError"
	ErrNameInternal    = "InternalServerError"
)

// Success sends a JSON body as is. Collection endpoints wrap their own data.
func Success(c echo.Context, status int, data any) error {
	if status == 0 {
		status = http.StatusOK
	}
	return c.JSON(status, data)
}

// Error sends the CMS error envelope.
func Error(c echo.Context, status int, name, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if name == "" {
		name = ErrNameInternal
	}
	return c.JSON(status, dto.ErrorResponse{
		Data: nil,
		Error: &dto.ErrorBody{
			Status:  status,
			Name:    name,
			Message: message,
			Details: map[string]any{},
		},
	})
}
