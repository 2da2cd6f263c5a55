package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/octobees/cms-seeder/internal/dto"
)

// deny writes the CMS error envelope and stops the chain.
func deny(c echo.Context, status int, name, message string) error {
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
