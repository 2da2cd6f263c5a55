package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/cms-seeder/internal/dto"
	"github.com/octobees/cms-seeder/internal/repository"
	"github.com/octobees/cms-seeder/internal/service"
)

// ContentHandler exposes the collection create endpoints.
type ContentHandler struct {
	content *service.ContentService
}

// NewContentHandler constructs a ContentHandler.
func NewContentHandler(content *service.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

// CreateEvent handles POST /api/events.
func (h *ContentHandler) CreateEvent(c echo.Context) error {
	return create(c, h.content.CreateEvent)
}

// CreatePage handles POST /api/pages.
func (h *ContentHandler) CreatePage(c echo.Context) error {
	return create(c, h.content.CreatePage)
}

func create[T any](c echo.Context, store func(context.Context, T) (*dto.Entry, error)) error {
	var req dto.DataEnvelope[T]
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, ErrNameValidation, "invalid payload")
	}

	entry, err := store(c.Request().Context(), req.Data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			return Error(c, http.StatusBadRequest, ErrNameValidation, err.Error())
		case errors.Is(err, repository.ErrSlugTaken):
			return Error(c, http.StatusBadRequest, ErrNameValidation, "This attribute must be unique")
		default:
			return Error(c, http.StatusInternalServerError, ErrNameInternal, "failed to create entry")
		}
	}

	return Success(c, http.StatusCreated, dto.EntryResponse{Data: *entry, Meta: map[string]any{}})
}
