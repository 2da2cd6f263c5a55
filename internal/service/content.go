package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/octobees/cms-seeder/internal/dto"
	"github.com/octobees/cms-seeder/internal/entity"
	"github.com/octobees/cms-seeder/internal/repository"
)

// Collection names served by the stub.
const (
	CollectionEvents = "events"
	CollectionPages  = "pages"
)

// ContentService stores event and page entries.
type ContentService struct {
	entries repository.EntriesRepository
}

// NewContentService constructs a ContentService.
func NewContentService(entries repository.EntriesRepository) *ContentService {
	return &ContentService{entries: entries}
}

// CreateEvent validates and stores an event.
func (s *ContentService) CreateEvent(ctx context.Context, payload dto.EventCreatePayload) (*dto.Entry, error) {
	return s.create(ctx, CollectionEvents, payload.Title, payload.Slug, payload)
}

// CreatePage validates and stores a page.
func (s *ContentService) CreatePage(ctx context.Context, payload dto.PageCreatePayload) (*dto.Entry, error) {
	return s.create(ctx, CollectionPages, payload.Title, payload.Slug, payload)
}

// List returns the stored entries of a collection.
func (s *ContentService) List(ctx context.Context, collection string) ([]dto.Entry, error) {
	entries, err := s.entries.List(ctx, collection)
	if err != nil {
		return nil, err
	}
	out := make([]dto.Entry, 0, len(entries))
	for i := range entries {
		out = append(out, toEntryDTO(&entries[i]))
	}
	return out, nil
}

func (s *ContentService) create(ctx context.Context, collection, title, slug string, payload any) (*dto.Entry, error) {
	if err := dto.Validate(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s entry: %w", collection, err)
	}

	entry, err := s.entries.Create(ctx, collection, title, slug, raw)
	if err != nil {
		return nil, err
	}

	out := toEntryDTO(entry)
	return &out, nil
}

func toEntryDTO(e *entity.Entry) dto.Entry {
	return dto.Entry{
		ID:         e.ID,
		DocumentID: e.DocumentID.String(),
		Title:      e.Title,
		Slug:       e.Slug,
	}
}
