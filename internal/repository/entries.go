package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/octobees/cms-seeder/internal/entity"
)

// ErrSlugTaken is returned when a collection already holds an entry with the slug.
var ErrSlugTaken = errors.New("slug already exists")

// EntriesRepository stores collection entries.
type EntriesRepository interface {
	Create(ctx context.Context, collection, title, slug string, raw json.RawMessage) (*entity.Entry, error)
	List(ctx context.Context, collection string) ([]entity.Entry, error)
}

// MemoryEntriesRepository implements EntriesRepository in process memory.
// Ids are sequential per collection.
type MemoryEntriesRepository struct {
	mu      sync.RWMutex
	entries map[string][]entity.Entry
}

// NewMemoryEntriesRepository instantiates an empty entries repository.
func NewMemoryEntriesRepository() *MemoryEntriesRepository {
	return &MemoryEntriesRepository{entries: make(map[string][]entity.Entry)}
}

// Create inserts an entry; slugs are unique per collection.
func (r *MemoryEntriesRepository) Create(ctx context.Context, collection, title, slug string, raw json.RawMessage) (*entity.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.entries[collection]
	for _, e := range existing {
		if e.Slug == slug {
			return nil, ErrSlugTaken
		}
	}

	entry := entity.Entry{
		ID:         len(existing) + 1,
		DocumentID: uuid.New(),
		Collection: collection,
		Title:      title,
		Slug:       slug,
		Raw:        raw,
		CreatedAt:  time.Now().UTC(),
	}
	r.entries[collection] = append(existing, entry)
	return &entry, nil
}

// List returns the entries of a collection in creation order.
func (r *MemoryEntriesRepository) List(ctx context.Context, collection string) ([]entity.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Entry, len(r.entries[collection]))
	copy(out, r.entries[collection])
	return out, nil
}

var _ EntriesRepository = (*MemoryEntriesRepository)(nil)
