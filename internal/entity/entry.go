package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Entry is a stored collection entry, such as an event or a page.
type Entry struct {
	ID         int             `json:"id"`
	DocumentID uuid.UUID       `json:"documentId"`
	Collection string          `json:"-"`
	Title      string          `json:"title"`
	Slug       string          `json:"slug"`
	Raw        json.RawMessage `json:"-"`
	CreatedAt  time.Time       `json:"createdAt"`
}
