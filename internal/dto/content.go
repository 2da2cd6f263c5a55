package dto

// Block node types understood by the rich-text blocks field.
const (
	BlockHeading   = "heading"
	BlockParagraph = "paragraph"
	BlockQuote     = "quote"
)

// EventStatuses enumerates the accepted values of EventCreatePayload.EventStatus.
var EventStatuses = []string{"Pending", "Approved", "Rejected", "Archived"}

// TextLeaf is a text node nested inside a block.
type TextLeaf struct {
	Type string `json:"type" validate:"eq=text"`
	Text string `json:"text" validate:"required"`
}

// BlockNode is one top-level element of a blocks field.
type BlockNode struct {
	Type     string     `json:"type" validate:"oneof=heading paragraph quote"`
	Level    int        `json:"level,omitempty" validate:"omitempty,min=1,max=6"`
	Children []TextLeaf `json:"children,omitempty" validate:"dive"`
}

// SharedImage is the shared.shared-image component. Seeders always send null.
type SharedImage struct {
	Alt   string `json:"alt,omitempty"`
	Media *int   `json:"media,omitempty"`
}

// Seo is the shared.seo component.
type Seo struct {
	MetaTitle       string       `json:"metaTitle" validate:"required"`
	MetaDescription string       `json:"metaDescription" validate:"required"`
	SharedImage     *SharedImage `json:"sharedImage"`
	Keywords        string       `json:"keywords" validate:"required"`
	PreventIndexing bool         `json:"preventIndexing"`
}

// EventCreatePayload is the data object of POST /api/events.
type EventCreatePayload struct {
	Title       string      `json:"title" validate:"required"`
	Slug        string      `json:"slug" validate:"required"`
	Date        string      `json:"date" validate:"required"`
	Location    string      `json:"location" validate:"required"`
	EventStatus string      `json:"eventStatus" validate:"oneof=Pending Approved Rejected Archived"`
	Content     []BlockNode `json:"content" validate:"min=1,dive"`
	Seo         Seo         `json:"seo"`
	Featured    bool        `json:"featured"`
}

// PageCreatePayload is the data object of POST /api/pages.
type PageCreatePayload struct {
	Title             string      `json:"title" validate:"required"`
	Slug              string      `json:"slug" validate:"required"`
	Content           []BlockNode `json:"content" validate:"min=1,dive"`
	Description       string      `json:"description,omitempty"`
	ParentPage        *int        `json:"parentPage"`
	PrimaryNavigation bool        `json:"primaryNavigation"`
	Seo               []Seo       `json:"seo" validate:"len=1,dive"`
	Hero              *int        `json:"hero"`
}

// DataEnvelope wraps a create payload the way collection endpoints expect it.
type DataEnvelope[T any] struct {
	Data T `json:"data"`
}

// Entry is the minimal view of a created collection entry.
type Entry struct {
	ID         int    `json:"id"`
	DocumentID string `json:"documentId"`
	Title      string `json:"title"`
	Slug       string `json:"slug"`
}

// EntryResponse is returned by collection create endpoints.
type EntryResponse struct {
	Data Entry          `json:"data"`
	Meta map[string]any `json:"meta"`
}
