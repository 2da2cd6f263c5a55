// Package content synthesizes randomized event and page payloads.
package content

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gosimple/slug"

	"github.com/octobees/cms-seeder/internal/dto"
)

const (
	eventHorizon = 60 * 24 * time.Hour
	dateLayout   = "2006-01-02T15:04:05.000Z07:00"
)

// Generator produces payloads from a faker source. It is not safe for
// concurrent use.
type Generator struct {
	faker *gofakeit.Faker
	now   func() time.Time
}

// NewGenerator returns a generator. A zero seed draws from a random source,
// any other seed makes the output reproducible.
func NewGenerator(seed uint64) *Generator {
	return &Generator{faker: gofakeit.New(seed), now: time.Now}
}

// Count picks a batch size in [min, max].
func (g *Generator) Count(min, max int) int {
	if max <= min {
		return min
	}
	return g.faker.Number(min, max)
}

// Event builds a validated event payload.
func (g *Generator) Event() (dto.EventCreatePayload, error) {
	title := g.catchPhrase()
	now := g.now().UTC()

	event := dto.EventCreatePayload{
		Title:       title,
		Slug:        slug.Make(title),
		Date:        g.faker.DateRange(now, now.Add(eventHorizon)).UTC().Format(dateLayout),
		Location:    g.faker.City() + ", " + g.faker.Country(),
		EventStatus: g.faker.RandomString(dto.EventStatuses),
		Content:     g.eventBlocks(),
		Seo:         g.seo(),
		Featured:    g.faker.Bool(),
	}
	return event, dto.Validate(event)
}

// Page builds a validated page payload.
func (g *Generator) Page() (dto.PageCreatePayload, error) {
	title := g.catchPhrase()

	page := dto.PageCreatePayload{
		Title:             title,
		Slug:              slug.Make(title),
		Content:           g.pageBlocks(),
		Description:       g.sentence(),
		PrimaryNavigation: g.faker.Bool(),
		Seo:               []dto.Seo{g.seo()},
	}
	return page, dto.Validate(page)
}

func (g *Generator) eventBlocks() []dto.BlockNode {
	return []dto.BlockNode{
		heading(2, g.sentence()),
		block(dto.BlockParagraph, g.paragraphs(2)),
		block(dto.BlockQuote, g.sentence()),
		block(dto.BlockParagraph, g.paragraphs(1)),
	}
}

func (g *Generator) pageBlocks() []dto.BlockNode {
	return []dto.BlockNode{
		heading(2, g.sentence()),
		block(dto.BlockParagraph, g.paragraphs(2)),
	}
}

func (g *Generator) seo() dto.Seo {
	return dto.Seo{
		MetaTitle:       g.catchPhrase(),
		MetaDescription: g.sentence(),
		Keywords:        g.words(5),
		PreventIndexing: g.faker.Bool(),
	}
}

func (g *Generator) catchPhrase() string {
	return capitalize(g.faker.BuzzWord() + " " + g.faker.BS())
}

func (g *Generator) sentence() string {
	return g.faker.LoremIpsumSentence(g.faker.Number(4, 10))
}

func (g *Generator) paragraphs(n int) string {
	return g.faker.LoremIpsumParagraph(n, 3, 8, "\n")
}

func (g *Generator) words(n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = g.faker.LoremIpsumWord()
	}
	return strings.Join(out, " ")
}

func heading(level int, text string) dto.BlockNode {
	node := block(dto.BlockHeading, text)
	node.Level = level
	return node
}

func block(kind, text string) dto.BlockNode {
	return dto.BlockNode{
		Type:     kind,
		Children: []dto.TextLeaf{{Type: "text", Text: text}},
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
