package seed

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/octobees/cms-seeder/internal/content"
	"github.com/octobees/cms-seeder/internal/dto"
)

// Pages batch bounds, inclusive.
const (
	MinPages = 5
	MaxPages = 10
)

// PageAPI creates entries in the pages collection.
type PageAPI interface {
	CreatePage(ctx context.Context, payload dto.PageCreatePayload) (*dto.Entry, error)
}

// PageSeeder fills the pages collection with generated entries.
type PageSeeder struct {
	api         PageAPI
	gen         *content.Generator
	log         logrus.FieldLogger
	concurrency int
}

// NewPageSeeder constructs a page seeder.
func NewPageSeeder(api PageAPI, gen *content.Generator, log logrus.FieldLogger, concurrency int) *PageSeeder {
	return &PageSeeder{api: api, gen: gen, log: log, concurrency: concurrency}
}

// Run seeds a random number of pages within [MinPages, MaxPages].
func (s *PageSeeder) Run(ctx context.Context) BatchResult {
	return s.Seed(ctx, s.gen.Count(MinPages, MaxPages))
}

// Seed creates exactly count pages, continuing past failures.
func (s *PageSeeder) Seed(ctx context.Context, count int) BatchResult {
	s.log.WithField("count", count).Info("seeding pages")
	return runBatch(ctx, s.log, "page", count, s.concurrency, func(i int) item {
		payload, err := s.gen.Page()
		return item{
			title:   payload.Title,
			prepErr: err,
			send: func(ctx context.Context) error {
				_, err := s.api.CreatePage(ctx, payload)
				return err
			},
		}
	})
}
