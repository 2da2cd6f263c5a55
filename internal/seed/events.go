package seed

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/octobees/cms-seeder/internal/content"
	"github.com/octobees/cms-seeder/internal/dto"
)

// Events batch bounds, inclusive.
const (
	MinEvents = 10
	MaxEvents = 20
)

// EventAPI creates entries in the events collection.
type EventAPI interface {
	CreateEvent(ctx context.Context, payload dto.EventCreatePayload) (*dto.Entry, error)
}

// EventSeeder fills the events collection with generated entries.
type EventSeeder struct {
	api         EventAPI
	gen         *content.Generator
	log         logrus.FieldLogger
	concurrency int
}

// NewEventSeeder constructs an event seeder.
func NewEventSeeder(api EventAPI, gen *content.Generator, log logrus.FieldLogger, concurrency int) *EventSeeder {
	return &EventSeeder{api: api, gen: gen, log: log, concurrency: concurrency}
}

// Run seeds a random number of events within [MinEvents, MaxEvents].
func (s *EventSeeder) Run(ctx context.Context) BatchResult {
	return s.Seed(ctx, s.gen.Count(MinEvents, MaxEvents))
}

// Seed creates exactly count events, continuing past failures.
func (s *EventSeeder) Seed(ctx context.Context, count int) BatchResult {
	s.log.WithField("count", count).Info("seeding events")
	return runBatch(ctx, s.log, "event", count, s.concurrency, func(i int) item {
		payload, err := s.gen.Event()
		return item{
			title:   payload.Title,
			prepErr: err,
			send: func(ctx context.Context) error {
				_, err := s.api.CreateEvent(ctx, payload)
				return err
			},
		}
	})
}
