package seed

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/octobees/cms-seeder/internal/strapi"
)

// BatchResult counts the outcome of a best-effort content batch.
type BatchResult struct {
	Requested int
	Created   int
	Failed    int
}

// item is one prepared unit of a batch. prepErr is set when the payload could
// not be built; send is not called in that case.
type item struct {
	title   string
	prepErr error
	send    func(ctx context.Context) error
}

// runBatch executes count items. Items are prepared in index order by the
// calling goroutine and sent by at most concurrency goroutines. A failed item
// is logged and counted; it never stops the rest of the batch.
func runBatch(ctx context.Context, log logrus.FieldLogger, kind string, count, concurrency int, prepare func(i int) item) BatchResult {
	if concurrency < 1 {
		concurrency = 1
	}

	var (
		mu     sync.Mutex
		result = BatchResult{Requested: count}
	)
	record := func(ok bool) {
		mu.Lock()
		defer mu.Unlock()
		if ok {
			result.Created++
		} else {
			result.Failed++
		}
	}

	var g errgroup.Group
	g.SetLimit(concurrency)

	for i := 0; i < count; i++ {
		entry := log.WithFields(logrus.Fields{"kind": kind, "index": i + 1})

		if err := ctx.Err(); err != nil {
			entry.WithError(err).Error("batch cancelled")
			record(false)
			continue
		}

		it := prepare(i)
		if it.prepErr != nil {
			entry.WithError(it.prepErr).Errorf("failed to create %s #%d", kind, i+1)
			record(false)
			continue
		}

		g.Go(func() error {
			if err := it.send(ctx); err != nil {
				fields := logrus.Fields{"title": it.title}
				var svcErr *strapi.ServiceError
				if errors.As(err, &svcErr) {
					fields["status"] = svcErr.StatusCode
					fields["response"] = svcErr.Envelope()
				}
				entry.WithFields(fields).WithError(err).Errorf("failed to create %s #%d", kind, i+1)
				record(false)
				return nil
			}
			entry.WithField("title", it.title).Infof("created %s", kind)
			record(true)
			return nil
		})
	}
	_ = g.Wait()

	log.WithFields(logrus.Fields{
		"kind":    kind,
		"created": result.Created,
		"failed":  result.Failed,
	}).Infof("done seeding %s", kind)
	return result
}
