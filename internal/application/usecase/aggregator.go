package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/alitto/pond"
	"github.com/diillson/aws-external-assets-go/internal/domain/entity"
	"github.com/diillson/aws-external-assets-go/internal/domain/repository"
)

// DefaultConcurrency is the number of services collected at the same time.
const DefaultConcurrency = 4

// ServiceResult is reported once per collector when it finishes.
type ServiceResult struct {
	Type    entity.ResourceType
	Records int
	Skipped int
	Err     error
}

// Aggregator runs collectors and fills the tables of a CollectionRun.
type Aggregator struct {
	concurrency int
	onDone      func(ServiceResult)
	mu          sync.Mutex
}

// NewAggregator creates an Aggregator running up to concurrency collectors at once.
// onDone may be nil; calls to it are serialized.
func NewAggregator(concurrency int, onDone func(ServiceResult)) *Aggregator {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Aggregator{concurrency: concurrency, onDone: onDone}
}

type collected struct {
	records []entity.ResourceRecord
	result  ServiceResult
	partial bool
}

// Collect runs every collector to completion, one table per resource type. A failing
// collector leaves its table empty or partial; the others are unaffected. Collect returns
// only after all collectors have finished.
func (a *Aggregator) Collect(ctx context.Context, run *entity.CollectionRun, collectors []repository.ResourceCollector) {
	results := make([]collected, len(collectors))

	pool := pond.New(a.concurrency, len(collectors))
	for i, c := range collectors {
		i, c := i, c
		pool.Submit(func() {
			results[i] = a.collectOne(ctx, c)
			a.report(results[i].result)
		})
	}
	pool.StopAndWait()

	for i, c := range collectors {
		t := c.ResourceType()
		table, ok := run.Tables[t]
		if !ok || table == nil {
			table = entity.NewResourceTable(t)
			run.Tables[t] = table
		}
		table.Append(results[i].records...)

		if err := results[i].result.Err; err != nil {
			run.Failures = append(run.Failures, entity.ServiceFailure{
				Type:    t,
				Reason:  err.Error(),
				Partial: results[i].partial,
			})
		}
	}
}

func (a *Aggregator) collectOne(ctx context.Context, c repository.ResourceCollector) (out collected) {
	t := c.ResourceType()
	out.result.Type = t

	defer func() {
		if p := recover(); p != nil {
			slog.Error("Collector panicked", "service", t, "panic", p)
			out.result.Err = fmt.Errorf("collector panicked: %v", p)
			out.partial = len(out.records) > 0
		}
	}()

	slog.Debug("Collecting", "service", t)
	raw, err := c.Fetch(ctx)
	if err != nil {
		out.result.Err = err
		out.partial = len(raw) > 0
	}

	for _, r := range raw {
		records, err := c.Normalize(r)
		if err != nil {
			out.result.Skipped++
			slog.Warn("Skipping record", "service", t, "error", err)
			continue
		}
		for _, rec := range records {
			if rec.Endpoint == "" {
				out.result.Skipped++
				continue
			}
			out.records = append(out.records, rec)
		}
	}
	out.result.Records = len(out.records)
	return out
}

func (a *Aggregator) report(result ServiceResult) {
	if a.onDone == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onDone(result)
}
