package digest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tendant/simple-notify/pkg/queue"
	"github.com/tendant/simple-notify/pkg/savedsearch"
)

// Aggregator collects pending saved-search results and enqueues them as a
// single DeliveryJob.
type Aggregator struct {
	source  savedsearch.Source
	queue   queue.Queue
	subject string
}

func NewAggregator(source savedsearch.Source, q queue.Queue) *Aggregator {
	return &Aggregator{source: source, queue: q, subject: queue.SubjectSavedSearchDigest}
}

// Run performs one aggregation. Nothing is published when there are no
// pending results. Failures are logged and returned; they are not retried.
func (a *Aggregator) Run(ctx context.Context) error {
	grouped, err := a.source.PendingResults(ctx)
	if err != nil {
		slog.Error("Failed to collect saved search results", "error", err)
		return err
	}
	if len(grouped) == 0 {
		slog.Info("No pending saved search results")
		return nil
	}

	job := NewDeliveryJob(grouped)
	data, err := job.Encode()
	if err != nil {
		slog.Error("Failed to encode delivery job", "job_id", job.ID, "error", err)
		return fmt.Errorf("encode delivery job: %w", err)
	}

	if err := a.queue.Publish(ctx, a.subject, data); err != nil {
		slog.Error("Failed to enqueue delivery job", "job_id", job.ID, "error", err)
		return err
	}
	slog.Info("Saved search digest enqueued", "job_id", job.ID, "recipients", len(grouped))
	return nil
}
