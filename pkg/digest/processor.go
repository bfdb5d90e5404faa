package digest

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/tendant/simple-notify/pkg/queue"
	"github.com/tendant/simple-notify/pkg/savedsearch"
	"github.com/tendant/simple-notify/pkg/scenario"
)

// SavedSearchNotifier sends one customer's digest.
type SavedSearchNotifier interface {
	Create(ctx context.Context, payload scenario.CustomerSavedSearchPayload) ([]int64, error)
}

// Processor consumes DeliveryJobs from the queue.
type Processor struct {
	notifier SavedSearchNotifier
}

func NewProcessor(notifier SavedSearchNotifier) *Processor {
	return &Processor{notifier: notifier}
}

// Handle is a queue.Handler. Entries are processed in email order; entries
// without an email or without any vehicles are skipped and a failing entry
// does not stop the rest. Only an undecodable payload is reported back to
// the queue, as a queue.ErrPermanent so it is not redelivered.
func (p *Processor) Handle(ctx context.Context, subject string, data []byte) error {
	job, err := DecodeDeliveryJob(data)
	if err != nil {
		slog.Error("Dropping malformed delivery job", "subject", subject, "error", err)
		return fmt.Errorf("%w: %w", queue.ErrPermanent, err)
	}

	emails := maps.Keys(job.GroupedByEmail)
	slices.Sort(emails)

	sent, skipped, failed := 0, 0, 0
	for _, email := range emails {
		results := job.GroupedByEmail[email]
		if email == "" || savedsearch.UniqueVehicles(results) == 0 {
			skipped++
			continue
		}

		_, err := p.notifier.Create(ctx, scenario.CustomerSavedSearchPayload{
			Email:        email,
			CustomerName: customerName(results),
			Results:      results,
		})
		if err != nil {
			failed++
			slog.Error("Failed to send saved search digest", "job_id", job.ID, "email", email, "error", err)
			continue
		}
		sent++
	}

	slog.Info("Delivery job processed", "job_id", job.ID, "sent", sent, "skipped", skipped, "failed", failed)
	return nil
}

func customerName(results []savedsearch.ResultGroup) string {
	for _, r := range results {
		if r.CustomerName != "" {
			return r.CustomerName
		}
	}
	return ""
}
