// Package digest runs the daily saved-search digest: a cron trigger asks the
// saved-search service for pending results, publishes them as one job, and a
// queue consumer turns each customer's entry into a digest email.
package digest

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tendant/simple-notify/pkg/savedsearch"
)

// DeliveryJob carries one aggregation run's results, keyed by customer email.
type DeliveryJob struct {
	ID             uuid.UUID                            `json:"id"`
	CreatedAt      time.Time                            `json:"createdAt"`
	GroupedByEmail map[string][]savedsearch.ResultGroup `json:"groupedByEmail"`
}

// NewDeliveryJob wraps grouped results in a job with a fresh id.
func NewDeliveryJob(grouped map[string][]savedsearch.ResultGroup) DeliveryJob {
	return DeliveryJob{
		ID:             uuid.New(),
		CreatedAt:      time.Now().UTC(),
		GroupedByEmail: grouped,
	}
}

func (j DeliveryJob) Encode() ([]byte, error) {
	return json.Marshal(j)
}

func DecodeDeliveryJob(data []byte) (DeliveryJob, error) {
	var job DeliveryJob
	if err := json.Unmarshal(data, &job); err != nil {
		return DeliveryJob{}, fmt.Errorf("decode delivery job: %w", err)
	}
	return job, nil
}
