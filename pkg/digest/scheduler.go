package digest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule fires once a day at 14:00:00.
const DefaultSchedule = "0 0 14 * * *"

// Scheduler triggers the aggregator on a cron schedule. Runs never overlap.
type Scheduler struct {
	cron       *cron.Cron
	aggregator *Aggregator
}

// NewScheduler registers aggregator under spec, a six-field cron expression
// with seconds first.
func NewScheduler(spec string, aggregator *Aggregator) (*Scheduler, error) {
	logger := cronLogger{}
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	s := &Scheduler{cron: c, aggregator: aggregator}
	if _, err := c.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("invalid digest schedule %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) run() {
	slog.Info("Saved search digest triggered")
	_ = s.aggregator.Run(context.Background())
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the schedule and waits for a running aggregation, or for ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
