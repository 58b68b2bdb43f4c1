package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/riskibarqy/gutbuster/internal/platform/logging"
	"github.com/riskibarqy/gutbuster/internal/usecase"
)

const retryFormatsJobName = "retry-pending-formats"

type FormatRetrier interface {
	RetryPendingFormats(ctx context.Context) (usecase.RetryResult, error)
}

// Scheduler runs the periodic format retry for STARTED events that could not
// resolve a format.
type Scheduler struct {
	sched  gocron.Scheduler
	logger *logging.Logger
}

func NewScheduler(retrier FormatRetrier, interval time.Duration, logger *logging.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if interval <= 0 {
		return nil, fmt.Errorf("format retry interval must be positive, got %s", interval)
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	s := &Scheduler{sched: sched, logger: logger}
	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			s.retryFormats(retrier, interval)
		}),
		gocron.WithName(retryFormatsJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("register %s job: %w", retryFormatsJobName, err)
	}

	return s, nil
}

func (s *Scheduler) retryFormats(retrier FormatRetrier, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result, err := retrier.RetryPendingFormats(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "retry pending formats failed", "error", err)
		return
	}
	if result.Checked == 0 {
		return
	}
	s.logger.InfoContext(ctx, "retried pending formats",
		"checked", result.Checked,
		"resolved", result.Resolved,
		"pending", result.Pending,
		"failed", result.Failed,
	)
}

func (s *Scheduler) Start() {
	s.sched.Start()
	s.logger.Info("scheduler started", "job", retryFormatsJobName)
}

func (s *Scheduler) Shutdown() error {
	return s.sched.Shutdown()
}
