package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
)

// RetryResult summarizes one RetryPendingFormats pass.
type RetryResult struct {
	Checked  int
	Resolved int
	Pending  int
	Failed   int
}

// RetryPendingFormats re-runs resolution for STARTED events that still have
// no format, fanning the work out over a bounded worker pool.
func (s *EventService) RetryPendingFormats(ctx context.Context) (RetryResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.RetryPendingFormats")
	var err error
	defer func() { endUsecaseSpan(span, err) }()

	pending, err := s.store.Repositories().Events.ListStartedWithoutFormat(ctx, s.retryBatch)
	if err != nil {
		err = fmt.Errorf("list events without format: %w", err)
		return RetryResult{}, err
	}
	if len(pending) == 0 {
		return RetryResult{}, nil
	}

	pool, err := ants.NewPool(min(s.retryWorkers, len(pending)))
	if err != nil {
		err = fmt.Errorf("create worker pool: %w", err)
		return RetryResult{}, err
	}
	defer pool.Release()

	var resolved, stillPending, failed atomic.Int32
	var workers sync.WaitGroup
	for _, item := range pending {
		eventID := item.ID
		workers.Add(1)
		if submitErr := pool.Submit(func() {
			defer workers.Done()

			ev, resolveErr := s.ResolveFormat(ctx, eventID)
			switch {
			case resolveErr == nil && ev.FormatResolved():
				resolved.Add(1)
			case resolveErr == nil, errors.Is(resolveErr, ErrNoFormatsConfigured), errors.Is(resolveErr, ErrInvalidTransition):
				stillPending.Add(1)
			default:
				failed.Add(1)
				s.logger.WarnContext(ctx, "retry format resolution failed", "event_id", eventID, "error", resolveErr)
			}
		}); submitErr != nil {
			workers.Done()
			err = fmt.Errorf("submit task to worker pool: %w", submitErr)
			workers.Wait()
			return RetryResult{}, err
		}
	}
	workers.Wait()

	result := RetryResult{
		Checked:  len(pending),
		Resolved: int(resolved.Load()),
		Pending:  int(stillPending.Load()),
		Failed:   int(failed.Load()),
	}
	if result.Resolved > 0 || result.Failed > 0 {
		s.logger.InfoContext(ctx, "pending format retry finished",
			"checked", result.Checked,
			"resolved", result.Resolved,
			"pending", result.Pending,
			"failed", result.Failed,
		)
	}
	return result, nil
}
