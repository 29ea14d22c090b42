package cleanup

import (
	"context"
	"errors"
	"fmt"

	"content-sweeper/core/manifest"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// State is a stage of a destroy run.
type State string

const (
	StateAwaitingManifest     State = "awaiting_manifest"
	StateAwaitingConfirmation State = "awaiting_confirmation"
	StateDeleting             State = "deleting"
	StateCompleted            State = "completed"
	StateAborted              State = "aborted"
)

var (
	// ErrConfirmationDeclined is returned when the operator does not supply the confirmation token.
	ErrConfirmationDeclined = errors.New("deletion was not confirmed")
	// ErrPartialDeletion is returned when at least one listed object could not be deleted.
	ErrPartialDeletion = errors.New("some objects could not be deleted")
)

// Deleter removes one object by its exact key.
type Deleter interface {
	Delete(ctx context.Context, key string) error
}

// Outcome is the result of deleting one manifest entry.
type Outcome struct {
	Entry manifest.Entry
	Err   error
}

// Deleted reports whether the entry was removed.
func (o Outcome) Deleted() bool {
	return o.Err == nil
}

// Report summarizes a destroy run. Outcomes follow manifest order.
type Report struct {
	State        State
	Total        int
	DeletedCount int
	FailedCount  int
	Outcomes     []Outcome
}

// Executor deletes the objects listed in a loaded manifest, and nothing else.
type Executor struct {
	deleter Deleter
	workers int
	logger  *zap.Logger
}

// NewExecutor creates an Executor. workers bounds concurrent deletes; 1 deletes
// sequentially. A nil logger disables logging.
func NewExecutor(deleter Deleter, workers int, logger *zap.Logger) *Executor {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{deleter: deleter, workers: workers, logger: logger}
}

// Run drives a destroy run through confirmation and deletion. The returned report
// is never nil. A failed delete is recorded and the remaining entries are still
// attempted.
func (e *Executor) Run(ctx context.Context, m *manifest.Manifest, confirmer Confirmer) (*Report, error) {
	report := &Report{State: StateAwaitingManifest}

	if m == nil {
		report.State = StateAborted
		return report, manifest.ErrManifestMissing
	}

	report.Total = len(m.OrphanedFiles)
	if report.Total == 0 {
		e.logger.Info("No orphaned files to delete")
		report.State = StateCompleted
		return report, nil
	}

	report.State = StateAwaitingConfirmation
	confirmed, err := confirmer.Confirm(ctx, m)
	if err != nil {
		report.State = StateAborted
		return report, fmt.Errorf("failed to read confirmation: %w", err)
	}
	if !confirmed {
		e.logger.Warn("Deletion cancelled by user. No changes were made.")
		report.State = StateAborted
		return report, ErrConfirmationDeclined
	}

	report.State = StateDeleting
	e.logger.Info("Deleting orphaned files", zap.Int("count", report.Total), zap.Int("workers", e.workers))

	report.Outcomes = make([]Outcome, report.Total)

	// Failures must not cancel the other deletes, so the group has no shared context.
	var g errgroup.Group
	g.SetLimit(e.workers)

	for i, entry := range m.OrphanedFiles {
		g.Go(func() error {
			err := e.deleter.Delete(ctx, entry.S3Key)
			report.Outcomes[i] = Outcome{Entry: entry, Err: err}
			if err != nil {
				e.logger.Error("Failed to delete object", zap.String("key", entry.S3Key), zap.Error(err))
			} else {
				e.logger.Info("Deleted object", zap.String("key", entry.S3Key))
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, o := range report.Outcomes {
		if o.Deleted() {
			report.DeletedCount++
		} else {
			report.FailedCount++
		}
	}
	report.State = StateCompleted

	e.logger.Info("Cleanup completed",
		zap.Int("deleted", report.DeletedCount),
		zap.Int("errors", report.FailedCount),
		zap.Int("total", report.Total),
	)

	if report.FailedCount > 0 {
		return report, fmt.Errorf("%w: %d of %d failed", ErrPartialDeletion, report.FailedCount, report.Total)
	}
	return report, nil
}
