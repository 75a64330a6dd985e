package mainloop

import (
	"context"
	"errors"
	"sync"

	"github.com/bnema/stagedock/internal/application/usecase"
	"github.com/bnema/stagedock/internal/domain/entity"
	"github.com/bnema/stagedock/internal/logging"
)

const layoutUpdateKey = "layout-update"

// LayoutReconciler is the slice of the reconcile use case the scheduler
// drives.
type LayoutReconciler interface {
	UpdateLayout(ctx context.Context, target *entity.Layout) (usecase.PanelCommands, error)
}

// LayoutScheduler funnels declarative layout targets onto the main loop.
// Bursts of Schedule calls coalesce into one reconciliation pass against
// the latest target, and a pass rejected because another is still in
// flight is retried instead of dropped.
type LayoutScheduler struct {
	coalescer  *Coalescer
	reconciler LayoutReconciler

	mu      sync.Mutex
	pending *entity.Layout
}

// NewLayoutScheduler creates a scheduler posting through the given
// main-loop executor.
func NewLayoutScheduler(post func(func()), reconciler LayoutReconciler) *LayoutScheduler {
	return &LayoutScheduler{
		coalescer:  NewCoalescer(post),
		reconciler: reconciler,
	}
}

// Schedule records target as the desired layout and queues a
// reconciliation pass. Only the most recent target survives a burst.
func (s *LayoutScheduler) Schedule(ctx context.Context, target *entity.Layout) {
	s.mu.Lock()
	s.pending = target
	s.mu.Unlock()

	s.coalescer.Post(layoutUpdateKey, func() { s.flush(ctx) })
}

func (s *LayoutScheduler) flush(ctx context.Context) {
	s.mu.Lock()
	target := s.pending
	s.pending = nil
	s.mu.Unlock()

	if target == nil {
		return
	}

	_, err := s.reconciler.UpdateLayout(ctx, target)
	switch {
	case errors.Is(err, usecase.ErrReconcileInProgress):
		// Keep the target and try again on the next loop turn, unless a
		// newer one arrived in the meantime.
		s.mu.Lock()
		if s.pending == nil {
			s.pending = target
		}
		s.mu.Unlock()
		s.coalescer.Post(layoutUpdateKey, func() { s.flush(ctx) })
	case err != nil:
		logging.FromContext(ctx).Error().Err(err).Msg("layout reconciliation failed")
	}
}

// Destroy drops all queued work.
func (s *LayoutScheduler) Destroy() {
	s.coalescer.Destroy()
}
