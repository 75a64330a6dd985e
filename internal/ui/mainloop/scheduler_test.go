package mainloop

import (
	"context"
	"testing"

	"github.com/bnema/stagedock/internal/application/usecase"
	"github.com/bnema/stagedock/internal/domain/entity"
)

type fakeReconciler struct {
	targets []*entity.Layout
	errs    []error
}

func (f *fakeReconciler) UpdateLayout(_ context.Context, target *entity.Layout) (usecase.PanelCommands, error) {
	f.targets = append(f.targets, target)
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return usecase.PanelCommands{}, err
	}
	return usecase.PanelCommands{}, nil
}

func drainOne(t *testing.T, queue *[]func()) {
	t.Helper()
	if len(*queue) == 0 {
		t.Fatalf("main-loop queue is empty")
	}
	fn := (*queue)[0]
	*queue = (*queue)[1:]
	fn()
}

func TestSchedulerCoalescesBurstToLatestTarget(t *testing.T) {
	queue := make([]func(), 0, 8)
	rec := &fakeReconciler{}
	s := NewLayoutScheduler(func(fn func()) { queue = append(queue, fn) }, rec)
	ctx := context.Background()

	first := &entity.Layout{}
	second := &entity.Layout{Windows: []*entity.Window{{ID: "w1"}}}
	s.Schedule(ctx, first)
	s.Schedule(ctx, second)

	if len(queue) != 1 {
		t.Fatalf("burst should coalesce to one pass, got %d", len(queue))
	}
	drainOne(t, &queue)

	if len(rec.targets) != 1 || rec.targets[0] != second {
		t.Fatalf("reconciler should see only the latest target, got %d calls", len(rec.targets))
	}
}

func TestSchedulerRetriesWhenReconcileInProgress(t *testing.T) {
	queue := make([]func(), 0, 8)
	rec := &fakeReconciler{errs: []error{usecase.ErrReconcileInProgress}}
	s := NewLayoutScheduler(func(fn func()) { queue = append(queue, fn) }, rec)
	ctx := context.Background()

	target := &entity.Layout{}
	s.Schedule(ctx, target)
	drainOne(t, &queue)

	if len(queue) != 1 {
		t.Fatalf("rejected pass must be requeued, queue = %d", len(queue))
	}
	drainOne(t, &queue)

	if len(rec.targets) != 2 || rec.targets[1] != target {
		t.Fatalf("target must be retried, got %d calls", len(rec.targets))
	}
}

func TestSchedulerDropsWorkAfterDestroy(t *testing.T) {
	queue := make([]func(), 0, 4)
	rec := &fakeReconciler{}
	s := NewLayoutScheduler(func(fn func()) { queue = append(queue, fn) }, rec)

	s.Schedule(context.Background(), &entity.Layout{})
	s.Destroy()
	drainOne(t, &queue)

	if len(rec.targets) != 0 {
		t.Fatalf("destroyed scheduler must not reconcile, got %d calls", len(rec.targets))
	}
}
