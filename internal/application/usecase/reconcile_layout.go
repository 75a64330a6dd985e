package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/bnema/stagedock/internal/application/port"
	"github.com/bnema/stagedock/internal/domain/entity"
	"github.com/bnema/stagedock/internal/logging"
)

// ErrReconcileInProgress is returned when UpdateLayout is called while a
// pass is still running. Overlapping passes are a programming error in the
// single-threaded model, not a runtime race; callers that legitimately want
// "apply later" queue through the mainloop coalescer instead.
var ErrReconcileInProgress = errors.New("layout reconciliation already in progress")

// PanelCreate identifies a panel the host must create before the target
// layout can display it.
type PanelCreate struct {
	TabID entity.TabID
	Cargo []byte
}

// PanelCommands is the minimal panel-lifecycle delta between two layouts.
// Only presence or absence of tab identities matters; tree shape does not.
type PanelCommands struct {
	Create []PanelCreate
	Remove []entity.TabID
}

// IsEmpty reports whether no panel changes are required.
func (c PanelCommands) IsEmpty() bool {
	return len(c.Create) == 0 && len(c.Remove) == 0
}

// ComputeCommands diffs two layouts by tab identity. A tab present only in
// target is a creation; present only in current is a removal. The result is
// deterministic and independent of tree shape: both lists are sorted
// lexicographically by tab ID.
func ComputeCommands(current, target *entity.Layout) PanelCommands {
	currentIDs := tabSet(current)
	targetTabs := map[entity.TabID]*entity.Tab{}
	for _, tab := range target.AllTabs() {
		if _, seen := targetTabs[tab.ID]; !seen {
			targetTabs[tab.ID] = tab
		}
	}

	var cmds PanelCommands
	for id, tab := range targetTabs {
		if !currentIDs[id] {
			cmds.Create = append(cmds.Create, PanelCreate{TabID: id, Cargo: tab.Cargo})
		}
	}
	for id := range currentIDs {
		if _, ok := targetTabs[id]; !ok {
			cmds.Remove = append(cmds.Remove, id)
		}
	}

	sort.Slice(cmds.Create, func(i, j int) bool { return cmds.Create[i].TabID < cmds.Create[j].TabID })
	sort.Slice(cmds.Remove, func(i, j int) bool { return cmds.Remove[i] < cmds.Remove[j] })
	return cmds
}

func tabSet(l *entity.Layout) map[entity.TabID]bool {
	set := map[entity.TabID]bool{}
	if l == nil {
		return set
	}
	for _, tab := range l.AllTabs() {
		set[tab.ID] = true
	}
	return set
}

// ReconcileLayoutUseCase applies target layouts to a live window host with
// minimal disruption: unchanged windows are untouched, changed windows are
// re-applied (the host rebuilds only changed subtrees), and windows are
// opened or closed to match target.
type ReconcileLayoutUseCase struct {
	host       port.WindowHost
	current    *entity.Layout
	inProgress bool
}

// NewReconcileLayoutUseCase creates a reconciler over the given host.
func NewReconcileLayoutUseCase(host port.WindowHost) *ReconcileLayoutUseCase {
	return &ReconcileLayoutUseCase{host: host}
}

// Current returns the last applied layout (nil before the first pass).
func (uc *ReconcileLayoutUseCase) Current() *entity.Layout {
	return uc.current
}

// UpdateLayout reconciles the live windows against target and returns the
// panel commands the host must execute. An empty structural diff is a
// guaranteed no-op, making repeated calls with the same target idempotent.
func (uc *ReconcileLayoutUseCase) UpdateLayout(ctx context.Context, target *entity.Layout) (PanelCommands, error) {
	log := logging.FromContext(ctx)

	if uc.inProgress {
		return PanelCommands{}, ErrReconcileInProgress
	}
	uc.inProgress = true
	defer func() { uc.inProgress = false }()

	if target == nil {
		target = &entity.Layout{}
	}

	current := uc.current
	if current == nil {
		current = uc.host.LiveLayout()
	}
	if current == nil {
		current = &entity.Layout{}
	}

	if entity.LayoutsEqual(current, target) {
		log.Debug().Msg("update layout: empty diff, no-op")
		return PanelCommands{}, nil
	}

	cmds := ComputeCommands(current, target)

	currentByID := map[entity.WindowID]*entity.Window{}
	for _, w := range current.Windows {
		currentByID[w.ID] = w
	}

	for _, win := range target.Windows {
		existing, ok := currentByID[win.ID]
		if !ok {
			log.Info().Str("window_id", string(win.ID)).Msg("opening window")
			if err := uc.host.OpenWindow(ctx, win); err != nil {
				return cmds, fmt.Errorf("open window %s: %w", win.ID, err)
			}
			continue
		}
		if windowEqual(existing, win) {
			// Untouched branch: leave the live objects alone so panels keep
			// their internal state, focus, and scroll position.
			continue
		}
		log.Debug().Str("window_id", string(win.ID)).Msg("applying window")
		if err := uc.host.ApplyWindow(ctx, win); err != nil {
			return cmds, fmt.Errorf("apply window %s: %w", win.ID, err)
		}
	}

	targetIDs := map[entity.WindowID]bool{}
	for _, w := range target.Windows {
		targetIDs[w.ID] = true
	}
	for _, w := range current.Windows {
		if !targetIDs[w.ID] {
			log.Info().Str("window_id", string(w.ID)).Msg("closing window")
			if err := uc.host.CloseWindow(ctx, w.ID); err != nil {
				return cmds, fmt.Errorf("close window %s: %w", w.ID, err)
			}
		}
	}

	uc.current = target.Clone()

	// Convergence: re-querying live state must yield an empty diff.
	if live := uc.host.LiveLayout(); live != nil && !entity.LayoutsEqual(live, target) {
		return cmds, fmt.Errorf("reconciliation did not converge")
	}

	log.Info().
		Int("create", len(cmds.Create)).
		Int("remove", len(cmds.Remove)).
		Msg("layout updated")

	return cmds, nil
}

func windowEqual(a, b *entity.Window) bool {
	return a.Frame == b.Frame &&
		a.IsFullScreen == b.IsFullScreen &&
		entity.NodesEqual(a.Root, b.Root)
}
