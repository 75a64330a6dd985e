package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/stagedock/internal/application/port"
	"github.com/bnema/stagedock/internal/domain/entity"
	"github.com/bnema/stagedock/internal/domain/repository"
	"github.com/bnema/stagedock/internal/logging"
)

// RestoreLayoutUseCase loads a saved layout and resolves its tabs against
// the live panel provider.
type RestoreLayoutUseCase struct {
	repo     repository.LayoutRepository
	provider port.PanelProvider
}

// NewRestoreLayoutUseCase creates a new restore use case.
func NewRestoreLayoutUseCase(repo repository.LayoutRepository, provider port.PanelProvider) *RestoreLayoutUseCase {
	return &RestoreLayoutUseCase{repo: repo, provider: provider}
}

// RestoreOutput carries the restored layout. Placeholders lists the tabs
// whose ID no longer resolves to a live panel: they keep their persisted
// title and icon and render without content rather than failing the load.
type RestoreOutput struct {
	Layout       *entity.Layout
	Placeholders []entity.TabID
}

// Restore loads the named layout. A missing panel is never an error; the
// tab stays in the tree as a placeholder and is reported in the output.
func (uc *RestoreLayoutUseCase) Restore(ctx context.Context, name string) (*RestoreOutput, error) {
	log := logging.FromContext(ctx)

	if name == "" {
		name = DefaultLayoutName
	}
	snap, err := uc.repo.GetSnapshot(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load layout %q: %w", name, err)
	}

	layout := snap.ToLayout()

	var placeholders []entity.TabID
	if uc.provider != nil {
		for _, tab := range layout.AllTabs() {
			if uc.provider(tab.ID) == nil {
				placeholders = append(placeholders, tab.ID)
			}
		}
	}

	log.Info().
		Str("name", name).
		Int("windows", len(layout.Windows)).
		Int("placeholders", len(placeholders)).
		Msg("layout restored")

	return &RestoreOutput{Layout: layout, Placeholders: placeholders}, nil
}
