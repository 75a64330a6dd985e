package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/stagedock/internal/domain/entity"
	"github.com/bnema/stagedock/internal/domain/repository"
	"github.com/bnema/stagedock/internal/logging"
)

// DefaultLayoutName is the snapshot slot used by SaveLayout/LoadSavedLayout
// when the host does not manage named layouts itself.
const DefaultLayoutName = "default"

// SnapshotLayoutUseCase persists the current layout arrangement.
type SnapshotLayoutUseCase struct {
	repo repository.LayoutRepository
}

// NewSnapshotLayoutUseCase creates a new snapshot use case.
func NewSnapshotLayoutUseCase(repo repository.LayoutRepository) *SnapshotLayoutUseCase {
	return &SnapshotLayoutUseCase{repo: repo}
}

// Save serializes the layout under the given name. Panel content is never
// part of the snapshot; only tab identities, display hints, and cargo.
func (uc *SnapshotLayoutUseCase) Save(ctx context.Context, name string, layout *entity.Layout) error {
	log := logging.FromContext(ctx)

	if name == "" {
		name = DefaultLayoutName
	}
	snap := entity.SnapshotFromLayout(layout)

	if err := uc.repo.SaveSnapshot(ctx, name, snap); err != nil {
		return fmt.Errorf("save layout %q: %w", name, err)
	}

	log.Info().
		Str("name", name).
		Int("windows", len(snap.Windows)).
		Msg("layout saved")

	return nil
}
