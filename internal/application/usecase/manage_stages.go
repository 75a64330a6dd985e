package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/stagedock/internal/domain/entity"
	"github.com/bnema/stagedock/internal/logging"
)

// ManageStagesUseCase handles stage host operations: adding, removing,
// reordering, and selecting the swipeable workspaces inside a host node.
type ManageStagesUseCase struct {
	idGenerator IDGenerator
}

// NewManageStagesUseCase creates a new stage management use case.
func NewManageStagesUseCase(idGenerator IDGenerator) *ManageStagesUseCase {
	return &ManageStagesUseCase{
		idGenerator: idGenerator,
	}
}

// AddStage appends a fresh stage (empty tab group layout) to the host and
// makes it active.
func (uc *ManageStagesUseCase) AddStage(ctx context.Context, layout *entity.Layout, hostID entity.NodeID, title string) (*entity.Layout, entity.StageID, error) {
	log := logging.FromContext(ctx)

	if layout == nil {
		return nil, "", fmt.Errorf("layout is required")
	}

	stageID := entity.StageID(uc.idGenerator())
	stage := &entity.Stage{
		ID:     stageID,
		Title:  title,
		Layout: entity.NewTabGroup(entity.NodeID(uc.idGenerator())),
	}

	updated := layout.Clone()
	for _, window := range updated.Windows {
		if window.Root == nil {
			continue
		}
		if host := window.Root.FindNode(hostID); host == nil || !host.IsStageHost() {
			continue
		}
		window.Root = window.Root.AddingStage(hostID, stage)

		log.Info().
			Str("host_id", string(hostID)).
			Str("stage_id", string(stageID)).
			Msg("stage added")

		return updated, stageID, nil
	}

	return layout, "", fmt.Errorf("stage host not found: %s", hostID)
}

// RemoveStage removes the stage; the host keeps one fresh empty stage rather
// than going empty. Unknown stage IDs are a no-op.
func (uc *ManageStagesUseCase) RemoveStage(ctx context.Context, layout *entity.Layout, stageID entity.StageID) (*entity.Layout, error) {
	log := logging.FromContext(ctx)

	if layout == nil {
		return nil, fmt.Errorf("layout is required")
	}

	updated := layout.Clone()
	for _, window := range updated.Windows {
		if window.Root == nil {
			continue
		}
		result := window.Root.RemovingStage(stageID, entity.IDGenerator(uc.idGenerator))
		if result != window.Root {
			window.Root = result
			log.Info().Str("stage_id", string(stageID)).Msg("stage removed")
			return updated, nil
		}
	}

	log.Debug().Str("stage_id", string(stageID)).Msg("remove stage: not found, no-op")
	return layout, nil
}

// SelectStage sets the host's active stage index, clamped to valid range.
func (uc *ManageStagesUseCase) SelectStage(ctx context.Context, layout *entity.Layout, hostID entity.NodeID, index int) (*entity.Layout, error) {
	log := logging.FromContext(ctx)

	if layout == nil {
		return nil, fmt.Errorf("layout is required")
	}

	updated := layout.Clone()
	for _, window := range updated.Windows {
		if window.Root == nil {
			continue
		}
		result := window.Root.SelectingStage(hostID, index)
		if result != window.Root {
			window.Root = result
			log.Debug().
				Str("host_id", string(hostID)).
				Int("index", index).
				Msg("stage selected")
			return updated, nil
		}
	}

	return layout, nil
}

// MoveStage repositions a stage within its host.
func (uc *ManageStagesUseCase) MoveStage(ctx context.Context, layout *entity.Layout, stageID entity.StageID, toIndex int) (*entity.Layout, error) {
	if layout == nil {
		return nil, fmt.Errorf("layout is required")
	}

	updated := layout.Clone()
	for _, window := range updated.Windows {
		if window.Root == nil {
			continue
		}
		result := window.Root.MovingStage(stageID, toIndex)
		if result != window.Root {
			window.Root = result
			return updated, nil
		}
	}

	return layout, nil
}
