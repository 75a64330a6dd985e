package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/stagedock/internal/domain/entity"
	"github.com/bnema/stagedock/internal/logging"
)

// ManagePanelsUseCase handles panel and tab operations across a layout.
// All tree changes go through the pure entity transforms; this use case
// orchestrates them per window and keeps identity generation in one place.
type ManagePanelsUseCase struct {
	idGenerator IDGenerator
}

// NewManagePanelsUseCase creates a new panel management use case.
func NewManagePanelsUseCase(idGenerator IDGenerator) *ManagePanelsUseCase {
	return &ManagePanelsUseCase{
		idGenerator: idGenerator,
	}
}

// AddPanelInput contains parameters for adding a panel.
type AddPanelInput struct {
	Layout   *entity.Layout
	WindowID entity.WindowID
	GroupID  entity.NodeID // Optional: target group; empty means first group
	AtIndex  int
	Title    string
	IconName string
	Cargo    []byte
	TabID    entity.TabID // Optional: reuse an existing identity (drag-in)
}

// AddPanelOutput contains the result of adding a panel.
type AddPanelOutput struct {
	Layout *entity.Layout
	TabID  entity.TabID
}

// AddPanel inserts a new tab into the target window. When the window's tree
// is empty a fresh root group is created; when no group ID is given the
// first pre-order group receives the tab.
func (uc *ManagePanelsUseCase) AddPanel(ctx context.Context, input AddPanelInput) (*AddPanelOutput, error) {
	log := logging.FromContext(ctx)

	if input.Layout == nil {
		return nil, fmt.Errorf("layout is required")
	}
	window := input.Layout.FindWindow(input.WindowID)
	if window == nil {
		return nil, fmt.Errorf("window not found: %s", input.WindowID)
	}

	tabID := input.TabID
	if tabID == "" {
		tabID = entity.TabID(uc.idGenerator())
	}
	tab := &entity.Tab{
		ID:       tabID,
		Title:    input.Title,
		IconName: input.IconName,
		Cargo:    input.Cargo,
	}

	layout := input.Layout.Clone()
	window = layout.FindWindow(input.WindowID)

	if window.Root == nil || (window.Root.IsTabGroup() && len(window.Root.Tabs) == 0 && input.GroupID == "") {
		rootID := entity.NodeID(uc.idGenerator())
		if window.Root != nil {
			rootID = window.Root.ID
		}
		window.Root = entity.NewTabGroup(rootID, tab)
	} else {
		groupID := input.GroupID
		if groupID == "" {
			groupID = firstGroupID(window.Root)
		}
		if groupID == "" {
			return nil, fmt.Errorf("no tab group in window %s", input.WindowID)
		}
		updated := window.Root.InsertingTab(groupID, tab, input.AtIndex)
		if updated == window.Root {
			return nil, fmt.Errorf("group not found: %s", groupID)
		}
		window.Root = updated
	}

	log.Info().
		Str("tab_id", string(tabID)).
		Str("window_id", string(input.WindowID)).
		Msg("panel added")

	return &AddPanelOutput{Layout: layout, TabID: tabID}, nil
}

// RemovePanel removes the tab wherever it lives and normalizes the owning
// tree. Unknown tab IDs return the layout unchanged.
func (uc *ManagePanelsUseCase) RemovePanel(ctx context.Context, layout *entity.Layout, tabID entity.TabID) (*entity.Layout, error) {
	log := logging.FromContext(ctx)

	if layout == nil {
		return nil, fmt.Errorf("layout is required")
	}

	window, _, _ := layout.FindTab(tabID)
	if window == nil {
		log.Debug().Str("tab_id", string(tabID)).Msg("remove panel: tab not found, no-op")
		return layout, nil
	}

	updated := layout.Clone()
	target := updated.FindWindow(window.ID)
	target.Root, _ = target.Root.RemovingTab(tabID)

	log.Info().
		Str("tab_id", string(tabID)).
		Str("window_id", string(window.ID)).
		Msg("panel removed")

	return updated, nil
}

// DetachPanelOutput carries the detached tab for reinsertion elsewhere.
type DetachPanelOutput struct {
	Layout *entity.Layout
	Tab    *entity.Tab
}

// DetachPanel removes the tab and hands it back with its cargo intact, so a
// caller can move it into another window's tree (moving a tab between two
// independently-rooted trees is an explicit detach-then-insert, never a
// single tree operation).
func (uc *ManagePanelsUseCase) DetachPanel(ctx context.Context, layout *entity.Layout, tabID entity.TabID) (*DetachPanelOutput, error) {
	log := logging.FromContext(ctx)

	if layout == nil {
		return nil, fmt.Errorf("layout is required")
	}

	window, _, _ := layout.FindTab(tabID)
	if window == nil {
		return &DetachPanelOutput{Layout: layout}, nil
	}

	updated := layout.Clone()
	target := updated.FindWindow(window.ID)
	root, tab, _ := target.Root.DetachingTab(tabID)
	target.Root = root

	log.Info().
		Str("tab_id", string(tabID)).
		Str("window_id", string(window.ID)).
		Msg("panel detached")

	return &DetachPanelOutput{Layout: updated, Tab: tab}, nil
}

// MoveTab repositions a tab into a destination group of the same window.
// Both IDs must resolve inside one tree; unknown IDs are a no-op. The source
// group is normalized afterward so an emptied group does not linger.
func (uc *ManagePanelsUseCase) MoveTab(ctx context.Context, layout *entity.Layout, tabID entity.TabID, toGroupID entity.NodeID, atIndex int) (*entity.Layout, error) {
	log := logging.FromContext(ctx)

	if layout == nil {
		return nil, fmt.Errorf("layout is required")
	}

	window, _, _ := layout.FindTab(tabID)
	if window == nil || window.Root.FindGroup(toGroupID) == nil {
		log.Debug().
			Str("tab_id", string(tabID)).
			Str("group_id", string(toGroupID)).
			Msg("move tab: id not found in a single tree, no-op")
		return layout, nil
	}

	updated := layout.Clone()
	target := updated.FindWindow(window.ID)
	target.Root = target.Root.MovingTab(tabID, toGroupID, atIndex).CleanedUp()

	log.Info().
		Str("tab_id", string(tabID)).
		Str("group_id", string(toGroupID)).
		Int("index", atIndex).
		Msg("tab moved")

	return updated, nil
}

// SplitPanelInput contains parameters for splitting a group.
type SplitPanelInput struct {
	Layout    *entity.Layout
	GroupID   entity.NodeID
	Direction entity.SplitDirection
	Title     string
	IconName  string
	Cargo     []byte
	Tab       *entity.Tab // Optional: existing tab to place in the new group
}

// SplitPanelOutput contains the result of a split.
type SplitPanelOutput struct {
	Layout *entity.Layout
	TabID  entity.TabID
}

// SplitPanel replaces the group with a split holding the group and a new
// singleton group toward the named edge. Unknown group IDs are a no-op.
func (uc *ManagePanelsUseCase) SplitPanel(ctx context.Context, input SplitPanelInput) (*SplitPanelOutput, error) {
	log := logging.FromContext(ctx)

	if input.Layout == nil {
		return nil, fmt.Errorf("layout is required")
	}

	tab := input.Tab
	if tab == nil {
		tab = &entity.Tab{
			ID:       entity.TabID(uc.idGenerator()),
			Title:    input.Title,
			IconName: input.IconName,
			Cargo:    input.Cargo,
		}
	}

	updated := input.Layout.Clone()
	for _, window := range updated.Windows {
		if window.Root == nil || window.Root.FindGroup(input.GroupID) == nil {
			continue
		}
		window.Root = window.Root.Splitting(input.GroupID, input.Direction, tab, entity.IDGenerator(uc.idGenerator))

		log.Info().
			Str("group_id", string(input.GroupID)).
			Str("direction", string(input.Direction)).
			Str("new_tab_id", string(tab.ID)).
			Msg("panel split")

		return &SplitPanelOutput{Layout: updated, TabID: tab.ID}, nil
	}

	log.Debug().Str("group_id", string(input.GroupID)).Msg("split: group not found, no-op")
	return &SplitPanelOutput{Layout: input.Layout, TabID: tab.ID}, nil
}

// firstGroupID returns the first pre-order tab group's ID, or "".
func firstGroupID(root *entity.LayoutNode) entity.NodeID {
	var id entity.NodeID
	root.Walk(func(n *entity.LayoutNode) bool {
		if n.IsTabGroup() {
			id = n.ID
			return false
		}
		return true
	})
	return id
}
