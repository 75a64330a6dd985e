package layout

import (
	"sync"

	"github.com/bnema/stagedock/internal/domain/entity"
	"github.com/bnema/stagedock/internal/ui/gesture"
)

// StageView wraps a PagerWidget holding one page per stage. It
// implements gesture.Delegate so a navigation engine can drive its
// scroll offset during swipes and flip the visible page on commit.
type StageView struct {
	pager       PagerWidget
	stages      []entity.StageID
	activeIndex int

	onStageCommitted func(index int)

	mu sync.RWMutex
}

var _ gesture.Delegate = (*StageView)(nil)

// NewStageView creates an empty stage pager.
func NewStageView(factory WidgetFactory) *StageView {
	return &StageView{
		pager:       factory.NewPager(),
		activeIndex: -1,
	}
}

// AddStage appends a stage page holding the stage's materialized layout.
func (sv *StageView) AddStage(id entity.StageID, content Widget) int {
	sv.mu.Lock()
	defer sv.mu.Unlock()

	index := len(sv.stages)
	sv.pager.InsertPage(content, index)
	sv.stages = append(sv.stages, id)
	if sv.activeIndex < 0 {
		sv.activeIndex = 0
		sv.pager.SetVisiblePage(0)
	}
	return index
}

// RemoveStage removes the stage page at the given index.
func (sv *StageView) RemoveStage(index int) error {
	sv.mu.Lock()
	defer sv.mu.Unlock()

	if index < 0 || index >= len(sv.stages) {
		return ErrIndexOutOfBounds
	}
	sv.pager.RemovePage(index)
	sv.stages = append(sv.stages[:index], sv.stages[index+1:]...)

	if len(sv.stages) == 0 {
		sv.activeIndex = -1
		return nil
	}
	if sv.activeIndex >= len(sv.stages) {
		sv.activeIndex = len(sv.stages) - 1
	} else if sv.activeIndex > index {
		sv.activeIndex--
	}
	sv.pager.SetVisiblePage(sv.activeIndex)
	return nil
}

// SetActive flips directly to the stage at the given index.
func (sv *StageView) SetActive(index int) error {
	sv.mu.Lock()
	defer sv.mu.Unlock()

	if index < 0 || index >= len(sv.stages) {
		return ErrIndexOutOfBounds
	}
	sv.activeIndex = index
	sv.pager.SetVisiblePage(index)
	sv.pager.SetScrollOffset(0)
	return nil
}

// ActiveIndex returns the visible stage index, or -1 when empty.
func (sv *StageView) ActiveIndex() int {
	sv.mu.RLock()
	defer sv.mu.RUnlock()

	return sv.activeIndex
}

// Count returns the number of stages.
func (sv *StageView) Count() int {
	sv.mu.RLock()
	defer sv.mu.RUnlock()

	return len(sv.stages)
}

// StageID returns the stage identity at the given index.
func (sv *StageView) StageID(index int) (entity.StageID, error) {
	sv.mu.RLock()
	defer sv.mu.RUnlock()

	if index < 0 || index >= len(sv.stages) {
		return "", ErrIndexOutOfBounds
	}
	return sv.stages[index], nil
}

// PageWidth returns the pixel extent of one stage page.
func (sv *StageView) PageWidth() float64 {
	return sv.pager.GetPageWidth()
}

// SetOnStageCommitted sets the callback fired after a gesture commits a
// stage change. The callback receives the new stage index and is
// expected to route it into a tree mutation; the view itself never
// touches the tree.
func (sv *StageView) SetOnStageCommitted(fn func(index int)) {
	sv.mu.Lock()
	defer sv.mu.Unlock()

	sv.onStageCommitted = fn
}

// OffsetChanged implements gesture.Delegate.
func (sv *StageView) OffsetChanged(offset float64) {
	sv.pager.SetScrollOffset(offset)
}

// IndexCommitted implements gesture.Delegate.
func (sv *StageView) IndexCommitted(index int) {
	sv.mu.Lock()
	changed := index != sv.activeIndex
	if index >= 0 && index < len(sv.stages) {
		sv.activeIndex = index
		sv.pager.SetVisiblePage(index)
	}
	cb := sv.onStageCommitted
	sv.mu.Unlock()

	if changed && cb != nil {
		cb(index)
	}
}

// StateChanged implements gesture.Delegate.
func (sv *StageView) StateChanged(_ gesture.State) {}

// Widget returns the underlying PagerWidget for embedding in containers.
func (sv *StageView) Widget() Widget {
	return sv.pager
}
