package layout

import (
	"sync"
)

// SplitView wraps a SplitWidget for dividing space among sibling
// subtrees along one axis.
type SplitView struct {
	split       SplitWidget
	orientation Orientation
	children    []Widget

	onProportionsChanged func(proportions []float64)

	mu sync.RWMutex
}

// NewSplitView creates a split view with the given orientation.
func NewSplitView(factory WidgetFactory, orientation Orientation) *SplitView {
	sv := &SplitView{
		split:       factory.NewSplit(orientation),
		orientation: orientation,
	}

	sv.split.ConnectProportionsChanged(func(proportions []float64) {
		sv.mu.RLock()
		cb := sv.onProportionsChanged
		sv.mu.RUnlock()
		if cb != nil {
			cb(proportions)
		}
	})

	return sv
}

// Append adds a child at the end of the split.
func (sv *SplitView) Append(child Widget) {
	sv.mu.Lock()
	defer sv.mu.Unlock()

	sv.split.InsertChild(child, len(sv.children))
	sv.children = append(sv.children, child)
}

// SetProportions applies the per-child shares to the divider positions.
func (sv *SplitView) SetProportions(proportions []float64) {
	sv.split.SetProportions(proportions)
}

// GetProportions returns the current divider shares.
func (sv *SplitView) GetProportions() []float64 {
	return sv.split.GetProportions()
}

// SetOnProportionsChanged sets the callback fired after a divider drag.
func (sv *SplitView) SetOnProportionsChanged(fn func(proportions []float64)) {
	sv.mu.Lock()
	defer sv.mu.Unlock()

	sv.onProportionsChanged = fn
}

// Children returns the current child widgets in order.
func (sv *SplitView) Children() []Widget {
	sv.mu.RLock()
	defer sv.mu.RUnlock()

	out := make([]Widget, len(sv.children))
	copy(out, sv.children)
	return out
}

// Orientation returns the split orientation.
func (sv *SplitView) Orientation() Orientation {
	return sv.orientation
}

// Widget returns the underlying SplitWidget for embedding in containers.
func (sv *SplitView) Widget() Widget {
	return sv.split
}
