package entity

// WindowID uniquely identifies a host window.
type WindowID string

// Window owns exactly one root layout tree plus the frame metadata persisted
// with it. Sub-tree ownership is exclusive: no sharing between windows.
type Window struct {
	ID           WindowID
	Frame        Rect
	IsFullScreen bool
	Root         *LayoutNode
}

// Layout is the full multi-window arrangement a host application manages.
type Layout struct {
	Windows []*Window
}

// Clone returns a deep copy of the layout.
func (l *Layout) Clone() *Layout {
	if l == nil {
		return nil
	}
	clone := &Layout{Windows: make([]*Window, len(l.Windows))}
	for i, w := range l.Windows {
		clone.Windows[i] = &Window{
			ID:           w.ID,
			Frame:        w.Frame,
			IsFullScreen: w.IsFullScreen,
			Root:         w.Root.Clone(),
		}
	}
	return clone
}

// FindWindow returns the window with the given ID, or nil.
func (l *Layout) FindWindow(id WindowID) *Window {
	if l == nil {
		return nil
	}
	for _, w := range l.Windows {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// AllTabs returns every tab across all windows in window order, pre-order
// within each tree.
func (l *Layout) AllTabs() []*Tab {
	var tabs []*Tab
	if l == nil {
		return tabs
	}
	for _, w := range l.Windows {
		if w.Root != nil {
			tabs = append(tabs, w.Root.AllTabs()...)
		}
	}
	return tabs
}

// FindTab returns the window and group holding the first tab with the given
// ID, plus its index. Returns (nil, nil, -1) when absent.
func (l *Layout) FindTab(id TabID) (*Window, *LayoutNode, int) {
	if l == nil {
		return nil, nil, -1
	}
	for _, w := range l.Windows {
		if w.Root == nil {
			continue
		}
		if group, idx := w.Root.FindTab(id); group != nil {
			return w, group, idx
		}
	}
	return nil, nil, -1
}
