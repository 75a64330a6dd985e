package layout

import (
	"errors"
	"sync"

	"github.com/bnema/stagedock/internal/domain/entity"
)

// ErrGroupEmpty is returned when operating on an empty group.
var ErrGroupEmpty = errors.New("group is empty")

// ErrIndexOutOfBounds is returned when an index is out of range.
var ErrIndexOutOfBounds = errors.New("index out of bounds")

const defaultTabIcon = "window-symbolic"

// groupTab is a single tab within a group view.
type groupTab struct {
	id     entity.TabID
	button ButtonWidget
	icon   ImageWidget
	label  LabelWidget
	panel  Widget
	title  string
}

// GroupView manages a tab group: a strip of clickable tab headers above
// a content area where exactly one panel is visible at a time. The strip
// visibility follows the group's display mode.
type GroupView struct {
	factory     WidgetFactory
	box         BoxWidget
	strip       BoxWidget
	tabs        []*groupTab
	activeIndex int
	displayMode entity.DisplayMode

	onActivate func(index int)

	mu sync.RWMutex
}

// NewGroupView creates an empty tab group container.
func NewGroupView(factory WidgetFactory) *GroupView {
	box := factory.NewBox(OrientationVertical, 0)

	strip := factory.NewBox(OrientationHorizontal, 2)
	strip.AddCssClass("tab-strip")
	box.Append(strip)

	return &GroupView{
		factory:     factory,
		box:         box,
		strip:       strip,
		activeIndex: -1,
		displayMode: entity.DisplayAutomatic,
	}
}

// AddTab appends a tab with its panel widget and makes it active.
// Returns the new tab's index.
func (gv *GroupView) AddTab(id entity.TabID, title, iconName string, panel Widget) int {
	gv.mu.Lock()
	defer gv.mu.Unlock()

	header := gv.factory.NewBox(OrientationHorizontal, 4)
	header.AddCssClass("tab-header")

	icon := gv.factory.NewImage()
	if iconName != "" {
		icon.SetFromIconName(iconName)
	} else {
		icon.SetFromIconName(defaultTabIcon)
	}
	icon.SetPixelSize(16)
	header.Append(icon)

	label := gv.factory.NewLabel(title)
	header.Append(label)

	button := gv.factory.NewButton()
	button.SetChild(header)
	button.AddCssClass("tab-button")

	tab := &groupTab{
		id:     id,
		button: button,
		icon:   icon,
		label:  label,
		panel:  panel,
		title:  title,
	}

	index := len(gv.tabs)
	gv.tabs = append(gv.tabs, tab)

	button.ConnectClicked(func() {
		gv.mu.RLock()
		callback := gv.onActivate
		gv.mu.RUnlock()

		if callback != nil {
			callback(index)
		}
	})

	gv.strip.Append(button)
	if panel != nil {
		gv.box.Append(panel)
	}

	gv.setActiveInternal(index)
	return index
}

// RemoveTab removes the tab at the given index. Removing the last tab
// leaves an empty group, which is a legal placeholder state.
func (gv *GroupView) RemoveTab(index int) error {
	gv.mu.Lock()
	defer gv.mu.Unlock()

	if len(gv.tabs) == 0 {
		return ErrGroupEmpty
	}
	if index < 0 || index >= len(gv.tabs) {
		return ErrIndexOutOfBounds
	}

	tab := gv.tabs[index]
	gv.strip.Remove(tab.button)
	if tab.panel != nil {
		gv.box.Remove(tab.panel)
	}

	gv.tabs = append(gv.tabs[:index], gv.tabs[index+1:]...)

	if len(gv.tabs) == 0 {
		gv.activeIndex = -1
		gv.updateVisibilityInternal()
		return nil
	}
	if gv.activeIndex >= len(gv.tabs) {
		gv.activeIndex = len(gv.tabs) - 1
	} else if gv.activeIndex > index {
		gv.activeIndex--
	}
	gv.updateVisibilityInternal()
	return nil
}

// SetActive activates the tab at the given index, showing its panel.
func (gv *GroupView) SetActive(index int) error {
	gv.mu.Lock()
	defer gv.mu.Unlock()

	if len(gv.tabs) == 0 {
		return ErrGroupEmpty
	}
	if index < 0 || index >= len(gv.tabs) {
		return ErrIndexOutOfBounds
	}

	gv.setActiveInternal(index)
	return nil
}

// setActiveInternal sets the active tab without locking.
func (gv *GroupView) setActiveInternal(index int) {
	gv.activeIndex = index
	gv.updateVisibilityInternal()
}

// updateVisibilityInternal updates the strip and panel visibility from
// the active index and display mode.
func (gv *GroupView) updateVisibilityInternal() {
	showStrip := false
	switch gv.displayMode {
	case entity.DisplayAlways:
		showStrip = true
	case entity.DisplayNever:
		showStrip = false
	default:
		showStrip = len(gv.tabs) > 1
	}
	gv.strip.SetVisible(showStrip)

	for i, tab := range gv.tabs {
		isActive := i == gv.activeIndex
		if tab.panel != nil {
			tab.panel.SetVisible(isActive)
		}
		if isActive {
			tab.button.AddCssClass("active")
		} else {
			tab.button.RemoveCssClass("active")
		}
	}
}

// SetDisplayMode changes when the tab strip is shown.
func (gv *GroupView) SetDisplayMode(mode entity.DisplayMode) {
	gv.mu.Lock()
	defer gv.mu.Unlock()

	gv.displayMode = mode
	gv.updateVisibilityInternal()
}

// ActiveIndex returns the index of the currently active tab, or -1 when
// the group is empty.
func (gv *GroupView) ActiveIndex() int {
	gv.mu.RLock()
	defer gv.mu.RUnlock()

	return gv.activeIndex
}

// Count returns the number of tabs in the group.
func (gv *GroupView) Count() int {
	gv.mu.RLock()
	defer gv.mu.RUnlock()

	return len(gv.tabs)
}

// TabID returns the tab identity at the given index.
func (gv *GroupView) TabID(index int) (entity.TabID, error) {
	gv.mu.RLock()
	defer gv.mu.RUnlock()

	if index < 0 || index >= len(gv.tabs) {
		return "", ErrIndexOutOfBounds
	}
	return gv.tabs[index].id, nil
}

// SetOnActivate sets the callback for a tab header click.
func (gv *GroupView) SetOnActivate(fn func(index int)) {
	gv.mu.Lock()
	defer gv.mu.Unlock()

	gv.onActivate = fn
}

// UpdateTitle updates the title of the tab at the given index.
func (gv *GroupView) UpdateTitle(index int, title string) error {
	gv.mu.Lock()
	defer gv.mu.Unlock()

	if index < 0 || index >= len(gv.tabs) {
		return ErrIndexOutOfBounds
	}

	gv.tabs[index].title = title
	gv.tabs[index].label.SetText(title)
	return nil
}

// UpdateIcon updates the icon of the tab at the given index.
func (gv *GroupView) UpdateIcon(index int, iconName string) error {
	gv.mu.Lock()
	defer gv.mu.Unlock()

	if index < 0 || index >= len(gv.tabs) {
		return ErrIndexOutOfBounds
	}

	if iconName != "" {
		gv.tabs[index].icon.SetFromIconName(iconName)
	} else {
		gv.tabs[index].icon.SetFromIconName(defaultTabIcon)
	}
	return nil
}

// Panel returns the panel widget for the tab at the given index.
func (gv *GroupView) Panel(index int) (Widget, error) {
	gv.mu.RLock()
	defer gv.mu.RUnlock()

	if index < 0 || index >= len(gv.tabs) {
		return nil, ErrIndexOutOfBounds
	}
	return gv.tabs[index].panel, nil
}

// Widget returns the underlying BoxWidget for embedding in containers.
func (gv *GroupView) Widget() Widget {
	return gv.box
}
