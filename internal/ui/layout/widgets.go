// Package layout materializes domain layout trees into host-toolkit
// widgets. It defines the widget interfaces the host must provide,
// enabling unit testing without a UI runtime.
package layout

import (
	"github.com/bnema/stagedock/internal/domain/entity"
)

// Orientation represents the orientation for layout widgets.
type Orientation int

const (
	OrientationHorizontal Orientation = iota
	OrientationVertical
)

// Widget is the base interface all host widgets implement.
type Widget interface {
	// Visibility
	Show()
	Hide()
	SetVisible(visible bool)
	IsVisible() bool

	// CSS styling
	AddCssClass(cssClass string)
	RemoveCssClass(cssClass string)
	HasCssClass(cssClass string) bool

	// Parent management
	Unparent()
	GetParent() Widget
}

// SplitWidget is a container dividing its space among n children along
// one axis, with draggable dividers between them.
type SplitWidget interface {
	Widget

	// Child management
	InsertChild(child Widget, index int)
	RemoveChild(child Widget)
	ChildCount() int

	// Proportions are the per-child shares of the container's extent.
	// Implementations must keep them summing to 1.
	SetProportions(proportions []float64)
	GetProportions() []float64

	// ConnectProportionsChanged fires after the user drags a divider.
	ConnectProportionsChanged(callback func(proportions []float64)) uint32
}

// BoxWidget arranges children in a single row or column.
type BoxWidget interface {
	Widget

	Append(child Widget)
	Prepend(child Widget)
	Remove(child Widget)

	SetOrientation(orientation Orientation)
	GetOrientation() Orientation
	SetSpacing(spacing int)
}

// PagerWidget shows one page at a time with continuous horizontal
// scrolling between pages, used for stage navigation. The scroll offset
// is in page units relative to the visible page; positive offsets reveal
// lower page indices.
type PagerWidget interface {
	Widget

	InsertPage(child Widget, index int)
	RemovePage(index int)
	PageCount() int

	SetVisiblePage(index int)
	GetVisiblePage() int
	SetScrollOffset(offset float64)
	GetScrollOffset() float64

	// Extent of one page in pixels, the unit of one gesture step.
	GetPageWidth() float64
}

// LabelWidget displays a line of text.
type LabelWidget interface {
	Widget

	SetText(text string)
	GetText() string
}

// ButtonWidget is a clickable element wrapping arbitrary content.
type ButtonWidget interface {
	Widget

	SetChild(child Widget)
	GetChild() Widget

	// Connect click handler, returns signal ID for disconnection
	ConnectClicked(callback func()) uint32
}

// ImageWidget displays a named icon.
type ImageWidget interface {
	Widget

	SetFromIconName(iconName string)
	SetPixelSize(pixelSize int)
	Clear()
}

// WidgetFactory creates widget instances.
// This abstraction allows tests to inject fake factories.
type WidgetFactory interface {
	NewSplit(orientation Orientation) SplitWidget
	NewBox(orientation Orientation, spacing int) BoxWidget
	NewPager() PagerWidget
	NewLabel(text string) LabelWidget
	NewButton() ButtonWidget
	NewImage() ImageWidget
}

// PanelViewFactory creates content widgets for tabs. A nil result means
// the panel could not be resolved; the materializer renders a
// placeholder in its place.
type PanelViewFactory interface {
	CreatePanelView(tab *entity.Tab) Widget
}
