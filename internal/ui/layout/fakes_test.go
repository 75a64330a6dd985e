package layout_test

import (
	"github.com/bnema/stagedock/internal/domain/entity"
	"github.com/bnema/stagedock/internal/ui/layout"
)

// Hand-rolled fakes standing in for a real toolkit. They track just
// enough state (visibility, parentage, children) to observe what the
// materializer does.

type parentSetter interface {
	setParent(parent layout.Widget)
}

type fakeWidget struct {
	visible bool
	classes map[string]bool
	parent  layout.Widget
}

func newFakeWidget() *fakeWidget {
	return &fakeWidget{visible: true, classes: map[string]bool{}}
}

func (w *fakeWidget) Show()                    { w.visible = true }
func (w *fakeWidget) Hide()                    { w.visible = false }
func (w *fakeWidget) SetVisible(visible bool)  { w.visible = visible }
func (w *fakeWidget) IsVisible() bool          { return w.visible }
func (w *fakeWidget) AddCssClass(c string)     { w.classes[c] = true }
func (w *fakeWidget) RemoveCssClass(c string)  { delete(w.classes, c) }
func (w *fakeWidget) HasCssClass(c string) bool { return w.classes[c] }
func (w *fakeWidget) Unparent()                { w.parent = nil }
func (w *fakeWidget) GetParent() layout.Widget { return w.parent }
func (w *fakeWidget) setParent(p layout.Widget) { w.parent = p }

type fakeBox struct {
	*fakeWidget
	children    []layout.Widget
	orientation layout.Orientation
	spacing     int
}

func (b *fakeBox) Append(child layout.Widget) {
	b.children = append(b.children, child)
	if ps, ok := child.(parentSetter); ok {
		ps.setParent(b)
	}
}

func (b *fakeBox) Prepend(child layout.Widget) {
	b.children = append([]layout.Widget{child}, b.children...)
	if ps, ok := child.(parentSetter); ok {
		ps.setParent(b)
	}
}

func (b *fakeBox) Remove(child layout.Widget) {
	for i, c := range b.children {
		if c == child {
			b.children = append(b.children[:i], b.children[i+1:]...)
			break
		}
	}
	if ps, ok := child.(parentSetter); ok {
		ps.setParent(nil)
	}
}

func (b *fakeBox) SetOrientation(o layout.Orientation) { b.orientation = o }
func (b *fakeBox) GetOrientation() layout.Orientation  { return b.orientation }
func (b *fakeBox) SetSpacing(spacing int)              { b.spacing = spacing }

type fakeSplit struct {
	*fakeWidget
	children    []layout.Widget
	orientation layout.Orientation
	proportions []float64
	callbacks   []func([]float64)
}

func (s *fakeSplit) InsertChild(child layout.Widget, index int) {
	if index < 0 || index > len(s.children) {
		index = len(s.children)
	}
	s.children = append(s.children[:index], append([]layout.Widget{child}, s.children[index:]...)...)
	if ps, ok := child.(parentSetter); ok {
		ps.setParent(s)
	}
}

func (s *fakeSplit) RemoveChild(child layout.Widget) {
	for i, c := range s.children {
		if c == child {
			s.children = append(s.children[:i], s.children[i+1:]...)
			break
		}
	}
	if ps, ok := child.(parentSetter); ok {
		ps.setParent(nil)
	}
}

func (s *fakeSplit) ChildCount() int                 { return len(s.children) }
func (s *fakeSplit) SetProportions(p []float64)      { s.proportions = p }
func (s *fakeSplit) GetProportions() []float64       { return s.proportions }

func (s *fakeSplit) ConnectProportionsChanged(cb func([]float64)) uint32 {
	s.callbacks = append(s.callbacks, cb)
	return uint32(len(s.callbacks))
}

// dragTo simulates a user divider drag.
func (s *fakeSplit) dragTo(proportions []float64) {
	s.proportions = proportions
	for _, cb := range s.callbacks {
		cb(proportions)
	}
}

type fakePager struct {
	*fakeWidget
	pages     []layout.Widget
	visible   int
	offset    float64
	pageWidth float64
}

func (p *fakePager) InsertPage(child layout.Widget, index int) {
	if index < 0 || index > len(p.pages) {
		index = len(p.pages)
	}
	p.pages = append(p.pages[:index], append([]layout.Widget{child}, p.pages[index:]...)...)
	if ps, ok := child.(parentSetter); ok {
		ps.setParent(p)
	}
}

func (p *fakePager) RemovePage(index int) {
	if index < 0 || index >= len(p.pages) {
		return
	}
	if ps, ok := p.pages[index].(parentSetter); ok {
		ps.setParent(nil)
	}
	p.pages = append(p.pages[:index], p.pages[index+1:]...)
}

func (p *fakePager) PageCount() int                { return len(p.pages) }
func (p *fakePager) SetVisiblePage(index int)      { p.visible = index }
func (p *fakePager) GetVisiblePage() int           { return p.visible }
func (p *fakePager) SetScrollOffset(offset float64) { p.offset = offset }
func (p *fakePager) GetScrollOffset() float64      { return p.offset }
func (p *fakePager) GetPageWidth() float64         { return p.pageWidth }

type fakeLabel struct {
	*fakeWidget
	text string
}

func (l *fakeLabel) SetText(text string) { l.text = text }
func (l *fakeLabel) GetText() string     { return l.text }

type fakeButton struct {
	*fakeWidget
	child     layout.Widget
	callbacks []func()
}

func (b *fakeButton) SetChild(child layout.Widget) {
	b.child = child
	if ps, ok := child.(parentSetter); ok {
		ps.setParent(b)
	}
}

func (b *fakeButton) GetChild() layout.Widget { return b.child }

func (b *fakeButton) ConnectClicked(cb func()) uint32 {
	b.callbacks = append(b.callbacks, cb)
	return uint32(len(b.callbacks))
}

func (b *fakeButton) click() {
	for _, cb := range b.callbacks {
		cb()
	}
}

type fakeImage struct {
	*fakeWidget
	iconName  string
	pixelSize int
}

func (i *fakeImage) SetFromIconName(name string) { i.iconName = name }
func (i *fakeImage) SetPixelSize(size int)       { i.pixelSize = size }
func (i *fakeImage) Clear()                      { i.iconName = "" }

type fakeFactory struct {
	splits  []*fakeSplit
	boxes   []*fakeBox
	pagers  []*fakePager
	buttons []*fakeButton
}

func newFakeFactory() *fakeFactory { return &fakeFactory{} }

func (f *fakeFactory) NewSplit(orientation layout.Orientation) layout.SplitWidget {
	s := &fakeSplit{fakeWidget: newFakeWidget(), orientation: orientation}
	f.splits = append(f.splits, s)
	return s
}

func (f *fakeFactory) NewBox(orientation layout.Orientation, spacing int) layout.BoxWidget {
	b := &fakeBox{fakeWidget: newFakeWidget(), orientation: orientation, spacing: spacing}
	f.boxes = append(f.boxes, b)
	return b
}

func (f *fakeFactory) NewPager() layout.PagerWidget {
	p := &fakePager{fakeWidget: newFakeWidget(), pageWidth: 1000}
	f.pagers = append(f.pagers, p)
	return p
}

func (f *fakeFactory) NewLabel(text string) layout.LabelWidget {
	return &fakeLabel{fakeWidget: newFakeWidget(), text: text}
}

func (f *fakeFactory) NewButton() layout.ButtonWidget {
	b := &fakeButton{fakeWidget: newFakeWidget()}
	f.buttons = append(f.buttons, b)
	return b
}

func (f *fakeFactory) NewImage() layout.ImageWidget {
	return &fakeImage{fakeWidget: newFakeWidget()}
}

// fakePanelFactory counts panel creations per tab.
type fakePanelFactory struct {
	created map[entity.TabID]int
	resolve func(tab *entity.Tab) layout.Widget
}

func newFakePanelFactory() *fakePanelFactory {
	f := &fakePanelFactory{created: map[entity.TabID]int{}}
	f.resolve = func(*entity.Tab) layout.Widget { return newFakeWidget() }
	return f
}

func (f *fakePanelFactory) CreatePanelView(tab *entity.Tab) layout.Widget {
	f.created[tab.ID]++
	return f.resolve(tab)
}
