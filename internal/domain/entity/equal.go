package entity

import "bytes"

// NodesEqual reports deep structural equality of two trees: same variant,
// identity, ordering, proportions, selections, and tab contents including
// cargo bytes.
func NodesEqual(a, b *LayoutNode) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.ID != b.ID || a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindSplit:
		if a.Axis != b.Axis || len(a.Children) != len(b.Children) || len(a.Proportions) != len(b.Proportions) {
			return false
		}
		for i := range a.Proportions {
			if diff := a.Proportions[i] - b.Proportions[i]; diff > ProportionEpsilon || diff < -ProportionEpsilon {
				return false
			}
		}
		for i := range a.Children {
			if !NodesEqual(a.Children[i], b.Children[i]) {
				return false
			}
		}
	case KindTabGroup:
		if a.ActiveTabIndex != b.ActiveTabIndex || a.DisplayMode != b.DisplayMode || len(a.Tabs) != len(b.Tabs) {
			return false
		}
		for i := range a.Tabs {
			if !TabsEqual(a.Tabs[i], b.Tabs[i]) {
				return false
			}
		}
	case KindStageHost:
		if a.ActiveStageIndex != b.ActiveStageIndex || a.DisplayMode != b.DisplayMode || len(a.Stages) != len(b.Stages) {
			return false
		}
		for i := range a.Stages {
			sa, sb := a.Stages[i], b.Stages[i]
			if sa.ID != sb.ID || sa.Title != sb.Title || sa.IconName != sb.IconName {
				return false
			}
			if !NodesEqual(sa.Layout, sb.Layout) {
				return false
			}
		}
	}
	return true
}

// TabsEqual reports equality of two tabs including cargo bytes.
func TabsEqual(a, b *Tab) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID &&
		a.Title == b.Title &&
		a.IconName == b.IconName &&
		bytes.Equal(a.Cargo, b.Cargo)
}

// LayoutsEqual reports deep equality of two multi-window layouts.
func LayoutsEqual(a, b *Layout) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Windows) != len(b.Windows) {
		return false
	}
	for i := range a.Windows {
		wa, wb := a.Windows[i], b.Windows[i]
		if wa.ID != wb.ID || wa.Frame != wb.Frame || wa.IsFullScreen != wb.IsFullScreen {
			return false
		}
		if !NodesEqual(wa.Root, wb.Root) {
			return false
		}
	}
	return true
}
