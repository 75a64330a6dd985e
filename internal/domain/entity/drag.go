package entity

// TabDragPayload is the pasteboard payload written when a tab drag begins.
// It carries only identities and display hints; the cargo travels with the
// tree, not with the drag.
type TabDragPayload struct {
	TabID         TabID  `json:"tabId"`
	SourceGroupID NodeID `json:"sourceGroupId"`
	Title         string `json:"title"`
	IconName      string `json:"iconName"`
}
