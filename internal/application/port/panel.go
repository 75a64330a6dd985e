// Package port defines the interfaces the application core expects its host
// to supply. Hosts wire concrete toolkit, persistence, and clock adapters.
package port

import "github.com/bnema/stagedock/internal/domain/entity"

// Panel is a host-supplied content unit displayed inside a tab. The layout
// core never owns or serializes panels; it resolves them by tab ID when a
// view needs content.
type Panel interface {
	// PanelID returns the identity this panel is registered under.
	// It matches the tab ID that refers to the panel.
	PanelID() entity.TabID
}

// PanelProvider resolves a tab ID to its live panel, or nil when no panel
// exists for that ID. A nil result is not an error: the tab renders as a
// placeholder with its persisted title and icon.
type PanelProvider func(id entity.TabID) Panel
