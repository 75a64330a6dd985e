// Package styles provides reusable lipgloss-based TUI components.
package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconCheck   = "" // check
	IconX       = "" // x
	IconWarning = "" // warning
	IconInfo    = "" // info
	IconTrash   = "" // trash

	IconCursor = "" // chevron-right

	IconLayout   = "" // window
	IconSplit    = "" // columns
	IconTab      = "" // table
	IconStage    = "" // clone/stack
	IconTree     = "" // tree
	IconClock    = "" // clock
	IconDatabase = "" // database
	IconExpand   = "" // expand
	IconCollapse = "" // compress
)
