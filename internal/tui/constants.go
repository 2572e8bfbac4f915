package tui

// UI Layout Constants
// These constants define spacing and dimensions for the TUI layout

const (
	// Panel borders
	BorderWidth = 2 // Width or height consumed by a rounded border

	// Top row: directory list beside the metadata panel
	MinTopPanelHeight    = 5  // Smallest height of the top row
	MinDirPanelWidth     = 30 // Smallest directory panel width on wide terminals
	DirPanelWidthPercent = 45 // Share of the width given to the directory panel
	NarrowLayoutWidth    = 70 // Below this width the top row splits 50/50
	StatusBarLines       = 1  // Lines reserved under the panels

	// Log panel
	LogPanelMinHeight        = 5  // Smallest unfocused log panel height
	LogPanelFocusedMinHeight = 6  // Smallest focused log panel height
	LogPanelChrome           = 3  // Border plus header line
	TargetSelectorMaxWidth   = 32 // Widest the log target selector gets
	LogLevelWidth            = 5  // Characters kept of the level name

	// Directory list
	DirListChrome = 3 // Title, blank line and position footer

	// Status bar
	StatusMessageMaxLen = 100 // Longer messages are cut with "..."
)
