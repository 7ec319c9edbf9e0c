// Package style holds the colors and icons shared by the log handler and the
// frame report.
package style

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Mist   = lipgloss.Color("#98A2B3")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓" // selected
	Cross   = "✗" // error
	Warning = "!"
	Tilde   = "~" // debug
	Dot     = "●" // requested
	Circle  = "○" // empty
)
