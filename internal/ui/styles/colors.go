package styles

import "github.com/charmbracelet/lipgloss"

// Color palette, dark-mode oriented, semantic rather than literal.
var (
	Accent  = lipgloss.Color("#7C3AED") // violet-500 - highlights, interactive
	Success = lipgloss.Color("#10B981") // emerald-500 - success, additions
	Warning = lipgloss.Color("#F59E0B") // amber-500 - warnings, modified
	Error   = lipgloss.Color("#EF4444") // red-500 - errors, deletions
	Info    = lipgloss.Color("#3B82F6") // blue-500 - info, object hashes
	Muted   = lipgloss.Color("#6B7280") // gray-500 - secondary text

	TextPrimary = lipgloss.Color("#F9FAFB") // gray-50 - main text

	BgHighlight = lipgloss.Color("#1F2937") // gray-800 - selected items
)

// Semantic color aliases for clarity.
var (
	ColorAdded     = Success // staged additions
	ColorDeleted   = Error   // staged deletions
	ColorModified  = Warning // staged modifications
	ColorUntracked = Muted

	ColorHash = Info    // object and commit hashes
	ColorRef  = Success // ref names

	ColorDiffAdd     = Success
	ColorDiffRemove  = Error
	ColorDiffContext = Muted
	ColorDiffHunk    = Accent
)
