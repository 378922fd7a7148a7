// Package styles centralizes terminal styling for the casvc CLI, built
// on lipgloss the way the teacher's internal/ui/styles does. Trimmed to
// the concerns casvc actually has: staged-change status, object/ref
// display, diff rendering and plain status/error messages. There are no
// branches, remotes or tags here — a Ref is the only naming concept.
package styles

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolCommit  = "●"
)

// NoColor reports whether color output should be suppressed.
func NoColor() bool {
	return os.Getenv("NO_COLOR") != "" || os.Getenv("CASVC_NO_COLOR") != ""
}

var (
	Bold = lipgloss.NewStyle().Bold(true)
	Dim  = lipgloss.NewStyle().Foreground(Muted)
)

var (
	Added     = lipgloss.NewStyle().Foreground(ColorAdded)
	Deleted   = lipgloss.NewStyle().Foreground(ColorDeleted)
	Modified  = lipgloss.NewStyle().Foreground(ColorModified)
	Untracked = lipgloss.NewStyle().Foreground(ColorUntracked)

	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)

	HashStyle    = lipgloss.NewStyle().Foreground(ColorHash)
	RefStyle     = lipgloss.NewStyle().Foreground(ColorRef).Bold(true)
	AuthorStyle  = lipgloss.NewStyle().Foreground(Success)
	DateStyle    = lipgloss.NewStyle().Foreground(Muted)
	MessageStyle = lipgloss.NewStyle()

	DiffAddLine     = lipgloss.NewStyle().Foreground(ColorDiffAdd)
	DiffRemoveLine  = lipgloss.NewStyle().Foreground(ColorDiffRemove)
	DiffContextLine = lipgloss.NewStyle().Foreground(ColorDiffContext)
	DiffHunkHeader  = lipgloss.NewStyle().Foreground(ColorDiffHunk)

	SelectedStyle = lipgloss.NewStyle().
			Background(BgHighlight).
			Foreground(TextPrimary)

	HelpKey   = lipgloss.NewStyle().Foreground(Accent)
	HelpValue = lipgloss.NewStyle().Foreground(Muted)
)

func render(s lipgloss.Style, text string) string {
	if NoColor() {
		return text
	}
	return s.Render(text)
}

// Hash formats an object or commit hash, optionally shortened to its
// last 7 characters the way ShortID displays trace IDs.
func Hash(hash string, short bool) string {
	hash = strings.ToLower(hash)
	if short && len(hash) > 7 {
		hash = hash[len(hash)-7:]
	}
	return render(HashStyle, hash)
}

func Ref(name string) string {
	return render(RefStyle, name)
}

func Author(name string) string {
	return render(AuthorStyle, name)
}

func Date(date string) string {
	return render(DateStyle, date)
}

// StatusPrefix returns a colored one-letter prefix for a staged change.
func StatusPrefix(status string) string {
	switch status {
	case "A", "add":
		return render(Added, "A")
	case "M", "update":
		return render(Modified, "M")
	case "D", "remove":
		return render(Deleted, "D")
	default:
		return status
	}
}

func SuccessMsg(msg string) string {
	symbol := SymbolSuccess
	if NoColor() {
		symbol = "+"
	}
	return fmt.Sprintf("%s %s", render(SuccessStyle, symbol), msg)
}

func ErrorMsg(title string) string {
	return render(ErrorStyle, "Error: "+title)
}

func WarningMsg(msg string) string {
	symbol := SymbolWarning
	if NoColor() {
		symbol = "!"
	}
	return fmt.Sprintf("%s %s", render(WarningStyle, symbol), msg)
}

func MutedMsg(msg string) string {
	return render(MutedStyle, msg)
}

func SectionHeader(title string) string {
	return render(Bold, title)
}

func HelpLine(key, description string) string {
	return fmt.Sprintf("  %s %s", render(HelpKey, key), render(MutedStyle, description))
}

// Indent returns text indented by n spaces, leaving blank lines blank.
func Indent(text string, n int) string {
	prefix := strings.Repeat(" ", n)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
