package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"hgsc.dev/hgsc/internal/resources"
)

var (
	modifiedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	addedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	deletedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	untrackedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	conflictStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	headerStyle    = lipgloss.NewStyle().Bold(true)
)

// ColorEnabled reports whether stdout is a terminal that should get colors
func ColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// GroupHeader renders a group label for status output
func GroupHeader(label string, colored bool) string {
	if !colored {
		return label
	}
	return headerStyle.Render(label)
}

// StatusLetter returns the single-letter marker for a status
func StatusLetter(s resources.Status) string {
	switch s {
	case resources.StatusModified:
		return "M"
	case resources.StatusAdded:
		return "A"
	case resources.StatusDeleted:
		return "R"
	case resources.StatusUntracked:
		return "?"
	case resources.StatusIgnored:
		return "I"
	case resources.StatusMissing:
		return "!"
	case resources.StatusRenamed:
		return "A"
	case resources.StatusClean:
		return "C"
	}
	return " "
}

// ColorizeStatus renders a status line fragment in the status color
func ColorizeStatus(r resources.Resource, text string, colored bool) string {
	if !colored {
		return text
	}
	if r.MergeStatus() == resources.MergeStatusUnresolved {
		return conflictStyle.Render(text)
	}
	switch r.Status() {
	case resources.StatusModified, resources.StatusRenamed:
		return modifiedStyle.Render(text)
	case resources.StatusAdded:
		return addedStyle.Render(text)
	case resources.StatusDeleted, resources.StatusMissing:
		return deletedStyle.Render(text)
	case resources.StatusUntracked, resources.StatusIgnored:
		return untrackedStyle.Render(text)
	}
	return text
}
