// Package style centralizes terminal styling for cursor-rules output.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"

	"github.com/tekdi/tekdi-cursor-rules/pkg/types"
)

// Lipgloss styles for headers and secondary text.
var (
	TitleStyle = lipgloss.NewStyle().Bold(true)
	MutedStyle = lipgloss.NewStyle().Faint(true)
)

// OutcomeStyle returns the pterm style for an install outcome label.
func OutcomeStyle(outcome types.FileOutcome) *pterm.Style {
	switch outcome {
	case types.OutcomeInstalled:
		return pterm.NewStyle(pterm.FgGreen)
	case types.OutcomeUpdated:
		return pterm.NewStyle(pterm.FgYellow)
	case types.OutcomeUnchanged:
		return pterm.NewStyle(pterm.FgGray)
	case types.OutcomeSkipped:
		return pterm.NewStyle(pterm.FgCyan)
	default:
		return pterm.NewStyle(pterm.FgDefault)
	}
}

// StateStyle returns the pterm style for a status state label.
func StateStyle(state types.FileState) *pterm.Style {
	switch state {
	case types.StateUpToDate:
		return pterm.NewStyle(pterm.FgGreen)
	case types.StateModified:
		return pterm.NewStyle(pterm.FgYellow)
	case types.StateMissing:
		return pterm.NewStyle(pterm.FgRed)
	case types.StateUntracked:
		return pterm.NewStyle(pterm.FgCyan)
	default:
		return pterm.NewStyle(pterm.FgDefault)
	}
}

// GlamourStyle picks the markdown rendering style matching the
// terminal background.
func GlamourStyle() string {
	if termenv.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
