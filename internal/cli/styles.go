package cli

// ABOUTME: Status coloring for report lines. Plain text when --no-color is
// ABOUTME: set or stdout is not a terminal.

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/kstenerud/tmpsweep/internal/sweep"
	"github.com/spf13/cobra"
)

type styles struct {
	removable lipgloss.Style
	keep      lipgloss.Style
	failed    lipgloss.Style
	dim       lipgloss.Style
}

func newStyles(cmd *cobra.Command) styles {
	renderer := lipgloss.NewRenderer(cmd.OutOrStdout())
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		plain := renderer.NewStyle()
		return styles{removable: plain, keep: plain, failed: plain, dim: plain}
	}
	return styles{
		removable: renderer.NewStyle().Foreground(lipgloss.Color("46")),
		keep:      renderer.NewStyle().Foreground(lipgloss.Color("226")),
		failed:    renderer.NewStyle().Foreground(lipgloss.Color("196")),
		dim:       renderer.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// status renders a candidate's report line in its status color.
func (s styles) status(c sweep.Candidate) string {
	var style lipgloss.Style
	switch c.Status {
	case sweep.StatusEmpty, sweep.StatusRemovable:
		style = s.removable
	case sweep.StatusBlocked:
		style = s.keep
	case sweep.StatusError:
		style = s.failed
	default:
		style = s.dim
	}
	return style.Render(c.Line())
}

// removal renders a candidate's deletion outcome.
func (s styles) removal(c sweep.Candidate) string {
	if c.Removal != nil && len(c.Removal.Errors) > 0 {
		return s.failed.Render(c.RemovalLine())
	}
	return s.removable.Render(c.RemovalLine())
}
