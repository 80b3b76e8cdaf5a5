package shell

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles are bound to the shell's writer so piped output stays plain.
type styles struct {
	banner  lipgloss.Style
	prompt  lipgloss.Style
	speaker lipgloss.Style
	failure lipgloss.Style
	goodbye lipgloss.Style
}

func newStyles(out io.Writer) styles {
	renderer := lipgloss.NewRenderer(out)

	return styles{
		banner: renderer.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#04B575")),
		prompt: renderer.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6")),
		speaker: renderer.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")),
		failure: renderer.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true),
		goodbye: renderer.NewStyle().
			Foreground(lipgloss.Color("#10B981")),
	}
}
