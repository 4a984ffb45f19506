package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
)

var (
	citationStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8C1D40"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	codeStyles    = map[domain.CodeClass]lipgloss.Style{
		domain.CodeClassHeavy:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		domain.CodeClassLight:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		domain.CodeClassUnknown: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printer styles output only when writing to a terminal.
type printer struct {
	cmd    *cobra.Command
	styled bool
}

func newPrinter(cmd *cobra.Command) *printer {
	return &printer{cmd: cmd, styled: isTerminal(cmd.OutOrStdout())}
}

func (p *printer) render(style lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}
	return style.Render(s)
}

func (p *printer) citation(s string) string { return p.render(citationStyle, s) }

func (p *printer) muted(s string) string { return p.render(mutedStyle, s) }

// code prints one mod code as "CODE  title  (class)".
func (p *printer) code(c domain.ModCode) {
	title := c.Title
	if title == "" {
		title = c.Class.Description()
	}
	p.cmd.Printf("  %s  %s  %s\n",
		p.render(codeStyles[c.Class], fmt.Sprintf("%-6s", c.Code)),
		title,
		p.muted("("+c.Class.String()+")"))
}

// card prints one numbered result card.
func (p *printer) card(n int, c domain.ResultCard) {
	p.cmd.Printf("  [%d] %s %s  %s\n", n, p.citation(c.LinkText), c.Category, p.muted(fmt.Sprintf("p.%d", c.Page)))
	if c.Clause != "" {
		p.cmd.Printf("      %s\n", c.Clause)
	}
	if c.LinkHref != "" {
		p.cmd.Printf("      %s\n", p.muted(c.LinkHref))
	}
	p.cmd.Println()
}

// printJSON writes v as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
