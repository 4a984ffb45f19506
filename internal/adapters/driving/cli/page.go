package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
)

var pageCmd = &cobra.Command{
	Use:   "page N",
	Short: "Print the extracted text of a manual page",
	Args:  cobra.ExactArgs(1),
	RunE:  runPage,
}

func init() {
	rootCmd.AddCommand(pageCmd)
}

func runPage(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errNotConfigured("search")
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return fmt.Errorf("%w: page must be a positive number, got %q", domain.ErrInvalidInput, args[0])
	}

	page, err := searchService.Page(commandContext(cmd), n)
	if err != nil {
		return fmt.Errorf("getting page %d: %w", n, err)
	}

	p := newPrinter(cmd)
	header := fmt.Sprintf("Page %d", page.Page)
	if t := page.DisplayTitle(); t != "" {
		header += "  " + t
	}
	cmd.Println(p.citation(header))
	cmd.Println()
	cmd.Println(page.Text)
	return nil
}
