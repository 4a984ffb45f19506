package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
)

var (
	searchJSON bool
	searchCopy int
	searchOpen int
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the QLVIM for a defect or mod codes",
	Long: `Searches the curated mapping table for the clauses that best match a
symptom or topic, falling back to a full-text search of the manual pages.

A comma separated list of mod codes ("LS10, LA1") is looked up in the light
and heavy code tables instead.

Examples:
  dart search seating capacity
  dart search "LS10, LA1"
  dart search tyre --copy 1`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output the outcome as JSON")
	searchCmd.Flags().IntVar(&searchCopy, "copy", 0, "copy the citation of result N to the clipboard")
	searchCmd.Flags().IntVar(&searchOpen, "open", 0, "open the manual at the page of result N")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errNotConfigured("search")
	}

	ctx := commandContext(cmd)
	outcome, err := searchService.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return printJSON(cmd, outcome)
	}
	printOutcome(cmd, outcome)

	if searchCopy > 0 {
		card, err := pickCard(outcome, searchCopy)
		if err != nil {
			return err
		}
		if actionService == nil {
			return errNotConfigured("result action")
		}
		if err := actionService.CopyCitation(ctx, card); err != nil {
			return fmt.Errorf("copying citation: %w", err)
		}
		cmd.Printf("Copied %s to the clipboard.\n", card.LinkText)
	}
	if searchOpen > 0 {
		card, err := pickCard(outcome, searchOpen)
		if err != nil {
			return err
		}
		if actionService == nil {
			return errNotConfigured("result action")
		}
		if err := actionService.OpenManual(ctx, card); err != nil {
			return fmt.Errorf("opening manual: %w", err)
		}
	}
	return nil
}

// printOutcome renders each search status the way the front ends do.
func printOutcome(cmd *cobra.Command, outcome domain.SearchOutcome) {
	p := newPrinter(cmd)

	switch outcome.Status {
	case domain.StatusCodes:
		cmd.Println(outcome.Message() + ":")
		for _, c := range outcome.Codes {
			p.code(c)
		}
	case domain.StatusMatched, domain.StatusFallback:
		cmd.Println(outcome.Message() + ":")
		cmd.Println()
		for i, c := range outcome.Cards {
			p.card(i+1, c)
		}
	case domain.StatusEmptyQuery, domain.StatusNotLoaded, domain.StatusNoMatch:
		cmd.Println(outcome.Message())
	}
}

// pickCard returns the 1-based result n.
func pickCard(outcome domain.SearchOutcome, n int) (*domain.ResultCard, error) {
	if n < 1 || n > len(outcome.Cards) {
		return nil, fmt.Errorf("%w: result %d of %d", domain.ErrInvalidInput, n, len(outcome.Cards))
	}
	return &outcome.Cards[n-1], nil
}
