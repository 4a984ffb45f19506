package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
)

var (
	reportResult int
	reportNote   string
	reportJSON   bool
	reportCopy   bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Manage the inspection report",
	Long: `The inspection report collects citations across searches. It is kept in
the session database until cleared.`,
	RunE: runReportShow,
}

var reportAddCmd = &cobra.Command{
	Use:   "add [query]",
	Short: "Search and add one result to the report",
	Long: `Runs the search and adds result N (default 1) to the report.

Examples:
  dart report add bald tyres
  dart report add seating capacity --result 2 --note "rear bench removed"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReportAdd,
}

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List report items with their IDs",
	RunE:  runReportList,
}

var reportShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the report as plain text",
	RunE:  runReportShow,
}

var reportRemoveCmd = &cobra.Command{
	Use:   "remove ID",
	Short: "Remove one item from the report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportRemove,
}

var reportClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every item from the report",
	RunE:  runReportClear,
}

func init() {
	reportAddCmd.Flags().IntVarP(&reportResult, "result", "r", 1, "which result to add (1-based)")
	reportAddCmd.Flags().StringVar(&reportNote, "note", "", "inspector note for the item")
	reportListCmd.Flags().BoolVar(&reportJSON, "json", false, "output items as JSON")
	reportShowCmd.Flags().BoolVar(&reportCopy, "copy", false, "also copy the report to the clipboard")

	reportCmd.AddCommand(reportAddCmd)
	reportCmd.AddCommand(reportListCmd)
	reportCmd.AddCommand(reportShowCmd)
	reportCmd.AddCommand(reportRemoveCmd)
	reportCmd.AddCommand(reportClearCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReportAdd(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errNotConfigured("search")
	}
	if reportService == nil {
		return errNotConfigured("report")
	}

	ctx := commandContext(cmd)
	outcome, err := searchService.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(outcome.Cards) == 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, outcome.Message())
	}
	card, err := pickCard(outcome, reportResult)
	if err != nil {
		return err
	}

	item, err := reportService.Add(ctx, *card, reportNote)
	if errors.Is(err, domain.ErrAlreadyExists) {
		cmd.Printf("%s is already in the report.\n", card.LinkText)
		return nil
	}
	if err != nil {
		return fmt.Errorf("adding to report: %w", err)
	}

	cmd.Printf("Added %s\n", item.Line())
	return nil
}

func runReportList(cmd *cobra.Command, _ []string) error {
	if reportService == nil {
		return errNotConfigured("report")
	}

	items, err := reportService.List(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("listing report: %w", err)
	}
	if reportJSON {
		return printJSON(cmd, items)
	}
	if len(items) == 0 {
		cmd.Println("The report is empty.")
		return nil
	}

	p := newPrinter(cmd)
	for i := range items {
		cmd.Printf("%s  %s\n", p.muted(items[i].ID), items[i].Line())
	}
	return nil
}

func runReportShow(cmd *cobra.Command, _ []string) error {
	if reportService == nil {
		return errNotConfigured("report")
	}

	ctx := commandContext(cmd)
	text, err := reportService.Render(ctx)
	if err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	if text == "" {
		cmd.Println("The report is empty.")
		return nil
	}
	cmd.Print(text)
	if !strings.HasSuffix(text, "\n") {
		cmd.Println()
	}

	if reportCopy {
		if actionService == nil {
			return errNotConfigured("result action")
		}
		if err := actionService.CopyText(ctx, text); err != nil {
			return fmt.Errorf("copying report: %w", err)
		}
		cmd.Println("Copied the report to the clipboard.")
	}
	return nil
}

func runReportRemove(cmd *cobra.Command, args []string) error {
	if reportService == nil {
		return errNotConfigured("report")
	}
	if err := reportService.Remove(commandContext(cmd), args[0]); err != nil {
		return fmt.Errorf("removing %s: %w", args[0], err)
	}
	cmd.Printf("Removed %s\n", args[0])
	return nil
}

func runReportClear(cmd *cobra.Command, _ []string) error {
	if reportService == nil {
		return errNotConfigured("report")
	}
	if err := reportService.Clear(commandContext(cmd)); err != nil {
		return fmt.Errorf("clearing report: %w", err)
	}
	cmd.Println("Report cleared.")
	return nil
}
