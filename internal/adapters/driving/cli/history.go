package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of searches to show")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output history as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errNotConfigured("history")
	}

	entries, err := historyService.Recent(commandContext(cmd), historyLimit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}
	if historyJSON {
		return printJSON(cmd, entries)
	}
	if len(entries) == 0 {
		cmd.Println("No searches yet.")
		return nil
	}

	p := newPrinter(cmd)
	for _, e := range entries {
		cmd.Printf("%s  %-10s %3d  %s\n",
			p.muted(e.SearchedAt.Local().Format("2006-01-02 15:04")),
			e.Status, e.ResultCount, e.Query)
	}
	return nil
}
