package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var codesJSON bool

var codesCmd = &cobra.Command{
	Use:   "codes",
	Short: "Look up or browse modification codes",
}

var codesLookupCmd = &cobra.Command{
	Use:   "lookup CODE[,CODE...]",
	Short: "Look up mod codes in the light and heavy tables",
	Long: `Looks up each code in the heavy and light tables. Heavy titles win when a
code appears in both. Codes in neither table are reported as unknown.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCodesLookup,
}

var codesListCmd = &cobra.Command{
	Use:   "list [filter]",
	Short: "List every known mod code, optionally fuzzy filtered",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCodesList,
}

func init() {
	codesCmd.PersistentFlags().BoolVar(&codesJSON, "json", false, "output codes as JSON")
	codesCmd.AddCommand(codesLookupCmd)
	codesCmd.AddCommand(codesListCmd)
	rootCmd.AddCommand(codesCmd)
}

func runCodesLookup(cmd *cobra.Command, args []string) error {
	if codeService == nil {
		return errNotConfigured("code")
	}

	codes, err := codeService.Lookup(commandContext(cmd), strings.Join(args, ","))
	if err != nil {
		return fmt.Errorf("looking up codes: %w", err)
	}
	if codesJSON {
		return printJSON(cmd, codes)
	}

	p := newPrinter(cmd)
	for _, c := range codes {
		p.code(c)
	}
	return nil
}

func runCodesList(cmd *cobra.Command, args []string) error {
	if codeService == nil {
		return errNotConfigured("code")
	}

	filter := ""
	if len(args) == 1 {
		filter = args[0]
	}
	codes, err := codeService.List(commandContext(cmd), filter)
	if err != nil {
		return fmt.Errorf("listing codes: %w", err)
	}
	if codesJSON {
		return printJSON(cmd, codes)
	}
	if len(codes) == 0 {
		cmd.Println("No matching codes.")
		return nil
	}

	p := newPrinter(cmd)
	for _, c := range codes {
		p.code(c)
	}
	cmd.Printf("\n%d codes\n", len(codes))
	return nil
}
