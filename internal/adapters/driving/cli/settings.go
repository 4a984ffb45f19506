package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in config.toml.

Keys use dotted names, for example search.max_results, viewer.url or
search.weights.clause_override. Synonyms are set as a comma separated list:
  dart settings set synonyms.ute "utility,pickup"`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the settings keys that can be set",
	RunE:  runSettingsKeys,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	if path := settingsService.Path(); path != "" {
		cmd.Printf("File: %s\n", path)
	}
	cmd.Println()

	cmd.Println("[Data]")
	dir := settings.Data.Dir
	if dir == "" {
		dir = "(default)"
	}
	cmd.Printf("  Dir: %s\n", dir)
	cmd.Printf("  Watch: %t\n", settings.Data.Watch)
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Max results: %d\n", settings.Search.MaxResults)
	w := settings.Search.Weights
	defaults := settingsService.GetDefaults().Search.Weights
	if w != defaults {
		cmd.Println("  Weights: customised")
	} else {
		cmd.Println("  Weights: default")
	}
	cmd.Printf("  Clause override: %d\n", w.ClauseOverride)
	if len(settings.Search.Synonyms) > 0 {
		keys := make([]string, 0, len(settings.Search.Synonyms))
		for k := range settings.Search.Synonyms {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			cmd.Printf("  Synonyms %s: %s\n", k, strings.Join(settings.Search.Synonyms[k], ", "))
		}
	}
	cmd.Println()

	cmd.Println("[Viewer]")
	cmd.Printf("  URL: %s\n", settings.Viewer.URL)
	cmd.Printf("  Manual: %s\n", settings.Viewer.ManualURL)
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Addr: %s\n", settings.Server.Addr)
	cmd.Printf("  Rate limit: %g req/s (burst %d)\n", settings.Server.RateLimit, settings.Server.Burst)
	cmd.Printf("  Read header timeout: %s\n", settings.Server.ReadHeaderTimeout)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("setting %s: %w", args[0], err)
	}
	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}
	for _, k := range settingsService.Keys() {
		cmd.Println(k)
	}
	return nil
}
