// Package cli provides the cobra command tree for dart.
// Commands reach the core only through driving ports; cmd/dart wires the
// concrete services in through SetServices or a Bootstrap hook.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
	"github.com/custodia-labs/dart-cli/internal/core/ports/driving"
	"github.com/custodia-labs/dart-cli/internal/logger"
)

// version is overridden at build time with -ldflags.
var version = "dev"

// Services holds the driving ports the commands use.
type Services struct {
	Search       driving.SearchService
	Codes        driving.CodeService
	Report       driving.ReportService
	History      driving.HistoryService
	Settings     driving.SettingsService
	ResultAction driving.ResultActionService

	// Server configures the HTTP API started by serve.
	Server domain.ServerSettings

	// Watch, when set, keeps the catalog fresh for long-running commands.
	Watch func(ctx context.Context) error
}

// Options carries the global flags to a Bootstrap hook.
type Options struct {
	ConfigDir string
	DataDir   string
	Verbose   bool
}

// Bootstrap builds the services for one invocation. The returned cleanup
// runs after the command finishes.
type Bootstrap func(ctx context.Context, opts Options) (*Services, func(), error)

var (
	searchService   driving.SearchService
	codeService     driving.CodeService
	reportService   driving.ReportService
	historyService  driving.HistoryService
	settingsService driving.SettingsService
	actionService   driving.ResultActionService
	serverSettings  = domain.DefaultAppSettings().Server
	watchCatalog    func(ctx context.Context) error

	bootstrap Bootstrap
	cleanup   func()

	globalOpts Options
)

// Annotation that marks commands which never touch the services.
const skipBootstrap = "skip-bootstrap"

var rootCmd = &cobra.Command{
	Use:   "dart",
	Short: "Find the QLVIM clause for a vehicle defect",
	Long: `dart searches the Queensland Light Vehicle Inspection Manual for the
clause that covers a defect or modification.

Type a symptom or topic ("seating capacity", "bald tyres") to get the best
matching citations from the curated mapping table, falling back to a
full-text search of the manual. Type mod codes ("LS10, LA1") to look them up.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
	PersistentPostRun: func(_ *cobra.Command, _ []string) { finish() },
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&globalOpts.ConfigDir, "config-dir", "", "configuration directory (default ~/.dart)")
	flags.StringVar(&globalOpts.DataDir, "data-dir", "", "catalog and session data directory (default ~/.dart/data)")
	flags.BoolVarP(&globalOpts.Verbose, "verbose", "v", false, "print debug logging to stderr")
}

// Execute runs the root command.
func Execute() error {
	defer finish()
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	defer finish()
	return rootCmd.ExecuteContext(ctx)
}

// finish releases whatever the bootstrap hook opened.
func finish() {
	if cleanup != nil {
		cleanup()
		cleanup = nil
	}
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap registers the hook that builds services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices injects the services directly, bypassing Bootstrap.
func SetServices(s *Services) {
	if s == nil {
		searchService, codeService, reportService = nil, nil, nil
		historyService, settingsService, actionService = nil, nil, nil
		serverSettings = domain.DefaultAppSettings().Server
		watchCatalog = nil
		return
	}
	searchService = s.Search
	codeService = s.Codes
	reportService = s.Report
	historyService = s.History
	settingsService = s.Settings
	actionService = s.ResultAction
	watchCatalog = s.Watch
	serverSettings = s.Server
	if serverSettings.Addr == "" {
		serverSettings = domain.DefaultAppSettings().Server
	}
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(globalOpts.Verbose)

	if cmd.Annotations[skipBootstrap] == "true" || bootstrap == nil || searchService != nil {
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger.Section("Bootstrap")
	services, done, err := bootstrap(ctx, globalOpts)
	if err != nil {
		return fmt.Errorf("starting dart: %w", err)
	}
	SetServices(services)
	cleanup = done
	return nil
}

// errNotConfigured builds the error returned when a command's service is absent.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}

// startWatcher runs the catalog watcher in the background until ctx ends.
func startWatcher(ctx context.Context) {
	if watchCatalog == nil {
		return
	}
	go func() {
		if err := watchCatalog(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("catalog watcher stopped: %v", err)
		}
	}()
}

// commandContext returns the command context or a background context.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
