package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/custodia-labs/dart-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/dart-cli/internal/adapters/driven/viewer"
	"github.com/custodia-labs/dart-cli/internal/core/domain"
	"github.com/custodia-labs/dart-cli/internal/core/services"
)

// recordingActions implements driving.ResultActionService without touching
// the clipboard or a browser.
type recordingActions struct {
	copied []string
	opened []string
}

func (r *recordingActions) CopyCitation(_ context.Context, card *domain.ResultCard) error {
	r.copied = append(r.copied, domain.NewReportItem(*card, "").Line())
	return nil
}

func (r *recordingActions) CopyText(_ context.Context, text string) error {
	r.copied = append(r.copied, text)
	return nil
}

func (r *recordingActions) OpenManual(_ context.Context, card *domain.ResultCard) error {
	r.opened = append(r.opened, card.LinkHref)
	return nil
}

type testEnv struct {
	catalogs *memory.CatalogStore
	report   *services.ReportService
	actions  *recordingActions
}

func testCatalog() *domain.Catalog {
	return &domain.Catalog{
		Entries: []domain.StructuredEntry{
			domain.NewStructuredEntry("tread depth", "6.14", "Tyres must have adequate tread depth", "Tyres", 42),
			domain.NewStructuredEntry("cracked windscreen", "9.3", "Windscreen must be free of cracks", "Glass", 17),
			domain.NewStructuredEntry("tyre size", "6.12", "Tread depth and tyre size must suit the rim", "Tyres", 40),
		},
		Pages: []domain.ManualPage{
			{Page: 3, Title: "Seating", Text: "Seat belts must be fitted\nto every seating position\n"},
		},
		Codes: domain.ModCodeTables{
			Light: map[string]string{"LS10": "Body blocks", "LA1": "Engine substitution"},
			Heavy: map[string]string{"H1": "Heavy engine"},
		},
	}
}

// newTestServices wires real services over in-memory stores.
func newTestServices() (*testEnv, *Services) {
	catalogs := memory.NewCatalogStore()
	catalogs.Publish(testCatalog())
	links := viewer.NewLinkBuilder(domain.ViewerSettings{URL: "viewer", ManualURL: "QLVIM.pdf"})

	history := memory.NewHistoryStore()
	search := services.NewSearchService(catalogs, links, domain.DefaultAppSettings().Search)
	search.SetHistoryStore(history)

	env := &testEnv{
		catalogs: catalogs,
		report:   services.NewReportService(memory.NewReportStore()),
		actions:  &recordingActions{},
	}
	return env, &Services{
		Search:       search,
		Codes:        services.NewCodeService(catalogs),
		Report:       env.report,
		History:      services.NewHistoryService(history),
		Settings:     services.NewSettingsService(memory.NewConfigStore()),
		ResultAction: env.actions,
	}
}

// setupTestServices injects newTestServices and returns a cleanup that
// restores the package state.
func setupTestServices() (*testEnv, func()) {
	env, svc := newTestServices()
	SetServices(svc)
	return env, func() { SetServices(nil) }
}

// execute runs the root command with args and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags()
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags() {
	searchJSON, searchCopy, searchOpen = false, 0, 0
	reportResult, reportNote, reportJSON, reportCopy = 1, "", false, false
	codesJSON = false
	historyLimit, historyJSON = 20, false
	serveAddr = ""
	globalOpts = Options{}
}
