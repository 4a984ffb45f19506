package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/dart-cli/internal/adapters/driven/catalog"
	"github.com/custodia-labs/dart-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/dart-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/dart-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/dart-cli/internal/adapters/driven/viewer"
	"github.com/custodia-labs/dart-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/dart-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dart-cli/internal/core/services"
	"github.com/custodia-labs/dart-cli/internal/logger"
)

// bootstrap wires the driven adapters into the core services.
// A catalog that fails to load leaves the store unloaded; searches then
// report "Mapping not loaded." instead of failing the command.
func bootstrap(ctx context.Context, opts cli.Options) (*cli.Services, func(), error) {
	logger.Section("Bootstrap")

	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("reading settings: %w", err)
	}

	dataDir, err := resolveDataDir(opts.DataDir, settings.Data.Dir)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Config: %s", configStore.Path())
	logger.Debug("Data dir: %s", dataDir)

	catalogs := memory.NewCatalogStore()
	loader := catalog.NewLoader(dataDir)
	if cat, err := loader.Load(ctx); err != nil {
		logger.Warn("Catalog not loaded from %s: %v", dataDir, err)
	} else {
		catalogs.Publish(cat)
	}

	var (
		reports    driven.ReportStore
		history    driven.HistoryStore
		closeStore = func() {}
	)
	if store, err := sqlite.NewStore(dataDir); err != nil {
		// Report and history still work for the lifetime of the process.
		logger.Warn("Session store unavailable, keeping the report in memory: %v", err)
		reports, history = memory.NewReportStore(), memory.NewHistoryStore()
	} else {
		reports, history = store.ReportStore(), store.HistoryStore()
		closeStore = func() {
			if err := store.Close(); err != nil {
				logger.Warn("closing session store: %v", err)
			}
		}
	}

	links := viewer.NewLinkBuilder(settings.Viewer)
	search := services.NewSearchService(catalogs, links, settings.Search)
	search.SetHistoryStore(history)

	svc := &cli.Services{
		Search:       search,
		Codes:        services.NewCodeService(catalogs),
		Report:       services.NewReportService(reports),
		History:      services.NewHistoryService(history),
		Settings:     settingsService,
		ResultAction: services.NewResultActionService(links),
		Server:       settings.Server,
	}
	if settings.Data.Watch {
		svc.Watch = func(ctx context.Context) error {
			w, err := catalog.NewWatcher(dataDir, loader, catalogs)
			if err != nil {
				return err
			}
			logger.Info("Watching %s for catalog changes", dataDir)
			return w.Run(ctx)
		}
	}

	return svc, closeStore, nil
}

// resolveDataDir picks the flag, then the setting, then ~/.dart/data.
func resolveDataDir(flag, setting string) (string, error) {
	switch {
	case flag != "":
		return flag, nil
	case setting != "":
		return setting, nil
	}
	dir, err := catalog.DefaultDataDir()
	if err != nil {
		return "", errors.Join(errors.New("no data directory configured"), err)
	}
	return dir, nil
}
