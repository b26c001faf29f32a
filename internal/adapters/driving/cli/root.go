// Package cli implements the clipseek command line interface.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clipseek/clipseek-cli/internal/adapters/driven/config/file"
	"github.com/clipseek/clipseek-cli/internal/adapters/driven/media/blobsas"
	"github.com/clipseek/clipseek-cli/internal/adapters/driven/retrieval/azure"
	"github.com/clipseek/clipseek-cli/internal/adapters/driven/storage/memory"
	"github.com/clipseek/clipseek-cli/internal/adapters/driven/storage/sqlite"
	"github.com/clipseek/clipseek-cli/internal/core/ports/driven"
	"github.com/clipseek/clipseek-cli/internal/core/ports/driving"
	"github.com/clipseek/clipseek-cli/internal/core/services"
	"github.com/clipseek/clipseek-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services used by the commands. Wired by initServices, replaced by
// mocks in tests.
var (
	searchService   driving.SearchService
	catalogService  driving.CatalogService
	ingestService   driving.IngestService
	settingsService driving.SettingsService
)

// store is the shared SQLite store, kept for shutdown.
var store *sqlite.Store

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "clipseek",
	Short: "Search video moments by what is seen or said",
	Long: `Clipseek is a command line client for a cloud video retrieval service.

It keeps a local catalog of video URLs, submits them to the service for
indexing, and searches the index by visual content or spoken words.
All indexing, transcription and ranking happens in the service;
clipseek only forwards queries and renders the matches.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// initServices wires the real adapters into the core services.
// Storage falls back to in-memory stores when the durable backends
// cannot be opened, so search still works on read-only filesystems.
func initServices() error {
	var configStore driven.ConfigStore
	configStore, err := file.NewConfigStore("")
	if err != nil {
		logger.Warn("Config file unavailable (%v); settings will not persist", err)
		configStore = memory.NewConfigStore()
	}

	settingsSvc := services.NewSettingsService(configStore)
	settingsService = settingsSvc

	settings, err := settingsSvc.Get(context.Background())
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	var catalogStore driven.CatalogStore
	var ingestionStore driven.IngestionStore
	store, err = sqlite.NewStore("")
	if err != nil {
		logger.Warn("Catalog database unavailable (%v); catalog will not persist", err)
		catalogStore = memory.NewCatalogStore()
		ingestionStore = memory.NewIngestionStore()
	} else {
		catalogStore = store.CatalogStore()
		ingestionStore = store.IngestionStore()
	}

	retrieval := azure.NewClient(settings.Retrieval)
	signer := blobsas.NewSigner(settings.Storage)

	catalogService = services.NewCatalogService(catalogStore)
	ingestService = services.NewIngestService(catalogStore, ingestionStore, retrieval)
	searchService = services.NewSearchService(retrieval, signer, catalogStore)

	return nil
}

// Execute wires services and runs the root command.
func Execute() {
	if err := initServices(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if store != nil {
			store.Close() //nolint:errcheck
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
