package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/clipseek/clipseek-cli/internal/core/domain"
	"github.com/clipseek/clipseek-cli/internal/logger"
)

var (
	catalogAddID    string
	catalogAddTitle string
	importWatch     bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the video catalog",
	Long: `Manages the local list of video URLs available for indexing.

The catalog only holds references; the videos themselves stay wherever
their URLs point. Run 'clipseek ingest' after changing the catalog to
update the retrieval index.`,
}

var catalogAddCmd = &cobra.Command{
	Use:   "add [url]",
	Short: "Add a video URL to the catalog",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogAdd,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog entries",
	RunE:  runCatalogList,
}

var catalogRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove an entry from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogRemove,
}

var catalogImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import video URLs from a file",
	Long: `Imports catalog entries from a text file, one URL per line.
A title may follow the URL, separated by whitespace. Lines starting
with # are ignored. URLs already in the catalog are skipped.

With --watch, the file is re-imported whenever it changes.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogImport,
}

func init() {
	catalogAddCmd.Flags().StringVar(&catalogAddID, "id", "", "entry ID (generated when empty)")
	catalogAddCmd.Flags().StringVar(&catalogAddTitle, "title", "", "display title")
	catalogImportCmd.Flags().BoolVarP(&importWatch, "watch", "w", false, "keep watching the file for changes")

	catalogCmd.AddCommand(catalogAddCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogRemoveCmd)
	catalogCmd.AddCommand(catalogImportCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogAdd(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	entry := domain.CatalogEntry{
		ID:    catalogAddID,
		URL:   args[0],
		Title: catalogAddTitle,
	}

	added, err := catalogService.Add(cmd.Context(), entry)
	if err != nil {
		return fmt.Errorf("failed to add entry: %w", err)
	}

	cmd.Printf("Added %s (%s)\n", added.DisplayName(), added.ID)
	return nil
}

func runCatalogList(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	entries, err := catalogService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list catalog: %w", err)
	}

	if len(entries) == 0 {
		cmd.Println("Catalog is empty. Add videos with 'clipseek catalog add <url>'.")
		return nil
	}

	cmd.Printf("Catalog (%d entries):\n\n", len(entries))
	for _, entry := range entries {
		cmd.Printf("  %s  %s\n", entry.ID, entry.DisplayName())
		cmd.Printf("      %s\n", entry.URL)
	}

	return nil
}

func runCatalogRemove(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	if err := catalogService.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove entry: %w", err)
	}

	cmd.Printf("Removed %s\n", args[0])
	return nil
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	path := args[0]
	if err := importOnce(cmd, path); err != nil {
		return err
	}

	if !importWatch {
		return nil
	}

	return watchCatalogFile(cmd.Context(), cmd, path)
}

func importOnce(cmd *cobra.Command, path string) error {
	added, err := catalogService.ImportFile(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Imported %d new entries from %s\n", len(added), path)
	return nil
}

// watchCatalogFile re-imports the file on every write until the
// context is cancelled. The parent directory is watched because many
// editors replace the file on save.
func watchCatalogFile(ctx context.Context, cmd *cobra.Command, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	cmd.Printf("Watching %s for changes (Ctrl+C to stop)...\n", path)

	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || name != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := importOnce(cmd, path); err != nil {
				logger.Warn("Re-import failed: %v", err)
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", watchErr)
		}
	}
}
