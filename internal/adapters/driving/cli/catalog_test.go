package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0, 4)
	for _, sub := range catalogCmd.Commands() {
		names = append(names, sub.Name())
	}

	assert.Contains(t, names, "add")
	assert.Contains(t, names, "list")
	assert.Contains(t, names, "remove")
	assert.Contains(t, names, "import")
}

func TestCatalogAddCmd_AddsEntry(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	mock := catalogService.(*mockCatalogService)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"catalog", "add", "https://e/v1.mp4", "--title", "First"})
	defer func() {
		rootCmd.SetArgs(nil)
		catalogAddID = ""
		catalogAddTitle = ""
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Added")
	assert.Len(t, mock.entries, 1)
}

func TestCatalogAddCmd_RequiresURL(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"catalog", "add"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
}

func TestCatalogListCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"catalog", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Catalog is empty")
}

func TestCatalogListCmd_ShowsEntries(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	mock := catalogService.(*mockCatalogService)
	mock.entries["v1"] = mockEntry("v1", "https://e/v1.mp4")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"catalog", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "v1")
	assert.Contains(t, buf.String(), "https://e/v1.mp4")
}

func TestCatalogRemoveCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	mock := catalogService.(*mockCatalogService)
	mock.entries["v1"] = mockEntry("v1", "https://e/v1.mp4")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"catalog", "remove", "v1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Removed v1")
	assert.Empty(t, mock.entries)
}

func TestCatalogRemoveCmd_UnknownEntry(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"catalog", "remove", "missing"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to remove")
}

func TestCatalogImportCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := filepath.Join(t.TempDir(), "catalog.txt")
	require.NoError(t, os.WriteFile(path, []byte("https://e/v1.mp4\n"), 0600))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"catalog", "import", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Imported 1 new entries")
}

func TestCatalogImportCmd_HasWatchFlag(t *testing.T) {
	flag := catalogImportCmd.Flags().Lookup("watch")
	require.NotNil(t, flag, "watch flag should exist")
	assert.Equal(t, "w", flag.Shorthand)
}

func TestCatalogCmd_ServiceNotConfigured(t *testing.T) {
	oldService := catalogService
	catalogService = nil
	defer func() {
		catalogService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"catalog", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "catalog service not configured")
}
