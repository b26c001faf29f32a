package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clipseek/clipseek-cli/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the retrieval service and storage settings.

Settings are stored in ~/.clipseek/config.toml. Keys use dot notation,
e.g. 'clipseek settings set retrieval.endpoint myaccount.cognitiveservices.azure.com'.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a settings value",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List available settings keys",
	Run:   runSettingsKeys,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Retrieval]")
	cmd.Printf("  Endpoint: %s\n", orUnset(settings.Retrieval.Endpoint))
	cmd.Printf("  Index: %s\n", orUnset(settings.Retrieval.IndexName))
	cmd.Printf("  API Version: %s\n", settings.Retrieval.APIVersion)
	cmd.Printf("  API Key: %s\n", maskSecret(settings.Retrieval.APIKey))
	cmd.Printf("  Status: %s\n", configuredStatus(settings.Retrieval.IsConfigured()))
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Account: %s\n", orUnset(settings.Storage.AccountName))
	cmd.Printf("  Container: %s\n", orUnset(settings.Storage.ContainerName))
	cmd.Printf("  Account Key: %s\n", maskSecret(settings.Storage.AccountKey))
	cmd.Printf("  SAS Validity: %s\n", settings.Storage.SASValidity)
	cmd.Printf("  Status: %s\n", configuredStatus(settings.Storage.IsConfigured()))
	cmd.Println()

	if !settings.Retrieval.IsConfigured() {
		cmd.Println("Retrieval is not configured; search and ingest will fail.")
		cmd.Println("Run 'clipseek settings keys' to see what to set.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.SetValue(cmd.Context(), key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	if strings.Contains(key, "key") {
		cmd.Printf("Set %s = %s\n", key, maskSecret(value))
	} else {
		cmd.Printf("Set %s = %s\n", key, value)
	}
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) {
	cmd.Println("Available settings keys:")
	for _, key := range services.SettingsKeys() {
		cmd.Printf("  %s\n", key)
	}
}

// Helper functions.

func orUnset(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}

func configuredStatus(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

func maskSecret(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
