package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/clipseek/clipseek-cli/internal/core/domain"
	"github.com/clipseek/clipseek-cli/internal/core/ports/driving"
)

var ingestWait bool

var ingestCmd = &cobra.Command{
	Use:   "ingest [entry-id...]",
	Short: "Submit catalog entries for indexing",
	Long: `Submits catalog entries to the retrieval service for indexing.
Without arguments the whole catalog is submitted as one batch.

Indexing runs inside the service; use --wait to poll until the batch
finishes, or 'clipseek ingest status <batch>' to check later.`,
	RunE: runIngest,
}

var ingestStatusCmd = &cobra.Command{
	Use:   "status [batch-name]",
	Short: "Show the state of an ingestion batch",
	Args:  cobra.ExactArgs(1),
	RunE:  runIngestStatus,
}

var ingestHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List submitted ingestion batches",
	RunE:  runIngestHistory,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestWait, "wait", false, "wait for the batch to finish")
	ingestCmd.AddCommand(ingestStatusCmd)
	ingestCmd.AddCommand(ingestHistoryCmd)
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx := cmd.Context()

	record, err := ingestService.Ingest(ctx, args...)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	cmd.Printf("Submitted batch %s with %d video(s).\n", record.BatchName, len(record.EntryIDs))

	if !ingestWait {
		cmd.Printf("Check progress with 'clipseek ingest status %s'.\n", record.BatchName)
		return nil
	}

	final, err := waitWithProgress(ctx, cmd, ingestService, record.BatchName)
	if err != nil {
		return fmt.Errorf("waiting for batch: %w", err)
	}

	printIngestionRecord(cmd, final)
	if final.State == domain.IngestionFailed {
		return fmt.Errorf("batch %s failed: %s", final.BatchName, final.Error)
	}
	return nil
}

// waitWithProgress waits for the batch while printing state changes.
func waitWithProgress(
	ctx context.Context,
	cmd *cobra.Command,
	ingest driving.IngestService,
	batchName string,
) (*domain.IngestionRecord, error) {
	// Wait in a goroutine so progress can be reported alongside
	done := make(chan struct{})
	var record *domain.IngestionRecord
	var waitErr error
	go func() {
		record, waitErr = ingest.Wait(ctx, batchName)
		close(done)
	}()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	lastState := domain.IngestionState("")
	for {
		select {
		case <-done:
			return record, waitErr
		case <-ticker.C:
			// Best-effort progress; status errors are not fatal here
			status, statusErr := ingest.Status(ctx, batchName)
			if statusErr == nil && status.State != lastState {
				cmd.Printf("Batch %s: %s\n", batchName, status.State)
				lastState = status.State
			}
		}
	}
}

func runIngestStatus(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	record, err := ingestService.Status(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	printIngestionRecord(cmd, record)
	return nil
}

func runIngestHistory(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	records, err := ingestService.History(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list batches: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No ingestion batches submitted yet.")
		return nil
	}

	cmd.Printf("Ingestion history (%d batches):\n\n", len(records))
	for _, record := range records {
		cmd.Printf("  %s  %-10s  %d video(s)  %s\n",
			record.BatchName, record.State, len(record.EntryIDs),
			record.SubmittedAt.Format(time.RFC3339))
		if record.Error != "" {
			cmd.Printf("      Error: %s\n", record.Error)
		}
	}

	return nil
}

func printIngestionRecord(cmd *cobra.Command, record *domain.IngestionRecord) {
	cmd.Printf("Batch: %s\n", record.BatchName)
	cmd.Printf("State: %s\n", record.State)
	cmd.Printf("Videos: %s\n", strings.Join(record.EntryIDs, ", "))
	if record.Error != "" {
		cmd.Printf("Error: %s\n", record.Error)
	}
}
