package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clipseek/clipseek-cli/internal/core/domain"
)

var (
	searchMode  string
	searchLimit int
	searchJSON  bool
	searchSign  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed videos",
	Long: `Searches the retrieval index for moments matching the query.

Visual mode matches what is seen in the frames; speech mode matches
what is spoken. The query text is forwarded to the service unchanged
and results are shown in the service's relevance order.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchMode, "mode", "m", "visual", "query mode: visual or speech")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchSign, "sign", false, "attach signed playback URLs")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	mode, err := domain.ParseQueryMode(searchMode)
	if err != nil {
		return fmt.Errorf("invalid mode %q: use visual or speech", searchMode)
	}

	query := domain.Query{Mode: mode, Text: args[0]}
	opts := domain.SearchOptions{
		Limit:        searchLimit,
		SignPlayback: searchSign,
	}

	results, err := searchService.Search(cmd.Context(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		// Format: [N] VideoID at Best (Relevance)
		cmd.Printf("  [%d] %s at %s (%.2f)\n", i+1, results[i].VideoID, results[i].Best, results[i].Relevance)
		cmd.Printf("      Segment: %s - %s\n", results[i].Start, results[i].End)
		if results[i].PlaybackURL != "" {
			cmd.Printf("      Play: %s\n", results[i].PlaybackURL)
		}
		cmd.Println()
	}

	return nil
}
