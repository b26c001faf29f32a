// Package azure implements the retrieval service port against the
// Azure Video Retrieval API.
//
// The API owns all index state. This client only creates the index,
// submits ingestion batches, polls their state and forwards text
// queries; no media is ever downloaded or processed locally.
package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/clipseek/clipseek-cli/internal/core/domain"
	"github.com/clipseek/clipseek-cli/internal/core/ports/driven"
	"github.com/clipseek/clipseek-cli/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// HeaderSubscriptionKey carries the Cognitive Services key.
	HeaderSubscriptionKey = "Ocp-Apim-Subscription-Key"

	// ingestionModeAdd adds or replaces a document in the index.
	ingestionModeAdd = "add"
)

// Ensure Client implements the interface.
var _ driven.RetrievalService = (*Client)(nil)

// Client talks to an Azure Video Retrieval index over HTTPS.
type Client struct {
	http        *http.Client
	settings    domain.RetrievalSettings
	rateLimiter *RateLimiter
}

// NewClient creates a new Video Retrieval client for the configured index.
func NewClient(settings domain.RetrievalSettings) *Client {
	return &Client{
		http:        &http.Client{Timeout: DefaultTimeout},
		settings:    settings,
		rateLimiter: NewRateLimiter(),
	}
}

// SetHTTPClient replaces the underlying HTTP client, used in tests.
func (c *Client) SetHTTPClient(client *http.Client) {
	c.http = client
}

// baseURL builds the API root from the configured endpoint. A bare
// hostname gets an https scheme; explicit schemes are kept so local
// test servers work.
func (c *Client) baseURL() (string, error) {
	endpoint := strings.TrimSuffix(c.settings.Endpoint, "/")
	if endpoint == "" {
		return "", ErrMissingEndpoint
	}
	if c.settings.IndexName == "" {
		return "", ErrMissingIndexName
	}
	if !strings.Contains(endpoint, "://") {
		endpoint = "https://" + endpoint
	}
	return endpoint + "/computervision/retrieval", nil
}

// EnsureIndex creates the retrieval index if it does not exist.
// Creating an index that already exists returns 409, which is treated
// as success.
func (c *Client) EnsureIndex(ctx context.Context) error {
	body := createIndexRequest{
		Features: []indexFeature{
			{Name: "vision", Domain: "generic"},
			{Name: "speech"},
		},
	}

	path := fmt.Sprintf("/indexes/%s", url.PathEscape(c.settings.IndexName))
	resp, err := c.do(ctx, http.MethodPut, path, body)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
			logger.Debug("Index %s already exists", c.settings.IndexName)
			return nil
		}
		return fmt.Errorf("ensuring index: %w", err)
	}
	drainAndClose(resp)

	logger.Debug("Index %s ready", c.settings.IndexName)
	return nil
}

// Ingest submits a named batch of videos for indexing.
func (c *Client) Ingest(ctx context.Context, batchName string, items []driven.IngestionItem) error {
	videos := make([]ingestionVideo, 0, len(items))
	for _, item := range items {
		videos = append(videos, ingestionVideo{
			Mode:        ingestionModeAdd,
			DocumentID:  item.DocumentID,
			DocumentURL: item.DocumentURL,
		})
	}

	path := fmt.Sprintf("/indexes/%s/ingestions/%s",
		url.PathEscape(c.settings.IndexName), url.PathEscape(batchName))
	resp, err := c.do(ctx, http.MethodPut, path, createIngestionRequest{Videos: videos})
	if err != nil {
		return fmt.Errorf("submitting ingestion %s: %w", batchName, err)
	}
	drainAndClose(resp)

	logger.Debug("Ingestion %s submitted with %d video(s)", batchName, len(videos))
	return nil
}

// IngestionState reports the current state of a submitted batch.
func (c *Client) IngestionState(ctx context.Context, batchName string) (domain.IngestionState, string, error) {
	path := fmt.Sprintf("/indexes/%s/ingestions/%s",
		url.PathEscape(c.settings.IndexName), url.PathEscape(batchName))
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		if IsNotFound(err) {
			return "", "", fmt.Errorf("%w: %s", ErrIngestionNotFound, batchName)
		}
		return "", "", fmt.Errorf("getting ingestion %s: %w", batchName, err)
	}
	defer resp.Body.Close()

	var ingestion ingestionResponse
	if err := json.NewDecoder(resp.Body).Decode(&ingestion); err != nil {
		return "", "", fmt.Errorf("decoding ingestion response: %w", err)
	}

	var message string
	if ingestion.Error != nil {
		message = ingestion.Error.Message
	}

	return mapIngestionState(ingestion.State), message, nil
}

// ListDocuments returns the videos present in the index.
func (c *Client) ListDocuments(ctx context.Context) ([]driven.IndexedDocument, error) {
	path := fmt.Sprintf("/indexes/%s/documents", url.PathEscape(c.settings.IndexName))
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer resp.Body.Close()

	var listing listDocumentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decoding document listing: %w", err)
	}

	docs := make([]driven.IndexedDocument, 0, len(listing.Value))
	for _, doc := range listing.Value {
		docs = append(docs, driven.IndexedDocument{
			DocumentID:   doc.DocumentID,
			DocumentURL:  doc.DocumentURL,
			DocumentKind: doc.DocumentKind,
		})
	}

	return docs, nil
}

// Search forwards a validated query and returns matches in the
// service's relevance order. The query text is sent exactly as given.
func (c *Client) Search(ctx context.Context, query domain.Query, limit int) ([]domain.SearchResult, error) {
	body := queryByTextRequest{
		QueryText: query.Text,
		Filters: queryFilters{
			FeatureFilters: []string{query.Mode.FeatureFilter()},
		},
		Top: limit,
	}

	path := fmt.Sprintf("/indexes/%s:queryByText", url.PathEscape(c.settings.IndexName))
	resp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer resp.Body.Close()

	var queryResp queryByTextResponse
	if err := json.NewDecoder(resp.Body).Decode(&queryResp); err != nil {
		return nil, fmt.Errorf("decoding query response: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(queryResp.Value))
	for _, hit := range queryResp.Value {
		result, err := mapQueryHit(hit)
		if err != nil {
			return nil, fmt.Errorf("parsing result for %s: %w", hit.DocumentID, err)
		}
		results = append(results, result)
	}

	logger.Debug("Query returned %d result(s)", len(results))
	return results, nil
}

// do executes an API request and returns the response on 2xx status.
// Non-2xx responses are converted to APIError or RateLimitError; the
// body is consumed in that case.
func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	base, err := c.baseURL()
	if err != nil {
		return nil, err
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	requestURL := fmt.Sprintf("%s%s?api-version=%s", base, path, url.QueryEscape(c.settings.APIVersion))

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set(HeaderSubscriptionKey, c.settings.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Debug("%s %s", method, requestURL)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}

	if rateErr := c.rateLimiter.CheckRateLimit(resp); rateErr != nil {
		drainAndClose(resp)
		return nil, rateErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := parseAPIError(resp, requestURL)
		drainAndClose(resp)
		return nil, apiErr
	}

	return resp, nil
}

// parseAPIError extracts the Azure error envelope from a failed response.
func parseAPIError(resp *http.Response, requestURL string) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
		URL:        requestURL,
	}

	var envelope apiErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64*1024)).Decode(&envelope); err == nil {
		if envelope.Error.Message != "" {
			apiErr.Message = envelope.Error.Message
		}
		apiErr.Code = envelope.Error.Code
	}

	return apiErr
}

// mapIngestionState converts an API state string to a domain state.
func mapIngestionState(state string) domain.IngestionState {
	switch state {
	case "NotStarted", "Pending":
		return domain.IngestionPending
	case "Running":
		return domain.IngestionRunning
	case "Completed":
		return domain.IngestionCompleted
	case "Failed":
		return domain.IngestionFailed
	case "PartiallySucceeded":
		return domain.IngestionPartial
	default:
		return domain.IngestionState(strings.ToLower(state))
	}
}

// mapQueryHit converts an API result to a domain result.
func mapQueryHit(hit queryHit) (domain.SearchResult, error) {
	start, err := domain.ParseMediaTime(hit.Start)
	if err != nil {
		return domain.SearchResult{}, err
	}
	end, err := domain.ParseMediaTime(hit.End)
	if err != nil {
		return domain.SearchResult{}, err
	}
	best, err := domain.ParseMediaTime(hit.Best)
	if err != nil {
		return domain.SearchResult{}, err
	}

	return domain.SearchResult{
		VideoID:   hit.DocumentID,
		Kind:      hit.DocumentKind,
		Start:     start,
		End:       end,
		Best:      best,
		Relevance: hit.Relevance,
	}, nil
}

// drainAndClose discards any remaining body so the connection can be reused.
func drainAndClose(resp *http.Response) {
	io.Copy(io.Discard, resp.Body) //nolint:errcheck
	resp.Body.Close()
}
