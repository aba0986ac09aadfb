package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/poiesic/mailidx/core"
	"github.com/poiesic/mailidx/index"
)

// MaxMetadataChars caps text fields in record metadata before transmission,
// respecting the index service's per-record size limits.
const MaxMetadataChars = 2000

const defaultTimeout = 30 * time.Second

// Client implements index.VectorWriter against the Pinecone REST API.
type Client struct {
	host       string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ index.VectorWriter = (*Client)(nil)

// NewClient creates a vector writer for an already-resolved index host.
// A missing host or credential is rejected up front.
func NewClient(host, apiKey string) (*Client, error) {
	if host == "" {
		return nil, index.ErrHostRequired
	}
	if apiKey == "" {
		return nil, index.ErrCredentialRequired
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "https://" + host
	}
	return &Client{
		host:       strings.TrimSuffix(host, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.Default().With("component", "pinecone"),
	}, nil
}

type upsertVector struct {
	ID       string         `json:"id"`
	Values   []float32      `json:"values"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type upsertRequest struct {
	Vectors []upsertVector `json:"vectors"`
}

// Upsert stores the given records. Metadata string values longer than
// MaxMetadataChars are capped before transmission. A non-success response
// is returned as an error without retrying; callers defer the record to
// the next scheduled run.
func (c *Client) Upsert(ctx context.Context, records ...core.VectorRecord) error {
	if len(records) == 0 {
		return index.ErrNoRecords
	}

	req := upsertRequest{Vectors: make([]upsertVector, 0, len(records))}
	for i := range records {
		record := &records[i]
		if err := core.ValidateVectorRecord(record); err != nil {
			return err
		}
		req.Vectors = append(req.Vectors, upsertVector{
			ID:       record.ID,
			Values:   record.Values,
			Metadata: capMetadata(record.Metadata),
		})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encoding upsert request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.host+"/vectors/upsert", bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Api-Key", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("upsert request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("upsert rejected", "status", resp.StatusCode, "body", string(snippet))
		return fmt.Errorf("upsert returned status %d", resp.StatusCode)
	}

	c.logger.Debug("upserted vectors", "count", len(records))
	return nil
}

// capMetadata truncates oversized string values, leaving other value types
// untouched. The input map is not modified.
func capMetadata(metadata map[string]any) map[string]any {
	if metadata == nil {
		return nil
	}
	capped := make(map[string]any, len(metadata))
	for key, value := range metadata {
		if text, ok := value.(string); ok && len(text) > MaxMetadataChars {
			capped[key] = truncateRunes(text, MaxMetadataChars)
			continue
		}
		capped[key] = value
	}
	return capped
}

func truncateRunes(text string, limit int) string {
	cut := limit
	for cut > 0 && text[cut]&0xC0 == 0x80 {
		cut--
	}
	return text[:cut]
}

type discoveryResponse struct {
	Status struct {
		Host string `json:"host"`
	} `json:"status"`
}

// Discover resolves the index's network address from the controller using
// the index name and environment. It is called once when no host is
// configured; a failure is fatal for run initialization because the
// pipeline has no destination without it.
func Discover(ctx context.Context, indexName, environment, apiKey string) (string, error) {
	if indexName == "" || environment == "" {
		return "", fmt.Errorf("%w: index name and environment required", index.ErrDiscoveryFailed)
	}
	if apiKey == "" {
		return "", fmt.Errorf("%w: %w", index.ErrDiscoveryFailed, index.ErrCredentialRequired)
	}

	url := fmt.Sprintf("https://controller.%s.pinecone.io/databases/%s", environment, indexName)
	return discover(ctx, url, apiKey)
}

// discover is the URL-parameterized body of Discover, split out for tests.
func discover(ctx context.Context, url, apiKey string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Api-Key", apiKey)

	client := &http.Client{Timeout: defaultTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", index.ErrDiscoveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: controller returned status %d", index.ErrDiscoveryFailed, resp.StatusCode)
	}

	var decoded discoveryResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%w: %w", index.ErrDiscoveryFailed, err)
	}
	if decoded.Status.Host == "" {
		return "", fmt.Errorf("%w: response missing host", index.ErrDiscoveryFailed)
	}
	return decoded.Status.Host, nil
}
