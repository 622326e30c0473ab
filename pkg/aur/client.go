// Package aur provides an AUR RPC client and the resolver that turns
// installed foreign packages into upgrade candidates.
package aur

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ajxudir/aurup/pkg/verbose"
)

// infoBatchSize bounds how many packages one RPC info request names.
// The AUR rejects request URLs past ~8k characters.
const infoBatchSize = 150

// Pkg is the subset of the RPC info result the resolver needs.
//
// Fields:
//   - Name: Package name
//   - Version: Version the AUR currently offers
type Pkg struct {
	Name    string `json:"Name"`
	Version string `json:"Version"`
}

// infoResponse is the RPC v5 envelope around info results.
type infoResponse struct {
	Type    string `json:"type"`
	Error   string `json:"error"`
	Results []Pkg  `json:"results"`
}

// Client talks to the AUR RPC v5 endpoint.
//
// Fields:
//   - BaseURL: Endpoint base, e.g. "https://aur.archlinux.org"
//   - HTTPClient: HTTP client to use; nil selects a 30s-timeout default
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates an AUR RPC client for the given base URL.
//
// Parameters:
//   - baseURL: Endpoint base, e.g. "https://aur.archlinux.org"
//
// Returns:
//   - *Client: The client
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Info fetches registry records for the named packages.
//
// It performs the following operations:
//   - Step 1: Splits the names into URL-safe batches
//   - Step 2: Issues one RPC info request per batch
//   - Step 3: Concatenates the results; packages unknown to the AUR are
//     simply absent from the result
//
// Parameters:
//   - ctx: Context for cancellation
//   - names: Package names to look up
//
// Returns:
//   - []Pkg: Registry records for the names the AUR knows
//   - error: Transport or RPC failure
func (c *Client) Info(ctx context.Context, names []string) ([]Pkg, error) {
	if len(names) == 0 {
		return nil, nil
	}

	var results []Pkg
	for start := 0; start < len(names); start += infoBatchSize {
		end := start + infoBatchSize
		if end > len(names) {
			end = len(names)
		}
		batch, err := c.infoBatch(ctx, names[start:end])
		if err != nil {
			return nil, err
		}
		results = append(results, batch...)
	}
	verbose.FetchResult("aur", len(results))
	return results, nil
}

// infoBatch issues a single RPC info request.
//
// Parameters:
//   - ctx: Context for cancellation
//   - names: Package names for this batch
//
// Returns:
//   - []Pkg: Registry records from this batch
//   - error: Transport, HTTP status, or RPC error
func (c *Client) infoBatch(ctx context.Context, names []string) ([]Pkg, error) {
	values := url.Values{}
	for _, name := range names {
		values.Add("arg[]", name)
	}
	endpoint := c.BaseURL + "/rpc/v5/info?" + values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("aur rpc: %w", err)
	}

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("aur rpc: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("aur rpc: unexpected status %s", resp.Status)
	}

	var parsed infoResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("aur rpc: invalid response: %w", err)
	}
	if parsed.Type == "error" {
		return nil, fmt.Errorf("aur rpc: %s", parsed.Error)
	}
	return parsed.Results, nil
}
