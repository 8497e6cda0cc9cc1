package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// FinnhubClient fetches the core valuation and profitability ratios from the
// Finnhub stock/metric endpoint.
type FinnhubClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewFinnhubClient creates a Finnhub client. An empty API key is a supported
// configuration: every fetch then degrades to an empty mapping.
func NewFinnhubClient(baseURL, apiKey string, timeout time.Duration) *FinnhubClient {
	return &FinnhubClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch returns Finnhub's native metric mapping for the ticker. Any failure
// (missing key, network error, bad status, malformed body) is logged and
// downgraded to an empty mapping; it never propagates to the caller.
func (c *FinnhubClient) Fetch(ctx context.Context, ticker string) Fields {
	if c.apiKey == "" {
		log.Printf("Finnhub: no API key configured, skipping %s", ticker)
		return Fields{}
	}

	q := url.Values{}
	q.Set("symbol", ticker)
	q.Set("metric", "all")
	q.Set("token", c.apiKey)

	var resp struct {
		Metric map[string]any `json:"metric"`
	}
	if err := getJSON(ctx, c.httpClient, c.baseURL+"/stock/metric?"+q.Encode(), &resp); err != nil {
		log.Printf("Finnhub API error for %s: %v", ticker, err)
		return Fields{}
	}

	if resp.Metric == nil {
		return Fields{}
	}
	return Fields(resp.Metric)
}

// getJSON issues a GET request and decodes the JSON body into out.
func getJSON(ctx context.Context, client *http.Client, urlStr string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	httpResp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", httpResp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}

	return nil
}
