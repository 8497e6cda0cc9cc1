package provider

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

// FMPClient fetches the Financial Modeling Prep fallback metrics: TTM key
// metrics and the latest balance-sheet statement.
type FMPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewFMPClient creates an FMP client. An empty API key is a supported
// configuration: every fetch then degrades to an empty mapping.
func NewFMPClient(baseURL, apiKey string, timeout time.Duration) *FMPClient {
	return &FMPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// KeyMetrics returns the first element of the key-metrics-ttm list response,
// or an empty mapping on any failure.
func (c *FMPClient) KeyMetrics(ctx context.Context, ticker string) Fields {
	return c.fetchFirst(ctx, "key-metrics-ttm/"+url.PathEscape(ticker), nil)
}

// BalanceSheet returns the most recent balance-sheet statement, or an empty
// mapping on any failure.
func (c *FMPClient) BalanceSheet(ctx context.Context, ticker string) Fields {
	return c.fetchFirst(ctx, "balance-sheet-statement/"+url.PathEscape(ticker), url.Values{"limit": {"1"}})
}

// fetchFirst calls an FMP endpoint that returns a list and extracts its first
// element. Missing key, HTTP failure or an empty list all yield an empty
// mapping.
func (c *FMPClient) fetchFirst(ctx context.Context, path string, params url.Values) Fields {
	if c.apiKey == "" {
		log.Printf("FMP: no API key configured, skipping %s", path)
		return Fields{}
	}

	q := url.Values{}
	for k, vs := range params {
		q[k] = vs
	}
	q.Set("apikey", c.apiKey)

	var resp []map[string]any
	urlStr := fmt.Sprintf("%s/%s?%s", c.baseURL, path, q.Encode())
	if err := getJSON(ctx, c.httpClient, urlStr, &resp); err != nil {
		log.Printf("FMP API error for %s: %v", path, err)
		return Fields{}
	}

	if len(resp) == 0 {
		return Fields{}
	}
	return Fields(resp[0])
}
