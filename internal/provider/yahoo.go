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

// Cash and debt are looked up under a fixed priority list of balance-sheet
// labels, most preferred first. The first matching label's most recent period
// wins.
var (
	cashLabels = []string{"cashAndCashEquivalents", "totalCash", "cash"}
	debtLabels = []string{"longTermDebt", "totalDebt"}
)

// YahooClient fetches balance-sheet rows and dividend dates from the public
// Yahoo Finance endpoints. No API key is required.
type YahooClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewYahooClient creates a Yahoo Finance client.
func NewYahooClient(baseURL string, timeout time.Duration) *YahooClient {
	return &YahooClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type yahooBalanceSheet struct {
	QuoteSummary struct {
		Result []struct {
			BalanceSheetHistory struct {
				BalanceSheetStatements []map[string]any `json:"balanceSheetStatements"`
			} `json:"balanceSheetHistory"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

type yahooChart struct {
	Chart struct {
		Result []struct {
			Events struct {
				Dividends map[string]struct {
					Amount float64 `json:"amount"`
					Date   int64   `json:"date"`
				} `json:"dividends"`
			} `json:"events"`
		} `json:"result"`
	} `json:"chart"`
}

// Fetch returns cash, debt, netCash and the most recent dividend dates for
// the ticker. Each sub-call fails soft: missing data, missing labels or an
// HTTP error leave the corresponding fields absent.
func (c *YahooClient) Fetch(ctx context.Context, ticker string) Fields {
	res := Fields{}

	c.fetchBalanceSheet(ctx, ticker, res)
	c.fetchDividends(ctx, ticker, res)

	return res
}

func (c *YahooClient) fetchBalanceSheet(ctx context.Context, ticker string, res Fields) {
	q := url.Values{}
	q.Set("modules", "balanceSheetHistory")

	var resp yahooBalanceSheet
	urlStr := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", c.baseURL, url.PathEscape(ticker), q.Encode())
	if err := c.getJSON(ctx, urlStr, &resp); err != nil {
		log.Printf("Yahoo balance sheet error for %s: %v", ticker, err)
		return
	}

	if len(resp.QuoteSummary.Result) == 0 {
		return
	}
	statements := resp.QuoteSummary.Result[0].BalanceSheetHistory.BalanceSheetStatements
	if len(statements) == 0 {
		return
	}

	// Statements are ordered most recent first.
	latest := statements[0]
	cash := firstLabel(latest, cashLabels)
	debt := firstLabel(latest, debtLabels)

	if cash != nil {
		res["cash"] = *cash
	}
	if debt != nil {
		res["debt"] = *debt
	}
	if cash != nil && debt != nil {
		res["netCash"] = *cash - *debt
	}
}

func (c *YahooClient) fetchDividends(ctx context.Context, ticker string, res Fields) {
	q := url.Values{}
	q.Set("range", "1y")
	q.Set("interval", "1mo")
	q.Set("events", "div")

	var resp yahooChart
	urlStr := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(ticker), q.Encode())
	if err := c.getJSON(ctx, urlStr, &resp); err != nil {
		log.Printf("Yahoo dividends error for %s: %v", ticker, err)
		return
	}

	if len(resp.Chart.Result) == 0 {
		return
	}

	var latest int64
	for _, div := range resp.Chart.Result[0].Events.Dividends {
		if div.Date > latest {
			latest = div.Date
		}
	}
	if latest == 0 {
		return
	}

	// Yahoo reports a single date per dividend event; it serves as both the
	// ex-dividend and the payout date.
	exDiv := time.Unix(latest, 0).UTC().Truncate(24 * time.Hour)
	res["exDivDate"] = exDiv
	res["payoutDate"] = exDiv
}

// firstLabel returns the value of the first matching label in the statement.
// Yahoo wraps numbers as {"raw": n, "fmt": "..."} objects.
func firstLabel(statement map[string]any, labels []string) *int64 {
	for _, label := range labels {
		if v := rawInt64(statement[label]); v != nil {
			return v
		}
	}
	return nil
}

func rawInt64(v any) *int64 {
	switch t := v.(type) {
	case map[string]any:
		if raw, ok := t["raw"]; ok {
			return rawInt64(raw)
		}
	case float64:
		n := int64(t)
		return &n
	}
	return nil
}

// getJSON mirrors the shared helper but identifies as a browser; Yahoo
// rejects requests without a User-Agent.
func (c *YahooClient) getJSON(ctx context.Context, urlStr string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; fundamentals-etl)")

	httpResp, err := c.httpClient.Do(req)
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
