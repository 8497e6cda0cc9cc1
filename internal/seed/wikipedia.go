package seed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"fundamentals-etl/internal/db"
)

// FetchConstituents downloads the S&P 500 constituents page and extracts the
// (ticker, name) pairs for the company registry.
func FetchConstituents(ctx context.Context, client *http.Client, pageURL string) ([]db.CompanyRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching constituents page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching constituents page", resp.StatusCode)
	}

	return ParseConstituents(resp.Body)
}

// ParseConstituents extracts (ticker, name) pairs from the constituents
// table. Periods in tickers are normalized to dashes (BRK.B -> BRK-B) to
// match the symbol form the data providers expect.
func ParseConstituents(r io.Reader) ([]db.CompanyRow, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing constituents page: %w", err)
	}

	table := doc.Find("table#constituents")
	if table.Length() == 0 {
		return nil, fmt.Errorf("constituents table not found")
	}

	var companies []db.CompanyRow
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		ticker := strings.ToUpper(strings.TrimSpace(cells.Eq(0).Text()))
		ticker = strings.ReplaceAll(ticker, ".", "-")
		name := strings.TrimSpace(cells.Eq(1).Text())
		if ticker != "" {
			companies = append(companies, db.CompanyRow{Ticker: ticker, Name: name})
		}
	})

	if len(companies) == 0 {
		return nil, fmt.Errorf("constituents table has no data rows")
	}

	return companies, nil
}
