package provider

import "context"

// SourceData holds the raw mappings from every provider for one ticker. The
// reconciler consumes it as-is; each mapping may be empty after a soft
// provider failure.
type SourceData struct {
	Metrics      Fields // Finnhub stock/metric
	Balance      Fields // Yahoo balance sheet and dividend dates
	KeyMetrics   Fields // FMP key-metrics-ttm
	BalanceSheet Fields // FMP balance-sheet-statement
}

// Fetcher queries the three providers for one ticker. The calls are mutually
// independent; a failed provider contributes an empty mapping.
type Fetcher struct {
	finnhub *FinnhubClient
	yahoo   *YahooClient
	fmp     *FMPClient
}

// NewFetcher creates a fetcher over the three provider clients.
func NewFetcher(finnhub *FinnhubClient, yahoo *YahooClient, fmp *FMPClient) *Fetcher {
	return &Fetcher{
		finnhub: finnhub,
		yahoo:   yahoo,
		fmp:     fmp,
	}
}

// Fetch collects the raw provider data for the ticker.
func (f *Fetcher) Fetch(ctx context.Context, ticker string) SourceData {
	return SourceData{
		Metrics:      f.finnhub.Fetch(ctx, ticker),
		Balance:      f.yahoo.Fetch(ctx, ticker),
		KeyMetrics:   f.fmp.KeyMetrics(ctx, ticker),
		BalanceSheet: f.fmp.BalanceSheet(ctx, ticker),
	}
}
