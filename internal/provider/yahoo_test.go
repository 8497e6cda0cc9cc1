package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newYahooTestServer(t *testing.T, balanceBody, chartBody string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v10/finance/quoteSummary/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(balanceBody))
	})
	mux.HandleFunc("/v8/finance/chart/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chartBody))
	})
	return httptest.NewServer(mux)
}

func TestYahooFetch(t *testing.T) {
	balance := `{"quoteSummary":{"result":[{"balanceSheetHistory":{"balanceSheetStatements":[
		{"endDate":{"raw":1735603200},"cash":{"raw":50000000},"longTermDebt":{"raw":30000000}},
		{"endDate":{"raw":1704067200},"cash":{"raw":1},"longTermDebt":{"raw":1}}
	]}}],"error":null}}`
	// 2025-05-09 and an older event; the most recent date wins.
	chart := `{"chart":{"result":[{"events":{"dividends":{
		"1746748800":{"amount":0.25,"date":1746748800},
		"1738886400":{"amount":0.24,"date":1738886400}
	}}}]}}`

	srv := newYahooTestServer(t, balance, chart)
	defer srv.Close()

	client := NewYahooClient(srv.URL, 10*time.Second)
	fields := client.Fetch(context.Background(), "AAPL")

	require.NotNil(t, fields.Int64("cash"))
	assert.Equal(t, int64(50000000), *fields.Int64("cash"), "most recent period wins")
	require.NotNil(t, fields.Int64("debt"))
	assert.Equal(t, int64(30000000), *fields.Int64("debt"))
	require.NotNil(t, fields.Int64("netCash"))
	assert.Equal(t, int64(20000000), *fields.Int64("netCash"))

	exDiv := fields.Time("exDivDate")
	require.NotNil(t, exDiv)
	assert.Equal(t, time.Date(2025, 5, 9, 0, 0, 0, 0, time.UTC), *exDiv)
	require.NotNil(t, fields.Time("payoutDate"))
	assert.Equal(t, *exDiv, *fields.Time("payoutDate"), "ex-dividend and payout date coincide")
}

func TestYahooLabelPriority(t *testing.T) {
	// cashAndCashEquivalents outranks cash; totalDebt is the debt fallback.
	balance := `{"quoteSummary":{"result":[{"balanceSheetHistory":{"balanceSheetStatements":[
		{"cashAndCashEquivalents":{"raw":70000000},"cash":{"raw":50000000},"totalDebt":{"raw":45000000}}
	]}}]}}`
	chart := `{"chart":{"result":[]}}`

	srv := newYahooTestServer(t, balance, chart)
	defer srv.Close()

	client := NewYahooClient(srv.URL, 10*time.Second)
	fields := client.Fetch(context.Background(), "AAPL")

	require.NotNil(t, fields.Int64("cash"))
	assert.Equal(t, int64(70000000), *fields.Int64("cash"))
	require.NotNil(t, fields.Int64("debt"))
	assert.Equal(t, int64(45000000), *fields.Int64("debt"))
}

func TestYahooPartialData(t *testing.T) {
	// Debt label missing: cash survives, debt and netCash stay null.
	balance := `{"quoteSummary":{"result":[{"balanceSheetHistory":{"balanceSheetStatements":[
		{"cash":{"raw":50000000}}
	]}}]}}`
	chart := `{"chart":{"result":[{"events":{}}]}}`

	srv := newYahooTestServer(t, balance, chart)
	defer srv.Close()

	client := NewYahooClient(srv.URL, 10*time.Second)
	fields := client.Fetch(context.Background(), "AAPL")

	require.NotNil(t, fields.Int64("cash"))
	assert.Nil(t, fields.Int64("debt"))
	assert.Nil(t, fields.Int64("netCash"))
	assert.Nil(t, fields.Time("exDivDate"))
}

func TestYahooSoftFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewYahooClient(srv.URL, 10*time.Second)
	fields := client.Fetch(context.Background(), "UNKNOWN")

	assert.Empty(t, fields, "failures on both sub-calls yield an empty mapping")
}
