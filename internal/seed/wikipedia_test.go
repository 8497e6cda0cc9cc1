package seed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const constituentsHTML = `<html><body>
<table id="constituents">
<tbody>
<tr><th>Symbol</th><th>Security</th><th>Sector</th></tr>
<tr><td>AAPL</td><td>Apple Inc.</td><td>Information Technology</td></tr>
<tr><td>BRK.B</td><td>Berkshire Hathaway</td><td>Financials</td></tr>
<tr><td>MMM</td><td>3M</td><td>Industrials</td></tr>
</tbody>
</table>
</body></html>`

func TestParseConstituents(t *testing.T) {
	companies, err := ParseConstituents(strings.NewReader(constituentsHTML))
	require.NoError(t, err)
	require.Len(t, companies, 3)

	assert.Equal(t, "AAPL", companies[0].Ticker)
	assert.Equal(t, "Apple Inc.", companies[0].Name)
	assert.Equal(t, "BRK-B", companies[1].Ticker, "periods are normalized to dashes")
	assert.Equal(t, "Berkshire Hathaway", companies[1].Name)
	assert.Equal(t, "MMM", companies[2].Ticker)
}

func TestParseConstituentsMissingTable(t *testing.T) {
	_, err := ParseConstituents(strings.NewReader(`<html><body><p>nothing here</p></body></html>`))
	assert.Error(t, err)
}

func TestParseConstituentsEmptyTable(t *testing.T) {
	html := `<table id="constituents"><tbody><tr><th>Symbol</th><th>Security</th></tr></tbody></table>`
	_, err := ParseConstituents(strings.NewReader(html))
	assert.Error(t, err)
}
