package snapshot

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanySnapshot is the reconciled point-in-time record for one ticker.
// Every field is independently nullable: absence of data from all providers
// is a valid, expected outcome, never an error. Currency-unit fields carry
// whole units; growth and margin fields carry percentages.
type CompanySnapshot struct {
	MarketCap *int64

	PETTM        *decimal.Decimal
	PEFwd        *decimal.Decimal
	PriceToSales *decimal.Decimal
	EVToEBITDA   *decimal.Decimal
	PriceToBook  *decimal.Decimal
	FCFYield     *decimal.Decimal

	ProfitMargin       *decimal.Decimal
	OperatingMarginTTM *decimal.Decimal
	EarningsYoY        *decimal.Decimal
	RevenueYoY         *decimal.Decimal

	Cash    *int64
	Debt    *int64
	NetCash *int64

	DividendYield *decimal.Decimal
	PayoutRatio   *decimal.Decimal
	ExDivDate     *time.Time
	PayoutDate    *time.Time
}
