package snapshot

import (
	"github.com/shopspring/decimal"

	"fundamentals-etl/internal/provider"
)

// Reconcile merges the raw provider mappings for one ticker into a
// CompanySnapshot. Each field takes the first present value in its fixed
// priority order; derived values (forward P/E, EV/EBITDA, net cash) are
// computed only when no provider supplies the field directly. Reconcile is a
// pure function: it performs no I/O, never fails, and yields identical output
// for identical input.
func Reconcile(src provider.SourceData) CompanySnapshot {
	a := src.Metrics       // Finnhub
	b := src.Balance       // Yahoo
	km := src.KeyMetrics   // FMP key metrics
	bs := src.BalanceSheet // FMP balance sheet

	snap := CompanySnapshot{
		MarketCap:   firstInt64(a.Int64("marketCapitalization"), km.Int64("marketCapTTM")),
		PETTM:       firstDecimal(a.Decimal("peTTM"), km.Decimal("peRatioTTM")),
		EarningsYoY: firstDecimal(a.Decimal("epsGrowthQuarterlyYoy"), km.Decimal("epsGrowthQuarterlyYoy")),
		RevenueYoY:  firstDecimal(a.Decimal("revenueGrowthQuarterlyYoy"), km.Decimal("revenueGrowthQuarterlyYOY")),

		PriceToSales: firstDecimal(a.Decimal("psTTM"), km.Decimal("priceToSalesRatioTTM")),
		PriceToBook: firstDecimal(
			a.Decimal("pbTTM"),
			km.Decimal("priceToBookRatioTTM"),
			km.Decimal("pbRatioTTM"),
			km.Decimal("ptbRatioTTM"),
		),
		FCFYield: firstDecimal(a.Decimal("currentEv/freeCashFlowTTM"), km.Decimal("freeCashFlowYieldTTM")),

		ProfitMargin:       firstDecimal(a.Decimal("netProfitMarginTTM"), km.Decimal("netProfitMarginTTM")),
		OperatingMarginTTM: firstDecimal(a.Decimal("operatingMarginTTM"), km.Decimal("operatingMarginTTM")),

		Cash: firstInt64(b.Int64("cash"), bs.Int64("cashAndCashEquivalents")),
		Debt: firstInt64(b.Int64("debt"), bs.Int64("totalDebt")),

		DividendYield: firstDecimal(a.Decimal("dividendYieldIndicatedAnnual"), km.Decimal("dividendYieldTTM")),
		PayoutRatio:   firstDecimal(a.Decimal("payoutRatioTTM"), km.Decimal("payoutRatioTTM")),
		ExDivDate:     b.Time("exDivDate"),
		PayoutDate:    b.Time("payoutDate"),
	}

	snap.PEFwd = firstDecimal(a.Decimal("forwardPE"), km.Decimal("forwardPE"))
	if snap.PEFwd == nil {
		snap.PEFwd = deriveForwardPE(snap.PETTM, snap.EarningsYoY)
	}

	snap.EVToEBITDA = km.Decimal("enterpriseValueOverEBITDATTM")
	if snap.EVToEBITDA == nil {
		ev := firstDecimal(a.Decimal("enterpriseValue"), km.Decimal("enterpriseValueTTM"))
		ebitda := firstDecimal(a.Decimal("ebitdaTTM"), km.Decimal("ebitdaTTM"))
		if ev != nil && ebitda != nil && !ebitda.IsZero() {
			v := ev.Div(*ebitda)
			snap.EVToEBITDA = &v
		}
	}

	// An adapter-supplied net cash is used unchanged even if it mismatches
	// cash - debt; it is only recomputed when absent.
	snap.NetCash = b.Int64("netCash")
	if snap.NetCash == nil && snap.Cash != nil && snap.Debt != nil {
		n := *snap.Cash - *snap.Debt
		snap.NetCash = &n
	}

	return snap
}

// deriveForwardPE estimates forward P/E from trailing P/E and YoY earnings
// growth in percent. Growth lowers the forward multiple, contraction raises
// it. A projected decline of 100% or more implies non-positive forward
// earnings, where the ratio has no meaning. Zero growth gives the estimate no
// basis; no value is derived.
func deriveForwardPE(peTTM, earningsYoY *decimal.Decimal) *decimal.Decimal {
	if peTTM == nil || earningsYoY == nil || earningsYoY.IsZero() {
		return nil
	}
	growth := decimal.NewFromInt(1).Add(earningsYoY.Div(decimal.NewFromInt(100)))
	if growth.Sign() <= 0 {
		return nil
	}
	v := peTTM.Div(growth)
	return &v
}

// firstDecimal returns the first non-nil value, preserving the fallback order.
func firstDecimal(vals ...*decimal.Decimal) *decimal.Decimal {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstInt64(vals ...*int64) *int64 {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}
