package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"fundamentals-etl/internal/snapshot"
)

// Repository handles database operations for companies and their snapshots.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CompanyRow is a company registry entry.
type CompanyRow struct {
	Ticker string
	Name   string
}

// UpsertCompanies inserts companies that are not yet in the registry.
// Returns the number of rows added.
func (r *Repository) UpsertCompanies(ctx context.Context, companies []CompanyRow) (int, error) {
	if len(companies) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, c := range companies {
		batch.Queue(`
			INSERT INTO companies (ticker, name)
			VALUES ($1, $2)
			ON CONFLICT (ticker) DO NOTHING
		`, c.Ticker, c.Name)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	added := 0
	for range companies {
		tag, err := br.Exec()
		if err != nil {
			return added, fmt.Errorf("upserting company: %w", err)
		}
		added += int(tag.RowsAffected())
	}

	return added, nil
}

// UpsertSnapshot writes the snapshot for the ticker at the given date.
// The (company_id, snapshot_date) uniqueness constraint makes re-running the
// batch on the same day an update of that day's row. The ticker must already
// exist in the companies table.
func (r *Repository) UpsertSnapshot(ctx context.Context, ticker string, date time.Time, snap snapshot.CompanySnapshot) error {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO company_snapshots (
			company_id, snapshot_date,
			market_cap, pe_ttm, pe_fwd,
			price_to_sales, ev_to_ebitda, price_to_book, fcf_yield,
			profit_margin, operating_margin_ttm, earnings_yoy, revenue_yoy,
			cash, debt, net_cash,
			dividend_yield, payout_ratio, ex_div_date, payout_date
		)
		SELECT c.id, $2,
			$3, $4, $5,
			$6, $7, $8, $9,
			$10, $11, $12, $13,
			$14, $15, $16,
			$17, $18, $19, $20
		FROM companies c WHERE c.ticker = $1
		ON CONFLICT (company_id, snapshot_date) DO UPDATE SET
			market_cap = EXCLUDED.market_cap,
			pe_ttm = EXCLUDED.pe_ttm,
			pe_fwd = EXCLUDED.pe_fwd,
			price_to_sales = EXCLUDED.price_to_sales,
			ev_to_ebitda = EXCLUDED.ev_to_ebitda,
			price_to_book = EXCLUDED.price_to_book,
			fcf_yield = EXCLUDED.fcf_yield,
			profit_margin = EXCLUDED.profit_margin,
			operating_margin_ttm = EXCLUDED.operating_margin_ttm,
			earnings_yoy = EXCLUDED.earnings_yoy,
			revenue_yoy = EXCLUDED.revenue_yoy,
			cash = EXCLUDED.cash,
			debt = EXCLUDED.debt,
			net_cash = EXCLUDED.net_cash,
			dividend_yield = EXCLUDED.dividend_yield,
			payout_ratio = EXCLUDED.payout_ratio,
			ex_div_date = EXCLUDED.ex_div_date,
			payout_date = EXCLUDED.payout_date
	`,
		ticker, date,
		snap.MarketCap, decimalPtr(snap.PETTM), decimalPtr(snap.PEFwd),
		decimalPtr(snap.PriceToSales), decimalPtr(snap.EVToEBITDA), decimalPtr(snap.PriceToBook), decimalPtr(snap.FCFYield),
		decimalPtr(snap.ProfitMargin), decimalPtr(snap.OperatingMarginTTM), decimalPtr(snap.EarningsYoY), decimalPtr(snap.RevenueYoY),
		snap.Cash, snap.Debt, snap.NetCash,
		decimalPtr(snap.DividendYield), decimalPtr(snap.PayoutRatio), snap.ExDivDate, snap.PayoutDate,
	)
	if err != nil {
		return fmt.Errorf("upserting snapshot for %s: %w", ticker, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ticker %s is not in the companies table", ticker)
	}

	return nil
}

// GetAllTickers returns all tickers from the companies table.
func (r *Repository) GetAllTickers(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, "SELECT ticker FROM companies ORDER BY ticker")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickers []string
	for rows.Next() {
		var ticker string
		if err := rows.Scan(&ticker); err != nil {
			return nil, err
		}
		tickers = append(tickers, ticker)
	}

	return tickers, rows.Err()
}

// CompanyExists checks if a company exists in the registry.
func (r *Repository) CompanyExists(ctx context.Context, ticker string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM companies WHERE ticker = $1)", ticker).Scan(&exists)
	return exists, err
}

// GetCompanyCount returns the number of companies in the registry.
func (r *Repository) GetCompanyCount(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM companies").Scan(&count)
	return count, err
}

// GetSnapshotCount returns the number of stored snapshots.
func (r *Repository) GetSnapshotCount(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM company_snapshots").Scan(&count)
	return count, err
}

// decimalPtr converts a *decimal.Decimal to interface{} for database insertion.
func decimalPtr(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return *d
}
