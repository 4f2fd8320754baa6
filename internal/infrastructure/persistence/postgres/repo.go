package postgres

import (
	"context"
	"database/sql"
	"errors"

	appPortfolio "invest-tracker/internal/application/portfolio"
	"invest-tracker/internal/domain/portfolio"
	"invest-tracker/internal/domain/pricing"
)

// Repo 提供 Postgres 資料存取，涵蓋資產、警報、價格與通知的讀寫。
type Repo struct {
	db *sql.DB
}

// NewRepo 建立 Postgres 資料存取實例。
func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// --- Assets ---

// InsertAsset 寫入新資產。
func (r *Repo) InsertAsset(ctx context.Context, a portfolio.Asset) error {
	const q = `
INSERT INTO assets (id, user_id, asset_type, ticker, quantity, avg_purchase_price, purchase_date, market, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`
	_, err := r.db.ExecContext(ctx, q,
		a.ID, a.UserID, string(a.Type), a.Ticker, a.Quantity, a.AvgPurchasePrice, a.PurchaseDate, a.Market, a.CreatedAt)
	return err
}

// ListAssets 取全系統資產（排程器用，跨使用者）。
func (r *Repo) ListAssets(ctx context.Context) ([]portfolio.Asset, error) {
	const q = `
SELECT id, user_id, asset_type, ticker, quantity, avg_purchase_price, purchase_date, market, created_at
FROM assets
ORDER BY ticker;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssets(rows)
}

// ListAssetsByUser 取使用者的資產（新到舊）。
func (r *Repo) ListAssetsByUser(ctx context.Context, userID string) ([]portfolio.Asset, error) {
	const q = `
SELECT id, user_id, asset_type, ticker, quantity, avg_purchase_price, purchase_date, market, created_at
FROM assets
WHERE user_id = $1
ORDER BY created_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssets(rows)
}

// FindAsset 以 id + user_id 查單一資產；非本人持有視同不存在。
func (r *Repo) FindAsset(ctx context.Context, id, userID string) (portfolio.Asset, error) {
	const q = `
SELECT id, user_id, asset_type, ticker, quantity, avg_purchase_price, purchase_date, market, created_at
FROM assets
WHERE id = $1 AND user_id = $2;
`
	var a portfolio.Asset
	var typ string
	err := r.db.QueryRowContext(ctx, q, id, userID).Scan(
		&a.ID, &a.UserID, &typ, &a.Ticker, &a.Quantity, &a.AvgPurchasePrice, &a.PurchaseDate, &a.Market, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return portfolio.Asset{}, appPortfolio.ErrAssetNotFound
	}
	if err != nil {
		return portfolio.Asset{}, err
	}
	a.Type = portfolio.AssetType(typ)
	return a, nil
}

// UpdateAsset 覆寫可變欄位。
func (r *Repo) UpdateAsset(ctx context.Context, a portfolio.Asset) error {
	const q = `
UPDATE assets
SET asset_type = $3, ticker = $4, quantity = $5, avg_purchase_price = $6, purchase_date = $7, market = $8
WHERE id = $1 AND user_id = $2;
`
	res, err := r.db.ExecContext(ctx, q,
		a.ID, a.UserID, string(a.Type), a.Ticker, a.Quantity, a.AvgPurchasePrice, a.PurchaseDate, a.Market)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appPortfolio.ErrAssetNotFound
	}
	return nil
}

// DeleteAsset 刪除資產；附掛警報由 usecase 另行清除。
func (r *Repo) DeleteAsset(ctx context.Context, id, userID string) error {
	const q = `DELETE FROM assets WHERE id = $1 AND user_id = $2;`
	res, err := r.db.ExecContext(ctx, q, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appPortfolio.ErrAssetNotFound
	}
	return nil
}

func scanAssets(rows *sql.Rows) ([]portfolio.Asset, error) {
	var out []portfolio.Asset
	for rows.Next() {
		var a portfolio.Asset
		var typ string
		if err := rows.Scan(&a.ID, &a.UserID, &typ, &a.Ticker, &a.Quantity, &a.AvgPurchasePrice, &a.PurchaseDate, &a.Market, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Type = portfolio.AssetType(typ)
		out = append(out, a)
	}
	return out, rows.Err()
}

// --- Prices ---

// InsertSample 追加一筆抓價樣本。
func (r *Repo) InsertSample(ctx context.Context, s pricing.Sample) error {
	const q = `
INSERT INTO price_history (id, ticker, price, fetched_at)
VALUES ($1, $2, $3, $4);
`
	_, err := r.db.ExecContext(ctx, q, s.ID, s.Ticker, s.Price, s.Timestamp)
	return err
}

// UpsertLatest 以 ticker 為鍵更新最新價投影；只有較新的 timestamp 會覆寫，
// 同一筆重送不會改變結果。
func (r *Repo) UpsertLatest(ctx context.Context, l pricing.Latest) error {
	const q = `
INSERT INTO price_cache (ticker, price, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (ticker)
DO UPDATE SET price = EXCLUDED.price, updated_at = EXCLUDED.updated_at
WHERE price_cache.updated_at <= EXCLUDED.updated_at;
`
	_, err := r.db.ExecContext(ctx, q, l.Ticker, l.Price, l.UpdatedAt)
	return err
}

// LatestPrice 取單一 ticker 的最新價投影。
func (r *Repo) LatestPrice(ctx context.Context, ticker string) (pricing.Latest, error) {
	const q = `SELECT ticker, price, updated_at FROM price_cache WHERE ticker = $1;`
	var l pricing.Latest
	err := r.db.QueryRowContext(ctx, q, ticker).Scan(&l.Ticker, &l.Price, &l.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return pricing.Latest{}, pricing.ErrQuoteUnavailable
	}
	if err != nil {
		return pricing.Latest{}, err
	}
	return l, nil
}

// LatestPrices 取全部最新價投影。
func (r *Repo) LatestPrices(ctx context.Context) (map[string]float64, error) {
	const q = `SELECT ticker, price FROM price_cache;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]float64)
	for rows.Next() {
		var ticker string
		var price float64
		if err := rows.Scan(&ticker, &price); err != nil {
			return nil, err
		}
		out[ticker] = price
	}
	return out, rows.Err()
}

// ListSamples 取某 ticker 的抓價歷史（新到舊）。
func (r *Repo) ListSamples(ctx context.Context, ticker string, limit int) ([]pricing.Sample, error) {
	const q = `
SELECT id, ticker, price, fetched_at
FROM price_history
WHERE ticker = $1
ORDER BY fetched_at DESC
LIMIT $2;
`
	rows, err := r.db.QueryContext(ctx, q, ticker, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []pricing.Sample
	for rows.Next() {
		var s pricing.Sample
		if err := rows.Scan(&s.ID, &s.Ticker, &s.Price, &s.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
