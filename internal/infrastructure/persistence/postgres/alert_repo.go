package postgres

import (
	"context"
	"database/sql"
	"errors"

	appAlerts "invest-tracker/internal/application/alerts"
	alertDomain "invest-tracker/internal/domain/alert"
)

// --- Alerts ---

// InsertAlert 寫入新警報。
func (r *Repo) InsertAlert(ctx context.Context, a alertDomain.Alert) error {
	const q = `
INSERT INTO alerts (id, user_id, asset_id, alert_type, target_value, is_percentage, is_active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`
	_, err := r.db.ExecContext(ctx, q,
		a.ID, a.UserID, a.AssetID, string(a.Type), a.TargetValue, a.IsPercentage, a.IsActive, a.CreatedAt)
	return err
}

// ListAlertsByUser 取使用者的全部警報（新到舊）。
func (r *Repo) ListAlertsByUser(ctx context.Context, userID string) ([]alertDomain.Alert, error) {
	const q = `
SELECT id, user_id, asset_id, alert_type, target_value, is_percentage, is_active, created_at
FROM alerts
WHERE user_id = $1
ORDER BY created_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAlerts(rows)
}

// ListAlertsByAsset 取指定資產的全部警報。
func (r *Repo) ListAlertsByAsset(ctx context.Context, assetID string) ([]alertDomain.Alert, error) {
	const q = `
SELECT id, user_id, asset_id, alert_type, target_value, is_percentage, is_active, created_at
FROM alerts
WHERE asset_id = $1
ORDER BY created_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q, assetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAlerts(rows)
}

// ListActiveByAsset 取指定資產的現役警報，排程器評估用。
func (r *Repo) ListActiveByAsset(ctx context.Context, assetID string) ([]alertDomain.Alert, error) {
	const q = `
SELECT id, user_id, asset_id, alert_type, target_value, is_percentage, is_active, created_at
FROM alerts
WHERE asset_id = $1 AND is_active = TRUE;
`
	rows, err := r.db.QueryContext(ctx, q, assetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAlerts(rows)
}

// FindAlert 以 id + user_id 查單一警報。
func (r *Repo) FindAlert(ctx context.Context, id, userID string) (alertDomain.Alert, error) {
	const q = `
SELECT id, user_id, asset_id, alert_type, target_value, is_percentage, is_active, created_at
FROM alerts
WHERE id = $1 AND user_id = $2;
`
	var a alertDomain.Alert
	var typ string
	err := r.db.QueryRowContext(ctx, q, id, userID).Scan(
		&a.ID, &a.UserID, &a.AssetID, &typ, &a.TargetValue, &a.IsPercentage, &a.IsActive, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return alertDomain.Alert{}, appAlerts.ErrAlertNotFound
	}
	if err != nil {
		return alertDomain.Alert{}, err
	}
	a.Type = alertDomain.Type(typ)
	return a, nil
}

// UpdateAlert 覆寫警報條件與啟用狀態。
func (r *Repo) UpdateAlert(ctx context.Context, a alertDomain.Alert) error {
	const q = `
UPDATE alerts
SET alert_type = $3, target_value = $4, is_percentage = $5, is_active = $6
WHERE id = $1 AND user_id = $2;
`
	res, err := r.db.ExecContext(ctx, q,
		a.ID, a.UserID, string(a.Type), a.TargetValue, a.IsPercentage, a.IsActive)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appAlerts.ErrAlertNotFound
	}
	return nil
}

// DeleteAlert 刪除單一警報。
func (r *Repo) DeleteAlert(ctx context.Context, id, userID string) error {
	const q = `DELETE FROM alerts WHERE id = $1 AND user_id = $2;`
	res, err := r.db.ExecContext(ctx, q, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appAlerts.ErrAlertNotFound
	}
	return nil
}

// DeleteAlertsByAsset 刪除資產附掛的全部警報；刪資產時的清理步驟。
func (r *Repo) DeleteAlertsByAsset(ctx context.Context, assetID string) error {
	const q = `DELETE FROM alerts WHERE asset_id = $1;`
	_, err := r.db.ExecContext(ctx, q, assetID)
	return err
}

// Deactivate 關閉警報；觸發後由 dispatcher 呼叫，不存在時不視為錯誤。
func (r *Repo) Deactivate(ctx context.Context, alertID string) error {
	const q = `UPDATE alerts SET is_active = FALSE WHERE id = $1;`
	_, err := r.db.ExecContext(ctx, q, alertID)
	return err
}

func scanAlerts(rows *sql.Rows) ([]alertDomain.Alert, error) {
	var out []alertDomain.Alert
	for rows.Next() {
		var a alertDomain.Alert
		var typ string
		if err := rows.Scan(&a.ID, &a.UserID, &a.AssetID, &typ, &a.TargetValue, &a.IsPercentage, &a.IsActive, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Type = alertDomain.Type(typ)
		out = append(out, a)
	}
	return out, rows.Err()
}

// --- History ---

// InsertHistory 寫入觸發稽核紀錄。
func (r *Repo) InsertHistory(ctx context.Context, h alertDomain.History) error {
	const q = `
INSERT INTO alert_history (id, user_id, asset_id, ticker, alert_type, current_price, message, sent_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`
	_, err := r.db.ExecContext(ctx, q,
		h.ID, h.UserID, h.AssetID, h.Ticker, string(h.Type), h.CurrentPrice, h.Message, h.SentAt)
	return err
}

// ListHistoryByUser 取使用者的觸發紀錄（新到舊），上限由呼叫端決定。
func (r *Repo) ListHistoryByUser(ctx context.Context, userID string, limit int) ([]alertDomain.History, error) {
	const q = `
SELECT id, user_id, asset_id, ticker, alert_type, current_price, message, sent_at
FROM alert_history
WHERE user_id = $1
ORDER BY sent_at DESC
LIMIT $2;
`
	rows, err := r.db.QueryContext(ctx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []alertDomain.History
	for rows.Next() {
		var h alertDomain.History
		var typ string
		if err := rows.Scan(&h.ID, &h.UserID, &h.AssetID, &h.Ticker, &typ, &h.CurrentPrice, &h.Message, &h.SentAt); err != nil {
			return nil, err
		}
		h.Type = alertDomain.Type(typ)
		out = append(out, h)
	}
	return out, rows.Err()
}

// --- Notifications ---

// InsertNotification 寫入站內通知。
func (r *Repo) InsertNotification(ctx context.Context, n alertDomain.Notification) error {
	const q = `
INSERT INTO notifications (id, user_id, title, message, ticker, price, read, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`
	_, err := r.db.ExecContext(ctx, q,
		n.ID, n.UserID, n.Title, n.Message, n.Ticker, n.Price, n.Read, n.CreatedAt)
	return err
}

// ListNotificationsByUser 取使用者通知（新到舊）。
func (r *Repo) ListNotificationsByUser(ctx context.Context, userID string) ([]alertDomain.Notification, error) {
	const q = `
SELECT id, user_id, title, message, ticker, price, read, created_at
FROM notifications
WHERE user_id = $1
ORDER BY created_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []alertDomain.Notification
	for rows.Next() {
		var n alertDomain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Ticker, &n.Price, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkNotificationRead 將通知標記為已讀。
func (r *Repo) MarkNotificationRead(ctx context.Context, id, userID string) error {
	const q = `UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2;`
	res, err := r.db.ExecContext(ctx, q, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appAlerts.ErrNotificationNotFound
	}
	return nil
}
