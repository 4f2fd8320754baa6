package alerts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	alertDomain "invest-tracker/internal/domain/alert"
	"invest-tracker/internal/domain/portfolio"
)

// ErrAlertNotFound 表示警報不存在或不屬於該使用者。
var ErrAlertNotFound = errors.New("alert not found")

// ErrNotificationNotFound 表示通知不存在或不屬於該使用者。
var ErrNotificationNotFound = errors.New("notification not found")

// AlertRepository 定義警報儲存介面。查無資料時回傳 ErrAlertNotFound。
type AlertRepository interface {
	InsertAlert(ctx context.Context, a alertDomain.Alert) error
	ListAlertsByUser(ctx context.Context, userID string) ([]alertDomain.Alert, error)
	ListAlertsByAsset(ctx context.Context, assetID string) ([]alertDomain.Alert, error)
	FindAlert(ctx context.Context, id, userID string) (alertDomain.Alert, error)
	UpdateAlert(ctx context.Context, a alertDomain.Alert) error
	DeleteAlert(ctx context.Context, id, userID string) error
}

// AssetFinder 驗證警報指向的資產屬於同一使用者。
type AssetFinder interface {
	FindAsset(ctx context.Context, id, userID string) (portfolio.Asset, error)
}

// HistoryReader 讀取使用者的觸發紀錄。
type HistoryReader interface {
	ListHistoryByUser(ctx context.Context, userID string, limit int) ([]alertDomain.History, error)
}

// NotificationStore 讀取與標記站內通知。
type NotificationStore interface {
	ListNotificationsByUser(ctx context.Context, userID string) ([]alertDomain.Notification, error)
	MarkNotificationRead(ctx context.Context, id, userID string) error
}

// AlertUseCase 提供警報 CRUD、觸發紀錄與站內通知查詢。
type AlertUseCase struct {
	alerts        AlertRepository
	assets        AssetFinder
	history       HistoryReader
	notifications NotificationStore
	now           func() time.Time
}

func NewAlertUseCase(alerts AlertRepository, assets AssetFinder, history HistoryReader, notifications NotificationStore) *AlertUseCase {
	return &AlertUseCase{
		alerts:        alerts,
		assets:        assets,
		history:       history,
		notifications: notifications,
		now:           time.Now,
	}
}

// CreateAlertInput 定義新增警報的欄位。
type CreateAlertInput struct {
	AssetID      string
	Type         alertDomain.Type
	TargetValue  float64
	IsPercentage bool
}

// Create 建立警報。資產必須屬於同一使用者，否則視同不存在。
func (uc *AlertUseCase) Create(ctx context.Context, userID string, input CreateAlertInput) (alertDomain.Alert, error) {
	if _, err := uc.assets.FindAsset(ctx, input.AssetID, userID); err != nil {
		return alertDomain.Alert{}, err
	}

	a := alertDomain.Alert{
		ID:           uuid.NewString(),
		UserID:       userID,
		AssetID:      input.AssetID,
		Type:         input.Type,
		TargetValue:  input.TargetValue,
		IsPercentage: input.IsPercentage,
		IsActive:     true,
		CreatedAt:    uc.now(),
	}
	if err := a.Validate(); err != nil {
		return alertDomain.Alert{}, err
	}
	if err := uc.alerts.InsertAlert(ctx, a); err != nil {
		return alertDomain.Alert{}, fmt.Errorf("insert alert: %w", err)
	}
	return a, nil
}

// ListByUser 回傳使用者的全部警報。
func (uc *AlertUseCase) ListByUser(ctx context.Context, userID string) ([]alertDomain.Alert, error) {
	return uc.alerts.ListAlertsByUser(ctx, userID)
}

// ListByAsset 回傳資產上的警報；先驗證資產歸屬。
func (uc *AlertUseCase) ListByAsset(ctx context.Context, assetID, userID string) ([]alertDomain.Alert, error) {
	if _, err := uc.assets.FindAsset(ctx, assetID, userID); err != nil {
		return nil, err
	}
	return uc.alerts.ListAlertsByAsset(ctx, assetID)
}

// UpdateAlertInput 只更新非 nil 欄位。注意 is_active 只能由這裡
// （使用者動作）或 dispatcher（觸發後停用）改變。
type UpdateAlertInput struct {
	Type         *alertDomain.Type
	TargetValue  *float64
	IsPercentage *bool
	IsActive     *bool
}

// Update 套用部分更新並重新驗證。
func (uc *AlertUseCase) Update(ctx context.Context, id, userID string, input UpdateAlertInput) (alertDomain.Alert, error) {
	a, err := uc.alerts.FindAlert(ctx, id, userID)
	if err != nil {
		return alertDomain.Alert{}, err
	}

	if input.Type != nil {
		a.Type = *input.Type
	}
	if input.TargetValue != nil {
		a.TargetValue = *input.TargetValue
	}
	if input.IsPercentage != nil {
		a.IsPercentage = *input.IsPercentage
	}
	if input.IsActive != nil {
		a.IsActive = *input.IsActive
	}

	if err := a.Validate(); err != nil {
		return alertDomain.Alert{}, err
	}
	if err := uc.alerts.UpdateAlert(ctx, a); err != nil {
		return alertDomain.Alert{}, fmt.Errorf("update alert: %w", err)
	}
	return a, nil
}

// Delete 刪除警報。
func (uc *AlertUseCase) Delete(ctx context.Context, id, userID string) error {
	return uc.alerts.DeleteAlert(ctx, id, userID)
}

const defaultHistoryLimit = 100

// History 回傳使用者最近的觸發紀錄（由新到舊）。
func (uc *AlertUseCase) History(ctx context.Context, userID string, limit int) ([]alertDomain.History, error) {
	if limit <= 0 || limit > defaultHistoryLimit {
		limit = defaultHistoryLimit
	}
	return uc.history.ListHistoryByUser(ctx, userID, limit)
}

// Notifications 回傳使用者的站內通知。
func (uc *AlertUseCase) Notifications(ctx context.Context, userID string) ([]alertDomain.Notification, error) {
	return uc.notifications.ListNotificationsByUser(ctx, userID)
}

// MarkRead 標記站內通知為已讀。
func (uc *AlertUseCase) MarkRead(ctx context.Context, id, userID string) error {
	return uc.notifications.MarkNotificationRead(ctx, id, userID)
}
