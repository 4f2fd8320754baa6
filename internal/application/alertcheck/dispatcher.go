package alertcheck

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	alertDomain "invest-tracker/internal/domain/alert"
	"invest-tracker/internal/domain/portfolio"
)

// fire 執行觸發後的副作用：郵件寄送、稽核紀錄、站內通知、停用警報。
// 各步驟互不牽連：寄送失敗只記錄，仍要停用警報，否則同一條件下個 tick
// 會再次成立並重複觸發。寧可漏一封信，也不能重複轟炸使用者。
func (e *Engine) fire(ctx context.Context, al alertDomain.Alert, asset portfolio.Asset, price float64, message string) {
	now := e.now()

	user, err := e.users.FindByID(ctx, al.UserID)
	if err != nil {
		log.Printf("[Checker] find user %s for alert %s: %v", al.UserID, al.ID, err)
	} else if err := e.mailer.SendAlert(ctx, user.Email, asset.Ticker, al.Type, price, message); err != nil {
		log.Printf("[Checker] email delivery for alert %s failed: %v", al.ID, err)
	}

	if err := e.history.InsertHistory(ctx, alertDomain.History{
		ID:           uuid.NewString(),
		UserID:       al.UserID,
		AssetID:      asset.ID,
		Ticker:       asset.Ticker,
		Type:         al.Type,
		CurrentPrice: price,
		Message:      message,
		SentAt:       now,
	}); err != nil {
		log.Printf("[Checker] insert history for alert %s: %v", al.ID, err)
	}

	if err := e.notifications.InsertNotification(ctx, alertDomain.Notification{
		ID:        uuid.NewString(),
		UserID:    al.UserID,
		Title:     fmt.Sprintf("Alerta: %s - %s", asset.Ticker, al.Type),
		Message:   message,
		Ticker:    asset.Ticker,
		Price:     price,
		CreatedAt: now,
	}); err != nil {
		log.Printf("[Checker] insert notification for alert %s: %v", al.ID, err)
	}

	if err := e.alerts.Deactivate(ctx, al.ID); err != nil {
		log.Printf("[Checker] deactivate alert %s: %v", al.ID, err)
	}
}
