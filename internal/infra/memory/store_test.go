package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	appAlerts "invest-tracker/internal/application/alerts"
	appPortfolio "invest-tracker/internal/application/portfolio"
	alertDomain "invest-tracker/internal/domain/alert"
	"invest-tracker/internal/domain/portfolio"
	"invest-tracker/internal/domain/pricing"
)

func TestStore_AssetLifecycle(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	a := portfolio.Asset{
		ID:               "a-1",
		UserID:           "u-1",
		Type:             portfolio.AssetCEDEAR,
		Ticker:           "AAPL",
		Quantity:         10,
		AvgPurchasePrice: 150,
		CreatedAt:        time.Now(),
	}
	if err := s.InsertAsset(ctx, a); err != nil {
		t.Fatalf("InsertAsset failed: %v", err)
	}

	got, err := s.FindAsset(ctx, "a-1", "u-1")
	if err != nil {
		t.Fatalf("FindAsset failed: %v", err)
	}
	if got.Ticker != "AAPL" {
		t.Errorf("unexpected asset: %+v", got)
	}

	// 非擁有者視同不存在
	if _, err := s.FindAsset(ctx, "a-1", "u-2"); !errors.Is(err, appPortfolio.ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}

	if err := s.DeleteAsset(ctx, "a-1", "u-1"); err != nil {
		t.Fatalf("DeleteAsset failed: %v", err)
	}
	if _, err := s.FindAsset(ctx, "a-1", "u-1"); !errors.Is(err, appPortfolio.ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound after delete, got %v", err)
	}
}

func TestStore_DeleteAlertsByAsset(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	for _, id := range []string{"al-1", "al-2"} {
		s.InsertAlert(ctx, alertDomain.Alert{ID: id, UserID: "u-1", AssetID: "a-1", Type: alertDomain.TypeStopLoss, IsActive: true})
	}
	s.InsertAlert(ctx, alertDomain.Alert{ID: "al-3", UserID: "u-1", AssetID: "a-2", Type: alertDomain.TypeTargetBuy, IsActive: true})

	if err := s.DeleteAlertsByAsset(ctx, "a-1"); err != nil {
		t.Fatalf("DeleteAlertsByAsset failed: %v", err)
	}

	alerts, _ := s.ListAlertsByUser(ctx, "u-1")
	if len(alerts) != 1 || alerts[0].ID != "al-3" {
		t.Errorf("unexpected remaining alerts: %+v", alerts)
	}
}

func TestStore_Deactivate(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	s.InsertAlert(ctx, alertDomain.Alert{ID: "al-1", UserID: "u-1", AssetID: "a-1", Type: alertDomain.TypeTakeProfit, IsActive: true})

	if err := s.Deactivate(ctx, "al-1"); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}
	active, _ := s.ListActiveByAsset(ctx, "a-1")
	if len(active) != 0 {
		t.Errorf("expected no active alerts, got %+v", active)
	}

	// 不存在的警報不視為錯誤
	if err := s.Deactivate(ctx, "missing"); err != nil {
		t.Fatalf("Deactivate on missing alert failed: %v", err)
	}
}

func TestStore_UpsertLatest_KeepsNewer(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	newer := time.Now()
	older := newer.Add(-time.Hour)

	s.UpsertLatest(ctx, pricing.Latest{Ticker: "AAPL", Price: 205, UpdatedAt: newer})
	s.UpsertLatest(ctx, pricing.Latest{Ticker: "AAPL", Price: 190, UpdatedAt: older})

	l, err := s.LatestPrice(ctx, "AAPL")
	if err != nil {
		t.Fatalf("LatestPrice failed: %v", err)
	}
	if l.Price != 205 {
		t.Errorf("stale upsert overwrote projection: %+v", l)
	}

	if _, err := s.LatestPrice(ctx, "TSLA"); !errors.Is(err, pricing.ErrQuoteUnavailable) {
		t.Fatalf("expected ErrQuoteUnavailable, got %v", err)
	}
}

func TestStore_MarkNotificationRead(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	s.InsertNotification(ctx, alertDomain.Notification{ID: "n-1", UserID: "u-1", Title: "Alerta: AAPL - stop_loss"})

	if err := s.MarkNotificationRead(ctx, "n-1", "u-2"); !errors.Is(err, appAlerts.ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound for other user, got %v", err)
	}
	if err := s.MarkNotificationRead(ctx, "n-1", "u-1"); err != nil {
		t.Fatalf("MarkNotificationRead failed: %v", err)
	}

	list, _ := s.ListNotificationsByUser(ctx, "u-1")
	if len(list) != 1 || !list[0].Read {
		t.Errorf("notification not marked read: %+v", list)
	}
}

func TestStore_HistoryLimit(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 5; i++ {
		s.InsertHistory(ctx, alertDomain.History{
			ID:     string(rune('a' + i)),
			UserID: "u-1",
			SentAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	out, err := s.ListHistoryByUser(ctx, "u-1", 3)
	if err != nil {
		t.Fatalf("ListHistoryByUser failed: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(out))
	}
	if out[0].SentAt.Before(out[1].SentAt) {
		t.Error("history not sorted newest first")
	}
}
