package httpapi

import (
	"time"

	alertDomain "invest-tracker/internal/domain/alert"
	authDomain "invest-tracker/internal/domain/auth"
	"invest-tracker/internal/domain/portfolio"
	pricingDomain "invest-tracker/internal/domain/pricing"

	appPortfolio "invest-tracker/internal/application/portfolio"
)

type userView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserView(u authDomain.User) userView {
	return userView{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}

type assetView struct {
	ID               string    `json:"id"`
	AssetType        string    `json:"asset_type"`
	Ticker           string    `json:"ticker"`
	Quantity         float64   `json:"quantity"`
	AvgPurchasePrice float64   `json:"avg_purchase_price"`
	PurchaseDate     time.Time `json:"purchase_date"`
	Market           string    `json:"market"`
	CreatedAt        time.Time `json:"created_at"`
}

func toAssetView(a portfolio.Asset) assetView {
	return assetView{
		ID:               a.ID,
		AssetType:        string(a.Type),
		Ticker:           a.Ticker,
		Quantity:         a.Quantity,
		AvgPurchasePrice: a.AvgPurchasePrice,
		PurchaseDate:     a.PurchaseDate,
		Market:           a.Market,
		CreatedAt:        a.CreatedAt,
	}
}

type assetWithPriceView struct {
	assetView
	CurrentPrice   *float64 `json:"current_price"`
	CurrentValue   *float64 `json:"current_value"`
	GainLoss       *float64 `json:"gain_loss"`
	GainLossPct    *float64 `json:"gain_loss_pct"`
	Recommendation string   `json:"recommendation"`
}

func toAssetWithPriceView(a appPortfolio.AssetWithPrice) assetWithPriceView {
	return assetWithPriceView{
		assetView:      toAssetView(a.Asset),
		CurrentPrice:   a.CurrentPrice,
		CurrentValue:   a.CurrentValue,
		GainLoss:       a.GainLoss,
		GainLossPct:    a.GainLossPct,
		Recommendation: a.Recommendation,
	}
}

type alertView struct {
	ID           string    `json:"id"`
	AssetID      string    `json:"asset_id"`
	AlertType    string    `json:"alert_type"`
	TargetValue  float64   `json:"target_value"`
	IsPercentage bool      `json:"is_percentage"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

func toAlertView(a alertDomain.Alert) alertView {
	return alertView{
		ID:           a.ID,
		AssetID:      a.AssetID,
		AlertType:    string(a.Type),
		TargetValue:  a.TargetValue,
		IsPercentage: a.IsPercentage,
		IsActive:     a.IsActive,
		CreatedAt:    a.CreatedAt,
	}
}

type historyView struct {
	ID           string    `json:"id"`
	AssetID      string    `json:"asset_id"`
	Ticker       string    `json:"ticker"`
	AlertType    string    `json:"alert_type"`
	CurrentPrice float64   `json:"current_price"`
	Message      string    `json:"message"`
	SentAt       time.Time `json:"sent_at"`
}

func toHistoryView(h alertDomain.History) historyView {
	return historyView{
		ID:           h.ID,
		AssetID:      h.AssetID,
		Ticker:       h.Ticker,
		AlertType:    string(h.Type),
		CurrentPrice: h.CurrentPrice,
		Message:      h.Message,
		SentAt:       h.SentAt,
	}
}

type notificationView struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Ticker    string    `json:"ticker"`
	Price     float64   `json:"price"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func toNotificationView(n alertDomain.Notification) notificationView {
	return notificationView{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Ticker:    n.Ticker,
		Price:     n.Price,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

type sampleView struct {
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

func toSampleView(s pricingDomain.Sample) sampleView {
	return sampleView{Price: s.Price, Timestamp: s.Timestamp}
}
