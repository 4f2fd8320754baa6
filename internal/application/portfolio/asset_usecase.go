package portfolio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"invest-tracker/internal/domain/portfolio"
	"invest-tracker/internal/domain/pricing"
)

// ErrAssetNotFound 表示資產不存在或不屬於該使用者。
var ErrAssetNotFound = errors.New("asset not found")

// AssetRepository 定義資產儲存介面。查無資料時回傳 ErrAssetNotFound。
type AssetRepository interface {
	InsertAsset(ctx context.Context, asset portfolio.Asset) error
	ListAssetsByUser(ctx context.Context, userID string) ([]portfolio.Asset, error)
	FindAsset(ctx context.Context, id, userID string) (portfolio.Asset, error)
	UpdateAsset(ctx context.Context, asset portfolio.Asset) error
	DeleteAsset(ctx context.Context, id, userID string) error
}

// AlertCleaner 讓刪除資產時一併清掉附掛的警報。
type AlertCleaner interface {
	DeleteAlertsByAsset(ctx context.Context, assetID string) error
}

// LatestPriceReader 讀取引擎維護的最新價投影。
type LatestPriceReader interface {
	LatestPrice(ctx context.Context, ticker string) (pricing.Latest, error)
	LatestPrices(ctx context.Context) (map[string]float64, error)
}

// AssetUseCase 提供資產 CRUD 與投資組合彙總。
type AssetUseCase struct {
	assets AssetRepository
	alerts AlertCleaner
	prices LatestPriceReader
	now    func() time.Time
}

func NewAssetUseCase(assets AssetRepository, alerts AlertCleaner, prices LatestPriceReader) *AssetUseCase {
	return &AssetUseCase{
		assets: assets,
		alerts: alerts,
		prices: prices,
		now:    time.Now,
	}
}

// CreateAssetInput 定義新增資產的欄位。
type CreateAssetInput struct {
	Type             portfolio.AssetType
	Ticker           string
	Quantity         float64
	AvgPurchasePrice float64
	PurchaseDate     time.Time
	Market           string
}

// Create 建立資產並驗證欄位。
func (uc *AssetUseCase) Create(ctx context.Context, userID string, input CreateAssetInput) (portfolio.Asset, error) {
	asset := portfolio.Asset{
		ID:               uuid.NewString(),
		UserID:           userID,
		Type:             input.Type,
		Ticker:           input.Ticker,
		Quantity:         input.Quantity,
		AvgPurchasePrice: input.AvgPurchasePrice,
		PurchaseDate:     input.PurchaseDate,
		Market:           input.Market,
		CreatedAt:        uc.now(),
	}
	if err := asset.Validate(); err != nil {
		return portfolio.Asset{}, err
	}
	if err := uc.assets.InsertAsset(ctx, asset); err != nil {
		return portfolio.Asset{}, fmt.Errorf("insert asset: %w", err)
	}
	return asset, nil
}

// List 回傳使用者的全部資產。
func (uc *AssetUseCase) List(ctx context.Context, userID string) ([]portfolio.Asset, error) {
	return uc.assets.ListAssetsByUser(ctx, userID)
}

// Get 取得單一資產；非擁有者視同不存在。
func (uc *AssetUseCase) Get(ctx context.Context, id, userID string) (portfolio.Asset, error) {
	return uc.assets.FindAsset(ctx, id, userID)
}

// UpdateAssetInput 只更新非 nil 欄位。
type UpdateAssetInput struct {
	Type             *portfolio.AssetType
	Ticker           *string
	Quantity         *float64
	AvgPurchasePrice *float64
	PurchaseDate     *time.Time
	Market           *string
}

// Update 套用部分更新並重新驗證。
func (uc *AssetUseCase) Update(ctx context.Context, id, userID string, input UpdateAssetInput) (portfolio.Asset, error) {
	asset, err := uc.assets.FindAsset(ctx, id, userID)
	if err != nil {
		return portfolio.Asset{}, err
	}

	if input.Type != nil {
		asset.Type = *input.Type
	}
	if input.Ticker != nil {
		asset.Ticker = *input.Ticker
	}
	if input.Quantity != nil {
		asset.Quantity = *input.Quantity
	}
	if input.AvgPurchasePrice != nil {
		asset.AvgPurchasePrice = *input.AvgPurchasePrice
	}
	if input.PurchaseDate != nil {
		asset.PurchaseDate = *input.PurchaseDate
	}
	if input.Market != nil {
		asset.Market = *input.Market
	}

	if err := asset.Validate(); err != nil {
		return portfolio.Asset{}, err
	}
	if err := uc.assets.UpdateAsset(ctx, asset); err != nil {
		return portfolio.Asset{}, fmt.Errorf("update asset: %w", err)
	}
	return asset, nil
}

// Delete 刪除資產並連帶清除其警報。
func (uc *AssetUseCase) Delete(ctx context.Context, id, userID string) error {
	if err := uc.assets.DeleteAsset(ctx, id, userID); err != nil {
		return err
	}
	if err := uc.alerts.DeleteAlertsByAsset(ctx, id); err != nil {
		return fmt.Errorf("delete alerts of asset %s: %w", id, err)
	}
	return nil
}

// Summary 彙總投資組合現況。
type Summary struct {
	TotalInvestment  float64
	CurrentValue     float64
	TotalGainLoss    float64
	TotalGainLossPct float64
	AssetsCount      int
}

// Summarize 以最新價投影計算現值；查無報價的資產以成本計入。
func (uc *AssetUseCase) Summarize(ctx context.Context, userID string) (Summary, error) {
	assets, err := uc.assets.ListAssetsByUser(ctx, userID)
	if err != nil {
		return Summary{}, fmt.Errorf("list assets: %w", err)
	}
	latest, err := uc.prices.LatestPrices(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load latest prices: %w", err)
	}

	var sum Summary
	sum.AssetsCount = len(assets)
	for _, a := range assets {
		investment := a.Investment()
		sum.TotalInvestment += investment
		if price, ok := latest[a.Ticker]; ok {
			sum.CurrentValue += a.Quantity * price
		} else {
			sum.CurrentValue += investment
		}
	}
	sum.TotalGainLoss = sum.CurrentValue - sum.TotalInvestment
	if sum.TotalInvestment > 0 {
		sum.TotalGainLossPct = sum.TotalGainLoss / sum.TotalInvestment * 100
	}
	return sum, nil
}

// AssetWithPrice 為單一資產的現值視圖。
type AssetWithPrice struct {
	Asset          portfolio.Asset
	CurrentPrice   *float64
	CurrentValue   *float64
	GainLoss       *float64
	GainLossPct    *float64
	Recommendation string
}

// ListWithPrices 回傳帶最新價與損益的資產清單。
func (uc *AssetUseCase) ListWithPrices(ctx context.Context, userID string) ([]AssetWithPrice, error) {
	assets, err := uc.assets.ListAssetsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}

	out := make([]AssetWithPrice, 0, len(assets))
	for _, a := range assets {
		latest, err := uc.prices.LatestPrice(ctx, a.Ticker)
		if err != nil {
			out = append(out, AssetWithPrice{
				Asset:          a,
				Recommendation: "Precio no disponible",
			})
			continue
		}

		price := latest.Price
		currentValue := a.Quantity * price
		investment := a.Investment()
		gainLoss := currentValue - investment
		var gainLossPct float64
		if investment > 0 {
			gainLossPct = gainLoss / investment * 100
		}

		recommendation := "Mantener"
		switch {
		case gainLossPct > 20:
			recommendation = "Considerar venta (ganancia >20%)"
		case gainLossPct < -10:
			recommendation = "Revisar posición (pérdida >10%)"
		}

		out = append(out, AssetWithPrice{
			Asset:          a,
			CurrentPrice:   &price,
			CurrentValue:   &currentValue,
			GainLoss:       &gainLoss,
			GainLossPct:    &gainLossPct,
			Recommendation: recommendation,
		})
	}
	return out, nil
}
