package portfolio

import (
	"fmt"
	"time"
)

// AssetType 列舉支援的資產類別（沿用產品側的分類字串）。
type AssetType string

const (
	AssetCEDEAR        AssetType = "CEDEAR"
	AssetShare         AssetType = "Acción"
	AssetCorporateBond AssetType = "Obligación Negociable"
)

// Asset 描述使用者持有的單一標的部位。
type Asset struct {
	ID               string
	UserID           string
	Type             AssetType
	Ticker           string
	Quantity         float64
	AvgPurchasePrice float64
	PurchaseDate     time.Time
	Market           string
	CreatedAt        time.Time
}

// ValidationError 收集多個驗證失敗原因。
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("asset validation failed: %v", e.Reasons)
}

// Validate 檢查欄位是否符合基本完整性條件。
func (a Asset) Validate() error {
	var reasons []string

	if a.UserID == "" {
		reasons = append(reasons, "user_id is required")
	}

	if a.Ticker == "" {
		reasons = append(reasons, "ticker is required")
	}

	switch a.Type {
	case AssetCEDEAR, AssetShare, AssetCorporateBond:
		// ok
	default:
		reasons = append(reasons, "unsupported asset type")
	}

	if a.Quantity <= 0 {
		reasons = append(reasons, "quantity must be > 0")
	}

	if a.AvgPurchasePrice < 0 {
		reasons = append(reasons, "avg_purchase_price must be >= 0")
	}

	if len(reasons) > 0 {
		return &ValidationError{Reasons: reasons}
	}

	return nil
}

// Investment 回傳投入成本。
func (a Asset) Investment() float64 {
	return a.Quantity * a.AvgPurchasePrice
}
