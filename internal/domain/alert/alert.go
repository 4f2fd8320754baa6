package alert

import (
	"fmt"
	"time"
)

// Type 列舉警報類型。
type Type string

const (
	TypeTargetBuy  Type = "target_buy"
	TypeTargetSell Type = "target_sell"
	TypeStopLoss   Type = "stop_loss"
	TypeTakeProfit Type = "take_profit"
)

// Alert 定義價格警報條件。警報一律指向同一使用者擁有的資產，
// 建立時為 active，觸發或使用者停用後不再自動恢復。
type Alert struct {
	ID           string
	UserID       string
	AssetID      string
	Type         Type
	TargetValue  float64
	IsPercentage bool
	IsActive     bool
	CreatedAt    time.Time
}

// Validate 基本欄位檢查。
func (a Alert) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("id is required")
	}
	if a.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if a.AssetID == "" {
		return fmt.Errorf("asset_id is required")
	}
	switch a.Type {
	case TypeTargetBuy, TypeTargetSell, TypeStopLoss, TypeTakeProfit:
	default:
		return fmt.Errorf("unsupported alert type: %s", a.Type)
	}
	return nil
}
