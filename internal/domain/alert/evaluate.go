package alert

import "fmt"

// Threshold 計算生效門檻價。百分比警報以均價為基準偏移，
// 其餘直接採用 target_value。avg_purchase_price 為 0 時門檻即為 0。
func (a Alert) Threshold(avgPurchasePrice float64) float64 {
	if a.IsPercentage {
		return avgPurchasePrice * (1 + a.TargetValue/100)
	}
	return a.TargetValue
}

// Evaluate 為純函式：判斷目前價格是否觸發警報，並回傳使用者訊息。
// buy/stop_loss 於價格跌破（<=）門檻時觸發，sell/take_profit 於突破（>=）時觸發。
func (a Alert) Evaluate(avgPurchasePrice, currentPrice float64) (bool, string) {
	threshold := a.Threshold(avgPurchasePrice)

	switch a.Type {
	case TypeTargetBuy:
		if currentPrice <= threshold {
			return true, fmt.Sprintf("El precio ha alcanzado tu objetivo de compra: $%.2f", currentPrice)
		}
	case TypeTargetSell:
		if currentPrice >= threshold {
			return true, fmt.Sprintf("El precio ha alcanzado tu objetivo de venta: $%.2f", currentPrice)
		}
	case TypeStopLoss:
		if currentPrice <= threshold {
			return true, fmt.Sprintf("¡STOP LOSS activado! Precio actual: $%.2f", currentPrice)
		}
	case TypeTakeProfit:
		if currentPrice >= threshold {
			return true, fmt.Sprintf("¡TAKE PROFIT alcanzado! Precio actual: $%.2f", currentPrice)
		}
	}
	return false, ""
}
