package pricing

import (
	"errors"
	"fmt"
	"time"
)

// ErrQuoteUnavailable 表示報價來源目前查不到該 ticker 的價格。
// 這是預期中的結果（休市、下市、來源暫時故障），呼叫端應跳過而非中斷。
var ErrQuoteUnavailable = errors.New("quote unavailable")

// Sample 為單次抓價紀錄，只增不改。
type Sample struct {
	ID        string
	Ticker    string
	Price     float64
	Timestamp time.Time
}

// Validate 檢查欄位是否符合基本完整性條件。
func (s Sample) Validate() error {
	if s.Ticker == "" {
		return fmt.Errorf("ticker is required")
	}
	if s.Price <= 0 {
		return fmt.Errorf("price must be > 0")
	}
	if s.Timestamp.IsZero() {
		return fmt.Errorf("timestamp is required")
	}
	return nil
}

// Latest 為每個 ticker 的最新價投影，抓價成功時以 last-write-wins 更新。
type Latest struct {
	Ticker    string
	Price     float64
	UpdatedAt time.Time
}
