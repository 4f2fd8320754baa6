package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"invest-tracker/internal/domain/pricing"
)

// PriceRepository 定義價格儲存介面。
type PriceRepository interface {
	InsertSample(ctx context.Context, sample pricing.Sample) error
	UpsertLatest(ctx context.Context, latest pricing.Latest) error
}

// Recorder 負責保存每次抓到的報價：追加歷史樣本並更新最新價投影。
// 投影以 timestamp 做 last-write-wins，同一筆重送不會造成重複。
type Recorder struct {
	repo PriceRepository
}

func NewRecorder(repo PriceRepository) *Recorder {
	return &Recorder{repo: repo}
}

// Record 寫入一筆抓價結果。歷史樣本寫入失敗不影響投影更新，
// 兩者各自回報錯誤由呼叫端記錄。
func (r *Recorder) Record(ctx context.Context, ticker string, price float64, at time.Time) error {
	sample := pricing.Sample{
		ID:        uuid.NewString(),
		Ticker:    ticker,
		Price:     price,
		Timestamp: at,
	}
	if err := sample.Validate(); err != nil {
		return fmt.Errorf("invalid price sample: %w", err)
	}

	var firstErr error
	if err := r.repo.InsertSample(ctx, sample); err != nil {
		firstErr = fmt.Errorf("insert price sample: %w", err)
	}
	if err := r.repo.UpsertLatest(ctx, pricing.Latest{
		Ticker:    ticker,
		Price:     price,
		UpdatedAt: at,
	}); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("upsert latest price: %w", err)
	}
	return firstErr
}
