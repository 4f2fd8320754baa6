package alertcheck

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	alertDomain "invest-tracker/internal/domain/alert"
	authDomain "invest-tracker/internal/domain/auth"
	"invest-tracker/internal/domain/portfolio"
	"invest-tracker/internal/domain/pricing"
)

// AssetRepository 提供全系統的資產清單（跨使用者）。
type AssetRepository interface {
	ListAssets(ctx context.Context) ([]portfolio.Asset, error)
}

// AlertRepository 管理警報存取；Deactivate 是引擎內唯一改動 is_active 的地方。
type AlertRepository interface {
	ListActiveByAsset(ctx context.Context, assetID string) ([]alertDomain.Alert, error)
	Deactivate(ctx context.Context, alertID string) error
}

// HistoryRepository 寫入觸發稽核紀錄。
type HistoryRepository interface {
	InsertHistory(ctx context.Context, h alertDomain.History) error
}

// NotificationRepository 寫入站內通知。
type NotificationRepository interface {
	InsertNotification(ctx context.Context, n alertDomain.Notification) error
}

// UserRepository 查詢收件人資料。
type UserRepository interface {
	FindByID(ctx context.Context, id string) (authDomain.User, error)
}

// QuoteSource 抽象化外部報價來源。查不到價回傳 pricing.ErrQuoteUnavailable。
type QuoteSource interface {
	FetchPrice(ctx context.Context, ticker string) (float64, error)
}

// Mailer 寄送警報郵件。
type Mailer interface {
	SendAlert(ctx context.Context, to, ticker string, alertType alertDomain.Type, price float64, message string) error
}

// PriceRecorder 保存抓價結果。
type PriceRecorder interface {
	Record(ctx context.Context, ticker string, price float64, at time.Time) error
}

const defaultFetchLimit = 4

// Engine 執行一次完整的價格檢查與警報評估流程：
// 抓價階段以有界並發取得全部 ticker 的報價，評估階段循序處理每檔警報。
// 單一 ticker 或警報的失敗只記錄並跳過，不中斷整個 pass。
type Engine struct {
	assets        AssetRepository
	alerts        AlertRepository
	history       HistoryRepository
	notifications NotificationRepository
	users         UserRepository
	quotes        QuoteSource
	mailer        Mailer
	recorder      PriceRecorder
	fetchLimit    int
	now           func() time.Time
}

// NewEngine 建立警報評估引擎。fetchLimit <= 0 時採預設並發上限。
func NewEngine(
	assets AssetRepository,
	alerts AlertRepository,
	history HistoryRepository,
	notifications NotificationRepository,
	users UserRepository,
	quotes QuoteSource,
	mailer Mailer,
	recorder PriceRecorder,
	fetchLimit int,
) *Engine {
	if fetchLimit <= 0 {
		fetchLimit = defaultFetchLimit
	}
	return &Engine{
		assets:        assets,
		alerts:        alerts,
		history:       history,
		notifications: notifications,
		users:         users,
		quotes:        quotes,
		mailer:        mailer,
		recorder:      recorder,
		fetchLimit:    fetchLimit,
		now:           time.Now,
	}
}

// PassResult 統計單次 pass 的處理量。
type PassResult struct {
	Tickers   int
	Quoted    int
	Evaluated int
	Fired     int
}

// RunPass 執行一次完整 pass。只有載入資產清單失敗會整體失敗，
// 其餘錯誤都被隔離在個別 ticker / 警報內。
func (e *Engine) RunPass(ctx context.Context) (PassResult, error) {
	var res PassResult

	assets, err := e.assets.ListAssets(ctx)
	if err != nil {
		return res, fmt.Errorf("list assets: %w", err)
	}

	byTicker := make(map[string][]portfolio.Asset)
	for _, a := range assets {
		byTicker[a.Ticker] = append(byTicker[a.Ticker], a)
	}
	tickers := make([]string, 0, len(byTicker))
	for t := range byTicker {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	res.Tickers = len(tickers)

	prices := e.fetchPrices(ctx, tickers)
	res.Quoted = len(prices)

	for _, ticker := range tickers {
		price, ok := prices[ticker]
		if !ok {
			// 報價缺席：此 tick 跳過，最新價投影維持原值。
			continue
		}

		if err := e.recorder.Record(ctx, ticker, price, e.now()); err != nil {
			log.Printf("[Checker] record price %s: %v", ticker, err)
		}

		for _, asset := range byTicker[ticker] {
			alerts, err := e.alerts.ListActiveByAsset(ctx, asset.ID)
			if err != nil {
				log.Printf("[Checker] list alerts for asset %s: %v", asset.ID, err)
				continue
			}
			for _, al := range alerts {
				res.Evaluated++
				triggered, message := al.Evaluate(asset.AvgPurchasePrice, price)
				if !triggered {
					continue
				}
				e.fire(ctx, al, asset, price, message)
				res.Fired++
			}
		}
	}

	return res, nil
}

// fetchPrices 以有界並發抓取所有 ticker 的最新價，回傳成功者的價格表。
// 並發上限保護外部來源的流量限制；失敗的 ticker 不會出現在結果中。
func (e *Engine) fetchPrices(ctx context.Context, tickers []string) map[string]float64 {
	var mu sync.Mutex
	prices := make(map[string]float64, len(tickers))

	g := new(errgroup.Group)
	g.SetLimit(e.fetchLimit)
	for _, ticker := range tickers {
		ticker := ticker
		g.Go(func() error {
			price, err := e.quotes.FetchPrice(ctx, ticker)
			if err != nil {
				if errors.Is(err, pricing.ErrQuoteUnavailable) {
					log.Printf("[Checker] no quote for %s, skipping this pass", ticker)
				} else {
					log.Printf("[Checker] fetch price %s: %v", ticker, err)
				}
				return nil
			}
			mu.Lock()
			prices[ticker] = price
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return prices
}
