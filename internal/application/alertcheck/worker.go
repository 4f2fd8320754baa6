package alertcheck

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// ErrPassInProgress 表示已有一輪檢查在執行中。手動觸發不排隊等待，
// 直接回報讓呼叫端稍後重試。
var ErrPassInProgress = errors.New("alert check pass already in progress")

// Worker 以固定週期驅動 Engine。同一時間只允許一輪 pass：
// 計時到點時若上一輪還沒結束，該次 tick 直接跳過，
// 避免兩輪併發對同一警報重複評估。
type Worker struct {
	engine   *Engine
	interval time.Duration
	stopChan chan struct{}
	passMu   sync.Mutex
}

// NewWorker 建立背景工作者。interval <= 0 時預設 15 分鐘。
func NewWorker(engine *Engine, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &Worker{
		engine:   engine,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start 啟動迴圈。
func (w *Worker) Start() {
	log.Printf("[Checker] starting price check worker with interval: %v", w.interval)
	ticker := time.NewTicker(w.interval)
	go func() {
		// 啟動後立即執行一次
		w.runOnce()

		for {
			select {
			case <-ticker.C:
				w.runOnce()
			case <-w.stopChan:
				ticker.Stop()
				return
			}
		}
	}()
}

// Stop 停止迴圈。執行中的 pass 會跑完，只是不再排下一輪。
func (w *Worker) Stop() {
	close(w.stopChan)
}

// RunNow 同步執行一輪 pass，供管理端點手動觸發。
// 若已有 pass 在跑則回傳 ErrPassInProgress。
func (w *Worker) RunNow(ctx context.Context) (PassResult, error) {
	if !w.passMu.TryLock() {
		return PassResult{}, ErrPassInProgress
	}
	defer w.passMu.Unlock()
	return w.engine.RunPass(ctx)
}

func (w *Worker) runOnce() {
	if !w.passMu.TryLock() {
		log.Printf("[Checker] previous pass still running, skipping this tick")
		return
	}
	defer w.passMu.Unlock()

	ctx := context.Background()
	start := time.Now()
	res, err := w.engine.RunPass(ctx)
	if err != nil {
		log.Printf("[Checker] pass failed: %v", err)
		return
	}
	log.Printf("[Checker] pass done tickers=%d quoted=%d evaluated=%d fired=%d duration=%s",
		res.Tickers, res.Quoted, res.Evaluated, res.Fired, time.Since(start))
}
