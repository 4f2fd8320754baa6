package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"invest-tracker/internal/domain/pricing"
	"invest-tracker/internal/infrastructure/config"
)

// YahooClient 從 Yahoo Finance chart API 抓取最新成交價。
// 任何失敗（網路、HTTP 錯誤、空資料）都視為「暫無報價」：
// 記錄後回傳 pricing.ErrQuoteUnavailable，由排程器跳過該 ticker。
// 不在這層重試，錯過的 tick 由下個週期補上。
type YahooClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewYahooClient 建立報價客戶端。
func NewYahooClient(cfg config.QuotesConfig) *YahooClient {
	return &YahooClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				Currency           string  `json:"currency"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchPrice 取得單一 ticker 的最新價。
func (c *YahooClient) FetchPrice(ctx context.Context, ticker string) (float64, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", c.baseURL, url.PathEscape(ticker))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, c.unavailable(ticker, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; invest-tracker/1.0)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, c.unavailable(ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, c.unavailable(ticker, fmt.Errorf("http %d", resp.StatusCode))
	}

	var body chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, c.unavailable(ticker, err)
	}
	if body.Chart.Error != nil {
		return 0, c.unavailable(ticker, fmt.Errorf("%s: %s", body.Chart.Error.Code, body.Chart.Error.Description))
	}
	if len(body.Chart.Result) == 0 {
		return 0, c.unavailable(ticker, fmt.Errorf("empty result"))
	}

	price := body.Chart.Result[0].Meta.RegularMarketPrice
	if price <= 0 {
		return 0, c.unavailable(ticker, fmt.Errorf("no market price"))
	}
	return price, nil
}

func (c *YahooClient) unavailable(ticker string, cause error) error {
	log.Printf("[Quotes] %s: %v", ticker, cause)
	return pricing.ErrQuoteUnavailable
}
