package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	alertDomain "invest-tracker/internal/domain/alert"
)

// ResendMailer 透過 Resend HTTP API 寄送警報郵件。
type ResendMailer struct {
	apiKey     string
	sender     string
	baseURL    string
	httpClient *http.Client
}

func NewResendMailer(apiKey, sender string) *ResendMailer {
	return &ResendMailer{
		apiKey:  apiKey,
		sender:  sender,
		baseURL: "https://api.resend.com",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SendAlert 組出警報郵件並送出。寄送結果只回報給呼叫端記錄，
// 不影響警報本身的停用流程。
func (m *ResendMailer) SendAlert(ctx context.Context, to, ticker string, alertType alertDomain.Type, price float64, message string) error {
	if m == nil {
		return fmt.Errorf("resend mailer is nil")
	}
	if m.apiKey == "" {
		return fmt.Errorf("resend api key missing")
	}

	payload := map[string]interface{}{
		"from":    m.sender,
		"to":      []string{to},
		"subject": fmt.Sprintf("Alerta: %s - %s", ticker, alertType),
		"html":    alertHTML(ticker, alertType, price, message),
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("resend send failed status=%d body=%s", resp.StatusCode, string(raw))
	}
	log.Printf("[Mailer] alert email sent to %s for %s", to, ticker)
	return nil
}

func alertHTML(ticker string, alertType alertDomain.Type, price float64, message string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background-color: #4338ca; color: white; padding: 20px; text-align: center;">
      <h1>Alerta de Inversión</h1>
    </div>
    <div style="background-color: #f4f4f5; padding: 20px;">
      <div style="background-color: white; border-left: 4px solid #4338ca; padding: 15px;">
        <h2>Activo: %s</h2>
        <p><strong>Tipo de alerta:</strong> %s</p>
        <p><strong>Precio actual:</strong> <span style="font-size: 24px; color: #4338ca;">$%.2f</span></p>
        <p><strong>Mensaje:</strong> %s</p>
        <p><strong>Fecha y hora:</strong> %s</p>
      </div>
    </div>
    <div style="text-align: center; padding: 20px; font-size: 12px; color: #666;">
      <p>Este es un mensaje automático de tu sistema de seguimiento de inversiones.</p>
    </div>
  </div>
</body>
</html>`, ticker, alertType, price, message, time.Now().UTC().Format("2006-01-02 15:04:05 UTC"))
}

// NopMailer 在未設定郵件服務時使用：記錄後直接成功，
// 讓 dispatcher 的其餘步驟照常進行。
type NopMailer struct{}

func (NopMailer) SendAlert(ctx context.Context, to, ticker string, alertType alertDomain.Type, price float64, message string) error {
	log.Printf("[Mailer] mailer disabled, skipping email to %s for %s", to, ticker)
	return nil
}
