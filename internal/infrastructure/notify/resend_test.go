package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	alertDomain "invest-tracker/internal/domain/alert"
)

func TestResendMailer_SendAlert(t *testing.T) {
	var gotAuth, gotPath string
	var gotPayload map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotPayload)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	mailer := NewResendMailer("key-123", "alerts@example.com")
	mailer.baseURL = srv.URL

	err := mailer.SendAlert(context.Background(), "user@example.com", "AAPL", alertDomain.TypeTargetSell, 205.5, "mensaje")
	if err != nil {
		t.Fatalf("SendAlert failed: %v", err)
	}

	if gotAuth != "Bearer key-123" {
		t.Errorf("wrong auth header: %s", gotAuth)
	}
	if gotPath != "/emails" {
		t.Errorf("wrong path: %s", gotPath)
	}
	if gotPayload["subject"] != "Alerta: AAPL - target_sell" {
		t.Errorf("wrong subject: %v", gotPayload["subject"])
	}
	if gotPayload["from"] != "alerts@example.com" {
		t.Errorf("wrong sender: %v", gotPayload["from"])
	}
	html, _ := gotPayload["html"].(string)
	if !strings.Contains(html, "$205.50") || !strings.Contains(html, "mensaje") {
		t.Errorf("html body missing price or message: %s", html)
	}
}

func TestResendMailer_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	mailer := NewResendMailer("bad-key", "alerts@example.com")
	mailer.baseURL = srv.URL

	err := mailer.SendAlert(context.Background(), "user@example.com", "AAPL", alertDomain.TypeStopLoss, 90, "mensaje")
	if err == nil {
		t.Fatal("expected error for non-2xx status")
	}
	if !strings.Contains(err.Error(), "status=401") {
		t.Errorf("error should carry status: %v", err)
	}
}

func TestResendMailer_MissingKey(t *testing.T) {
	mailer := NewResendMailer("", "alerts@example.com")
	if err := mailer.SendAlert(context.Background(), "user@example.com", "AAPL", alertDomain.TypeStopLoss, 90, "m"); err == nil {
		t.Fatal("expected error when api key missing")
	}
}

func TestNopMailer(t *testing.T) {
	if err := (NopMailer{}).SendAlert(context.Background(), "user@example.com", "AAPL", alertDomain.TypeTakeProfit, 230, "m"); err != nil {
		t.Fatalf("NopMailer should never fail: %v", err)
	}
}
