package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"invest-tracker/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Config{}
	cfg.Auth.Secret = "test-secret"
	cfg.Auth.TokenTTL = time.Hour
	return NewServer(cfg, nil)
}

func doJSON(t *testing.T, s *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v (body: %s)", err, w.Body.String())
	}
	return out
}

func registerTestUser(t *testing.T, s *Server) string {
	t.Helper()
	w := doJSON(t, s, "POST", "/api/auth/register", "", map[string]string{
		"email":    "test@example.com",
		"password": "secret123",
		"name":     "Test User",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register failed: %d %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	token, _ := body["access_token"].(string)
	if token == "" {
		t.Fatal("register returned no access_token")
	}
	return token
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, "GET", "/api/health", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["db"] != "using_memory" {
		t.Errorf("expected using_memory, got %v", body["db"])
	}
}

func TestServer_AuthFlow(t *testing.T) {
	s := newTestServer(t)

	token := registerTestUser(t, s)

	t.Run("DuplicateEmail", func(t *testing.T) {
		w := doJSON(t, s, "POST", "/api/auth/register", "", map[string]string{
			"email":    "test@example.com",
			"password": "other",
			"name":     "Other",
		})
		if w.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d", w.Code)
		}
	})

	t.Run("Login", func(t *testing.T) {
		w := doJSON(t, s, "POST", "/api/auth/login", "", map[string]string{
			"email":    "test@example.com",
			"password": "secret123",
		})
		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("LoginWrongPassword", func(t *testing.T) {
		w := doJSON(t, s, "POST", "/api/auth/login", "", map[string]string{
			"email":    "test@example.com",
			"password": "wrong",
		})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("Me", func(t *testing.T) {
		w := doJSON(t, s, "GET", "/api/auth/me", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		body := decodeBody(t, w)
		user, _ := body["user"].(map[string]interface{})
		if user["email"] != "test@example.com" {
			t.Errorf("unexpected user: %v", user)
		}
	})

	t.Run("MeWithoutToken", func(t *testing.T) {
		w := doJSON(t, s, "GET", "/api/auth/me", "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})
}

func TestServer_AssetCRUD(t *testing.T) {
	s := newTestServer(t)
	token := registerTestUser(t, s)

	var assetID string

	t.Run("Create", func(t *testing.T) {
		w := doJSON(t, s, "POST", "/api/assets", token, map[string]interface{}{
			"asset_type":         "CEDEAR",
			"ticker":             "AAPL",
			"quantity":           10,
			"avg_purchase_price": 150.0,
			"purchase_date":      "2024-01-15",
			"market":             "NYSE",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		body := decodeBody(t, w)
		asset, _ := body["asset"].(map[string]interface{})
		assetID, _ = asset["id"].(string)
		if assetID == "" {
			t.Fatal("no asset id returned")
		}
	})

	t.Run("CreateInvalid", func(t *testing.T) {
		w := doJSON(t, s, "POST", "/api/assets", token, map[string]interface{}{
			"asset_type": "CEDEAR",
			"ticker":     "AAPL",
			"quantity":   -5,
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("List", func(t *testing.T) {
		w := doJSON(t, s, "GET", "/api/assets", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		body := decodeBody(t, w)
		assets, _ := body["assets"].([]interface{})
		if len(assets) != 1 {
			t.Errorf("expected 1 asset, got %d", len(assets))
		}
	})

	t.Run("Update", func(t *testing.T) {
		w := doJSON(t, s, "PUT", "/api/assets/"+assetID, token, map[string]interface{}{
			"quantity": 20,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		body := decodeBody(t, w)
		asset, _ := body["asset"].(map[string]interface{})
		if asset["quantity"] != 20.0 {
			t.Errorf("quantity not updated: %v", asset)
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		w := doJSON(t, s, "GET", "/api/assets/nonexistent", token, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		w := doJSON(t, s, "DELETE", "/api/assets/"+assetID, token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		w = doJSON(t, s, "GET", "/api/assets/"+assetID, token, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404 after delete, got %d", w.Code)
		}
	})
}

func TestServer_Alerts(t *testing.T) {
	s := newTestServer(t)
	token := registerTestUser(t, s)

	w := doJSON(t, s, "POST", "/api/assets", token, map[string]interface{}{
		"asset_type":         "CEDEAR",
		"ticker":             "AAPL",
		"quantity":           10,
		"avg_purchase_price": 150.0,
		"purchase_date":      "2024-01-15",
		"market":             "NYSE",
	})
	body := decodeBody(t, w)
	asset, _ := body["asset"].(map[string]interface{})
	assetID, _ := asset["id"].(string)

	t.Run("Create", func(t *testing.T) {
		w := doJSON(t, s, "POST", "/api/alerts", token, map[string]interface{}{
			"asset_id":      assetID,
			"alert_type":    "stop_loss",
			"target_value":  -10.0,
			"is_percentage": true,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		body := decodeBody(t, w)
		alert, _ := body["alert"].(map[string]interface{})
		if alert["is_active"] != true {
			t.Errorf("new alert should be active: %v", alert)
		}
	})

	t.Run("CreateForMissingAsset", func(t *testing.T) {
		w := doJSON(t, s, "POST", "/api/alerts", token, map[string]interface{}{
			"asset_id":     "nonexistent",
			"alert_type":   "target_buy",
			"target_value": 100.0,
		})
		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
	})

	t.Run("ListByAsset", func(t *testing.T) {
		w := doJSON(t, s, "GET", "/api/alerts/asset/"+assetID, token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		body := decodeBody(t, w)
		alerts, _ := body["alerts"].([]interface{})
		if len(alerts) != 1 {
			t.Errorf("expected 1 alert, got %d", len(alerts))
		}
	})

	t.Run("History", func(t *testing.T) {
		w := doJSON(t, s, "GET", "/api/alerts/history", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestServer_CheckNow(t *testing.T) {
	s := newTestServer(t)
	token := registerTestUser(t, s)

	// 沒有資產時 pass 直接結束
	w := doJSON(t, s, "POST", "/api/admin/check-now", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["tickers"] != 0.0 {
		t.Errorf("expected 0 tickers, got %v", body["tickers"])
	}
}

func TestServer_DemoCreate(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, "POST", "/api/demo/create", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// 再呼叫一次應回報帳號已存在
	w = doJSON(t, s, "POST", "/api/demo/create", "", nil)
	body := decodeBody(t, w)
	if body["message"] != "Demo user already exists" {
		t.Errorf("unexpected message: %v", body["message"])
	}

	// 登入示範帳號並確認樣本資料
	w = doJSON(t, s, "POST", "/api/auth/login", "", map[string]string{
		"email":    "demo@inversiones.com",
		"password": "demo123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("demo login failed: %d", w.Code)
	}
	token, _ := decodeBody(t, w)["access_token"].(string)

	w = doJSON(t, s, "GET", "/api/assets", token, nil)
	assets, _ := decodeBody(t, w)["assets"].([]interface{})
	if len(assets) != 4 {
		t.Errorf("expected 4 demo assets, got %d", len(assets))
	}

	w = doJSON(t, s, "GET", "/api/alerts", token, nil)
	alerts, _ := decodeBody(t, w)["alerts"].([]interface{})
	if len(alerts) != 3 {
		t.Errorf("expected 3 demo alerts, got %d", len(alerts))
	}
}
