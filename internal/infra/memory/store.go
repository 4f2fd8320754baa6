package memory

import (
	"context"
	"sort"
	"sync"

	appAlerts "invest-tracker/internal/application/alerts"
	appAuth "invest-tracker/internal/application/auth"
	appPortfolio "invest-tracker/internal/application/portfolio"
	alertDomain "invest-tracker/internal/domain/alert"
	authDomain "invest-tracker/internal/domain/auth"
	"invest-tracker/internal/domain/portfolio"
	"invest-tracker/internal/domain/pricing"
)

// Store 為無資料庫模式使用的記憶體存儲，實作與 postgres.Repo 相同的
// repository 介面。開發與測試用；行程結束資料即消失。
type Store struct {
	mu            sync.RWMutex
	users         map[string]authDomain.User // id -> user
	usersByEmail  map[string]string          // email -> id
	assets        map[string]portfolio.Asset
	alerts        map[string]alertDomain.Alert
	history       []alertDomain.History
	notifications map[string]alertDomain.Notification
	samples       []pricing.Sample
	latest        map[string]pricing.Latest
}

// NewStore 建立空的記憶體 Store。
func NewStore() *Store {
	return &Store{
		users:         make(map[string]authDomain.User),
		usersByEmail:  make(map[string]string),
		assets:        make(map[string]portfolio.Asset),
		alerts:        make(map[string]alertDomain.Alert),
		notifications: make(map[string]alertDomain.Notification),
		latest:        make(map[string]pricing.Latest),
	}
}

// --- Users ---

func (s *Store) InsertUser(ctx context.Context, u authDomain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	s.usersByEmail[u.Email] = u.ID
	return nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (authDomain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usersByEmail[email]
	if !ok {
		return authDomain.User{}, appAuth.ErrUserNotFound
	}
	return s.users[id], nil
}

func (s *Store) FindByID(ctx context.Context, id string) (authDomain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return authDomain.User{}, appAuth.ErrUserNotFound
	}
	return u, nil
}

// --- Assets ---

func (s *Store) InsertAsset(ctx context.Context, a portfolio.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[a.ID] = a
	return nil
}

func (s *Store) ListAssets(ctx context.Context) ([]portfolio.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]portfolio.Asset, 0, len(s.assets))
	for _, a := range s.assets {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ticker < out[j].Ticker })
	return out, nil
}

func (s *Store) ListAssetsByUser(ctx context.Context, userID string) ([]portfolio.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []portfolio.Asset
	for _, a := range s.assets {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) FindAsset(ctx context.Context, id, userID string) (portfolio.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assets[id]
	if !ok || a.UserID != userID {
		return portfolio.Asset{}, appPortfolio.ErrAssetNotFound
	}
	return a, nil
}

func (s *Store) UpdateAsset(ctx context.Context, a portfolio.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.assets[a.ID]
	if !ok || cur.UserID != a.UserID {
		return appPortfolio.ErrAssetNotFound
	}
	s.assets[a.ID] = a
	return nil
}

func (s *Store) DeleteAsset(ctx context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assets[id]
	if !ok || a.UserID != userID {
		return appPortfolio.ErrAssetNotFound
	}
	delete(s.assets, id)
	return nil
}

// --- Alerts ---

func (s *Store) InsertAlert(ctx context.Context, a alertDomain.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts[a.ID] = a
	return nil
}

func (s *Store) ListAlertsByUser(ctx context.Context, userID string) ([]alertDomain.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []alertDomain.Alert
	for _, a := range s.alerts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) ListAlertsByAsset(ctx context.Context, assetID string) ([]alertDomain.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []alertDomain.Alert
	for _, a := range s.alerts {
		if a.AssetID == assetID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) ListActiveByAsset(ctx context.Context, assetID string) ([]alertDomain.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []alertDomain.Alert
	for _, a := range s.alerts {
		if a.AssetID == assetID && a.IsActive {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) FindAlert(ctx context.Context, id, userID string) (alertDomain.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.alerts[id]
	if !ok || a.UserID != userID {
		return alertDomain.Alert{}, appAlerts.ErrAlertNotFound
	}
	return a, nil
}

func (s *Store) UpdateAlert(ctx context.Context, a alertDomain.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.alerts[a.ID]
	if !ok || cur.UserID != a.UserID {
		return appAlerts.ErrAlertNotFound
	}
	s.alerts[a.ID] = a
	return nil
}

func (s *Store) DeleteAlert(ctx context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.alerts[id]
	if !ok || a.UserID != userID {
		return appAlerts.ErrAlertNotFound
	}
	delete(s.alerts, id)
	return nil
}

func (s *Store) DeleteAlertsByAsset(ctx context.Context, assetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, a := range s.alerts {
		if a.AssetID == assetID {
			delete(s.alerts, id)
		}
	}
	return nil
}

func (s *Store) Deactivate(ctx context.Context, alertID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.alerts[alertID]
	if !ok {
		return nil
	}
	a.IsActive = false
	s.alerts[alertID] = a
	return nil
}

// --- History ---

func (s *Store) InsertHistory(ctx context.Context, h alertDomain.History) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, h)
	return nil
}

func (s *Store) ListHistoryByUser(ctx context.Context, userID string, limit int) ([]alertDomain.History, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []alertDomain.History
	for _, h := range s.history {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SentAt.After(out[j].SentAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- Notifications ---

func (s *Store) InsertNotification(ctx context.Context, n alertDomain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications[n.ID] = n
	return nil
}

func (s *Store) ListNotificationsByUser(ctx context.Context, userID string) ([]alertDomain.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []alertDomain.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) MarkNotificationRead(ctx context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok || n.UserID != userID {
		return appAlerts.ErrNotificationNotFound
	}
	n.Read = true
	s.notifications[id] = n
	return nil
}

// --- Prices ---

func (s *Store) InsertSample(ctx context.Context, sample pricing.Sample) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = append(s.samples, sample)
	return nil
}

// UpsertLatest 只保留較新的投影，與 postgres 版本語意一致。
func (s *Store) UpsertLatest(ctx context.Context, l pricing.Latest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.latest[l.Ticker]
	if ok && cur.UpdatedAt.After(l.UpdatedAt) {
		return nil
	}
	s.latest[l.Ticker] = l
	return nil
}

func (s *Store) LatestPrice(ctx context.Context, ticker string) (pricing.Latest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.latest[ticker]
	if !ok {
		return pricing.Latest{}, pricing.ErrQuoteUnavailable
	}
	return l, nil
}

func (s *Store) LatestPrices(ctx context.Context) (map[string]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]float64, len(s.latest))
	for ticker, l := range s.latest {
		out[ticker] = l.Price
	}
	return out, nil
}

func (s *Store) ListSamples(ctx context.Context, ticker string, limit int) ([]pricing.Sample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []pricing.Sample
	for _, sm := range s.samples {
		if sm.Ticker == ticker {
			out = append(out, sm)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
