package alert

import "time"

// History 為警報觸發的稽核紀錄，由 dispatcher 建立後不再變動。
type History struct {
	ID           string
	UserID       string
	AssetID      string
	Ticker       string
	Type         Type
	CurrentPrice float64
	Message      string
	SentAt       time.Time
}

// Notification 為站內通知；read 旗標只由使用者端 API 變更。
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Ticker    string
	Price     float64
	Read      bool
	CreatedAt time.Time
}
