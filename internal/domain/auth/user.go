package auth

import (
	"errors"
	"strings"
	"time"
)

// User 基本帳號資料。
type User struct {
	ID        string
	Email     string
	Name      string
	Password  string // 雜湊後密碼
	CreatedAt time.Time
}

// Validate 基本欄位檢查。
func (u User) Validate() error {
	if u.ID == "" {
		return errors.New("id is required")
	}
	if !strings.Contains(u.Email, "@") {
		return errors.New("valid email is required")
	}
	if u.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// TokenPair 簽發結果；本系統只用單一長效 access token。
type TokenPair struct {
	AccessToken string
	Expiry      time.Time
}
