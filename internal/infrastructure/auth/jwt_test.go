package authinfra

import (
	"strings"
	"testing"
	"time"

	"invest-tracker/internal/domain/auth"
)

func TestJWTIssuer_RoundTrip(t *testing.T) {
	issuer := NewJWTIssuer("test-secret", time.Hour)
	user := auth.User{ID: "user-1", Email: "a@b.com"}

	pair, err := issuer.Issue(user)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if pair.AccessToken == "" {
		t.Fatal("empty access token")
	}
	if remain := time.Until(pair.Expiry); remain < 59*time.Minute || remain > time.Hour {
		t.Errorf("unexpected expiry: %v", pair.Expiry)
	}

	claims, err := issuer.ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken failed: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("wrong user id: %s", claims.UserID)
	}
}

func TestJWTIssuer_WrongSecret(t *testing.T) {
	pair, err := NewJWTIssuer("secret-a", time.Hour).Issue(auth.User{ID: "user-1"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := NewJWTIssuer("secret-b", time.Hour).ParseAccessToken(pair.AccessToken); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestJWTIssuer_Expired(t *testing.T) {
	issuer := NewJWTIssuer("test-secret", time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }

	pair, err := issuer.Issue(auth.User{ID: "user-1"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := issuer.ParseAccessToken(pair.AccessToken); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestJWTIssuer_Garbage(t *testing.T) {
	issuer := NewJWTIssuer("test-secret", time.Hour)
	for _, token := range []string{"", "not-a-token", strings.Repeat("x.", 3)} {
		if _, err := issuer.ParseAccessToken(token); err == nil {
			t.Errorf("expected error for %q", token)
		}
	}
}

func TestBcryptHasher(t *testing.T) {
	var h BcryptHasher

	hashed, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hashed == "secret123" {
		t.Fatal("password stored in plain text")
	}
	if !h.Compare(hashed, "secret123") {
		t.Error("Compare rejected correct password")
	}
	if h.Compare(hashed, "wrong") {
		t.Error("Compare accepted wrong password")
	}
	if h.Compare("", "secret123") || h.Compare(hashed, "") {
		t.Error("Compare accepted empty input")
	}
}
