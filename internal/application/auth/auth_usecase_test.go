package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"invest-tracker/internal/domain/auth"
)

type fakeUserRepo struct {
	byID    map[string]auth.User
	byEmail map[string]auth.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]auth.User),
		byEmail: make(map[string]auth.User),
	}
}

func (f *fakeUserRepo) InsertUser(ctx context.Context, u auth.User) error {
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (auth.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return auth.User{}, ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (auth.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return auth.User{}, ErrUserNotFound
	}
	return u, nil
}

// plainHasher 測試用：明文比對，避免 bcrypt 的成本。
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "h:" + password, nil }
func (plainHasher) Compare(hashed, password string) bool { return hashed == "h:"+password }

type fakeIssuer struct{}

func (fakeIssuer) Issue(user auth.User) (auth.TokenPair, error) {
	return auth.TokenPair{AccessToken: "token-" + user.ID, Expiry: time.Now().Add(time.Hour)}, nil
}

func newTestAuthUC() (*UseCase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewUseCase(repo, plainHasher{}, fakeIssuer{}), repo
}

func TestUseCase_Register(t *testing.T) {
	uc, repo := newTestAuthUC()

	res, err := uc.Register(context.Background(), RegisterInput{
		Email:    "  Test@Example.COM ",
		Password: "secret123",
		Name:     "Test User",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	// 信箱正規化為小寫
	if res.User.Email != "test@example.com" {
		t.Errorf("email not normalized: %s", res.User.Email)
	}
	if res.Token.AccessToken == "" {
		t.Error("expected access token")
	}
	if stored := repo.byEmail["test@example.com"]; stored.Password != "h:secret123" {
		t.Errorf("password not hashed: %s", stored.Password)
	}
}

func TestUseCase_Register_EmailTaken(t *testing.T) {
	uc, _ := newTestAuthUC()

	input := RegisterInput{Email: "test@example.com", Password: "x", Name: "A"}
	if _, err := uc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := uc.Register(context.Background(), input); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUseCase_Login(t *testing.T) {
	uc, _ := newTestAuthUC()
	uc.Register(context.Background(), RegisterInput{Email: "test@example.com", Password: "secret123", Name: "A"})

	if _, err := uc.Login(context.Background(), LoginInput{Email: "test@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if _, err := uc.Login(context.Background(), LoginInput{Email: "test@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	// 不存在的帳號回同一個錯誤，不洩漏帳號是否存在
	if _, err := uc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "x"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestUseCase_Me(t *testing.T) {
	uc, _ := newTestAuthUC()
	res, _ := uc.Register(context.Background(), RegisterInput{Email: "test@example.com", Password: "x", Name: "A"})

	u, err := uc.Me(context.Background(), res.User.ID)
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if u.Email != "test@example.com" {
		t.Errorf("unexpected user: %+v", u)
	}

	if _, err := uc.Me(context.Background(), "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
