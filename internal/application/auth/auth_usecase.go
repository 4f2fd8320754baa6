package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"invest-tracker/internal/domain/auth"
)

// ErrEmailTaken 表示信箱已註冊。
var ErrEmailTaken = errors.New("email already registered")

// ErrUserNotFound 表示查無使用者。
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidCredentials 表示帳密驗證失敗。
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository 存取使用者。查無資料時回傳 ErrUserNotFound。
type UserRepository interface {
	InsertUser(ctx context.Context, user auth.User) error
	FindByEmail(ctx context.Context, email string) (auth.User, error)
	FindByID(ctx context.Context, id string) (auth.User, error)
}

// PasswordHasher 雜湊與驗證密碼。
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hashed, plain string) bool
}

// TokenIssuer 簽發 token。
type TokenIssuer interface {
	Issue(user auth.User) (auth.TokenPair, error)
}

// UseCase 處理註冊、登入與目前使用者查詢。
type UseCase struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	now    func() time.Time
}

func NewUseCase(users UserRepository, hasher PasswordHasher, tokens TokenIssuer) *UseCase {
	return &UseCase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
	}
}

// RegisterInput 定義註冊欄位。
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// AuthResult 回傳使用者與 token。
type AuthResult struct {
	User  auth.User
	Token auth.TokenPair
}

// Register 建立帳號並直接簽發 token。
func (uc *UseCase) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	var out AuthResult
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || input.Password == "" || strings.TrimSpace(input.Name) == "" {
		return out, errors.New("email, password and name required")
	}

	if _, err := uc.users.FindByEmail(ctx, email); err == nil {
		return out, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return out, fmt.Errorf("find user: %w", err)
	}

	hashed, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return out, fmt.Errorf("hash password: %w", err)
	}

	user := auth.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      strings.TrimSpace(input.Name),
		Password:  hashed,
		CreatedAt: uc.now(),
	}
	if err := user.Validate(); err != nil {
		return out, err
	}
	if err := uc.users.InsertUser(ctx, user); err != nil {
		return out, fmt.Errorf("insert user: %w", err)
	}

	token, err := uc.tokens.Issue(user)
	if err != nil {
		return out, fmt.Errorf("issue token: %w", err)
	}
	out.User = user
	out.Token = token
	return out, nil
}

// LoginInput 定義登入欄位。
type LoginInput struct {
	Email    string
	Password string
}

// Login 驗證帳密並簽發 token。
func (uc *UseCase) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	var out AuthResult
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || input.Password == "" {
		return out, ErrInvalidCredentials
	}

	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return out, ErrInvalidCredentials
		}
		return out, fmt.Errorf("find user: %w", err)
	}
	if !uc.hasher.Compare(user.Password, input.Password) {
		return out, ErrInvalidCredentials
	}

	token, err := uc.tokens.Issue(user)
	if err != nil {
		return out, fmt.Errorf("issue token: %w", err)
	}
	out.User = user
	out.Token = token
	return out, nil
}

// Me 查詢目前使用者。
func (uc *UseCase) Me(ctx context.Context, userID string) (auth.User, error) {
	return uc.users.FindByID(ctx, userID)
}
