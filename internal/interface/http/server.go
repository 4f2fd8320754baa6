package httpapi

import (
	"context"
	"database/sql"
	"net/http"

	"invest-tracker/internal/application/alertcheck"
	alertsApp "invest-tracker/internal/application/alerts"
	authApp "invest-tracker/internal/application/auth"
	portfolioApp "invest-tracker/internal/application/portfolio"
	pricingApp "invest-tracker/internal/application/pricing"
	pricingDomain "invest-tracker/internal/domain/pricing"
	"invest-tracker/internal/infra/memory"
	authinfra "invest-tracker/internal/infrastructure/auth"
	"invest-tracker/internal/infrastructure/config"
	"invest-tracker/internal/infrastructure/notify"
	"invest-tracker/internal/infrastructure/persistence/postgres"
	"invest-tracker/internal/infrastructure/quote"

	"github.com/gin-gonic/gin"
)

const (
	errCodeBadRequest         = "BAD_REQUEST"
	errCodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	errCodeEmailTaken         = "AUTH_EMAIL_TAKEN"
	errCodeUnauthorized       = "AUTH_UNAUTHORIZED"
	errCodeNotFound           = "NOT_FOUND"
	errCodeCheckInProgress    = "CHECK_IN_PROGRESS"
	errCodeInternal           = "INTERNAL_ERROR"
)

// Repository 彙整伺服器需要的全部資料存取介面。
// postgres.Repo 與 memory.Store 都實作它。
type Repository interface {
	authApp.UserRepository
	portfolioApp.AssetRepository
	portfolioApp.AlertCleaner
	portfolioApp.LatestPriceReader
	alertsApp.AlertRepository
	alertsApp.HistoryReader
	alertsApp.NotificationStore
	alertcheck.AssetRepository
	alertcheck.AlertRepository
	alertcheck.HistoryRepository
	alertcheck.NotificationRepository
	pricingApp.PriceRepository
	SampleReader
}

// SampleReader 查詢抓價歷史。
type SampleReader interface {
	ListSamples(ctx context.Context, ticker string, limit int) ([]pricingDomain.Sample, error)
}

// Server 封裝 HTTP 路由與依賴。
type Server struct {
	engine   *gin.Engine
	db       *sql.DB
	repo     Repository
	authUC   *authApp.UseCase
	assetUC  *portfolioApp.AssetUseCase
	alertUC  *alertsApp.AlertUseCase
	worker   *alertcheck.Worker
	tokenSvc *authinfra.JWTIssuer
}

// NewServer 建立 API 伺服器。db 為 nil 時改用記憶體存儲，
// 供本機開發與測試使用。
func NewServer(cfg config.Config, db *sql.DB) *Server {
	var repo Repository
	if db != nil {
		repo = postgres.NewRepo(db)
	} else {
		repo = memory.NewStore()
	}

	tokenSvc := authinfra.NewJWTIssuer(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	authUC := authApp.NewUseCase(repo, authinfra.BcryptHasher{}, tokenSvc)
	assetUC := portfolioApp.NewAssetUseCase(repo, repo, repo)
	alertUC := alertsApp.NewAlertUseCase(repo, repo, repo, repo)

	var mailer alertcheck.Mailer
	if cfg.Mailer.Enabled {
		mailer = notify.NewResendMailer(cfg.Mailer.APIKey, cfg.Mailer.Sender)
	} else {
		mailer = notify.NopMailer{}
	}

	quotes := quote.NewYahooClient(cfg.Quotes)
	recorder := pricingApp.NewRecorder(repo)
	engine := alertcheck.NewEngine(repo, repo, repo, repo, repo, quotes, mailer, recorder, cfg.Checker.FetchConcurrency)
	worker := alertcheck.NewWorker(engine, cfg.Checker.Interval)

	s := &Server{
		db:       db,
		repo:     repo,
		authUC:   authUC,
		assetUC:  assetUC,
		alertUC:  alertUC,
		worker:   worker,
		tokenSvc: tokenSvc,
	}
	s.engine = s.buildRouter()
	return s
}

// Handler 回傳路由處理器，供 HTTP server 掛載。
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Worker 回傳背景檢查工作者，由 main 控制啟停。
func (s *Server) Worker() *alertcheck.Worker {
	return s.worker
}
