package httpapi

import (
	"errors"
	"log"
	"net/http"
	"time"

	appAlerts "invest-tracker/internal/application/alerts"
	authApp "invest-tracker/internal/application/auth"
	appPortfolio "invest-tracker/internal/application/portfolio"
	alertDomain "invest-tracker/internal/domain/alert"
	"invest-tracker/internal/domain/portfolio"

	"github.com/gin-gonic/gin"
)

const (
	demoEmail    = "demo@inversiones.com"
	demoPassword = "demo123"
)

// handleDemoCreate 建立示範帳號與樣本資產、警報。
// 帳號已存在時不重建，直接回傳登入資訊。
func (s *Server) handleDemoCreate(c *gin.Context) {
	ctx := c.Request.Context()

	res, err := s.authUC.Register(ctx, authApp.RegisterInput{
		Email:    demoEmail,
		Password: demoPassword,
		Name:     "Usuario Demo",
	})
	if err != nil {
		if errors.Is(err, authApp.ErrEmailTaken) {
			c.JSON(http.StatusOK, gin.H{
				"success":  true,
				"message":  "Demo user already exists",
				"email":    demoEmail,
				"password": demoPassword,
			})
			return
		}
		log.Printf("[Demo] create demo user failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "create demo failed", "error_code": errCodeInternal})
		return
	}
	userID := res.User.ID

	demoAssets := []appPortfolio.CreateAssetInput{
		{Type: portfolio.AssetCEDEAR, Ticker: "AAPL", Quantity: 10, AvgPurchasePrice: 150.0, PurchaseDate: date(2024, 1, 15), Market: "NYSE"},
		{Type: portfolio.AssetCEDEAR, Ticker: "GOOGL", Quantity: 5, AvgPurchasePrice: 140.0, PurchaseDate: date(2024, 2, 10), Market: "NASDAQ"},
		{Type: portfolio.AssetShare, Ticker: "YPFD.BA", Quantity: 100, AvgPurchasePrice: 25000.0, PurchaseDate: date(2024, 3, 5), Market: "BCBA"},
		{Type: portfolio.AssetShare, Ticker: "GGAL.BA", Quantity: 50, AvgPurchasePrice: 15000.0, PurchaseDate: date(2024, 3, 20), Market: "BCBA"},
	}

	assetIDs := make([]string, 0, len(demoAssets))
	for _, input := range demoAssets {
		asset, err := s.assetUC.Create(ctx, userID, input)
		if err != nil {
			log.Printf("[Demo] create demo asset %s failed: %v", input.Ticker, err)
			continue
		}
		assetIDs = append(assetIDs, asset.ID)
	}

	if len(assetIDs) >= 2 {
		demoAlerts := []appAlerts.CreateAlertInput{
			{AssetID: assetIDs[0], Type: alertDomain.TypeTargetSell, TargetValue: 200.0, IsPercentage: false},
			{AssetID: assetIDs[0], Type: alertDomain.TypeStopLoss, TargetValue: -10.0, IsPercentage: true},
			{AssetID: assetIDs[1], Type: alertDomain.TypeTakeProfit, TargetValue: 15.0, IsPercentage: true},
		}
		for _, input := range demoAlerts {
			if _, err := s.alertUC.Create(ctx, userID, input); err != nil {
				log.Printf("[Demo] create demo alert failed: %v", err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Demo data created successfully",
		"email":    demoEmail,
		"password": demoPassword,
	})
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
