package httpapi

import (
	"github.com/gin-gonic/gin"
)

func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(ginLogger(), gin.Recovery(), corsMiddleware())

	api := r.Group("/api")

	api.GET("/ping", s.handlePing)
	api.GET("/health", s.handleHealth)

	api.POST("/auth/register", s.handleRegister)
	api.POST("/auth/login", s.handleLogin)

	api.POST("/demo/create", s.handleDemoCreate)

	authed := api.Group("", s.requireAuth())
	{
		authed.GET("/auth/me", s.handleMe)

		authed.POST("/assets", s.handleAssetCreate)
		authed.GET("/assets", s.handleAssetList)
		authed.GET("/assets/:id", s.handleAssetGet)
		authed.PUT("/assets/:id", s.handleAssetUpdate)
		authed.DELETE("/assets/:id", s.handleAssetDelete)

		authed.GET("/portfolio/summary", s.handlePortfolioSummary)
		authed.GET("/portfolio/assets", s.handlePortfolioAssets)

		authed.POST("/alerts", s.handleAlertCreate)
		authed.GET("/alerts", s.handleAlertList)
		authed.GET("/alerts/asset/:assetId", s.handleAlertsByAsset)
		authed.PUT("/alerts/:id", s.handleAlertUpdate)
		authed.DELETE("/alerts/:id", s.handleAlertDelete)
		authed.GET("/alerts/history", s.handleAlertHistory)

		authed.GET("/notifications", s.handleNotificationList)
		authed.PUT("/notifications/:id/read", s.handleNotificationRead)

		authed.GET("/prices/:ticker", s.handlePriceCurrent)
		authed.GET("/prices/:ticker/history", s.handlePriceHistory)

		authed.POST("/admin/check-now", s.handleCheckNow)
	}

	return r
}
