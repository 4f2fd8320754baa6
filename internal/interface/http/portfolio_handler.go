package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handlePortfolioSummary(c *gin.Context) {
	sum, err := s.assetUC.Summarize(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "summarize failed", "error_code": errCodeInternal})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"total_investment":    sum.TotalInvestment,
		"current_value":       sum.CurrentValue,
		"total_gain_loss":     sum.TotalGainLoss,
		"total_gain_loss_pct": sum.TotalGainLossPct,
		"assets_count":        sum.AssetsCount,
	})
}

func (s *Server) handlePortfolioAssets(c *gin.Context) {
	assets, err := s.assetUC.ListWithPrices(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "list assets failed", "error_code": errCodeInternal})
		return
	}

	views := make([]assetWithPriceView, 0, len(assets))
	for _, a := range assets {
		views = append(views, toAssetWithPriceView(a))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "assets": views})
}
