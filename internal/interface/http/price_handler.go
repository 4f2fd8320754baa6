package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	pricingDomain "invest-tracker/internal/domain/pricing"

	"github.com/gin-gonic/gin"
)

const defaultSampleLimit = 100

func (s *Server) handlePriceCurrent(c *gin.Context) {
	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))

	latest, err := s.repo.LatestPrice(c.Request.Context(), ticker)
	if err != nil {
		if errors.Is(err, pricingDomain.ErrQuoteUnavailable) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "no price for ticker", "error_code": errCodeNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "load price failed", "error_code": errCodeInternal})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"ticker":     latest.Ticker,
		"price":      latest.Price,
		"updated_at": latest.UpdatedAt.Format(time.RFC3339),
	})
}

func (s *Server) handlePriceHistory(c *gin.Context) {
	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit <= 0 || limit > defaultSampleLimit {
		limit = defaultSampleLimit
	}

	samples, err := s.repo.ListSamples(c.Request.Context(), ticker, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "load price history failed", "error_code": errCodeInternal})
		return
	}

	views := make([]sampleView, 0, len(samples))
	for _, sm := range samples {
		views = append(views, toSampleView(sm))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "ticker": ticker, "history": views})
}
