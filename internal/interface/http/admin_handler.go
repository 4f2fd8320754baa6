package httpapi

import (
	"errors"
	"net/http"

	"invest-tracker/internal/application/alertcheck"

	"github.com/gin-gonic/gin"
)

// handleCheckNow 手動觸發一輪價格檢查。已有一輪在跑時回 409，
// 不排隊等待。
func (s *Server) handleCheckNow(c *gin.Context) {
	res, err := s.worker.RunNow(c.Request.Context())
	if err != nil {
		if errors.Is(err, alertcheck.ErrPassInProgress) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "check already in progress", "error_code": errCodeCheckInProgress})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "check failed", "error_code": errCodeInternal})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"tickers":   res.Tickers,
		"quoted":    res.Quoted,
		"evaluated": res.Evaluated,
		"fired":     res.Fired,
	})
}
