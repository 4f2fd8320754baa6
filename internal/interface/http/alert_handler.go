package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	appAlerts "invest-tracker/internal/application/alerts"
	appPortfolio "invest-tracker/internal/application/portfolio"
	alertDomain "invest-tracker/internal/domain/alert"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleAlertCreate(c *gin.Context) {
	var body struct {
		AssetID      string  `json:"asset_id"`
		AlertType    string  `json:"alert_type"`
		TargetValue  float64 `json:"target_value"`
		IsPercentage bool    `json:"is_percentage"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body", "error_code": errCodeBadRequest})
		return
	}

	a, err := s.alertUC.Create(c.Request.Context(), currentUserID(c), appAlerts.CreateAlertInput{
		AssetID:      body.AssetID,
		Type:         alertDomain.Type(body.AlertType),
		TargetValue:  body.TargetValue,
		IsPercentage: body.IsPercentage,
	})
	if err != nil {
		if errors.Is(err, appPortfolio.ErrAssetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "asset not found", "error_code": errCodeNotFound})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error(), "error_code": errCodeBadRequest})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "alert": toAlertView(a)})
}

func (s *Server) handleAlertList(c *gin.Context) {
	alerts, err := s.alertUC.ListByUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "list alerts failed", "error_code": errCodeInternal})
		return
	}

	views := make([]alertView, 0, len(alerts))
	for _, a := range alerts {
		views = append(views, toAlertView(a))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "alerts": views})
}

func (s *Server) handleAlertsByAsset(c *gin.Context) {
	alerts, err := s.alertUC.ListByAsset(c.Request.Context(), c.Param("assetId"), currentUserID(c))
	if err != nil {
		if errors.Is(err, appPortfolio.ErrAssetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "asset not found", "error_code": errCodeNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "list alerts failed", "error_code": errCodeInternal})
		return
	}

	views := make([]alertView, 0, len(alerts))
	for _, a := range alerts {
		views = append(views, toAlertView(a))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "alerts": views})
}

func (s *Server) handleAlertUpdate(c *gin.Context) {
	var body struct {
		AlertType    *string  `json:"alert_type"`
		TargetValue  *float64 `json:"target_value"`
		IsPercentage *bool    `json:"is_percentage"`
		IsActive     *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body", "error_code": errCodeBadRequest})
		return
	}

	input := appAlerts.UpdateAlertInput{
		TargetValue:  body.TargetValue,
		IsPercentage: body.IsPercentage,
		IsActive:     body.IsActive,
	}
	if body.AlertType != nil {
		t := alertDomain.Type(*body.AlertType)
		input.Type = &t
	}

	a, err := s.alertUC.Update(c.Request.Context(), c.Param("id"), currentUserID(c), input)
	if err != nil {
		if errors.Is(err, appAlerts.ErrAlertNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "alert not found", "error_code": errCodeNotFound})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error(), "error_code": errCodeBadRequest})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "alert": toAlertView(a)})
}

func (s *Server) handleAlertDelete(c *gin.Context) {
	err := s.alertUC.Delete(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		if errors.Is(err, appAlerts.ErrAlertNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "alert not found", "error_code": errCodeNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "delete alert failed", "error_code": errCodeInternal})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleAlertHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	hist, err := s.alertUC.History(c.Request.Context(), currentUserID(c), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "list history failed", "error_code": errCodeInternal})
		return
	}

	views := make([]historyView, 0, len(hist))
	for _, h := range hist {
		views = append(views, toHistoryView(h))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "history": views})
}
