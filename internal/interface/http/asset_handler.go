package httpapi

import (
	"errors"
	"net/http"
	"time"

	appPortfolio "invest-tracker/internal/application/portfolio"
	"invest-tracker/internal/domain/portfolio"

	"github.com/gin-gonic/gin"
)

type assetBody struct {
	AssetType        *string  `json:"asset_type"`
	Ticker           *string  `json:"ticker"`
	Quantity         *float64 `json:"quantity"`
	AvgPurchasePrice *float64 `json:"avg_purchase_price"`
	PurchaseDate     *string  `json:"purchase_date"`
	Market           *string  `json:"market"`
}

func (s *Server) handleAssetCreate(c *gin.Context) {
	var body assetBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body", "error_code": errCodeBadRequest})
		return
	}

	input := appPortfolio.CreateAssetInput{}
	if body.AssetType != nil {
		input.Type = portfolio.AssetType(*body.AssetType)
	}
	if body.Ticker != nil {
		input.Ticker = *body.Ticker
	}
	if body.Quantity != nil {
		input.Quantity = *body.Quantity
	}
	if body.AvgPurchasePrice != nil {
		input.AvgPurchasePrice = *body.AvgPurchasePrice
	}
	if body.Market != nil {
		input.Market = *body.Market
	}
	if body.PurchaseDate != nil {
		d, err := time.Parse("2006-01-02", *body.PurchaseDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid purchase_date", "error_code": errCodeBadRequest})
			return
		}
		input.PurchaseDate = d
	}

	asset, err := s.assetUC.Create(c.Request.Context(), currentUserID(c), input)
	if err != nil {
		var vErr *portfolio.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": vErr.Error(), "error_code": errCodeBadRequest})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "create asset failed", "error_code": errCodeInternal})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "asset": toAssetView(asset)})
}

func (s *Server) handleAssetList(c *gin.Context) {
	assets, err := s.assetUC.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "list assets failed", "error_code": errCodeInternal})
		return
	}

	views := make([]assetView, 0, len(assets))
	for _, a := range assets {
		views = append(views, toAssetView(a))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "assets": views})
}

func (s *Server) handleAssetGet(c *gin.Context) {
	asset, err := s.assetUC.Get(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		if errors.Is(err, appPortfolio.ErrAssetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "asset not found", "error_code": errCodeNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "get asset failed", "error_code": errCodeInternal})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "asset": toAssetView(asset)})
}

func (s *Server) handleAssetUpdate(c *gin.Context) {
	var body assetBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body", "error_code": errCodeBadRequest})
		return
	}

	input := appPortfolio.UpdateAssetInput{
		Ticker:           body.Ticker,
		Quantity:         body.Quantity,
		AvgPurchasePrice: body.AvgPurchasePrice,
		Market:           body.Market,
	}
	if body.AssetType != nil {
		t := portfolio.AssetType(*body.AssetType)
		input.Type = &t
	}
	if body.PurchaseDate != nil {
		d, err := time.Parse("2006-01-02", *body.PurchaseDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid purchase_date", "error_code": errCodeBadRequest})
			return
		}
		input.PurchaseDate = &d
	}

	asset, err := s.assetUC.Update(c.Request.Context(), c.Param("id"), currentUserID(c), input)
	if err != nil {
		if errors.Is(err, appPortfolio.ErrAssetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "asset not found", "error_code": errCodeNotFound})
			return
		}
		var vErr *portfolio.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": vErr.Error(), "error_code": errCodeBadRequest})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "update asset failed", "error_code": errCodeInternal})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "asset": toAssetView(asset)})
}

func (s *Server) handleAssetDelete(c *gin.Context) {
	err := s.assetUC.Delete(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		if errors.Is(err, appPortfolio.ErrAssetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "asset not found", "error_code": errCodeNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "delete asset failed", "error_code": errCodeInternal})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
