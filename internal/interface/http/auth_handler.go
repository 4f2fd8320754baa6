package httpapi

import (
	"errors"
	"log"
	"net/http"
	"time"

	authApp "invest-tracker/internal/application/auth"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleRegister(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body", "error_code": errCodeBadRequest})
		return
	}

	res, err := s.authUC.Register(c.Request.Context(), authApp.RegisterInput{
		Email:    body.Email,
		Password: body.Password,
		Name:     body.Name,
	})
	if err != nil {
		if errors.Is(err, authApp.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "email already registered", "error_code": errCodeEmailTaken})
			return
		}
		log.Printf("[Auth] register failure for %s: %v", body.Email, err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error(), "error_code": errCodeBadRequest})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"user":         toUserView(res.User),
		"access_token": res.Token.AccessToken,
		"token_type":   "Bearer",
		"expiry":       res.Token.Expiry.Format(time.RFC3339),
	})
}

func (s *Server) handleLogin(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body", "error_code": errCodeBadRequest})
		return
	}

	res, err := s.authUC.Login(c.Request.Context(), authApp.LoginInput{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		log.Printf("[Auth] login failure for %s: %v", body.Email, err)
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid email or password", "error_code": errCodeInvalidCredentials})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"user":         toUserView(res.User),
		"access_token": res.Token.AccessToken,
		"token_type":   "Bearer",
		"expiry":       res.Token.Expiry.Format(time.RFC3339),
	})
}

func (s *Server) handleMe(c *gin.Context) {
	user, err := s.authUC.Me(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized", "error_code": errCodeUnauthorized})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": toUserView(user)})
}
