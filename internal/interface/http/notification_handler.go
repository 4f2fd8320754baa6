package httpapi

import (
	"errors"
	"net/http"

	appAlerts "invest-tracker/internal/application/alerts"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleNotificationList(c *gin.Context) {
	list, err := s.alertUC.Notifications(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "list notifications failed", "error_code": errCodeInternal})
		return
	}

	unread := 0
	views := make([]notificationView, 0, len(list))
	for _, n := range list {
		if !n.Read {
			unread++
		}
		views = append(views, toNotificationView(n))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "notifications": views, "unread_count": unread})
}

func (s *Server) handleNotificationRead(c *gin.Context) {
	err := s.alertUC.MarkRead(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		if errors.Is(err, appAlerts.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "notification not found", "error_code": errCodeNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "mark read failed", "error_code": errCodeInternal})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
