package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	errs "github.com/greencycle/wastetrack/errors"
	"github.com/greencycle/wastetrack/server/response"
)

func (s *Server) handleGetUnreadNotifications() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		notifications, err := s.LedgerService.UnreadNotifications(userID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}

		response.JSON(c, "", http.StatusOK, notifications, nil)
	}
}

func (s *Server) handleMarkNotificationRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		notificationID, err := strconv.ParseUint(c.Param("notificationID"), 10, 32)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid notification id", http.StatusBadRequest))
			return
		}

		if err := s.LedgerService.MarkNotificationRead(uint(notificationID)); err != nil {
			response.HandleErrors(c, err)
			return
		}

		response.JSON(c, "Notification marked as read", http.StatusOK, nil, nil)
	}
}
