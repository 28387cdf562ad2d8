package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greencycle/wastetrack/server/response"
)

func (s *Server) handleGetBalance() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		balance, err := s.LedgerService.GetBalance(userID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}

		response.JSON(c, "", http.StatusOK, gin.H{"balance": balance}, nil)
	}
}

func (s *Server) handleGetRecentTransactions() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		transactions, err := s.LedgerService.RecentTransactions(userID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}

		response.JSON(c, "", http.StatusOK, transactions, nil)
	}
}

func (s *Server) handleGetAvailableRewards() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		offers, err := s.LedgerService.ListAvailableRewards(userID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}

		response.JSON(c, "", http.StatusOK, offers, nil)
	}
}

func (s *Server) handleRedeemReward() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		body := struct {
			RewardID uint `json:"reward_id"`
		}{}
		if err := decode(c, &body); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		reward, err := s.LedgerService.RedeemReward(userID, body.RewardID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}

		response.JSON(c, "Reward redeemed", http.StatusOK, reward, nil)
	}
}

func (s *Server) handleGetLeaderboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := s.LedgerService.Leaderboard()
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, entries, nil)
	}
}
