package server

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	limitLogin := loginRateLimiter()

	apirouter := router.Group("/api/v1")
	apirouter.POST("/auth/signup", s.handleSignup())
	apirouter.POST("/auth/login", limitLogin, s.handleLogin())
	apirouter.POST("/password/forgot", s.HandleForgotPassword())
	apirouter.POST("/password/reset/:token", s.ResetPassword())
	apirouter.GET("/reports/recent", s.handleGetRecentReports())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())
	authorized.GET("/logout", s.handleLogout())
	authorized.GET("/me", s.handleShowProfile())

	authorized.POST("/reports", s.handleSubmitReport())
	authorized.GET("/reports/me", s.handleGetMyReports())
	authorized.GET("/reports/pending", s.handleGetPendingReports())
	authorized.GET("/tasks", s.handleGetCollectionTasks())
	authorized.PUT("/tasks/:reportID/status", s.handleUpdateTaskStatus())
	authorized.POST("/tasks/:reportID/verify", s.handleVerifyCollection())
	authorized.GET("/collections/me", s.handleGetMyCollections())

	authorized.GET("/rewards/balance", s.handleGetBalance())
	authorized.GET("/rewards/transactions", s.handleGetRecentTransactions())
	authorized.GET("/rewards/available", s.handleGetAvailableRewards())
	authorized.POST("/rewards/redeem", s.handleRedeemReward())
	authorized.GET("/rewards/leaderboard", s.handleGetLeaderboard())

	authorized.GET("/notifications", s.handleGetUnreadNotifications())
	authorized.PUT("/notifications/:notificationID/read", s.handleMarkNotificationRead())
}
