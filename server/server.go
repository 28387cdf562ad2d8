package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/greencycle/wastetrack/config"
	"github.com/greencycle/wastetrack/db"
	errs "github.com/greencycle/wastetrack/errors"
	"github.com/greencycle/wastetrack/pkg/logger"
	"github.com/greencycle/wastetrack/server/response"
	"github.com/greencycle/wastetrack/services"
)

type Server struct {
	Config                 *config.Config
	AuthRepository         db.AuthRepository
	AuthService            services.AuthService
	LedgerService          services.LedgerService
	ReportService          services.ReportService
	NotificationRepository db.NotificationRepository
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully.
func (s *Server) Start() {
	r := s.setupRouter()

	port := s.Config.Port
	if port == 0 {
		port = 8080
	}
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	go func() {
		logger.Info("server listening on port ", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen error: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("forced shutdown: ", err)
	}
}

// decode binds and validates a JSON request body.
func decode(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
			}
			return errs.ValidationError(strings.Join(fields, "; "))
		}
		return errs.ValidationError(err.Error())
	}
	return nil
}

// currentUserID pulls the authenticated user's id out of the gin context.
func currentUserID(c *gin.Context) (uint, bool) {
	userIDCtx, ok := c.Get("userID")
	if !ok {
		response.JSON(c, "", http.StatusInternalServerError, nil, errs.New("userID not found in context", http.StatusInternalServerError))
		return 0, false
	}
	userID, ok := userIDCtx.(uint)
	if !ok {
		response.JSON(c, "", http.StatusInternalServerError, nil, errs.New("invalid userID type", http.StatusInternalServerError))
		return 0, false
	}
	return userID, true
}
