package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greencycle/wastetrack/server/response"
)

func (s *Server) HandleForgotPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := struct {
			Email string `json:"email" binding:"required,email"`
		}{}
		if err := decode(c, &email); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		if err := s.AuthService.ForgotPassword(email.Email); err != nil {
			response.HandleErrors(c, err)
			return
		}

		response.JSON(c, "Reset Password Link Sent Successfully", http.StatusOK, nil, nil)
	}
}

func (s *Server) ResetPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		resetPassword := struct {
			Password string `json:"password" binding:"required"`
		}{}
		if err := decode(c, &resetPassword); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		token := c.Param("token")
		if err := s.AuthService.ResetPassword(token, resetPassword.Password); err != nil {
			response.HandleErrors(c, err)
			return
		}

		response.JSON(c, "Password Reset Successfully", http.StatusOK, nil, nil)
	}
}
