package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/greencycle/wastetrack/errors"
	"github.com/greencycle/wastetrack/models"
	"github.com/greencycle/wastetrack/server/response"
)

func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := decode(c, &user); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		created, err := s.AuthService.SignupUser(&user)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}

		response.JSON(c, "Signup successful", http.StatusCreated, created.ToResponse(), nil)
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		loginResponse, err := s.AuthService.LoginUser(&req)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}

		response.JSON(c, "Login successful", http.StatusOK, loginResponse, nil)
	}
}

func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		userCtx, ok := c.Get("user")
		if !ok {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.New("user not found in context", http.StatusInternalServerError))
			return
		}
		user := userCtx.(*models.User)
		token := c.GetString("access_token")

		if err := s.AuthService.LogoutUser(user, token); err != nil {
			response.HandleErrors(c, err)
			return
		}

		response.JSON(c, "Logout successful", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleShowProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userCtx, ok := c.Get("user")
		if !ok {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.New("user not found in context", http.StatusInternalServerError))
			return
		}
		user := userCtx.(*models.User)

		response.JSON(c, "", http.StatusOK, user.ToResponse(), nil)
	}
}
