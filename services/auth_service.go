package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/greencycle/wastetrack/config"
	"github.com/greencycle/wastetrack/db"
	errs "github.com/greencycle/wastetrack/errors"
	"github.com/greencycle/wastetrack/mailingservices"
	"github.com/greencycle/wastetrack/models"
	"github.com/greencycle/wastetrack/pkg/logger"
	jwtPackage "github.com/greencycle/wastetrack/services/jwt"
)

type AuthService interface {
	SignupUser(user *models.User) (*models.User, error)
	LoginUser(req *models.LoginRequest) (*models.LoginResponse, error)
	LogoutUser(user *models.User, token string) error
	ForgotPassword(email string) error
	ResetPassword(token, newPassword string) error
}

type authService struct {
	Config   *config.Config
	authRepo db.AuthRepository
	mail     mailingservices.Mailer
}

// NewAuthService instantiates an AuthService.
func NewAuthService(authRepo db.AuthRepository, mail mailingservices.Mailer, conf *config.Config) AuthService {
	return &authService{
		Config:   conf,
		authRepo: authRepo,
		mail:     mail,
	}
}

func (s *authService) SignupUser(user *models.User) (*models.User, error) {
	user.Sanitize()

	if err := user.ValidatePassword(); err != nil {
		return nil, errs.ValidationError(fmt.Sprintf("invalid password: %v", err))
	}
	if existing, err := s.authRepo.FindUserByEmail(user.Email); err == nil && existing != nil {
		return nil, errs.ValidationError("email already registered")
	}
	if err := user.HashPassword(); err != nil {
		return nil, errs.ErrInternalServerError
	}

	created, err := s.authRepo.CreateUser(user)
	if err != nil {
		logger.WithFields(logrus.Fields{"email": user.Email}).Error("signup failed: ", err)
		return nil, errs.ErrPersistence
	}

	logger.WithFields(logrus.Fields{"user_id": created.ID}).Info("user created")
	return created, nil
}

func (s *authService) LoginUser(req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.authRepo.FindUserByEmail(req.Email)
	if err != nil {
		return nil, errs.New("invalid email or password", 401)
	}
	if err := user.VerifyPassword(req.Password); err != nil {
		return nil, errs.New("invalid email or password", 401)
	}

	token, err := jwtPackage.GenerateToken(user.ID, user.Email, s.Config.JWTSecret, s.Config.JWTExpiryHours)
	if err != nil {
		return nil, errs.ErrInternalServerError
	}

	user.AccessToken = token
	if err := s.authRepo.UpdateUser(user); err != nil {
		return nil, errs.ErrPersistence
	}

	return &models.LoginResponse{
		UserResponse: user.ToResponse(),
		AccessToken:  token,
	}, nil
}

func (s *authService) LogoutUser(user *models.User, token string) error {
	blacklist := &models.Blacklist{
		Email: user.Email,
		Token: token,
	}
	if err := s.authRepo.AddToBlackList(blacklist); err != nil {
		logger.Error("logout failed: ", err)
		return errs.ErrPersistence
	}
	return nil
}

func (s *authService) ForgotPassword(email string) error {
	user, err := s.authRepo.FindUserByEmail(email)
	if err != nil {
		return errs.NotFoundError("user not found")
	}

	resetToken := uuid.New().String()
	if err := s.authRepo.SetResetToken(user.ID, resetToken); err != nil {
		return errs.ErrPersistence
	}

	resetLink := fmt.Sprintf("%s/reset-password/%s", s.Config.BaseUrl, resetToken)
	if _, err := s.mail.SendResetPassword(user.Email, resetLink); err != nil {
		logger.Error("reset mail failed: ", err)
		return errs.New("connection to mail service interrupted", 500)
	}
	return nil
}

func (s *authService) ResetPassword(token, newPassword string) error {
	user, err := s.authRepo.FindUserByResetToken(token)
	if err != nil {
		return errs.NotFoundError("invalid or expired reset token")
	}

	user.Password = newPassword
	if err := user.ValidatePassword(); err != nil {
		return errs.ValidationError(fmt.Sprintf("invalid password: %v", err))
	}
	if err := user.HashPassword(); err != nil {
		return errs.ErrInternalServerError
	}

	if err := s.authRepo.ResetPassword(user.ID, user.HashedPassword); err != nil {
		return errs.ErrPersistence
	}
	return nil
}
