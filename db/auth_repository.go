package db

import (
	"github.com/pkg/errors"

	errs "github.com/greencycle/wastetrack/errors"
	"github.com/greencycle/wastetrack/models"
	"gorm.io/gorm"
)

type AuthRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id uint) (*models.User, error)
	UpdateUser(user *models.User) error
	SetResetToken(userID uint, token string) error
	FindUserByResetToken(token string) (*models.User, error)
	ResetPassword(userID uint, hashedPassword string) error
	AddToBlackList(blacklist *models.Blacklist) error
	IsTokenInBlacklist(token string) bool
}

type authRepo struct {
	DB *gorm.DB
}

func NewAuthRepo(db *GormDB) AuthRepository {
	return &authRepo{db.DB}
}

func (a *authRepo) CreateUser(user *models.User) (*models.User, error) {
	if err := a.DB.Create(user).Error; err != nil {
		return nil, errors.Wrap(err, "creating user")
	}
	return user, nil
}

func (a *authRepo) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := a.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, errors.Wrap(err, "finding user by email")
	}
	return &user, nil
}

func (a *authRepo) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := a.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, errors.Wrap(err, "finding user by id")
	}
	return &user, nil
}

func (a *authRepo) UpdateUser(user *models.User) error {
	if err := a.DB.Save(user).Error; err != nil {
		return errors.Wrap(err, "updating user")
	}
	return nil
}

func (a *authRepo) SetResetToken(userID uint, token string) error {
	result := a.DB.Model(&models.User{}).Where("id = ?", userID).Update("reset_token", token)
	if result.Error != nil {
		return errors.Wrap(result.Error, "setting reset token")
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (a *authRepo) FindUserByResetToken(token string) (*models.User, error) {
	var user models.User
	if err := a.DB.Where("reset_token = ? AND reset_token <> ''", token).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, errors.Wrap(err, "finding user by reset token")
	}
	return &user, nil
}

func (a *authRepo) ResetPassword(userID uint, hashedPassword string) error {
	result := a.DB.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"hashed_password": hashedPassword,
			"reset_token":     "",
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "resetting password")
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (a *authRepo) AddToBlackList(blacklist *models.Blacklist) error {
	if err := a.DB.Create(blacklist).Error; err != nil {
		return errors.Wrap(err, "blacklisting token")
	}
	return nil
}

func (a *authRepo) IsTokenInBlacklist(token string) bool {
	var count int64
	a.DB.Model(&models.Blacklist{}).Where("token = ?", token).Count(&count)
	return count > 0
}
