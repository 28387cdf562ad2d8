package models

import (
	goval "github.com/go-passwd/validator"
	"github.com/leebenson/conform"
	"golang.org/x/crypto/bcrypt"
)

// User represents a user of the application. Every user may submit reports;
// users flagged as collectors may additionally claim and verify them.
type User struct {
	Model
	Fullname       string         `json:"fullname" binding:"required,min=2" conform:"trim"`
	Username       string         `json:"username" binding:"required,min=2" conform:"trim"`
	Email          string         `json:"email" gorm:"unique;not null" binding:"required,email" conform:"trim,lower"`
	Password       string         `json:"password,omitempty" gorm:"-" validate:"omitempty,min=8"`
	HashedPassword string         `json:"-"`
	IsCollector    bool           `json:"is_collector"`
	AccessToken    string         `json:"-"`
	ResetToken     string         `json:"-"`
	Notifications  []Notification `json:"-" gorm:"foreignKey:UserID"`
}

// Blacklist holds revoked access tokens so logout invalidates a session
// before its JWT expires.
type Blacklist struct {
	Model
	Email string `json:"email"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	UserResponse
	AccessToken string `json:"access_token"`
}

type UserResponse struct {
	ID          uint   `json:"id"`
	Fullname    string `json:"fullname"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	IsCollector bool   `json:"is_collector"`
}

// Sanitize normalizes user-supplied fields in place.
func (u *User) Sanitize() {
	conform.Strings(u)
}

// ValidatePassword enforces the password policy for new credentials.
func (u *User) ValidatePassword() error {
	passwordValidator := goval.New(goval.MinLength(8, nil), goval.MaxLength(72, nil))
	return passwordValidator.Validate(u.Password)
}

// HashPassword replaces the plaintext password with its bcrypt hash.
func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.HashedPassword = string(hashed)
	u.Password = ""
	return nil
}

// VerifyPassword compares a login attempt against the stored hash.
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		Fullname:    u.Fullname,
		Username:    u.Username,
		Email:       u.Email,
		IsCollector: u.IsCollector,
	}
}
