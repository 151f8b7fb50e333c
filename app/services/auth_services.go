package services

import (
	"errors"

	"github.com/tintandorange-gh/tno-catalog-distributor/app/models"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/auth"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/errs"
)

// ErrInvalidCredentials is returned for a wrong email or password. The
// controller answers 401 without revealing which half was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AdminUserRepo is the account surface the auth service needs.
type AdminUserRepo interface {
	FindByEmail(email string) (models.AdminUser, error)
	Create(user *models.AdminUser) error
	Count() (int64, error)
}

// AuthService verifies admin credentials and mints the admin-auth token.
type AuthService struct {
	admins AdminUserRepo
}

func NewAuthService(admins AdminUserRepo) *AuthService {
	return &AuthService{admins: admins}
}

// Login checks email+password against the admin store and returns a signed
// token on success.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.admins.FindByEmail(email)
	if errs.IsNotFound(err) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if !auth.CheckPassword(user.Password, password) {
		return "", ErrInvalidCredentials
	}

	return auth.GenerateToken(user.ID, user.Email)
}

// CreateAdmin registers a new admin account with a bcrypt-hashed password.
// Used by the CLI and the bootstrap seeder.
func (s *AuthService) CreateAdmin(name, email, password string) error {
	if email == "" || password == "" {
		return errs.Validation("email and password are required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return errs.Infrastructure("hash password", err)
	}

	return s.admins.Create(&models.AdminUser{Name: name, Email: email, Password: hash})
}
