package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tintandorange-gh/tno-catalog-distributor/app/models"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/errs"
)

// AdminUserRepository handles admin accounts in the relational store.
type AdminUserRepository struct {
	db *gorm.DB
}

func NewAdminUserRepository(db *gorm.DB) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

// FindByEmail looks an admin up by email address.
func (r *AdminUserRepository) FindByEmail(email string) (models.AdminUser, error) {
	var user models.AdminUser
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.AdminUser{}, errs.NotFound("admin user")
	}
	if err != nil {
		return models.AdminUser{}, errs.Infrastructure("admin_users.select", err)
	}
	return user, nil
}

// Create persists a new admin account. The caller supplies a bcrypt hash in
// Password, never the plain text.
func (r *AdminUserRepository) Create(user *models.AdminUser) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.Duplicate("admin email already exists")
		}
		return errs.Infrastructure("admin_users.insert", err)
	}
	return nil
}

// Count returns the number of admin accounts. The seeder bootstraps the
// first account only when this is zero.
func (r *AdminUserRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&models.AdminUser{}).Count(&n).Error; err != nil {
		return 0, errs.Infrastructure("admin_users.count", err)
	}
	return n, nil
}
