package seeders

import (
	"context"

	"github.com/tintandorange-gh/tno-catalog-distributor/app/repositories"
	"github.com/tintandorange-gh/tno-catalog-distributor/app/services"
	"github.com/tintandorange-gh/tno-catalog-distributor/config"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/errs"
)

func init() {
	Register("admin", SeedAdmin)
}

// SeedAdmin bootstraps the first admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD. Skips silently when accounts already exist or no password
// is configured.
func SeedAdmin(ctx context.Context, deps Deps) error {
	repo := repositories.NewAdminUserRepository(deps.AdminDB)

	count, err := repo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email, password := config.AdminEmail(), config.AdminPassword()
	if email == "" || password == "" {
		return nil
	}

	auth := services.NewAuthService(repo)
	if err := auth.CreateAdmin("Administrator", email, password); err != nil && !errs.IsDuplicate(err) {
		return err
	}
	return nil
}
