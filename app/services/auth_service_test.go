package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tintandorange-gh/tno-catalog-distributor/app/models"
	"github.com/tintandorange-gh/tno-catalog-distributor/app/services"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/auth"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/errs"
)

type fakeAdmins struct {
	byEmail map[string]models.AdminUser
	nextID  uint
}

func newFakeAdmins() *fakeAdmins {
	return &fakeAdmins{byEmail: map[string]models.AdminUser{}, nextID: 1}
}

func (f *fakeAdmins) FindByEmail(email string) (models.AdminUser, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return models.AdminUser{}, errs.NotFound("admin user")
	}
	return u, nil
}

func (f *fakeAdmins) Create(user *models.AdminUser) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return errs.Duplicate("email already registered")
	}
	user.ID = f.nextID
	f.nextID++
	f.byEmail[user.Email] = *user
	return nil
}

func (f *fakeAdmins) Count() (int64, error) {
	return int64(len(f.byEmail)), nil
}

func TestLoginIssuesValidToken(t *testing.T) {
	admins := newFakeAdmins()
	svc := services.NewAuthService(admins)

	require.NoError(t, svc.CreateAdmin("Ops", "ops@example.com", "s3cret-pass"))

	token, err := svc.Login("ops@example.com", "s3cret-pass")
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", claims.Email)
	assert.Equal(t, uint(1), claims.UserID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	admins := newFakeAdmins()
	svc := services.NewAuthService(admins)

	require.NoError(t, svc.CreateAdmin("Ops", "ops@example.com", "s3cret-pass"))

	_, err := svc.Login("ops@example.com", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Unknown email fails identically, revealing nothing.
	_, err = svc.Login("nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestCreateAdminHashesPassword(t *testing.T) {
	admins := newFakeAdmins()
	svc := services.NewAuthService(admins)

	require.NoError(t, svc.CreateAdmin("Ops", "ops@example.com", "s3cret-pass"))

	stored := admins.byEmail["ops@example.com"]
	assert.NotEqual(t, "s3cret-pass", stored.Password)
	assert.True(t, auth.CheckPassword(stored.Password, "s3cret-pass"))
}

func TestCreateAdminRequiresCredentials(t *testing.T) {
	svc := services.NewAuthService(newFakeAdmins())

	assert.True(t, errs.IsValidation(svc.CreateAdmin("Ops", "", "pass")))
	assert.True(t, errs.IsValidation(svc.CreateAdmin("Ops", "ops@example.com", "")))
}
