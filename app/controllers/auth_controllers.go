// Package controllers translates HTTP requests into service calls and maps
// service errors onto the response envelope.
package controllers

import (
	"net/http"

	"github.com/tintandorange-gh/tno-catalog-distributor/app/services"
	"github.com/tintandorange-gh/tno-catalog-distributor/config"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/auth"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/bind"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

type loginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login verifies admin credentials and sets the admin-auth cookie. The
// response never reveals whether the email or the password was wrong.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	fieldErrs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if fieldErrs != nil {
		response.ValidationError(w, fieldErrs)
		return
	}

	token, err := c.service.Login(in.Email, in.Password)
	if err == services.ErrInvalidCredentials {
		response.Unauthorized(w, "invalid credentials")
		return
	}
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	http.SetCookie(w, sessionCookie(token, int(auth.TokenTTL.Seconds())))
	response.Success(w, map[string]bool{"authenticated": true})
}

// Logout clears the admin-auth cookie.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, sessionCookie("", -1))
	response.Success(w, map[string]bool{"authenticated": false})
}

func sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     auth.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   config.IsProduction(),
		SameSite: http.SameSiteStrictMode,
	}
}
