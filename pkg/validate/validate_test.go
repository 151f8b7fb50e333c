package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/validate"
)

type loginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(loginInput{
		Email:    "admin@example.com",
		Password: "secret123",
	})
	assert.False(t, validate.HasErrors(errs), "expected no errors, got: %v", errs)
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(loginInput{})
	assert.True(t, validate.HasErrors(errs))
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	assert.Contains(t, errs, "email")

	errs = validate.Struct(in{Email: "valid@example.com"})
	assert.False(t, validate.HasErrors(errs), "expected valid email to pass: %v", errs)
}

func TestMinLengthRule(t *testing.T) {
	type in struct {
		Name string `json:"name" validate:"required,min=2,max=120"`
	}
	assert.True(t, validate.HasErrors(validate.Struct(in{Name: "x"})))
	assert.False(t, validate.HasErrors(validate.Struct(in{Name: "XUV700"})))
}

func TestGteRule(t *testing.T) {
	type in struct {
		Price float64 `json:"price" validate:"required,gte=0"`
	}
	assert.True(t, validate.HasErrors(validate.Struct(in{Price: -1})))
	assert.False(t, validate.HasErrors(validate.Struct(in{Price: 1250000})))
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		Logo string `json:"logo" validate:"nullable,url"`
	}
	// Empty and nullable: passes even though it is not a URL.
	assert.False(t, validate.HasErrors(validate.Struct(in{Logo: ""})))
	// Present but invalid: fails.
	assert.True(t, validate.HasErrors(validate.Struct(in{Logo: "not-a-url"})))
}

func TestURLRule(t *testing.T) {
	type in struct {
		Site string `json:"site" validate:"required,url"`
	}
	assert.False(t, validate.HasErrors(validate.Struct(in{Site: "https://cdn.example.com/logo.png"})))
	assert.True(t, validate.HasErrors(validate.Struct(in{Site: "not-a-url"})))
	assert.True(t, validate.HasErrors(validate.Struct(in{Site: "ftp://example.com/file"})))
}

func TestInRule(t *testing.T) {
	type in struct {
		Disk string `json:"disk" validate:"required,in=local|s3"`
	}
	assert.True(t, validate.HasErrors(validate.Struct(in{Disk: "gcs"})))
	assert.False(t, validate.HasErrors(validate.Struct(in{Disk: "s3"})))
}
