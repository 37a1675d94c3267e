package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authgate/auth-api/internal/core/domain"
	"github.com/authgate/auth-api/internal/core/ports"
)

func validRegistration() ports.RegisterInput {
	return ports.RegisterInput{
		FullName: "Jane Doe",
		Email:    "jane@x.com",
		Password: "Secret1!",
		Role:     "user",
	}
}

func requireViolation(t *testing.T, err error, code, msg string) {
	t.Helper()
	require.Error(t, err)
	de, ok := domain.AsError(err)
	require.True(t, ok, "expected *domain.Error, got %T", err)
	assert.Equal(t, domain.KindValidation, de.Kind)
	assert.Equal(t, code, de.Code)
	assert.Equal(t, msg, de.Message)
}

func TestValidate_RegistrationValid(t *testing.T) {
	assert.NoError(t, New().Validate(validRegistration()))
}

func TestValidate_RegistrationRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ports.RegisterInput)
		msg    string
	}{
		{"missing full name", func(in *ports.RegisterInput) { in.FullName = "" }, "Full name is required."},
		{"short full name", func(in *ports.RegisterInput) { in.FullName = "Jo" }, "Full name must be at least 3 characters long."},
		{"long full name", func(in *ports.RegisterInput) { in.FullName = strings.Repeat("a", 81) }, "Full name cannot exceed 80 characters."},
		{"missing email", func(in *ports.RegisterInput) { in.Email = "" }, "Email is required."},
		{"bad email", func(in *ports.RegisterInput) { in.Email = "not-an-email" }, "Invalid email format."},
		{"missing password", func(in *ports.RegisterInput) { in.Password = "" }, "Password is required."},
		{"short password", func(in *ports.RegisterInput) { in.Password = "Ab1" }, "Password must be at least 8 characters long."},
		{"no uppercase", func(in *ports.RegisterInput) { in.Password = "secret123" }, "Password must contain at least one uppercase letter."},
		{"missing role", func(in *ports.RegisterInput) { in.Role = "" }, "Role is required."},
		{"client role rejected", func(in *ports.RegisterInput) { in.Role = "client" }, `Role must be either "user" or "admin".`},
	}
	v := New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validRegistration()
			tc.mutate(&in)
			requireViolation(t, v.Validate(in), domain.CodeValidation, tc.msg)
		})
	}
}

func TestValidate_ReportsFirstViolationOnly(t *testing.T) {
	in := ports.RegisterInput{FullName: "Jo", Email: "bad", Password: "x", Role: "root"}
	requireViolation(t, New().Validate(in), domain.CodeValidation, "Full name must be at least 3 characters long.")
}

func TestValidate_FullNameCountsCharactersNotBytes(t *testing.T) {
	in := validRegistration()
	in.FullName = strings.Repeat("é", 80)
	assert.NoError(t, New().Validate(in))
}

func TestValidate_Login(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(ports.LoginInput{Email: "jane@x.com", Password: "x"}))
	requireViolation(t, v.Validate(ports.LoginInput{Email: "jane@x.com"}), domain.CodeValidation, "Password is required.")
	requireViolation(t, v.Validate(ports.LoginInput{Email: "jane", Password: "x"}), domain.CodeValidation, "Invalid email format.")
}

func TestValidate_PasswordReset(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(ports.ResetPasswordInput{NewPassword: "Another1"}))
	requireViolation(t, v.Validate(ports.ResetPasswordInput{NewPassword: "short"}), domain.CodeValidation,
		"New password must be at least 8 characters long.")
	requireViolation(t, v.Validate(ports.ResetPasswordInput{NewPassword: "lowercase1"}), domain.CodeValidation,
		"New password must contain at least one uppercase letter.")
}

func TestUserID(t *testing.T) {
	v := New()
	assert.NoError(t, v.UserID("65f1c0ffee0000000000abcd"))
	assert.NoError(t, v.UserID("65F1C0FFEE0000000000ABCD"))
	requireViolation(t, v.UserID(""), domain.CodeInvalidUserIDFormat, "User ID cannot be empty.")
	requireViolation(t, v.UserID("123"), domain.CodeInvalidUserIDFormat, "Invalid user ID format.")
	requireViolation(t, v.UserID("0x5f1c0ffee0000000000abcd"), domain.CodeInvalidUserIDFormat, "Invalid user ID format.")
	requireViolation(t, v.UserID("zzzzzzzzzzzzzzzzzzzzzzzz"), domain.CodeInvalidUserIDFormat, "Invalid user ID format.")
}
