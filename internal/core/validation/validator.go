// Package validation checks request payloads before any side effect runs.
// Each payload type is a schema; only the first violation is reported.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/authgate/auth-api/internal/core/domain"
)

var (
	objectIDPattern  = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)
	uppercasePattern = regexp.MustCompile(`[A-Z]`)
)

// UserIDParam is the schema for a path-supplied user id.
type UserIDParam struct {
	ID string `json:"id" validate:"required,object_id"`
}

type message struct {
	code string
	text string
}

// messages is keyed by "<json field>.<tag>".
var messages = map[string]message{
	"fullName.required": {text: "Full name is required."},
	"fullName.min":      {text: "Full name must be at least 3 characters long."},
	"fullName.max":      {text: "Full name cannot exceed 80 characters."},

	"email.required": {text: "Email is required."},
	"email.email":    {text: "Invalid email format."},

	"password.required":         {text: "Password is required."},
	"password.min":              {text: "Password must be at least 8 characters long."},
	"password.uppercase_letter": {text: "Password must contain at least one uppercase letter."},

	"role.required": {text: "Role is required."},
	"role.oneof":    {text: `Role must be either "user" or "admin".`},

	"newPassword.required":         {text: "New password is required."},
	"newPassword.min":              {text: "New password must be at least 8 characters long."},
	"newPassword.uppercase_letter": {text: "New password must contain at least one uppercase letter."},

	"id.required":  {code: domain.CodeInvalidUserIDFormat, text: "User ID cannot be empty."},
	"id.object_id": {code: domain.CodeInvalidUserIDFormat, text: "Invalid user ID format."},
}

// Validator wraps go-playground/validator. It also satisfies echo.Validator.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator with the custom rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("uppercase_letter", func(fl validator.FieldLevel) bool {
		return uppercasePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("object_id", func(fl validator.FieldLevel) bool {
		return objectIDPattern.MatchString(fl.Field().String())
	})
	return &Validator{v: v}
}

// Validate checks i against its struct tags and returns a *domain.Error of
// kind validation describing the first violation.
func (ev *Validator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return violation(ve[0])
	}
	return fmt.Errorf("validate %T: %w", i, err)
}

// UserID checks a path-supplied user id.
func (ev *Validator) UserID(id string) error {
	return ev.Validate(UserIDParam{ID: id})
}

func violation(fe validator.FieldError) *domain.Error {
	if m, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return domain.NewValidationError(m.code, m.text)
	}
	return domain.NewValidationError("", fieldError(fe))
}

// fieldError is the generic message for rules without a dedicated text.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required."
	case "email":
		return field + " must be a valid email."
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long.", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters.", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s).", field, fe.Tag())
	}
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}
