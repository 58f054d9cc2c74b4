package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/AlibekovAA/account-service/internal/common/constants"
)

type signupSchema struct {
	Email    string `json:"email" validate:"required,max=254,email"`
	Username string `json:"username" validate:"required,min=3,max=20,excludes=@"`
	Password string `json:"password" validate:"required,min=6,bcryptlen"`
}

type loginSchema struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// InputValidator checks request schemas and reports failures as a
// VALIDATION_FAILED error whose details map each field to a message.
type InputValidator struct {
	validate *validator.Validate
}

func NewInputValidator() *InputValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	// bcrypt only reads the first 72 bytes of its input.
	_ = v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= constants.PasswordMaxLength
	})

	return &InputValidator{validate: v}
}

func (iv *InputValidator) Struct(s any) error {
	err := iv.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ErrValidation.WithCause(err)
	}

	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := details[fe.Field()]; seen {
			continue
		}
		details[fe.Field()] = describe(fe)
	}

	return ErrValidation.WithDetails(details).WithCause(err)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "excludes":
		return fmt.Sprintf("must not contain %q", fe.Param())
	case "bcryptlen":
		return fmt.Sprintf("must be at most %d bytes", constants.PasswordMaxLength)
	default:
		return "is invalid"
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
