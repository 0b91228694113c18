package validator

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

const minPasswordLength = 8

// AppValidator implements usecasecontract.IValidator.
type AppValidator struct {
	validate *validator.Validate
}

var _ usecasecontract.IValidator = (*AppValidator)(nil)

func NewValidator() *AppValidator {
	return &AppValidator{validate: validator.New()}
}

// ValidateEmail checks if the email format is valid.
func (av *AppValidator) ValidateEmail(email string) error {
	return av.validate.Var(email, "required,email")
}

// ValidatePasswordStrength reports every rule the password breaks.
func (av *AppValidator) ValidatePasswordStrength(password string) error {
	var errs []error
	if len(password) < minPasswordLength {
		errs = append(errs, fmt.Errorf("password must be at least %d characters long", minPasswordLength))
	}
	if !containsUppercase(password) {
		errs = append(errs, errors.New("password must contain at least one uppercase letter"))
	}
	if !containsLowercase(password) {
		errs = append(errs, errors.New("password must contain at least one lowercase letter"))
	}
	if !containsNumber(password) {
		errs = append(errs, errors.New("password must contain at least one number"))
	}
	if !containsSpecial(password) {
		errs = append(errs, errors.New("password must contain at least one special character"))
	}
	return errors.Join(errs...)
}

// RegisterCustomValidators registers the tags used by request DTOs with Gin's
// validator engine.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected gin validator engine")
	}
	for tag, fn := range map[string]validator.Func{
		"notblank":          notBlank,
		"containsuppercase": func(fl validator.FieldLevel) bool { return containsUppercase(fl.Field().String()) },
		"containslowercase": func(fl validator.FieldLevel) bool { return containsLowercase(fl.Field().String()) },
		"containsdigit":     func(fl validator.FieldLevel) bool { return containsNumber(fl.Field().String()) },
		"containssymbol":    func(fl validator.FieldLevel) bool { return containsSpecial(fl.Field().String()) },
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return nil
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func containsUppercase(s string) bool {
	return strings.IndexFunc(s, unicode.IsUpper) >= 0
}

func containsLowercase(s string) bool {
	return strings.IndexFunc(s, unicode.IsLower) >= 0
}

func containsNumber(s string) bool {
	return strings.IndexFunc(s, unicode.IsNumber) >= 0
}

func containsSpecial(s string) bool {
	return strings.ContainsAny(s, "!@#$%^&*()_+-=[]{};:'\\|,.<>/?")
}
