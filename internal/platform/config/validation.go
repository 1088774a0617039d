package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrStartup marks configuration problems that must stop the service
// before it starts serving.
var ErrStartup = errors.New("startup failed")

// StartupError lists every configuration problem found by Validate.
type StartupError struct {
	Problems []string
}

func (e *StartupError) Error() string {
	return "config validation failed:\n  " + strings.Join(e.Problems, "\n  ")
}

// Unwrap returns ErrStartup.
func (e *StartupError) Unwrap() error {
	return ErrStartup
}

var storeSchemes = []string{MemoryStoreURI, "mongodb://", "mongodb+srv://"}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("storeuri", func(fl validator.FieldLevel) bool {
		uri := fl.Field().String()
		for _, scheme := range storeSchemes {
			if strings.HasPrefix(uri, scheme) {
				return true
			}
		}

		return false
	})

	return v
}

// Validate checks the configuration. Any failure is a *StartupError.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationErrors(err)
	}

	return nil
}

func formatValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return &StartupError{Problems: []string{err.Error()}}
	}

	problems := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		problems = append(problems, formatFieldError(e))
	}

	return &StartupError{Problems: problems}
}

func formatFieldError(e validator.FieldError) string {
	field := formatFieldPath(e.Namespace())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "required_if":
		return fmt.Sprintf("%s is required when %s", field, e.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "startswith":
		return fmt.Sprintf("%s must start with %q", field, e.Param())
	case "storeuri":
		return fmt.Sprintf("%s must start with one of: %s", field, strings.Join(storeSchemes, ", "))
	default:
		return fmt.Sprintf("%s failed validation: %s", field, e.Tag())
	}
}

// formatFieldPath turns "Config.Store.ConnectTimeout" into
// "store.connecttimeout".
func formatFieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}

	return strings.ToLower(strings.Join(parts, "."))
}
