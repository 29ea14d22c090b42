package config

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid is wrapped by every configuration validation failure.
var ErrInvalid = errors.New("invalid configuration")

// validate is the singleton validator instance
var validate = validator.New()

// Validate checks the named sections (by mapstructure key, e.g. "storage") and
// reports every failing field together with the environment variables that set it.
func (c *Config) Validate(sections ...string) error {
	rv := reflect.ValueOf(c).Elem()
	rt := rv.Type()

	var problems []string
	for i := 0; i < rt.NumField(); i++ {
		section := rt.Field(i).Tag.Get("mapstructure")
		if !slices.Contains(sections, section) {
			continue
		}

		err := validate.Struct(rv.Field(i).Interface())
		if err == nil {
			continue
		}

		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%s: %w", section, err)
		}
		for _, fe := range verrs {
			problems = append(problems, formatValidationError(section, rt.Field(i).Type, fe))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w:\n  - %s", ErrInvalid, strings.Join(problems, "\n  - "))
	}
	return nil
}

// formatValidationError converts a validator error into a remediation message.
func formatValidationError(section string, sectionType reflect.Type, fe validator.FieldError) string {
	key := section + "." + fe.StructField()
	vars := envKey(key)

	if field, ok := sectionType.FieldByName(fe.StructField()); ok {
		if tag := field.Tag.Get("mapstructure"); tag != "" {
			key = section + "." + tag
			vars = envKey(key)
		}
		if alias := field.Tag.Get("env"); alias != "" {
			vars = alias + " or " + vars
		}
	}

	switch fe.Tag() {
	case "required", "required_if", "required_with":
		return fmt.Sprintf("%s is required (set %s)", key, vars)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q (set %s)", key, fe.Param(), fe.Value(), vars)
	case "min":
		return fmt.Sprintf("%s must be at least %s, got %v (set %s)", key, fe.Param(), fe.Value(), vars)
	case "max":
		return fmt.Sprintf("%s must be at most %s, got %v (set %s)", key, fe.Param(), fe.Value(), vars)
	default:
		return fmt.Sprintf("%s failed '%s' validation (set %s)", key, fe.Tag(), vars)
	}
}
