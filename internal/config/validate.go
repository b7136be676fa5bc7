package config

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate checks the loaded values. Problems are reported by env var name.
func (c *Config) Validate() error {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("env"), ",", 2)[0]
		if name == "" {
			return strings.ToUpper(f.Name)
		}
		return name
	})

	err := v.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("config: %w", err)
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, messageFor(e))
	}
	sort.Strings(msgs)

	return fmt.Errorf("config: %s", strings.Join(msgs, "; "))
}

func messageFor(e validator.FieldError) string {
	messages := map[string]func(validator.FieldError) string{
		"required": func(e validator.FieldError) string {
			return fmt.Sprintf("%s is required", e.Field())
		},
		"oneof": func(e validator.FieldError) string {
			return fmt.Sprintf("%s must be one of [%s]", e.Field(), e.Param())
		},
		"gte": func(e validator.FieldError) string {
			return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
		},
		"gt": func(e validator.FieldError) string {
			return fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param())
		},
		"lte": func(e validator.FieldError) string {
			return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
		},
		"min": func(e validator.FieldError) string {
			return fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param())
		},
		"hostname_port": func(e validator.FieldError) string {
			return fmt.Sprintf("%s must be a host:port address", e.Field())
		},
		"url": func(e validator.FieldError) string {
			return fmt.Sprintf("%s must contain valid origin URLs", e.Field())
		},
	}

	if msg, ok := messages[e.Tag()]; ok {
		return msg(e)
	}

	return fmt.Sprintf("%s is invalid", e.Field())
}
