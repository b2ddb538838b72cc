package dto

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/restaurant-console/internal/domain"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("staffrole", func(fl validator.FieldLevel) bool {
			return domain.ParseRole(fl.Field().String()).Known()
		})
	})
	return validate
}

// Validate checks a request payload and returns nil, or the failed rule per field.
func Validate(payload any) map[string]any {
	err := instance().Struct(payload)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]any{"payload": err.Error()}
	}
	details := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		field := strings.SplitN(fe.Namespace(), ".", 2)
		key := fe.Field()
		if len(field) == 2 {
			key = field[1]
		}
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		details[key] = rule
	}
	return details
}
