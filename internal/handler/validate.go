package handler

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nexora/backend/internal/model"
)

// newValidator returns a validator that reports fields by their JSON name.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRequest runs struct validation on req and converts failures into
// one FieldError per field, using messages[field] as the human-readable text.
func validateRequest(v *validator.Validate, req any, messages map[string]string) model.ValidationErrors {
	err := v.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return model.ValidationErrors{{Field: "body", Message: err.Error()}}
	}

	var out model.ValidationErrors
	seen := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if seen[field] {
			continue
		}
		seen[field] = true
		msg, ok := messages[field]
		if !ok {
			msg = field + " failed " + fe.Tag() + " validation"
		}
		out = append(out, model.FieldError{Field: field, Message: msg})
	}
	return out
}
