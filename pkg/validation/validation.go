// Package validation wraps go-playground/validator so request structs can
// declare their required fields with tags and fail with a structured
// INVALID_INPUT error.
package validation

import (
	stderrors "errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tendant/simple-notify/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report field names the way callers sent them.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// Struct validates s against its `validate` tags. The returned error is an
// *errors.Error with code INVALID_INPUT whose details map each failing field,
// by its JSON path such as "results[0].vehicles", to the rule it broke.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid input")
	}

	details := make(map[string]interface{}, len(verrs))
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details[fieldPath(fe.Namespace())] = fe.Tag()
		fields = append(fields, fe.Field())
	}
	return errors.Newf(errors.ErrCodeInvalidInput, "invalid input: %s", strings.Join(fields, ", ")).WithDetails(details)
}

// fieldPath drops the leading Go type name from a validator namespace.
func fieldPath(namespace string) string {
	if _, path, ok := strings.Cut(namespace, "."); ok {
		return path
	}
	return namespace
}
