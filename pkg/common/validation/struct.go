package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	oerrors "github.com/justinelliottcobb/Orlando/pkg/common/errors"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func structValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// report fields by their configuration key
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
			if name == "-" || name == "" {
				return strings.ToLower(fld.Name)
			}
			return name
		})
	})
	return validate
}

// ValidateStruct checks s against its `validate` struct tags and returns
// the first violation as a ValidationError. Field names are dotted
// configuration keys, e.g. "metrics.namespace".
func ValidateStruct(module string, s interface{}) error {
	err := structValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return oerrors.NewValidationError(module, "struct", nil, err.Error())
	}

	fe := fieldErrs[0]
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	return oerrors.NewValidationError(module, field, fe.Value(), reason(fe))
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "excludesall":
		return "must not contain any of " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}
