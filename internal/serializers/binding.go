package serializers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/harentsoaR/clinic-api/internal/apperrors"
)

func init() {
	// Report json field names instead of Go field names.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		// Blank or a valid address. omitempty alone still checks a
		// pointer to "".
		v.RegisterAlias("optional_email", "eq=|email")
	}
}

// BindingError turns a gin ShouldBindJSON failure into a ValidationError
// with one message per offending field.
func BindingError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Validation("Invalid request body")
	}
	out := &apperrors.ValidationError{}
	for _, fe := range verrs {
		out.Add(fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + ": This field is required."
	case "email", "optional_email":
		return field + ": Enter a valid email address."
	case "oneof":
		return fmt.Sprintf("%s: %q is not a valid choice.", field, fmt.Sprint(fe.Value()))
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s: Ensure this field has at least %s characters.", field, fe.Param())
		}
		return fmt.Sprintf("%s: Ensure this value is greater than or equal to %s.", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s: Ensure this field has no more than %s characters.", field, fe.Param())
		}
		return fmt.Sprintf("%s: Ensure this value is less than or equal to %s.", field, fe.Param())
	}
	return field + ": Invalid value."
}
