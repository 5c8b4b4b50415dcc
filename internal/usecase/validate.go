package usecase

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	domainerrors "tasknest/internal/domain/errors"
	"tasknest/internal/errors"
)

// inputValidator is shared across requests; validator.Validate is safe for
// concurrent use and caches struct metadata.
var inputValidator = newInputValidator()

func newInputValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report violations under the json field name so error messages match the
	// wire shape clients actually sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}

		return name
	})

	return v
}

// ValidateInput checks an input DTO against its schema tags. On failure it
// returns a ValidationError aggregating every violated constraint, in field
// declaration order rather than stopping at the first.
func ValidateInput(input any) error {
	err := inputValidator.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// InvalidValidationError means the argument was not a struct; that is
		// a programming error, not a client input problem.
		return errors.Wrap(domainerrors.ErrInternalError, "input is not validatable")
	}

	violations := make([]domainerrors.FieldViolation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, domainerrors.FieldViolation{
			Field:   fe.Field(),
			Message: constraintMessage(fe),
		})
	}

	return domainerrors.NewValidationError(violations...)
}

// constraintMessage renders a single violated constraint.
func constraintMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_without", "required_without_all":
		return "is required when no other field is provided"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid UUID"
	default:
		return "is invalid"
	}
}
