package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/frahmantamala/hr-management/internal"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct runs tag validation on a DTO and maps the first violated rule to its
// human-readable message. Keys are "<StructField>.<tag>". Rules without a
// mapped message fall back to a generic one so a missing entry never hides
// the violation.
func Struct(s interface{}, messages map[string]string) *internal.AppError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if msg, ok := messages[fe.StructField()+"."+fe.Tag()]; ok {
			return internal.NewValidationError(msg)
		}
		return internal.NewValidationError(fmt.Sprintf("%s is invalid", fe.Field()))
	}

	return internal.NewValidationError("Validation failed")
}
