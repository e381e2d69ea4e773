package middleware

import (
	stderrors "errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"s2x/internal/api/errors"
)

// Validator interface for domain validation
type Validator interface {
	Validate() error
}

// ValidateRequest binds a JSON body, checks its struct tags and then its
// domain rules when the request implements Validator.
func ValidateRequest(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		fields := make(map[string]string)

		var validationErrs validator.ValidationErrors
		if stderrors.As(err, &validationErrs) {
			for _, fieldError := range validationErrs {
				fields[lo.SnakeCase(fieldError.Field())] = describe(fieldError)
			}
		} else {
			fields["request"] = "invalid JSON format"
		}

		return errors.NewValidationError("Validation failed", fields)
	}

	if v, ok := req.(Validator); ok {
		return v.Validate()
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "url":
		return "must be a valid URL"
	default:
		return "is invalid"
	}
}
