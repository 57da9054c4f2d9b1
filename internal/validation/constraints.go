package validation

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"rhystmorgan/regform/internal/models"
)

// htmlEmail is the address shape browsers accept for type=email: the domain
// needs no dot, so "a@b" passes.
var htmlEmail = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

var typeChecks = map[models.InputType]string{
	models.InputEmail:  "html_email",
	models.InputNumber: "numeric",
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("html_email", func(fl validator.FieldLevel) bool {
		return htmlEmail.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Evaluate computes the validity outcome of a value against a field's
// constraints plus a custom-invalidity override. Structural checks other
// than required only apply to non-empty values.
func Evaluate(value string, c models.Constraints, customError string) ValidityOutcome {
	outcome := ValidityOutcome{CustomReason: customError}

	if validate.Var(value, "required") != nil {
		if c.Required {
			outcome = outcome.with(FlagValueMissing)
		}
	} else {
		if tag, ok := typeChecks[c.Type]; ok {
			if err := validate.Var(value, tag); err != nil {
				outcome = outcome.with(FlagTypeMismatch)
			}
		}

		if c.Pattern != nil && !c.Pattern.MatchString(value) {
			outcome = outcome.with(FlagPatternMismatch)
		}

		// min counts runes for strings
		if c.MinLength > 0 && validate.Var(value, fmt.Sprintf("min=%d", c.MinLength)) != nil {
			outcome = outcome.with(FlagTooShort)
		}
	}

	if customError != "" {
		outcome = outcome.with(FlagCustomError)
	}

	return outcome
}

// EvaluateField evaluates a field with its current override
func EvaluateField(f models.Field) ValidityOutcome {
	return Evaluate(f.Value, f.Constraints, f.CustomError)
}
