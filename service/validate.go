package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"career-roi/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct checks s against its validate tags and reports the first failing
// field as a ValidationError rooted at prefix, e.g. "education.durationMonths".
func validateStruct(prefix string, s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		if prefix == "" {
			prefix = "request"
		}
		return domain.NewValidationError(prefix, err.Error())
	}

	fe := fieldErrs[0]
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	if prefix != "" {
		field = prefix + "." + field
	}
	return domain.NewValidationError(field, reason(fe))
}

// ValidateRequest checks a request struct against its validate tags.
func ValidateRequest(req any) error {
	return validateStruct("", req)
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "required", "required_with", "required_without_all":
		return "is required"
	}
	return fmt.Sprintf("failed %q check", fe.Tag())
}

func validateROIArgs(
	education domain.EducationCost,
	career domain.CareerProfile,
	currentSalary float64,
	timeHorizonYears int,
) error {
	if err := validateStruct("education", education); err != nil {
		return err
	}
	if err := validateStruct("career", career); err != nil {
		return err
	}
	if currentSalary < 0 {
		return domain.NewValidationError("currentSalary", "must not be negative")
	}
	if timeHorizonYears < 0 || timeHorizonYears > MaxTimeHorizonYears {
		return domain.NewValidationError("timeHorizonYears", fmt.Sprintf("must be between 0 and %d", MaxTimeHorizonYears))
	}
	return nil
}
