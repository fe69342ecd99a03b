package validation

import (
	"errors"
	"strings"

	"shareit/util/apperr"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: validator.New()}
}

// Validate checks struct tags and reports failures as a Validation error
// naming each offending field.
func (v *Validator) Validate(i interface{}) error {
	err := v.v.Struct(i)
	if err == nil {
		return nil
	}
	var fe validator.ValidationErrors
	if !errors.As(err, &fe) {
		return apperr.Validation("invalid payload")
	}
	parts := make([]string, 0, len(fe))
	for _, f := range fe {
		parts = append(parts, f.Field()+": "+f.Tag())
	}
	return apperr.Validation("validation failed: %s", strings.Join(parts, ", "))
}
