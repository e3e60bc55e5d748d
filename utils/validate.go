package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the `validate` tags on a request body and flattens the
// failures into one client-displayable message.
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var problems []string
	for _, fieldErr := range err.(validator.ValidationErrors) {
		problems = append(problems, fmt.Sprintf("%s failed %s validation", fieldErr.Field(), fieldErr.Tag()))
	}
	return fmt.Errorf("%s", strings.Join(problems, "; "))
}
