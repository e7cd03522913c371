package controllers

import (
	"github.com/go-playground/validator/v10"
)

// Shared request validator for controller payloads.
var validate = validator.New()

// validationDetails flattens validator errors into field:tag pairs the
// client can show next to form inputs.
func validationDetails(err error) map[string]string {
	out := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			out[fe.Field()] = fe.Tag()
		}
	}
	return out
}
