package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// queryTimeout bounds every database round trip issued by a handler.
const queryTimeout = 3 * time.Second

var validate = validator.New()

// validationDetail flattens validator errors into one human-readable
// message, e.g. "field age is required".
func validationDetail(errs validator.ValidationErrors) string {
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			messages = append(messages, fmt.Sprintf("field %s is required", strings.ToLower(e.Field())))
		default:
			messages = append(messages, fmt.Sprintf("field %s is invalid", strings.ToLower(e.Field())))
		}
	}
	return strings.Join(messages, ", ")
}
