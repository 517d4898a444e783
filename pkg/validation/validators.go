package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// E164-like phone: optional +, digits 7-15 length
var phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// RegisterValidators registers custom validators to the validator instance.
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_phone", ValidPhone)
}

// ValidPhone validates a phone number structure.
func ValidPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // optional, use required if needed
	}
	return phoneRegex.MatchString(val)
}

// FieldLabels maps struct field paths to user-facing labels.
var FieldLabels = map[string]string{
	"FullName":       "full name",
	"Email":          "email",
	"Phone":          "phone",
	"Password":       "password",
	"UserName":       "user name",
	"Role":           "role",
	"Status":         "status",
	"Order":          "order",
	"Rating":         "rating",
	"AuthorName":     "author name",
	"Title":          "title (en & ar)",
	"Department":     "department (en & ar)",
	"Location":       "location (en & ar)",
	"EmploymentType": "employment type (en & ar)",
	"Subtitle":       "subtitle (en & ar)",
	"Description":    "description (en & ar)",
	"Category":       "category (en & ar)",
}

// FormatError converts validator errors into a single readable message for
// the error envelope.
func FormatError(err error) string {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		label, ok := FieldLabels[fe.Field()]
		if !ok {
			label = strings.ToLower(fe.Field())
		}
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", label))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid email address", label))
		case "valid_phone":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid phone number", label))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", label, fe.Param()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", label, fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", label, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", label))
		}
	}
	return strings.Join(msgs, "; ")
}
