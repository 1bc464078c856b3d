package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to the Romanian labels used on the form
var FieldLabels = map[string]string{
	"Name":    "Nume",
	"Email":   "Email",
	"Message": "Mesaj",
	"Field":   "Câmp",
	"Value":   "Valoare",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error (e.g. malformed body)
		return []string{"Date invalide"}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: Câmp obligatoriu", label)
	case "email":
		return fmt.Sprintf("%s: Adresă de email invalidă", label)
	case "max":
		return fmt.Sprintf("%s: Maxim %s caractere", label, param)
	case "oneof":
		return fmt.Sprintf("%s: Trebuie să fie unul dintre: %s", label, param)
	case "single_line":
		return fmt.Sprintf("%s: Nu poate conține rânduri noi", label)
	default:
		return fmt.Sprintf("%s: Valoare invalidă (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return fieldName
}

// FailedFields lists the labels of the fields that failed validation
func FailedFields(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	fields := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, e.Field())
	}
	return fields
}
