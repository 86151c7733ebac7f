package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to the labels the frontend displays
var FieldLabels = map[string]string{
	"FirstName":       "First name",
	"LastName":        "Last name",
	"Email":           "Email",
	"Phone":           "Phone",
	"Location":        "Location",
	"CurrentPosition": "Current position",
	"CurrentCompany":  "Current company",
	"Skills":          "Skills",
	"ExperienceYears": "Years of experience",
	"ResumeURL":       "Resume URL",
	"LinkedInProfile": "LinkedIn profile",
	"GithubProfile":   "GitHub profile",
	"Portfolio":       "Portfolio",
	"Education":       "Education",
	"Experience":      "Experience",
	"Notes":           "Notes",
	"Status":          "Status",
	"Source":          "Source",
}

// FormatValidationErrors converts validator.ValidationErrors to
// user-friendly per-field messages
func FormatValidationErrors(err error) []string {
	var messages []string

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}

	return messages
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("Please add a %s", strings.ToLower(label))

	case "email":
		return "Please add a valid email"

	case "url":
		return fmt.Sprintf("%s must be a valid URL", label)

	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(strings.Split(param, " "), ", "))

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at least %s", label, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at most %s", label, param)

	default:
		return fmt.Sprintf("%s is invalid (%s)", label, e.Tag())
	}
}

func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	// Fall back to the field name with spaces between CamelCase words
	var result strings.Builder
	for i, r := range fieldName {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
