package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to form labels
var FieldLabels = map[string]string{
	// Resume fields
	"Name":                 "Full Name",
	"Email":                "Email",
	"Mobile":               "Mobile Number",
	"Location":             "Location",
	"Age":                  "Age",
	"Experience":           "Experience",
	"JobType":              "Job Type",
	"Cuisines":             "Cuisines",
	"TotalExperienceYears": "Total Experience (Years)",
	"CurrentPosition":      "Current Position",
	"CurrentSalary":        "Current Salary",
	"ExpectedSalary":       "Expected Salary",
	"PreferredLocation":    "Preferred Location",
	"PassportNo":           "Passport Number",
	"ProbationPeriod":      "Probation Period",
	"BusinessType":         "Business Type",
	"JoiningType":          "Joining Type",
	"ReadyForTraining":     "Ready For Training",
	"CandidateConsent":     "Candidate Consent",

	// Contact fields
	"Subject": "Subject",
	"Message": "Message",

	// Payment fields
	"Amount":   "Amount",
	"PlanName": "Plan",
	"PlanID":   "Plan ID",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
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
		if e.Field() == "CandidateConsent" {
			return fmt.Sprintf("%s: Must be accepted", label)
		}
		return fmt.Sprintf("%s: Required", label)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: At least %s characters", label, param)
		}
		return fmt.Sprintf("%s: Must be at least %s", label, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: At most %s characters", label, param)
		}
		return fmt.Sprintf("%s: Must be at most %s", label, param)

	case "gte":
		return fmt.Sprintf("%s: Must be at least %s", label, param)

	case "oneof":
		return fmt.Sprintf("%s: Must be one of: %s", label, strings.Join(strings.Fields(param), ", "))

	case "email":
		return fmt.Sprintf("%s: Invalid email address", label)

	case "valid_name":
		return fmt.Sprintf("%s: Only letters, digits, spaces and . ' - / & ( ) , are allowed", label)

	case "valid_phone":
		return fmt.Sprintf("%s: Invalid phone number (7-15 digits, optional +)", label)

	case "no_emoji":
		return fmt.Sprintf("%s: Emoji and special symbols are not allowed", label)

	default:
		return fmt.Sprintf("%s: Invalid value (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
