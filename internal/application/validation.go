package application

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"rapbook/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "folderID" -> "folder ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"id":            "ID",
		"rapID":         "rap ID",
		"folderID":      "folder ID",
		"parentID":      "parent ID",
		"sourceID":      "source ID",
		"destinationID": "destination ID",
		"name":          "folder name",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidateIDKind checks if an ID carries the expected prefix.
// Returns a ValidationError if the kind doesn't match.
func ValidateIDKind(fieldName, id string, expected domain.IDKind) error {
	if domain.ParseIDKind(id) != expected {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("expected %s, got: %s", displayName, id),
		}
	}
	return nil
}

// toValidationError converts the first failing field of an ozzo-validation
// result into a *ValidationError. Other errors are returned as-is.
func toValidationError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	field := fields[0]
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("%s %s", formatFieldName(field), fieldErrs[field].Error()),
	}
}
