package models

import "fmt"

// ValidationError is a payload problem the handlers surface as 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func errBlank(field string) error {
	return &ValidationError{Field: field, Message: "cannot be blank"}
}

func errNegative(field string) error {
	return &ValidationError{Field: field, Message: "must not be negative"}
}
