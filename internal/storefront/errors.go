// Package storefront implements the customer-facing inquiry workflow:
// selecting an item's color and a delivery place, composing the image
// gallery, recording the inquiry, and building the outbound WhatsApp link.
package storefront

import "strings"

// Code identifies why a field failed validation.
type Code string

// Validation codes. All are recoverable: the web layer re-renders the form
// with the message attached to the offending field.
const (
	CodeNotFound      Code = "not_found"
	CodeRequired      Code = "required"
	CodeInvalid       Code = "invalid"
	CodeColorMismatch Code = "color_mismatch"
	CodeColorSoldOut  Code = "color_sold_out"
	CodePlaceMismatch Code = "place_mismatch"
)

// FieldError is a validation failure scoped to one form field.
type FieldError struct {
	Field   string `json:"field"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e FieldError) Error() string { return e.Field + ": " + e.Message }

// FieldErrors collects per-field validation failures.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether any error is attached to the given field.
func (e FieldErrors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// For returns the first message attached to the given field, or "".
func (e FieldErrors) For(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

func (e *FieldErrors) add(field string, code Code, message string) {
	*e = append(*e, FieldError{Field: field, Code: code, Message: message})
}
