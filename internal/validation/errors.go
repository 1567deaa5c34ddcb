// Package validation holds the ordered field error list shared by forms and models.
package validation

import "strings"

// Messages shared by the form, the Todo model and their renderings.
const (
	MsgRequired = "This field is required."
	MsgBlank    = "This field cannot be blank."
)

// FieldError is one validation failure attached to a named field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is an ordered list of validation failures. Order follows the
// declaration order of the fields being validated.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e FieldErrors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// For returns the messages recorded for field, in order.
func (e FieldErrors) For(field string) []string {
	var msgs []string
	for _, fe := range e {
		if fe.Field == field {
			msgs = append(msgs, fe.Message)
		}
	}
	return msgs
}

// ByField groups messages per field, e.g. for {"errors": {...}} JSON bodies.
func (e FieldErrors) ByField() map[string][]string {
	out := make(map[string][]string, len(e))
	for _, fe := range e {
		out[fe.Field] = append(out[fe.Field], fe.Message)
	}
	return out
}
