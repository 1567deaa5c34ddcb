package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"slack-bridge/internal/validation"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const TodoTextMaxLength = 150

type Todo struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Text      string        `bson:"text" json:"text"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updated_at"`
}

func (t *Todo) String() string {
	return t.Text
}

// Validate checks the text field. Persistence itself does not call it.
func (t *Todo) Validate() validation.FieldErrors {
	var errs validation.FieldErrors
	text := strings.TrimSpace(t.Text)
	if text == "" {
		errs = append(errs, validation.FieldError{Field: "text", Message: validation.MsgBlank})
	}
	if n := utf8.RuneCountInString(t.Text); n > TodoTextMaxLength {
		errs = append(errs, validation.FieldError{
			Field:   "text",
			Message: fmt.Sprintf("Ensure this value has at most %d characters (it has %d).", TodoTextMaxLength, n),
		})
	}
	return errs
}
