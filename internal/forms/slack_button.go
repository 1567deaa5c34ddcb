package forms

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"slack-bridge/internal/slack"
	"slack-bridge/internal/validation"
)

const (
	FieldChannel = "channel"
	FieldText    = "text"
)

var ErrNotValidated = errors.New("form has not been validated")

// SlackButtonForm carries the channel/text pair posted from the button page.
type SlackButtonForm struct {
	Channel string
	Text    string

	validated bool
	errs      validation.FieldErrors
}

// NewSlackButtonForm binds submitted values, trimming surrounding whitespace.
func NewSlackButtonForm(values url.Values) *SlackButtonForm {
	return &SlackButtonForm{
		Channel: strings.TrimSpace(values.Get(FieldChannel)),
		Text:    strings.TrimSpace(values.Get(FieldText)),
	}
}

// Validate checks every field and returns the failures in field order.
func (f *SlackButtonForm) Validate() validation.FieldErrors {
	var errs validation.FieldErrors
	if f.Channel == "" {
		errs = append(errs, validation.FieldError{Field: FieldChannel, Message: validation.MsgRequired})
	}
	if f.Text == "" {
		errs = append(errs, validation.FieldError{Field: FieldText, Message: validation.MsgRequired})
	}
	f.errs = errs
	f.validated = true
	return errs
}

func (f *SlackButtonForm) IsValid() bool {
	return len(f.Validate()) == 0
}

// Errors returns the result of the last Validate call.
func (f *SlackButtonForm) Errors() validation.FieldErrors {
	return f.errs
}

// SendSlackMessage posts the validated text to the validated channel.
// Errors from the poster are returned unchanged.
func (f *SlackButtonForm) SendSlackMessage(ctx context.Context, poster slack.Poster) error {
	if !f.validated {
		return ErrNotValidated
	}
	if len(f.errs) > 0 {
		return f.errs
	}
	return poster.PostMessage(ctx, f.Channel, f.Text)
}
