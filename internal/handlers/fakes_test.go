package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"slack-bridge/internal/flash"
	"slack-bridge/internal/slack"
)

type postCall struct {
	channel string
	text    string
}

type fakePoster struct {
	calls []postCall
	err   error
}

func (p *fakePoster) PostMessage(_ context.Context, channel, text string) error {
	p.calls = append(p.calls, postCall{channel: channel, text: text})
	return p.err
}

type fakeClientFactory struct {
	tokens []string
	poster *fakePoster
}

func (f *fakeClientFactory) build(token string) slack.Poster {
	f.tokens = append(f.tokens, token)
	return f.poster
}

type verifyCall struct {
	body   string
	header http.Header
}

type fakeVerifier struct {
	valid bool
	calls []verifyCall
}

func (v *fakeVerifier) IsValidRequest(body string, header http.Header) bool {
	v.calls = append(v.calls, verifyCall{body: body, header: header})
	return v.valid
}

type fakeVerifierFactory struct {
	secrets  []string
	verifier *fakeVerifier
}

func (f *fakeVerifierFactory) build(secret string) slack.Verifier {
	f.secrets = append(f.secrets, secret)
	return f.verifier
}

// queuedNotices decodes the notices a response set in the flash cookie.
func queuedNotices(t *testing.T, store *flash.Store, rec *httptest.ResponseRecorder) []flash.Notice {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == flash.CookieName && c.Value != "" {
			notices, err := store.Decode(c.Value)
			if err != nil {
				t.Fatalf("decode notices: %v", err)
			}
			return notices
		}
	}
	return nil
}
