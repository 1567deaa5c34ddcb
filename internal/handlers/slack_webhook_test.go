package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newWebhookHandler(valid bool) (*SlackWebhookHandler, *fakeVerifierFactory) {
	factory := &fakeVerifierFactory{verifier: &fakeVerifier{valid: valid}}
	return NewSlackWebhookHandler("SLACK_SIGNING_SECRET_VALUE", factory.build, zap.NewNop()), factory
}

func TestSlackWebhookForbidden(t *testing.T) {
	t.Parallel()
	h, factory := newWebhookHandler(false)

	rec := httptest.NewRecorder()
	h.Receive(rec, httptest.NewRequest(http.MethodPost, "/slack-webhook/", nil))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("body = %q, want empty", rec.Body.String())
	}
	if len(factory.secrets) != 1 {
		t.Fatalf("verifier built %d times, want 1", len(factory.secrets))
	}
}

func TestSlackWebhookSuccess(t *testing.T) {
	t.Parallel()
	h, factory := newWebhookHandler(true)

	req := httptest.NewRequest(http.MethodPost, "/slack-webhook/", strings.NewReader("test data"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Slack-Request-Timestamp", "1531420618")
	req.Header.Set("X-Slack-Signature", "v0=abc")
	rec := httptest.NewRecorder()
	h.Receive(rec, req)

	if len(factory.secrets) != 1 || factory.secrets[0] != "SLACK_SIGNING_SECRET_VALUE" {
		t.Fatalf("secrets = %v", factory.secrets)
	}
	calls := factory.verifier.calls
	if len(calls) != 1 {
		t.Fatalf("IsValidRequest called %d times, want 1", len(calls))
	}
	if calls[0].body != "test data" {
		t.Fatalf("body = %q, want %q", calls[0].body, "test data")
	}
	if !reflect.DeepEqual(calls[0].header, req.Header) {
		t.Fatalf("header = %v, want %v", calls[0].header, req.Header)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON body %q: %v", rec.Body.String(), err)
	}
	want := map[string]interface{}{"text": "Hello from Django!"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("body = %v, want %v", got, want)
	}
}

func TestSlackWebhookBodyLimit(t *testing.T) {
	t.Parallel()

	t.Run("at limit", func(t *testing.T) {
		t.Parallel()
		h, factory := newWebhookHandler(true)
		body := strings.Repeat("a", MaxWebhookBodyBytes)

		rec := httptest.NewRecorder()
		h.Receive(rec, httptest.NewRequest(http.MethodPost, "/slack-webhook/", strings.NewReader(body)))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if got := len(factory.verifier.calls[0].body); got != MaxWebhookBodyBytes {
			t.Fatalf("verified %d bytes, want %d", got, MaxWebhookBodyBytes)
		}
	})

	t.Run("oversize", func(t *testing.T) {
		t.Parallel()
		h, factory := newWebhookHandler(true)
		body := strings.Repeat("a", MaxWebhookBodyBytes+1)

		rec := httptest.NewRecorder()
		h.Receive(rec, httptest.NewRequest(http.MethodPost, "/slack-webhook/", strings.NewReader(body)))

		if rec.Code != http.StatusRequestEntityTooLarge {
			t.Fatalf("status = %d, want 413", rec.Code)
		}
		if len(factory.secrets) != 0 || len(factory.verifier.calls) != 0 {
			t.Fatal("oversize body must not reach the verifier")
		}
	})
}
