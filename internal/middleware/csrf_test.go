package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func csrfTestHandler() http.Handler {
	return CSRF(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(CSRFToken(r.Context())))
	}))
}

func TestCSRFIssuesTokenOnSafeRequest(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	csrfTestHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == CSRFCookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("csrf cookie not issued")
	}
	if rec.Body.String() != cookie.Value {
		t.Fatalf("context token %q != cookie %q", rec.Body.String(), cookie.Value)
	}
}

func TestCSRFReusesExistingToken(t *testing.T) {
	t.Parallel()

	token := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: token})
	rec := httptest.NewRecorder()
	csrfTestHandler().ServeHTTP(rec, req)

	if rec.Body.String() != token {
		t.Fatalf("token = %q, want %q", rec.Body.String(), token)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("cookie should not be reissued")
	}
}

func TestCSRFUnsafeMethods(t *testing.T) {
	t.Parallel()

	token := uuid.NewString()

	testCases := []struct {
		name       string
		cookie     string
		formToken  string
		header     string
		wantStatus int
	}{
		{name: "form token matches", cookie: token, formToken: token, wantStatus: http.StatusOK},
		{name: "header token matches", cookie: token, header: token, wantStatus: http.StatusOK},
		{name: "missing submitted token", cookie: token, wantStatus: http.StatusForbidden},
		{name: "mismatched token", cookie: token, formToken: uuid.NewString(), wantStatus: http.StatusForbidden},
		{name: "missing cookie", formToken: token, wantStatus: http.StatusForbidden},
		{name: "malformed cookie", cookie: "abc", formToken: "abc", wantStatus: http.StatusForbidden},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			form := url.Values{"channel": {"c"}}
			if tc.formToken != "" {
				form.Set(CSRFFormField, tc.formToken)
			}
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: tc.cookie})
			}
			if tc.header != "" {
				req.Header.Set(CSRFHeaderName, tc.header)
			}

			rec := httptest.NewRecorder()
			csrfTestHandler().ServeHTTP(rec, req)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}
