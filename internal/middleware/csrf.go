package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/google/uuid"
)

const (
	CSRFCookieName = "csrftoken"
	CSRFFormField  = "csrfmiddlewaretoken"
	CSRFHeaderName = "X-CSRFToken"
)

type csrfKey struct{}

// CSRF protects unsafe methods with a double-submit token: the csrftoken
// cookie must match the csrfmiddlewaretoken form field or the X-CSRFToken
// header. Safe methods get a token issued when the cookie is missing.
func CSRF(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if c, err := r.Cookie(CSRFCookieName); err == nil {
				if _, err := uuid.Parse(c.Value); err == nil {
					token = c.Value
				}
			}

			if !isSafeMethod(r.Method) {
				submitted := r.Header.Get(CSRFHeaderName)
				if submitted == "" {
					submitted = r.PostFormValue(CSRFFormField)
				}
				if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(submitted)) != 1 {
					http.Error(w, "CSRF verification failed", http.StatusForbidden)
					return
				}
			}

			if token == "" {
				token = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     CSRFCookieName,
					Value:    token,
					Path:     "/",
					MaxAge:   365 * 24 * 60 * 60,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), csrfKey{}, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CSRFToken returns the token for the current request, for embedding in forms.
func CSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(csrfKey{}).(string)
	return token
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}
