// Package flash keeps one-shot notices across a redirect in a signed cookie.
package flash

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieName = "messages"
	maxAge     = 10 * time.Minute
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Notice struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

func Success(text string) Notice { return Notice{Level: LevelSuccess, Text: text} }
func Error(text string) Notice   { return Notice{Level: LevelError, Text: text} }

type noticeClaims struct {
	Notices []Notice `json:"notices"`
	jwt.RegisteredClaims
}

type Store struct {
	key    []byte
	secure bool
	now    func() time.Time
}

func NewStore(secretKey string, secure bool) *Store {
	return &Store{
		key:    []byte(secretKey),
		secure: secure,
		now:    time.Now,
	}
}

// Add appends n to the notices pending on r and writes the cookie to w.
func (s *Store) Add(w http.ResponseWriter, r *http.Request, n Notice) error {
	notices := append(s.Peek(r), n)
	value, err := s.Encode(notices)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Peek returns the notices pending on r without consuming them.
func (s *Store) Peek(r *http.Request) []Notice {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}
	notices, err := s.Decode(c.Value)
	if err != nil {
		return nil
	}
	return notices
}

// Pop returns the pending notices and clears the cookie.
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) []Notice {
	notices := s.Peek(r)
	if _, err := r.Cookie(CookieName); err == nil {
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   s.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return notices
}

// Encode signs notices into a cookie value.
func (s *Store) Encode(notices []Notice) (string, error) {
	now := s.now()
	claims := noticeClaims{
		Notices: notices,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(maxAge)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// Decode verifies a cookie value and returns its notices.
func (s *Store) Decode(value string) ([]Notice, error) {
	var claims noticeClaims
	token, err := jwt.ParseWithClaims(value, &claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid notice token")
	}
	return claims.Notices, nil
}
