package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const sessionTTL = 180 * 24 * time.Hour

// Cookies writes and reads the auth token and anonymous session cookies.
type Cookies struct {
	AuthName    string
	SessionName string
	Secure      bool // production: Secure + SameSite=None
}

func (c Cookies) sameSite() http.SameSite {
	if c.Secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// SetAuth writes the auth token cookie.
func (c Cookies) SetAuth(w http.ResponseWriter, token string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.AuthName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.sameSite(),
		Expires:  exp,
	})
}

// ClearAuth deletes the auth token cookie.
func (c Cookies) ClearAuth(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.AuthName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.sameSite(),
		MaxAge:   -1,
	})
}

// Token extracts a bearer token from the Authorization header or the auth cookie.
func (c Cookies) Token(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if ck, err := r.Cookie(c.AuthName); err == nil {
		return ck.Value
	}
	return ""
}

// EnsureSession returns the anonymous session id, issuing a cookie on first contact.
func (c Cookies) EnsureSession(w http.ResponseWriter, r *http.Request) string {
	if ck, err := r.Cookie(c.SessionName); err == nil && ck.Value != "" {
		return ck.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     c.SessionName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.sameSite(),
		Expires:  time.Now().Add(sessionTTL),
	})
	return id
}
