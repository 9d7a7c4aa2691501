package auth

import (
	"context"
	"net/http"
)

// Identity is placed into the request context by the auth middleware.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type ctxUserKey struct{}

// FromContext returns the signed-in user, or nil for guests.
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(ctxUserKey{}).(*Identity)
	return id
}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxUserKey{}, id)
}

// Authenticator resolves request tokens to users that still exist.
type Authenticator struct {
	Tokens  *Tokens
	Users   *Users
	Cookies Cookies
}

func (a *Authenticator) identify(r *http.Request) (*Identity, error) {
	raw := a.Cookies.Token(r)
	if raw == "" {
		return nil, ErrInvalidToken
	}
	c, err := a.Tokens.Parse(raw)
	if err != nil {
		return nil, err
	}
	if _, err := a.Users.FindByID(r.Context(), c.ID); err != nil {
		return nil, ErrInvalidToken
	}
	return &Identity{ID: c.ID, Username: c.Username}, nil
}

// Optional decorates requests with the user when a valid token is present.
// It never rejects; guests pass through.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, err := a.identify(r); err == nil {
			r = r.WithContext(WithIdentity(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// Require rejects requests without a valid token for an existing user.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.Cookies.Token(r) == "" {
			http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
			return
		}
		id, err := a.identify(r)
		if err != nil {
			http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}
