package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"github.com/robalobadob/playseed/assets"
	"github.com/robalobadob/playseed/internal/db"
)

func newUsers(t *testing.T) *Users {
	t.Helper()
	conn, err := db.OpenAndMigrate("sqlite", ":memory:", assets.Migrations())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	u := NewUsers(conn)
	u.cost = bcrypt.MinCost
	return u
}

func TestSignupAndLogin(t *testing.T) {
	users := newUsers(t)
	ctx := context.Background()

	u, err := users.Create(ctx, "  Alice_1 ", "correct horse")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Username != "Alice_1" {
		t.Fatalf("username = %q", u.Username)
	}
	if _, err := users.Create(ctx, "alice_1", "another password"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("duplicate err = %v", err)
	}

	got, err := users.Authenticate(ctx, "ALICE_1", "correct horse")
	if err != nil || got.ID != u.ID {
		t.Fatalf("login: %v %+v", err, got)
	}
	if _, err := users.Authenticate(ctx, "alice_1", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("bad password err = %v", err)
	}
	if _, err := users.Authenticate(ctx, "bob", "whatever1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user err = %v", err)
	}
}

func TestSignupValidation(t *testing.T) {
	users := newUsers(t)
	cases := []struct{ name, user, pw string }{
		{"short name", "ab", "password1"},
		{"bad chars", "bad name", "password1"},
		{"short password", "carol", "short"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := users.Create(context.Background(), c.user, c.pw); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestBumpStats(t *testing.T) {
	users := newUsers(t)
	ctx := context.Background()
	u, err := users.Create(ctx, "dave", "password1")
	if err != nil {
		t.Fatal(err)
	}
	for _, won := range []bool{true, true, false, true} {
		if err := users.BumpStats(ctx, u.ID, won); err != nil {
			t.Fatal(err)
		}
	}
	got, _ := users.FindByID(ctx, u.ID)
	if got.GamesPlayed != 4 || got.Wins != 3 || got.Streak != 1 {
		t.Fatalf("stats = %d/%d/%d", got.GamesPlayed, got.Wins, got.Streak)
	}
	if err := users.BumpStats(ctx, "ghost", true); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("ghost err = %v", err)
	}
}

func TestTokens(t *testing.T) {
	tok := NewTokens("s3cret", time.Hour)
	raw, exp, err := tok.Sign("u1", "erin")
	if err != nil {
		t.Fatal(err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry in the past: %v", exp)
	}
	c, err := tok.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	if c.ID != "u1" || c.Username != "erin" {
		t.Fatalf("claims = %+v", c)
	}

	if _, err := NewTokens("other", time.Hour).Parse(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("wrong secret err = %v", err)
	}

	expired := NewTokens("s3cret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, _ := expired.Sign("u1", "erin")
	if _, err := tok.Parse(old); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired err = %v", err)
	}
}

func TestMiddleware(t *testing.T) {
	users := newUsers(t)
	u, err := users.Create(context.Background(), "frank", "password1")
	if err != nil {
		t.Fatal(err)
	}
	a := &Authenticator{
		Tokens:  NewTokens("k", time.Hour),
		Users:   users,
		Cookies: Cookies{AuthName: "tok", SessionName: "sid"},
	}
	raw, _, _ := a.Tokens.Sign(u.ID, u.Username)
	ghost, _, _ := a.Tokens.Sign("ghost", "ghost")

	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := FromContext(r.Context()); id != nil {
			w.Write([]byte(id.Username))
		}
	})

	cases := []struct {
		name       string
		header     string
		cookie     string
		handler    http.Handler
		wantStatus int
		wantBody   string
	}{
		{"optional guest", "", "", a.Optional(echo), 200, ""},
		{"optional cookie", "", raw, a.Optional(echo), 200, "frank"},
		{"optional deleted user", "Bearer " + ghost, "", a.Optional(echo), 200, ""},
		{"require missing", "", "", a.Require(echo), 401, `{"error":"Unauthorized"}` + "\n"},
		{"require bearer", "Bearer " + raw, "", a.Require(echo), 200, "frank"},
		{"require garbage", "Bearer nope", "", a.Require(echo), 401, `{"error":"Invalid token"}` + "\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if c.header != "" {
				req.Header.Set("Authorization", c.header)
			}
			if c.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "tok", Value: c.cookie})
			}
			rec := httptest.NewRecorder()
			c.handler.ServeHTTP(rec, req)
			if rec.Code != c.wantStatus || rec.Body.String() != c.wantBody {
				t.Fatalf("got %d %q, want %d %q", rec.Code, rec.Body.String(), c.wantStatus, c.wantBody)
			}
		})
	}
}

func TestEnsureSession(t *testing.T) {
	c := Cookies{AuthName: "tok", SessionName: "sid"}

	rec := httptest.NewRecorder()
	id := c.EnsureSession(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if id == "" {
		t.Fatal("no session id")
	}
	set := rec.Result().Cookies()
	if len(set) != 1 || set[0].Name != "sid" || set[0].Value != id {
		t.Fatalf("cookies = %+v", set)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "existing"})
	rec = httptest.NewRecorder()
	if got := c.EnsureSession(rec, req); got != "existing" {
		t.Fatalf("got %q", got)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("existing session should not be reissued")
	}
}
