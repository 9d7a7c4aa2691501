// internal/httpserver/server.go
//
// HTTP server wiring for the playseed backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Wurple endpoints (stateless replay): mounted under /wurple.
//   - Hangman endpoints (persisted plays): mounted under /hangman.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me.
//   - Anonymous session cookie shared by both games.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Optional auth decorates every game request with the signed-in user when
//     a valid token is present; guests still play under their session id.
//   - Responses never include a hidden phrase or an unrevealed solution.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/playseed/internal/auth"
	"github.com/robalobadob/playseed/internal/config"
	"github.com/robalobadob/playseed/internal/daily"
	"github.com/robalobadob/playseed/internal/puzzles"
	"github.com/robalobadob/playseed/internal/store"
)

// Server bundles the router and every store the handlers use.
type Server struct {
	r   *chi.Mux
	cfg config.Config
	db  *sql.DB

	plays   store.Store
	locks   *store.Locker
	puzzles *puzzles.Store
	results *daily.Store
	users   *auth.Users
	authn   *auth.Authenticator

	now func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
// plays may be memory- or SQL-backed; everything else lives in db.
func New(cfg config.Config, db *sql.DB, plays store.Store) *Server {
	users := auth.NewUsers(db)
	s := &Server{
		r:       chi.NewRouter(),
		cfg:     cfg,
		db:      db,
		plays:   plays,
		locks:   store.NewLocker(),
		puzzles: puzzles.New(db, cfg.DailySalt),
		results: daily.NewStore(db),
		users:   users,
		authn: &auth.Authenticator{
			Tokens: auth.NewTokens(cfg.JWTSecret, cfg.JWTExpires),
			Users:  users,
			Cookies: auth.Cookies{
				AuthName:    cfg.CookieName,
				SessionName: cfg.SessionCookie,
				Secure:      cfg.Production,
			},
		},
		now: time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                   // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFor(cfg.ClientOrigin))       // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "playseed",
			"endpoints": []string{"/health", "/wurple/*", "/hangman/*", "/auth/*"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	// Games: OPTIONAL AUTH (guests can play)
	s.r.Group(func(r chi.Router) {
		r.Use(s.authn.Optional)
		s.mountWurple(r)
		s.mountHangman(r)
	})

	// Auth + profile/stats
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFor enables credentialed CORS for a single origin.
func corsFor(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger logs method, path, status and latency at debug level.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads a JSON body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// sessionID returns the anonymous session id, issuing the cookie on first contact.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	return s.authn.Cookies.EnsureSession(w, r)
}

// userID is the signed-in user's id or "".
func userID(r *http.Request) string {
	if me := auth.FromContext(r.Context()); me != nil {
		return me.ID
	}
	return ""
}

// bumpStats records a finished game for a signed-in user. Best effort.
func (s *Server) bumpStats(r *http.Request, won bool) {
	uid := userID(r)
	if uid == "" {
		return
	}
	if err := s.users.BumpStats(r.Context(), uid, won); err != nil {
		log.Warn().Err(err).Str("user", uid).Msg("bump stats")
	}
}

// todayIn is the calendar date in loc (UTC when nil).
func (s *Server) todayIn(loc *time.Location) string {
	return daily.DateKeyIn(s.now(), loc)
}
