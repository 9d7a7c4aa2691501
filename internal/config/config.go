// internal/config/config.go
//
// Environment-driven configuration for the server and the puzzles CLI.
// Values come from the process environment (optionally seeded from .env by
// godotenv in main). Missing or malformed values fall back to defaults.

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const devSecret = "dev_secret_change_me"

type Config struct {
	Port     string
	LogLevel string

	DBDriver  string // "sqlite3" (mattn, cgo) or "sqlite" (modernc)
	DBPath    string
	PlayStore string // "sql" or "memory"

	JWTSecret     string
	JWTExpires    time.Duration
	CookieName    string
	SessionCookie string
	ClientOrigin  string
	Production    bool

	DailySalt       string
	DailyTZ         *time.Location
	HangmanMaxWrong int
	PhrasesFile     string
	GameURL         string
}

// Load reads the environment.
func Load() Config {
	c := Config{
		Port:            getEnv("PORT", "5175"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DBDriver:        getEnv("DB_DRIVER", "sqlite3"),
		DBPath:          getEnv("DB_PATH", "./data/app.db"),
		PlayStore:       strings.ToLower(getEnv("PLAY_STORE", "sql")),
		JWTSecret:       getEnv("JWT_SECRET", devSecret),
		JWTExpires:      time.Duration(getInt("JWT_EXPIRES_DAYS", 14)) * 24 * time.Hour,
		CookieName:      getEnv("COOKIE_NAME", "playseed_token"),
		SessionCookie:   getEnv("SESSION_COOKIE", "sid"),
		ClientOrigin:    getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		Production:      getEnv("APP_ENV", os.Getenv("NODE_ENV")) == "production",
		DailySalt:       os.Getenv("DAILY_SALT"),
		DailyTZ:         getLocation("DAILY_TZ", "America/New_York"),
		HangmanMaxWrong: getInt("HANGMAN_MAX_WRONG", 6),
		PhrasesFile:     os.Getenv("PHRASES_FILE"),
		GameURL:         os.Getenv("GAME_URL"),
	}
	if c.HangmanMaxWrong < 1 {
		c.HangmanMaxWrong = 6
	}
	if c.Production && c.JWTSecret == devSecret {
		log.Warn().Msg("JWT_SECRET is unset in production; using the development secret")
	}
	return c
}

// Addr is the listen address for Port.
func (c Config) Addr() string { return ":" + c.Port }

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		return def
	}
	return n
}

func getLocation(k, def string) *time.Location {
	name := getEnv(k, def)
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warn().Err(err).Str("key", k).Msg("unknown time zone, using UTC")
		return time.UTC
	}
	return loc
}
