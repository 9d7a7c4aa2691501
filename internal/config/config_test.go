package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "PLAY_STORE", "JWT_EXPIRES_DAYS", "HANGMAN_MAX_WRONG",
		"APP_ENV", "NODE_ENV", "DAILY_TZ", "COOKIE_NAME", "SESSION_COOKIE"} {
		t.Setenv(k, "")
	}
	c := Load()
	if c.Addr() != ":5175" {
		t.Errorf("addr = %q", c.Addr())
	}
	if c.DBDriver != "sqlite3" || c.PlayStore != "sql" {
		t.Errorf("db = %s/%s", c.DBDriver, c.PlayStore)
	}
	if c.JWTExpires != 14*24*time.Hour {
		t.Errorf("jwt expiry = %v", c.JWTExpires)
	}
	if c.HangmanMaxWrong != 6 || c.Production {
		t.Errorf("maxWrong=%d production=%v", c.HangmanMaxWrong, c.Production)
	}
	if c.CookieName != "playseed_token" || c.SessionCookie != "sid" {
		t.Errorf("cookies = %s/%s", c.CookieName, c.SessionCookie)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("PLAY_STORE", "MEMORY")
	t.Setenv("JWT_EXPIRES_DAYS", "2")
	t.Setenv("HANGMAN_MAX_WRONG", "0")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("APP_ENV", "")
	t.Setenv("DAILY_TZ", "UTC")

	c := Load()
	if c.Addr() != ":8080" || c.PlayStore != "memory" {
		t.Errorf("got %+v", c)
	}
	if c.JWTExpires != 48*time.Hour {
		t.Errorf("jwt expiry = %v", c.JWTExpires)
	}
	if c.HangmanMaxWrong != 6 {
		t.Errorf("non-positive max wrong should fall back, got %d", c.HangmanMaxWrong)
	}
	if !c.Production {
		t.Error("NODE_ENV=production should enable production mode")
	}
	if c.DailyTZ != time.UTC {
		t.Errorf("tz = %v", c.DailyTZ)
	}
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("JWT_EXPIRES_DAYS", "soon")
	t.Setenv("DAILY_TZ", "Mars/Olympus_Mons")
	c := Load()
	if c.JWTExpires != 14*24*time.Hour {
		t.Errorf("jwt expiry = %v", c.JWTExpires)
	}
	if c.DailyTZ != time.UTC {
		t.Errorf("tz = %v", c.DailyTZ)
	}
}
