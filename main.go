// main.go
//
// Entry point for the playseed server.
//   - Loads .env, configures zerolog, opens and migrates SQLite.
//   - Loads the phrase bank and seeds the Hangman catalogue on first run.
//   - Serves the HTTP API on PORT.

package main

import (
	"context"
	"database/sql"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/robalobadob/playseed/assets"
	"github.com/robalobadob/playseed/internal/config"
	"github.com/robalobadob/playseed/internal/db"
	"github.com/robalobadob/playseed/internal/httpserver"
	"github.com/robalobadob/playseed/internal/phrases"
	"github.com/robalobadob/playseed/internal/puzzles"
	"github.com/robalobadob/playseed/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	conn, err := db.OpenAndMigrate(cfg.DBDriver, cfg.DBPath, assets.Migrations())
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Str("path", cfg.DBPath).Msg("database")
	}
	defer conn.Close()

	if err := phrases.Init(cfg.PhrasesFile); err != nil {
		log.Fatal().Err(err).Msg("failed to load phrase bank")
	}
	if err := seedCatalogue(conn, cfg.DailySalt); err != nil {
		log.Warn().Err(err).Msg("seed hangman catalogue")
	}

	var plays store.Store
	switch cfg.PlayStore {
	case "memory":
		plays = store.NewMemoryStore()
	default:
		plays = store.NewSQLStore(conn)
	}

	srv := httpserver.New(cfg, conn, plays)
	log.Info().Str("port", cfg.Port).Str("plays", cfg.PlayStore).Msg("starting playseed server")
	if err := srv.Start(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// seedCatalogue imports the phrase bank when no puzzle exists yet.
func seedCatalogue(conn *sql.DB, salt string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ps := puzzles.New(conn, salt)
	total, _, err := ps.Counts(ctx)
	if err != nil || total > 0 {
		return err
	}
	created := 0
	for _, e := range phrases.All() {
		hint := e.Hint
		if hint == "" {
			hint = phrases.AutoHint(e.Category, e.Phrase)
		}
		ok, err := ps.UpsertByPhrase(ctx, e.Phrase, e.Category, hint)
		if err != nil {
			return err
		}
		if ok {
			created++
		}
	}
	log.Info().Int("created", created).Interface("categories", phrases.Stats()).Msg("seeded hangman catalogue")
	return nil
}
