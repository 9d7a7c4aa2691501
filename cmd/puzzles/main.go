// cmd/puzzles/main.go
//
// Maintenance CLI for the Hangman catalogue.
//
// Usage:
//
//	puzzles import <category> <file>          import one phrase per line
//	puzzles schedule [-days N] [-start DATE]  fill the daily schedule (default: 365 days from tomorrow, UTC)
//	puzzles mark-eligible                     flag every puzzle for the daily rotation
//	puzzles stats                             print catalogue counts
//
// Reads the same environment as the server (DB_DRIVER, DB_PATH, DAILY_SALT).

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/robalobadob/playseed/assets"
	"github.com/robalobadob/playseed/internal/config"
	"github.com/robalobadob/playseed/internal/daily"
	"github.com/robalobadob/playseed/internal/db"
	"github.com/robalobadob/playseed/internal/phrases"
	"github.com/robalobadob/playseed/internal/puzzles"
)

const usage = `usage: puzzles <import|schedule|mark-eligible|stats> [args]`

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	cfg := config.Load()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	conn, err := db.OpenAndMigrate(cfg.DBDriver, cfg.DBPath, assets.Migrations())
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}
	defer conn.Close()

	ps := puzzles.New(conn, cfg.DailySalt)
	ctx := context.Background()

	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "import":
		err = runImport(ctx, ps, args)
	case "schedule":
		err = runSchedule(ctx, ps, args)
	case "mark-eligible":
		err = runMarkEligible(ctx, ps)
	case "stats":
		err = runStats(ctx, ps)
	default:
		err = fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
	if err != nil {
		log.Error().Err(err).Msg("puzzles")
		conn.Close()
		os.Exit(1)
	}
}

func runImport(ctx context.Context, ps *puzzles.Store, args []string) error {
	category, file := "General", "data/phrases.txt"
	if len(args) > 0 {
		category = args[0]
	}
	if len(args) > 1 {
		file = args[1]
	}
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("open %s: %w", file, err)
	}
	defer f.Close()

	entries, err := phrases.ParseLines(category, f)
	if err != nil {
		return err
	}
	var created, updated int
	for _, e := range entries {
		ok, err := ps.UpsertByPhrase(ctx, e.Phrase, e.Category, phrases.AutoHint(e.Category, e.Phrase))
		if err != nil {
			return fmt.Errorf("import %q: %w", e.Phrase, err)
		}
		if ok {
			created++
		} else {
			updated++
		}
	}
	log.Info().Str("category", category).Int("created", created).Int("updated", updated).Msg("import done")
	return nil
}

func runSchedule(ctx context.Context, ps *puzzles.Store, args []string) error {
	fs := flag.NewFlagSet("schedule", flag.ContinueOnError)
	days := fs.Int("days", 365, "number of days to schedule")
	startFlag := fs.String("start", "", "first date (YYYY-MM-DD, UTC); default tomorrow")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *days <= 0 {
		return errors.New("invalid -days")
	}

	start := daily.UTCMidnight(time.Now()).AddDate(0, 0, 1)
	if *startFlag != "" {
		t, err := daily.ParseDateKey(*startFlag)
		if err != nil {
			return fmt.Errorf("invalid -start: %w", err)
		}
		start = t
	}

	n, err := ps.GenerateSchedule(ctx, start, *days)
	if err != nil {
		return err
	}
	if n == 0 {
		log.Info().Msg("no new schedule rows needed")
		return nil
	}
	log.Info().Int("created", n).Str("from", daily.DateKey(start)).Int("days", *days).Msg("schedule generated")
	return nil
}

func runMarkEligible(ctx context.Context, ps *puzzles.Store) error {
	total, eligible, err := ps.Counts(ctx)
	if err != nil {
		return err
	}
	switch {
	case total == 0:
		log.Info().Msg("no puzzles found; import puzzles first")
		return nil
	case eligible == total:
		log.Info().Int("eligible", eligible).Msg("puzzles are already marked as eligible")
		return nil
	}
	n, err := ps.MarkAllEligible(ctx)
	if err != nil {
		return err
	}
	log.Info().Int64("updated", n).Msg("marked puzzles daily eligible")
	return nil
}

func runStats(ctx context.Context, ps *puzzles.Store) error {
	total, eligible, err := ps.Counts(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Total puzzles: %d\nDaily eligible puzzles: %d\n", total, eligible)
	return nil
}
