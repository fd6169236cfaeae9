// cmd/wordle/main.go
//
// Terminal Wordle.
//
// Picks a random word, reads guesses from stdin, renders each scored guess
// (coloured when stdout is a terminal) and, at the end, updates the stats
// file and prints the win histogram.
//
// Environment variables:
//   WORDLE_SEED=<uint64>          fixed seed for the word pick (default: clock)
//   WORDLE_STATS_FILE=<path>      default ~/.wordle_stats
//   WORDS_FILE=<path>             alternate word list
//   LOG_LEVEL=warn

package main

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "warn")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	opts := options{
		statsFile: getEnv("WORDLE_STATS_FILE", defaultStatsFile()),
		colour:    term.IsTerminal(int(os.Stdout.Fd())),
	}
	if v := os.Getenv("WORDLE_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			log.Fatal().Err(err).Str("WORDLE_SEED", v).Msg("invalid seed")
		}
		opts.seed = &seed
	}

	if err := run(os.Stdin, os.Stdout, opts); err != nil {
		log.Fatal().Err(err).Msg("wordle")
	}
}

func defaultStatsFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wordle_stats"
	}
	return filepath.Join(home, ".wordle_stats")
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
