// main.go
//
// Wordle HTTP server.
//
// Startup:
//   - .env (optional) via godotenv, then environment variables.
//   - Word list (embedded or WORDS_FILE), checked for perfect-hash collisions.
//   - SQLite at DB_PATH with embedded migrations.
//   - chi router from internal/httpserver, served until SIGINT/SIGTERM.
//
// Environment variables:
//   PORT=5175  LOG_LEVEL=info  DB_PATH=./data/app.db
//   JWT_SECRET  JWT_EXPIRES_DAYS=14  COOKIE_NAME=wordle_token
//   CLIENT_ORIGIN=http://localhost:5173  DAILY_SALT  NODE_ENV

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/go-core/assets"
	"github.com/robalobadob/wordle/apps/go-core/internal/auth"
	"github.com/robalobadob/wordle/apps/go-core/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-core/internal/rng"
	"github.com/robalobadob/wordle/apps/go-core/internal/store"
	"github.com/robalobadob/wordle/apps/go-core/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}
	log.Info().Int("words", words.Default().Len()).Msg("word list loaded")

	db, err := store.Open(getEnv("DB_PATH", "./data/app.db"), assets.Migrations())
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	secret := getEnv("JWT_SECRET", "dev_secret_change_me")
	if secret == "dev_secret_change_me" {
		log.Warn().Msg("JWT_SECRET not set, using the development secret")
	}
	days := envInt("JWT_EXPIRES_DAYS", 14)

	srv := httpserver.New(httpserver.Config{
		Sessions:     store.NewMemoryStore(),
		DB:           db,
		Dict:         words.Default(),
		Allowed:      words.Allowed(),
		Rand:         rng.NewLocked(rng.NewTimeSeeded()),
		Issuer:       auth.NewIssuer(secret, time.Duration(days)*24*time.Hour),
		CookieName:   getEnv("COOKIE_NAME", "wordle_token"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		DailySalt:    getEnv("DAILY_SALT", "local_dev_salt"),
		Secure:       os.Getenv("NODE_ENV") == "production",
	})

	port := getEnv("PORT", "5175")
	hs := &http.Server{
		Addr:              ":" + port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", port).Msg("starting go-core")
		if err := hs.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		return hs.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server exited")
		db.Close()
		os.Exit(1)
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil && n > 0 {
		return n
	}
	return def
}
