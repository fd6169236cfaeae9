// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's game (creates or reuses session)
//   - POST /daily/guess       → submit a guess for today's game
//   - GET  /daily/leaderboard → top results for today (or ?date=YYYY-MM-DD)
//
// Each player (user or anonymous cookie) can play once per day; the result is
// written to daily_results when the game ends. The answer is picked from the
// dictionary by date + DAILY_SALT.

package httpserver

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-core/internal/daily"
	"github.com/robalobadob/wordle/apps/go-core/internal/game"
	"github.com/robalobadob/wordle/apps/go-core/internal/store"
)

// dailyServer tracks which session each player uses for a date.
type dailyServer struct {
	store    *daily.Store
	mu       sync.Mutex
	sessions map[string]string // owner|date → game ID
}

func (d *dailyServer) forget(owner, date string) {
	d.mu.Lock()
	delete(d.sessions, owner+"|"+date)
	d.mu.Unlock()
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	s.daily = &dailyServer{
		store:    daily.NewStore(s.cfg.DB.SQL),
		sessions: make(map[string]string),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", s.handleDailyNew)
		r.Post("/guess", s.handleGuess)
		r.Get("/leaderboard", s.handleLeaderboard)
	})
}

type dailyNewRes struct {
	GameID    string `json:"gameId,omitempty"`
	Date      string `json:"date"`
	Played    bool   `json:"played"`
	TurnLimit int    `json:"turnLimit"`
}

// handleDailyNew returns Played=true if the player already has a result for
// today, otherwise the ID of today's session (new or existing).
func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	owner := s.requester(r)
	if owner == "" {
		owner = s.ensureAnonID(w, r)
	}
	date := s.dateKey()
	res := dailyNewRes{Date: date, TurnLimit: game.TurnLimit}

	played, err := s.daily.store.AlreadyPlayed(r.Context(), owner, date)
	if err != nil {
		log.Error().Err(err).Msg("daily already played")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if played {
		res.Played = true
		writeJSON(w, http.StatusOK, res)
		return
	}

	key := owner + "|" + date
	s.daily.mu.Lock()
	defer s.daily.mu.Unlock()
	if id, ok := s.daily.sessions[key]; ok {
		res.GameID = id
		writeJSON(w, http.StatusOK, res)
		return
	}

	sess := &store.Session{
		ID:        genID(),
		Owner:     owner,
		Daily:     date,
		Board:     game.NewBoard(daily.Word(s.cfg.Now(), s.cfg.DailySalt, s.cfg.Dict)),
		StartedAt: s.cfg.Now(),
	}
	if me := currentUser(r); me != nil {
		sess.PlayerID = me.ID
	}
	if err := s.cfg.Sessions.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save daily game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	s.daily.sessions[key] = sess.ID
	res.GameID = sess.ID
	writeJSON(w, http.StatusOK, res)
}

type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = s.dateKey()
	}
	rows, err := s.daily.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		log.Error().Err(err).Msg("daily leaderboard")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
