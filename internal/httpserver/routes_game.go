// internal/httpserver/routes_game.go
//
// Game sessions over HTTP.
//   - POST /game/new   {answer?}        → {gameId, turnLimit}
//   - POST /game/guess {gameId, guess}  → score, packed score, state, turn
//
// The daily game shares the guess path; see routes_daily.go.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/robalobadob/wordle/apps/go-core/internal/daily"
	"github.com/robalobadob/wordle/apps/go-core/internal/game"
	"github.com/robalobadob/wordle/apps/go-core/internal/store"
	"github.com/robalobadob/wordle/apps/go-core/internal/words"
)

var (
	errNotInList = errors.New("not in word list")
	errNotYours  = errors.New("not your game")
)

type newGameReq struct {
	Answer string `json:"answer"` // optional fixed answer; the game is not recorded in stats
}

type newGameRes struct {
	GameID    string `json:"gameId"`
	TurnLimit int    `json:"turnLimit"`
}

// handleNewGame starts a game against a random (or requested) dictionary word.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	var secret words.Word
	if req.Answer == "" {
		secret = s.cfg.Dict.Random(s.cfg.Rand)
	} else {
		wd, err := s.checkWord(req.Answer)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		secret = wd
	}

	sess := &store.Session{
		ID:        genID(),
		Board:     game.NewBoard(secret),
		StartedAt: s.cfg.Now(),
	}
	if me := currentUser(r); me != nil {
		sess.Owner = me.ID
		// A chosen answer is practice: it never counts towards stats.
		if req.Answer == "" {
			sess.PlayerID = me.ID
		}
	}
	if err := s.cfg.Sessions.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusOK, newGameRes{GameID: sess.ID, TurnLimit: game.TurnLimit})
}

type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
	Word   string `json:"word"` // accepted as an alias of guess
}

type guessRes struct {
	Score     game.Score  `json:"score"`
	Marks     []int       `json:"marks"` // 0=wrong, 1=in word, 2=right
	Packed    game.Packed `json:"packed"`
	State     game.State  `json:"state"`
	Turn      int         `json:"turn"`
	Remaining int         `json:"remaining"`
	Answer    string      `json:"answer,omitempty"` // revealed once the game is lost
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.Guess == "" {
		req.Guess = req.Word
	}
	res, err := s.applyGuess(r.Context(), s.requester(r), req.GameID, req.Guess)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, res)
	case errors.Is(err, store.ErrNotFound), errors.Is(err, errNotYours):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, game.ErrGameFinished):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, words.ErrInvalidInput), errors.Is(err, errNotInList):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Str("gameId", req.GameID).Msg("guess")
		writeError(w, http.StatusInternalServerError, "server_error")
	}
}

// applyGuess scores guess against the session's board and persists the
// outcome once the game ends.
func (s *Server) applyGuess(ctx context.Context, requester, gameID, guess string) (*guessRes, error) {
	g, err := s.checkWord(guess)
	if err != nil {
		return nil, err
	}

	var (
		res  guessRes
		done *store.Session
	)
	err = s.cfg.Sessions.Update(ctx, gameID, func(sess *store.Session) error {
		if sess.Owner != "" && sess.Owner != requester {
			return errNotYours
		}
		score, err := sess.Board.Submit(g)
		if err != nil {
			return err
		}
		res = guessRes{
			Score:     score,
			Marks:     lo.Map(score[:], func(l game.LetterScore, _ int) int { return int(l) }),
			Packed:    score.Pack(),
			State:     sess.Board.State(),
			Turn:      sess.Board.Turn(),
			Remaining: sess.Board.Remaining(),
		}
		if res.State == game.Lost {
			res.Answer = sess.Board.Secret().String()
		}
		if sess.Board.Finished() {
			done = sess
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if done != nil {
		s.finish(ctx, done)
	}
	return &res, nil
}

// finish records a finished game (best effort). The session stays so later
// guesses get a "game finished" answer.
func (s *Server) finish(ctx context.Context, sess *store.Session) {
	if err := s.cfg.DB.RecordGame(ctx, sess.ID, sess.PlayerID, sess.Board); err != nil {
		log.Warn().Err(err).Str("gameId", sess.ID).Msg("record game")
	}
	if sess.Daily != "" && sess.Owner != "" {
		err := s.daily.store.InsertResult(ctx, daily.Result{
			PlayerID: sess.Owner,
			Date:     sess.Daily,
			Guesses:  sess.Board.Turn(),
			Won:      sess.Board.Won(),
		})
		if err != nil {
			// Keep the owner mapped to this finished session so /daily/new
			// does not hand out a second game for the date.
			log.Warn().Err(err).Str("gameId", sess.ID).Msg("record daily result")
		} else {
			s.daily.forget(sess.Owner, sess.Daily)
		}
	}
	log.Info().
		Str("gameId", sess.ID).
		Str("player", sess.PlayerID).
		Stringer("state", sess.Board.State()).
		Int("turns", sess.Board.Turn()).
		Msg("game finished")
}

// checkWord parses raw input and requires it to be in the dictionary.
func (s *Server) checkWord(raw string) (words.Word, error) {
	w, err := words.Parse(raw)
	if err != nil {
		return w, err
	}
	if !s.cfg.Allowed.Contains(w) {
		return w, errNotInList
	}
	return w, nil
}
