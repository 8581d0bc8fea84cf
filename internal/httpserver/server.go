// internal/httpserver/server.go
//
// HTTP server wiring for the Boggle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     zerolog access log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Round endpoints (optional auth): /game/new, /game/{id}, /game/word,
//     /game/check, /game/finish.
//   - Daily board endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me, /games/mine.
//
// Notes:
//   - Live rounds sit in the in-memory store; a row per round is kept in
//     SQLite for history and totals (best effort, failures are logged).
//   - Optional auth decorates requests with user context when a valid token is
//     present; guests are tracked by an anonymous cookie.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/boggle/internal/auth"
	"github.com/robalobadob/boggle/internal/board"
	"github.com/robalobadob/boggle/internal/config"
	"github.com/robalobadob/boggle/internal/game"
	"github.com/robalobadob/boggle/internal/store"
	"github.com/robalobadob/boggle/internal/words"
)

// maxSide bounds client-requested board dimensions.
const maxSide = 12

// Server bundles router, live-round store, DB handle and dictionary.
type Server struct {
	r     *chi.Mux
	cfg   config.Config
	store store.Store
	db    *sql.DB
	auth  *auth.Service
	dict  *words.Dictionary
	daily *dailyServer
	now   func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, st store.Store, db *sql.DB, dict *words.Dictionary) *Server {
	s := &Server{
		r:     chi.NewRouter(),
		cfg:   cfg,
		store: st,
		db:    db,
		auth:  auth.NewService(db, cfg.JWTSecret, cfg.JWTExpires),
		dict:  dict,
		now:   time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(hlog.NewHandler(log.Logger))
	s.r.Use(accessLog)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "boggle-go",
			"endpoints": []string{"/health", "POST /game/new", "POST /game/word", "POST /game/finish", "/daily/*", "/auth/*"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{"words": s.dict.Len()})
	})

	// Round endpoints — OPTIONAL AUTH (guests can play)
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		r.Post("/game/new", s.handleNewGame)
		r.Get("/game/{id}", s.handleGetGame)
		r.Post("/game/word", s.handleWord)
		r.Post("/game/check", s.handleCheck)
		r.Post("/game/finish", s.handleFinish)
		s.mountDaily(r)
	})

	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// ServeHTTP makes Server an http.Handler (used by tests and Start).
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

// ------------------------------ ROUNDS -------------------------------------

// newGameReq is the optional payload for POST /game/new; zero fields use the
// server configuration.
type newGameReq struct {
	Height    int   `json:"height"`
	Width     int   `json:"width"`
	LetterMax int   `json:"letterMax"`
	Seed      int64 `json:"seed"`
}

func (s *Server) roundOptions(req newGameReq) game.Options {
	o := game.Options{
		Height:    s.cfg.BoardHeight,
		Width:     s.cfg.BoardWidth,
		LetterMax: s.cfg.LetterMax,
		MinLen:    s.cfg.MinWordLen,
		Duration:  s.cfg.RoundTime,
		Seed:      req.Seed,
		Now:       s.now(),
	}
	if req.Height != 0 {
		o.Height = req.Height
	}
	if req.Width != 0 {
		o.Width = req.Width
	}
	if req.LetterMax != 0 {
		o.LetterMax = req.LetterMax
	}
	return o
}

// handleNewGame generates a board, stores the round, and records an owner
// row (user_id or anonymous_id) for history.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		jsonError(w, http.StatusBadRequest, "bad_json")
		return
	}

	if req.Height > maxSide || req.Width > maxSide {
		jsonError(w, http.StatusBadRequest, "bad_config")
		return
	}
	rd, err := game.New(s.roundOptions(req))
	if err != nil {
		if errors.Is(err, board.ErrConfig) {
			jsonError(w, http.StatusBadRequest, "bad_config")
			return
		}
		hlog.FromRequest(r).Error().Err(err).Msg("new round")
		jsonError(w, http.StatusInternalServerError, "new_failed")
		return
	}
	clause, arg := s.owner(w, r)
	rd.Owner = arg
	if err := s.store.Save(r.Context(), rd); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save round")
		jsonError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	col := strings.TrimSuffix(clause, "=?")
	_, err = s.db.ExecContext(r.Context(),
		`INSERT INTO games (id, `+col+`, seed, board, started_at, status) VALUES (?,?,?,?,?,?)`,
		rd.ID, arg, rd.Seed, strings.Join(rd.Grid.Rows(), "/"), rd.StartedAt.UTC().Format(time.RFC3339), string(game.StatePlaying))
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("gameId", rd.ID).Msg("insert game row")
	}

	writeJSON(w, http.StatusOK, rd.View(s.now()))
}

// handleGetGame returns the current view of a round.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	rd, ok := s.ownedRound(r, chi.URLParam(r, "id"))
	if !ok {
		jsonError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, rd.View(s.now()))
}

// wordReq is the payload for POST /game/word and /game/check.
type wordReq struct {
	GameID string `json:"gameId"`
	Word   string `json:"word"`
}

type wordRes struct {
	Words []string   `json:"words"`
	State game.State `json:"state"`
	Error string     `json:"error,omitempty"`
}

// handleWord adds a word to a round's list.
func (s *Server) handleWord(w http.ResponseWriter, r *http.Request) {
	var req wordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "bad_json")
		return
	}
	rd, ok := s.ownedRound(r, req.GameID)
	if !ok {
		jsonError(w, http.StatusNotFound, "not_found")
		return
	}
	s.addWord(w, rd, req.Word)
}

// addWord applies a word and writes the resulting list; shared with /daily.
func (s *Server) addWord(w http.ResponseWriter, rd *game.Round, word string) {
	now := s.now()
	list, err := rd.AddWord(word, now)
	res := wordRes{Words: list, State: rd.State(now)}
	if err != nil {
		res.Error = err.Error()
		writeJSON(w, roundErrStatus(err), res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleCheck reports whether a word is on the board and in the dictionary,
// with the path that spells it.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req wordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "bad_json")
		return
	}
	rd, ok := s.ownedRound(r, req.GameID)
	if !ok {
		jsonError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, game.Check(rd.Grid, s.dict, req.Word, rd.MinLen))
}

type finishReq struct {
	GameID string `json:"gameId"`
}

type finishRes struct {
	*game.Summary
	Total int `json:"total"` // running total over all finished rounds of this player
}

// handleFinish scores the round, persists it once, and returns the summary.
func (s *Server) handleFinish(w http.ResponseWriter, r *http.Request) {
	var req finishReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "bad_json")
		return
	}
	rd, ok := s.ownedRound(r, req.GameID)
	if !ok || rd.Daily != "" {
		jsonError(w, http.StatusNotFound, "not_found")
		return
	}
	already := rd.State(s.now()) == game.StateFinished
	sum := rd.Finish(s.dict)

	clause, arg := s.owner(w, r)
	if !already {
		s.recordFinish(r, rd, sum, clause, arg)
	}
	var total int
	if err := s.db.QueryRowContext(r.Context(),
		`SELECT COALESCE(SUM(score),0) FROM games WHERE status='finished' AND `+clause, arg).Scan(&total); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("sum scores")
		total = sum.Score
	}
	writeJSON(w, http.StatusOK, finishRes{Summary: sum, Total: total})
}

// recordFinish stores the result row and bumps user totals in one transaction.
func (s *Server) recordFinish(r *http.Request, rd *game.Round, sum *game.Summary, clause, arg string) {
	ctx := r.Context()
	logger := hlog.FromRequest(r)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Warn().Err(err).Msg("begin finish tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE games SET status=?, finished_at=?, words=?, score=? WHERE id=? AND `+clause,
		string(game.StateFinished), s.now().UTC().Format(time.RFC3339), len(sum.Results), sum.Score, rd.ID, arg)
	if err != nil {
		logger.Warn().Err(err).Str("gameId", rd.ID).Msg("finish game row")
		return
	}
	// totals only move when this caller's row was the one finished
	if n, err := res.RowsAffected(); err != nil || n != 1 {
		logger.Warn().Err(err).Int64("rows", n).Str("gameId", rd.ID).Msg("finish game row not owned")
		return
	}
	if me := userFrom(r); me != nil {
		if err := auth.RecordRound(ctx, tx, me.ID, sum.Score); err != nil {
			logger.Warn().Err(err).Str("user", me.ID).Msg("record round")
			return
		}
	}
	if err := tx.Commit(); err != nil {
		logger.Warn().Err(err).Msg("commit finish tx")
	}
}

// owner returns the SQL predicate and argument identifying the caller's rows.
func (s *Server) owner(w http.ResponseWriter, r *http.Request) (string, string) {
	if me := userFrom(r); me != nil {
		return "user_id=?", me.ID
	}
	return "anonymous_id=?", s.ensureAnonID(w, r)
}

// ownedRound loads a live round started by the caller, under their account
// or under their guest cookie (rounds begun as a guest survive signup).
func (s *Server) ownedRound(r *http.Request, id string) (*game.Round, bool) {
	rd, err := s.store.Get(r.Context(), id)
	if err != nil || rd.Owner == "" {
		return nil, false
	}
	if me := userFrom(r); me != nil && me.ID == rd.Owner {
		return rd, true
	}
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value == rd.Owner {
		return rd, true
	}
	return nil, false
}

// roundErrStatus maps round errors to HTTP status codes.
func roundErrStatus(err error) int {
	switch {
	case errors.Is(err, game.ErrTimeUp), errors.Is(err, game.ErrFinished), errors.Is(err, game.ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
