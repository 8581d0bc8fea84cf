// internal/httpserver/routes_auth.go
//
// Account routes.
// Exposes:
//   - POST /auth/signup, /auth/login, /auth/logout
//   - GET  /auth/me, /stats/me, /games/mine (auth required)
//
// Signing in moves the caller's guest rounds onto the account.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/boggle/internal/auth"
)

// credentials is the payload for signup/login.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// mountAuthRoutes registers authentication + gated routes (/auth/*, /stats/me, /games/mine).
func (s *Server) mountAuthRoutes() {
	s.r.Post("/auth/signup", s.handleSignup)
	s.r.Post("/auth/login", s.handleLogin)
	s.r.Post("/auth/logout", s.handleLogout)

	s.r.Group(func(r chi.Router) {
		r.Use(s.requireAuth())
		r.Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, userFrom(r))
		})
		r.Get("/stats/me", s.handleStats)
		r.Get("/games/mine", s.handleMyGames)
	})
}

// handleSignup creates a new user, signs a JWT, sets auth cookie, and claims anon history.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	u, err := s.auth.CreateUser(r.Context(), body.Username, body.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			jsonError(w, http.StatusConflict, "Username taken")
			return
		}
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !s.startSession(w, r, u) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": u.ID, "username": u.Username, "createdAt": u.CreatedAt})
}

// handleLogin authenticates user, sets cookie, and claims anon history.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	u, err := s.auth.Authenticate(r.Context(), body.Username, body.Password)
	if err != nil {
		jsonError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if !s.startSession(w, r, u) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": u.ID, "username": u.Username})
}

// startSession signs a token, sets the cookie and moves guest rounds to the account.
func (s *Server) startSession(w http.ResponseWriter, r *http.Request, u *auth.User) bool {
	tok, exp, err := s.auth.SignToken(u.ID, u.Username)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "sign_failed")
		return false
	}
	s.setAuthCookie(w, tok, exp)
	s.claimAnonGames(r, s.ensureAnonID(w, r), u.ID)
	return true
}

// handleLogout clears the auth cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearAuthCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// claimAnonGames transfers guest rounds to a user account after auth and
// folds their scores into the user's totals.
func (s *Server) claimAnonGames(r *http.Request, anonID, userID string) {
	if anonID == "" || userID == "" {
		return
	}
	ctx := r.Context()
	logger := hlog.FromRequest(r)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Warn().Err(err).Msg("begin claim tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, `SELECT score FROM games WHERE anonymous_id=? AND status='finished'`, anonID)
	if err != nil {
		logger.Warn().Err(err).Msg("claim anon games")
		return
	}
	var scores []int
	for rows.Next() {
		var sc int
		if err := rows.Scan(&sc); err == nil {
			scores = append(scores, sc)
		}
	}
	rows.Close()
	for _, sc := range scores {
		if err := auth.RecordRound(ctx, tx, userID, sc); err != nil {
			logger.Warn().Err(err).Msg("claim anon totals")
			return
		}
	}
	if _, err := tx.ExecContext(ctx, `UPDATE games SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID); err != nil {
		logger.Warn().Err(err).Msg("claim anon games")
		return
	}
	if err := tx.Commit(); err != nil {
		logger.Warn().Err(err).Msg("commit claim tx")
	}
}

// handleStats returns the caller's totals.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	me := userFrom(r)
	u, err := s.auth.FindByID(r.Context(), me.ID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":          u.ID,
		"gamesPlayed": u.GamesPlayed,
		"totalScore":  u.TotalScore,
		"bestScore":   u.BestScore,
	})
}

// handleMyGames lists the caller's 50 most recent rounds.
func (s *Server) handleMyGames(w http.ResponseWriter, r *http.Request) {
	me := userFrom(r)
	rows, err := s.db.QueryContext(r.Context(), `SELECT id, board, status, words, score, started_at, COALESCE(finished_at,'')
	                         FROM games WHERE user_id=? ORDER BY started_at DESC LIMIT 50`, me.ID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "db_error")
		return
	}
	defer rows.Close()

	type gameRow struct {
		ID         string `json:"id"`
		Board      string `json:"board"`
		Status     string `json:"status"`
		Words      int    `json:"words"`
		Score      int    `json:"score"`
		StartedAt  string `json:"startedAt"`
		FinishedAt string `json:"finishedAt,omitempty"`
	}
	out := []gameRow{}
	for rows.Next() {
		var gr gameRow
		if err := rows.Scan(&gr.ID, &gr.Board, &gr.Status, &gr.Words, &gr.Score, &gr.StartedAt, &gr.FinishedAt); err == nil {
			out = append(out, gr)
		}
	}
	writeJSON(w, http.StatusOK, out)
}
