// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily board.
// Exposes four endpoints under /daily:
//   - POST /daily/new         → start (or resume) today's round
//   - POST /daily/word        → add a word to today's round
//   - POST /daily/finish      → score today's round and record the result
//   - GET  /daily/leaderboard → top 20 results for today (or ?date=YYYY-MM-DD)
//
// Everyone gets the same board on a given UTC date (seed = HMAC(salt, date)).
// Each player can finish the daily round once per day (enforced by the DB
// unique key and the in-memory session map).

package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/boggle/internal/daily"
	"github.com/robalobadob/boggle/internal/game"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	sessions map[string]string // userID|date → round ID
	mu       sync.Mutex        // guards sessions
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     s.cfg.DailySalt,
		sessions: make(map[string]string),
	}
	s.daily = dd
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/word", dd.handleWord)
		r.Post("/finish", dd.handleFinish)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// today returns today's date key and board seed.
func (d *dailyServer) today() (string, int64) {
	now := d.srv.now()
	return daily.DateKey(now), daily.Seed(now, d.salt)
}

// userID returns the authenticated user ID or the anonymous cookie ID.
func (d *dailyServer) userID(w http.ResponseWriter, r *http.Request) string {
	if me := userFrom(r); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

// session finds the caller's round for today, checking it matches gameID.
func (d *dailyServer) session(r *http.Request, uid, date, gameID string) (*game.Round, bool) {
	d.mu.Lock()
	id, ok := d.sessions[uid+"|"+date]
	d.mu.Unlock()
	if !ok || id != gameID {
		return nil, false
	}
	rd, err := d.srv.store.Get(r.Context(), id)
	if err != nil {
		return nil, false
	}
	return rd, true
}

// -----------------------------------------------------------------------------
// /daily/new

type dailyNewRes struct {
	Date   string     `json:"date"`
	Played bool       `json:"played"`
	Game   *game.View `json:"game,omitempty"`
}

// handleNew creates or reuses the caller's round on today's board.
// - If the caller already has a result for today → Played=true, no round.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := d.userID(w, r)
	date, seed := d.today()

	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Played: true})
		return
	}

	key := uid + "|" + date
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pruneLocked(date)
	if id, ok := d.sessions[key]; ok {
		if rd, err := d.srv.store.Get(r.Context(), id); err == nil {
			v := rd.View(d.srv.now())
			writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Game: &v})
			return
		}
	}

	opts := d.srv.roundOptions(newGameReq{Seed: seed})
	opts.Daily = date
	rd, err := game.New(opts)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("new daily round")
		jsonError(w, http.StatusInternalServerError, "new_failed")
		return
	}
	rd.Owner = uid
	if err := d.srv.store.Save(r.Context(), rd); err != nil {
		jsonError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	d.sessions[key] = rd.ID
	v := rd.View(d.srv.now())
	writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Game: &v})
}

// pruneLocked drops sessions from earlier dates; callers hold d.mu.
func (d *dailyServer) pruneLocked(today string) {
	for k := range d.sessions {
		if !strings.HasSuffix(k, "|"+today) {
			delete(d.sessions, k)
		}
	}
}

// -----------------------------------------------------------------------------
// /daily/word

// handleWord adds a word to the caller's daily round.
func (d *dailyServer) handleWord(w http.ResponseWriter, r *http.Request) {
	uid := d.userID(w, r)
	var req wordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "bad_json")
		return
	}
	date, _ := d.today()
	rd, ok := d.session(r, uid, date, req.GameID)
	if !ok {
		jsonError(w, http.StatusConflict, "no_session")
		return
	}
	d.srv.addWord(w, rd, req.Word)
}

// -----------------------------------------------------------------------------
// /daily/finish

// handleFinish scores the daily round and records the result once.
func (d *dailyServer) handleFinish(w http.ResponseWriter, r *http.Request) {
	uid := d.userID(w, r)
	var req finishReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "bad_json")
		return
	}
	date, _ := d.today()
	rd, ok := d.session(r, uid, date, req.GameID)
	if !ok {
		jsonError(w, http.StatusConflict, "no_session")
		return
	}
	now := d.srv.now()
	already := rd.State(now) == game.StateFinished
	sum := rd.Finish(d.srv.dict)
	if !already {
		end := now
		if end.After(rd.Deadline) {
			end = rd.Deadline
		}
		err := d.store.InsertResult(r.Context(), daily.Result{
			UserID:    uid,
			Date:      date,
			Seed:      rd.Seed,
			Score:     sum.Score,
			Words:     len(sum.Results),
			ElapsedMs: int(end.Sub(rd.StartedAt).Milliseconds()),
		})
		if err != nil {
			hlog.FromRequest(r).Warn().Err(err).Str("user", uid).Msg("insert daily result")
		}
	}
	writeJSON(w, http.StatusOK, sum)
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _ = d.today()
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		jsonError(w, http.StatusBadRequest, "bad_date")
		return
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("leaderboard")
		jsonError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
