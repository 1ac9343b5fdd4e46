// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily word hunt.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's hunt (creates or reuses a game)
//   - POST /daily/select      → submit one drag selection (from → to)
//   - GET  /daily/leaderboard → fastest results for today (or a given date)
//
// Each player (or anonymous id) can finish the hunt once per day, enforced by
// the database. Games in progress are held in memory and persisted on finish.
// Every player gets the same grid for a date: it is derived from date + salt.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Abdel00zz/Reflexe4Arabic/internal/daily"
	"github.com/Abdel00zz/Reflexe4Arabic/internal/wordsearch"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv   *Server
	store *daily.Store
	salt  string
	now   func() time.Time
	games map[string]*daily.Game // keyed by userID|date
	mu    sync.Mutex             // guards games
}

func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:   s,
		store: daily.NewStore(s.db),
		salt:  s.cfg.DailySalt,
		now:   func() time.Time { return time.Now().UTC() },
		games: make(map[string]*daily.Game),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/select", dd.handleSelect)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// -----------------------------------------------------------------------------
// /daily/new

type dailyNewRes struct {
	GameID string      `json:"gameId"`
	Date   string      `json:"date"`
	Played bool        `json:"played"`
	View   *daily.View `json:"view,omitempty"`
}

// handleNew reports Played=true when today's result already exists;
// otherwise it returns today's game, creating it on first call.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := d.srv.playerOrAnon(w, r)
	now := d.now()
	date := daily.DateKey(now)

	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Played: true})
		return
	}

	key := uid + "|" + date
	d.mu.Lock()
	g, ok := d.games[key]
	if !ok {
		var err error
		g, err = daily.NewGame(uuid.NewString(), uid, now, d.salt, d.srv.content.DailyWords)
		if err != nil {
			d.mu.Unlock()
			log.Error().Err(err).Str("date", date).Msg("build daily puzzle")
			writeErr(w, http.StatusInternalServerError, "daily_unavailable")
			return
		}
		d.pruneLocked(date)
		d.games[key] = g
	}
	d.mu.Unlock()

	v := g.View()
	_ = json.NewEncoder(w).Encode(dailyNewRes{GameID: g.ID, Date: date, View: &v})
}

// pruneLocked drops games from earlier dates.
func (d *dailyServer) pruneLocked(today string) {
	for k, g := range d.games {
		if g.Date != today {
			delete(d.games, k)
		}
	}
}

// -----------------------------------------------------------------------------
// /daily/select

type dailySelectReq struct {
	GameID string          `json:"gameId"`
	From   wordsearch.Cell `json:"from"`
	To     wordsearch.Cell `json:"to"`
}

type dailySelectRes struct {
	daily.Outcome
	State string     `json:"state"` // in_progress | won | locked
	View  daily.View `json:"view"`
}

// handleSelect applies one selection to the caller's game for today and
// persists the result once every word is found.
func (d *dailyServer) handleSelect(w http.ResponseWriter, r *http.Request) {
	uid := d.srv.playerOrAnon(w, r)

	var p dailySelectReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.GameID == "" {
		writeErr(w, http.StatusBadRequest, "bad_request")
		return
	}

	now := d.now()
	key := uid + "|" + daily.DateKey(now)
	d.mu.Lock()
	g, ok := d.games[key]
	d.mu.Unlock()
	if !ok || g.ID != p.GameID {
		writeErr(w, http.StatusConflict, "no_session")
		return
	}

	out, err := g.Select(now, p.From, p.To)
	if errors.Is(err, daily.ErrFinished) {
		_ = json.NewEncoder(w).Encode(dailySelectRes{Outcome: out, State: "locked", View: g.View()})
		return
	}

	state := "in_progress"
	if out.Done {
		state = "won"
		if res, ok := g.Result(); ok {
			if err := d.store.InsertResult(r.Context(), res); err != nil {
				log.Warn().Err(err).Str("player", uid).Str("date", res.Date).Msg("insert daily result")
			}
		}
	}
	_ = json.NewEncoder(w).Encode(dailySelectRes{Outcome: out, State: state, View: g.View()})
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(d.now())
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "server_error")
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
