// internal/httpserver/routes_sessions.go
//
// HTTP routes for play sessions (menu -> activity -> menu).
//   - POST /sessions                 → open a session at the menu
//   - GET  /sessions/{id}            → snapshot + scoreboard
//   - POST /sessions/{id}/activity   → enter an activity (fresh controller)
//   - POST /sessions/{id}/actions    → apply one input action
//   - POST /sessions/{id}/menu       → back to the menu; the run is persisted
//   - DELETE /sessions/{id}          → close the session
//   - GET  /sessions/{id}/events     → SSE stream of answer events
//
// Sessions opened by a signed-in player are only reachable with that
// player's token.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Abdel00zz/Reflexe4Arabic/internal/game"
	"github.com/Abdel00zz/Reflexe4Arabic/internal/store"
)

func (s *Server) mountSessions(r chi.Router) {
	r.Route("/sessions", func(r chi.Router) {
		// Streams outlive the request timeout.
		r.Get("/{id}/events", s.handleEvents)

		r.Group(func(r chi.Router) {
			r.Use(chimw.Timeout(requestTimeout))
			r.Post("/", s.handleNewSession)
			r.Get("/{id}", s.handleGetSession)
			r.Delete("/{id}", s.handleCloseSession)
			r.Post("/{id}/activity", s.handleEnter)
			r.Post("/{id}/actions", s.handleAction)
			r.Post("/{id}/menu", s.handleMenu)
		})
	})
}

type newSessionRes struct {
	SessionID string    `json:"sessionId"`
	View      game.View `json:"view"`
}

type enterReq struct {
	Activity string `json:"activity"`
}

type actionRes struct {
	Answers []game.Answer `json:"answers"`
	View    game.View     `json:"view"`
}

type menuRes struct {
	Run  *game.Run `json:"run,omitempty"`
	View game.View `json:"view"`
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	opts := []game.Option{game.WithEvents(s.events)}
	if me := currentUser(r); me != nil {
		opts = append(opts, game.WithPlayer(me.ID))
	}
	sess := game.NewSession(uuid.NewString(), game.NewRand(s.cfg.Game.Seed), s.factory, opts...)
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeErr(w, http.StatusInternalServerError, "save_failed")
		return
	}
	log.Info().Str("session", sess.ID).Str("player", sess.PlayerID).Msg("session opened")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(newSessionRes{SessionID: sess.ID, View: sess.View()})
}

// session loads the {id} session and checks it belongs to the caller.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*game.Session, bool) {
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err == nil && sess.PlayerID != "" {
		if me := currentUser(r); me == nil || me.ID != sess.PlayerID {
			err = store.ErrNotFound
		}
	}
	if err != nil {
		writeErr(w, http.StatusNotFound, "session_not_found")
		return nil, false
	}
	return sess, true
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(sess.View())
}

func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.persistRun(r.Context(), sess.Menu())
	_ = s.sessions.Delete(r.Context(), sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEnter(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req enterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_json")
		return
	}
	a, err := game.ParseActivity(req.Activity)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "unknown_activity")
		return
	}
	prev, err := sess.Enter(a)
	if err != nil {
		log.Error().Err(err).Str("session", sess.ID).Str("activity", string(a)).Msg("enter activity")
		writeErr(w, http.StatusInternalServerError, "activity_unavailable")
		return
	}
	s.persistRun(r.Context(), prev)
	_ = json.NewEncoder(w).Encode(sess.View())
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var act game.Action
	if err := json.NewDecoder(r.Body).Decode(&act); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_json")
		return
	}
	answers, err := sess.Apply(act)
	switch {
	case errors.Is(err, game.ErrNoActivity):
		writeErr(w, http.StatusConflict, "no_activity")
		return
	case errors.Is(err, game.ErrUnknownAction):
		writeErr(w, http.StatusBadRequest, "unknown_action")
		return
	case errors.Is(err, game.ErrInvalidAction):
		writeErr(w, http.StatusBadRequest, "invalid_action")
		return
	case err != nil:
		log.Error().Err(err).Str("session", sess.ID).Str("kind", act.Kind).Msg("apply action")
		writeErr(w, http.StatusInternalServerError, "action_failed")
		return
	}
	if answers == nil {
		answers = []game.Answer{}
	}
	_ = json.NewEncoder(w).Encode(actionRes{Answers: answers, View: sess.View()})
}

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	run := sess.Menu()
	s.persistRun(r.Context(), run)
	_ = json.NewEncoder(w).Encode(menuRes{Run: run, View: sess.View()})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.sse.ServeSSE(w, r, sess.ID)
}
