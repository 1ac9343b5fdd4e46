package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/Abdel00zz/Reflexe4Arabic/internal/game"
	"github.com/Abdel00zz/Reflexe4Arabic/internal/report"
	"github.com/Abdel00zz/Reflexe4Arabic/internal/results"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) mountPlayerRoutes(r chi.Router) {
	r.With(s.requireAuth()).Get("/players/me/results", s.handleMyResults)
	r.With(s.requireAuth()).Get("/players/me/report.xlsx", s.handleMyReport)
	r.Get("/leaderboard/{activity}", s.handleActivityLeaderboard)
}

type resultsRes struct {
	Totals  []results.Total `json:"totals"`
	History []game.Run      `json:"history"`
}

func (s *Server) handleMyResults(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r)
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	totals, history, err := s.progress(r, me.ID, limit)
	if err != nil {
		log.Error().Err(err).Str("player", me.ID).Msg("load results")
		writeErr(w, http.StatusInternalServerError, "db_error")
		return
	}
	_ = json.NewEncoder(w).Encode(resultsRes{Totals: totals, History: history})
}

// handleMyReport streams the progress workbook as an attachment.
func (s *Server) handleMyReport(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r)
	totals, history, err := s.progress(r, me.ID, 500)
	if err != nil {
		log.Error().Err(err).Str("player", me.ID).Msg("load results")
		writeErr(w, http.StatusInternalServerError, "db_error")
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="progress.xlsx"`)
	if err := report.Write(w, me.Username, totals, history); err != nil {
		log.Error().Err(err).Str("player", me.ID).Msg("write report")
	}
}

func (s *Server) progress(r *http.Request, playerID string, limit int) ([]results.Total, []game.Run, error) {
	totals, err := s.results.Totals(r.Context(), playerID)
	if err != nil {
		return nil, nil, err
	}
	history, err := s.results.History(r.Context(), playerID, limit)
	if err != nil {
		return nil, nil, err
	}
	if totals == nil {
		totals = []results.Total{}
	}
	if history == nil {
		history = []game.Run{}
	}
	return totals, history, nil
}

func (s *Server) handleActivityLeaderboard(w http.ResponseWriter, r *http.Request) {
	a, err := game.ParseActivity(chi.URLParam(r, "activity"))
	if err != nil {
		writeErr(w, http.StatusNotFound, "unknown_activity")
		return
	}
	rows, err := s.results.Leaderboard(r.Context(), a, 20)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "db_error")
		return
	}
	if rows == nil {
		rows = []results.LBRow{}
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"activity": a, "top": rows})
}
