// Package httpapi serves per-market session state to renderers and exposes
// the time-travel control surface to the debug panel.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/can-finance/tradingclocks/internal/clock"
	"github.com/can-finance/tradingclocks/internal/dashboard"
	"github.com/can-finance/tradingclocks/internal/domain"
	"github.com/can-finance/tradingclocks/internal/session"
	"github.com/can-finance/tradingclocks/internal/store"
)

// Server serves the session-state and clock-control API.
type Server struct {
	markets    []domain.Market
	marketByID map[string]domain.Market
	cls        *session.Classifier
	clk        *clock.Clock
	prefs      store.PrefStore
	log        *slog.Logger
}

// NewServer creates an API server over the given market list, classifier,
// clock, and preference store.
func NewServer(markets []domain.Market, cls *session.Classifier, clk *clock.Clock, prefs store.PrefStore, log *slog.Logger) *Server {
	byID := make(map[string]domain.Market, len(markets))
	for _, m := range markets {
		byID[m.ID] = m
	}
	return &Server{
		markets:    markets,
		marketByID: byID,
		cls:        cls,
		clk:        clk,
		prefs:      prefs,
		log:        log,
	}
}

// RegisterRoutes registers all API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/markets", s.handleMarkets)
	mux.HandleFunc("GET /api/markets/{id}", s.handleMarket)
	mux.HandleFunc("PUT /api/markets/{id}/hours", s.handleSetHours)
	mux.HandleFunc("DELETE /api/markets/{id}/hours", s.handleClearHours)
	mux.HandleFunc("GET /api/selection", s.handleGetSelection)
	mux.HandleFunc("PUT /api/selection", s.handleSetSelection)
	mux.HandleFunc("GET /api/clock", s.handleClock)
	mux.HandleFunc("POST /api/clock/instant", s.handleSetInstant)
	mux.HandleFunc("POST /api/clock/freeze", s.handleFreeze)
	mux.HandleFunc("POST /api/clock/unfreeze", s.handleUnfreeze)
	mux.HandleFunc("POST /api/clock/reset", s.handleReset)
	mux.HandleFunc("PUT /api/clock/timezone", s.handleSetTimezone)
}

// Handler returns an http.Handler with CORS middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return corsMiddleware(mux)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, PUT, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// buildViews classifies the given markets with the stored overrides applied.
func (s *Server) buildViews(r *http.Request, markets []domain.Market) ([]dashboard.MarketView, time.Time) {
	overrides, err := s.prefs.TimeOverrides(r.Context())
	if err != nil {
		s.log.Warn("loading time overrides", "error", err)
		overrides = nil
	}
	now := s.clk.Now()
	views := dashboard.BuildViews(s.cls, markets, overrides, now, s.clk.TimezoneOverride())
	return views, now
}

func convertView(v dashboard.MarketView) MarketStateJSON {
	return MarketStateJSON{
		ID:          v.Market.ID,
		Name:        v.Market.Name,
		Code:        v.Market.Code,
		Country:     v.Market.Country,
		CountryCode: v.Market.CountryCode,
		Timezone:    v.Market.Timezone,
		Region:      string(v.Market.Region),
		OpenTime:    v.Market.OpenTime,
		CloseTime:   v.Market.CloseTime,
		LunchStart:  v.Market.LunchStart,
		LunchEnd:    v.Market.LunchEnd,
		LocalTime:   v.LocalTime,
		ZoneAbbrev:  v.ZoneAbbrev,
		GMTOffset:   v.GMTOffset,
		OffsetLabel: v.OffsetLabel,

		State:       string(v.State.State),
		StatusLabel: v.StatusLabel,
		Open:        v.State.Open,
		Weekend:     v.State.Weekend,
		Lunch:       v.State.Lunch,
		Holiday:     v.State.Holiday,
		HolidayName: v.State.HolidayName,

		NextEvent:     string(v.State.NextEvent),
		NextEventTime: v.State.NextEventAt.UnixMilli(),
		ViewerTime:    v.ViewerTime,
		TimeUntilMs:   v.State.TimeUntil.Milliseconds(),
		Countdown:     v.Countdown,
	}
}

func (s *Server) handleMarkets(w http.ResponseWriter, r *http.Request) {
	views, now := s.buildViews(r, s.markets)

	selected, err := s.prefs.Selected(r.Context())
	if err != nil {
		s.log.Warn("loading selection", "error", err)
	}
	if selected == nil {
		selected = []string{}
	}

	out := make([]MarketStateJSON, 0, len(views))
	for _, v := range views {
		out = append(out, convertView(v))
	}
	writeJSON(w, MarketsResponse{Now: now.UnixMilli(), Markets: out, Selected: selected})
}

func (s *Server) handleMarket(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	m, ok := s.marketByID[id]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown market "+id)
		return
	}
	views, _ := s.buildViews(r, []domain.Market{m})
	writeJSON(w, convertView(views[0]))
}

func (s *Server) handleSetHours(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.marketByID[id]; !ok {
		writeError(w, http.StatusNotFound, "unknown market "+id)
		return
	}

	var req HoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ov := domain.TimeOverride{OpenTime: req.OpenTime, CloseTime: req.CloseTime}
	if err := ov.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.prefs.SaveTimeOverride(r.Context(), id, ov); err != nil {
		s.log.Error("saving time override", "market", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save override")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearHours(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.prefs.DeleteTimeOverride(r.Context(), id); err != nil {
		s.log.Error("deleting time override", "market", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete override")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	selected, err := s.prefs.Selected(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load selection")
		return
	}
	if selected == nil {
		selected = []string{}
	}
	writeJSON(w, SelectionRequest{MarketIDs: selected})
}

func (s *Server) handleSetSelection(w http.ResponseWriter, r *http.Request) {
	var req SelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	for _, id := range req.MarketIDs {
		if _, ok := s.marketByID[id]; !ok {
			writeError(w, http.StatusBadRequest, "unknown market "+id)
			return
		}
	}
	if err := s.prefs.SetSelected(r.Context(), req.MarketIDs); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save selection")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) clockJSON() ClockStateJSON {
	st := s.clk.Snapshot()
	return ClockStateJSON{
		Now:              st.Now.UnixMilli(),
		OffsetMs:         st.Offset.Milliseconds(),
		Paused:           st.Paused,
		TimezoneOverride: st.TimezoneOverride,
		SimulationActive: st.SimulationActive,
	}
}

func (s *Server) handleClock(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.clockJSON())
}

func (s *Server) handleSetInstant(w http.ResponseWriter, r *http.Request) {
	var req SetInstantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	target := time.UnixMilli(req.Instant)
	s.clk.SetInstant(target)
	s.log.Info("clock scrubbed", "instant", target)
	writeJSON(w, s.clockJSON())
}

func (s *Server) handleFreeze(w http.ResponseWriter, r *http.Request) {
	s.clk.Freeze()
	writeJSON(w, s.clockJSON())
}

func (s *Server) handleUnfreeze(w http.ResponseWriter, r *http.Request) {
	s.clk.Unfreeze()
	writeJSON(w, s.clockJSON())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.clk.Reset()
	s.log.Info("clock reset to real time")
	writeJSON(w, s.clockJSON())
}

func (s *Server) handleSetTimezone(w http.ResponseWriter, r *http.Request) {
	var req SetTimezoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	tzName := ""
	if req.Timezone != nil {
		tzName = *req.Timezone
	}
	if tzName != "" {
		if _, err := time.LoadLocation(tzName); err != nil {
			writeError(w, http.StatusBadRequest, "unknown timezone "+tzName)
			return
		}
	}
	s.clk.SetTimezoneOverride(tzName)
	writeJSON(w, s.clockJSON())
}
