package daemon

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/theirongolddev/wealthpath/internal/forecast"
	"github.com/theirongolddev/wealthpath/internal/model"
	"github.com/theirongolddev/wealthpath/internal/pipeline"
	"github.com/theirongolddev/wealthpath/internal/store"
	"github.com/theirongolddev/wealthpath/internal/tracker"
)

// Handler returns the daemon HTTP API.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /v1/status", s.handleStatus)
	mux.HandleFunc("GET /v1/events", s.handleEvents)
	mux.HandleFunc("GET /v1/stream", s.handleStream)
	mux.HandleFunc("GET /v1/ws", s.handleWebSocket)
	mux.HandleFunc("GET /v1/projection", s.handleProjection)
	mux.HandleFunc("GET /v1/goals", s.handleListGoals)
	mux.HandleFunc("POST /v1/goals", s.handleCreateGoal)
	mux.HandleFunc("PATCH /v1/goals/{id}", s.handleUpdateGoal)
	mux.HandleFunc("DELETE /v1/goals/{id}", s.handleDeleteGoal)
	mux.HandleFunc("PUT /v1/metrics", s.handlePutMetrics)
	mux.HandleFunc("GET /v1/portfolio", s.handlePortfolio)
	mux.HandleFunc("GET /v1/transactions", s.handleTransactions)
	mux.HandleFunc("GET /v1/journey", s.handleJourney)
	mux.HandleFunc("GET /v1/projects", s.handleListProjects)
	mux.HandleFunc("POST /v1/projects", s.handleCreateProject)
	mux.HandleFunc("GET /v1/projects/{id}", s.handleGetProject)
	mux.HandleFunc("PATCH /v1/projects/{id}", s.handleUpdateProject)
	mux.HandleFunc("DELETE /v1/projects/{id}", s.handleDeleteProject)
	mux.HandleFunc("GET /v1/milestones", s.handleListMilestones)
	mux.HandleFunc("POST /v1/milestones", s.handleCreateMilestone)
	mux.HandleFunc("GET /v1/milestones/{id}", s.handleGetMilestone)
	mux.HandleFunc("PATCH /v1/milestones/{id}", s.handleUpdateMilestone)
	mux.HandleFunc("DELETE /v1/milestones/{id}", s.handleDeleteMilestone)
	return mux
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrGoalNotFound),
		errors.Is(err, store.ErrProjectNotFound),
		errors.Is(err, store.ErrMilestoneNotFound):
		code = http.StatusNotFound
	case errors.Is(err, model.ErrInvalidGoal),
		errors.Is(err, model.ErrInvalidProject),
		errors.Is(err, model.ErrInvalidMilestone),
		errors.Is(err, store.ErrInvalidMetrics),
		errors.Is(err, forecast.ErrInvalidArgument),
		errors.Is(err, errBadRequest):
		code = http.StatusBadRequest
	}
	writeJSON(w, code, errorBody{Error: err.Error()})
}

var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errBadRequest}, args...)...)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequest("decoding body: %v", err)
	}
	return nil
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	writeSSE(w, s.currentEvent())
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if ev.ID > 0 {
		_, _ = fmt.Fprintf(w, "id: %d\n", ev.ID)
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

// ProjectionResponse is served at /v1/projection.
type ProjectionResponse struct {
	NetWorth    float64          `json:"net_worth"`
	TargetValue float64          `json:"target_value"`
	BaseRate    float64          `json:"base_rate"`
	Scenarios   []model.Scenario `json:"scenarios"`
}

// handleProjection recomputes scenarios from the stored metrics, optionally
// overriding the base rate and series shape via rate, periods and unit.
func (s *Service) handleProjection(w http.ResponseWriter, r *http.Request) {
	m, err := s.store.MetricsOr(r.Context(), s.cfg.Defaults)
	if err != nil {
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	settings := s.cfg.Settings
	rate := m.MonthlyGrowth
	if v := q.Get("rate"); v != "" {
		if rate, err = strconv.ParseFloat(v, 64); err != nil {
			writeError(w, badRequest("rate: %v", err))
			return
		}
	}
	if v := q.Get("periods"); v != "" {
		if settings.Periods, err = strconv.Atoi(v); err != nil {
			writeError(w, badRequest("periods: %v", err))
			return
		}
	}
	if v := q.Get("unit"); v != "" {
		if settings.PeriodUnitMonths, err = strconv.Atoi(v); err != nil {
			writeError(w, badRequest("unit: %v", err))
			return
		}
	}

	scenarios, err := pipeline.ProjectScenarios(m.NetWorth, m.TargetValue, rate, settings)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ProjectionResponse{
		NetWorth:    m.NetWorth,
		TargetValue: m.TargetValue,
		BaseRate:    rate,
		Scenarios:   scenarios,
	})
}

func (s *Service) tracker() *tracker.Tracker {
	return tracker.New(s.cfg.Settings.Policy)
}

func (s *Service) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.store.Goals(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	assessments := s.tracker().Assess(goals, s.now())
	if v := r.URL.Query().Get("status"); v != "" {
		assessments = pipeline.FilterByStatus(assessments, tracker.Status(v))
	}
	if assessments == nil {
		assessments = []tracker.Assessment{}
	}
	writeJSON(w, http.StatusOK, assessments)
}

type goalRequest struct {
	Name         string  `json:"name"`
	TargetValue  float64 `json:"target_value"`
	CurrentValue float64 `json:"current_value"`
	Deadline     string  `json:"deadline"`
	Category     string  `json:"category"`
}

func (s *Service) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	deadline, err := model.ParseDate(req.Deadline, time.UTC)
	if err != nil {
		writeError(w, badRequest("%v", err))
		return
	}
	category := model.CategoryFinancial
	if req.Category != "" {
		if category, err = model.ParseCategory(req.Category); err != nil {
			writeError(w, err)
			return
		}
	}

	g, err := s.store.AddGoal(r.Context(), model.GoalInput{
		Name:         req.Name,
		TargetValue:  req.TargetValue,
		CurrentValue: req.CurrentValue,
		Deadline:     deadline,
		Category:     category,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.tracker().Assess([]model.Goal{g}, s.now())[0])
}

type goalPatchRequest struct {
	Name         *string  `json:"name"`
	TargetValue  *float64 `json:"target_value"`
	CurrentValue *float64 `json:"current_value"`
	Deadline     *string  `json:"deadline"`
	Category     *string  `json:"category"`
}

func (req goalPatchRequest) patch() (model.GoalPatch, error) {
	p := model.GoalPatch{
		Name:         req.Name,
		TargetValue:  req.TargetValue,
		CurrentValue: req.CurrentValue,
	}
	if req.Deadline != nil {
		d, err := model.ParseDate(*req.Deadline, time.UTC)
		if err != nil {
			return p, badRequest("%v", err)
		}
		p.Deadline = &d
	}
	if req.Category != nil {
		c, err := model.ParseCategory(*req.Category)
		if err != nil {
			return p, err
		}
		p.Category = &c
	}
	return p, nil
}

func (s *Service) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalPatchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	patch, err := req.patch()
	if err != nil {
		writeError(w, err)
		return
	}
	if patch.Empty() {
		writeError(w, badRequest("no fields to update"))
		return
	}

	g, err := s.store.UpdateGoal(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.tracker().Assess([]model.Goal{g}, s.now())[0])
}

func (s *Service) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteGoal(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type metricsRequest struct {
	NetWorth      *float64 `json:"net_worth"`
	MonthlyGrowth *float64 `json:"monthly_growth"`
	TargetValue   *float64 `json:"target_value"`
}

func (s *Service) handlePutMetrics(w http.ResponseWriter, r *http.Request) {
	var req metricsRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	cur, err := s.store.MetricsOr(r.Context(), s.cfg.Defaults)
	if err != nil {
		writeError(w, err)
		return
	}

	patch := model.MetricsPatch{
		NetWorth:      req.NetWorth,
		MonthlyGrowth: req.MonthlyGrowth,
		TargetValue:   req.TargetValue,
	}
	m, err := s.store.SetMetrics(r.Context(), patch.Apply(cur))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}
