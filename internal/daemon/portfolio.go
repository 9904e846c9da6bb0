package daemon

import (
	"net/http"

	"github.com/theirongolddev/wealthpath/internal/model"
	"github.com/theirongolddev/wealthpath/internal/portfolio"
)

func (s *Service) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.Projects(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	sum := portfolio.Summarize(projects)
	if v := r.URL.Query().Get("status"); v != "" {
		st, err := model.ParseProjectStatus(v)
		if err != nil {
			writeError(w, err)
			return
		}
		sum.Holdings = portfolio.FilterByStatus(sum.Holdings, st)
	}
	if sum.Holdings == nil {
		sum.Holdings = []portfolio.Holding{}
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Service) handleTransactions(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.Projects(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	txs := portfolio.Transactions(projects)
	if txs == nil {
		txs = []portfolio.Transaction{}
	}
	writeJSON(w, http.StatusOK, txs)
}

func (s *Service) handleJourney(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	m, err := s.store.MetricsOr(ctx, s.cfg.Defaults)
	if err != nil {
		writeError(w, err)
		return
	}
	milestones, err := s.store.Milestones(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, portfolio.BuildJourney(milestones, m, s.now().Year()))
}

func (s *Service) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.Projects(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if projects == nil {
		projects = []model.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Service) handleGetProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Project(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type projectRequest struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Value       float64 `json:"value"`
	Invested    float64 `json:"invested"`
	Change      float64 `json:"change"`
	Status      string  `json:"status"`
}

func (s *Service) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	in := model.ProjectInput{
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Value:       req.Value,
		Invested:    req.Invested,
		Change:      req.Change,
	}
	if req.Status != "" {
		st, err := model.ParseProjectStatus(req.Status)
		if err != nil {
			writeError(w, err)
			return
		}
		in.Status = st
	}

	p, err := s.store.AddProject(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

type projectPatchRequest struct {
	Name        *string  `json:"name"`
	Type        *string  `json:"type"`
	Description *string  `json:"description"`
	Value       *float64 `json:"value"`
	Invested    *float64 `json:"invested"`
	Change      *float64 `json:"change"`
	Status      *string  `json:"status"`
}

func (req projectPatchRequest) patch() (model.ProjectPatch, error) {
	p := model.ProjectPatch{
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Value:       req.Value,
		Invested:    req.Invested,
		Change:      req.Change,
	}
	if req.Status != nil {
		st, err := model.ParseProjectStatus(*req.Status)
		if err != nil {
			return p, err
		}
		p.Status = &st
	}
	return p, nil
}

func (s *Service) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var req projectPatchRequest
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

	p, err := s.store.UpdateProject(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Service) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteProject(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleListMilestones(w http.ResponseWriter, r *http.Request) {
	milestones, err := s.store.Milestones(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if milestones == nil {
		milestones = []model.Milestone{}
	}
	writeJSON(w, http.StatusOK, milestones)
}

type milestoneRequest struct {
	Year        int     `json:"year"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	NetWorth    float64 `json:"net_worth"`
	Highlight   bool    `json:"highlight"`
}

func (s *Service) handleCreateMilestone(w http.ResponseWriter, r *http.Request) {
	var req milestoneRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	m, err := s.store.AddMilestone(r.Context(), model.MilestoneInput(req))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

type milestonePatchRequest struct {
	Year        *int     `json:"year"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	NetWorth    *float64 `json:"net_worth"`
	Highlight   *bool    `json:"highlight"`
}

func (s *Service) handleUpdateMilestone(w http.ResponseWriter, r *http.Request) {
	var req milestonePatchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	patch := model.MilestonePatch(req)
	if patch.Empty() {
		writeError(w, badRequest("no fields to update"))
		return
	}

	m, err := s.store.UpdateMilestone(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Service) handleDeleteMilestone(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteMilestone(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleGetMilestone(w http.ResponseWriter, r *http.Request) {
	m, err := s.store.Milestone(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}
