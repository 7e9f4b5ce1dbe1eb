package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/packlabs/dva-go/internal/application/dto"
	"github.com/packlabs/dva-go/internal/application/service"
	"github.com/packlabs/dva-go/internal/domain/entity"
	"github.com/packlabs/dva-go/internal/domain/repository"
	"github.com/packlabs/dva-go/internal/interfaces/report"
)

// ProjectHandler serves the project record endpoints.
type ProjectHandler struct {
	svc     *service.AnalyzerService
	reports *report.Assembler
}

// NewProjectHandler creates the project handler.
//
// Parameters:
//   - svc: the analyzer application service
//   - reports: the report assembler
//
// Returns:
//   - *ProjectHandler: the ready handler
func NewProjectHandler(svc *service.AnalyzerService, reports *report.Assembler) *ProjectHandler {
	return &ProjectHandler{svc: svc, reports: reports}
}

// Routes mounts the project endpoints.
//
// Returns:
//   - chi.Router: router with the project routes
func (h *ProjectHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/next-number", h.nextNumber)
	r.Route("/{number}", func(r chi.Router) {
		r.Get("/", h.get)
		r.Put("/", h.update)
		r.Delete("/", h.remove)
		r.Get("/report", h.buildReport)
	})
	return r
}

// list handles GET /projects with optional designer, q, limit and
// offset query parameters.
func (h *ProjectHandler) list(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)

	projects, err := h.svc.ListProjects(r.Context(), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	total, err := h.svc.CountProjects(r.Context(), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, dto.NewPaginateResponse(projects, total, filter.Limit, filter.Offset))
}

// create handles POST /projects.
func (h *ProjectHandler) create(w http.ResponseWriter, r *http.Request) {
	req := &dto.ProjectRequest{}
	if err := render.Bind(r, req); err != nil {
		respondBindError(w, r, err)
		return
	}

	project, reassigned, err := h.svc.CreateProject(r.Context(), req.ToInput())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, dto.CreateProjectResponse{
		Project:          project,
		NumberReassigned: reassigned,
	})
}

// get handles GET /projects/{number}.
func (h *ProjectHandler) get(w http.ResponseWriter, r *http.Request) {
	number, ok := projectNumber(w, r)
	if !ok {
		return
	}

	project, err := h.svc.GetProject(r.Context(), number)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, project)
}

// update handles PUT /projects/{number}, replacing the record in full.
func (h *ProjectHandler) update(w http.ResponseWriter, r *http.Request) {
	number, ok := projectNumber(w, r)
	if !ok {
		return
	}

	req := &dto.ProjectRequest{}
	if err := render.Bind(r, req); err != nil {
		respondBindError(w, r, err)
		return
	}

	project, err := h.svc.UpdateProject(r.Context(), number, req.ToInput())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, project)
}

// remove handles DELETE /projects/{number}.
func (h *ProjectHandler) remove(w http.ResponseWriter, r *http.Request) {
	number, ok := projectNumber(w, r)
	if !ok {
		return
	}

	removed, err := h.svc.DeleteProject(r.Context(), number)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if !removed {
		respondError(w, r, repository.ErrProjectNotFound)
		return
	}
	respond(w, r, http.StatusOK, map[string]int{"deleted": number})
}

// nextNumber handles GET /projects/next-number.
func (h *ProjectHandler) nextNumber(w http.ResponseWriter, r *http.Request) {
	next, err := h.svc.NextProjectNumber(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, dto.NextNumberResponse{NextProjectNumber: next})
}

// buildReport handles GET /projects/{number}/report.
func (h *ProjectHandler) buildReport(w http.ResponseWriter, r *http.Request) {
	number, ok := projectNumber(w, r)
	if !ok {
		return
	}

	payload, err := h.reports.Build(r.Context(), number)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, payload)
}

// projectNumber parses the {number} URL parameter, writing a 400
// envelope on failure.
func projectNumber(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "number")
	number, err := strconv.Atoi(raw)
	if err != nil || number <= 0 {
		respondError(w, r, entity.ErrInvalidProjectNumber)
		return 0, false
	}
	return number, true
}

// filterFromQuery builds a project filter from list query parameters.
func filterFromQuery(r *http.Request) repository.ProjectFilter {
	q := r.URL.Query()
	filter := repository.ProjectFilter{
		SearchTerm: q.Get("q"),
	}
	if designer := q.Get("designer"); designer != "" {
		filter.Designer = &designer
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(q.Get("offset")); err == nil && offset > 0 {
		filter.Offset = offset
	}
	return filter
}
