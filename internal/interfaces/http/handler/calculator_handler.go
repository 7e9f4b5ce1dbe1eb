package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/packlabs/dva-go/internal/application/dto"
	"github.com/packlabs/dva-go/internal/application/service"
)

// CalculatorHandler serves the stateless conversion and analysis
// endpoints.
type CalculatorHandler struct {
	svc *service.AnalyzerService
}

// NewCalculatorHandler creates the calculator handler.
func NewCalculatorHandler(svc *service.AnalyzerService) *CalculatorHandler {
	return &CalculatorHandler{svc: svc}
}

// Routes mounts the calculator endpoints.
//
// Returns:
//   - chi.Router: router with the calculator routes
func (h *CalculatorHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/convert/weight", h.convertWeight)
	r.Post("/convert/box", h.computeBox)
	r.Post("/analyze", h.analyze)
	r.Get("/units", h.units)
	r.Get("/drafts", h.drafts)
	return r
}

// convertWeight handles POST /convert/weight.
func (h *CalculatorHandler) convertWeight(w http.ResponseWriter, r *http.Request) {
	req := &dto.ConvertWeightRequest{}
	if err := render.Bind(r, req); err != nil {
		respondBindError(w, r, err)
		return
	}

	result, err := h.svc.ConvertWeight(r.Context(), req.Weight, req.WeightUnit, req.Quantity)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, result)
}

// computeBox handles POST /convert/box.
func (h *CalculatorHandler) computeBox(w http.ResponseWriter, r *http.Request) {
	req := &dto.ComputeBoxRequest{}
	if err := render.Bind(r, req); err != nil {
		respondBindError(w, r, err)
		return
	}

	result, err := h.svc.ComputeBoxVolume(r.Context(), req.Length, req.Width, req.Height, req.DimensionUnit, req.ResultUnit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, result)
}

// analyze handles POST /analyze.
func (h *CalculatorHandler) analyze(w http.ResponseWriter, r *http.Request) {
	req := &dto.AnalyzeRequest{}
	if err := render.Bind(r, req); err != nil {
		respondBindError(w, r, err)
		return
	}

	result, err := h.svc.Analyze(r.Context(), req.ProductVolumeMM3, req.BoxVolumeMM3, req.DisplayUnit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, result)
}

// units handles GET /units, listing the accepted unit names so clients
// can populate selection lists without hardcoding them.
func (h *CalculatorHandler) units(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, dto.NewUnitsResponse())
}

// drafts handles GET /drafts, returning the saved in-progress
// calculator state.
func (h *CalculatorHandler) drafts(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, h.svc.Drafts())
}
