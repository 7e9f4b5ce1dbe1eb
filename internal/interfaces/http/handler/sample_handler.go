package handler

import (
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/packlabs/dva-go/internal/application/dto"
	"github.com/packlabs/dva-go/internal/application/service"
)

// maxImportBytes caps the size of an uploaded measurement file.
const maxImportBytes = 10 << 20 // 10 MiB

// SampleHandler serves the sample measurement endpoints.
type SampleHandler struct {
	svc *service.AnalyzerService
}

// NewSampleHandler creates the sample handler.
func NewSampleHandler(svc *service.AnalyzerService) *SampleHandler {
	return &SampleHandler{svc: svc}
}

// Routes mounts the sample endpoints.
//
// Returns:
//   - chi.Router: router with the sample routes
func (h *SampleHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.add)
	r.Post("/import", h.importCSV)
	r.Delete("/{id}", h.remove)
	return r
}

// list handles GET /samples. Every stored sample is returned together
// with its computed volumes.
func (h *SampleHandler) list(w http.ResponseWriter, r *http.Request) {
	results, err := h.svc.ListSampleResults(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, results)
}

// add handles POST /samples.
func (h *SampleHandler) add(w http.ResponseWriter, r *http.Request) {
	req := &dto.AddSampleRequest{}
	if err := render.Bind(r, req); err != nil {
		respondBindError(w, r, err)
		return
	}

	sample, err := h.svc.AddSample(r.Context(), req.ID, req.Weight, req.Unit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, sample)
}

// remove handles DELETE /samples/{id}.
func (h *SampleHandler) remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	removed, err := h.svc.RemoveSample(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if !removed {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, dto.NewErrorResponse[any]("NOT_FOUND", "sample not found: "+id))
		return
	}
	respond(w, r, http.StatusOK, map[string]string{"deleted": id})
}

// importCSV handles POST /samples/import. The CSV arrives either as a
// raw text/csv body or as a multipart upload under the "file" field.
func (h *SampleHandler) importCSV(w http.ResponseWriter, r *http.Request) {
	body, err := h.importBody(r)
	if err != nil {
		respondBindError(w, r, err)
		return
	}
	defer body.Close()

	summary, err := h.svc.ImportSamplesCSV(r.Context(), body)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, summary)
}

// importBody extracts the CSV stream from the request.
func (h *SampleHandler) importBody(r *http.Request) (io.ReadCloser, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.HasPrefix(mediaType, "multipart/") {
		if err := r.ParseMultipartForm(maxImportBytes); err != nil {
			return nil, err
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		return file, nil
	}
	return http.MaxBytesReader(nil, r.Body, maxImportBytes), nil
}
