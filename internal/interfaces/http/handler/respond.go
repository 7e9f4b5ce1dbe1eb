// Package handler contains the HTTP handlers for the analyzer API.
// Handlers translate between the JSON transport and the application
// service, map domain errors onto HTTP status codes and wrap every
// payload in the standard response envelope.
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/packlabs/dva-go/internal/application/dto"
	"github.com/packlabs/dva-go/internal/application/service"
	"github.com/packlabs/dva-go/internal/domain/entity"
	"github.com/packlabs/dva-go/internal/domain/repository"
	"github.com/packlabs/dva-go/internal/domain/unit"
)

// respond writes a success envelope with the given status code.
func respond[T any](w http.ResponseWriter, r *http.Request, status int, data T) {
	render.Status(r, status)
	render.JSON(w, r, dto.NewSuccessResponse(data))
}

// respondError maps a service or domain error onto an HTTP status and
// writes an error envelope. Unknown errors become 500s with a generic
// message so internal details never leak to clients.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "an unexpected error occurred"
	}
	render.Status(r, status)
	render.JSON(w, r, dto.NewErrorResponse[any](code, message))
}

// statusFor classifies an error into an HTTP status and a stable
// machine-readable code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrProjectNotFound),
		errors.Is(err, repository.ErrSampleNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, repository.ErrDuplicateSampleID),
		errors.Is(err, repository.ErrDuplicateProjectNumber):
		return http.StatusConflict, "DUPLICATE"
	case errors.Is(err, unit.ErrInvalidUnit),
		errors.Is(err, entity.ErrInvalidProjectName),
		errors.Is(err, entity.ErrNegativeWeight),
		errors.Is(err, entity.ErrNegativeDimension),
		errors.Is(err, entity.ErrInvalidQuantity),
		errors.Is(err, entity.ErrInvalidProjectNumber),
		errors.Is(err, entity.ErrEmptySampleID),
		errors.Is(err, entity.ErrNegativeSampleWeight),
		errors.Is(err, service.ErrMissingCSVColumns),
		errors.Is(err, service.ErrEmptyCSV):
		return http.StatusBadRequest, "INVALID_INPUT"
	default:
		var timeErr *time.ParseError
		if errors.As(err, &timeErr) {
			return http.StatusBadRequest, "INVALID_INPUT"
		}
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// respondBindError writes a 400 envelope for a malformed request body.
func respondBindError(w http.ResponseWriter, r *http.Request, err error) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, dto.NewErrorResponse[any]("MALFORMED_BODY", "request body could not be parsed: "+err.Error()))
}
