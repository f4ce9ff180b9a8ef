package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinicore/clinic-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, "session expired"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrMerchandiseNotFound):
		return http.StatusNotFound, "merchandise not found"
	case errors.Is(err, domain.ErrDuplicateMerchandise):
		return http.StatusConflict, "merchandise name already exists"
	case errors.Is(err, domain.ErrSupplierNotFound):
		return http.StatusNotFound, "supplier not found"
	case errors.Is(err, domain.ErrDuplicateSupplier):
		return http.StatusConflict, "supplier tax id already exists"
	case errors.Is(err, domain.ErrSupplierHasInvoices):
		return http.StatusConflict, "supplier has invoices and cannot be deleted"
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return http.StatusNotFound, "invoice not found"
	case errors.Is(err, domain.ErrDuplicateInvoice):
		return http.StatusConflict, "invoice number already exists"
	case errors.Is(err, domain.ErrInvoiceItemNotFound):
		return http.StatusNotFound, "invoice item not found"
	case errors.Is(err, domain.ErrPatientNotFound):
		return http.StatusNotFound, "patient not found"
	case errors.Is(err, domain.ErrProfessionalNotFound):
		return http.StatusNotFound, "professional not found"
	case errors.Is(err, domain.ErrOdontogramEntryNotFound):
		return http.StatusNotFound, "odontogram entry not found"
	case errors.Is(err, domain.ErrProcedureNotFound):
		return http.StatusNotFound, "procedure not found"
	case errors.Is(err, domain.ErrDuplicateProcedure):
		return http.StatusConflict, "procedure name already exists"
	case errors.Is(err, domain.ErrBudgetItemNotFound):
		return http.StatusNotFound, "budget item not found"
	case errors.Is(err, domain.ErrAppointmentNotFound):
		return http.StatusNotFound, "appointment not found"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
