package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/clinic-system/internal/core/domain"
	"github.com/clinicore/clinic-system/internal/core/ports"
)

// AuditHandler exposes the read side of the action log.
type AuditHandler struct {
	repo ports.AuditRepository
}

func NewAuditHandler(repo ports.AuditRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// List handles GET /audit. Entries come back newest first.
func (h *AuditHandler) List(c echo.Context) error {
	entries, err := h.repo.List(c.Request().Context())
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []*domain.AuditEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}
