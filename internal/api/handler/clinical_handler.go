package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/clinic-system/internal/core/domain"
	"github.com/clinicore/clinic-system/internal/core/ports"
)

// ClinicalHandler handles HTTP requests for the odontogram, the procedure
// price catalog, and per-patient budgets.
type ClinicalHandler struct {
	service ports.ClinicalService
}

func NewClinicalHandler(service ports.ClinicalService) *ClinicalHandler {
	return &ClinicalHandler{service: service}
}

type odontogramEntryRequest struct {
	Tooth  string `json:"tooth" validate:"required"`
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes"`
}

type procedureRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
}

type budgetItemRequest struct {
	Tooth       string `json:"tooth" validate:"required"`
	ProcedureID string `json:"procedure_id" validate:"required"`
	Notes       string `json:"notes"`
}

// Odontogram handles GET /patients/:id/odontogram.
func (h *ClinicalHandler) Odontogram(c echo.Context) error {
	entries, err := h.service.Odontogram(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []*domain.OdontogramEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}

// ToothRecord handles GET /patients/:id/odontogram/:tooth, used by the budget
// form to prefill the tooth's current status.
func (h *ClinicalHandler) ToothRecord(c echo.Context) error {
	entry, err := h.service.ToothRecord(c.Request().Context(), c.Param("id"), c.Param("tooth"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}

// AddOdontogramEntry handles POST /patients/:id/odontogram.
func (h *ClinicalHandler) AddOdontogramEntry(c echo.Context) error {
	var req odontogramEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.service.AddOdontogramEntry(c.Request().Context(), c.Param("id"), ports.OdontogramEntryInput{
		Tooth:  req.Tooth,
		Status: req.Status,
		Notes:  req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}

// UpdateOdontogramEntry handles PUT /odontogram/:id.
func (h *ClinicalHandler) UpdateOdontogramEntry(c echo.Context) error {
	var req odontogramEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.service.UpdateOdontogramEntry(c.Request().Context(), c.Param("id"), ports.OdontogramEntryInput{
		Tooth:  req.Tooth,
		Status: req.Status,
		Notes:  req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}

// ListProcedures handles GET /procedures.
func (h *ClinicalHandler) ListProcedures(c echo.Context) error {
	procedures, err := h.service.ListProcedures(c.Request().Context())
	if err != nil {
		return err
	}
	if procedures == nil {
		procedures = []*domain.Procedure{}
	}
	return c.JSON(http.StatusOK, procedures)
}

// CreateProcedure handles POST /procedures.
func (h *ClinicalHandler) CreateProcedure(c echo.Context) error {
	var req procedureRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	procedure, err := h.service.CreateProcedure(c.Request().Context(), ports.ProcedureInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, procedure)
}

// UpdateProcedure handles PUT /procedures/:id.
func (h *ClinicalHandler) UpdateProcedure(c echo.Context) error {
	var req procedureRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	procedure, err := h.service.UpdateProcedure(c.Request().Context(), c.Param("id"), ports.ProcedureInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, procedure)
}

// DeleteProcedure handles DELETE /procedures/:id.
func (h *ClinicalHandler) DeleteProcedure(c echo.Context) error {
	if err := h.service.DeleteProcedure(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Budget handles GET /patients/:id/budget.
func (h *ClinicalHandler) Budget(c echo.Context) error {
	items, err := h.service.Budget(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if items == nil {
		items = []*domain.BudgetItem{}
	}
	return c.JSON(http.StatusOK, items)
}

// AddBudgetItem handles POST /patients/:id/budget. The line price is copied
// from the referenced procedure at this moment and stays fixed afterwards.
func (h *ClinicalHandler) AddBudgetItem(c echo.Context) error {
	var req budgetItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.service.AddBudgetItem(c.Request().Context(), c.Param("id"), ports.BudgetItemInput{
		Tooth:       req.Tooth,
		ProcedureID: req.ProcedureID,
		Notes:       req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// UpdateBudgetItem handles PUT /budget-items/:id.
func (h *ClinicalHandler) UpdateBudgetItem(c echo.Context) error {
	var req budgetItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.service.UpdateBudgetItem(c.Request().Context(), c.Param("id"), ports.BudgetItemInput{
		Tooth:       req.Tooth,
		ProcedureID: req.ProcedureID,
		Notes:       req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// DeleteBudgetItem handles DELETE /budget-items/:id.
func (h *ClinicalHandler) DeleteBudgetItem(c echo.Context) error {
	if err := h.service.DeleteBudgetItem(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
