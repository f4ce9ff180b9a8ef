package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/clinic-system/internal/core/domain"
	"github.com/clinicore/clinic-system/internal/core/ports"
)

// PeopleHandler handles HTTP requests for patient and professional records.
type PeopleHandler struct {
	service ports.PeopleService
}

func NewPeopleHandler(service ports.PeopleService) *PeopleHandler {
	return &PeopleHandler{service: service}
}

const birthDateLayout = "2006-01-02"

type patientRequest struct {
	Name          string `json:"name" validate:"required"`
	Nickname      string `json:"nickname"`
	BirthDate     string `json:"birth_date" validate:"required"`
	Sex           string `json:"sex"`
	Email         string `json:"email" validate:"omitempty,email"`
	Mobile        string `json:"mobile"`
	RG            string `json:"rg"`
	CPF           string `json:"cpf"`
	MaritalStatus string `json:"marital_status"`
	Education     string `json:"education"`
	Notes         string `json:"notes"`
}

func (r patientRequest) toInput() (ports.PatientInput, error) {
	birth, err := time.Parse(birthDateLayout, r.BirthDate)
	if err != nil {
		return ports.PatientInput{}, echo.NewHTTPError(http.StatusBadRequest, "birth_date must be YYYY-MM-DD")
	}
	return ports.PatientInput{
		Name:          r.Name,
		Nickname:      r.Nickname,
		BirthDate:     birth,
		Sex:           r.Sex,
		Email:         r.Email,
		Mobile:        r.Mobile,
		RG:            r.RG,
		CPF:           r.CPF,
		MaritalStatus: r.MaritalStatus,
		Education:     r.Education,
		Notes:         r.Notes,
	}, nil
}

type professionalRequest struct {
	Name          string `json:"name" validate:"required"`
	BirthDate     string `json:"birth_date" validate:"required"`
	Sex           string `json:"sex"`
	Color         string `json:"color"`
	Email         string `json:"email" validate:"omitempty,email"`
	MaritalStatus string `json:"marital_status"`
	CRO           string `json:"cro"`
	Username      string `json:"username"`
	RG            string `json:"rg"`
	CPF           string `json:"cpf"`
}

func (r professionalRequest) toInput() (ports.ProfessionalInput, error) {
	birth, err := time.Parse(birthDateLayout, r.BirthDate)
	if err != nil {
		return ports.ProfessionalInput{}, echo.NewHTTPError(http.StatusBadRequest, "birth_date must be YYYY-MM-DD")
	}
	return ports.ProfessionalInput{
		Name:          r.Name,
		BirthDate:     birth,
		Sex:           r.Sex,
		Color:         r.Color,
		Email:         r.Email,
		MaritalStatus: r.MaritalStatus,
		CRO:           r.CRO,
		Username:      r.Username,
		RG:            r.RG,
		CPF:           r.CPF,
	}, nil
}

// ListPatients handles GET /patients?query=.
func (h *PeopleHandler) ListPatients(c echo.Context) error {
	patients, err := h.service.ListPatients(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		return err
	}
	if patients == nil {
		patients = []*domain.Patient{}
	}
	return c.JSON(http.StatusOK, patients)
}

// GetPatient handles GET /patients/:id.
func (h *PeopleHandler) GetPatient(c echo.Context) error {
	patient, err := h.service.GetPatient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patient)
}

// CreatePatient handles POST /patients.
func (h *PeopleHandler) CreatePatient(c echo.Context) error {
	var req patientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	input, err := req.toInput()
	if err != nil {
		return err
	}

	patient, err := h.service.CreatePatient(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, patient)
}

// UpdatePatient handles PUT /patients/:id.
func (h *PeopleHandler) UpdatePatient(c echo.Context) error {
	var req patientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	input, err := req.toInput()
	if err != nil {
		return err
	}

	patient, err := h.service.UpdatePatient(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patient)
}

// DeletePatient handles DELETE /patients/:id.
func (h *PeopleHandler) DeletePatient(c echo.Context) error {
	if err := h.service.DeletePatient(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListProfessionals handles GET /professionals?query=.
func (h *PeopleHandler) ListProfessionals(c echo.Context) error {
	professionals, err := h.service.ListProfessionals(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		return err
	}
	if professionals == nil {
		professionals = []*domain.Professional{}
	}
	return c.JSON(http.StatusOK, professionals)
}

// CreateProfessional handles POST /professionals.
func (h *PeopleHandler) CreateProfessional(c echo.Context) error {
	var req professionalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	input, err := req.toInput()
	if err != nil {
		return err
	}

	professional, err := h.service.CreateProfessional(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, professional)
}

// UpdateProfessional handles PUT /professionals/:id.
func (h *PeopleHandler) UpdateProfessional(c echo.Context) error {
	var req professionalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	input, err := req.toInput()
	if err != nil {
		return err
	}

	professional, err := h.service.UpdateProfessional(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, professional)
}

// DeleteProfessional handles DELETE /professionals/:id.
func (h *PeopleHandler) DeleteProfessional(c echo.Context) error {
	if err := h.service.DeleteProfessional(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
