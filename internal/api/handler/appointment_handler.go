package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/clinic-system/internal/core/domain"
	"github.com/clinicore/clinic-system/internal/core/ports"
)

// AppointmentHandler handles the calendar feed and its write operations. The
// feed shape and timestamp layout are fixed by the FullCalendar widget that
// consumes them.
type AppointmentHandler struct {
	service ports.AppointmentService
}

func NewAppointmentHandler(service ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

const feedTimeLayout = "2006-01-02T15:04:05"

// calendarTimeLayouts are accepted on input; datetime-local widgets omit the
// seconds.
var calendarTimeLayouts = []string{feedTimeLayout, "2006-01-02T15:04"}

type feedEventResponse struct {
	Title       string `json:"title"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Description string `json:"description"`
}

type appointmentRequest struct {
	Paciente     string `json:"paciente"`
	Profissional string `json:"profissional"`
	Start        string `json:"start"`
	End          string `json:"end"`
	Observacoes  string `json:"observacoes"`
}

type appointmentResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func parseCalendarTime(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range calendarTimeLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Feed handles GET /api/appointments.
func (h *AppointmentHandler) Feed(c echo.Context) error {
	appointments, err := h.service.Feed(c.Request().Context())
	if err != nil {
		return err
	}

	events := make([]feedEventResponse, 0, len(appointments))
	for _, a := range appointments {
		events = append(events, feedEventResponse{
			Title:       a.Title(),
			Start:       a.Start.Format(feedTimeLayout),
			End:         a.End.Format(feedTimeLayout),
			Description: a.Notes,
		})
	}
	return c.JSON(http.StatusOK, events)
}

// Create handles POST /api/appointments.
func (h *AppointmentHandler) Create(c echo.Context) error {
	var req appointmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, appointmentResult{Message: "invalid payload"})
	}
	if req.Paciente == "" || req.Profissional == "" {
		return c.JSON(http.StatusBadRequest, appointmentResult{Message: "paciente and profissional are required"})
	}

	start, err := parseCalendarTime(req.Start)
	if err != nil {
		return c.JSON(http.StatusBadRequest, appointmentResult{Message: "invalid start"})
	}
	end, err := parseCalendarTime(req.End)
	if err != nil {
		return c.JSON(http.StatusBadRequest, appointmentResult{Message: "invalid end"})
	}

	_, err = h.service.Create(c.Request().Context(), ports.CreateAppointmentInput{
		Patient:      req.Paciente,
		Professional: req.Profissional,
		Start:        start,
		End:          end,
		Notes:        req.Observacoes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appointmentResult{Success: true, Message: "appointment created"})
}

// Update handles PUT /api/appointments/:id. Fields absent from the payload
// keep their stored values.
func (h *AppointmentHandler) Update(c echo.Context) error {
	var req struct {
		Paciente     *string `json:"paciente"`
		Profissional *string `json:"profissional"`
		Start        *string `json:"start"`
		End          *string `json:"end"`
		Observacoes  *string `json:"observacoes"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, appointmentResult{Message: "invalid payload"})
	}

	input := ports.UpdateAppointmentInput{
		Patient:      req.Paciente,
		Professional: req.Profissional,
		Notes:        req.Observacoes,
	}
	if req.Start != nil {
		start, err := parseCalendarTime(*req.Start)
		if err != nil {
			return c.JSON(http.StatusBadRequest, appointmentResult{Message: "invalid start"})
		}
		input.Start = &start
	}
	if req.End != nil {
		end, err := parseCalendarTime(*req.End)
		if err != nil {
			return c.JSON(http.StatusBadRequest, appointmentResult{Message: "invalid end"})
		}
		input.End = &end
	}

	_, err := h.service.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		if errors.Is(err, domain.ErrAppointmentNotFound) {
			return c.JSON(http.StatusNotFound, appointmentResult{Message: "appointment not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, appointmentResult{Success: true, Message: "appointment updated"})
}

// Delete handles DELETE /api/appointments/:id.
func (h *AppointmentHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrAppointmentNotFound) {
			return c.JSON(http.StatusNotFound, appointmentResult{Message: "appointment not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, appointmentResult{Success: true, Message: "appointment deleted"})
}
