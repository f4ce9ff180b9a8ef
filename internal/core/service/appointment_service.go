package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/clinicore/clinic-system/internal/api/metrics"
	"github.com/clinicore/clinic-system/internal/core/domain"
	"github.com/clinicore/clinic-system/internal/core/ports"
)

// AppointmentService implements the calendar feed and its write operations.
// Start/end are stored exactly as submitted: there is no start<end check and
// no overlap detection, so double-booking is possible.
type AppointmentService struct {
	repo   ports.AppointmentRepository
	logger zerolog.Logger
}

func NewAppointmentService(repo ports.AppointmentRepository, logger zerolog.Logger) *AppointmentService {
	return &AppointmentService{repo: repo, logger: logger}
}

func (s *AppointmentService) Feed(ctx context.Context) ([]*domain.Appointment, error) {
	return s.repo.List(ctx)
}

func (s *AppointmentService) Create(ctx context.Context, input ports.CreateAppointmentInput) (*domain.Appointment, error) {
	a, err := s.repo.Create(ctx, &domain.Appointment{
		Patient:      input.Patient,
		Professional: input.Professional,
		Start:        input.Start,
		End:          input.End,
		Notes:        input.Notes,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create appointment")
		return nil, err
	}

	metrics.AppointmentsTotal.WithLabelValues("create").Inc()
	s.logger.Info().Str("id", a.ID).Str("patient", a.Patient).Time("start", a.Start).Msg("appointment created")
	return a, nil
}

// Update applies a partial field set; unset fields keep their stored values.
func (s *AppointmentService) Update(ctx context.Context, id string, input ports.UpdateAppointmentInput) (*domain.Appointment, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Patient != nil {
		a.Patient = *input.Patient
	}
	if input.Professional != nil {
		a.Professional = *input.Professional
	}
	if input.Start != nil {
		a.Start = *input.Start
	}
	if input.End != nil {
		a.End = *input.End
	}
	if input.Notes != nil {
		a.Notes = *input.Notes
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	metrics.AppointmentsTotal.WithLabelValues("update").Inc()
	return a, nil
}

func (s *AppointmentService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.AppointmentsTotal.WithLabelValues("delete").Inc()
	return nil
}
