package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/clinicore/clinic-system/internal/core/domain"
	"github.com/clinicore/clinic-system/internal/core/ports"
)

// PeopleService implements patient and professional use cases. Plain CRUD
// with name search; no cross-entity invariants.
type PeopleService struct {
	patients      ports.PatientRepository
	professionals ports.ProfessionalRepository
	logger        zerolog.Logger
}

func NewPeopleService(patients ports.PatientRepository, professionals ports.ProfessionalRepository, logger zerolog.Logger) *PeopleService {
	return &PeopleService{patients: patients, professionals: professionals, logger: logger}
}

func (s *PeopleService) ListPatients(ctx context.Context, query string) ([]*domain.Patient, error) {
	return s.patients.List(ctx, query)
}

func (s *PeopleService) GetPatient(ctx context.Context, id string) (*domain.Patient, error) {
	return s.patients.FindByID(ctx, id)
}

func (s *PeopleService) CreatePatient(ctx context.Context, input ports.PatientInput) (*domain.Patient, error) {
	p, err := s.patients.Create(ctx, &domain.Patient{
		Name:          input.Name,
		Nickname:      input.Nickname,
		BirthDate:     input.BirthDate,
		Sex:           input.Sex,
		Email:         input.Email,
		Mobile:        input.Mobile,
		RG:            input.RG,
		CPF:           input.CPF,
		MaritalStatus: input.MaritalStatus,
		Education:     input.Education,
		Notes:         input.Notes,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create patient")
		return nil, err
	}
	s.logger.Info().Str("id", p.ID).Str("name", p.Name).Msg("patient registered")
	return p, nil
}

func (s *PeopleService) UpdatePatient(ctx context.Context, id string, input ports.PatientInput) (*domain.Patient, error) {
	p, err := s.patients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = input.Name
	p.Nickname = input.Nickname
	p.BirthDate = input.BirthDate
	p.Sex = input.Sex
	p.Email = input.Email
	p.Mobile = input.Mobile
	p.RG = input.RG
	p.CPF = input.CPF
	p.MaritalStatus = input.MaritalStatus
	p.Education = input.Education
	p.Notes = input.Notes
	if err := s.patients.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PeopleService) DeletePatient(ctx context.Context, id string) error {
	if _, err := s.patients.FindByID(ctx, id); err != nil {
		return err
	}
	return s.patients.Delete(ctx, id)
}

func (s *PeopleService) ListProfessionals(ctx context.Context, query string) ([]*domain.Professional, error) {
	return s.professionals.List(ctx, query)
}

func (s *PeopleService) CreateProfessional(ctx context.Context, input ports.ProfessionalInput) (*domain.Professional, error) {
	p, err := s.professionals.Create(ctx, &domain.Professional{
		Name:          input.Name,
		BirthDate:     input.BirthDate,
		Sex:           input.Sex,
		Color:         input.Color,
		Email:         input.Email,
		MaritalStatus: input.MaritalStatus,
		CRO:           input.CRO,
		Username:      input.Username,
		RG:            input.RG,
		CPF:           input.CPF,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create professional")
		return nil, err
	}
	s.logger.Info().Str("id", p.ID).Str("name", p.Name).Msg("professional registered")
	return p, nil
}

func (s *PeopleService) UpdateProfessional(ctx context.Context, id string, input ports.ProfessionalInput) (*domain.Professional, error) {
	p, err := s.professionals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = input.Name
	p.BirthDate = input.BirthDate
	p.Sex = input.Sex
	p.Color = input.Color
	p.Email = input.Email
	p.MaritalStatus = input.MaritalStatus
	p.CRO = input.CRO
	p.Username = input.Username
	p.RG = input.RG
	p.CPF = input.CPF
	if err := s.professionals.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PeopleService) DeleteProfessional(ctx context.Context, id string) error {
	if _, err := s.professionals.FindByID(ctx, id); err != nil {
		return err
	}
	return s.professionals.Delete(ctx, id)
}
