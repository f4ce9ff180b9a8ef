package ports

import (
	"context"
	"time"

	"github.com/clinicore/clinic-system/internal/core/domain"
)

// PatientRepository defines persistence operations for patients.
type PatientRepository interface {
	Create(ctx context.Context, p *domain.Patient) (*domain.Patient, error)
	FindByID(ctx context.Context, id string) (*domain.Patient, error)
	// List returns all patients, or those whose name contains query
	// (case-insensitive) when query is non-empty.
	List(ctx context.Context, query string) ([]*domain.Patient, error)
	Update(ctx context.Context, p *domain.Patient) error
	Delete(ctx context.Context, id string) error
}

// ProfessionalRepository defines persistence operations for professionals.
type ProfessionalRepository interface {
	Create(ctx context.Context, p *domain.Professional) (*domain.Professional, error)
	FindByID(ctx context.Context, id string) (*domain.Professional, error)
	List(ctx context.Context, query string) ([]*domain.Professional, error)
	Update(ctx context.Context, p *domain.Professional) error
	Delete(ctx context.Context, id string) error
}

// PatientInput carries the writable fields of a patient record.
type PatientInput struct {
	Name          string
	Nickname      string
	BirthDate     time.Time
	Sex           string
	Email         string
	Mobile        string
	RG            string
	CPF           string
	MaritalStatus string
	Education     string
	Notes         string
}

// ProfessionalInput carries the writable fields of a professional record.
type ProfessionalInput struct {
	Name          string
	BirthDate     time.Time
	Sex           string
	Color         string
	Email         string
	MaritalStatus string
	CRO           string
	Username      string
	RG            string
	CPF           string
}

// PeopleService defines patient and professional use cases.
type PeopleService interface {
	ListPatients(ctx context.Context, query string) ([]*domain.Patient, error)
	GetPatient(ctx context.Context, id string) (*domain.Patient, error)
	CreatePatient(ctx context.Context, input PatientInput) (*domain.Patient, error)
	UpdatePatient(ctx context.Context, id string, input PatientInput) (*domain.Patient, error)
	DeletePatient(ctx context.Context, id string) error

	ListProfessionals(ctx context.Context, query string) ([]*domain.Professional, error)
	CreateProfessional(ctx context.Context, input ProfessionalInput) (*domain.Professional, error)
	UpdateProfessional(ctx context.Context, id string, input ProfessionalInput) (*domain.Professional, error)
	DeleteProfessional(ctx context.Context, id string) error
}
