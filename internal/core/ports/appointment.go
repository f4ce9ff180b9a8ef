package ports

import (
	"context"
	"time"

	"github.com/clinicore/clinic-system/internal/core/domain"
)

// AppointmentRepository defines persistence operations for bookings.
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
	List(ctx context.Context) ([]*domain.Appointment, error)
	Update(ctx context.Context, a *domain.Appointment) error
	Delete(ctx context.Context, id string) error
}

// CreateAppointmentInput carries the fields of a new booking.
type CreateAppointmentInput struct {
	Patient      string
	Professional string
	Start        time.Time
	End          time.Time
	Notes        string
}

// UpdateAppointmentInput is a partial field set: nil pointers leave the
// stored value untouched.
type UpdateAppointmentInput struct {
	Patient      *string
	Professional *string
	Start        *time.Time
	End          *time.Time
	Notes        *string
}

// AppointmentService defines the calendar feed and its write operations.
type AppointmentService interface {
	// Feed returns all appointments for the calendar widget.
	Feed(ctx context.Context) ([]*domain.Appointment, error)
	Create(ctx context.Context, input CreateAppointmentInput) (*domain.Appointment, error)
	Update(ctx context.Context, id string, input UpdateAppointmentInput) (*domain.Appointment, error)
	Delete(ctx context.Context, id string) error
}
