package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/clinicore/clinic-system/internal/core/domain"
	"github.com/clinicore/clinic-system/internal/core/ports"
)

type stubAppointmentRepo struct {
	appointments map[string]*domain.Appointment
	nextID       int
}

func newStubAppointmentRepo() *stubAppointmentRepo {
	return &stubAppointmentRepo{appointments: make(map[string]*domain.Appointment)}
}

func (r *stubAppointmentRepo) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	r.nextID++
	clone := *a
	clone.ID = fmt.Sprintf("a%d", r.nextID)
	r.appointments[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubAppointmentRepo) FindByID(_ context.Context, id string) (*domain.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAppointmentRepo) List(_ context.Context) ([]*domain.Appointment, error) {
	out := make([]*domain.Appointment, 0, len(r.appointments))
	for _, a := range r.appointments {
		clone := *a
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubAppointmentRepo) Update(_ context.Context, a *domain.Appointment) error {
	if _, ok := r.appointments[a.ID]; !ok {
		return domain.ErrAppointmentNotFound
	}
	clone := *a
	r.appointments[a.ID] = &clone
	return nil
}

func (r *stubAppointmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.appointments[id]; !ok {
		return domain.ErrAppointmentNotFound
	}
	delete(r.appointments, id)
	return nil
}

func checkupInput() ports.CreateAppointmentInput {
	return ports.CreateAppointmentInput{
		Patient:      "Ana",
		Professional: "Dr. Silva",
		Start:        time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		End:          time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
		Notes:        "checkup",
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestAppointmentService_Create_StoresAsSubmitted(t *testing.T) {
	repo := newStubAppointmentRepo()
	svc := NewAppointmentService(repo, discardLogger)

	a, err := svc.Create(context.Background(), checkupInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Title() != "Ana (Dr. Silva)" {
		t.Errorf("title = %q, want %q", a.Title(), "Ana (Dr. Silva)")
	}
	if !a.Start.Equal(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("start stored as %v", a.Start)
	}
}

func TestAppointmentService_Create_InvertedRangeAccepted(t *testing.T) {
	repo := newStubAppointmentRepo()
	svc := NewAppointmentService(repo, discardLogger)

	input := checkupInput()
	input.Start, input.End = input.End, input.Start

	if _, err := svc.Create(context.Background(), input); err != nil {
		t.Fatalf("inverted range must be accepted as submitted, got %v", err)
	}
}

func TestAppointmentService_Create_DoubleBookingAccepted(t *testing.T) {
	repo := newStubAppointmentRepo()
	svc := NewAppointmentService(repo, discardLogger)

	if _, err := svc.Create(context.Background(), checkupInput()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), checkupInput()); err != nil {
		t.Fatalf("overlapping create must succeed, got %v", err)
	}
	if len(repo.appointments) != 2 {
		t.Errorf("expected 2 stored appointments, got %d", len(repo.appointments))
	}
}

func TestAppointmentService_Update_PartialFieldsRetained(t *testing.T) {
	repo := newStubAppointmentRepo()
	svc := NewAppointmentService(repo, discardLogger)

	a, _ := svc.Create(context.Background(), checkupInput())

	newEnd := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	updated, err := svc.Update(context.Background(), a.ID, ports.UpdateAppointmentInput{End: &newEnd})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.Patient != "Ana" || updated.Professional != "Dr. Silva" || updated.Notes != "checkup" {
		t.Errorf("unspecified fields changed: %+v", updated)
	}
	if !updated.Start.Equal(a.Start) {
		t.Errorf("start changed from %v to %v", a.Start, updated.Start)
	}
	if !updated.End.Equal(newEnd) {
		t.Errorf("end = %v, want %v", updated.End, newEnd)
	}
}

func TestAppointmentService_Update_NotFound(t *testing.T) {
	svc := NewAppointmentService(newStubAppointmentRepo(), discardLogger)

	patient := "Bia"
	_, err := svc.Update(context.Background(), "missing", ports.UpdateAppointmentInput{Patient: &patient})
	if !errors.Is(err, domain.ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
	}
}

func TestAppointmentService_Delete_NotFound(t *testing.T) {
	svc := NewAppointmentService(newStubAppointmentRepo(), discardLogger)

	err := svc.Delete(context.Background(), "missing")
	if !errors.Is(err, domain.ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
	}
}
