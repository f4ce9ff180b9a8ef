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

type stubPatientRepo struct {
	patients map[string]*domain.Patient
	nextID   int
}

func newStubPatientRepo() *stubPatientRepo {
	return &stubPatientRepo{patients: make(map[string]*domain.Patient)}
}

func (r *stubPatientRepo) Create(_ context.Context, p *domain.Patient) (*domain.Patient, error) {
	r.nextID++
	clone := *p
	clone.ID = fmt.Sprintf("p%d", r.nextID)
	r.patients[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubPatientRepo) FindByID(_ context.Context, id string) (*domain.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, domain.ErrPatientNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPatientRepo) List(_ context.Context, _ string) ([]*domain.Patient, error) {
	out := make([]*domain.Patient, 0, len(r.patients))
	for _, p := range r.patients {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubPatientRepo) Update(_ context.Context, p *domain.Patient) error {
	if _, ok := r.patients[p.ID]; !ok {
		return domain.ErrPatientNotFound
	}
	clone := *p
	r.patients[p.ID] = &clone
	return nil
}

func (r *stubPatientRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.patients[id]; !ok {
		return domain.ErrPatientNotFound
	}
	delete(r.patients, id)
	return nil
}

type stubOdontogramRepo struct {
	entries map[string]*domain.OdontogramEntry
	nextID  int
}

func newStubOdontogramRepo() *stubOdontogramRepo {
	return &stubOdontogramRepo{entries: make(map[string]*domain.OdontogramEntry)}
}

func (r *stubOdontogramRepo) Create(_ context.Context, e *domain.OdontogramEntry) (*domain.OdontogramEntry, error) {
	r.nextID++
	clone := *e
	clone.ID = fmt.Sprintf("o%d", r.nextID)
	r.entries[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubOdontogramRepo) FindByID(_ context.Context, id string) (*domain.OdontogramEntry, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, domain.ErrOdontogramEntryNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubOdontogramRepo) FindByTooth(_ context.Context, patientID, tooth string) (*domain.OdontogramEntry, error) {
	for _, e := range r.entries {
		if e.PatientID == patientID && e.Tooth == tooth {
			clone := *e
			return &clone, nil
		}
	}
	return nil, domain.ErrOdontogramEntryNotFound
}

func (r *stubOdontogramRepo) ListByPatient(_ context.Context, patientID string) ([]*domain.OdontogramEntry, error) {
	var out []*domain.OdontogramEntry
	for _, e := range r.entries {
		if e.PatientID == patientID {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubOdontogramRepo) Update(_ context.Context, e *domain.OdontogramEntry) error {
	if _, ok := r.entries[e.ID]; !ok {
		return domain.ErrOdontogramEntryNotFound
	}
	clone := *e
	r.entries[e.ID] = &clone
	return nil
}

type stubProcedureRepo struct {
	procedures map[string]*domain.Procedure
	nextID     int
}

func newStubProcedureRepo() *stubProcedureRepo {
	return &stubProcedureRepo{procedures: make(map[string]*domain.Procedure)}
}

func (r *stubProcedureRepo) Create(_ context.Context, p *domain.Procedure) (*domain.Procedure, error) {
	r.nextID++
	clone := *p
	clone.ID = fmt.Sprintf("proc%d", r.nextID)
	r.procedures[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProcedureRepo) FindByID(_ context.Context, id string) (*domain.Procedure, error) {
	p, ok := r.procedures[id]
	if !ok {
		return nil, domain.ErrProcedureNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProcedureRepo) FindByName(_ context.Context, name string) (*domain.Procedure, error) {
	for _, p := range r.procedures {
		if p.Name == name {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrProcedureNotFound
}

func (r *stubProcedureRepo) List(_ context.Context) ([]*domain.Procedure, error) {
	out := make([]*domain.Procedure, 0, len(r.procedures))
	for _, p := range r.procedures {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubProcedureRepo) Update(_ context.Context, p *domain.Procedure) error {
	if _, ok := r.procedures[p.ID]; !ok {
		return domain.ErrProcedureNotFound
	}
	clone := *p
	r.procedures[p.ID] = &clone
	return nil
}

func (r *stubProcedureRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.procedures[id]; !ok {
		return domain.ErrProcedureNotFound
	}
	delete(r.procedures, id)
	return nil
}

type stubBudgetRepo struct {
	items  []*domain.BudgetItem
	nextID int
}

func (r *stubBudgetRepo) Create(_ context.Context, item *domain.BudgetItem) (*domain.BudgetItem, error) {
	r.nextID++
	clone := *item
	clone.ID = fmt.Sprintf("b%d", r.nextID)
	r.items = append(r.items, &clone)
	out := clone
	return &out, nil
}

func (r *stubBudgetRepo) FindByID(_ context.Context, id string) (*domain.BudgetItem, error) {
	for _, item := range r.items {
		if item.ID == id {
			clone := *item
			return &clone, nil
		}
	}
	return nil, domain.ErrBudgetItemNotFound
}

func (r *stubBudgetRepo) ListByPatient(_ context.Context, patientID string) ([]*domain.BudgetItem, error) {
	var out []*domain.BudgetItem
	for _, item := range r.items {
		if item.PatientID == patientID {
			clone := *item
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubBudgetRepo) Update(_ context.Context, item *domain.BudgetItem) error {
	for i := range r.items {
		if r.items[i].ID == item.ID {
			clone := *item
			r.items[i] = &clone
			return nil
		}
	}
	return domain.ErrBudgetItemNotFound
}

func (r *stubBudgetRepo) Delete(_ context.Context, id string) error {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrBudgetItemNotFound
}

func newClinicalService() (*ClinicalService, *stubPatientRepo, *stubProcedureRepo, *stubBudgetRepo) {
	patients := newStubPatientRepo()
	procedures := newStubProcedureRepo()
	budgets := &stubBudgetRepo{}
	svc := NewClinicalService(newStubOdontogramRepo(), procedures, budgets, patients, discardLogger)
	return svc, patients, procedures, budgets
}

func seedPatient(t *testing.T, patients *stubPatientRepo) *domain.Patient {
	t.Helper()
	p, err := patients.Create(context.Background(), &domain.Patient{
		Name:      "Ana",
		BirthDate: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
		Sex:       "F",
	})
	if err != nil {
		t.Fatalf("seed patient: %v", err)
	}
	return p
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestClinicalService_AddBudgetItem_SnapshotsPrice(t *testing.T) {
	svc, patients, _, _ := newClinicalService()
	p := seedPatient(t, patients)

	proc, _ := svc.CreateProcedure(context.Background(), ports.ProcedureInput{Name: "filling", Price: 150})

	item, err := svc.AddBudgetItem(context.Background(), p.ID, ports.BudgetItemInput{Tooth: "36", ProcedureID: proc.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Price != 150 {
		t.Errorf("snapshot price = %v, want 150", item.Price)
	}
}

func TestClinicalService_BudgetPrice_StableAfterCatalogEdit(t *testing.T) {
	svc, patients, _, _ := newClinicalService()
	p := seedPatient(t, patients)

	proc, _ := svc.CreateProcedure(context.Background(), ports.ProcedureInput{Name: "filling", Price: 150})
	item, _ := svc.AddBudgetItem(context.Background(), p.ID, ports.BudgetItemInput{Tooth: "36", ProcedureID: proc.ID})

	if _, err := svc.UpdateProcedure(context.Background(), proc.ID, ports.ProcedureInput{Name: "filling", Price: 999}); err != nil {
		t.Fatalf("procedure update failed: %v", err)
	}

	budget, err := svc.Budget(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("budget listing failed: %v", err)
	}
	if len(budget) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(budget))
	}
	if budget[0].Price != 150 {
		t.Errorf("stored price changed to %v after catalog edit; want 150", budget[0].Price)
	}
	_ = item
}

func TestClinicalService_UpdateBudgetItem_DoesNotResnapshot(t *testing.T) {
	svc, patients, _, _ := newClinicalService()
	p := seedPatient(t, patients)

	cheap, _ := svc.CreateProcedure(context.Background(), ports.ProcedureInput{Name: "cleaning", Price: 80})
	costly, _ := svc.CreateProcedure(context.Background(), ports.ProcedureInput{Name: "crown", Price: 1200})

	item, _ := svc.AddBudgetItem(context.Background(), p.ID, ports.BudgetItemInput{Tooth: "11", ProcedureID: cheap.ID})

	updated, err := svc.UpdateBudgetItem(context.Background(), item.ID, ports.BudgetItemInput{
		Tooth:       "21",
		ProcedureID: costly.ID,
		Notes:       "moved to crown",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.ProcedureID != costly.ID {
		t.Errorf("procedure ref = %q, want %q", updated.ProcedureID, costly.ID)
	}
	if updated.Price != 80 {
		t.Errorf("price re-snapshotted to %v; must stay 80", updated.Price)
	}
	if updated.Tooth != "21" {
		t.Errorf("tooth = %q, want %q", updated.Tooth, "21")
	}
}

func TestClinicalService_CreateProcedure_DuplicateName(t *testing.T) {
	svc, _, _, _ := newClinicalService()

	if _, err := svc.CreateProcedure(context.Background(), ports.ProcedureInput{Name: "filling", Price: 150}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := svc.CreateProcedure(context.Background(), ports.ProcedureInput{Name: "filling", Price: 90})
	if !errors.Is(err, domain.ErrDuplicateProcedure) {
		t.Fatalf("expected ErrDuplicateProcedure, got %v", err)
	}
}

func TestClinicalService_AddBudgetItem_UnknownProcedure(t *testing.T) {
	svc, patients, _, budgets := newClinicalService()
	p := seedPatient(t, patients)

	_, err := svc.AddBudgetItem(context.Background(), p.ID, ports.BudgetItemInput{Tooth: "36", ProcedureID: "missing"})
	if !errors.Is(err, domain.ErrProcedureNotFound) {
		t.Fatalf("expected ErrProcedureNotFound, got %v", err)
	}
	if len(budgets.items) != 0 {
		t.Errorf("no line item may be written on failure; have %d", len(budgets.items))
	}
}

func TestClinicalService_Odontogram_LastWriteWins(t *testing.T) {
	svc, patients, _, _ := newClinicalService()
	p := seedPatient(t, patients)

	e, err := svc.AddOdontogramEntry(context.Background(), p.ID, ports.OdontogramEntryInput{Tooth: "36", Status: "decayed"})
	if err != nil {
		t.Fatalf("add entry failed: %v", err)
	}

	if _, err := svc.UpdateOdontogramEntry(context.Background(), e.ID, ports.OdontogramEntryInput{Tooth: "36", Status: "treated", Notes: "composite"}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := svc.ToothRecord(context.Background(), p.ID, "36")
	if err != nil {
		t.Fatalf("tooth record lookup failed: %v", err)
	}
	if got.Status != "treated" {
		t.Errorf("status = %q, want %q", got.Status, "treated")
	}
}

func TestClinicalService_DeleteBudgetItem_Permanent(t *testing.T) {
	svc, patients, _, budgets := newClinicalService()
	p := seedPatient(t, patients)

	proc, _ := svc.CreateProcedure(context.Background(), ports.ProcedureInput{Name: "extraction", Price: 200})
	item, _ := svc.AddBudgetItem(context.Background(), p.ID, ports.BudgetItemInput{Tooth: "48", ProcedureID: proc.ID})

	if err := svc.DeleteBudgetItem(context.Background(), item.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(budgets.items) != 0 {
		t.Errorf("expected no remaining items, got %d", len(budgets.items))
	}
	if err := svc.DeleteBudgetItem(context.Background(), item.ID); !errors.Is(err, domain.ErrBudgetItemNotFound) {
		t.Fatalf("expected ErrBudgetItemNotFound, got %v", err)
	}
}
